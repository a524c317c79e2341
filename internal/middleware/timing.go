package middleware

import (
	"time"

	"go.uber.org/zap"

	"github.com/keshon/surf/internal/command"
)

// WithTiming logs how long the command ran and whether it failed.
func WithTiming() command.Middleware {
	return func(cmd command.Command) command.Command {
		return command.Wrap(cmd, func(ctx *command.Context, next command.RunFunc) error {
			start := time.Now()
			err := next(ctx)
			fields := []zap.Field{zap.String("command", cmd.Name()), zap.Duration("elapsed", time.Since(start))}
			if err != nil {
				ctx.Logger.Debug("command failed", append(fields, zap.Error(err))...)
				return err
			}
			ctx.Logger.Debug("command finished", fields...)
			return nil
		})
	}
}
