package middleware

import (
	"fmt"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/config"
)

// WithDebugArgsPrint prints the command arguments when SURF_DEV is set
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return command.Wrap(cmd, func(ctx *command.Context, next command.RunFunc) error {
			if config.IsDev {
				fmt.Fprintf(ctx.ErrOut, "Args: %+v\n", ctx.Args)
			}
			return next(ctx)
		})
	}
}
