package command_test

import (
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/command/status"
)

type recorder struct {
	calls *[]string
}

func (r recorder) Name() string            { return "record" }
func (r recorder) Short() string           { return "rec" }
func (r recorder) Aliases() []string       { return []string{"r"} }
func (r recorder) Usage() string           { return "record" }
func (r recorder) Brief() string           { return "" }
func (r recorder) Help() string            { return "" }
func (r recorder) Flags(fs *pflag.FlagSet) {}
func (r recorder) Run(ctx *command.Context) error {
	*r.calls = append(*r.calls, "run")
	return nil
}

func tag(name string, calls *[]string) command.Middleware {
	return func(cmd command.Command) command.Command {
		return command.Wrap(cmd, func(ctx *command.Context, next command.RunFunc) error {
			*calls = append(*calls, name+" before")
			err := next(ctx)
			*calls = append(*calls, name+" after")
			return err
		})
	}
}

func TestApplyMiddlewaresOrder(t *testing.T) {
	var calls []string
	inner := recorder{calls: &calls}
	cmd := command.ApplyMiddlewares(inner, tag("first", &calls), nil, tag("second", &calls))

	require.NoError(t, cmd.Run(&command.Context{Context: context.Background()}))
	assert.Equal(t, []string{"second before", "first before", "run", "first after", "second after"}, calls)

	assert.Equal(t, "record", cmd.Name())
	assert.Equal(t, []string{"r"}, cmd.Aliases())
	assert.Equal(t, inner, command.Unwrap(cmd))
}

func TestWrapWithoutAround(t *testing.T) {
	var calls []string
	cmd := command.Wrap(recorder{calls: &calls}, nil)
	require.NoError(t, cmd.Run(&command.Context{Context: context.Background()}))
	assert.Equal(t, []string{"run"}, calls)
}

func TestRegisteredCommandsUnwrap(t *testing.T) {
	cmd, ok := command.GetCommand("status")
	require.True(t, ok)
	assert.IsType(t, &command.WrappedCommand{}, cmd)
	assert.IsType(t, &status.Command{}, command.Unwrap(cmd))
}
