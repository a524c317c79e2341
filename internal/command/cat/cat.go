package cat

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "cat" }
func (c *Command) Short() string     { return "" }
func (c *Command) Aliases() []string { return []string{"show"} }
func (c *Command) Usage() string     { return "cat <rev> <path>" }
func (c *Command) Brief() string     { return "Print a file as stored in a revision" }
func (c *Command) Help() string {
	return `Print the contents of a file as stored in a revision.

Examples:
  surf cat HEAD README.md
  surf cat v1.0 src/lib.rs`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 2 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	dir, err := repo.Directory(ctx, ctx.Args[0])
	if err != nil {
		return err
	}
	p, err := command.ParsePath(ctx.Args[1])
	if err != nil {
		return err
	}
	file, ok := dir.FindFile(p)
	if !ok {
		return fmt.Errorf("file not found: %s", p)
	}
	_, err = ctx.Out.Write(file.Contents())
	return err
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithTiming(),
			middleware.WithDebugArgsPrint(),
		),
	)
}
