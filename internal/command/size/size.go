package size

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "size" }
func (c *Command) Short() string     { return "" }
func (c *Command) Aliases() []string { return []string{"du"} }
func (c *Command) Usage() string     { return "size [rev] [path]" }
func (c *Command) Brief() string     { return "Print the total size of a directory or file" }
func (c *Command) Help() string {
	return `Print the size in bytes of a file, or the sum of the sizes of all
files below a directory, as stored in a revision (default HEAD).`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) > 2 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	rev, path := command.RevAndPath(repo, ctx.Args)
	dir, err := repo.Directory(ctx, rev)
	if err != nil {
		return err
	}
	p, err := command.ParsePath(path)
	if err != nil {
		return err
	}

	if file, ok := dir.FindFile(p); ok {
		fmt.Fprintln(ctx.Out, file.Size())
		return nil
	}
	sub, ok := dir.FindDirectory(p)
	if !ok {
		return fmt.Errorf("path not found: %s", p)
	}
	fmt.Fprintln(ctx.Out, sub.Size())
	return nil
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
