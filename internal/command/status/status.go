package status

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/middleware"
	"github.com/keshon/surf/internal/render"
	"github.com/keshon/surf/internal/vcs/git"
)

type Command struct{}

func (c *Command) Name() string      { return "status" }
func (c *Command) Short() string     { return "S" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status [options]" }
func (c *Command) Brief() string     { return "Show working tree changes against HEAD" }

func (c *Command) Help() string {
	return `Show the working tree status relative to HEAD in short form:

  A  path          created
  M  path          modified
  D  path          deleted

Options:
      --rev=<rev>   Compare against rev instead of HEAD.
      --progress    Show progress while reading the working tree.
  -q, --quiet       Suppress output; only fail on errors.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.String("rev", git.Head, "revision to compare against")
	fs.Bool("progress", false, "show progress while reading the working tree")
	fs.BoolP("quiet", "q", false, "suppress normal output")
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 0 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	rev, err := ctx.Flags.GetString("rev")
	if err != nil {
		return err
	}

	repo, err := ctx.Repository()
	if err != nil {
		return fmt.Errorf("open repo: %w", err)
	}
	head, err := ctx.WorkingTree(ctx.Bool("progress"))
	if err != nil {
		return fmt.Errorf("scan working tree: %w", err)
	}
	d, err := repo.Compare(ctx, rev, head)
	if err != nil {
		return err
	}

	if ctx.Bool("quiet") {
		return nil
	}
	render.New(ctx.Out).Status(d)
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
