package ls

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/filesystem"
	"github.com/keshon/surf/internal/middleware"
	"github.com/keshon/surf/internal/render"
)

type Command struct{}

func (c *Command) Name() string      { return "ls" }
func (c *Command) Short() string     { return "l" }
func (c *Command) Aliases() []string { return []string{"list"} }
func (c *Command) Usage() string     { return "ls [options] [rev] [path]" }
func (c *Command) Brief() string     { return "List a directory of a revision" }
func (c *Command) Help() string {
	return `List the entries of a directory as stored in a revision.

With a single argument, it is used as the revision when it resolves to a
commit and as the path otherwise. Hidden entries are left out unless -a is
given.

Options:
  -a, --all        Include hidden entries.
  -w, --worktree   List the working tree instead of a revision.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.BoolP("all", "a", false, "include hidden entries")
	fs.BoolP("worktree", "w", false, "list the working tree")
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) > 2 {
		return fmt.Errorf("usage: %s", c.Usage())
	}

	var (
		dir  filesystem.Directory
		path = ""
		err  error
	)
	if ctx.Bool("worktree") {
		if len(ctx.Args) == 2 {
			return fmt.Errorf("--worktree takes no revision")
		}
		if len(ctx.Args) == 1 {
			path = ctx.Args[0]
		}
		if dir, err = ctx.WorkingTree(false); err != nil {
			return err
		}
	} else {
		repo, err := ctx.Repository()
		if err != nil {
			return err
		}
		var rev string
		rev, path = command.RevAndPath(repo, ctx.Args)
		if dir, err = repo.Directory(ctx, rev); err != nil {
			return err
		}
	}

	p, err := command.ParsePath(path)
	if err != nil {
		return err
	}
	sub, ok := dir.FindDirectory(p)
	if !ok {
		return fmt.Errorf("directory not found: %s", p)
	}

	entries := sub.ListDirectory()
	if ctx.Bool("all") {
		entries = sub.Entries()
	}
	render.New(ctx.Out).Listing(entries)
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
