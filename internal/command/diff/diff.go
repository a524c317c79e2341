package diff

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/keshon/surf/internal/command"
	sdiff "github.com/keshon/surf/internal/diff"
	"github.com/keshon/surf/internal/middleware"
	"github.com/keshon/surf/internal/render"
	"github.com/keshon/surf/internal/vcs/git"
)

type Command struct{}

func (c *Command) Name() string      { return "diff" }
func (c *Command) Short() string     { return "d" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "diff [options] <base> [head]" }
func (c *Command) Brief() string     { return "Show changes between two revisions" }
func (c *Command) Help() string {
	return `Compare the file trees of two revisions and list what changed.

Each changed path is printed on its own line:
  +++ path         created
  --- path         deleted
  mv old -> new    moved
  cp old -> new    copied
  mod path         modified

A summary line with the counts and the time the diff took follows.

Options:
  -w, --worktree   Compare <base> (default HEAD) with the working tree.
  -p, --patch      Print the hunks of modified files.
      --progress   Show progress while reading the working tree.

Examples:
  surf diff HEAD~3
  surf diff v1.0 v1.1 --patch
  surf diff --worktree`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.BoolP("worktree", "w", false, "compare with the working tree")
	fs.BoolP("patch", "p", false, "print hunks of modified files")
	fs.Bool("progress", false, "show progress while reading the working tree")
}

func (c *Command) Run(ctx *command.Context) error {
	worktree := ctx.Bool("worktree")
	if worktree && len(ctx.Args) > 1 {
		return fmt.Errorf("--worktree takes at most one revision")
	}
	if !worktree && (len(ctx.Args) < 1 || len(ctx.Args) > 2) {
		return fmt.Errorf("usage: %s", c.Usage())
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	var (
		d       *sdiff.Diff
		elapsed time.Duration
	)
	if worktree {
		base := git.Head
		if len(ctx.Args) == 1 {
			base = ctx.Args[0]
		}
		head, err := ctx.WorkingTree(ctx.Bool("progress"))
		if err != nil {
			return err
		}
		start := time.Now()
		if d, err = repo.Compare(ctx, base, head); err != nil {
			return err
		}
		elapsed = time.Since(start)
	} else {
		head := git.Head
		if len(ctx.Args) == 2 {
			head = ctx.Args[1]
		}
		start := time.Now()
		if d, err = repo.StructuralDiff(ctx, ctx.Args[0], head); err != nil {
			return err
		}
		elapsed = time.Since(start)
	}

	p := render.New(ctx.Out)
	p.Summary(d)
	if ctx.Bool("patch") {
		p.Patch(d)
	}
	p.Stats(d, elapsed)
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
