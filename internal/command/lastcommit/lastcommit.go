package lastcommit

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/middleware"
	"github.com/keshon/surf/internal/vcs/git"
)

type Command struct{}

func (c *Command) Name() string      { return "last-commit" }
func (c *Command) Short() string     { return "" }
func (c *Command) Aliases() []string { return []string{"blame-dir"} }
func (c *Command) Usage() string     { return "last-commit [rev] <path>" }
func (c *Command) Brief() string     { return "Show the last commit that touched a path" }
func (c *Command) Help() string {
	return `Show the newest commit reachable from rev (default HEAD) that changed
path. A directory path reports the newest commit of any file below it.

Options:
      --full   Print the full commit id.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.Bool("full", false, "print the full commit id")
}

func (c *Command) Run(ctx *command.Context) error {
	var rev, path string
	switch len(ctx.Args) {
	case 1:
		rev, path = git.Head, ctx.Args[0]
	case 2:
		rev, path = ctx.Args[0], ctx.Args[1]
	default:
		return fmt.Errorf("usage: %s", c.Usage())
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	p, err := command.ParsePath(path)
	if err != nil {
		return err
	}
	commit, ok, err := repo.LastCommit(ctx, rev, p)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no commit touched %s", p)
	}

	id := commit.ID
	if !ctx.Bool("full") && len(id) > 7 {
		id = id[:7]
	}
	fmt.Fprintf(ctx.Out, "%s %s <%s> %s %s\n",
		id, commit.Author, commit.Email, commit.Time.UTC().Format(time.RFC3339), commit.Summary)
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
