// Package command wires surf subcommands into a cobra root command.
package command

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/keshon/surf/internal/config"
	"github.com/keshon/surf/internal/filesystem"
	"github.com/keshon/surf/internal/vcs/git"
	"github.com/keshon/surf/internal/worktree"
)

// Command represents a cli command
type Command interface {
	Name() string
	Short() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Flags(fs *pflag.FlagSet)
	Run(ctx *Context) error
}

// Context represents a cli context
type Context struct {
	context.Context

	Args   []string
	Flags  *pflag.FlagSet
	Out    io.Writer
	ErrOut io.Writer
	Logger *zap.Logger

	// Root is the working tree root the command runs against.
	Root   string
	Config config.Config
}

// Bool returns the value of a boolean flag, false when undefined.
func (c *Context) Bool(name string) bool {
	v, err := c.Flags.GetBool(name)
	return err == nil && v
}

// Repository opens the git repository at Root with options taken from the
// project configuration.
func (c *Context) Repository() (*git.Repository, error) {
	return git.Open(c.Root, git.Options{
		Logger:        c.Logger,
		Hidden:        c.Config.Hidden,
		Context:       c.Config.ContextLines,
		DetectRenames: c.Config.Renames(),
	})
}

// Filesystem returns the working tree as a billy filesystem.
func (c *Context) Filesystem() billy.Filesystem {
	return osfs.New(c.Root)
}

// WorkingTree snapshots the working tree. A spinner is written to ErrOut when
// progress is set.
func (c *Context) WorkingTree(progress bool) (filesystem.Directory, error) {
	fsys := c.Filesystem()
	opts, err := worktree.OptionsFromConfig(fsys, c.Config)
	if err != nil {
		return filesystem.Directory{}, err
	}
	opts.Logger = c.Logger
	opts.Root = c.Root
	if progress {
		opts.Progress = c.ErrOut
	}
	return worktree.Load(c, fsys, opts)
}

// ParsePath parses a path argument. An empty argument is the root.
func ParsePath(arg string) (filesystem.Path, error) {
	if arg == "" || arg == "." || arg == filesystem.Separator {
		return filesystem.RootPath(), nil
	}
	p, err := filesystem.ParsePath(arg)
	if err != nil {
		return filesystem.Path{}, fmt.Errorf("invalid path %q: %w", arg, err)
	}
	return p, nil
}

// RevAndPath splits optional [rev] [path] arguments. A single argument is
// the revision when it resolves to a commit and the path otherwise.
func RevAndPath(repo *git.Repository, args []string) (string, string) {
	switch len(args) {
	case 2:
		return args[0], args[1]
	case 1:
		if _, err := repo.Commit(args[0]); err == nil {
			return args[0], ""
		}
		return git.Head, args[0]
	default:
		return git.Head, ""
	}
}
