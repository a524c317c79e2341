package command

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keshon/surf/internal/config"
	"github.com/keshon/surf/internal/logging"
)

type rootOptions struct {
	repo    string
	verbose bool
}

// NewRootCommand builds the surf root command with every registered
// command attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "surf",
		Short:         "Browse and diff the file trees of a git repository",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.repo, "repo", "C", ".", "path inside the repository")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	for _, c := range AllCommands() {
		root.AddCommand(toCobra(c, opts))
	}
	return root
}

func toCobra(c Command, opts *rootOptions) *cobra.Command {
	aliases := c.Aliases()
	if s := c.Short(); s != "" {
		aliases = append([]string{s}, aliases...)
	}
	cc := &cobra.Command{
		Use:     c.Usage(),
		Aliases: aliases,
		Short:   c.Brief(),
		Long:    c.Help(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newContext(cmd, args, opts)
			if err != nil {
				return err
			}
			defer logging.Sync()
			return c.Run(ctx)
		},
	}
	c.Flags(cc.Flags())
	return cc
}

func newContext(cmd *cobra.Command, args []string, opts *rootOptions) (*Context, error) {
	root := config.ResolveWorkingTreeRoot(opts.repo)
	if root == "" {
		abs, err := filepath.Abs(opts.repo)
		if err != nil {
			return nil, err
		}
		root = abs
	}

	ctx := &Context{
		Args:   args,
		Flags:  cmd.Flags(),
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
		Root:   root,
	}
	cfg, err := config.Load(ctx.Filesystem())
	if err != nil {
		return nil, err
	}
	ctx.Config = cfg

	level := cfg.ResolvedLogLevel()
	if opts.verbose {
		level = "debug"
	}
	if err := logging.Init(logging.Config{Level: level, Format: "console"}); err != nil {
		return nil, err
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx.Context = logging.WithCommand(base, cmd.Name())
	ctx.Logger = logging.WithContext(ctx.Context)
	ctx.Logger.Debug("command context ready", zap.String("root", root), zap.Strings("args", args))
	return ctx, nil
}

// Execute runs the root command with args.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}
