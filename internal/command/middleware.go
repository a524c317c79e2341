package command

// Middleware decorates a command's Run. It must keep the command's name,
// aliases and flags, which is what Wrap does.
type Middleware func(Command) Command

// RunFunc runs a command against a context.
type RunFunc func(ctx *Context) error

// WrappedCommand is a command whose Run goes through Around first. Around
// receives the inner command's Run as next.
type WrappedCommand struct {
	Command
	Around func(ctx *Context, next RunFunc) error
}

// Wrap returns cmd with around placed in front of its Run.
func Wrap(cmd Command, around func(ctx *Context, next RunFunc) error) *WrappedCommand {
	return &WrappedCommand{Command: cmd, Around: around}
}

func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Around == nil {
		return w.Command.Run(ctx)
	}
	return w.Around(ctx, w.Command.Run)
}

// Unwrap returns the command w decorates.
func (w *WrappedCommand) Unwrap() Command { return w.Command }

// Unwrap strips every WrappedCommand layer from cmd.
func Unwrap(cmd Command) Command {
	for {
		w, ok := cmd.(interface{ Unwrap() Command })
		if !ok {
			return cmd
		}
		cmd = w.Unwrap()
	}
}

// ApplyMiddlewares wraps cmd with mws. The first middleware runs innermost,
// so the last one sees the call first. Nil entries are skipped.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		if mw == nil {
			continue
		}
		cmd = mw(cmd)
	}
	return cmd
}
