package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/surf/internal/command"
	"github.com/keshon/surf/internal/config"
	"github.com/keshon/surf/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "config" }
func (c *Command) Short() string     { return "" }
func (c *Command) Aliases() []string { return []string{"cfg"} }
func (c *Command) Usage() string     { return "config [options]" }
func (c *Command) Brief() string     { return "Show or initialize the project configuration" }
func (c *Command) Help() string {
	return `Print the effective configuration, the defaults merged with .surf.json.

Options:
      --init   Write the effective configuration to .surf.json.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.Bool("init", false, "write .surf.json")
}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 0 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	if ctx.Bool("init") {
		if err := config.Save(ctx.Filesystem(), ctx.Config); err != nil {
			return fmt.Errorf("write %s: %w", config.ConfigFile, err)
		}
		fmt.Fprintf(ctx.Out, "wrote %s\n", config.ConfigFile)
		return nil
	}
	data, err := json.MarshalIndent(ctx.Config, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, string(data))
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
