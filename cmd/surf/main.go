package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/keshon/surf/internal/command"
	_ "github.com/keshon/surf/internal/command/cat"
	_ "github.com/keshon/surf/internal/command/config"
	_ "github.com/keshon/surf/internal/command/diff"
	_ "github.com/keshon/surf/internal/command/lastcommit"
	_ "github.com/keshon/surf/internal/command/ls"
	_ "github.com/keshon/surf/internal/command/size"
	_ "github.com/keshon/surf/internal/command/status"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := command.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
