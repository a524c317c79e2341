package main

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/keshon/surf/internal/command"
	_ "github.com/keshon/surf/internal/command/cat"
	_ "github.com/keshon/surf/internal/command/config"
	_ "github.com/keshon/surf/internal/command/diff"
	_ "github.com/keshon/surf/internal/command/lastcommit"
	_ "github.com/keshon/surf/internal/command/ls"
	_ "github.com/keshon/surf/internal/command/size"
	_ "github.com/keshon/surf/internal/command/status"
)

type section struct {
	Name    string
	Brief   string
	Aliases string
	Usage   string
	Help    string
}

func main() {
	tpl, err := template.ParseFiles("README.md.tmpl")
	if err != nil {
		fmt.Printf("Failed to parse template: %v\n", err)
		os.Exit(1)
	}

	var sections []section
	for _, cmd := range command.AllCommands() {
		aliases := cmd.Aliases()
		if s := cmd.Short(); s != "" {
			aliases = append([]string{s}, aliases...)
		}
		sections = append(sections, section{
			Name:    cmd.Name(),
			Brief:   cmd.Brief(),
			Aliases: strings.Join(aliases, ", "),
			Usage:   "surf " + cmd.Usage(),
			Help:    cmd.Help(),
		})
	}

	outFile, err := os.Create("README.md")
	if err != nil {
		fmt.Printf("Failed to create README.md: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := tpl.Execute(outFile, map[string]any{"Commands": sections}); err != nil {
		fmt.Printf("Failed to render template: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("README.md generated successfully")
}
