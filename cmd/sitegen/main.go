package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/cmd/sitegen/commands"
)

func main() {
	cli := &commands.CLI{}
	ktx := kong.Parse(cli,
		kong.Name("sitegen"),
		kong.Description("Rule-driven static-site compiler with dependency tracking."),
		kong.UsageOnError(),
	)

	if err := ktx.Run(cli); err != nil {
		fmt.Fprintln(os.Stderr, commands.RenderError(err))
		os.Exit(1)
	}
}
