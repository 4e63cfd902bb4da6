package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/factpress/cmd/factpress/commands"
	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("factpress"),
		kong.Description("Generate a bilingual static site of short LLM-written articles."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err))
	}
}
