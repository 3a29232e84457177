// Command docsite renders a tree of Markdown documentation into sanitized
// HTML, navigation data and static export files.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/version"
	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli := &commands.CLI{}
	global := commands.NewGlobal(ctx, os.Stdout, os.Stderr)
	parser := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Render Markdown documentation into HTML, navigation trees and static exports."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := parser.Run(cli)
	stop()
	if err != nil {
		logger := global.Logger
		if logger == nil {
			logger = slog.Default()
		}
		ferrors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
	}
}
