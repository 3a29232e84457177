// Package commands implements the docsite subcommands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/git"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/workspace"
	"github.com/alecthomas/kong"
)

// Global carries process-wide state into every command.
type Global struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewGlobal returns a Global writing to stdout and logging to stderr.
func NewGlobal(ctx context.Context, stdout, stderr io.Writer) *Global {
	return &Global{Ctx: ctx, Stdout: stdout, Stderr: stderr}
}

// CLI is the root command line.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (optional)" default:"docsite.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format: text or json (overrides config)" placeholder:"FORMAT"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" help:"Print the rendered HTML of one document"`
	TOC    TOCCmd    `cmd:"" name:"toc" help:"Print the navigation tree"`
	Paths  PathsCmd  `cmd:"" help:"Print the static path of every document"`
	Export ExportCmd `cmd:"" help:"Write a static export"`
	Watch  WatchCmd  `cmd:"" help:"Export, then re-export whenever content changes"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
}

// AfterApply installs a logger from the flags and DOCSITE_LOG_LEVEL. It is
// refined once the configuration file has been read.
func (c *CLI) AfterApply(g *Global) error {
	format, err := config.ParseLogFormat(c.LogFormat)
	if err != nil {
		return fmt.Errorf("--log-format: %w", err)
	}
	level := slog.LevelInfo
	if v := lookupLogLevel(); v != nil {
		level = *v
	}
	c.installLogger(g, level, format)
	return nil
}

// loadConfig reads the configuration and applies its logging section
// wherever no flag overrides it.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	format := cfg.Logging.Format
	if c.LogFormat != "" {
		format, _ = config.ParseLogFormat(c.LogFormat)
	}
	c.installLogger(g, cfg.Logging.Level, format)
	return cfg, nil
}

func lookupLogLevel() *slog.Level {
	raw := os.Getenv(config.EnvLogLevel)
	if raw == "" {
		return nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return nil
	}
	return &level
}

func (c *CLI) installLogger(g *Global, level slog.Level, format config.LogFormat) {
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(g.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(g.Stderr, opts)
	}
	g.Logger = slog.New(handler)
	slog.SetDefault(g.Logger)
}

// source is a resolved content root plus the commit it came from.
type source struct {
	root    string
	commit  string
	cleanup func()
}

// openSource syncs the git checkout when one is configured and otherwise
// uses content.root directly.
func openSource(ctx context.Context, g *Global, cfg *config.Config) (source, error) {
	if !cfg.Content.Git.Enabled() {
		commit, _ := git.LocalHead(cfg.Content.Root)
		return source{root: cfg.Content.Root, commit: commit, cleanup: func() {}}, nil
	}

	ws := workspace.ForCheckout(cfg.Content.Git.Workspace, g.Logger)
	if err := ws.Create(); err != nil {
		return source{}, err
	}
	cleanup := func() {
		if err := ws.Cleanup(); err != nil {
			g.Logger.Warn("Workspace cleanup failed", logfields.Error(err))
		}
	}
	dir, err := ws.Path()
	if err != nil {
		cleanup()
		return source{}, err
	}

	co, err := git.NewSource(*cfg.Content.Git, g.Logger).Sync(ctx, dir)
	if err != nil {
		cleanup()
		return source{}, err
	}
	return source{root: co.ContentRoot, commit: co.Commit, cleanup: cleanup}, nil
}

func newRenderer(cfg *config.Config, logger *slog.Logger) *markdown.Renderer {
	return markdown.New(markdown.Options{
		HighlightStyle:    cfg.Render.HighlightStyle,
		LineNumbers:       cfg.Render.LineNumbers,
		FootnoteBackLabel: cfg.Render.FootnoteBackLabel,
	}, logger)
}

func newLoader(cfg *config.Config, root string, logger *slog.Logger, rec metrics.Recorder) *docs.Loader {
	return docs.NewLoader(content.NewDirStore(root), newRenderer(cfg, logger), logger).WithRecorder(rec)
}

// prepare loads config, opens the source and returns a loader over it.
func prepare(g *Global, root *CLI) (*config.Config, source, *docs.Loader, error) {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return nil, source{}, nil, err
	}
	src, err := openSource(g.Ctx, g, cfg)
	if err != nil {
		return nil, source{}, nil, err
	}
	return cfg, src, newLoader(cfg, src.root, g.Logger, metrics.NoopRecorder{}), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
