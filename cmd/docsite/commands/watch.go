package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docsite/internal/export"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements 'watch'.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory (defaults to output.directory)"`
	Interval *time.Duration `help:"Also rebuild on this interval (overrides watch.interval; 0 disables)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	src, err := openSource(g.Ctx, g, cfg)
	if err != nil {
		return err
	}
	defer src.cleanup()

	interval := cfg.Watch.Interval
	if w.Interval != nil {
		interval = *w.Interval
	}
	out := outputDir(w.Output, cfg)
	exp := export.New(newLoader(cfg, src.root, g.Logger, metrics.NoopRecorder{}), g.Logger)

	first := true
	rebuild := func(ctx context.Context, _ string) error {
		// Clean applies to the first export only; later ones are incremental.
		req := export.Request{OutputDir: out, Commit: src.commit, Clean: first && cfg.Output.Clean}
		first = false
		_, err := exp.Export(ctx, req)
		return err
	}

	watcher := watch.New(watch.Options{
		Root:     src.root,
		Debounce: cfg.Watch.Debounce,
		Interval: interval,
	}, rebuild, g.Logger)
	return watcher.Run(g.Ctx)
}
