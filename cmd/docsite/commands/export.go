package commands

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/export"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// ExportCmd implements 'export'.
type ExportCmd struct {
	Output      string `short:"o" help:"Output directory (defaults to output.directory)"`
	Force       bool   `help:"Re-render every document, ignoring the previous manifest"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	src, err := openSource(g.Ctx, g, cfg)
	if err != nil {
		return err
	}
	defer src.cleanup()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if e.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		rec = prom
	}

	exp := export.New(newLoader(cfg, src.root, g.Logger, rec), g.Logger).WithRecorder(rec)
	res, err := exp.Export(g.Ctx, export.Request{
		OutputDir: outputDir(e.Output, cfg),
		Force:     e.Force,
		Clean:     cfg.Output.Clean,
		Commit:    src.commit,
	})

	if prom != nil {
		if werr := prom.WriteTextfile(e.MetricsFile); werr != nil {
			g.Logger.Warn("Writing metrics file failed", logfields.Path(e.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(g.Stdout, "%s in %s\n", res, res.Duration.Round(time.Millisecond))
	return err
}

func outputDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Output.Directory
}
