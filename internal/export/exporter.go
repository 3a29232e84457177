// Package export writes the content collection as static files: one HTML
// fragment and JSON sidecar per document plus the navigation tree, the
// static path list, a highlighting stylesheet and a build manifest.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	"git.home.luguber.info/inful/docsite/internal/docs"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/observability"
	"git.home.luguber.info/inful/docsite/internal/toc"
	"git.home.luguber.info/inful/docsite/internal/version"
)

// Output layout relative to the export directory.
const (
	DocsDir        = "docs"
	TOCFile        = "toc.json"
	PathsFile      = "paths.json"
	StylesheetFile = "assets/syntax.css"
)

// Stage names used for logging and metrics.
const (
	StageLoad   = "load"
	StageRender = "render"
	StagePrune  = "prune"
	StageIndex  = "index"
)

// Request describes one export run.
type Request struct {
	OutputDir string

	// Force re-renders every document regardless of the previous manifest.
	Force bool

	// Clean removes OutputDir before exporting.
	Clean bool

	// Commit is the source revision recorded in the manifest, if known.
	Commit string
}

// Result summarises an export run.
type Result struct {
	BuildID     string
	OutputDir   string
	Rendered    int
	Skipped     int
	Removed     int
	BrokenLinks int
	ContentHash string
	Duration    time.Duration
}

// Exporter writes static exports from a loader.
type Exporter struct {
	loader   *docs.Loader
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// New returns an exporter reading through loader.
func New(loader *docs.Loader, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		loader:   loader,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// WithRecorder sets the metrics recorder.
func (e *Exporter) WithRecorder(r metrics.Recorder) *Exporter {
	if r != nil {
		e.recorder = r
	}
	return e
}

// Export runs one export. Unchanged documents are skipped, outputs for
// documents that disappeared are removed, and the manifest is written last
// so an interrupted export is redone on the next run.
func (e *Exporter) Export(ctx context.Context, req Request) (res Result, err error) {
	if req.OutputDir == "" {
		return Result{}, ferrors.ValidationError("export needs an output directory").WithCause(ErrNoOutputDir).Build()
	}

	start := e.now()
	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)
	log := observability.Logger(ctx, e.logger)
	res = Result{BuildID: buildID, OutputDir: req.OutputDir}

	defer func() {
		res.Duration = e.now().Sub(start)
		e.recorder.ObserveBuildDuration(res.Duration)
		switch {
		case err == nil:
			e.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			e.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		default:
			e.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		}
	}()

	if req.Clean {
		if err := os.RemoveAll(req.OutputDir); err != nil {
			return res, ferrors.FileSystemError("failed to clean output directory").WithCause(err).
				WithContext("path", req.OutputDir).
				Build()
		}
	}

	var prev *manifest.Manifest
	if !req.Force && !req.Clean {
		prev, err = manifest.Read(filepath.Join(req.OutputDir, manifest.FileName))
		if err != nil {
			log.Warn("Ignoring unreadable manifest", logfields.Error(err))
			prev = nil
		}
	}

	renderHash, err := manifest.HashSettings(e.loader.Renderer().Options())
	if err != nil {
		return res, ferrors.InternalError("failed to hash render options").WithCause(err).Build()
	}

	var collection []docmodel.Document
	if err = e.stage(ctx, StageLoad, func(ctx context.Context) (err error) {
		collection, err = e.loader.LoadAll(ctx)
		return err
	}); err != nil {
		return res, err
	}

	next := manifest.New(buildID, version.String())
	next.Commit = req.Commit
	next.RenderHash = renderHash

	if err = e.stage(ctx, StageRender, func(ctx context.Context) error {
		return e.renderAll(ctx, req.OutputDir, collection, prev, next, &res)
	}); err != nil {
		return res, err
	}
	if err = e.stage(ctx, StagePrune, func(ctx context.Context) error {
		return e.prune(ctx, req.OutputDir, prev, next, &res)
	}); err != nil {
		return res, err
	}
	if err = e.stage(ctx, StageIndex, func(context.Context) error {
		return e.writeIndex(req.OutputDir, collection)
	}); err != nil {
		return res, err
	}

	next.Duration = e.now().Sub(start).Milliseconds()
	data, err := next.ToJSON()
	if err == nil {
		err = writeFile(filepath.Join(req.OutputDir, manifest.FileName), append(data, '\n'))
	}
	if err != nil {
		return res, ferrors.ExportError("failed to write manifest").WithCause(err).Build()
	}
	res.ContentHash = next.Hash()

	e.recorder.AddDocuments(metrics.DocumentRendered, res.Rendered)
	e.recorder.AddDocuments(metrics.DocumentSkipped, res.Skipped)
	e.recorder.AddDocuments(metrics.DocumentRemoved, res.Removed)
	e.recorder.IncBrokenLinks(res.BrokenLinks)

	log.Info("Export complete",
		logfields.Path(req.OutputDir),
		slog.Int("rendered", res.Rendered),
		slog.Int("skipped", res.Skipped),
		slog.Int("removed", res.Removed),
		slog.Int("broken_links", res.BrokenLinks),
		logfields.DurationMS(float64(e.now().Sub(start).Microseconds())/1000))
	return res, nil
}

// stage runs fn with the stage recorded in ctx, timing it and counting its result.
func (e *Exporter) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	start := e.now()
	err := fn(ctx)
	e.recorder.ObserveStageDuration(name, e.now().Sub(start))

	switch {
	case err == nil:
		e.recorder.IncStageResult(name, metrics.ResultSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		e.recorder.IncStageResult(name, metrics.ResultCanceled)
	default:
		e.recorder.IncStageResult(name, metrics.ResultFatal)
	}
	return err
}

func (e *Exporter) renderAll(ctx context.Context, out string, collection []docmodel.Document, prev, next *manifest.Manifest, res *Result) error {
	log := observability.Logger(ctx, e.logger)
	links := newLinkIndex(collection)

	for _, raw := range collection {
		if err := ctx.Err(); err != nil {
			return err
		}
		slug := raw.Slug.String()
		next.Documents[slug] = raw.Fingerprint

		for _, dest := range links.broken(raw.Slug, []byte(raw.Content)) {
			res.BrokenLinks++
			log.Warn("Broken internal link", logfields.Slug(slug), logfields.URL(dest))
		}

		htmlPath, jsonPath := documentPaths(out, raw.Slug)
		if prev.Unchanged(slug, raw.Fingerprint, next.RenderHash) && exists(htmlPath) && exists(jsonPath) {
			res.Skipped++
			log.Debug("Document unchanged", logfields.Slug(slug))
			continue
		}

		doc := e.loader.Load(ctx, raw.Slug)
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeFile(htmlPath, []byte(doc.Content)); err != nil {
			return exportError(err, slug)
		}
		if err := writeJSON(jsonPath, NewRecord(doc)); err != nil {
			return exportError(err, slug)
		}
		res.Rendered++
		log.Debug("Document exported", logfields.Slug(slug), logfields.File(htmlPath))
	}
	return nil
}

func (e *Exporter) prune(ctx context.Context, out string, prev, next *manifest.Manifest, res *Result) error {
	log := observability.Logger(ctx, e.logger)
	docsRoot := filepath.Join(out, DocsDir)

	for _, slug := range prev.Stale(next) {
		if err := ctx.Err(); err != nil {
			return err
		}
		htmlPath, jsonPath := documentPaths(out, docmodel.ParseSlug(slug))
		for _, p := range []string{htmlPath, jsonPath} {
			if err := removeFile(p, docsRoot); err != nil {
				return ferrors.FileSystemError("failed to remove stale output").WithCause(err).
					WithContext("path", p).
					Build()
			}
		}
		res.Removed++
		log.Info("Removed stale document", logfields.Slug(slug))
	}
	return nil
}

func (e *Exporter) writeIndex(out string, collection []docmodel.Document) error {
	if err := writeJSON(filepath.Join(out, TOCFile), toc.Build(collection)); err != nil {
		return exportError(err, "")
	}

	paths := make([][]string, 0, len(collection))
	for _, d := range collection {
		paths = append(paths, d.Slug.Segments())
	}
	if err := writeJSON(filepath.Join(out, PathsFile), paths); err != nil {
		return exportError(err, "")
	}

	var css bytes.Buffer
	if err := e.loader.Renderer().WriteStylesheet(&css); err != nil {
		return ferrors.RenderError("failed to generate stylesheet").WithCause(err).Build()
	}
	if err := writeFile(filepath.Join(out, filepath.FromSlash(StylesheetFile)), css.Bytes()); err != nil {
		return exportError(err, "")
	}
	return nil
}

// documentPaths returns the HTML and JSON output paths for slug.
func documentPaths(out string, slug docmodel.Slug) (htmlPath, jsonPath string) {
	base := filepath.Join(append([]string{out, DocsDir}, slug.Segments()...)...)
	return base + ".html", base + ".json"
}

func exportError(err error, slug string) error {
	b := ferrors.ExportError("failed to write export output").WithCause(err)
	if slug != "" {
		b = b.WithContext("slug", slug)
	}
	return b.Build()
}

// String renders a one-line summary.
func (r Result) String() string {
	return fmt.Sprintf("exported to %s: %d rendered, %d skipped, %d removed, %d broken links",
		r.OutputDir, r.Rendered, r.Skipped, r.Removed, r.BrokenLinks)
}
