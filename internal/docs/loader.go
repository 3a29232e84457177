// Package docs loads documentation pages from a content store: single
// documents rendered to HTML, the raw collection and its static paths.
package docs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/content"
	cerrors "git.home.luguber.info/inful/docsite/internal/content/errors"
	"git.home.luguber.info/inful/docsite/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// Loader turns content files into documents. It holds no state between
// calls; every Load reads the store afresh.
type Loader struct {
	store    *content.Store
	renderer *markdown.Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewLoader creates a loader over store that renders with renderer.
func NewLoader(store *content.Store, renderer *markdown.Renderer, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		store:    store,
		renderer: renderer,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder used for render timings.
func (l *Loader) WithRecorder(r metrics.Recorder) *Loader {
	if r != nil {
		l.recorder = r
	}
	return l
}

// Renderer returns the renderer documents are converted with.
func (l *Loader) Renderer() *markdown.Renderer {
	return l.renderer
}

// Store returns the content store the loader reads from.
func (l *Loader) Store() *content.Store {
	return l.store
}

// Load returns the rendered document for slug.
//
// Load never fails. An absent or unreadable file yields a placeholder with
// empty content and a title taken from the last slug segment. A render
// failure is logged and yields the document with empty content.
func (l *Loader) Load(ctx context.Context, slug docmodel.Slug) docmodel.Document {
	raw, err := l.store.Read(slug)
	if err != nil {
		l.logger.DebugContext(ctx, "Document unavailable, using placeholder",
			logfields.Slug(slug.String()), logfields.Error(err))
		return docmodel.NewPlaceholder(slug)
	}

	doc := l.parse(slug, raw)

	start := time.Now()
	html, err := l.renderer.Render(ctx, []byte(doc.Content))
	l.recorder.ObserveRenderDuration(time.Since(start))
	if err != nil {
		l.logger.Warn("Render failed, returning empty content",
			logfields.Slug(slug.String()), logfields.Error(err))
		doc.Content = ""
		return doc
	}

	doc.Content = html
	doc.Headings = markdown.Outline(html)
	return doc
}

// LoadString is Load for a "/"-joined slug.
func (l *Loader) LoadString(ctx context.Context, slug string) docmodel.Document {
	return l.Load(ctx, docmodel.ParseSlug(slug))
}

// LoadAll walks the content store and returns every document with
// normalised frontmatter and its raw Markdown body as content, in walk order.
func (l *Loader) LoadAll(ctx context.Context) ([]docmodel.Document, error) {
	files, err := l.store.Walk(ctx)
	if err != nil {
		return nil, classifyWalkError(err, l.store.Root())
	}

	out := make([]docmodel.Document, 0, len(files))
	for _, f := range files {
		raw, err := l.store.Read(f.Slug)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryDocs, "failed to read document").
				WithContext("path", f.Path).
				Build()
		}
		out = append(out, l.parse(f.Slug, raw))
	}

	l.logger.Debug("Loaded documents", logfields.Path(l.store.Root()), logfields.Count(len(out)))
	return out, nil
}

// StaticPaths returns the slug segments of every document in walk order.
func (l *Loader) StaticPaths(ctx context.Context) ([][]string, error) {
	files, err := l.store.Walk(ctx)
	if err != nil {
		return nil, classifyWalkError(err, l.store.Root())
	}
	paths := make([][]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Slug.Segments())
	}
	return paths, nil
}

// parse builds the raw document: frontmatter split off and normalised,
// Markdown body as content.
func (l *Loader) parse(slug docmodel.Slug, raw []byte) docmodel.Document {
	fields, body := frontmatter.Extract(raw)

	fp, err := frontmatter.Fingerprint(fields, body)
	if err != nil {
		l.logger.Debug("Fingerprint unavailable", logfields.Slug(slug.String()), logfields.Error(err))
	}

	return docmodel.Document{
		Slug:        slug,
		Frontmatter: docmodel.NormalizeFrontmatter(fields, slug),
		Content:     string(body),
		Fingerprint: fp,
		Found:       true,
	}
}

func classifyWalkError(err error, root string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, cerrors.ErrContentRootNotFound):
		return ferrors.WrapError(err, ferrors.CategoryNotFound, "content root does not exist").
			WithContext("root", root).
			Build()
	default:
		return ferrors.FileSystemError("content walk failed").WithCause(err).
			WithContext("root", root).
			Build()
	}
}
