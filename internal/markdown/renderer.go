// Package markdown converts Markdown bodies into sanitized HTML fragments.
//
// Rendering runs a fixed list of passes (see Renderer.Passes): CommonMark
// parsing, GitHub-flavored extensions and footnotes, math spans, raw HTML
// pass-through, heading ids and anchors, chroma highlighting, and finally
// bluemonday sanitization.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
)

// ErrConvertFailed indicates goldmark could not convert a Markdown body.
var ErrConvertFailed = errors.New("markdown conversion failed")

// Renderer converts Markdown to sanitized HTML. It is immutable after New
// and safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	passes []Pass
	post   []postPass
	opts   Options
	logger *slog.Logger
}

// New builds a renderer with the default pass list.
func New(opts Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = DefaultOptions().HighlightStyle
	}

	passes := defaultPasses()
	p := &pipeline{}
	for _, pass := range passes {
		if pass.configure != nil {
			pass.configure(p, opts)
		}
	}

	md := goldmark.New(
		goldmark.WithExtensions(p.extensions...),
		goldmark.WithParserOptions(p.parserOpts...),
		goldmark.WithRendererOptions(p.rendererOpts...),
	)

	return &Renderer{
		md:     md,
		passes: passes,
		post:   p.post,
		opts:   opts,
		logger: logger,
	}
}

// Passes returns the pass names in execution order.
func (r *Renderer) Passes() []PassName {
	names := make([]PassName, 0, len(r.passes))
	for _, p := range r.passes {
		names = append(names, p.Name)
	}
	return names
}

// Options returns the options the renderer was built with.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render converts a Markdown body (frontmatter already removed) to HTML.
func (r *Renderer) Render(ctx context.Context, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConvertFailed, err)
	}

	out := buf.Bytes()
	for _, p := range r.post {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		before := len(out)
		out = p.fn(out)
		r.logger.Debug("Render pass applied",
			logfields.Pass(string(p.name)),
			slog.Int("bytes_in", before),
			slog.Int("bytes_out", len(out)))
	}
	return string(out), nil
}

// WriteStylesheet writes the CSS for the highlight classes emitted by the
// renderer, using the configured chroma style.
func (r *Renderer) WriteStylesheet(w io.Writer) error {
	formatter := html.New(html.WithClasses(true), html.WithLineNumbers(r.opts.LineNumbers))
	return formatter.WriteCSS(w, styles.Get(r.opts.HighlightStyle))
}
