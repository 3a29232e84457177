package markdown

import (
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// PassName identifies one step of the render pipeline.
type PassName string

const (
	PassParse          PassName = "parse"
	PassGFM            PassName = "gfm"
	PassMath           PassName = "math"
	PassHTML           PassName = "html"
	PassHeadingIDs     PassName = "heading-ids"
	PassHeadingAnchors PassName = "heading-anchors"
	PassHighlight      PassName = "highlight"
	PassMathRender     PassName = "math-render"
	PassSanitize       PassName = "sanitize"
	PassSerialize      PassName = "serialize"
)

// Pass is one step of the render pipeline. Parse-side passes run while
// goldmark builds the AST, render-side passes while it writes HTML and post
// passes over the finished HTML. Parse, math-render and serialize have no
// configuration of their own: they are goldmark's built-in parse, render and
// output phases, so Passes() lists steps, not independent transforms.
type Pass struct {
	Name      PassName
	configure func(*pipeline, Options)
}

type postPass struct {
	name PassName
	fn   func([]byte) []byte
}

type pipeline struct {
	extensions   []goldmark.Extender
	parserOpts   []parser.Option
	rendererOpts []renderer.Option
	post         []postPass
}

// Transformer priorities; goldmark runs lower values first. Anchors need
// the ids assigned before them.
const (
	priorityHeadingIDs     = 100
	priorityHeadingAnchors = 200
	priorityAnchorRenderer = 500
)

// defaultPasses is the fixed pass order. Sanitize must stay the last pass
// that changes markup.
func defaultPasses() []Pass {
	return []Pass{
		{Name: PassParse},
		{Name: PassGFM, configure: func(p *pipeline, o Options) {
			p.extensions = append(p.extensions,
				extension.GFM,
				extension.NewFootnote(extension.WithFootnoteBacklinkTitle([]byte(o.FootnoteBackLabel))),
			)
		}},
		{Name: PassMath, configure: func(p *pipeline, _ Options) {
			// Registers the $...$ and $$...$$ parsers together with the node
			// renderers that PassMathRender relies on.
			p.extensions = append(p.extensions, mathjax.MathJax)
		}},
		{Name: PassHTML, configure: func(p *pipeline, _ Options) {
			p.rendererOpts = append(p.rendererOpts, html.WithUnsafe())
		}},
		{Name: PassHeadingIDs, configure: func(p *pipeline, _ Options) {
			p.parserOpts = append(p.parserOpts,
				parser.WithASTTransformers(util.Prioritized(&headingIDTransformer{}, priorityHeadingIDs)))
		}},
		{Name: PassHeadingAnchors, configure: func(p *pipeline, _ Options) {
			p.parserOpts = append(p.parserOpts,
				parser.WithASTTransformers(util.Prioritized(&anchorTransformer{}, priorityHeadingAnchors)))
			p.rendererOpts = append(p.rendererOpts,
				renderer.WithNodeRenderers(util.Prioritized(&anchorRenderer{}, priorityAnchorRenderer)))
		}},
		{Name: PassHighlight, configure: func(p *pipeline, o Options) {
			p.extensions = append(p.extensions, highlighting.NewHighlighting(
				highlighting.WithStyle(o.HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
					chromahtml.WithLineNumbers(o.LineNumbers),
				),
			))
		}},
		{Name: PassMathRender},
		{Name: PassSanitize, configure: func(p *pipeline, _ Options) {
			policy := newPolicy()
			p.post = append(p.post, postPass{name: PassSanitize, fn: policy.SanitizeBytes})
		}},
		{Name: PassSerialize},
	}
}
