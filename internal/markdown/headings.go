package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const emptyHeadingSlug = "heading"

// slugger hands out unique heading ids within one document. The first
// occurrence of a slug is used as is; later ones get -1, -2, ... appended.
type slugger struct {
	used  map[string]struct{}
	count map[string]int
}

func newSlugger() *slugger {
	return &slugger{used: map[string]struct{}{}, count: map[string]int{}}
}

func (s *slugger) next(text string) string {
	base := slugify(text)
	if base == "" {
		base = emptyHeadingSlug
	}

	id := base
	for n := s.count[base]; ; n++ {
		if n > 0 {
			id = base + "-" + strconv.Itoa(n)
		}
		if _, taken := s.used[id]; !taken {
			s.count[base] = n + 1
			break
		}
	}
	s.used[id] = struct{}{}
	return id
}

// slugify lower-cases text, keeps letters, digits, '-' and '_', turns
// whitespace into '-' and drops everything else.
func slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return b.String()
}

// headingText returns the plain text of a heading's inline content.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			value := v.Segment.Value(source)
			if !v.IsRaw() {
				value = util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(value)))
			}
			b.Write(value)
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(source))
		case *ast.RawHTML, *AnchorLink:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

type headingIDTransformer struct{}

func (t *headingIDTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	slugs := newSlugger()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		h.SetAttributeString("id", []byte(slugs.next(headingText(h, source))))
		return ast.WalkSkipChildren, nil
	})
}

type anchorTransformer struct{}

func (t *anchorTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				h.AppendChild(h, NewAnchorLink(b))
			}
		}
		return ast.WalkSkipChildren, nil
	})
}

// KindAnchorLink is the NodeKind of AnchorLink.
var KindAnchorLink = ast.NewNodeKind("AnchorLink")

// AnchorLink is the self-link appended to every heading. It is hidden from
// assistive technology and from the tab order.
type AnchorLink struct {
	ast.BaseInline
	ID []byte
}

// NewAnchorLink returns an anchor pointing at the heading id.
func NewAnchorLink(id []byte) *AnchorLink {
	return &AnchorLink{ID: id}
}

// Kind implements ast.Node.
func (n *AnchorLink) Kind() ast.NodeKind {
	return KindAnchorLink
}

// Dump implements ast.Node.
func (n *AnchorLink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": string(n.ID)}, nil)
}

type anchorRenderer struct{}

func (r *anchorRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAnchorLink, r.render)
}

func (r *anchorRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*AnchorLink)
	_, _ = w.WriteString(`<a href="#`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.ID, false)))
	_, _ = w.WriteString(`" class="anchor-link" aria-hidden="true" tabindex="-1"><span class="anchor-icon">#</span></a>`)
	return ast.WalkSkipChildren, nil
}
