package markdown

import (
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// LinkKind classifies a link found in a Markdown body.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link destination found in a Markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// IsRelative reports whether the destination points inside the site: no
// scheme, no host and not a bare fragment.
func (l Link) IsRelative() bool {
	d := strings.TrimSpace(l.Destination)
	if d == "" || strings.HasPrefix(d, "#") || strings.HasPrefix(d, "//") {
		return false
	}
	if i := strings.IndexAny(d, ":/?#"); i >= 0 && d[i] == ':' {
		return false
	}
	return l.Kind != LinkKindAuto
}

var linkParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// ExtractLinks parses a Markdown body and returns its link destinations in
// document order, followed by reference definitions sorted by label. Links in
// code spans and code blocks are not links and are not returned.
func ExtractLinks(body []byte) []Link {
	ctx := parser.NewContext()
	root := linkParser.Parse(text.NewReader(body), parser.WithContext(ctx))

	var links []Link
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *ast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *ast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return ast.WalkContinue, nil
	})

	refs := ctx.References()
	slices.SortFunc(refs, func(a, b parser.Reference) int {
		return strings.Compare(string(a.Label()), string(b.Label()))
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}
