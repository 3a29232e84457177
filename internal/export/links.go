package export

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// linkIndex answers whether a relative link resolves to a document or to a
// directory that contains documents.
type linkIndex map[string]struct{}

func newLinkIndex(docs []docmodel.Document) linkIndex {
	idx := linkIndex{}
	for _, d := range docs {
		s := d.Slug
		for !s.IsZero() {
			idx[s.String()] = struct{}{}
			s = s.Parent()
		}
	}
	return idx
}

// broken returns the relative link destinations in body that resolve to
// nothing, in document order.
func (idx linkIndex) broken(from docmodel.Slug, body []byte) []string {
	var out []string
	for _, l := range markdown.ExtractLinks(body) {
		if l.Kind != markdown.LinkKindInline || !l.IsRelative() {
			continue
		}
		target, ok := resolveLink(from, l.Destination)
		if !ok || target.IsZero() {
			continue
		}
		if _, found := idx[target.String()]; !found || !target.Valid() {
			out = append(out, l.Destination)
		}
	}
	return out
}

// resolveLink maps a link destination onto a slug relative to the linking
// document's directory. Pure fragment and query links report false.
func resolveLink(from docmodel.Slug, dest string) (docmodel.Slug, bool) {
	dest = strings.TrimSpace(dest)
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return docmodel.Slug{}, false
	}
	dest = strings.TrimSuffix(strings.TrimSuffix(dest, docmodel.MarkdownExt), ".html")

	var joined string
	if strings.HasPrefix(dest, "/") {
		joined = path.Clean(dest)
	} else {
		joined = path.Join(from.Parent().String(), dest)
	}
	return docmodel.ParseSlug(joined), true
}
