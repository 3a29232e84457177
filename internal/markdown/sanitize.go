package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	headingIDPattern = regexp.MustCompile(`^[\p{L}\p{N}_:.-]+$`)
	tabIndexPattern  = regexp.MustCompile(`^-?\d+$`)
	booleanPattern   = regexp.MustCompile(`^(true|false)$`)
	docRolePattern   = regexp.MustCompile(`^doc-[a-z]+$`)
	checkboxPattern  = regexp.MustCompile(`^checkbox$`)
)

// newPolicy returns the allow-list applied to rendered HTML. It starts from
// bluemonday's user-generated-content policy and admits the markup produced
// by the heading, highlighting, math, footnote and task-list passes.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	p.AllowAttrs("id").Matching(headingIDPattern).
		OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")

	// Heading anchors and chroma's <pre tabindex="0">.
	p.AllowAttrs("aria-hidden").Matching(booleanPattern).OnElements("a", "span")
	p.AllowAttrs("tabindex").Matching(tabIndexPattern).OnElements("a", "pre")

	// Footnote references and backlinks.
	p.AllowAttrs("role").Matching(docRolePattern).OnElements("a", "div", "section")

	// GFM task lists.
	p.AllowAttrs("type").Matching(checkboxPattern).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	return p
}

// Sanitize applies the render allow-list to an HTML fragment.
func Sanitize(fragment string) string {
	return newPolicy().Sanitize(fragment)
}
