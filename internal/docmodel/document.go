// Package docmodel defines the document records shared by the content
// pipeline: slugs, frontmatter, headings and documents.
package docmodel

// Heading is one entry of a rendered document's in-page outline.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Document is a loaded documentation page.
//
// Content holds rendered HTML when the document comes from the loader and
// the raw Markdown body when it comes from a collection walk.
type Document struct {
	Slug        Slug        `json:"slug"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Content     string      `json:"content"`
	Headings    []Heading   `json:"headings,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`

	// Found is false for placeholders built from absent files.
	Found bool `json:"found"`
}

// NewPlaceholder returns the document used when slug's file is absent or
// unreadable: empty content and a title derived from the slug.
func NewPlaceholder(slug Slug) Document {
	return Document{
		Slug:        slug,
		Frontmatter: Placeholder(slug),
	}
}

// Title is shorthand for d.Frontmatter.Title().
func (d Document) Title() string {
	return d.Frontmatter.Title()
}

// Order is shorthand for d.Frontmatter.Order().
func (d Document) Order() int {
	return d.Frontmatter.Order()
}
