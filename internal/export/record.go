package export

import (
	"git.home.luguber.info/inful/docsite/internal/docmodel"
)

// Record is the JSON sidecar written next to each rendered document.
type Record struct {
	Slug        string               `json:"slug"`
	Segments    []string             `json:"segments"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Order       int                  `json:"order"`
	Frontmatter docmodel.Frontmatter `json:"frontmatter"`
	Headings    []docmodel.Heading   `json:"headings"`
	Fingerprint string               `json:"fingerprint,omitempty"`
}

// NewRecord builds the sidecar for a loaded document.
func NewRecord(doc docmodel.Document) Record {
	headings := doc.Headings
	if headings == nil {
		headings = []docmodel.Heading{}
	}
	return Record{
		Slug:        doc.Slug.String(),
		Segments:    doc.Slug.Segments(),
		Title:       doc.Title(),
		Description: doc.Frontmatter.Description(),
		Order:       doc.Order(),
		Frontmatter: doc.Frontmatter,
		Headings:    headings,
		Fingerprint: doc.Fingerprint,
	}
}
