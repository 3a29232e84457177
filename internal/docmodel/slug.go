package docmodel

import (
	"slices"
	"strings"
)

// Slug is the ordered list of path segments that addresses a document,
// e.g. ["guides", "quickstart"] for guides/quickstart.md.
//
// The zero value is the empty slug. Slugs are immutable.
type Slug struct {
	segments []string
}

// NewSlug builds a slug from path segments. Segments may themselves contain
// "/" and are split on it; empty and "." segments are dropped.
func NewSlug(segments ...string) Slug {
	var out []string
	for _, seg := range segments {
		for part := range strings.SplitSeq(seg, "/") {
			if part == "" || part == "." {
				continue
			}
			out = append(out, part)
		}
	}
	return Slug{segments: out}
}

// ParseSlug builds a slug from a "/"-joined string. ParseSlug("a/b") and
// NewSlug("a", "b") are equal.
func ParseSlug(s string) Slug {
	return NewSlug(s)
}

// Segments returns a copy of the slug's segments.
func (s Slug) Segments() []string {
	return slices.Clone(s.segments)
}

// Len returns the number of segments.
func (s Slug) Len() int {
	return len(s.segments)
}

// Last returns the final segment, or "" for the empty slug.
func (s Slug) Last() string {
	if len(s.segments) == 0 {
		return ""
	}
	return s.segments[len(s.segments)-1]
}

// Parent returns the slug without its final segment.
func (s Slug) Parent() Slug {
	if len(s.segments) <= 1 {
		return Slug{}
	}
	return Slug{segments: slices.Clone(s.segments[:len(s.segments)-1])}
}

// IsZero reports whether the slug has no segments.
func (s Slug) IsZero() bool {
	return len(s.segments) == 0
}

// Valid reports whether the slug can address a file under the content root:
// it must be non-empty and must not contain "..".
func (s Slug) Valid() bool {
	return len(s.segments) > 0 && !slices.Contains(s.segments, "..")
}

// Equal reports whether two slugs have the same segments.
func (s Slug) Equal(other Slug) bool {
	return slices.Equal(s.segments, other.segments)
}

// String joins the segments with "/".
func (s Slug) String() string {
	return strings.Join(s.segments, "/")
}

// File returns the slash-separated path of the Markdown file for the slug,
// relative to the content root.
func (s Slug) File() string {
	return s.String() + MarkdownExt
}

// MarshalText encodes the slug as its joined form.
func (s Slug) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a joined slug.
func (s *Slug) UnmarshalText(text []byte) error {
	*s = ParseSlug(string(text))
	return nil
}

// MarkdownExt is the extension of document files.
const MarkdownExt = ".md"

// SlugFromFile derives the slug of a content file from its slash-separated
// path relative to the content root. ok is false for non-Markdown files.
func SlugFromFile(rel string) (slug Slug, ok bool) {
	trimmed, found := strings.CutSuffix(rel, MarkdownExt)
	if !found {
		return Slug{}, false
	}
	slug = ParseSlug(trimmed)
	return slug, !slug.IsZero()
}
