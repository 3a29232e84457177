package markdown

// Options tunes the render passes. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// HighlightStyle names the chroma style used for generated stylesheets.
	HighlightStyle string

	// LineNumbers annotates highlighted code blocks with line numbers.
	LineNumbers bool

	// FootnoteBackLabel is the title of footnote backlinks.
	FootnoteBackLabel string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		HighlightStyle:    "github",
		LineNumbers:       true,
		FootnoteBackLabel: "Back to reference",
	}
}
