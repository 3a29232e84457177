package frontmatter

// Extract splits raw file content into parsed frontmatter fields and the
// Markdown body that follows the block.
//
// Extract never fails. A missing closing delimiter or YAML that does not
// decode into a mapping is treated as "no frontmatter": the returned fields
// are empty and body is the full input.
func Extract(raw []byte) (fields map[string]any, body []byte) {
	fm, rest, had, _, err := Split(raw)
	if err != nil || !had {
		return map[string]any{}, raw
	}

	fields, err = ParseYAML(fm)
	if err != nil {
		return map[string]any{}, raw
	}
	return fields, rest
}
