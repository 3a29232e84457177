package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
)

// Fingerprint computes the content fingerprint of a document from its
// frontmatter fields and Markdown body.
//
// Fields are serialized with sorted keys and LF newlines so the result does
// not depend on map iteration order or on the file's line endings. A stored
// fingerprint field is ignored.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField {
			continue
		}
		hashed[k] = v
	}

	var fm string
	if len(hashed) > 0 {
		serialized, err := SerializeYAML(hashed, Style{Newline: "\n"})
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}

	normalized := strings.ReplaceAll(string(body), "\r\n", "\n")
	return mdfp.CalculateFingerprintFromParts(fm, normalized), nil
}
