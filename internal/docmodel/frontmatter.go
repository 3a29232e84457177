package docmodel

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// Recognised frontmatter keys.
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyOrder       = "order"
)

// Frontmatter is the open metadata mapping of a document. After
// NormalizeFrontmatter it always holds a string title, a string description
// and an int order; other keys pass through unchanged.
type Frontmatter map[string]any

// Title returns the title field as a string, or "".
func (f Frontmatter) Title() string {
	s, _ := f[KeyTitle].(string)
	return s
}

// Description returns the description field as a string, or "".
func (f Frontmatter) Description() string {
	s, _ := f[KeyDescription].(string)
	return s
}

// Order returns the order field, or 0.
func (f Frontmatter) Order() int {
	n, _ := f[KeyOrder].(int)
	return n
}

// NormalizeFrontmatter returns a copy of fields with title, description and
// order coerced to their canonical types. A missing or blank title falls back
// to the last slug segment.
func NormalizeFrontmatter(fields map[string]any, slug Slug) Frontmatter {
	out := make(Frontmatter, len(fields)+3)
	maps.Copy(out, fields)

	title := scalarString(fields[KeyTitle])
	if strings.TrimSpace(title) == "" {
		title = slug.Last()
	}
	out[KeyTitle] = title
	out[KeyDescription] = scalarString(fields[KeyDescription])
	out[KeyOrder] = orderValue(fields[KeyOrder])
	return out
}

// Placeholder returns the frontmatter of a document whose file could not be read.
func Placeholder(slug Slug) Frontmatter {
	return NormalizeFrontmatter(nil, slug)
}

func scalarString(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(vv)
	default:
		return ""
	}
}

func orderValue(v any) int {
	switch vv := v.(type) {
	case int:
		return vv
	case int64:
		return int(vv)
	case uint64:
		if vv > math.MaxInt {
			return 0
		}
		return int(vv)
	case float64:
		if math.IsNaN(vv) || math.IsInf(vv, 0) {
			return 0
		}
		return int(vv)
	case string:
		s := strings.TrimSpace(vv)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}
