// Package normalization maps loosely written configuration strings onto typed enums.
package normalization

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownValue is returned by Parse for input that matches no known key.
var ErrUnknownValue = errors.New("unknown value")

// Normalizer converts trimmed, case-folded strings into values of T.
type Normalizer[T comparable] struct {
	values   map[string]T
	fallback T
	keys     []string
}

// NewNormalizer builds a normalizer from key/value pairs. Keys are folded the
// same way input is, so "JSON" and "json" are equivalent.
func NewNormalizer[T comparable](values map[string]T, fallback T) *Normalizer[T] {
	n := &Normalizer[T]{
		values:   make(map[string]T, len(values)),
		fallback: fallback,
		keys:     make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := fold(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	slices.Sort(n.keys)
	return n
}

// Normalize returns the value for raw, or the fallback when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[fold(raw)]; ok {
		return v
	}
	return n.fallback
}

// Parse returns the value for raw. Empty input yields the fallback.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := fold(raw)
	if key == "" {
		return n.fallback, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w %q (valid: %s)", ErrUnknownValue, raw, strings.Join(n.keys, ", "))
}

// Contains reports whether v is one of the known values.
func (n *Normalizer[T]) Contains(v T) bool {
	for _, known := range n.values {
		if known == v {
			return true
		}
	}
	return false
}

// Keys returns the sorted accepted keys.
func (n *Normalizer[T]) Keys() []string {
	return slices.Clone(n.keys)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
