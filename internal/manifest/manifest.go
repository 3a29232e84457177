// Package manifest records what an export produced so the next export can
// skip unchanged documents and remove stale ones.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"time"
)

// FileName is the manifest's name inside the output directory.
const FileName = "manifest.json"

// Manifest is the record written at the end of every export.
type Manifest struct {
	BuildID   string    `json:"build_id"`
	Generator string    `json:"generator"`
	Commit    string    `json:"commit,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Duration  int64     `json:"duration_ms"`

	// RenderHash identifies the renderer settings; a change invalidates
	// every rendered document.
	RenderHash string `json:"render_hash"`

	// Documents maps slug to content fingerprint.
	Documents map[string]string `json:"documents"`
}

// New returns an empty manifest for buildID.
func New(buildID, generator string) *Manifest {
	return &Manifest{
		BuildID:   buildID,
		Generator: generator,
		Timestamp: time.Now().UTC(),
		Documents: map[string]string{},
	}
}

// ToJSON serializes the manifest to indented JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Documents == nil {
		m.Documents = map[string]string{}
	}
	return &m, nil
}

// Read loads the manifest at path. A missing file yields (nil, nil).
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return FromJSON(data)
}

// Unchanged reports whether slug was exported with fingerprint fp under the
// same renderer settings. A nil manifest or empty fingerprint never matches.
func (m *Manifest) Unchanged(slug, fp, renderHash string) bool {
	if m == nil || fp == "" || m.RenderHash != renderHash {
		return false
	}
	return m.Documents[slug] == fp
}

// Stale returns the slugs in m that next no longer lists, sorted.
func (m *Manifest) Stale(next *Manifest) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, slug := range slices.Sorted(maps.Keys(m.Documents)) {
		if _, ok := next.Documents[slug]; !ok {
			out = append(out, slug)
		}
	}
	return out
}

// Hash returns a deterministic hash of the document set and render settings.
// Two exports with equal hashes produced identical outputs.
func (m *Manifest) Hash() string {
	h := sha256.New()
	fmt.Fprintf(h, "render=%s\n", m.RenderHash)
	for _, slug := range slices.Sorted(maps.Keys(m.Documents)) {
		fmt.Fprintf(h, "%s=%s\n", slug, m.Documents[slug])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashSettings returns a short stable hash of v's JSON encoding. It is used
// to derive RenderHash from renderer options.
func HashSettings(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash settings: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}
