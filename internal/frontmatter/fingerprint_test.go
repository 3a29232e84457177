package frontmatter

import (
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_StableAcrossKeyOrderAndLineEndings(t *testing.T) {
	a, err := Fingerprint(map[string]any{"title": "Intro", "order": 1}, []byte("Hello\nWorld\n"))
	require.NoError(t, err)
	b, err := Fingerprint(map[string]any{"order": 1, "title": "Intro"}, []byte("Hello\r\nWorld\r\n"))
	require.NoError(t, err)

	require.NotEmpty(t, a)
	require.Equal(t, a, b)
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	fields := map[string]any{"title": "Intro"}

	a, err := Fingerprint(fields, []byte("one"))
	require.NoError(t, err)
	b, err := Fingerprint(fields, []byte("two"))
	require.NoError(t, err)
	c, err := Fingerprint(map[string]any{"title": "Other"}, []byte("one"))
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NotEqual(t, a, c)
}

func TestFingerprint_IgnoresStoredFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]any{"title": "Intro"}, []byte("body"))
	require.NoError(t, err)
	b, err := Fingerprint(map[string]any{"title": "Intro", mdfp.FingerprintField: "stale"}, []byte("body"))
	require.NoError(t, err)

	require.Equal(t, a, b)
}
