package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shade string

const (
	shadeLight shade = "light"
	shadeDark  shade = "dark"
)

func newShades() *Normalizer[shade] {
	return NewNormalizer(map[string]shade{
		"light": shadeLight,
		"Dark":  shadeDark,
	}, shadeLight)
}

func TestNormalize(t *testing.T) {
	n := newShades()

	tests := []struct {
		name  string
		input string
		want  shade
	}{
		{"exact", "light", shadeLight},
		{"folded key", "dark", shadeDark},
		{"upper input", "DARK", shadeDark},
		{"padded", "  dark ", shadeDark},
		{"unknown falls back", "sepia", shadeLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	n := newShades()

	got, err := n.Parse("Dark")
	require.NoError(t, err)
	assert.Equal(t, shadeDark, got)

	got, err = n.Parse("  ")
	require.NoError(t, err)
	assert.Equal(t, shadeLight, got)

	_, err = n.Parse("sepia")
	require.ErrorIs(t, err, ErrUnknownValue)
	assert.Contains(t, err.Error(), "dark, light")
}

func TestContainsAndKeys(t *testing.T) {
	n := newShades()

	assert.True(t, n.Contains(shadeDark))
	assert.False(t, n.Contains(shade("sepia")))

	keys := n.Keys()
	assert.Equal(t, []string{"dark", "light"}, keys)
	keys[0] = "mutated"
	assert.Equal(t, []string{"dark", "light"}, n.Keys())
}
