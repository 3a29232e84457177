package docmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlugMatchesNewSlug(t *testing.T) {
	assert.True(t, ParseSlug("guides/quickstart").Equal(NewSlug("guides", "quickstart")))
	assert.True(t, NewSlug("guides/quickstart").Equal(NewSlug("guides", "quickstart")))
	assert.Equal(t, "guides/quickstart.md", NewSlug("guides", "quickstart").File())
}

func TestSlugNormalization(t *testing.T) {
	tests := []struct {
		in    string
		want  []string
		valid bool
	}{
		{in: "intro", want: []string{"intro"}, valid: true},
		{in: "/guides//setup/", want: []string{"guides", "setup"}, valid: true},
		{in: "./guides/./setup", want: []string{"guides", "setup"}, valid: true},
		{in: "../secrets", want: []string{"..", "secrets"}, valid: false},
		{in: "", want: nil, valid: false},
		{in: "/", want: nil, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := ParseSlug(tt.in)
			assert.Equal(t, tt.want, s.Segments())
			assert.Equal(t, tt.valid, s.Valid())
		})
	}
}

func TestSlugAccessors(t *testing.T) {
	s := NewSlug("a", "b", "c")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "c", s.Last())
	assert.Equal(t, "a/b", s.Parent().String())
	assert.True(t, Slug{}.IsZero())
	assert.Equal(t, "", Slug{}.Last())

	segs := s.Segments()
	segs[0] = "mutated"
	assert.Equal(t, "a/b/c", s.String())
}

func TestSlugFromFile(t *testing.T) {
	s, ok := SlugFromFile("guides/quickstart.md")
	require.True(t, ok)
	assert.Equal(t, []string{"guides", "quickstart"}, s.Segments())

	_, ok = SlugFromFile("guides/diagram.png")
	assert.False(t, ok)
}

func TestSlugJSON(t *testing.T) {
	data, err := json.Marshal(NewSlug("a", "b"))
	require.NoError(t, err)
	assert.JSONEq(t, `"a/b"`, string(data))

	var s Slug
	require.NoError(t, json.Unmarshal([]byte(`"x/y"`), &s))
	assert.Equal(t, []string{"x", "y"}, s.Segments())
}
