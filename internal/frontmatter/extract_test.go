package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFields map[string]any
		wantBody   string
	}{
		{
			name:       "no frontmatter",
			input:      "# Title\n\nHello\n",
			wantFields: map[string]any{},
			wantBody:   "# Title\n\nHello\n",
		},
		{
			name:       "recognised keys and extras",
			input:      "---\ntitle: Quickstart\norder: 2\nbadge: new\n---\nBody\n",
			wantFields: map[string]any{"title": "Quickstart", "order": 2, "badge": "new"},
			wantBody:   "Body\n",
		},
		{
			name:       "empty block",
			input:      "---\n---\nBody\n",
			wantFields: map[string]any{},
			wantBody:   "Body\n",
		},
		{
			name:       "crlf",
			input:      "---\r\ntitle: Windows\r\n---\r\nBody\r\n",
			wantFields: map[string]any{"title": "Windows"},
			wantBody:   "Body\r\n",
		},
		{
			name:       "missing closing delimiter",
			input:      "---\ntitle: Broken\nBody\n",
			wantFields: map[string]any{},
			wantBody:   "---\ntitle: Broken\nBody\n",
		},
		{
			name:       "malformed yaml",
			input:      "---\ntitle: [unclosed\n---\nBody\n",
			wantFields: map[string]any{},
			wantBody:   "---\ntitle: [unclosed\n---\nBody\n",
		},
		{
			name:       "yaml that is not a mapping",
			input:      "---\n- one\n- two\n---\nBody\n",
			wantFields: map[string]any{},
			wantBody:   "---\n- one\n- two\n---\nBody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, body := Extract([]byte(tt.input))
			require.Equal(t, tt.wantFields, fields)
			require.Equal(t, tt.wantBody, string(body))
		})
	}
}
