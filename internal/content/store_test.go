package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	cerrors "git.home.luguber.info/inful/docsite/internal/content/errors"
	"git.home.luguber.info/inful/docsite/internal/docmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() fstest.MapFS {
	return fstest.MapFS{
		"intro.md":                   {Data: []byte("# Intro\n")},
		"guides/quickstart.md":       {Data: []byte("# Quickstart\n")},
		"guides/advanced/tuning.md":  {Data: []byte("# Tuning\n")},
		"guides/diagram.png":         {Data: []byte{0x89}},
		"api.md":                     {Data: []byte("# API\n")},
		".drafts/secret.md":          {Data: []byte("# Secret\n")},
		"guides/.wip.md":             {Data: []byte("# WIP\n")},
		"reference/cli/commands.md":  {Data: []byte("# Commands\n")},
		"reference/configuration.md": {Data: []byte("# Configuration\n")},
	}
}

func slugs(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Slug.String())
	}
	return out
}

func TestWalk_LexicalOrderSkippingHidden(t *testing.T) {
	store := NewStore(testTree(), "mem")

	files, err := store.Walk(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"api",
		"guides/advanced/tuning",
		"guides/quickstart",
		"intro",
		"reference/cli/commands",
		"reference/configuration",
	}, slugs(files))
	assert.Equal(t, "guides/advanced/tuning.md", files[1].Path)
}

func TestWalk_MissingRoot(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := store.Walk(context.Background())
	require.ErrorIs(t, err, cerrors.ErrContentRootNotFound)
}

func TestWalk_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(testTree(), "mem").Walk(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRead(t *testing.T) {
	store := NewStore(testTree(), "mem")

	data, err := store.Read(docmodel.ParseSlug("guides/quickstart"))
	require.NoError(t, err)
	assert.Equal(t, "# Quickstart\n", string(data))

	_, err = store.Read(docmodel.ParseSlug("guides/missing"))
	require.ErrorIs(t, err, cerrors.ErrDocNotFound)

	_, err = store.Read(docmodel.ParseSlug("../etc/passwd"))
	require.ErrorIs(t, err, cerrors.ErrInvalidSlug)

	_, err = store.Read(docmodel.Slug{})
	require.ErrorIs(t, err, cerrors.ErrInvalidSlug)
}

func TestExists(t *testing.T) {
	store := NewStore(testTree(), "mem")

	assert.True(t, store.Exists(docmodel.NewSlug("intro")))
	assert.False(t, store.Exists(docmodel.NewSlug("guides")))
	assert.False(t, store.Exists(docmodel.NewSlug("..", "intro")))
}

func TestDirStore_ReadsFromDisk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b.md"), []byte("hello"), 0o600))

	store := NewDirStore(root)
	data, err := store.Read(docmodel.NewSlug("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, root, store.Root())
}
