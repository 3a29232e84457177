package toc

import (
	"encoding/json"
	"strings"
	"testing"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(slug string, fields map[string]any) docmodel.Document {
	s := docmodel.ParseSlug(slug)
	return docmodel.Document{Slug: s, Frontmatter: docmodel.NormalizeFrontmatter(fields, s), Found: true}
}

func keys(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func TestBuild_SortsSiblingsByOrder(t *testing.T) {
	tree := Build([]docmodel.Document{
		doc("a/one", map[string]any{"order": 2}),
		doc("a/two", map[string]any{"order": 1}),
	})

	a, ok := tree.Lookup(docmodel.NewSlug("a"))
	require.True(t, ok)
	assert.Equal(t, []string{"two", "one"}, keys(a.Entries()))
}

func TestBuild_StableOnTies(t *testing.T) {
	tree := Build([]docmodel.Document{
		doc("zeta", nil),
		doc("alpha", nil),
		doc("mid", map[string]any{"order": -1}),
		doc("beta", nil),
	})

	assert.Equal(t, []string{"mid", "zeta", "alpha", "beta"}, keys(tree.Entries()))
}

func TestBuild_SortsEveryLevel(t *testing.T) {
	tree := Build([]docmodel.Document{
		doc("guides/setup/b", map[string]any{"order": 5}),
		doc("guides/setup/a", map[string]any{"order": 3}),
		doc("guides/intro", map[string]any{"order": 1}),
		doc("api", map[string]any{"order": -1}),
	})

	assert.Equal(t, []string{"api", "guides"}, keys(tree.Entries()))

	guides, _ := tree.Lookup(docmodel.NewSlug("guides"))
	assert.Equal(t, []string{"setup", "intro"}, keys(guides.Entries()))

	setup, _ := tree.Lookup(docmodel.NewSlug("guides", "setup"))
	assert.Equal(t, []string{"a", "b"}, keys(setup.Entries()))
}

func TestBuild_BranchTitles(t *testing.T) {
	tree := Build([]docmodel.Document{doc("getting-started/install", nil)})

	branch, ok := tree.Lookup(docmodel.NewSlug("getting-started"))
	require.True(t, ok)
	assert.Equal(t, "Getting Started", branch.Title)
	assert.False(t, branch.IsDocument)

	leaf, ok := tree.Lookup(docmodel.ParseSlug("getting-started/install"))
	require.True(t, ok)
	assert.Equal(t, "install", leaf.Title)
	assert.Equal(t, "getting-started/install", leaf.Slug)
	assert.Nil(t, leaf.Items)
}

func TestBranchTitle(t *testing.T) {
	tests := map[string]string{
		"getting-started": "Getting Started",
		"api":             "Api",
		"REST-APIs":       "REST APIs",
		"über-uns":        "Über Uns",
		"v2":              "V2",
		"a--b":            "A  B",
	}
	for in, want := range tests {
		assert.Equal(t, want, BranchTitle(in), in)
	}
}

func TestBuild_LastDuplicateWinsKeepingPosition(t *testing.T) {
	tree := Build([]docmodel.Document{
		doc("first", map[string]any{"title": "Old"}),
		doc("second", nil),
		doc("first", map[string]any{"title": "New"}),
	})

	assert.Equal(t, []string{"first", "second"}, keys(tree.Entries()))
	n, _ := tree.Lookup(docmodel.NewSlug("first"))
	assert.Equal(t, "New", n.Title)
}

func TestBuild_DocumentAndDirectoryMerge(t *testing.T) {
	tree := Build([]docmodel.Document{
		doc("guides", map[string]any{"title": "All Guides", "order": 1}),
		doc("guides/intro", nil),
	})

	n, ok := tree.Lookup(docmodel.NewSlug("guides"))
	require.True(t, ok)
	assert.True(t, n.IsDocument)
	assert.Equal(t, "All Guides", n.Title)
	assert.Equal(t, []string{"intro"}, keys(n.Entries()))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	docs := []docmodel.Document{
		doc("b", map[string]any{"order": 2}),
		doc("a", map[string]any{"order": 1}),
	}

	Build(docs)

	assert.Equal(t, "b", docs[0].Slug.String())
	assert.Equal(t, "a", docs[1].Slug.String())
}

func TestTreeJSONPreservesOrder(t *testing.T) {
	tree := Build([]docmodel.Document{
		doc("a/one", map[string]any{"order": 2, "description": "first"}),
		doc("a/two", map[string]any{"order": 1}),
	})

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	s := string(data)
	assert.Less(t, strings.Index(s, `"two"`), strings.Index(s, `"one"`))
	assert.JSONEq(t, `{
		"a": {
			"title": "A",
			"items": {
				"two": {"title": "two", "description": "", "slug": "a/two", "order": 1},
				"one": {"title": "one", "description": "first", "slug": "a/one", "order": 2}
			}
		}
	}`, s)
}

func TestWalkDepthFirst(t *testing.T) {
	tree := Build([]docmodel.Document{
		doc("a/x", nil),
		doc("b", nil),
	})

	var visited []string
	require.NoError(t, tree.Walk(func(path []string, _ *Node) error {
		visited = append(visited, strings.Join(path, "/"))
		return nil
	}))

	assert.Equal(t, []string{"a", "a/x", "b"}, visited)
}

func TestEmptyTree(t *testing.T) {
	tree := Build(nil)

	assert.Equal(t, 0, tree.Len())
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}
