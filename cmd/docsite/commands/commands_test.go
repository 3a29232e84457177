package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	dir    string
	config string
	docs   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	h := &harness{t: t, dir: dir, config: filepath.Join(dir, "docsite.yaml"), docs: filepath.Join(dir, "content")}

	h.file("content/intro.md", "---\ntitle: Welcome\norder: 1\n---\n# Hello\n\nFirst page.\n")
	h.file("content/getting-started/setup.md", "---\norder: 2\n---\n# Setup\n\n<script>x()</script>\n")
	h.file("content/getting-started/first-steps.md", "---\norder: 1\n---\n# First steps\n")
	h.file("docsite.yaml", "content:\n  root: "+h.docs+"\noutput:\n  directory: "+filepath.Join(dir, "out")+"\n")
	return h
}

func (h *harness) file(rel, body string) {
	h.t.Helper()
	path := filepath.Join(h.dir, filepath.FromSlash(rel))
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(h.t, os.WriteFile(path, []byte(body), 0o600))
}

// run parses args and runs the selected command, returning stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	g := NewGlobal(context.Background(), &stdout, &stderr)

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Name("docsite"), kong.Bind(g), kong.Vars{"version": "test"})
	require.NoError(h.t, err)

	kctx, err := parser.Parse(append([]string{"-c", h.config}, args...))
	if err != nil {
		return "", err
	}
	err = kctx.Run(cli)
	return stdout.String(), err
}

func TestPathsCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("paths")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.ElementsMatch(t, []string{"intro", "getting-started/setup", "getting-started/first-steps"}, lines)

	out, err = h.run("paths", "--json")
	require.NoError(t, err)
	var paths [][]string
	require.NoError(t, json.Unmarshal([]byte(out), &paths))
	assert.Len(t, paths, 3)
}

func TestTOCCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("toc")
	require.NoError(t, err)
	assert.Contains(t, out, "Getting Started\n")
	assert.Contains(t, out, "  first-steps (getting-started/first-steps)\n")
	assert.Less(t, strings.Index(out, "first-steps"), strings.Index(out, "setup"))

	out, err = h.run("toc", "--json")
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Contains(t, tree, "intro")
}

func TestRenderCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("render", "getting-started/setup")
	require.NoError(t, err)
	assert.Contains(t, out, `id="setup"`)
	assert.NotContains(t, out, "<script>")

	out, err = h.run("render", "--json", "intro")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "intro", doc["slug"])
	assert.Equal(t, true, doc["found"])

	out, err = h.run("render", "--json", "does/not/exist")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, false, doc["found"])
	assert.Equal(t, "", doc["content"])
}

func TestExportCommand(t *testing.T) {
	h := newHarness(t)
	out := filepath.Join(h.dir, "site")
	metricsFile := filepath.Join(h.dir, "docsite.prom")

	stdout, err := h.run("export", "-o", out, "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 rendered")
	assert.FileExists(t, filepath.Join(out, "docs", "intro.html"))
	assert.FileExists(t, filepath.Join(out, manifest.FileName))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "docsite_documents_total")

	stdout, err = h.run("export", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 skipped")

	stdout, err = h.run("export", "-o", out, "--force")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 rendered")
}

func TestExportUsesConfiguredOutput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("export")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.dir, "out", "toc.json"))
}

func TestInitCommand(t *testing.T) {
	h := newHarness(t)
	target := filepath.Join(h.dir, "fresh.yaml")

	var stdout bytes.Buffer
	g := NewGlobal(context.Background(), &stdout, &bytes.Buffer{})
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Bind(g), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"-c", target, "init"})
	require.NoError(t, err)
	require.NoError(t, kctx.Run(cli))

	assert.FileExists(t, target)
	assert.FileExists(t, filepath.Join(h.dir, "public", "docs", "index.md"))
	assert.Contains(t, stdout.String(), "Initialized successfully")

	sample, err := os.ReadFile(filepath.Join(h.dir, "public", "docs", "index.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(sample), "---\n"))
	assert.Contains(t, string(sample), "title: Welcome")

	kctx, err = parser.Parse([]string{"-c", target, "init"})
	require.NoError(t, err)
	err = kctx.Run(cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

func TestUnknownLogFormat(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("--log-format", "xml", "paths")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-format")
}

func TestMissingContentRoot(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.RemoveAll(h.docs))

	_, err := h.run("paths")
	require.Error(t, err)
}

func TestRenderStrictMissingDocument(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("render", "--strict", "does/not/exist")
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryNotFound, ferrors.GetCategory(err))

	out, err := h.run("render", "--strict", "intro")
	require.NoError(t, err)
	assert.Contains(t, out, "First page.")
}

func TestTOCCommandUnder(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("toc", "--under", "getting-started")
	require.NoError(t, err)
	assert.Equal(t, "first-steps (getting-started/first-steps)\nsetup (getting-started/setup)\n", out)

	out, err = h.run("toc", "--under", "getting-started", "--json")
	require.NoError(t, err)
	var node map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &node))
	assert.Equal(t, "Getting Started", node["title"])
	assert.Contains(t, node, "items")

	_, err = h.run("toc", "--under", "nope")
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryNotFound, ferrors.GetCategory(err))
}
