package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

type upstream struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)
	return &upstream{t: t, dir: dir, repo: repo}
}

func (u *upstream) commit(rel, body string) string {
	u.t.Helper()
	path := filepath.Join(u.dir, filepath.FromSlash(rel))
	require.NoError(u.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(u.t, os.WriteFile(path, []byte(body), 0o600))

	wt, err := u.repo.Worktree()
	require.NoError(u.t, err)
	_, err = wt.Add(rel)
	require.NoError(u.t, err)
	hash, err := wt.Commit("update "+rel, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Docs", Email: "docs@example.com", When: time.Now()},
	})
	require.NoError(u.t, err)
	return hash.String()
}

func TestSyncClonesThenUpdates(t *testing.T) {
	up := newUpstream(t)
	first := up.commit("docs/index.md", "# Home\n")

	src := NewSource(config.GitConfig{URL: up.dir, Branch: "main", Path: "docs"}, nil)
	dir := filepath.Join(t.TempDir(), "checkout")

	co, err := src.Sync(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, first, co.Commit)
	assert.Equal(t, filepath.Join(dir, "docs"), co.ContentRoot)
	assert.FileExists(t, filepath.Join(co.ContentRoot, "index.md"))

	// Local edits are discarded by the hard reset.
	require.NoError(t, os.WriteFile(filepath.Join(co.ContentRoot, "scratch.md"), []byte("x"), 0o600))

	second := up.commit("docs/guide/setup.md", "# Setup\n")
	co, err = src.Sync(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, second, co.Commit)
	assert.FileExists(t, filepath.Join(co.ContentRoot, "guide", "setup.md"))
	assert.NoFileExists(t, filepath.Join(co.ContentRoot, "scratch.md"))
}

func TestSyncMissingContentPath(t *testing.T) {
	up := newUpstream(t)
	up.commit("README.md", "hello\n")

	src := NewSource(config.GitConfig{URL: up.dir, Path: "docs"}, nil)
	_, err := src.Sync(context.Background(), filepath.Join(t.TempDir(), "checkout"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrContentPathMissing)
	assert.Equal(t, ferrors.CategoryNotFound, ferrors.GetCategory(err))
}

func TestSyncUnknownRepository(t *testing.T) {
	src := NewSource(config.GitConfig{URL: filepath.Join(t.TempDir(), "missing"), Path: "docs"}, nil)
	_, err := src.Sync(context.Background(), filepath.Join(t.TempDir(), "checkout"))
	require.Error(t, err)
	assert.True(t, ferrors.IsClassified(err))
}

func TestSyncCanceled(t *testing.T) {
	up := newUpstream(t)
	up.commit("docs/index.md", "# Home\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewSource(config.GitConfig{URL: up.dir, Path: "docs"}, nil)
	_, err := src.Sync(ctx, filepath.Join(t.TempDir(), "checkout"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalHead(t *testing.T) {
	up := newUpstream(t)
	hash := up.commit("docs/index.md", "# Home\n")

	got, ok := LocalHead(filepath.Join(up.dir, "docs"))
	require.True(t, ok)
	assert.Equal(t, hash, got)

	_, ok = LocalHead(t.TempDir())
	assert.False(t, ok)
}

func TestAuth(t *testing.T) {
	assert.Nil(t, NewSource(config.GitConfig{URL: "x"}, nil).auth())
	assert.NotNil(t, NewSource(config.GitConfig{URL: "x", Token: "t"}, nil).auth())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ferrors.ErrorCategory
		retry    ferrors.RetryStrategy
	}{
		{"missing path", ErrContentPathMissing, ferrors.CategoryNotFound, ferrors.RetryNever},
		{"missing repository", errors.New("repository not found"), ferrors.CategoryNotFound, ferrors.RetryNever},
		{"auth", errors.New("authentication required"), ferrors.CategoryGit, ferrors.RetryUserAction},
		{"network", errors.New("connection reset by peer"), ferrors.CategoryGit, ferrors.RetryBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err, "fetch", "https://example.com/docs.git")

			ce, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, tt.category, ce.Category())
			assert.Equal(t, tt.retry, ce.RetryStrategy())
			assert.ErrorIs(t, err, tt.err)

			op, _ := ce.Context().GetString("op")
			assert.Equal(t, "fetch", op)
		})
	}
}
