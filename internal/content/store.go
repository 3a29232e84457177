// Package content reads Markdown documents from a content tree.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	cerrors "git.home.luguber.info/inful/docsite/internal/content/errors"
	"git.home.luguber.info/inful/docsite/internal/docmodel"
)

// File is a document file discovered by Walk.
type File struct {
	Slug docmodel.Slug
	Path string // slash-separated, relative to the content root
}

// Store is a read-only view of a documentation content tree. Every ".md"
// file is one document; its slug is the path without the extension.
type Store struct {
	fsys fs.FS
	root string
}

// NewStore returns a store over fsys. root is only used in error messages.
func NewStore(fsys fs.FS, root string) *Store {
	return &Store{fsys: fsys, root: root}
}

// NewDirStore returns a store over the directory tree at root.
func NewDirStore(root string) *Store {
	return NewStore(os.DirFS(root), root)
}

// Root returns the label the store was created with.
func (s *Store) Root() string {
	return s.root
}

// Read returns the raw bytes of the document addressed by slug.
func (s *Store) Read(slug docmodel.Slug) ([]byte, error) {
	if !slug.Valid() {
		return nil, fmt.Errorf("%w: %q", cerrors.ErrInvalidSlug, slug.String())
	}

	name := slug.File()
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", cerrors.ErrInvalidSlug, slug.String())
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", cerrors.ErrDocNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrFileReadFailed, name, err)
	}
	return data, nil
}

// Exists reports whether slug addresses a regular file.
func (s *Store) Exists(slug docmodel.Slug) bool {
	if !slug.Valid() || !fs.ValidPath(slug.File()) {
		return false
	}
	info, err := fs.Stat(s.fsys, slug.File())
	return err == nil && info.Mode().IsRegular()
}

// Walk returns every document file in traversal order: entries of a
// directory in lexical order, subdirectories recursed in place. Hidden files
// and directories are skipped.
func (s *Store) Walk(ctx context.Context) ([]File, error) {
	if _, err := fs.Stat(s.fsys, "."); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", cerrors.ErrContentRootNotFound, s.root)
		}
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrWalkFailed, s.root, err)
	}

	var files []File
	err := fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != "." && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		slug, ok := docmodel.SlugFromFile(path)
		if !ok {
			return nil
		}
		files = append(files, File{Slug: slug, Path: path})
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrWalkFailed, s.root, err)
	}
	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
