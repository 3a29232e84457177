package errors

// Package errors provides sentinel errors for content store operations.
// These enable consistent classification of content reads and walks.

import "errors"

var (
	// ErrContentRootNotFound indicates the configured content root does not exist.
	ErrContentRootNotFound = errors.New("content root not found")

	// ErrWalkFailed indicates traversal of the content tree failed.
	ErrWalkFailed = errors.New("content walk failed")

	// ErrDocNotFound indicates no Markdown file exists for a slug.
	ErrDocNotFound = errors.New("document not found")

	// ErrFileReadFailed indicates a document file exists but could not be read.
	ErrFileReadFailed = errors.New("document file read failed")

	// ErrInvalidSlug indicates a slug that cannot address a file under the content root.
	ErrInvalidSlug = errors.New("invalid document slug")
)
