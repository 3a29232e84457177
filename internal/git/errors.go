package git

import (
	"errors"
	"strings"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

var (
	// ErrContentPathMissing means the configured docs path is absent from the checkout.
	ErrContentPathMissing = errors.New("content path not found in repository")
	// ErrRemoteBranchMissing means the fetched remote has no such branch.
	ErrRemoteBranchMissing = errors.New("remote branch not found")
)

// classify turns a go-git failure into a ClassifiedError. Missing
// repositories and branches are not retryable; everything else is treated as
// a transient git failure.
func classify(err error, op, url string) error {
	if err == nil {
		return nil
	}
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}

	l := strings.ToLower(err.Error())
	var b *ferrors.ErrorBuilder
	switch {
	case errors.Is(err, ErrContentPathMissing), errors.Is(err, ErrRemoteBranchMissing),
		strings.Contains(l, "repository not found"), strings.Contains(l, "couldn't find remote ref"):
		b = ferrors.WrapError(err, ferrors.CategoryNotFound, "git "+op+" failed")
	case strings.Contains(l, "authentication"), strings.Contains(l, "authorization"):
		b = ferrors.WrapError(err, ferrors.CategoryGit, "git "+op+" failed").
			UserAction().
			WithContext("hint", "check content.git.token")
	default:
		b = ferrors.GitError("git " + op + " failed").WithCause(err)
	}
	return b.WithContext("op", op).WithContext("url", url).Build()
}
