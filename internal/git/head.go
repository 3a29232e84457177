package git

import (
	gogit "github.com/go-git/go-git/v5"
)

// LocalHead returns the HEAD commit of the repository containing path, if any.
// It lets exports of a plain directory still record their source commit.
func LocalHead(path string) (string, bool) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	head, err := repo.Head()
	if err != nil {
		return "", false
	}
	return head.Hash().String(), true
}
