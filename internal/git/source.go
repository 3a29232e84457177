package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

const remoteName = "origin"

// Checkout is the result of a sync.
type Checkout struct {
	Dir         string // repository working tree
	ContentRoot string // docs directory inside Dir
	Commit      string // full HEAD hash
}

// Source syncs one configured repository.
type Source struct {
	cfg    config.GitConfig
	logger *slog.Logger
}

// NewSource returns a source for cfg.
func NewSource(cfg config.GitConfig, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	return &Source{cfg: cfg, logger: logger}
}

// Sync clones the repository into dir, or fetches and hard-resets an
// existing checkout to the remote branch head.
func (s *Source) Sync(ctx context.Context, dir string) (Checkout, error) {
	var (
		repo *gogit.Repository
		err  error
	)
	if err := ctx.Err(); err != nil {
		return Checkout{}, err
	}
	if _, statErr := os.Stat(filepath.Join(dir, ".git")); statErr == nil {
		repo, err = s.update(ctx, dir)
	} else {
		repo, err = s.clone(ctx, dir)
	}
	if err != nil {
		return Checkout{}, err
	}

	head, err := repo.Head()
	if err != nil {
		return Checkout{}, classify(fmt.Errorf("resolve HEAD: %w", err), "head", s.cfg.URL)
	}

	root := filepath.Join(dir, filepath.FromSlash(s.cfg.Path))
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		return Checkout{}, classify(fmt.Errorf("%w: %s", ErrContentPathMissing, s.cfg.Path), "sync", s.cfg.URL)
	}

	s.logger.Info("Docs repository synced",
		logfields.URL(s.cfg.URL),
		slog.String("branch", s.cfg.Branch),
		logfields.Commit(shortHash(head.Hash())),
		logfields.Path(root))

	return Checkout{Dir: dir, ContentRoot: root, Commit: head.Hash().String()}, nil
}

func (s *Source) clone(ctx context.Context, dir string) (*gogit.Repository, error) {
	s.logger.Debug("Cloning docs repository", logfields.URL(s.cfg.URL), logfields.Path(dir))

	// A directory without .git is a leftover from an interrupted clone.
	if err := os.RemoveAll(dir); err != nil {
		return nil, classify(fmt.Errorf("clear checkout dir: %w", err), "clone", s.cfg.URL)
	}

	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:           s.cfg.URL,
		Auth:          s.auth(),
		ReferenceName: plumbing.NewBranchReferenceName(s.cfg.Branch),
		SingleBranch:  true,
		Tags:          gogit.NoTags,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, classify(err, "clone", s.cfg.URL)
	}
	return repo, nil
}

func (s *Source) update(ctx context.Context, dir string) (*gogit.Repository, error) {
	s.logger.Debug("Updating docs repository", logfields.URL(s.cfg.URL), logfields.Path(dir))

	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return nil, classify(fmt.Errorf("open: %w", err), "update", s.cfg.URL)
	}

	local := plumbing.NewBranchReferenceName(s.cfg.Branch)
	remote := plumbing.NewRemoteReferenceName(remoteName, s.cfg.Branch)
	err = repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(fmt.Sprintf("+%s:%s", local, remote))},
		Auth:       s.auth(),
		Tags:       gogit.NoTags,
		Force:      true,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, classify(fmt.Errorf("fetch: %w", err), "fetch", s.cfg.URL)
	}

	remoteRef, err := repo.Reference(remote, true)
	if err != nil {
		return nil, classify(fmt.Errorf("%w: %s", ErrRemoteBranchMissing, s.cfg.Branch), "fetch", s.cfg.URL)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, classify(fmt.Errorf("worktree: %w", err), "update", s.cfg.URL)
	}
	if err := checkoutBranch(repo, wt, local, remoteRef.Hash()); err != nil {
		return nil, classify(err, "checkout", s.cfg.URL)
	}
	if err := wt.Reset(&gogit.ResetOptions{Commit: remoteRef.Hash(), Mode: gogit.HardReset}); err != nil {
		return nil, classify(fmt.Errorf("hard reset: %w", err), "reset", s.cfg.URL)
	}
	if err := wt.Clean(&gogit.CleanOptions{Dir: true}); err != nil {
		s.logger.Warn("Cleaning untracked files failed", logfields.Path(dir), logfields.Error(err))
	}
	return repo, nil
}

// checkoutBranch switches to branch, creating it at hash when it does not exist locally.
func checkoutBranch(repo *gogit.Repository, wt *gogit.Worktree, branch plumbing.ReferenceName, hash plumbing.Hash) error {
	if head, err := repo.Head(); err == nil && head.Name() == branch {
		return nil
	}
	opts := &gogit.CheckoutOptions{Branch: branch, Force: true}
	if _, err := repo.Reference(branch, false); err != nil {
		opts.Create = true
		opts.Hash = hash
	}
	if err := wt.Checkout(opts); err != nil {
		return fmt.Errorf("checkout %s: %w", branch.Short(), err)
	}
	return nil
}

func (s *Source) auth() transport.AuthMethod {
	if s.cfg.Token == "" {
		return nil
	}
	// GitHub, GitLab and Forgejo accept any username with a token password.
	return &http.BasicAuth{Username: "token", Password: s.cfg.Token}
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:8]
}
