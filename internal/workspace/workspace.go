package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// ErrNotCreated is returned when the workspace path is requested before Create.
var ErrNotCreated = errors.New("workspace not created")

// Manager owns one workspace directory.
type Manager struct {
	baseDir    string
	dir        string
	persistent bool
	logger     *slog.Logger
}

// NewManager returns an ephemeral manager rooted at baseDir (os.TempDir when empty).
func NewManager(baseDir string, logger *slog.Logger) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir, logger: orDefault(logger)}
}

// NewPersistentManager returns a manager for the fixed directory dir.
func NewPersistentManager(dir string, logger *slog.Logger) *Manager {
	return &Manager{dir: dir, persistent: true, logger: orDefault(logger)}
}

// ForCheckout picks a persistent manager when dir is set and an ephemeral
// one otherwise.
func ForCheckout(dir string, logger *slog.Logger) *Manager {
	if dir != "" {
		return NewPersistentManager(dir, logger)
	}
	return NewManager("", logger)
}

// Create makes the workspace directory.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return fmt.Errorf("create persistent workspace: %w", err)
		}
		m.logger.Debug("Using persistent workspace", logfields.Path(m.dir))
		return nil
	}
	if m.dir != "" {
		return nil
	}

	dir, err := os.MkdirTemp(m.baseDir, "docsite-checkout-*")
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	m.dir = dir
	m.logger.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// Path returns the workspace directory.
func (m *Manager) Path() (string, error) {
	if m.dir == "" {
		return "", ErrNotCreated
	}
	return m.dir, nil
}

// Persistent reports whether Cleanup keeps the directory.
func (m *Manager) Persistent() bool { return m.persistent }

// Cleanup removes an ephemeral workspace. Persistent ones are left alone.
func (m *Manager) Cleanup() error {
	if m.dir == "" || m.persistent {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("cleanup workspace: %w", err)
	}
	m.logger.Debug("Removed workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
