package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
)

// InitCmd implements 'init'.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}

	cfg := config.NewDefaultConfig()
	sample, err := writeSampleDoc(cfg.Content.Root)
	if err != nil {
		return err
	}
	if sample != "" {
		fmt.Fprintf(g.Stdout, "Created sample document %s\n", sample)
	}
	fmt.Fprintln(g.Stdout, "Initialized successfully")
	return nil
}

// writeSampleDoc creates index.md under root when root does not exist yet.
// It returns the path written, or "" when root already exists.
func writeSampleDoc(root string) (string, error) {
	if _, err := os.Stat(root); err == nil {
		return "", nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	fm, err := frontmatter.SerializeYAML(map[string]any{
		"title":       "Welcome",
		"description": "Start here.",
		"order":       1,
	}, frontmatter.Style{Newline: "\n"})
	if err != nil {
		return "", err
	}
	body := []byte("# Welcome\n\nEdit this page in `index.md`. Each Markdown file under this\ndirectory becomes one page.\n")

	path := filepath.Join(root, "index.md")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, frontmatter.Join(fm, body, true, frontmatter.Style{Newline: "\n"}), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
