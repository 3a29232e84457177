// Package config loads docsite configuration from YAML, the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// DefaultPath is the config file used when none is given.
const DefaultPath = "docsite.yaml"

// Config is the complete docsite configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ContentConfig locates the documentation sources.
type ContentConfig struct {
	Root string     `yaml:"root"`
	Git  *GitConfig `yaml:"git,omitempty"`
}

// GitConfig describes a remote repository that holds the docs.
type GitConfig struct {
	URL       string `yaml:"url"`
	Branch    string `yaml:"branch,omitempty"`
	Path      string `yaml:"path,omitempty"`      // sub-directory holding the docs
	Token     string `yaml:"token,omitempty"`     // sent as basic-auth password
	Workspace string `yaml:"workspace,omitempty"` // persistent checkout; empty clones into a temp dir
}

// Enabled reports whether a remote source is configured.
func (g *GitConfig) Enabled() bool {
	return g != nil && g.URL != ""
}

// RenderConfig tunes the markdown renderer.
type RenderConfig struct {
	HighlightStyle    string `yaml:"highlight_style"`
	LineNumbers       bool   `yaml:"line_numbers"`
	FootnoteBackLabel string `yaml:"footnote_back_label"`
}

// OutputConfig controls static exports.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // remove the output directory before exporting
}

// WatchConfig controls the rebuild loop.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Interval time.Duration `yaml:"interval"` // 0 disables periodic rebuilds
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  slog.Level `yaml:"level"`
	Format LogFormat  `yaml:"format"`
}

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	return &Config{
		Content: ContentConfig{
			Root: "./public/docs",
		},
		Render: RenderConfig{
			HighlightStyle:    "github",
			LineNumbers:       true,
			FootnoteBackLabel: "Back to reference",
		},
		Output: OutputConfig{
			Directory: "./out",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: LogFormatText,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is not an error. Environment files are loaded first so ${VAR}
// references in the YAML and the DOCSITE_* overrides can use them.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load environment file").Build()
	}

	cfg := NewDefaultConfig()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid environment override").Build()
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").
			WithContext("path", path).
			Build()
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config file").
			WithContext("path", path).
			Build()
	}
	return nil
}

// applyDefaults fills fields an explicit YAML value may have blanked.
func (c *Config) applyDefaults() {
	if !c.Content.Git.Enabled() {
		c.Content.Git = nil
	}
	if g := c.Content.Git; g != nil {
		if g.Branch == "" {
			g.Branch = "main"
		}
		if g.Path == "" {
			g.Path = "docs"
		}
	}
	if c.Render.HighlightStyle == "" {
		c.Render.HighlightStyle = "github"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

// String renders the effective configuration with the git token masked.
func (c *Config) String() string {
	masked := *c
	if g := c.Content.Git; g != nil && g.Token != "" {
		cp := *g
		cp.Token = "***"
		masked.Content.Git = &cp
	}
	data, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(data)
}
