package config

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func init() {
	// Report problems with the keys users write in docsite.yaml.
	validation.ErrorTag = "yaml"
}

// Validate checks every section.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Content),
		validation.Field(&c.Render),
		validation.Field(&c.Output),
		validation.Field(&c.Watch),
		validation.Field(&c.Logging),
	)
}

// Validate requires a root unless the docs come from git.
func (c ContentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Root, validation.When(!c.Git.Enabled(), validation.Required)),
		validation.Field(&c.Git),
	)
}

func (g GitConfig) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.URL, validation.Required),
		validation.Field(&g.Branch, validation.Required),
		validation.Field(&g.Path, validation.By(relativePath)),
	)
}

func (r RenderConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.HighlightStyle, validation.Required, validation.By(knownStyle)),
	)
}

func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Directory, validation.Required),
	)
}

func (w WatchConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Debounce, validation.Min(time.Duration(0))),
		validation.Field(&w.Interval, validation.Min(time.Duration(0))),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Format, validation.Required, validation.By(knownFormat)),
	)
}

func relativePath(value any) error {
	p, _ := value.(string)
	if filepath.IsAbs(p) || p == ".." || strings.HasPrefix(filepath.ToSlash(p), "../") {
		return errors.New("must be a path inside the repository")
	}
	return nil
}

func knownStyle(value any) error {
	name, _ := value.(string)
	if name == "" || slices.Contains(styles.Names(), name) {
		return nil
	}
	return errors.New("unknown highlight style")
}

func knownFormat(value any) error {
	f, _ := value.(LogFormat)
	if f == "" || f.Valid() {
		return nil
	}
	return errors.New("must be text or json")
}
