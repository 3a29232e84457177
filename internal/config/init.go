package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

const exampleConfig = `# docsite configuration
content:
  root: ./public/docs
  # Uncomment to fetch the docs from a repository instead.
  # git:
  #   url: https://github.com/example/handbook.git
  #   branch: main
  #   path: docs
  #   token: ${DOCSITE_GIT_TOKEN}
  #   workspace: .docsite/checkout

render:
  highlight_style: github
  line_numbers: true
  footnote_back_label: Back to reference

output:
  directory: ./out
  clean: false

watch:
  debounce: 300ms
  interval: 0s

logging:
  level: info
  format: text
`

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat config file").Build()
	}

	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
