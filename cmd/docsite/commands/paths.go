package commands

import (
	"fmt"
	"strings"
)

// PathsCmd implements 'paths'.
type PathsCmd struct {
	JSON bool `name:"json" help:"Print the segment arrays as JSON"`
}

func (p *PathsCmd) Run(g *Global, root *CLI) error {
	_, src, loader, err := prepare(g, root)
	if err != nil {
		return err
	}
	defer src.cleanup()

	paths, err := loader.StaticPaths(g.Ctx)
	if err != nil {
		return err
	}
	if p.JSON {
		return writeJSON(g.Stdout, paths)
	}
	for _, segs := range paths {
		if _, err := fmt.Fprintln(g.Stdout, strings.Join(segs, "/")); err != nil {
			return err
		}
	}
	return nil
}
