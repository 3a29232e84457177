package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/toc"
)

// TOCCmd implements 'toc'.
type TOCCmd struct {
	JSON  bool   `name:"json" help:"Print the tree as JSON"`
	Under string `name:"under" help:"Only print the subtree below this slug, e.g. guides" placeholder:"SLUG"`
}

func (t *TOCCmd) Run(g *Global, root *CLI) error {
	_, src, loader, err := prepare(g, root)
	if err != nil {
		return err
	}
	defer src.cleanup()

	collection, err := loader.LoadAll(g.Ctx)
	if err != nil {
		return err
	}
	tree := toc.Build(collection)

	var encode any = tree
	walk := tree.Walk
	if t.Under != "" {
		node, ok := tree.Lookup(docmodel.ParseSlug(t.Under))
		if !ok {
			return ferrors.NewError(ferrors.CategoryNotFound, "no navigation entry for slug").
				WithContext("slug", t.Under).
				Build()
		}
		encode, walk = node, node.Walk
	}
	if t.JSON {
		return writeJSON(g.Stdout, encode)
	}

	return walk(func(path []string, n *toc.Node) error {
		indent := strings.Repeat("  ", len(path)-1)
		line := indent + n.Title
		if n.IsDocument {
			line += " (" + n.Slug + ")"
		}
		_, err := fmt.Fprintln(g.Stdout, line)
		return err
	})
}
