package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// RenderCmd implements 'render'.
type RenderCmd struct {
	Slug   string `arg:"" help:"Document slug, e.g. guides/quickstart"`
	JSON   bool   `name:"json" help:"Print the full document record as JSON"`
	Strict bool   `help:"Fail instead of printing a placeholder when the document does not exist"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	_, src, loader, err := prepare(g, root)
	if err != nil {
		return err
	}
	defer src.cleanup()

	if r.Strict && !loader.Store().Exists(docmodel.ParseSlug(r.Slug)) {
		return ferrors.NewError(ferrors.CategoryNotFound, "document not found").
			WithContext("slug", r.Slug).
			Build()
	}

	doc := loader.LoadString(g.Ctx, r.Slug)
	if r.JSON {
		return writeJSON(g.Stdout, doc)
	}
	_, err = fmt.Fprintln(g.Stdout, doc.Content)
	return err
}
