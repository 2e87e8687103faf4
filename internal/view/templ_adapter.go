package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component wraps a gomponents node as a templ.Component so gomponents pages
// and templ pages share one rendering pipeline. Rendering stops early if the
// request context is already done.
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}
