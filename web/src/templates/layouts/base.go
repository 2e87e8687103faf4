package layouts

import (
	"github.com/a-h/templ"
	"github.com/nfrund/profiledash/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// htmxScript is the pinned htmx build the pages rely on.
const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps page content in the HTML document shell. It returns a templ
// component so it renders through the same pipeline as templ pages.
func Base(title string, toasts []view.Toast, content g.Node) templ.Component {
	return view.Component(Document(title, toasts, content))
}

// Document is the full HTML page.
func Document(title string, toasts []view.Toast, content g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
			h.Script(h.Src(htmxScript)),
		},
		Body: []g.Node{
			h.Main(content),
			ToastContainer(toasts),
		},
	})
}

// ToastContainer renders the toast region with its initial toasts.
func ToastContainer(toasts []view.Toast) g.Node {
	return h.Div(h.ID("toasts"), h.Role("status"), g.Map(toasts, toastItem))
}

// ToastsOOB appends toasts to the toast region from an htmx response.
func ToastsOOB(toasts []view.Toast) g.Node {
	if len(toasts) == 0 {
		return g.Group{}
	}
	return h.Div(
		hx.SwapOOB("beforeend:#toasts"),
		g.Map(toasts, toastItem),
	)
}

func toastItem(t view.Toast) g.Node {
	return h.Div(
		h.Class("toast toast-"+string(t.Kind)),
		h.Data("kind", string(t.Kind)),
		g.Text(t.Message),
	)
}
