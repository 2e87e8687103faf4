package pages

import (
	"github.com/nfrund/profiledash/web/src/templates/layouts"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Home is the landing page; it is also where users end up after deleting
// their account.
func Home(signedIn bool) g.Node {
	return h.Div(
		h.H1(g.Text(layouts.SiteTitle)),
		h.P(h.Class("muted"), g.Text("Manage your account from the dashboard.")),
		g.If(signedIn, h.A(h.Href("/app/profile"), g.Text("Edit your profile"))),
		g.If(!signedIn, h.P(g.Text("You are signed out."))),
	)
}
