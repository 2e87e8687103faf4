package view

import (
	"github.com/nfrund/profiledash/web/src/templates/layouts"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// Element ids targeted by htmx swaps.
const (
	FormID         = "profile-form"
	SaveButtonID   = "save-button"
	DeleteDialogID = "delete-dialog"
)

// Routes used by the page, relative to the site root.
const (
	basePath          = "/app/profile"
	fieldPath         = basePath + "/field/"
	savePath          = basePath + "/save"
	openDeletePath    = basePath + "/delete/open"
	closeDeletePath   = basePath + "/delete/close"
	confirmDeletePath = basePath + "/delete/confirm"
)

// Profile renders the whole profile editor: the form and the danger zone.
func Profile(d Data) g.Node {
	return h.Div(
		h.Class("profile"),
		Form(d),
		h.Hr(),
		DangerZone(d),
	)
}

// Form renders the three profile inputs and the save button.
func Form(d Data) g.Node {
	return h.Form(
		h.ID(FormID),
		// Saving goes through htmx; a plain submit must not reload the page.
		g.Attr("onsubmit", "return false"),
		h.Div(
			h.Class("row field"),
			input("Full Name", "name", d.Name),
			input("Email Address", "email", d.Email),
		),
		h.Div(h.Class("field"), input("Avatar", "image", d.AvatarURL)),
		h.Div(h.Class("actions"), SaveButton(d.Saving)),
	)
}

// input renders a labeled text input that pushes every keystroke to the server.
func input(label, field, value string) g.Node {
	id := "profile-" + field
	return h.Div(
		h.Label(h.For(id), g.Text(label)),
		h.Input(
			h.ID(id),
			h.Type("text"),
			h.Name(field),
			h.Value(value),
			hx.Post(fieldPath+field),
			hx.Trigger("input"),
			hx.Swap("none"),
			// Keep keystrokes in order so the last value wins.
			g.Attr("hx-sync", "this:queue all"),
		),
	)
}

// SaveButton renders the save control. It is disabled with a spinner while
// a save is in flight. While htmx waits on the response the button carries the
// htmx-request class, which swaps the label for the indicator spinner.
func SaveButton(saving bool) g.Node {
	return h.Button(
		h.ID(SaveButtonID),
		h.Type("button"),
		hx.Post(savePath),
		hx.Include("#"+FormID),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "this"),
		g.If(saving, h.Disabled()),
		g.If(saving, h.Span(h.Class("spinner"), h.Aria("label", "Saving"))),
		g.If(!saving, g.Group{
			h.Span(h.Class("spinner htmx-indicator"), h.Aria("label", "Saving")),
			h.Span(h.Class("save-label"), g.Text("Save")),
		}),
	)
}

// DangerZone renders the account deletion section and its dialog slot.
func DangerZone(d Data) g.Node {
	return h.Section(
		h.P(h.Class("title"), g.Text("Danger Zone")),
		h.P(
			h.Class("muted"),
			g.Textf("To permanently remove your account from %s, use the button below. This cannot be undone.", layouts.SiteTitle),
		),
		h.Button(
			h.Type("button"),
			h.Class("link"),
			hx.Post(openDeletePath),
			hx.Target("#"+DeleteDialogID),
			hx.Swap("outerHTML"),
			g.Text("Delete Account"),
		),
		DeleteDialog(d.DialogOpen, d.Deleting),
	)
}

// DeleteDialog renders the confirmation dialog, or an empty slot when closed.
func DeleteDialog(open, deleting bool) g.Node {
	if !open {
		return h.Div(h.ID(DeleteDialogID))
	}
	return h.Div(
		h.ID(DeleteDialogID),
		h.Class("dialog-backdrop"),
		h.Div(
			h.Class("dialog"),
			h.Role("dialog"),
			h.Aria("modal", "true"),
			h.Aria("labelledby", "delete-dialog-title"),
			h.H2(h.ID("delete-dialog-title"), g.Text("Confirming Deletion")),
			h.P(h.Class("muted"), g.Text("Please note: this cannot be undone.")),
			h.Footer(
				h.Button(
					h.Type("button"),
					hx.Post(closeDeletePath),
					hx.Target("#"+DeleteDialogID),
					hx.Swap("outerHTML"),
					g.Text("Cancel"),
				),
				h.Button(
					h.Type("button"),
					h.Class("destructive"),
					hx.Post(confirmDeletePath),
					hx.Target("#"+DeleteDialogID),
					hx.Swap("outerHTML"),
					g.Attr("hx-disabled-elt", "this"),
					g.If(deleting, h.Disabled()),
					g.Text("Confirm"),
				),
			),
		),
	)
}
