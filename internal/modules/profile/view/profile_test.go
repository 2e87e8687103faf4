package view_test

import (
	"strings"
	"testing"

	"github.com/nfrund/profiledash/internal/modules/profile/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestSaveButton(t *testing.T) {
	t.Run("idle button shows an indicator while the request is pending", func(t *testing.T) {
		out := render(t, view.SaveButton(false))

		assert.Contains(t, out, `id="save-button"`)
		assert.Contains(t, out, `hx-post="/app/profile/save"`)
		assert.Contains(t, out, `hx-disabled-elt="this"`)
		assert.Contains(t, out, `class="spinner htmx-indicator"`)
		assert.Contains(t, out, `<span class="save-label">Save</span>`)
		assert.NotContains(t, out, " disabled")
	})

	t.Run("saving button is disabled with a spinner", func(t *testing.T) {
		out := render(t, view.SaveButton(true))

		assert.Contains(t, out, " disabled>")
		assert.Contains(t, out, `class="spinner"`)
		assert.NotContains(t, out, "save-label")
	})
}

func TestDeleteDialog(t *testing.T) {
	assert.Equal(t, `<div id="delete-dialog"></div>`, render(t, view.DeleteDialog(false, false)))

	out := render(t, view.DeleteDialog(true, false))
	assert.Contains(t, out, "Confirming Deletion")
	assert.Contains(t, out, "Please note: this cannot be undone.")
	assert.Contains(t, out, `hx-post="/app/profile/delete/confirm"`)
}
