package email

import (
	"bytes"
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// AccountDeleted builds the notice sent once an account has been removed.
func AccountDeleted(siteTitle, address string) (subject, body string, err error) {
	node := h.Div(
		h.P(g.Textf("The %s account for %s has been deleted.", siteTitle, address)),
		h.P(g.Text("Your profile and sessions were removed. If you did not do this, contact support.")),
	)
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return "", "", fmt.Errorf("render account deleted email: %w", err)
	}
	return fmt.Sprintf("Your %s account was deleted", siteTitle), buf.String(), nil
}
