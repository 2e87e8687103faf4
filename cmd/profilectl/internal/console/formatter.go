package console

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nfrund/profiledash/internal/userapi"
)

// DisplayUser prints the user as a table or JSON.
func DisplayUser(w io.Writer, u *userapi.User, format string) error {
	switch format {
	case "json":
		return DisplayUserJSON(w, u)
	case "table", "":
		DisplayUserTable(w, u)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use table or json)", format)
	}
}

// DisplayUserTable prints the user as aligned key/value rows.
func DisplayUserTable(w io.Writer, u *userapi.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", orDash(u.Name))
	fmt.Fprintf(tw, "Email:\t%s\n", orDash(u.Email))
	fmt.Fprintf(tw, "Avatar:\t%s\n", orDash(u.Image))
}

// DisplayUserJSON prints the user as indented JSON.
func DisplayUserJSON(w io.Writer, u *userapi.User) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(u); err != nil {
		return fmt.Errorf("failed to marshal user to JSON: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
