package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nfrund/profiledash/cmd/profilectl/internal/console"
	"github.com/nfrund/profiledash/internal/tui"
	"github.com/spf13/cobra"
)

func newEditCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			me, err := client.Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("load current user: %w", err)
			}

			// Logs would tear the rendered form, so they go nowhere.
			model := tui.New(tui.Options{
				Context: cmd.Context(),
				User:    me.Profile(),
				API:     client,
				Session: console.Session{Client: client},
				Logger:  opts.logger(io.Discard),
			})

			final, err := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			if m, ok := final.(tui.Model); ok && m.Deleted() {
				fmt.Fprintf(cmd.OutOrStdout(), "Signed out. Redirecting to %s/\n", opts.apiURL)
			}
			return nil
		},
	}
}
