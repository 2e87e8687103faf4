package cmd

import (
	"fmt"

	"github.com/nfrund/profiledash/cmd/profilectl/internal/console"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current profile",
		Long: `Print the profile of the user the session token belongs to.

Output formats:
  table - Human-readable format (default)
  json  - Machine-readable JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			me, err := client.Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("load current user: %w", err)
			}
			return console.DisplayUser(cmd.OutOrStdout(), me, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
