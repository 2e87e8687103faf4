package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account and sign out",
		Long: `Delete the account the session token belongs to. This cannot be undone.
You are asked to confirm unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, printer, me, err := opts.mountEditor(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer editor.Close()

			if err := editor.OpenDeleteDialog(); err != nil {
				return err
			}
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Confirming Deletion of %s. Please note: this cannot be undone. Continue? [y/N]: ", me.Email)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					_ = editor.CloseDeleteDialog()
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := editor.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}
			if printer.Failed() {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
