package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newSetCmd(opts *globalOptions) *cobra.Command {
	var name, email, image string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more profile fields",
		Long: `Change profile fields and save them in one request. Fields that are not
given keep their current values; an empty value clears a field.

Examples:
  profilectl set --name "Ada Lovelace"
  profilectl set --email ada@example.com --image ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("email") && !flags.Changed("image") {
				return errors.New("nothing to change: pass --name, --email or --image")
			}

			editor, printer, _, err := opts.mountEditor(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer editor.Close()

			if flags.Changed("name") {
				_ = editor.SetName(name)
			}
			if flags.Changed("email") {
				_ = editor.SetEmail(email)
			}
			if flags.Changed("image") {
				_ = editor.SetAvatarURL(image)
			}

			if err := editor.Save(cmd.Context()); err != nil {
				return err
			}
			if printer.Failed() {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&image, "image", "", "Avatar URL")
	return cmd
}
