package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nfrund/profiledash/cmd/profilectl/internal/console"
	"github.com/nfrund/profiledash/internal/profileeditor"
	"github.com/nfrund/profiledash/internal/userapi"
	"github.com/spf13/cobra"
)

// errReported marks a failure the editor already printed.
var errReported = errors.New("operation failed")

type globalOptions struct {
	apiURL  string
	token   string
	verbose bool
}

// NewRootCmd builds the profilectl command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "profilectl",
		Short: "Edit your profile from the terminal",
		Long: `profilectl manages the signed-in user's profile through the user API.

Available commands:
  show      Print the current profile
  set       Change one or more profile fields
  delete    Delete the account and sign out
  edit      Edit the profile interactively

The session token is read from --token or PROFILECTL_TOKEN.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", envOr("PROFILECTL_API_URL", "http://localhost:8080"), "Base URL of the user API")
	flags.StringVar(&opts.token, "token", os.Getenv("PROFILECTL_TOKEN"), "Session token to authenticate with")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log request details to stderr")

	rootCmd.AddCommand(
		newShowCmd(opts),
		newSetCmd(opts),
		newDeleteCmd(opts),
		newEditCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute executes the root command
func Execute() {
	// A local .env may hold PROFILECTL_* settings.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func (o *globalOptions) client() (*userapi.Client, error) {
	if o.token == "" {
		return nil, errors.New("a session token is required: pass --token or set PROFILECTL_TOKEN")
	}
	return userapi.New(o.apiURL, o.token)
}

func (o *globalOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// mountEditor fetches the current user and mounts an editor that reports to
// the command's output.
func (o *globalOptions) mountEditor(ctx context.Context, cmd *cobra.Command) (*profileeditor.Editor, *console.Printer, *userapi.User, error) {
	client, err := o.client()
	if err != nil {
		return nil, nil, nil, err
	}
	me, err := client.Me(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load current user: %w", err)
	}

	printer := console.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.apiURL)
	editor := profileeditor.New(me.Profile(), profileeditor.Dependencies{
		API:       client,
		Notifier:  printer,
		Session:   console.Session{Client: client},
		Navigator: printer,
		Logger:    o.logger(cmd.ErrOrStderr()),
	})
	return editor, printer, me, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
