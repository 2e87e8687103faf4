package email

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/profiledash/internal/config"
)

// NewSender creates and returns an email sender based on the configuration.
func NewSender(cfg config.Provider, logger *slog.Logger) (Sender, error) {
	switch cfg.GetEmailProvider() {
	case "log", "":
		return NewLogSender(cfg.GetEmailSender(), logger), nil
	case "resend":
		if cfg.GetEmailAPIKey() == "" {
			return nil, fmt.Errorf("email provider is 'resend' but EMAIL_API_KEY is not set")
		}
		return newResendSender(cfg.GetEmailAPIKey(), cfg.GetEmailSender(), logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.GetEmailProvider())
	}
}
