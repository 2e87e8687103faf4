package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Sender defines the interface for sending emails. This allows for
// different implementations (e.g., for logging, Resend, Mailgun).
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// --- LogSender (for development) ---

// LogSender logs emails instead of sending them.
type LogSender struct {
	senderAddress string
	logger        *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(senderAddress string, logger *slog.Logger) *LogSender {
	return &LogSender{senderAddress: senderAddress, logger: logger}
}

// Send logs the email content.
func (s *LogSender) Send(_ context.Context, to, subject, htmlBody string) error {
	s.logger.Info("email sent (logged)",
		"from", s.senderAddress,
		"to", to,
		"subject", subject,
		"body", htmlBody,
	)
	return nil
}

// --- ResendSender (for production) ---

const resendEndpoint = "https://api.resend.com/emails"

// ResendSender sends emails using the Resend API.
type ResendSender struct {
	apiKey        string
	senderAddress string
	endpoint      string
	client        *http.Client
	logger        *slog.Logger
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send dispatches an email using the Resend API.
func (s *ResendSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload := resendPayload{
		From:    s.senderAddress,
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API returned an error: status %d", resp.StatusCode)
	}

	s.logger.Info("Successfully sent email via Resend", "to", to, "subject", subject)
	return nil
}

func newResendSender(apiKey, sender string, logger *slog.Logger) *ResendSender {
	return &ResendSender{
		apiKey:        apiKey,
		senderAddress: sender,
		endpoint:      resendEndpoint,
		client:        &http.Client{Timeout: 10 * time.Second},
		logger:        logger,
	}
}
