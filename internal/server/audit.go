package server

import (
	"context"
	"fmt"

	"github.com/nfrund/profiledash/internal/domain"
	"github.com/nfrund/profiledash/internal/email"
	"github.com/nfrund/profiledash/internal/handlers"
	"github.com/nfrund/profiledash/internal/pubsub"
	"github.com/nfrund/profiledash/web/src/templates/layouts"
)

// subscribeAudit logs every user lifecycle event published by the API and
// emails the owner of a deleted account.
func (s *Server) subscribeAudit(ctx context.Context) error {
	logger := s.logger.With("component", "audit")

	err := pubsub.Subscribe(ctx, s.bus, handlers.ProfileUpdated, func(ctx context.Context, userID string, ev domain.ProfileUpdatedEvent) error {
		logger.Info("profile updated", "user_id", userID, "at", ev.UpdatedAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", handlers.ProfileUpdated.Name(), err)
	}

	err = pubsub.Subscribe(ctx, s.bus, handlers.AccountDeleted, func(ctx context.Context, userID string, ev domain.AccountDeletedEvent) error {
		logger.Info("account deleted", "user_id", userID, "email", ev.Email, "at", ev.DeletedAt)
		if ev.Email == "" {
			return nil
		}
		subject, body, err := email.AccountDeleted(layouts.SiteTitle, ev.Email)
		if err != nil {
			return err
		}
		// The request that published the event may already be finished.
		return s.mailer.Send(context.WithoutCancel(ctx), ev.Email, subject, body)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", handlers.AccountDeleted.Name(), err)
	}
	return nil
}
