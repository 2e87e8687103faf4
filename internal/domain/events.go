package domain

import "time"

// Topics for user lifecycle events published on the bus.
const (
	TopicProfileUpdated = "user.profile.updated"
	TopicAccountDeleted = "user.account.deleted"
)

// ProfileUpdatedEvent is published after a successful profile update.
type ProfileUpdatedEvent struct {
	UserID    string        `json:"user_id"`
	Profile   ProfileUpdate `json:"profile"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// AccountDeletedEvent is published after an account has been removed.
type AccountDeletedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	DeletedAt time.Time `json:"deleted_at"`
}
