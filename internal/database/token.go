package database

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// sessionTokenBytes gives 64 hex characters.
const sessionTokenBytes = 32

// generateSecureToken creates a cryptographically secure random token
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
