package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/yukikurage/project-board-api/internal/constants"
)

// GenerateState returns a random hex string for the OAuth state parameter
func GenerateState() (string, error) {
	bytes := make([]byte, constants.OAuthStateBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
