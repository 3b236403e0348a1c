// Package handid generates identifiers for games and hands.
package handid

import (
	"fmt"

	"github.com/google/uuid"
)

// NewGameID returns a unique identifier for a game session.
func NewGameID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does, which is fatal
		// for everything else too.
		panic("handid: " + err.Error())
	}
	return "game_" + id.String()
}

// NewHandID returns an identifier for a single hand within a game,
// combining the game id with the hand sequence number.
func NewHandID(gameID string, handNumber int) string {
	return fmt.Sprintf("%s/hand_%04d", gameID, handNumber)
}
