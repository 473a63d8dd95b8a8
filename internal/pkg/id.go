package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const gameIDDigits = 6

var gameIDLimit = big.NewInt(1_000_000)

// GenerateGameID returns a random six digit game id, leading zeros included.
func GenerateGameID() (string, error) {
	n, err := rand.Int(rand.Reader, gameIDLimit)
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return fmt.Sprintf("%0*d", gameIDDigits, n.Int64()), nil
}
