// Package id mints the public identifiers the API hands out in place of
// database keys.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator produces opaque public identifiers.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator draws 128 bits from crypto/rand and hex-encodes them.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("draw id entropy: %w", err)
	}

	return hex.EncodeToString(buf[:]), nil
}
