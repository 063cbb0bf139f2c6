package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const trackingTokenBytes = 16

// NewTrackingToken - непрозрачный токен отслеживания, 128 бит случайности
func NewTrackingToken() (string, error) {
	buf := make([]byte, trackingTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate tracking token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
