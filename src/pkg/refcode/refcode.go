package refcode

import (
	"crypto/rand"
	"fmt"
)

// charset skips 0/O/1/I so codes survive being read over the phone.
const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const DefaultLength = 8

// Generate returns a random uppercase reference of the given length.
// Uniqueness is the caller's responsibility (verified against storage with a
// bounded retry loop), generation itself never blocks on shared state.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("refcode: read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = charset[int(b)%len(charset)]
	}

	return string(buf), nil
}
