package invite

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet has 32 symbols; visually confusable characters (0/O,
// 1/I) are excluded so codes survive being read aloud or handwritten.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 8

// GenerateCode produces a cryptographically-sourced invitation code.
// 32 symbols over 8 positions gives ~2^40 combinations; duplicate
// handling is the caller's job via the unique constraint.
func GenerateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	// len(codeAlphabet) divides 256, so the modulo is unbiased.
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
