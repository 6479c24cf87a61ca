package identity

import (
	"context"
	"errors"
)

// ErrInvalidCredential is returned for any bad, expired or malformed
// external credential.
var ErrInvalidCredential = errors.New("invalid identity credential")

// Identity is the verified result of an external credential: a stable
// subject id plus whatever profile claims the provider attached.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Verifier validates an externally-issued identity credential.
type Verifier interface {
	Verify(ctx context.Context, rawCredential string) (*Identity, error)
}
