package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/internal/user"
)

// RefreshToken persists the hash of an opaque refresh secret. The raw
// value is returned to the client exactly once and never stored.
type RefreshToken struct {
	gorm.Model
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	TokenHash string     `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Usable: not revoked and not past expiry.
func (rt *RefreshToken) Usable() bool {
	return rt.RevokedAt == nil && rt.ExpiresAt.After(time.Now())
}

type LoginRequest struct {
	// IDToken is the Firebase ID token obtained by the client SDK.
	IDToken string `json:"id_token" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"`
}

type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	User         user.UserResponse `json:"user"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
