package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/internal/user"
	"github.com/RohanMehta-11/ligo/pkg/token"
)

// ErrInvalidRefreshToken deliberately covers not-found, revoked and
// expired alike: distinguishing them would hand an oracle to whoever
// is guessing tokens.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

const refreshTokenBytes = 48

// TokenService mints the access/refresh pair and rotates refresh
// tokens on use.
type TokenService struct {
	repo       AuthRepository
	users      user.UserRepository
	secret     string
	refreshTTL time.Duration
}

func NewTokenService(repo AuthRepository, users user.UserRepository, secret string, refreshExpiryDays int) *TokenService {
	return &TokenService{
		repo:       repo,
		users:      users,
		secret:     secret,
		refreshTTL: time.Duration(refreshExpiryDays) * 24 * time.Hour,
	}
}

// GenerateRefreshSecret returns a high-entropy opaque value. The
// caller hands it to the client and stores only its hash.
func GenerateRefreshSecret() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRefreshSecret is the deterministic one-way hash used both to
// store and to look up refresh tokens.
func HashRefreshSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Issue mints an access token and a fresh refresh token for the user,
// persisting only the refresh hash.
func (s *TokenService) Issue(userID uint, externalUID string) (accessToken, refreshSecret string, err error) {
	accessToken, err = token.GenerateAccessToken(userID, externalUID, s.secret)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshSecret, err = GenerateRefreshSecret()
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	record := &RefreshToken{
		UserID:    userID,
		TokenHash: HashRefreshSecret(refreshSecret),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.repo.SaveRefreshToken(record); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshSecret, nil
}

// Refresh validates a presented refresh secret and rotates it: the old
// record is revoked and a replacement issued in one transaction, so a
// mid-rotation failure never leaves the user locked out.
func (s *TokenService) Refresh(rawSecret string) (accessToken, newRefreshSecret string, err error) {
	record, err := s.repo.GetRefreshTokenByHash(HashRefreshSecret(rawSecret))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", err
	}
	if !record.Usable() {
		return "", "", ErrInvalidRefreshToken
	}

	u, err := s.users.GetUserByID(record.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", err
	}

	newRefreshSecret, err = GenerateRefreshSecret()
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}
	replacement := &RefreshToken{
		UserID:    record.UserID,
		TokenHash: HashRefreshSecret(newRefreshSecret),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.repo.RotateRefreshToken(record.ID, replacement); err != nil {
		return "", "", fmt.Errorf("refresh token rotation failed: %w", err)
	}

	accessToken, err = token.GenerateAccessToken(u.ID, u.ExternalUID, s.secret)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}
	return accessToken, newRefreshSecret, nil
}

// Revoke invalidates a single refresh token by its raw value. Unknown
// tokens are reported as invalid so logout cannot probe storage.
func (s *TokenService) Revoke(rawSecret string) error {
	record, err := s.repo.GetRefreshTokenByHash(HashRefreshSecret(rawSecret))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidRefreshToken
		}
		return err
	}
	return s.repo.RevokeRefreshToken(record.ID)
}

// RevokeAllForUser supports logout-everywhere.
func (s *TokenService) RevokeAllForUser(userID uint) error {
	return s.repo.RevokeAllRefreshTokensForUser(userID)
}
