package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is fixed on purpose: the short lifetime is what makes
// stateless verification safe without a revocation list.
const AccessTokenTTL = 15 * time.Minute

// Claims carried by an access token. ExternalUID is the identity
// provider's subject id; UserID is the local user row.
type Claims struct {
	UserID      uint   `json:"user_id"`
	ExternalUID string `json:"external_uid,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken mints a signed HS256 access token for the user.
func GenerateAccessToken(userID uint, externalUID, secretKey string) (string, error) {
	if secretKey == "" {
		return "", errors.New("jwt secret key is empty")
	}
	now := time.Now()
	claims := &Claims{
		UserID:      userID,
		ExternalUID: externalUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "ligo",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secretKey))
}

// ValidateAccessToken parses and validates an access token string.
// Signature, expiry and claim-shape failures all come back as errors;
// callers at the HTTP boundary should collapse them to one generic 401.
func ValidateAccessToken(tokenString, secretKey string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not parse token: %w", err)
	}
	if !t.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return nil, errors.New("user_id claim is missing or zero")
	}
	return claims, nil
}
