package auth

import (
	"time"

	"gorm.io/gorm"
)

type AuthRepository interface {
	SaveRefreshToken(token *RefreshToken) error
	GetRefreshTokenByHash(hash string) (*RefreshToken, error)
	RevokeRefreshToken(id uint) error
	RevokeAllRefreshTokensForUser(userID uint) error
	// RotateRefreshToken revokes the old record and saves its
	// replacement in one transaction; a failure leaves the old token
	// valid.
	RotateRefreshToken(oldID uint, replacement *RefreshToken) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) SaveRefreshToken(token *RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *authRepository) GetRefreshTokenByHash(hash string) (*RefreshToken, error) {
	var rt RefreshToken
	if err := r.db.Where("token_hash = ?", hash).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) RevokeRefreshToken(id uint) error {
	now := time.Now()
	return r.db.Model(&RefreshToken{}).Where("id = ?", id).Update("revoked_at", now).Error
}

func (r *authRepository) RevokeAllRefreshTokensForUser(userID uint) error {
	now := time.Now()
	return r.db.Model(&RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

func (r *authRepository) RotateRefreshToken(oldID uint, replacement *RefreshToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&RefreshToken{}).Where("id = ?", oldID).Update("revoked_at", now).Error; err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
}
