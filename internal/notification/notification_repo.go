package notification

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceTokenRepository interface {
	// RegisterDevice claims the token for the user; a token previously
	// registered by another account moves to the new one.
	RegisterDevice(token *DeviceToken) error
	UnregisterDevice(userID uint, token string) error
	GetDevicesByUser(userID uint) ([]DeviceToken, error)
}

type deviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

func (r *deviceTokenRepository) RegisterDevice(token *DeviceToken) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
	}).Create(token).Error
}

func (r *deviceTokenRepository) UnregisterDevice(userID uint, token string) error {
	return r.db.Where("user_id = ? AND token = ?", userID, token).Delete(&DeviceToken{}).Error
}

func (r *deviceTokenRepository) GetDevicesByUser(userID uint) ([]DeviceToken, error) {
	var tokens []DeviceToken
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
