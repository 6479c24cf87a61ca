package notification

import (
	"gorm.io/gorm"
)

// DeviceToken maps a user to a push token. Delivery is handled outside
// this service; we only keep the registry current.
type DeviceToken struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"not null;index"`
	Token    string `json:"token" gorm:"uniqueIndex;not null"`
	Platform string `json:"platform" gorm:"type:varchar(16)"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"omitempty,oneof=ios android web"`
}

type UnregisterDeviceRequest struct {
	Token string `json:"token" binding:"required"`
}
