package user

import "gorm.io/gorm"

// User is the identity anchor. ExternalUID is the identity provider's
// subject id and never changes; email and display name track the
// provider's claims.
type User struct {
	gorm.Model
	ExternalUID string  `gorm:"uniqueIndex;not null" json:"external_uid"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	DisplayName string  `json:"display_name"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
}

func FilterUserRecord(u *User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	return resp
}
