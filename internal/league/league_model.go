package league

import (
	"time"

	"gorm.io/gorm"
)

// League groups teams and matches under one competition.
type League struct {
	gorm.Model
	Name        string     `json:"name" gorm:"not null;index"`
	Description string     `json:"description"`
	Season      string     `json:"season"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedByID uint       `json:"created_by_id" gorm:"index"`
}

type CreateLeagueRequest struct {
	Name        string     `json:"name" binding:"required,min=3,max=100"`
	Description string     `json:"description" binding:"max=1000"`
	Season      string     `json:"season" binding:"max=50"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type UpdateLeagueRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Season      *string    `json:"season" binding:"omitempty,max=50"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}
