package team

import (
	"gorm.io/gorm"
)

// Team competes inside one league. Roster membership lives in the
// access package; the team row carries profile data only.
type Team struct {
	gorm.Model
	LeagueID    uint   `json:"league_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null;index"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	CreatedByID uint   `json:"created_by_id" gorm:"index"`
}

type CreateTeamRequest struct {
	LeagueID    uint   `json:"league_id" binding:"required"`
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Logo        string `json:"logo"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Logo        *string `json:"logo"`
}
