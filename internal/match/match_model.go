package match

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Match is one fixture between two teams of the same league. Scores
// stay null until a score update is posted.
type Match struct {
	gorm.Model
	LeagueID    uint      `json:"league_id" gorm:"not null;index"`
	HomeTeamID  uint      `json:"home_team_id" gorm:"not null;index"`
	AwayTeamID  uint      `json:"away_team_id" gorm:"not null;index"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"not null"`
	HomeScore   *int      `json:"home_score,omitempty"`
	AwayScore   *int      `json:"away_score,omitempty"`
	Status      Status    `json:"status" gorm:"type:varchar(16);default:'SCHEDULED'"`
	Venue       string    `json:"venue"`
}

type CreateMatchRequest struct {
	LeagueID    uint      `json:"league_id" binding:"required"`
	HomeTeamID  uint      `json:"home_team_id" binding:"required"`
	AwayTeamID  uint      `json:"away_team_id" binding:"required,nefield=HomeTeamID"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Venue       string    `json:"venue" binding:"max=200"`
}

type UpdateMatchRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	Venue       *string    `json:"venue" binding:"omitempty,max=200"`
	Status      *Status    `json:"status"`
}

type UpdateScoreRequest struct {
	HomeScore *int    `json:"home_score" binding:"required,gte=0"`
	AwayScore *int    `json:"away_score" binding:"required,gte=0"`
	Status    *Status `json:"status"`
}
