package invite

import (
	"time"

	"gorm.io/gorm"

	"github.com/RohanMehta-11/ligo/internal/access"
)

// CodeDetails is the shared shape of a redeemable invitation code.
// Codes are never hard-deleted; revocation flips IsActive.
type CodeDetails struct {
	Code      string      `gorm:"uniqueIndex;not null" json:"code"`
	CreatedBy *uint       `json:"created_by,omitempty"`
	GrantRole access.Role `gorm:"type:varchar(32);not null" json:"grant_role"`
	MaxUses   int         `gorm:"not null;default:1" json:"max_uses"`
	Uses      int         `gorm:"not null;default:0" json:"uses"`
	IsActive  bool        `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

func (c *CodeDetails) IsExpired() bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(time.Now())
}

func (c *CodeDetails) HasAvailableUses() bool {
	return c.Uses < c.MaxUses
}

func (c *CodeDetails) IsValid() bool {
	return c.IsActive && !c.IsExpired() && c.HasAvailableUses()
}

// ShouldBeRevoked signals that the use reaching the cap must also flip
// IsActive off, in the same transaction.
func (c *CodeDetails) ShouldBeRevoked() bool {
	return c.Uses >= c.MaxUses
}

// InvitationCode grants team membership on redemption.
type InvitationCode struct {
	gorm.Model
	TeamID      uint `gorm:"not null;index" json:"team_id"`
	CodeDetails `gorm:"embedded"`
}

func (c *InvitationCode) Scope() access.Scope {
	return access.TeamScope(c.TeamID)
}

// LeagueInvitation grants league membership on redemption.
type LeagueInvitation struct {
	gorm.Model
	LeagueID    uint `gorm:"not null;index" json:"league_id"`
	CodeDetails `gorm:"embedded"`
}

func (c *LeagueInvitation) Scope() access.Scope {
	return access.LeagueScope(c.LeagueID)
}

type CreateCodeRequest struct {
	MaxUses   int        `json:"max_uses" binding:"omitempty,min=1"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	GrantRole string     `json:"grant_role,omitempty"`
}

type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}
