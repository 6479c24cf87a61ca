package access

import "gorm.io/gorm"

// Role names a level of authority. Roles are ordered; the rank table
// below backs the "can manage" comparisons.
type Role string

const (
	RoleMaster            Role = "MASTER"
	RoleAdmin             Role = "ADMIN"
	RoleLeagueManager     Role = "LEAGUE_MANAGER"
	RoleManager           Role = "MANAGER"
	RoleMatchManager      Role = "MATCH_MANAGER"
	RoleRefereeCommission Role = "REFEREE_COMMISSION"
	RoleAssistant         Role = "ASSISTANT"
	RolePlayer            Role = "PLAYER"
	// RoleFan is the implicit role of a user with no memberships.
	// It is computed, never stored.
	RoleFan Role = "FAN"
)

// MATCH_MANAGER and REFEREE_COMMISSION share a rank.
var roleRank = map[Role]int{
	RoleMaster:            8,
	RoleAdmin:             7,
	RoleLeagueManager:     6,
	RoleManager:           5,
	RoleMatchManager:      4,
	RoleRefereeCommission: 4,
	RoleAssistant:         3,
	RolePlayer:            2,
	RoleFan:               1,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries the authority of other or more.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// Scope is the context a grant applies to: one team, one league, or
// global (both nil). Both set at once is invalid.
type Scope struct {
	TeamID   *uint `json:"team_id,omitempty"`
	LeagueID *uint `json:"league_id,omitempty"`
}

func GlobalScope() Scope { return Scope{} }

func TeamScope(teamID uint) Scope { return Scope{TeamID: &teamID} }

func LeagueScope(leagueID uint) Scope { return Scope{LeagueID: &leagueID} }

func (s Scope) IsGlobal() bool { return s.TeamID == nil && s.LeagueID == nil }

func (s Scope) Valid() bool { return s.TeamID == nil || s.LeagueID == nil }

// Membership grants one role to one user within one scope. Role changes
// are modeled as revoke+grant, never update.
type Membership struct {
	gorm.Model
	UserID   uint  `gorm:"not null;index;uniqueIndex:idx_membership_grant" json:"user_id"`
	Role     Role  `gorm:"type:varchar(32);not null;uniqueIndex:idx_membership_grant" json:"role"`
	TeamID   *uint `gorm:"uniqueIndex:idx_membership_grant" json:"team_id,omitempty"`
	LeagueID *uint `gorm:"uniqueIndex:idx_membership_grant" json:"league_id,omitempty"`
}

func (m *Membership) Scope() Scope {
	return Scope{TeamID: m.TeamID, LeagueID: m.LeagueID}
}
