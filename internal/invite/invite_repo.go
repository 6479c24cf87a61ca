package invite

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RohanMehta-11/ligo/internal/access"
)

type InviteRepository interface {
	CreateTeamCode(code *InvitationCode) error
	GetTeamCodeByCode(code string) (*InvitationCode, error)
	GetTeamCodeByID(id uint) (*InvitationCode, error)
	ListTeamCodes(teamID uint, activeOnly bool, page, limit int) ([]InvitationCode, int64, error)
	RevokeTeamCode(id uint) error
	// RedeemTeamCode atomically consumes one use and grants the
	// membership; it fails with ErrCodeExhausted when the counter is
	// already at the cap, even under concurrent redemptions.
	RedeemTeamCode(codeID, userID uint, role access.Role) error

	CreateLeagueInvitation(code *LeagueInvitation) error
	GetLeagueInvitationByCode(code string) (*LeagueInvitation, error)
	GetLeagueInvitationByID(id uint) (*LeagueInvitation, error)
	ListLeagueInvitations(leagueID uint, activeOnly bool, page, limit int) ([]LeagueInvitation, int64, error)
	RevokeLeagueInvitation(id uint) error
	RedeemLeagueInvitation(codeID, userID uint, role access.Role) error

	HasAnyMembership(userID uint, scope access.Scope) (bool, error)
}

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) CreateTeamCode(code *InvitationCode) error {
	return r.db.Create(code).Error
}

func (r *inviteRepository) GetTeamCodeByCode(code string) (*InvitationCode, error) {
	var c InvitationCode
	if err := r.db.Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *inviteRepository) GetTeamCodeByID(id uint) (*InvitationCode, error) {
	var c InvitationCode
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *inviteRepository) ListTeamCodes(teamID uint, activeOnly bool, page, limit int) ([]InvitationCode, int64, error) {
	var codes []InvitationCode
	var total int64

	query := r.db.Model(&InvitationCode{}).Where("team_id = ?", teamID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&codes).Error; err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

// revoke flips is_active off; revoking an already-inactive code is a
// no-op success.
func (r *inviteRepository) RevokeTeamCode(id uint) error {
	return r.db.Model(&InvitationCode{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *inviteRepository) RedeemTeamCode(codeID, userID uint, role access.Role) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := consumeUse(tx, &InvitationCode{}, codeID); err != nil {
			return err
		}
		m := &access.Membership{UserID: userID, Role: role}
		var code InvitationCode
		if err := tx.First(&code, codeID).Error; err != nil {
			return err
		}
		m.TeamID = &code.TeamID
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
	})
}

func (r *inviteRepository) CreateLeagueInvitation(code *LeagueInvitation) error {
	return r.db.Create(code).Error
}

func (r *inviteRepository) GetLeagueInvitationByCode(code string) (*LeagueInvitation, error) {
	var c LeagueInvitation
	if err := r.db.Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *inviteRepository) GetLeagueInvitationByID(id uint) (*LeagueInvitation, error) {
	var c LeagueInvitation
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *inviteRepository) ListLeagueInvitations(leagueID uint, activeOnly bool, page, limit int) ([]LeagueInvitation, int64, error) {
	var codes []LeagueInvitation
	var total int64

	query := r.db.Model(&LeagueInvitation{}).Where("league_id = ?", leagueID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&codes).Error; err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

func (r *inviteRepository) RevokeLeagueInvitation(id uint) error {
	return r.db.Model(&LeagueInvitation{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *inviteRepository) RedeemLeagueInvitation(codeID, userID uint, role access.Role) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := consumeUse(tx, &LeagueInvitation{}, codeID); err != nil {
			return err
		}
		var code LeagueInvitation
		if err := tx.First(&code, codeID).Error; err != nil {
			return err
		}
		m := &access.Membership{UserID: userID, Role: role, LeagueID: &code.LeagueID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
	})
}

func (r *inviteRepository) HasAnyMembership(userID uint, scope access.Scope) (bool, error) {
	var count int64
	query := r.db.Model(&access.Membership{}).Where("user_id = ?", userID)
	if scope.TeamID != nil {
		query = query.Where("team_id = ?", *scope.TeamID)
	}
	if scope.LeagueID != nil {
		query = query.Where("league_id = ?", *scope.LeagueID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// consumeUse is the single conditional UPDATE that makes the use
// counter race-proof: the guard and the increment happen in one
// statement, and the use that reaches the cap deactivates the code in
// the same write. The expiry clause re-checks the deadline at write
// time, so a code that expired between lookup and redeem cannot be
// consumed. Zero rows affected means another request got there first
// or the code lapsed.
func consumeUse(tx *gorm.DB, model interface{}, codeID uint) error {
	result := tx.Model(model).
		Where("id = ? AND is_active = ? AND uses < max_uses AND (expires_at IS NULL OR expires_at > ?)",
			codeID, true, time.Now()).
		Updates(map[string]interface{}{
			"uses":      gorm.Expr("uses + 1"),
			"is_active": gorm.Expr("uses + 1 < max_uses"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCodeExhausted
	}
	return nil
}

// IsDuplicateCode reports a unique-constraint collision on the code
// column, used by the generator's retry loop.
func IsDuplicateCode(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
