package access

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository interface {
	// HasMembership reports an exact (user, role, scope) match.
	HasMembership(userID uint, role Role, scope Scope) (bool, error)
	// CreateMembership inserts a grant; a pre-existing identical grant is
	// a no-op and reported via the created flag.
	CreateMembership(m *Membership) (created bool, err error)
	// DeleteMembership removes a grant; removing an absent grant is a no-op.
	DeleteMembership(userID uint, role Role, scope Scope) error
	GetMembershipsByUser(userID uint) ([]Membership, error)
	GetMembershipsByScope(scope Scope) ([]Membership, error)
	CountMembershipsByUser(userID uint) (int64, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func scopeQuery(q *gorm.DB, scope Scope) *gorm.DB {
	if scope.TeamID != nil {
		q = q.Where("team_id = ?", *scope.TeamID)
	} else {
		q = q.Where("team_id IS NULL")
	}
	if scope.LeagueID != nil {
		q = q.Where("league_id = ?", *scope.LeagueID)
	} else {
		q = q.Where("league_id IS NULL")
	}
	return q
}

func (r *membershipRepository) HasMembership(userID uint, role Role, scope Scope) (bool, error) {
	var count int64
	q := r.db.Model(&Membership{}).Where("user_id = ? AND role = ?", userID, role)
	if err := scopeQuery(q, scope).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepository) CreateMembership(m *Membership) (bool, error) {
	// DoNothing keeps concurrent duplicate grants from erroring out; the
	// RowsAffected check tells the caller nothing new was created.
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *membershipRepository) DeleteMembership(userID uint, role Role, scope Scope) error {
	q := r.db.Where("user_id = ? AND role = ?", userID, role)
	return scopeQuery(q, scope).Delete(&Membership{}).Error
}

func (r *membershipRepository) GetMembershipsByUser(userID uint) ([]Membership, error) {
	var memberships []Membership
	if err := r.db.Where("user_id = ?", userID).Order("created_at asc").Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) GetMembershipsByScope(scope Scope) ([]Membership, error) {
	var memberships []Membership
	if err := scopeQuery(r.db.Model(&Membership{}), scope).Order("created_at asc").Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) CountMembershipsByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Membership{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
