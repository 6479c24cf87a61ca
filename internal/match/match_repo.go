package match

import (
	"gorm.io/gorm"
)

type MatchRepository interface {
	CreateMatch(match *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetMatchesByLeague(leagueID uint, status Status, page, limit int) ([]Match, int64, error)
	UpdateMatch(match *Match) error
	DeleteMatch(id uint) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateMatch(match *Match) error {
	return r.db.Create(match).Error
}

func (r *matchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetMatchesByLeague(leagueID uint, status Status, page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("league_id = ?", leagueID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("scheduled_at asc").Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *matchRepository) UpdateMatch(match *Match) error {
	return r.db.Save(match).Error
}

func (r *matchRepository) DeleteMatch(id uint) error {
	return r.db.Delete(&Match{}, id).Error
}
