package league

import (
	"gorm.io/gorm"
)

type LeagueRepository interface {
	CreateLeague(league *League) error
	GetLeagueByID(id uint) (*League, error)
	GetAllLeagues(page, limit int) ([]League, int64, error)
	UpdateLeague(league *League) error
	DeleteLeague(id uint) error
}

type leagueRepository struct {
	db *gorm.DB
}

func NewLeagueRepository(db *gorm.DB) LeagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) CreateLeague(league *League) error {
	return r.db.Create(league).Error
}

func (r *leagueRepository) GetLeagueByID(id uint) (*League, error) {
	var league League
	if err := r.db.First(&league, id).Error; err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepository) GetAllLeagues(page, limit int) ([]League, int64, error) {
	var leagues []League
	var total int64

	query := r.db.Model(&League{})
	query.Count(&total)

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&leagues).Error; err != nil {
		return nil, 0, err
	}
	return leagues, total, nil
}

func (r *leagueRepository) UpdateLeague(league *League) error {
	return r.db.Save(league).Error
}

func (r *leagueRepository) DeleteLeague(id uint) error {
	return r.db.Delete(&League{}, id).Error
}
