package postgres

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

type championRepository struct {
	db *gorm.DB
}

func NewChampionRepository(db *gorm.DB) *championRepository {
	return &championRepository{db: db}
}

func (r *championRepository) UpsertMany(ctx context.Context, champions []*domain.ChampionRecord) error {
	if len(champions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).CreateInBatches(champions, upsertBatchSize).Error
}

func (r *championRepository) GetAll(ctx context.Context) ([]*domain.ChampionRecord, error) {
	var champions []*domain.ChampionRecord
	err := r.db.WithContext(ctx).Order("name ASC").Find(&champions).Error
	if err != nil {
		return nil, err
	}
	return champions, nil
}

func (r *championRepository) GetByName(ctx context.Context, name string) (*domain.ChampionRecord, error) {
	var champion domain.ChampionRecord
	err := r.db.WithContext(ctx).First(&champion, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &champion, nil
}

func (r *championRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&domain.ChampionRecord{}).Error
}
