package postgres

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type skinsetRepository struct {
	db *gorm.DB
}

func NewSkinsetRepository(db *gorm.DB) *skinsetRepository {
	return &skinsetRepository{db: db}
}

func (r *skinsetRepository) UpsertMany(ctx context.Context, skinsets []*domain.SkinsetRecord) error {
	if len(skinsets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).CreateInBatches(skinsets, upsertBatchSize).Error
}

func (r *skinsetRepository) GetAll(ctx context.Context) ([]*domain.SkinsetRecord, error) {
	var skinsets []*domain.SkinsetRecord
	err := r.db.WithContext(ctx).Order("name ASC").Find(&skinsets).Error
	if err != nil {
		return nil, err
	}
	return skinsets, nil
}

func (r *skinsetRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&domain.SkinsetRecord{}).Error
}
