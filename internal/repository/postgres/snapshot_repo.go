package postgres

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *snapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *domain.SnapshotRecord) error {
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *snapshotRepository) GetLatest(ctx context.Context) (*domain.SnapshotRecord, error) {
	var snapshot domain.SnapshotRecord
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) List(ctx context.Context, limit int) ([]*domain.SnapshotRecord, error) {
	var snapshots []*domain.SnapshotRecord
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
