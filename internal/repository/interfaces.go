package repository

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/domain"
)

type ChampionRepository interface {
	UpsertMany(ctx context.Context, champions []*domain.ChampionRecord) error
	GetAll(ctx context.Context) ([]*domain.ChampionRecord, error)
	GetByName(ctx context.Context, name string) (*domain.ChampionRecord, error)
	DeleteAll(ctx context.Context) error
}

type SkinsetRepository interface {
	UpsertMany(ctx context.Context, skinsets []*domain.SkinsetRecord) error
	GetAll(ctx context.Context) ([]*domain.SkinsetRecord, error)
	DeleteAll(ctx context.Context) error
}

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *domain.SnapshotRecord) error
	GetLatest(ctx context.Context) (*domain.SnapshotRecord, error)
	List(ctx context.Context, limit int) ([]*domain.SnapshotRecord, error)
}

// Transactor runs fn against repositories bound to a single transaction.
// Returning an error from fn rolls the transaction back.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}

type Repositories struct {
	Champion ChampionRepository
	Skinset  SkinsetRepository
	Snapshot SnapshotRepository
	Tx       Transactor
}
