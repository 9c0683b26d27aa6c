package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNoDatabase = errors.New("no database configured")

type CatalogService struct {
	catalog *catalog.Catalog
	repos   *repository.Repositories
}

// NewCatalogService serves cat. repos may be nil when the catalog came from a
// file; Import is unavailable then.
func NewCatalogService(cat *catalog.Catalog, repos *repository.Repositories) *CatalogService {
	return &CatalogService{catalog: cat, repos: repos}
}

func (s *CatalogService) Catalog() *catalog.Catalog {
	return s.catalog
}

type ChampionView struct {
	Name     string         `json:"name"`
	Lanes    domain.LaneSet `json:"lanes"`
	Skinsets []string       `json:"skinsets"`
}

type SkinsetView struct {
	Name            string `json:"name"`
	DefaultExcluded bool   `json:"defaultExcluded"`
}

type CatalogInfo struct {
	DataDate      string `json:"dataDate,omitempty"`
	Fingerprint   string `json:"fingerprint"`
	ChampionCount int    `json:"championCount"`
	SkinsetCount  int    `json:"skinsetCount"`
}

// Champions lists every champion sorted by name.
func (s *CatalogService) Champions() []ChampionView {
	out := make([]ChampionView, 0, s.catalog.NumChampions())
	for _, id := range s.catalog.AllChampions() {
		c := s.catalog.Champion(id)
		out = append(out, ChampionView{
			Name:     c.Name,
			Lanes:    c.Lanes,
			Skinsets: skinsetNames(s.catalog, s.catalog.SkinsetsFor(id)),
		})
	}
	return out
}

func (s *CatalogService) Skinsets() []SkinsetView {
	defaults := make(map[domain.SkinsetID]bool)
	for _, id := range s.catalog.DefaultExclusions() {
		defaults[id] = true
	}

	out := make([]SkinsetView, 0, s.catalog.NumSkinsets())
	for _, id := range s.catalog.AllSkinsets() {
		out = append(out, SkinsetView{Name: s.catalog.Skinset(id).Name, DefaultExcluded: defaults[id]})
	}
	return out
}

func (s *CatalogService) Info() CatalogInfo {
	return CatalogInfo{
		DataDate:      s.catalog.DataDate(),
		Fingerprint:   s.catalog.Fingerprint(),
		ChampionCount: s.catalog.NumChampions(),
		SkinsetCount:  s.catalog.NumSkinsets(),
	}
}

// Import validates snap and replaces the stored catalog with it in one
// transaction.
func (s *CatalogService) Import(ctx context.Context, snap *catalog.Snapshot) (*domain.SnapshotRecord, error) {
	if s.repos == nil {
		return nil, ErrNoDatabase
	}

	cat, err := catalog.New(snap)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	canonical := cat.Snapshot()
	now := time.Now()

	champions := make([]*domain.ChampionRecord, 0, len(canonical.Champions))
	for _, id := range cat.AllChampions() {
		skinsets, err := json.Marshal(skinsetNames(cat, cat.SkinsetsFor(id)))
		if err != nil {
			return nil, err
		}
		c := cat.Champion(id)
		champions = append(champions, &domain.ChampionRecord{
			Name:     c.Name,
			Lanes:    c.Lanes,
			Skinsets: datatypes.JSON(skinsets),
			SyncedAt: now,
		})
	}

	skinsets := make([]*domain.SkinsetRecord, 0, len(canonical.Skinsets))
	for _, name := range canonical.Skinsets {
		skinsets = append(skinsets, &domain.SkinsetRecord{Name: name, SyncedAt: now})
	}

	record := &domain.SnapshotRecord{
		ID:            uuid.New(),
		Fingerprint:   cat.Fingerprint(),
		DataDate:      cat.DataDate(),
		ChampionCount: cat.NumChampions(),
		SkinsetCount:  cat.NumSkinsets(),
		CreatedAt:     now,
	}

	err = s.repos.Tx.InTransaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.Champion.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear champions: %w", err)
		}
		if err := tx.Skinset.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear skinsets: %w", err)
		}
		if err := tx.Skinset.UpsertMany(ctx, skinsets); err != nil {
			return fmt.Errorf("failed to store skinsets: %w", err)
		}
		if err := tx.Champion.UpsertMany(ctx, champions); err != nil {
			return fmt.Errorf("failed to store champions: %w", err)
		}
		return tx.Snapshot.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// History lists imported snapshots, newest first.
func (s *CatalogService) History(ctx context.Context, limit int) ([]*domain.SnapshotRecord, error) {
	if s.repos == nil {
		return nil, ErrNoDatabase
	}
	return s.repos.Snapshot.List(ctx, limit)
}

// LoadFromRepository rebuilds the catalog from the stored tables.
func LoadFromRepository(ctx context.Context, repos *repository.Repositories) (*catalog.Catalog, error) {
	champions, err := repos.Champion.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load champions: %w", err)
	}
	skinsets, err := repos.Skinset.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load skinsets: %w", err)
	}

	snap := &catalog.Snapshot{Skinsets: make([]string, 0, len(skinsets))}
	for _, sk := range skinsets {
		snap.Skinsets = append(snap.Skinsets, sk.Name)
	}
	for _, c := range champions {
		var names []string
		if len(c.Skinsets) > 0 {
			if err := json.Unmarshal(c.Skinsets, &names); err != nil {
				return nil, fmt.Errorf("champion %q has malformed skinsets: %w", c.Name, err)
			}
		}
		entry := catalog.ChampionEntry{Name: c.Name, Skinsets: names}
		for _, lane := range c.Lanes.Lanes() {
			entry.Lanes = append(entry.Lanes, lane.String())
		}
		snap.Champions = append(snap.Champions, entry)
	}

	latest, err := repos.Snapshot.GetLatest(ctx)
	switch {
	case err == nil:
		snap.DataDate = latest.DataDate
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load snapshot record: %w", err)
	}

	return catalog.New(snap)
}

func skinsetNames(cat *catalog.Catalog, ids []domain.SkinsetID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = cat.Skinset(id).Name
	}
	return names
}
