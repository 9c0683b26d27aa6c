package domain

import (
	"time"

	"github.com/google/uuid"
)

// SkinsetID indexes a skinset in a catalog, ordered by name.
type SkinsetID int

// Skinset is a cosmetic theme grouping skins of several champions.
type Skinset struct {
	ID   SkinsetID `json:"id"`
	Name string    `json:"name"` // e.g., "Star Guardian"
}

// Skinsets hidden by default because they are not visually cohesive
var DefaultExcludedSkinsets = []string{"Legacy", "N/A"}

type SkinsetRecord struct {
	Name     string    `json:"name" gorm:"primaryKey"`
	SyncedAt time.Time `json:"syncedAt"`
}

func (SkinsetRecord) TableName() string {
	return "skinsets"
}

// SnapshotRecord tracks each catalog import.
type SnapshotRecord struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Fingerprint   string    `json:"fingerprint" gorm:"not null;index"`
	DataDate      string    `json:"dataDate"`
	ChampionCount int       `json:"championCount"`
	SkinsetCount  int       `json:"skinsetCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (SnapshotRecord) TableName() string {
	return "catalog_snapshots"
}
