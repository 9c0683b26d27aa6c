package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ChampionID indexes a champion in a catalog, ordered by name.
// Ids are only stable within one catalog snapshot.
type ChampionID int

type Champion struct {
	ID    ChampionID `json:"id"`
	Name  string     `json:"name"`  // e.g., "Kai'Sa"
	Lanes LaneSet    `json:"lanes"` // canonical lanes from the draft position table
}

// ChampionRecord is the persisted form of a champion and its skinsets.
type ChampionRecord struct {
	Name     string         `json:"name" gorm:"primaryKey"`
	Lanes    LaneSet        `json:"lanes" gorm:"type:smallint;not null"`
	Skinsets datatypes.JSON `json:"skinsets" gorm:"type:jsonb"` // ["Arcane", "Star Guardian"]
	SyncedAt time.Time      `json:"syncedAt"`
}

func (ChampionRecord) TableName() string {
	return "champions"
}
