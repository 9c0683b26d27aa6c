package testutil

import (
	"testing"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
)

// FixtureSnapshot returns a small catalog snapshot. Ids after sorting:
//
//	champions: Ahri 0, Caitlyn 1, Ekko 2, Ezreal 3, Garen 4, Jinx 5, Kai'Sa 6, Kled 7, Lux 8, Vi 9, Yuumi 10
//	skinsets:  Arcade 0, Arcane 1, Battle Academia 2, Heartseeker 3, K/DA 4, Legacy 5, N/A 6,
//	           PROJECT 7, PsyOps 8, Star Guardian 9
func FixtureSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		DataDate: "2023-12-08",
		Skinsets: []string{
			"Star Guardian", "Arcane", "Battle Academia", "Legacy", "N/A",
			"Arcade", "K/DA", "PROJECT", "PsyOps", "Heartseeker",
		},
		Champions: []catalog.ChampionEntry{
			{Name: "Jinx", Lanes: []string{"Bot"}, Skinsets: []string{"Arcane", "Star Guardian"}},
			{Name: "Vi", Lanes: []string{"Jungle"}, Skinsets: []string{"Arcane", "Legacy"}},
			{Name: "Caitlyn", Lanes: []string{"Bot"}, Skinsets: []string{"Arcane", "Battle Academia"}},
			{Name: "Ahri", Lanes: []string{"Mid"}, Skinsets: []string{"Arcade", "K/DA", "Legacy", "Star Guardian"}},
			{Name: "Ekko", Lanes: []string{"Jungle", "Mid"}, Skinsets: []string{"Arcane", "PROJECT", "Star Guardian"}},
			{Name: "Ezreal", Lanes: []string{"Bot"}, Skinsets: []string{"Arcade", "Battle Academia", "PsyOps", "Star Guardian"}},
			{Name: "Garen", Lanes: []string{"Top"}, Skinsets: []string{"Battle Academia", "Legacy"}},
			{Name: "Kai'Sa", Lanes: []string{"Bot"}, Skinsets: []string{"Arcade", "K/DA", "Star Guardian"}},
			{Name: "Kled", Skinsets: []string{"N/A"}},
			{Name: "Lux", Lanes: []string{"Mid", "Support"}, Skinsets: []string{"Battle Academia", "Legacy", "Star Guardian"}},
			{Name: "Yuumi", Lanes: []string{"Support"}, Skinsets: []string{"Battle Academia", "Heartseeker"}},
		},
	}
}

// FixtureCatalog builds the fixture snapshot into a catalog
func FixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.New(FixtureSnapshot())
	if err != nil {
		t.Fatalf("failed to build fixture catalog: %v", err)
	}
	return cat
}

// ChampionID resolves a fixture champion by name
func ChampionID(t *testing.T, cat *catalog.Catalog, name string) domain.ChampionID {
	t.Helper()

	id, ok := cat.ChampionByName(name)
	if !ok {
		t.Fatalf("champion %q not in catalog", name)
	}
	return id
}

// SkinsetID resolves a fixture skinset by name
func SkinsetID(t *testing.T, cat *catalog.Catalog, name string) domain.SkinsetID {
	t.Helper()

	id, ok := cat.SkinsetByName(name)
	if !ok {
		t.Fatalf("skinset %q not in catalog", name)
	}
	return id
}

// SkinsetNames maps ids back to names for readable assertions
func SkinsetNames(cat *catalog.Catalog, ids []domain.SkinsetID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = cat.Skinset(id).Name
	}
	return names
}

// PlayerBuilder creates roster players with a builder pattern
type PlayerBuilder struct {
	t      *testing.T
	cat    *catalog.Catalog
	player domain.Player
}

func NewPlayerBuilder(t *testing.T, cat *catalog.Catalog) *PlayerBuilder {
	return &PlayerBuilder{t: t, cat: cat}
}

func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.player.Name = name
	return b
}

// WithChampion adds a champion on its canonical lanes, or on the given lanes
func (b *PlayerBuilder) WithChampion(name string, lanes ...domain.Lane) *PlayerBuilder {
	b.t.Helper()

	id := ChampionID(b.t, b.cat, name)
	set := b.cat.LanesFor(id)
	if len(lanes) > 0 {
		set = domain.NewLaneSet(lanes...)
	}
	b.player.Selections = append(b.player.Selections, domain.Selection{Champion: id, Lanes: set})
	return b
}

func (b *PlayerBuilder) Build() domain.Player {
	return b.player.Clone()
}
