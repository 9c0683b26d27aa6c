package catalog_test

import (
	"bytes"
	"testing"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SortsAndIndexes(t *testing.T) {
	cat := testutil.FixtureCatalog(t)

	assert.Equal(t, 11, cat.NumChampions())
	assert.Equal(t, 10, cat.NumSkinsets())

	var names []string
	for _, id := range cat.AllChampions() {
		names = append(names, cat.Champion(id).Name)
	}
	assert.Equal(t, []string{
		"Ahri", "Caitlyn", "Ekko", "Ezreal", "Garen", "Jinx", "Kai'Sa", "Kled", "Lux", "Vi", "Yuumi",
	}, names)

	var skinsets []string
	for _, id := range cat.AllSkinsets() {
		skinsets = append(skinsets, cat.Skinset(id).Name)
	}
	assert.Equal(t, []string{
		"Arcade", "Arcane", "Battle Academia", "Heartseeker", "K/DA", "Legacy", "N/A",
		"PROJECT", "PsyOps", "Star Guardian",
	}, skinsets)
}

func TestLookups(t *testing.T) {
	cat := testutil.FixtureCatalog(t)

	lux := testutil.ChampionID(t, cat, "Lux")
	assert.Equal(t, domain.NewLaneSet(domain.LaneMid, domain.LaneSupport), cat.LanesFor(lux))

	caitlyn := testutil.ChampionID(t, cat, "Caitlyn")
	assert.Equal(t, []string{"Arcane", "Battle Academia"}, testutil.SkinsetNames(cat, cat.SkinsetsFor(caitlyn)))
	assert.Equal(t, 2, cat.SkinsetSet(caitlyn).Len())

	// no lane data means every lane
	kled := testutil.ChampionID(t, cat, "Kled")
	assert.Equal(t, domain.AllLaneSet, cat.LanesFor(kled))
}

func TestByName(t *testing.T) {
	cat := testutil.FixtureCatalog(t)

	tests := []struct {
		name  string
		want  string
		found bool
	}{
		{name: "Kai'Sa", want: "Kai'Sa", found: true},
		{name: "kaisa", want: "Kai'Sa", found: true},
		{name: "JINX", want: "Jinx", found: true},
		{name: "Teemo", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := cat.ChampionByName(tt.name)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, cat.Champion(id).Name)
			}
		})
	}

	id, ok := cat.SkinsetByName("star guardian")
	require.True(t, ok)
	assert.Equal(t, "Star Guardian", cat.Skinset(id).Name)

	_, ok = cat.SkinsetByName("Spirit Blossom")
	assert.False(t, ok)
}

func TestDefaultExclusions(t *testing.T) {
	cat := testutil.FixtureCatalog(t)

	assert.Equal(t, []string{"Legacy", "N/A"}, testutil.SkinsetNames(cat, cat.DefaultExclusions()))

	snap := testutil.FixtureSnapshot()
	snap.Skinsets = []string{"Arcane"}
	snap.Champions = []catalog.ChampionEntry{{Name: "Jinx", Lanes: []string{"Bot"}, Skinsets: []string{"Arcane"}}}
	small, err := catalog.New(snap)
	require.NoError(t, err)
	assert.Empty(t, small.DefaultExclusions())
}

func TestOutOfRangePanics(t *testing.T) {
	cat := testutil.FixtureCatalog(t)

	assert.Panics(t, func() { cat.LanesFor(domain.ChampionID(cat.NumChampions())) })
	assert.Panics(t, func() { cat.SkinsetsFor(-1) })
	assert.Panics(t, func() { cat.Skinset(domain.SkinsetID(99)) })
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *catalog.Snapshot)
		wantErr error
	}{
		{
			name:    "empty",
			mutate:  func(s *catalog.Snapshot) { s.Champions = nil },
			wantErr: domain.ErrEmptyCatalog,
		},
		{
			name: "duplicate champion",
			mutate: func(s *catalog.Snapshot) {
				s.Champions = append(s.Champions, catalog.ChampionEntry{Name: "Jinx", Lanes: []string{"Bot"}})
			},
			wantErr: domain.ErrDuplicateChampion,
		},
		{
			name:    "duplicate skinset",
			mutate:  func(s *catalog.Snapshot) { s.Skinsets = append(s.Skinsets, "Arcane") },
			wantErr: domain.ErrDuplicateSkinset,
		},
		{
			name: "unknown skinset reference",
			mutate: func(s *catalog.Snapshot) {
				s.Champions[0].Skinsets = append(s.Champions[0].Skinsets, "Spirit Blossom")
			},
			wantErr: domain.ErrUnknownSkinset,
		},
		{
			name:    "bad lane",
			mutate:  func(s *catalog.Snapshot) { s.Champions[0].Lanes = []string{"River"} },
			wantErr: domain.ErrInvalidLane,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testutil.FixtureSnapshot()
			tt.mutate(snap)

			_, err := catalog.New(snap)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := testutil.FixtureCatalog(t)
	b := testutil.FixtureCatalog(t)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	rebuilt, err := catalog.New(a.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), rebuilt.Fingerprint())

	snap := testutil.FixtureSnapshot()
	snap.Champions[0].Lanes = []string{"Bot", "Mid"}
	changed, err := catalog.New(snap)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), changed.Fingerprint())
}

func TestSnapshot_EncodeDecode(t *testing.T) {
	cat := testutil.FixtureCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, cat.Snapshot().Encode(&buf))

	decoded, err := catalog.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-08", decoded.DataDate)

	again, err := catalog.New(decoded)
	require.NoError(t, err)
	assert.Equal(t, cat.Fingerprint(), again.Fingerprint())
}

func TestSnapshot_WriteAndLoadFile(t *testing.T) {
	path := t.TempDir() + "/catalog.json"
	require.NoError(t, testutil.FixtureSnapshot().WriteFile(path))

	snap, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, snap.Champions, 11)

	_, err = catalog.LoadFile(t.TempDir() + "/missing.json")
	assert.Error(t, err)
}
