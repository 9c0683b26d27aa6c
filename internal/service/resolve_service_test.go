package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache counts hits so tests can tell cached responses apart.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func viCaitlynSpec(excluded []string) service.RosterSpec {
	return service.RosterSpec{
		Players: []service.PlayerSpec{
			{Name: "A", Champions: []service.ChampionSpec{{Name: "Vi"}}},
			{Champions: []service.ChampionSpec{{Name: "caitlyn"}}},
		},
		Excluded: excluded,
	}
}

func TestResolveService_BuildRoster(t *testing.T) {
	cat := testutil.FixtureCatalog(t)
	svc := service.NewResolveService(cat, nil, 0, 0)

	sixPlayers := make([]service.PlayerSpec, domain.MaxPlayers+1)

	tests := []struct {
		name    string
		spec    service.RosterSpec
		wantErr error
	}{
		{
			name:    "no players",
			spec:    service.RosterSpec{},
			wantErr: domain.ErrNoPlayers,
		},
		{
			name:    "too many players",
			spec:    service.RosterSpec{Players: sixPlayers},
			wantErr: domain.ErrTooManyPlayers,
		},
		{
			name: "unknown champion",
			spec: service.RosterSpec{Players: []service.PlayerSpec{
				{Champions: []service.ChampionSpec{{Name: "Teemo"}}},
			}},
			wantErr: domain.ErrUnknownChampion,
		},
		{
			name: "duplicate champion for one player",
			spec: service.RosterSpec{Players: []service.PlayerSpec{
				{Champions: []service.ChampionSpec{{Name: "Jinx"}, {Name: "Jinx"}}},
			}},
			wantErr: domain.ErrDuplicateChampion,
		},
		{
			name: "bad lane",
			spec: service.RosterSpec{Players: []service.PlayerSpec{
				{Champions: []service.ChampionSpec{{Name: "Jinx", Lanes: []string{"Carry"}}}},
			}},
			wantErr: domain.ErrInvalidLane,
		},
		{
			name: "unknown skinset",
			spec: service.RosterSpec{
				Players:  []service.PlayerSpec{{Champions: []service.ChampionSpec{{Name: "Jinx"}}}},
				Excluded: []string{"Nope"},
			},
			wantErr: domain.ErrUnknownSkinset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BuildRoster(tt.spec)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveService_BuildRosterAndBack(t *testing.T) {
	cat := testutil.FixtureCatalog(t)
	svc := service.NewResolveService(cat, nil, 0, 0)

	r, err := svc.BuildRoster(service.RosterSpec{
		Players: []service.PlayerSpec{
			{Name: "Maddie", Champions: []service.ChampionSpec{
				{Name: "kaisa"},
				{Name: "Garen", Lanes: []string{"support", "top"}},
			}},
			{},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	spec := service.SpecFromRoster(r)
	assert.Equal(t, service.RosterSpec{
		Players: []service.PlayerSpec{
			{Name: "Maddie", Champions: []service.ChampionSpec{
				{Name: "Kai'Sa", Lanes: []string{"Bot"}},
				{Name: "Garen", Lanes: []string{"Top", "Support"}},
			}},
			{Champions: []service.ChampionSpec{}},
		},
		Excluded: []string{"Legacy", "N/A"},
	}, spec)

	again, err := svc.BuildRoster(spec)
	require.NoError(t, err)
	assert.Equal(t, r.Players(), again.Players())
	assert.Equal(t, r.Excluded(), again.Excluded())
}

func TestResolveService_Resolve(t *testing.T) {
	cat := testutil.FixtureCatalog(t)
	svc := service.NewResolveService(cat, nil, 2, 0)

	resp, err := svc.Resolve(context.Background(), viCaitlynSpec([]string{"Legacy"}))
	require.NoError(t, err)

	assert.Equal(t, &service.ResolveResponse{
		Players: []string{"A", "Player 2"},
		Rows: []service.RowView{
			{
				Assignment: []service.PickView{
					{Player: "A", Champion: "Vi", Lane: domain.LaneJungle},
					{Player: "Player 2", Champion: "Caitlyn", Lane: domain.LaneBot},
				},
				Skinsets: []string{"Arcane"},
			},
		},
		Count: 1,
	}, resp)

	resp, err = svc.Resolve(context.Background(), viCaitlynSpec([]string{"Legacy", "Arcane"}))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Rows)
}

func TestResolveService_DefaultExclusions(t *testing.T) {
	cat := testutil.FixtureCatalog(t)
	svc := service.NewResolveService(cat, nil, 0, 0)

	spec := service.RosterSpec{Players: []service.PlayerSpec{
		{Champions: []service.ChampionSpec{{Name: "Garen"}}},
	}}

	resp, err := svc.Resolve(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, []string{"Battle Academia"}, resp.Rows[0].Skinsets)

	spec.Excluded = []string{}
	resp, err = svc.Resolve(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, []string{"Battle Academia", "Legacy"}, resp.Rows[0].Skinsets)
}

func TestResolveService_Truncates(t *testing.T) {
	cat := testutil.FixtureCatalog(t)
	svc := service.NewResolveService(cat, nil, 0, 2)

	resp, err := svc.Resolve(context.Background(), service.RosterSpec{Players: []service.PlayerSpec{
		{Champions: []service.ChampionSpec{{Name: "Lux"}, {Name: "Ekko"}}},
		{Champions: []service.ChampionSpec{{Name: "Jinx"}, {Name: "Ahri"}}},
	}})
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 2)
	assert.Equal(t, 2, resp.Count)
	assert.True(t, resp.Truncated)
}

func TestResolveService_UsesCache(t *testing.T) {
	cat := testutil.FixtureCatalog(t)
	mem := newMemoryCache()
	svc := service.NewResolveService(cat, mem, 0, 0)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, viCaitlynSpec(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, mem.sets)
	assert.Equal(t, 0, mem.hits)

	// Same roster spelled differently hits the same entry
	second, err := svc.Resolve(ctx, service.RosterSpec{
		Players: []service.PlayerSpec{
			{Name: "A", Champions: []service.ChampionSpec{{Name: "VI", Lanes: []string{"jungle"}}}},
			{Champions: []service.ChampionSpec{{Name: "Caitlyn"}}},
		},
		Excluded: []string{"N/A", "Legacy"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.hits)
	assert.Equal(t, first, second)
}
