package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/dom/league-skinset-finder/internal/cache"
	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/resolver"
	"github.com/dom/league-skinset-finder/internal/roster"
)

// ChampionSpec names a champion and, optionally, the lanes the player wants it
// in. No lanes means the champion's canonical lanes.
type ChampionSpec struct {
	Name  string   `json:"name"`
	Lanes []string `json:"lanes,omitempty"`
}

type PlayerSpec struct {
	Name      string         `json:"name"`
	Champions []ChampionSpec `json:"champions"`
}

// RosterSpec is the name-based form of a roster used on the wire. A nil
// Excluded means the catalog's default exclusions; an empty one excludes
// nothing.
type RosterSpec struct {
	Players  []PlayerSpec `json:"players"`
	Excluded []string     `json:"excluded"`
}

type PickView struct {
	Player   string      `json:"player"`
	Champion string      `json:"champion"`
	Lane     domain.Lane `json:"lane"`
}

type RowView struct {
	Assignment []PickView `json:"assignment"`
	Skinsets   []string   `json:"skinsets"`
}

type ResolveResponse struct {
	Players   []string  `json:"players"`
	Rows      []RowView `json:"rows"`
	Truncated bool      `json:"truncated"`
	Count     int       `json:"count"`
}

type ResolveService struct {
	catalog  *catalog.Catalog
	resolver *resolver.Resolver
	cache    cache.ResultCache
	workers  int
	maxRows  int
}

func NewResolveService(cat *catalog.Catalog, resultCache cache.ResultCache, workers, maxRows int) *ResolveService {
	if resultCache == nil {
		resultCache = cache.NopCache{}
	}
	return &ResolveService{
		catalog:  cat,
		resolver: resolver.New(cat),
		cache:    resultCache,
		workers:  workers,
		maxRows:  maxRows,
	}
}

func (s *ResolveService) Catalog() *catalog.Catalog {
	return s.catalog
}

// BuildRoster turns untrusted names into a roster, rejecting anything the
// roster itself would panic on.
func (s *ResolveService) BuildRoster(spec RosterSpec) (*roster.Roster, error) {
	if len(spec.Players) == 0 {
		return nil, domain.ErrNoPlayers
	}
	if len(spec.Players) > domain.MaxPlayers {
		return nil, fmt.Errorf("%w: %d, at most %d", domain.ErrTooManyPlayers, len(spec.Players), domain.MaxPlayers)
	}

	r := roster.New(s.catalog)
	for r.Len() < len(spec.Players) {
		r.AddPlayer()
	}

	for i, p := range spec.Players {
		r.SetName(i, p.Name)
		seen := make(map[domain.ChampionID]bool, len(p.Champions))
		for _, c := range p.Champions {
			id, ok := s.catalog.ChampionByName(c.Name)
			if !ok {
				return nil, fmt.Errorf("player %d: %w: %q", i+1, domain.ErrUnknownChampion, c.Name)
			}
			if seen[id] {
				return nil, fmt.Errorf("player %d: %w: %q", i+1, domain.ErrDuplicateChampion, c.Name)
			}
			seen[id] = true

			lanes, err := domain.ParseLaneSet(c.Lanes)
			if err != nil {
				return nil, fmt.Errorf("player %d, %s: %w", i+1, c.Name, err)
			}
			r.UpsertChampion(i, id, lanes)
		}
	}

	if spec.Excluded != nil {
		r.IncludeAll()
		for _, name := range spec.Excluded {
			id, ok := s.catalog.SkinsetByName(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSkinset, name)
			}
			if !r.IsExcluded(id) {
				r.ToggleSkinset(id)
			}
		}
	}

	return r, nil
}

// SpecFromRoster is the inverse of BuildRoster, with names and lanes spelled
// canonically. Excluded is never nil.
func SpecFromRoster(r *roster.Roster) RosterSpec {
	cat := r.Catalog()
	players := r.Players()

	spec := RosterSpec{
		Players:  make([]PlayerSpec, len(players)),
		Excluded: skinsetNames(cat, r.Excluded()),
	}
	for i, p := range players {
		ps := PlayerSpec{Name: p.Name, Champions: make([]ChampionSpec, len(p.Selections))}
		for j, sel := range p.Selections {
			lanes := sel.Lanes.Lanes()
			cs := ChampionSpec{Name: cat.Champion(sel.Champion).Name, Lanes: make([]string, len(lanes))}
			for k, l := range lanes {
				cs.Lanes[k] = l.String()
			}
			ps.Champions[j] = cs
		}
		spec.Players[i] = ps
	}
	return spec
}

// Resolve validates spec and resolves it, serving repeated requests from the
// result cache.
func (s *ResolveService) Resolve(ctx context.Context, spec RosterSpec) (*ResolveResponse, error) {
	r, err := s.BuildRoster(spec)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(SpecFromRoster(r))
	if err != nil {
		return nil, err
	}
	key := cache.Key(s.catalog.Fingerprint(), payload)

	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("ERROR [ResolveService.Resolve] cache get key=%s: %v", key, err)
	} else if ok {
		var resp ResolveResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		log.Printf("ERROR [ResolveService.Resolve] corrupt cache entry key=%s", key)
	}

	resp, err := s.ResolveRoster(ctx, r)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, encoded); err != nil {
			log.Printf("ERROR [ResolveService.Resolve] cache set key=%s: %v", key, err)
		}
	}
	return resp, nil
}

// ResolveRoster resolves an already validated roster. The roster is only read.
func (s *ResolveService) ResolveRoster(ctx context.Context, r *roster.Roster) (*ResolveResponse, error) {
	players := r.Players()
	res, err := s.resolver.ResolveParallel(ctx, players, r.ExcludedSet(), resolver.Options{Limit: s.maxRows}, s.workers)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.DisplayName(i)
	}

	resp := &ResolveResponse{
		Players:   names,
		Rows:      make([]RowView, 0, len(res.Rows)),
		Truncated: res.Truncated,
		Count:     len(res.Rows),
	}
	for _, row := range res.Rows {
		view := RowView{
			Assignment: make([]PickView, len(row.Assignment)),
			Skinsets:   skinsetNames(s.catalog, row.Skinsets),
		}
		for i, pick := range row.Assignment {
			view.Assignment[i] = PickView{
				Player:   names[i],
				Champion: s.catalog.Champion(pick.Champion).Name,
				Lane:     pick.Lane,
			}
		}
		resp.Rows = append(resp.Rows, view)
	}
	return resp, nil
}
