// Package resolver enumerates every way to give each player a distinct
// champion and a distinct lane, and keeps the assignments whose champions
// share at least one skinset that is not excluded.
//
// Output order is the nesting order of the search: the first player's
// selections outermost in the order they were added, lanes in canonical order,
// then the remaining players the same way. The search is a backtracking walk
// with a champion bitset and a lane bitset for the uniqueness checks, and it
// prunes a branch as soon as the running skinset intersection is empty.
package resolver

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
)

// Options tune a resolve call.
type Options struct {
	// Limit caps the number of rows returned; 0 means unlimited.
	Limit int
}

// Result holds the rows in search order. Truncated is set when more rows
// existed beyond Options.Limit.
type Result struct {
	Rows      []domain.ResultRow
	Truncated bool
}

type Resolver struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// Combinations returns every valid assignment, without looking at skinsets.
func (r *Resolver) Combinations(players []domain.Player) []domain.Assignment {
	if len(players) == 0 {
		return nil
	}
	s := r.newSearch(context.Background(), players, nil, false, 0)
	s.walk(0)

	var out []domain.Assignment
	for _, row := range s.rows {
		out = append(out, row.Assignment)
	}
	return out
}

// Resolve returns every assignment whose champions share a skinset outside
// excluded, paired with those shared skinsets. A nil excluded set excludes
// nothing.
func (r *Resolver) Resolve(players []domain.Player, excluded domain.Bitset, opts Options) Result {
	if len(players) == 0 {
		return Result{}
	}
	s := r.newSearch(context.Background(), players, excluded, true, opts.Limit)
	s.walk(0)
	return Result{Rows: s.rows, Truncated: s.truncated}
}

// SharedSkinsets intersects the skinsets of every picked champion and removes
// the excluded ones.
func (r *Resolver) SharedSkinsets(a domain.Assignment, excluded domain.Bitset) []domain.SkinsetID {
	if len(a) == 0 {
		return nil
	}
	shared := r.initialShared(excluded)
	for _, pick := range a {
		shared.SetIntersection(shared, r.catalog.SkinsetSet(pick.Champion))
	}
	return toSkinsetIDs(shared)
}

func (r *Resolver) initialShared(excluded domain.Bitset) domain.Bitset {
	n := r.catalog.NumSkinsets()
	shared := domain.NewBitset(n)
	shared.Fill(n)
	if excluded != nil {
		shared.SetDifference(shared, excluded)
	}
	return shared
}

func (r *Resolver) newSearch(ctx context.Context, players []domain.Player, excluded domain.Bitset, filter bool, limit int) *search {
	s := &search{
		ctx:       ctx,
		catalog:   r.catalog,
		players:   players,
		filter:    filter,
		limit:     limit,
		usedChamp: domain.NewBitset(r.catalog.NumChampions()),
		picks:     make([]domain.Pick, len(players)),
		shared:    make([]domain.Bitset, len(players)+1),
	}
	s.shared[0] = r.initialShared(excluded)
	for i := 1; i <= len(players); i++ {
		s.shared[i] = domain.NewBitset(r.catalog.NumSkinsets())
	}
	return s
}

// search is the state of one backtracking walk. shared[d] is the skinset
// intersection after the first d picks.
type search struct {
	ctx     context.Context
	catalog *catalog.Catalog
	players []domain.Player
	filter  bool
	limit   int

	usedChamp domain.Bitset
	usedLanes domain.LaneSet
	picks     []domain.Pick
	shared    []domain.Bitset

	rows      []domain.ResultRow
	truncated bool
	nodes     int
	err       error
}

// walk extends the assignment at depth and reports whether to keep searching.
func (s *search) walk(depth int) bool {
	s.nodes++
	if s.nodes&1023 == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return false
		}
	}

	if depth == len(s.players) {
		return s.emit()
	}

	for _, sel := range s.players[depth].Selections {
		if s.usedChamp.Has(int(sel.Champion)) {
			continue
		}
		if s.filter {
			s.shared[depth+1].SetIntersection(s.shared[depth], s.catalog.SkinsetSet(sel.Champion))
			if s.shared[depth+1].IsEmpty() {
				continue
			}
		}
		if !s.tryLanes(depth, sel) {
			return false
		}
	}
	return true
}

func (s *search) tryLanes(depth int, sel domain.Selection) bool {
	for _, lane := range domain.AllLanes {
		if !sel.Lanes.Has(lane) || s.usedLanes.Has(lane) {
			continue
		}
		s.picks[depth] = domain.Pick{Champion: sel.Champion, Lane: lane}
		s.usedChamp.Add(int(sel.Champion))
		s.usedLanes = s.usedLanes.With(lane)

		keepGoing := s.walk(depth + 1)

		s.usedLanes = s.usedLanes.Without(lane)
		s.usedChamp.Remove(int(sel.Champion))
		if !keepGoing {
			return false
		}
	}
	return true
}

func (s *search) emit() bool {
	if s.limit > 0 && len(s.rows) == s.limit {
		s.truncated = true
		return false
	}

	row := domain.ResultRow{Assignment: append(domain.Assignment(nil), s.picks...)}
	if s.filter {
		row.Skinsets = toSkinsetIDs(s.shared[len(s.players)])
	}
	s.rows = append(s.rows, row)
	return true
}

func toSkinsetIDs(b domain.Bitset) []domain.SkinsetID {
	members := b.Members()
	out := make([]domain.SkinsetID, len(members))
	for i, m := range members {
		out[i] = domain.SkinsetID(m)
	}
	return out
}
