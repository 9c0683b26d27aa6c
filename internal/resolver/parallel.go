package resolver

import (
	"context"

	"github.com/dom/league-skinset-finder/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ResolveParallel produces the same result as Resolve, fanning the first
// player's (selection, lane) branches out over at most workers goroutines.
// Each branch searches independently; results are stitched back in branch
// order so the output order matches the sequential walk.
func (r *Resolver) ResolveParallel(ctx context.Context, players []domain.Player, excluded domain.Bitset, opts Options, workers int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(players) == 0 {
		return Result{}, nil
	}
	if workers <= 1 {
		s := r.newSearch(ctx, players, excluded, true, opts.Limit)
		s.walk(0)
		if s.err != nil {
			return Result{}, s.err
		}
		return Result{Rows: s.rows, Truncated: s.truncated}, nil
	}

	type branch struct {
		sel  domain.Selection
		lane domain.Lane
	}
	var branches []branch
	for _, sel := range players[0].Selections {
		for _, lane := range sel.Lanes.Lanes() {
			branches = append(branches, branch{sel: sel, lane: lane})
		}
	}

	searches := make([]*search, len(branches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range branches {
		i, b := i, b
		g.Go(func() error {
			s := r.newSearch(gctx, players, excluded, true, opts.Limit)
			if s.seed(b.sel, b.lane) {
				s.walk(1)
			}
			searches[i] = s
			return s.err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	for _, s := range searches {
		for _, row := range s.rows {
			if opts.Limit > 0 && len(res.Rows) == opts.Limit {
				res.Truncated = true
				return res, nil
			}
			res.Rows = append(res.Rows, row)
		}
		if s.truncated {
			res.Truncated = true
			return res, nil
		}
	}
	return res, nil
}

// seed places the first player's pick and reports whether it can lead to a row.
func (s *search) seed(sel domain.Selection, lane domain.Lane) bool {
	s.shared[1].SetIntersection(s.shared[0], s.catalog.SkinsetSet(sel.Champion))
	if s.shared[1].IsEmpty() {
		return false
	}
	s.picks[0] = domain.Pick{Champion: sel.Champion, Lane: lane}
	s.usedChamp.Add(int(sel.Champion))
	s.usedLanes = s.usedLanes.With(lane)
	return true
}
