// Package ingest turns the scraped wiki tables into a catalog snapshot.
package ingest

import (
	"fmt"
	"io"
	"sort"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
)

// Sources are the inputs of one ingest run. Overrides is optional.
type Sources struct {
	Lanes     io.Reader
	Skinsets  io.Reader
	Overrides *Overrides
	DataDate  string
}

// Build parses both tables, applies the lane overrides and returns a validated,
// normalized snapshot.
//
// Every champion named by either table is kept. One that only appears in the
// skinset table is written with no lanes, which the catalog reads as all lanes.
func Build(src Sources) (*catalog.Snapshot, error) {
	lanes, err := ParseLanes(src.Lanes)
	if err != nil {
		return nil, err
	}
	skins, err := ParseSkinsets(src.Skinsets)
	if err != nil {
		return nil, err
	}

	if src.Overrides != nil {
		if err := applyOverrides(lanes, skins, src.Overrides); err != nil {
			return nil, err
		}
	}

	names := make(map[string]bool, len(lanes))
	for name := range lanes {
		names[name] = true
	}
	for name := range skins.Champions {
		names[name] = true
	}

	snap := &catalog.Snapshot{
		DataDate: src.DataDate,
		Skinsets: skins.Skinsets,
	}
	for _, name := range sortedKeys(names) {
		entry := catalog.ChampionEntry{
			Name:     name,
			Lanes:    []string{},
			Skinsets: skins.Champions[name],
		}
		if entry.Skinsets == nil {
			entry.Skinsets = []string{}
		}
		for _, lane := range lanes[name].Lanes() {
			entry.Lanes = append(entry.Lanes, lane.String())
		}
		snap.Champions = append(snap.Champions, entry)
	}
	snap.Normalize()

	if _, err := catalog.New(snap); err != nil {
		return nil, fmt.Errorf("ingested data is not a valid catalog: %w", err)
	}
	return snap, nil
}

// applyOverrides unions the override lanes into the parsed lanes. Overrides
// never remove a lane.
func applyOverrides(lanes map[string]domain.LaneSet, skins *SkinsetTable, o *Overrides) error {
	champs := make([]string, 0, len(o.Lanes))
	for champ := range o.Lanes {
		champs = append(champs, champ)
	}
	sort.Strings(champs)

	for _, champ := range champs {
		_, inLanes := lanes[champ]
		_, inSkins := skins.Champions[champ]
		if !inLanes && !inSkins {
			return fmt.Errorf("override: %w: %q", domain.ErrUnknownChampion, champ)
		}
		extra, err := domain.ParseLaneSet(o.Lanes[champ])
		if err != nil {
			return fmt.Errorf("override for %q: %w", champ, err)
		}
		lanes[champ] = lanes[champ].Union(extra)
	}
	return nil
}
