// Package roster holds the mutable per-session state: the players with their
// champion selections, and the set of skinsets excluded from results.
//
// A Roster has a single owner. Invalid player indices and unknown ids are
// caller bugs and panic; capacity limits are silent no-ops.
package roster

import (
	"fmt"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/domain"
)

type Roster struct {
	catalog  *catalog.Catalog
	players  []domain.Player
	excluded domain.Bitset
}

// New creates a roster with one empty player and the catalog's default exclusions.
func New(cat *catalog.Catalog) *Roster {
	r := &Roster{
		catalog:  cat,
		players:  make([]domain.Player, 1, domain.MaxPlayers),
		excluded: domain.NewBitset(cat.NumSkinsets()),
	}
	for _, id := range cat.DefaultExclusions() {
		r.excluded.Add(int(id))
	}
	return r
}

func (r *Roster) mustPlayer(index int) *domain.Player {
	if index < 0 || index >= len(r.players) {
		panic(fmt.Sprintf("roster: player index %d out of range [0,%d)", index, len(r.players)))
	}
	return &r.players[index]
}

func (r *Roster) Len() int {
	return len(r.players)
}

// HasPlayer reports whether index addresses an existing player.
func (r *Roster) HasPlayer(index int) bool {
	return index >= 0 && index < len(r.players)
}

// AddPlayer appends an empty player. Returns false once the team is full.
func (r *Roster) AddPlayer() bool {
	if len(r.players) >= domain.MaxPlayers {
		return false
	}
	r.players = append(r.players, domain.Player{})
	return true
}

// RemovePlayer removes a player, shifting later players down. The last
// remaining player is never removed.
func (r *Roster) RemovePlayer(index int) bool {
	r.mustPlayer(index)
	if len(r.players) == 1 {
		return false
	}
	r.players = append(r.players[:index], r.players[index+1:]...)
	return true
}

// SetName sets the display name; an empty name clears it.
func (r *Roster) SetName(index int, name string) {
	r.mustPlayer(index).Name = name
}

// UpsertChampion replaces the lanes of an already selected champion, or
// appends it. An empty lane set means the champion's canonical lanes. Lanes
// outside the canonical set are allowed.
func (r *Roster) UpsertChampion(index int, id domain.ChampionID, lanes domain.LaneSet) {
	p := r.mustPlayer(index)
	if lanes.IsEmpty() {
		lanes = r.catalog.LanesFor(id)
	} else {
		r.catalog.Champion(id)
	}
	if !lanes.IsValid() {
		panic(fmt.Sprintf("roster: lane set %#x outside the lane universe", uint8(lanes)))
	}

	if i := p.IndexOf(id); i >= 0 {
		p.Selections[i].Lanes = lanes
		return
	}
	p.Selections = append(p.Selections, domain.Selection{Champion: id, Lanes: lanes})
}

// ToggleLane flips one lane of a selected champion. A toggle that would leave
// the champion with no lanes is ignored and reported as false.
func (r *Roster) ToggleLane(index int, id domain.ChampionID, lane domain.Lane) bool {
	p := r.mustPlayer(index)
	i := p.IndexOf(id)
	if i < 0 {
		return false
	}
	next := p.Selections[i].Lanes.Toggle(lane)
	if next.IsEmpty() {
		return false
	}
	p.Selections[i].Lanes = next
	return true
}

// RemoveChampion drops a champion from a player, keeping the order of the rest.
func (r *Roster) RemoveChampion(index int, id domain.ChampionID) {
	p := r.mustPlayer(index)
	if i := p.IndexOf(id); i >= 0 {
		p.Selections = append(p.Selections[:i], p.Selections[i+1:]...)
	}
}

func (r *Roster) ToggleSkinset(id domain.SkinsetID) {
	sid := int(r.catalog.Skinset(id).ID)
	if r.excluded.Has(sid) {
		r.excluded.Remove(sid)
	} else {
		r.excluded.Add(sid)
	}
}

func (r *Roster) ExcludeAll() {
	r.excluded.Fill(r.catalog.NumSkinsets())
}

func (r *Roster) IncludeAll() {
	r.excluded.Clear()
}

func (r *Roster) IsExcluded(id domain.SkinsetID) bool {
	return r.excluded.Has(int(r.catalog.Skinset(id).ID))
}

// Player returns a copy of one player.
func (r *Roster) Player(index int) domain.Player {
	return r.mustPlayer(index).Clone()
}

// Players returns a deep copy of every player, in order.
func (r *Roster) Players() []domain.Player {
	out := make([]domain.Player, len(r.players))
	for i, p := range r.players {
		out[i] = p.Clone()
	}
	return out
}

// Excluded returns the excluded skinset ids in ascending order.
func (r *Roster) Excluded() []domain.SkinsetID {
	members := r.excluded.Members()
	out := make([]domain.SkinsetID, len(members))
	for i, m := range members {
		out[i] = domain.SkinsetID(m)
	}
	return out
}

// ExcludedSet returns a copy of the exclusion bitset.
func (r *Roster) ExcludedSet() domain.Bitset {
	return r.excluded.Clone()
}

// Clone returns an independent copy, e.g. for resolving off the owner's goroutine.
func (r *Roster) Clone() *Roster {
	return &Roster{
		catalog:  r.catalog,
		players:  r.Players(),
		excluded: r.excluded.Clone(),
	}
}

func (r *Roster) Catalog() *catalog.Catalog {
	return r.catalog
}
