// Package catalog holds the static champion and skinset reference tables and
// the read-only lookups the roster and resolver run against.
package catalog

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/dom/league-skinset-finder/internal/domain"
	"golang.org/x/crypto/blake2b"
)

// Catalog is immutable once built and safe to share between goroutines.
type Catalog struct {
	champions     []domain.Champion
	skinsets      []domain.Skinset
	championSkins []domain.Bitset

	championByName map[string]domain.ChampionID
	championByKey  map[string]domain.ChampionID
	skinsetByName  map[string]domain.SkinsetID
	skinsetByKey   map[string]domain.SkinsetID

	defaultExcluded []domain.SkinsetID
	dataDate        string
	fingerprint     string
}

// New validates a snapshot and derives the id tables from it. Champions with no
// lane data get every lane as their canonical lanes.
func New(snap *Snapshot) (*Catalog, error) {
	if len(snap.Champions) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	norm := &Snapshot{
		DataDate:  snap.DataDate,
		Champions: make([]ChampionEntry, len(snap.Champions)),
		Skinsets:  append([]string(nil), snap.Skinsets...),
	}
	for i, c := range snap.Champions {
		norm.Champions[i] = ChampionEntry{
			Name:     c.Name,
			Lanes:    append([]string(nil), c.Lanes...),
			Skinsets: append([]string(nil), c.Skinsets...),
		}
	}
	norm.Normalize()

	c := &Catalog{
		champions:      make([]domain.Champion, len(norm.Champions)),
		skinsets:       make([]domain.Skinset, len(norm.Skinsets)),
		championSkins:  make([]domain.Bitset, len(norm.Champions)),
		championByName: make(map[string]domain.ChampionID, len(norm.Champions)),
		championByKey:  make(map[string]domain.ChampionID, len(norm.Champions)),
		skinsetByName:  make(map[string]domain.SkinsetID, len(norm.Skinsets)),
		skinsetByKey:   make(map[string]domain.SkinsetID, len(norm.Skinsets)),
		dataDate:       norm.DataDate,
	}

	for i, name := range norm.Skinsets {
		if name == "" {
			return nil, fmt.Errorf("%w: empty skinset name", domain.ErrUnknownSkinset)
		}
		if _, dup := c.skinsetByName[name]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateSkinset, name)
		}
		id := domain.SkinsetID(i)
		c.skinsets[i] = domain.Skinset{ID: id, Name: name}
		c.skinsetByName[name] = id
		if _, taken := c.skinsetByKey[normalizeKey(name)]; !taken {
			c.skinsetByKey[normalizeKey(name)] = id
		}
	}

	for i, entry := range norm.Champions {
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: empty champion name", domain.ErrUnknownChampion)
		}
		if _, dup := c.championByName[entry.Name]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateChampion, entry.Name)
		}

		lanes, err := domain.ParseLaneSet(entry.Lanes)
		if err != nil {
			return nil, fmt.Errorf("champion %q: %w", entry.Name, err)
		}
		if lanes.IsEmpty() {
			lanes = domain.AllLaneSet
		}

		skins := domain.NewBitset(len(c.skinsets))
		for _, skinset := range entry.Skinsets {
			sid, ok := c.skinsetByName[skinset]
			if !ok {
				return nil, fmt.Errorf("champion %q: %w: %q", entry.Name, domain.ErrUnknownSkinset, skinset)
			}
			skins.Add(int(sid))
		}

		id := domain.ChampionID(i)
		c.champions[i] = domain.Champion{ID: id, Name: entry.Name, Lanes: lanes}
		c.championSkins[i] = skins
		c.championByName[entry.Name] = id
		if _, taken := c.championByKey[normalizeKey(entry.Name)]; !taken {
			c.championByKey[normalizeKey(entry.Name)] = id
		}
	}

	for _, name := range domain.DefaultExcludedSkinsets {
		if id, ok := c.skinsetByName[name]; ok {
			c.defaultExcluded = append(c.defaultExcluded, id)
		}
	}
	sort.Slice(c.defaultExcluded, func(i, j int) bool { return c.defaultExcluded[i] < c.defaultExcluded[j] })

	var buf bytes.Buffer
	if err := c.Snapshot().Encode(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sum := blake2b.Sum256(buf.Bytes())
	c.fingerprint = hex.EncodeToString(sum[:])

	return c, nil
}

// normalizeKey folds case and drops punctuation so "kaisa" finds "Kai'Sa".
func normalizeKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c *Catalog) mustChampion(id domain.ChampionID) int {
	if id < 0 || int(id) >= len(c.champions) {
		panic(fmt.Sprintf("catalog: champion id %d out of range [0,%d)", id, len(c.champions)))
	}
	return int(id)
}

func (c *Catalog) mustSkinset(id domain.SkinsetID) int {
	if id < 0 || int(id) >= len(c.skinsets) {
		panic(fmt.Sprintf("catalog: skinset id %d out of range [0,%d)", id, len(c.skinsets)))
	}
	return int(id)
}

// LanesFor returns the canonical lanes of a champion. Panics on an unknown id.
func (c *Catalog) LanesFor(id domain.ChampionID) domain.LaneSet {
	return c.champions[c.mustChampion(id)].Lanes
}

// SkinsetsFor returns the champion's skinsets, sorted by name. The slice may be empty.
func (c *Catalog) SkinsetsFor(id domain.ChampionID) []domain.SkinsetID {
	members := c.championSkins[c.mustChampion(id)].Members()
	out := make([]domain.SkinsetID, len(members))
	for i, m := range members {
		out[i] = domain.SkinsetID(m)
	}
	return out
}

// SkinsetSet returns the champion's skinsets as a bitset sized to NumSkinsets.
// The returned set is shared and must not be modified.
func (c *Catalog) SkinsetSet(id domain.ChampionID) domain.Bitset {
	return c.championSkins[c.mustChampion(id)]
}

func (c *Catalog) AllChampions() []domain.ChampionID {
	out := make([]domain.ChampionID, len(c.champions))
	for i := range c.champions {
		out[i] = domain.ChampionID(i)
	}
	return out
}

func (c *Catalog) AllSkinsets() []domain.SkinsetID {
	out := make([]domain.SkinsetID, len(c.skinsets))
	for i := range c.skinsets {
		out[i] = domain.SkinsetID(i)
	}
	return out
}

func (c *Catalog) Champion(id domain.ChampionID) domain.Champion {
	return c.champions[c.mustChampion(id)]
}

func (c *Catalog) Skinset(id domain.SkinsetID) domain.Skinset {
	return c.skinsets[c.mustSkinset(id)]
}

// ChampionByName looks a champion up by exact name, then by a case and
// punctuation insensitive match.
func (c *Catalog) ChampionByName(name string) (domain.ChampionID, bool) {
	if id, ok := c.championByName[name]; ok {
		return id, true
	}
	id, ok := c.championByKey[normalizeKey(name)]
	return id, ok
}

func (c *Catalog) SkinsetByName(name string) (domain.SkinsetID, bool) {
	if id, ok := c.skinsetByName[name]; ok {
		return id, true
	}
	id, ok := c.skinsetByKey[normalizeKey(name)]
	return id, ok
}

func (c *Catalog) NumChampions() int { return len(c.champions) }
func (c *Catalog) NumSkinsets() int  { return len(c.skinsets) }

// DefaultExclusions returns the skinsets a new roster starts with excluded.
func (c *Catalog) DefaultExclusions() []domain.SkinsetID {
	return append([]domain.SkinsetID(nil), c.defaultExcluded...)
}

// Fingerprint identifies the data snapshot; ids are only comparable between
// catalogs with the same fingerprint.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

func (c *Catalog) DataDate() string { return c.dataDate }

// Snapshot rebuilds the normalized snapshot this catalog was built from.
func (c *Catalog) Snapshot() *Snapshot {
	snap := &Snapshot{
		DataDate:  c.dataDate,
		Champions: make([]ChampionEntry, len(c.champions)),
		Skinsets:  make([]string, len(c.skinsets)),
	}
	for i, s := range c.skinsets {
		snap.Skinsets[i] = s.Name
	}
	for i, champ := range c.champions {
		lanes := champ.Lanes.Lanes()
		entry := ChampionEntry{
			Name:     champ.Name,
			Lanes:    make([]string, len(lanes)),
			Skinsets: []string{},
		}
		for j, l := range lanes {
			entry.Lanes[j] = l.String()
		}
		for _, sid := range c.SkinsetsFor(champ.ID) {
			entry.Skinsets = append(entry.Skinsets, c.skinsets[sid].Name)
		}
		snap.Champions[i] = entry
	}
	return snap
}
