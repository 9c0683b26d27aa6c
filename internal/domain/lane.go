package domain

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// Lane represents one of the five League of Legends positions
type Lane uint8

const (
	LaneTop Lane = iota
	LaneJungle
	LaneMid
	LaneBot
	LaneSupport

	laneCount = 5
)

// AllLanes contains all valid lanes in canonical order
var AllLanes = []Lane{LaneTop, LaneJungle, LaneMid, LaneBot, LaneSupport}

var laneNames = [laneCount]string{"Top", "Jungle", "Mid", "Bot", "Support"}

// laneAliases maps lowercased spellings seen in scraped tables and API input
var laneAliases = map[string]Lane{
	"top":     LaneTop,
	"jungle":  LaneJungle,
	"jg":      LaneJungle,
	"mid":     LaneMid,
	"middle":  LaneMid,
	"bot":     LaneBot,
	"bottom":  LaneBot,
	"adc":     LaneBot,
	"support": LaneSupport,
	"sup":     LaneSupport,
	"supp":    LaneSupport,
}

// IsValid checks if a lane is one of the five positions
func (l Lane) IsValid() bool {
	return l < laneCount
}

// String returns the display name of the lane
func (l Lane) String() string {
	if !l.IsValid() {
		return fmt.Sprintf("Lane(%d)", uint8(l))
	}
	return laneNames[l]
}

// ParseLane resolves a lane from its name, ignoring case
func ParseLane(s string) (Lane, error) {
	if lane, ok := laneAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lane, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLane, s)
}

func (l Lane) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLane, uint8(l))
	}
	return []byte(laneNames[l]), nil
}

func (l *Lane) UnmarshalText(text []byte) error {
	lane, err := ParseLane(string(text))
	if err != nil {
		return err
	}
	*l = lane
	return nil
}

// LaneSet is a bitset over the five lanes, bit i set for Lane(i).
type LaneSet uint8

// AllLaneSet contains every lane.
const AllLaneSet LaneSet = 1<<laneCount - 1

// NewLaneSet builds a set from the given lanes.
func NewLaneSet(lanes ...Lane) LaneSet {
	var s LaneSet
	for _, l := range lanes {
		s = s.With(l)
	}
	return s
}

// ParseLaneSet builds a set from lane names.
func ParseLaneSet(names []string) (LaneSet, error) {
	var s LaneSet
	for _, name := range names {
		lane, err := ParseLane(name)
		if err != nil {
			return 0, err
		}
		s = s.With(lane)
	}
	return s, nil
}

func (s LaneSet) Has(l Lane) bool {
	return s&(1<<l) != 0
}

func (s LaneSet) With(l Lane) LaneSet {
	if !l.IsValid() {
		panic(fmt.Sprintf("domain: lane %d outside the lane universe", uint8(l)))
	}
	return s | 1<<l
}

func (s LaneSet) Without(l Lane) LaneSet {
	return s &^ (1 << l)
}

func (s LaneSet) Toggle(l Lane) LaneSet {
	if s.Has(l) {
		return s.Without(l)
	}
	return s.With(l)
}

func (s LaneSet) Union(o LaneSet) LaneSet {
	return s | o
}

func (s LaneSet) IsEmpty() bool {
	return s == 0
}

// IsValid reports whether the set only holds lanes from the universe.
func (s LaneSet) IsValid() bool {
	return s&^AllLaneSet == 0
}

func (s LaneSet) Len() int {
	return bits.OnesCount8(uint8(s & AllLaneSet))
}

// Lanes returns the members in canonical order (Top, Jungle, Mid, Bot, Support).
func (s LaneSet) Lanes() []Lane {
	lanes := make([]Lane, 0, s.Len())
	for _, l := range AllLanes {
		if s.Has(l) {
			lanes = append(lanes, l)
		}
	}
	return lanes
}

func (s LaneSet) String() string {
	names := make([]string, 0, laneCount)
	for _, l := range s.Lanes() {
		names = append(names, l.String())
	}
	return strings.Join(names, "|")
}

// MarshalJSON encodes the set as an array of lane names.
func (s LaneSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Lanes())
}

func (s *LaneSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	set, err := ParseLaneSet(names)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
