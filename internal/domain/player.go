package domain

import "fmt"

// MaxPlayers is the size of a full team.
const MaxPlayers = 5

// Selection is a champion a player is willing to play and the lanes they would play it in.
type Selection struct {
	Champion ChampionID `json:"champion"`
	Lanes    LaneSet    `json:"lanes"`
}

// Player is one participant's record. Selections keep the order they were added in.
type Player struct {
	Name       string      `json:"name,omitempty"`
	Selections []Selection `json:"selections"`
}

// DisplayName falls back to the player's position when no name was given
func (p Player) DisplayName(index int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("Player %d", index+1)
}

// IndexOf returns the position of a champion in the selections, or -1.
func (p Player) IndexOf(id ChampionID) int {
	for i, sel := range p.Selections {
		if sel.Champion == id {
			return i
		}
	}
	return -1
}

func (p Player) Clone() Player {
	out := Player{Name: p.Name, Selections: make([]Selection, len(p.Selections))}
	copy(out.Selections, p.Selections)
	return out
}
