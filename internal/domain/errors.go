package domain

import "errors"

// Catalog errors
var (
	ErrUnknownChampion   = errors.New("unknown champion")
	ErrUnknownSkinset    = errors.New("unknown skinset")
	ErrInvalidLane       = errors.New("invalid lane")
	ErrDuplicateChampion = errors.New("duplicate champion")
	ErrDuplicateSkinset  = errors.New("duplicate skinset")
	ErrEmptyCatalog      = errors.New("catalog has no champions")
)

// Roster errors
var (
	ErrNoPlayers        = errors.New("at least one player is required")
	ErrTooManyPlayers   = errors.New("too many players")
	ErrInvalidPlayer    = errors.New("player index out of range")
	ErrEmptyLaneSet     = errors.New("lane set must not be empty")
	ErrChampionNotOwned = errors.New("champion is not selected by this player")
)

// Share errors
var (
	ErrInvalidShareToken = errors.New("invalid share token")
	ErrStaleShareToken   = errors.New("share token was created for a different catalog")
)
