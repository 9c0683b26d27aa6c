package domain

// Pick is one player's champion and lane inside an assignment.
type Pick struct {
	Champion ChampionID `json:"champion"`
	Lane     Lane       `json:"lane"`
}

// Assignment has one pick per player, in player order. No champion and no lane repeats.
type Assignment []Pick

// ResultRow pairs an assignment with the skinsets every picked champion shares.
type ResultRow struct {
	Assignment Assignment  `json:"assignment"`
	Skinsets   []SkinsetID `json:"skinsets"`
}
