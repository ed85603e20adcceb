package models

// PilotWithStable is one row of the pilot/stable inner join.
type PilotWithStable struct {
	Pilot  Pilot  `json:"pilot"`
	Stable Stable `json:"stable"`
}

// LocationCount is the number of stages held at one location.
type LocationCount struct {
	Location   string `bun:"location" json:"location"`
	StageCount int    `bun:"stage_count" json:"stage_count"`
}
