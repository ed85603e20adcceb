package models

import "github.com/uptrace/bun"

// Result is one pilot's outcome in one stage. RaceTime is free text
// (H:MM:SS as written by the generator) and sorts lexicographically.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ResultID int64  `bun:"result_id,pk,autoincrement" json:"result_id"`
	PilotID  int64  `bun:"pilot_id,notnull" json:"pilot_id"`
	StageID  int64  `bun:"stage_id,notnull" json:"stage_id"`
	Position int    `bun:"position,notnull" json:"position"`
	PitStops int    `bun:"pit_stops,notnull" json:"pit_stops"`
	RaceTime string `bun:"race_time,notnull" json:"race_time"`
}
