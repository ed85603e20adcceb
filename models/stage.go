package models

import "github.com/uptrace/bun"

// Stage is a single race event. Date is kept as YYYY-MM-DD text so it reads
// back unchanged on every backend and still sorts chronologically.
type Stage struct {
	bun.BaseModel `bun:"table:stages,alias:sg"`

	StageID       int64   `bun:"stage_id,pk,autoincrement" json:"stage_id"`
	Date          string  `bun:"date,notnull" json:"date"`
	Location      string  `bun:"location,notnull" json:"location"`
	TrackLengthKm float64 `bun:"track_length_km,notnull" json:"track_length_km"`
	AudienceCount int     `bun:"audience_count" json:"audience_count"`
}
