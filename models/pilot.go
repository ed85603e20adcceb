package models

import "github.com/uptrace/bun"

// Pilot is a driver. StableID is a plain reference and may not resolve.
type Pilot struct {
	bun.BaseModel `bun:"table:pilots,alias:p"`

	PilotID         int64   `bun:"pilot_id,pk,autoincrement" json:"pilot_id"`
	Name            string  `bun:"name,notnull" json:"name"`
	StableID        int64   `bun:"stable_id" json:"stable_id"`
	ExperienceYears int     `bun:"experience_years,notnull" json:"experience_years"`
	AdditionalInfo  *string `bun:"additional_info" json:"additional_info"`
}
