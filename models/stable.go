package models

import "github.com/uptrace/bun"

// Stable is a racing team that pilots belong to.
type Stable struct {
	bun.BaseModel `bun:"table:stables,alias:st"`

	StableID int64  `bun:"stable_id,pk,autoincrement" json:"stable_id"`
	Name     string `bun:"name,notnull" json:"name"`
	Country  string `bun:"country,notnull" json:"country"`
}
