// Package sample seeds the store with randomized demonstration rows.
package sample

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/padraicbc/racedb/db"
	"github.com/padraicbc/racedb/models"
)

var (
	StableNames = []string{"Red Bull Racing", "Ferrari", "Mercedes", "McLaren"}
	Countries   = []string{"Austria", "Italy", "Germany", "UK"}
	PilotNames  = []string{"Max Verstappen", "Charles Leclerc", "Lewis Hamilton", "Lando Norris"}
)

const (
	StageCount  = 5
	ResultCount = 10
)

// Counts reports how many rows one Generate call inserted.
type Counts struct {
	Stables int
	Pilots  int
	Stages  int
	Results int
}

// Generator inserts one fixed-shape batch of rows per call.
type Generator struct {
	store *db.Store
	rnd   *rand.Rand
	now   func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRand sets the random source, e.g. a seeded one for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithClock sets the time source stage dates are computed from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator writing through store.
func New(store *db.Store, opts ...Option) *Generator {
	g := &Generator{
		store: store,
		rnd:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate inserts 4 stables, 4 pilots, 5 stages and 10 results. Each row is
// its own insert; a failure leaves earlier rows in place. Pilots and results
// reference the ids created in this same call.
func (g *Generator) Generate(ctx context.Context) (Counts, error) {
	var counts Counts

	stableIDs := make([]int64, 0, len(StableNames))
	for i, name := range StableNames {
		stable := &models.Stable{Name: name, Country: Countries[i]}
		if err := g.store.CreateStable(ctx, stable); err != nil {
			return counts, err
		}
		stableIDs = append(stableIDs, stable.StableID)
		counts.Stables++
	}

	pilotIDs := make([]int64, 0, len(PilotNames))
	for i, name := range PilotNames {
		pilot := &models.Pilot{
			Name:            name,
			StableID:        stableIDs[i%len(stableIDs)],
			ExperienceYears: g.between(1, 10),
		}
		if err := g.store.CreatePilot(ctx, pilot); err != nil {
			return counts, err
		}
		pilotIDs = append(pilotIDs, pilot.PilotID)
		counts.Pilots++
	}

	today := g.now()
	stageIDs := make([]int64, 0, StageCount)
	for i := 0; i < StageCount; i++ {
		stage := &models.Stage{
			Date:          today.AddDate(0, 0, -30*i).Format(time.DateOnly),
			Location:      fmt.Sprintf("Location_%d", i),
			TrackLengthKm: 3.5 + g.rnd.Float64()*3.5,
			AudienceCount: g.between(5000, 100000),
		}
		if err := g.store.CreateStage(ctx, stage); err != nil {
			return counts, err
		}
		stageIDs = append(stageIDs, stage.StageID)
		counts.Stages++
	}

	for i := 0; i < ResultCount; i++ {
		result := &models.Result{
			PilotID:  pilotIDs[g.rnd.IntN(len(pilotIDs))],
			StageID:  stageIDs[g.rnd.IntN(len(stageIDs))],
			Position: g.between(1, 20),
			PitStops: g.between(1, 5),
			RaceTime: FormatRaceTime(time.Duration(g.between(3600, 7200)) * time.Second),
		}
		if err := g.store.CreateResult(ctx, result); err != nil {
			return counts, err
		}
		counts.Results++
	}

	return counts, nil
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

// FormatRaceTime renders d as H:MM:SS with unpadded hours.
func FormatRaceTime(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total/60%60, total%60)
}
