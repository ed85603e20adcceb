package handlers

import "github.com/padraicbc/racedb/models"

// Create payloads use pointers so a missing field is told apart from a zero
// value. Responses are the models themselves: the payload plus the id.

type createStableRequest struct {
	Name    *string `json:"name" validate:"required"`
	Country *string `json:"country" validate:"required"`
}

func (r *createStableRequest) model() *models.Stable {
	return &models.Stable{Name: *r.Name, Country: *r.Country}
}

type createPilotRequest struct {
	Name            *string `json:"name" validate:"required"`
	StableID        *int64  `json:"stable_id" validate:"required"`
	ExperienceYears *int    `json:"experience_years" validate:"required"`
	AdditionalInfo  *string `json:"additional_info"`
}

func (r *createPilotRequest) model() *models.Pilot {
	return &models.Pilot{
		Name:            *r.Name,
		StableID:        *r.StableID,
		ExperienceYears: *r.ExperienceYears,
		AdditionalInfo:  r.AdditionalInfo,
	}
}

type createStageRequest struct {
	Date          *string  `json:"date" validate:"required,datetime=2006-01-02"`
	Location      *string  `json:"location" validate:"required"`
	TrackLengthKm *float64 `json:"track_length_km" validate:"required"`
	AudienceCount *int     `json:"audience_count" validate:"required"`
}

func (r *createStageRequest) model() *models.Stage {
	return &models.Stage{
		Date:          *r.Date,
		Location:      *r.Location,
		TrackLengthKm: *r.TrackLengthKm,
		AudienceCount: *r.AudienceCount,
	}
}

type createResultRequest struct {
	PilotID  *int64  `json:"pilot_id" validate:"required"`
	StageID  *int64  `json:"stage_id" validate:"required"`
	Position *int    `json:"position" validate:"required"`
	PitStops *int    `json:"pit_stops" validate:"required"`
	RaceTime *string `json:"race_time" validate:"required"`
}

func (r *createResultRequest) model() *models.Result {
	return &models.Result{
		PilotID:  *r.PilotID,
		StageID:  *r.StageID,
		Position: *r.Position,
		PitStops: *r.PitStops,
		RaceTime: *r.RaceTime,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}
