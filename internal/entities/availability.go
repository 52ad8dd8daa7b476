package entities

import "time"

type CheckAvailabilityRequest struct {
	BikeID    int       `json:"bike_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type ConflictingWindow struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AvailabilityResponse struct {
	Available         bool               `json:"available"`
	ConflictingWindow *ConflictingWindow `json:"conflicting_window,omitempty"`
}
