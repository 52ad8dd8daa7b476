package entities

import "time"

type BikeRequest struct {
	Name         string   `json:"name" validate:"required"`
	Type         string   `json:"type" validate:"required,oneof=electric mountain road hybrid"`
	ImageURL     string   `json:"image_url"`
	Description  string   `json:"description"`
	PricePerHour float64  `json:"price_per_hour" validate:"gte=0"`
	Location     string   `json:"location" validate:"required"`
	Rating       float64  `json:"rating" validate:"gte=0,lte=5"`
	Features     []string `json:"features"`
}

// BikeResponse carries catalog fields plus availability computed at
// request time.
type BikeResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	ImageURL     string    `json:"image_url"`
	Description  string    `json:"description"`
	PricePerHour float64   `json:"price_per_hour"`
	IsAvailable  bool      `json:"is_available"`
	Location     string    `json:"location"`
	Rating       float64   `json:"rating"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
