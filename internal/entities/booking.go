package entities

import "time"

type CreateBookingRequest struct {
	BikeID     int       `json:"bike_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required"`
	TotalPrice float64   `json:"total_price" validate:"gte=0"`
}

type BookingResponse struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	BikeID     int       `json:"bike_id"`
	BikeName   string    `json:"bike_name"`
	UserID     int       `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
