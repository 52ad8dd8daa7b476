package db

import "time"

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         string
	CreatedAt    time.Time
}

type Bike struct {
	ID           int
	Name         string
	Type         string
	ImageURL     string
	Description  string
	PricePerHour float64
	// IsAvailable is the catalog's nominal flag. Live availability is
	// computed against confirmed bookings, never stored here.
	IsAvailable bool
	Location    string
	Rating      float64
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Booking struct {
	ID           int
	Code         string
	BikeID       int
	BikeName     string
	UserID       int
	StartTime    time.Time
	EndTime      time.Time
	TotalPrice   float64
	Status       string
	ReminderSent bool
	CreatedAt    time.Time
}
