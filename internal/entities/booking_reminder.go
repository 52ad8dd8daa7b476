package entities

import "time"

// BookingReminder is the join row the reminder job works on: booking
// window plus the contact details of its owner.
type BookingReminder struct {
	BookingID int
	Code      string
	BikeName  string
	UserName  string
	UserEmail string
	UserPhone string
	StartTime time.Time
	EndTime   time.Time
}
