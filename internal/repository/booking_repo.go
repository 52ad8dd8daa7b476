package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bikerental/internal/db"
	"bikerental/internal/interval"

	"github.com/lib/pq"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, code, bike_id, bike_name, user_id, start_time, end_time,
	total_price, status, reminder_sent, created_at`

// FindConflict returns the window of a confirmed booking on the bike
// that overlaps [start, end), or nil when the window is free. The
// predicate is the half-open overlap rule: an existing booking ending
// exactly at start does not conflict.
func (r *BookingRepository) FindConflict(bikeID int, start, end time.Time) (*interval.Interval, error) {
	query := `
		SELECT start_time, end_time
		FROM bookings
		WHERE bike_id = $1
		  AND status = 'confirmed'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
		LIMIT 1`

	var conflict interval.Interval
	err := r.DB.QueryRow(query, bikeID, start, end).Scan(&conflict.Start, &conflict.End)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying booking conflicts: %w", err)
	}
	return &conflict, nil
}

// BookedBikeIDs reports which of the given bikes have a confirmed
// booking containing the instant at. One query for the whole set, so
// listing endpoints stay bounded regardless of catalog size.
func (r *BookingRepository) BookedBikeIDs(bikeIDs []int, at time.Time) (map[int]bool, error) {
	booked := make(map[int]bool)
	if len(bikeIDs) == 0 {
		return booked, nil
	}

	query := `
		SELECT DISTINCT bike_id
		FROM bookings
		WHERE bike_id = ANY($1)
		  AND status = 'confirmed'
		  AND start_time <= $2
		  AND end_time > $2`

	rows, err := r.DB.Query(query, pq.Array(bikeIDs), at)
	if err != nil {
		return nil, fmt.Errorf("error querying booked bikes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booked bike id: %w", err)
		}
		booked[id] = true
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booked bike rows: %w", err)
	}
	return booked, nil
}

func (r *BookingRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(code, bike_id, bike_name, user_id, start_time, end_time, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	return r.DB.QueryRow(query,
		b.Code, b.BikeID, b.BikeName, b.UserID,
		b.StartTime, b.EndTime, b.TotalPrice, b.Status, b.CreatedAt,
	).Scan(&b.ID, &b.CreatedAt)
}

// GetBookingByID returns (nil, nil) when the booking does not exist.
func (r *BookingRepository) GetBookingByID(id int) (*db.Booking, error) {
	var b db.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.Code, &b.BikeID, &b.BikeName, &b.UserID, &b.StartTime, &b.EndTime,
		&b.TotalPrice, &b.Status, &b.ReminderSent, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return &b, nil
}

func (r *BookingRepository) ListBookingsByUser(userID int) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryBookings(query, userID)
}

func (r *BookingRepository) ListBookings() ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.queryBookings(query)
}

func (r *BookingRepository) queryBookings(query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		err := rows.Scan(
			&b.ID, &b.Code, &b.BikeID, &b.BikeName, &b.UserID, &b.StartTime, &b.EndTime,
			&b.TotalPrice, &b.Status, &b.ReminderSent, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

// DeleteBooking removes the record entirely. Cancellation is a hard
// delete: the slot becomes free for re-reservation immediately.
func (r *BookingRepository) DeleteBooking(id int) error {
	result, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
