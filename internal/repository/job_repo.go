package repository

import (
	"database/sql"
	"fmt"
	"time"

	"bikerental/internal/entities"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetUpcomingReminders lists confirmed bookings starting inside
// (now, until] whose owners have not been reminded yet.
func (r *JobRepository) GetUpcomingReminders(now, until time.Time) ([]entities.BookingReminder, error) {
	query := `
		SELECT b.id, b.code, b.bike_name, u.name, u.email, u.phone, b.start_time, b.end_time
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.status = 'confirmed'
		  AND b.reminder_sent = FALSE
		  AND b.start_time > $1
		  AND b.start_time <= $2
		ORDER BY b.start_time`

	rows, err := r.DB.Query(query, now, until)
	if err != nil {
		return nil, fmt.Errorf("error querying upcoming bookings: %w", err)
	}
	defer rows.Close()

	var reminders []entities.BookingReminder
	for rows.Next() {
		var rem entities.BookingReminder
		err := rows.Scan(
			&rem.BookingID, &rem.Code, &rem.BikeName,
			&rem.UserName, &rem.UserEmail, &rem.UserPhone,
			&rem.StartTime, &rem.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reminder row: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reminder rows: %w", err)
	}
	return reminders, nil
}

func (r *JobRepository) MarkRemindersSent(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.DB.Exec(`UPDATE bookings SET reminder_sent = TRUE WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error marking reminders sent: %w", err)
	}
	return nil
}
