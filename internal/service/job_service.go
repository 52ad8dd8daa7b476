package service

import (
	"fmt"
	"log"
	"time"

	"bikerental/internal/clock"
	"bikerental/internal/repository"
)

const reminderWindow = time.Hour

// JobService runs the periodic reminder pass. It only reads bookings
// and user contact details; it never touches admission or availability.
type JobService struct {
	Repo  *repository.JobRepository
	clock clock.Clock
}

func NewJobService(repo *repository.JobRepository, clk clock.Clock) *JobService {
	return &JobService{Repo: repo, clock: clk}
}

// SendUpcomingReminders emails and texts users whose booking starts
// within the next hour and marks them reminded.
func (s *JobService) SendUpcomingReminders() error {
	now := s.clock.Now()
	reminders, err := s.Repo.GetUpcomingReminders(now, now.Add(reminderWindow))
	if err != nil {
		return fmt.Errorf("reminder job: failed to list upcoming bookings: %w", err)
	}
	if len(reminders) == 0 {
		return nil
	}

	log.Printf("Reminder job: found %d bookings starting within the hour", len(reminders))

	sent := make([]int, 0, len(reminders))
	for _, rem := range reminders {
		subject := fmt.Sprintf("Your CityRide booking starts soon - Code: %s", rem.Code)
		body := fmt.Sprintf(
			"Hello %s,\n\nYour booking for %s starts at %s.\n\n"+
				"Booking Code: %s\n\nSee you soon,\nCityRide",
			rem.UserName, rem.BikeName, rem.StartTime.Format("02 Jan 2006 15:04 MST"), rem.Code,
		)
		if err := SendEmailWithSendGrid(rem.UserEmail, rem.UserName, subject, body, ""); err != nil {
			log.Printf("Reminder job: email for booking %s failed: %v", rem.Code, err)
			continue
		}
		if rem.UserPhone != "" {
			sms := fmt.Sprintf("CityRide: your booking %s starts at %s.", rem.Code, rem.StartTime.Format("15:04"))
			if err := SendSMS(rem.UserPhone, sms); err != nil {
				log.Printf("Reminder job: SMS for booking %s failed: %v", rem.Code, err)
			}
		}
		sent = append(sent, rem.BookingID)
	}

	if err := s.Repo.MarkRemindersSent(sent); err != nil {
		return fmt.Errorf("reminder job: failed to mark reminders sent: %w", err)
	}
	log.Printf("Reminder job: sent %d reminders", len(sent))
	return nil
}
