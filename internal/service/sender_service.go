package service

import (
	"fmt"
	"log"
	"time"

	"bikerental/internal/db"
	"bikerental/internal/entities"
)

// SenderService turns booking lifecycle events into confirmation
// emails and SMS. Sends run in goroutines so the booking path never
// waits on SendGrid or Twilio.
type SenderService struct {
	users UserStore
}

func NewSenderService(users UserStore) *SenderService {
	return &SenderService{users: users}
}

func (s *SenderService) BookingCreated(b db.Booking) {
	s.notify(b, "confirmed")
}

func (s *SenderService) BookingCancelled(b db.Booking) {
	s.notify(b, "cancelled")
}

func (s *SenderService) notify(b db.Booking, status string) {
	user, err := s.users.GetByID(b.UserID)
	if err != nil || user == nil {
		log.Printf("ALERT: booking %s %s but owner %d could not be loaded: %v", b.Code, status, b.UserID, err)
		return
	}

	data := entities.BookingEmailData{
		UserName:           user.Name,
		BookingCode:        b.Code,
		BikeName:           b.BikeName,
		StartTimeFormatted: b.StartTime.Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   b.EndTime.Format("02 Jan 2006 15:04 MST"),
		Status:             status,
		CurrentYear:        time.Now().UTC().Year(),
	}

	subject := fmt.Sprintf("Your CityRide booking is %s - Code: %s", status, data.BookingCode)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour bike booking is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Bike: %s\n"+
			"Pick-up: %s\n"+
			"Drop-off: %s\n\n"+
			"Thank you for choosing CityRide.\n\n"+
			"CityRide %d. All rights reserved.",
		data.UserName, status, data.BookingCode, data.BikeName,
		data.StartTimeFormatted, data.EndTimeFormatted, data.CurrentYear,
	)

	go func(toEmail, toName, subject, body string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body, ""); err != nil {
			log.Printf("ALERT (async): email for booking %s failed: %v", data.BookingCode, err)
		}
	}(user.Email, user.Name, subject, body)

	if user.Phone != "" {
		sms := fmt.Sprintf("CityRide: booking %s is %s!\nPick-up: %s.\nMore details in your email.",
			data.BookingCode, status, b.StartTime.Format("02/01 15:04"))
		go func(phone, sms string) {
			if err := SendSMS(phone, sms); err != nil {
				log.Printf("ALERT (async): SMS for booking %s to %s failed: %v", data.BookingCode, phone, err)
			}
		}(user.Phone, sms)
	}
}
