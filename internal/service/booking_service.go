package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"bikerental/internal/clock"
	"bikerental/internal/db"
	"bikerental/internal/entities"
	"bikerental/internal/interval"

	"github.com/google/uuid"
)

const StatusConfirmed = "confirmed"

// BikeStore is the catalog boundary the engine reads bikes through.
type BikeStore interface {
	GetBikes() ([]db.Bike, error)
	GetBikeByID(id int) (*db.Bike, error)
	CreateBike(b *db.Bike) error
	UpdateBike(b *db.Bike) error
	DeleteBike(id int) error
}

// BookingStore is the persistence boundary for reservation records.
type BookingStore interface {
	FindConflict(bikeID int, start, end time.Time) (*interval.Interval, error)
	BookedBikeIDs(bikeIDs []int, at time.Time) (map[int]bool, error)
	CreateBooking(b *db.Booking) error
	GetBookingByID(id int) (*db.Booking, error)
	ListBookingsByUser(userID int) ([]db.Booking, error)
	ListBookings() ([]db.Booking, error)
	DeleteBooking(id int) error
}

// Notifier receives booking lifecycle events. May be nil.
type Notifier interface {
	BookingCreated(b db.Booking)
	BookingCancelled(b db.Booking)
}

// bikeLocks hands out one mutex per bike id. Holding the bike's mutex
// across the conflict check and the insert makes admission atomic per
// bike, so two concurrent requests for overlapping windows cannot both
// pass the check.
type bikeLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func (l *bikeLocks) forBike(bikeID int) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[int]*sync.Mutex)
	}
	m, ok := l.locks[bikeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[bikeID] = m
	}
	return m
}

type BookingService struct {
	bikes    BikeStore
	bookings BookingStore
	notifier Notifier
	clock    clock.Clock
	locks    bikeLocks
}

func NewBookingService(bikes BikeStore, bookings BookingStore, notifier Notifier, clk clock.Clock) *BookingService {
	return &BookingService{
		bikes:    bikes,
		bookings: bookings,
		notifier: notifier,
		clock:    clk,
	}
}

// ListBikesWithAvailability returns the whole catalog with availability
// evaluated at the current instant. Bookings for every bike are fetched
// in a single query.
func (s *BookingService) ListBikesWithAvailability() ([]entities.BikeResponse, error) {
	bikes, err := s.bikes.GetBikes()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(bikes))
	for _, b := range bikes {
		ids = append(ids, b.ID)
	}
	booked, err := s.bookings.BookedBikeIDs(ids, s.clock.Now())
	if err != nil {
		return nil, err
	}

	responses := make([]entities.BikeResponse, 0, len(bikes))
	for _, b := range bikes {
		responses = append(responses, toBikeResponse(b, !booked[b.ID]))
	}
	return responses, nil
}

// AvailabilityAt reports, per bike, whether the bike is free at the
// instant. An empty id list means the whole catalog. Unknown ids are
// reported via ErrBikeNotFound rather than conflated with "booked".
func (s *BookingService) AvailabilityAt(bikeIDs []int, at time.Time) (map[int]bool, error) {
	if len(bikeIDs) == 0 {
		bikes, err := s.bikes.GetBikes()
		if err != nil {
			return nil, err
		}
		for _, b := range bikes {
			bikeIDs = append(bikeIDs, b.ID)
		}
	} else {
		for _, id := range bikeIDs {
			bike, err := s.bikes.GetBikeByID(id)
			if err != nil {
				return nil, err
			}
			if bike == nil {
				return nil, fmt.Errorf("bike %d: %w", id, ErrBikeNotFound)
			}
		}
	}

	booked, err := s.bookings.BookedBikeIDs(bikeIDs, at)
	if err != nil {
		return nil, err
	}
	result := make(map[int]bool, len(bikeIDs))
	for _, id := range bikeIDs {
		result[id] = !booked[id]
	}
	return result, nil
}

// GetBikeWithAvailability returns one bike with availability at the
// current instant, or ErrBikeNotFound.
func (s *BookingService) GetBikeWithAvailability(bikeID int) (*entities.BikeResponse, error) {
	bike, err := s.bikes.GetBikeByID(bikeID)
	if err != nil {
		return nil, err
	}
	if bike == nil {
		return nil, ErrBikeNotFound
	}
	booked, err := s.bookings.BookedBikeIDs([]int{bikeID}, s.clock.Now())
	if err != nil {
		return nil, err
	}
	resp := toBikeResponse(*bike, !booked[bikeID])
	return &resp, nil
}

// CheckWindowAvailability reports whether [start, end) is free on the
// bike, carrying the conflicting window when it is not. Read-only.
func (s *BookingService) CheckWindowAvailability(bikeID int, start, end time.Time) (*entities.AvailabilityResponse, error) {
	bike, err := s.bikes.GetBikeByID(bikeID)
	if err != nil {
		return nil, err
	}
	if bike == nil {
		return nil, ErrBikeNotFound
	}
	if !interval.New(start, end).Valid() {
		return nil, ErrInvalidWindow
	}

	conflict, err := s.bookings.FindConflict(bikeID, start, end)
	if err != nil {
		return nil, err
	}
	resp := &entities.AvailabilityResponse{Available: conflict == nil}
	if conflict != nil {
		resp.ConflictingWindow = &entities.ConflictingWindow{
			StartTime: conflict.Start,
			EndTime:   conflict.End,
		}
	}
	return resp, nil
}

// CreateBooking admits a reservation for [start, end) on the bike. The
// conflict check and the insert run under the bike's mutex, so the
// no-overlap invariant holds under concurrent requests.
func (s *BookingService) CreateBooking(userID int, req entities.CreateBookingRequest) (*db.Booking, error) {
	bike, err := s.bikes.GetBikeByID(req.BikeID)
	if err != nil {
		return nil, err
	}
	if bike == nil {
		return nil, ErrBikeNotFound
	}
	window := interval.New(req.StartTime, req.EndTime)
	if !window.Valid() {
		return nil, ErrInvalidWindow
	}

	mu := s.locks.forBike(req.BikeID)
	mu.Lock()
	defer mu.Unlock()

	conflict, err := s.bookings.FindConflict(req.BikeID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, &ConflictError{Window: *conflict}
	}

	booking := &db.Booking{
		Code:       uuid.NewString(),
		BikeID:     bike.ID,
		BikeName:   bike.Name,
		UserID:     userID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalPrice: req.TotalPrice,
		Status:     StatusConfirmed,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.bookings.CreateBooking(booking); err != nil {
		log.Printf("Error creating booking for bike %d: %v", req.BikeID, err)
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BookingCreated(*booking)
	}
	return booking, nil
}

// GetBooking returns a booking visible to the actor: the owner or an
// admin.
func (s *BookingService) GetBooking(bookingID, actorID int, isAdmin bool) (*db.Booking, error) {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != actorID && !isAdmin {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) ListUserBookings(userID int) ([]db.Booking, error) {
	return s.bookings.ListBookingsByUser(userID)
}

func (s *BookingService) ListAllBookings() ([]db.Booking, error) {
	return s.bookings.ListBookings()
}

// CancelBooking hard-deletes a booking. Only the owner or an admin may
// cancel, and only while the start instant is still in the future.
func (s *BookingService) CancelBooking(bookingID, actorID int, isAdmin bool) error {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.UserID != actorID && !isAdmin {
		return ErrForbidden
	}
	if !booking.StartTime.After(s.clock.Now()) {
		return ErrAlreadyStarted
	}

	if err := s.bookings.DeleteBooking(bookingID); err != nil {
		log.Printf("Error cancelling booking %d: %v", bookingID, err)
		return err
	}

	if s.notifier != nil {
		s.notifier.BookingCancelled(*booking)
	}
	return nil
}

// Catalog administration.

func (s *BookingService) CreateBike(req entities.BikeRequest) (*db.Bike, error) {
	bike := &db.Bike{
		Name:         req.Name,
		Type:         req.Type,
		ImageURL:     req.ImageURL,
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		IsAvailable:  true,
		Location:     req.Location,
		Rating:       req.Rating,
		Features:     req.Features,
	}
	if err := s.bikes.CreateBike(bike); err != nil {
		return nil, err
	}
	return bike, nil
}

func (s *BookingService) UpdateBike(bikeID int, req entities.BikeRequest) (*db.Bike, error) {
	bike, err := s.bikes.GetBikeByID(bikeID)
	if err != nil {
		return nil, err
	}
	if bike == nil {
		return nil, ErrBikeNotFound
	}
	bike.Name = req.Name
	bike.Type = req.Type
	bike.ImageURL = req.ImageURL
	bike.Description = req.Description
	bike.PricePerHour = req.PricePerHour
	bike.Location = req.Location
	bike.Rating = req.Rating
	bike.Features = req.Features
	if err := s.bikes.UpdateBike(bike); err != nil {
		return nil, err
	}
	return bike, nil
}

func (s *BookingService) DeleteBike(bikeID int) error {
	bike, err := s.bikes.GetBikeByID(bikeID)
	if err != nil {
		return err
	}
	if bike == nil {
		return ErrBikeNotFound
	}
	return s.bikes.DeleteBike(bikeID)
}

func toBikeResponse(b db.Bike, available bool) entities.BikeResponse {
	return entities.BikeResponse{
		ID:           b.ID,
		Name:         b.Name,
		Type:         b.Type,
		ImageURL:     b.ImageURL,
		Description:  b.Description,
		PricePerHour: b.PricePerHour,
		IsAvailable:  available,
		Location:     b.Location,
		Rating:       b.Rating,
		Features:     b.Features,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
