package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bikerental/internal/auth"
	"bikerental/internal/clock"
	"bikerental/internal/db"
	"bikerental/internal/interval"
	"bikerental/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

type stubBikeStore struct {
	bikes map[int]db.Bike
}

func (s *stubBikeStore) GetBikes() ([]db.Bike, error) {
	var bikes []db.Bike
	for i := 1; i <= len(s.bikes); i++ {
		if b, ok := s.bikes[i]; ok {
			bikes = append(bikes, b)
		}
	}
	return bikes, nil
}

func (s *stubBikeStore) GetBikeByID(id int) (*db.Bike, error) {
	b, ok := s.bikes[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *stubBikeStore) CreateBike(b *db.Bike) error {
	b.ID = len(s.bikes) + 1
	s.bikes[b.ID] = *b
	return nil
}

func (s *stubBikeStore) UpdateBike(b *db.Bike) error {
	s.bikes[b.ID] = *b
	return nil
}

func (s *stubBikeStore) DeleteBike(id int) error {
	delete(s.bikes, id)
	return nil
}

type stubBookingStore struct {
	seq      int
	bookings map[int]db.Booking
}

func (s *stubBookingStore) FindConflict(bikeID int, start, end time.Time) (*interval.Interval, error) {
	candidate := interval.New(start, end)
	for _, b := range s.bookings {
		if b.BikeID != bikeID {
			continue
		}
		existing := interval.New(b.StartTime, b.EndTime)
		if interval.Overlaps(existing, candidate) {
			return &existing, nil
		}
	}
	return nil, nil
}

func (s *stubBookingStore) BookedBikeIDs(bikeIDs []int, at time.Time) (map[int]bool, error) {
	booked := make(map[int]bool)
	for _, id := range bikeIDs {
		for _, b := range s.bookings {
			if b.BikeID == id && interval.New(b.StartTime, b.EndTime).Contains(at) {
				booked[id] = true
			}
		}
	}
	return booked, nil
}

func (s *stubBookingStore) CreateBooking(b *db.Booking) error {
	s.seq++
	b.ID = s.seq
	s.bookings[b.ID] = *b
	return nil
}

func (s *stubBookingStore) GetBookingByID(id int) (*db.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *stubBookingStore) ListBookingsByUser(userID int) ([]db.Booking, error) {
	var bookings []db.Booking
	for i := s.seq; i >= 1; i-- {
		if b, ok := s.bookings[i]; ok && b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (s *stubBookingStore) ListBookings() ([]db.Booking, error) {
	var bookings []db.Booking
	for i := s.seq; i >= 1; i-- {
		if b, ok := s.bookings[i]; ok {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (s *stubBookingStore) DeleteBooking(id int) error {
	delete(s.bookings, id)
	return nil
}

func testInstant(hour, min int) time.Time {
	return time.Date(2025, 6, 1, hour, min, 0, 0, time.UTC)
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	bikes := &stubBikeStore{bikes: map[int]db.Bike{
		1: {ID: 1, Name: "Urban Cruiser", Type: "electric", PricePerHour: 15, IsAvailable: true, Location: "Downtown"},
		2: {ID: 2, Name: "Speed Demon", Type: "road", PricePerHour: 18, IsAvailable: true, Location: "West End"},
	}}
	bookings := &stubBookingStore{bookings: make(map[int]db.Booking)}
	svc := service.NewBookingService(bikes, bookings, nil, clock.NewFixed(testInstant(9, 0)))

	bikeHandler := NewBikeHandler(svc)
	bookingHandler := NewBookingHandler(svc)
	adminHandler := NewAdminHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/bikes", bikeHandler.ListBikes).Methods("GET")
	r.HandleFunc("/api/bikes/check-availability", bikeHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/bikes/{id}", bikeHandler.GetBike).Methods("GET")

	protected := r.PathPrefix("/api/bookings").Subrouter()
	protected.Use(auth.Middleware)
	protected.HandleFunc("", bookingHandler.CreateBooking).Methods("POST")
	protected.HandleFunc("/my", bookingHandler.MyBookings).Methods("GET")
	protected.HandleFunc("/{id}", bookingHandler.CancelBooking).Methods("DELETE")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware, auth.AdminOnly)
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	return r
}

func bearerToken(t *testing.T, userID int, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return "Bearer " + signed
}

func doJSON(t *testing.T, r *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBookingEndpoints(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("create booking then conflict returns 409 with window", func(t *testing.T) {
		r := newTestRouter(t)
		token := bearerToken(t, 7, "user")

		create := map[string]interface{}{
			"bike_id":     1,
			"start_time":  testInstant(10, 0),
			"end_time":    testInstant(11, 0),
			"total_price": 15,
		}
		rec := doJSON(t, r, "POST", "/api/bookings", token, create)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		create["start_time"] = testInstant(10, 30)
		create["end_time"] = testInstant(10, 45)
		rec = doJSON(t, r, "POST", "/api/bookings", bearerToken(t, 8, "user"), create)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("create booking requires auth", func(t *testing.T) {
		r := newTestRouter(t)
		rec := doJSON(t, r, "POST", "/api/bookings", "", map[string]interface{}{
			"bike_id":    1,
			"start_time": testInstant(10, 0),
			"end_time":   testInstant(11, 0),
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unknown bike returns 404", func(t *testing.T) {
		r := newTestRouter(t)
		rec := doJSON(t, r, "POST", "/api/bookings", bearerToken(t, 7, "user"), map[string]interface{}{
			"bike_id":    99,
			"start_time": testInstant(10, 0),
			"end_time":   testInstant(11, 0),
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("cancel frees the slot", func(t *testing.T) {
		r := newTestRouter(t)
		token := bearerToken(t, 7, "user")

		create := map[string]interface{}{
			"bike_id":     1,
			"start_time":  testInstant(14, 0),
			"end_time":    testInstant(15, 0),
			"total_price": 15,
		}
		rec := doJSON(t, r, "POST", "/api/bookings", token, create)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		var created struct {
			Booking struct {
				ID int `json:"id"`
			} `json:"booking"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decoding response: %v", err)
		}

		rec = doJSON(t, r, "DELETE", fmt.Sprintf("/api/bookings/%d", created.Booking.ID), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 on cancel, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(t, r, "POST", "/api/bookings", token, create)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 rebooking freed slot, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("cancelling another user's booking is forbidden", func(t *testing.T) {
		r := newTestRouter(t)

		rec := doJSON(t, r, "POST", "/api/bookings", bearerToken(t, 7, "user"), map[string]interface{}{
			"bike_id":     1,
			"start_time":  testInstant(14, 0),
			"end_time":    testInstant(15, 0),
			"total_price": 15,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		rec = doJSON(t, r, "DELETE", "/api/bookings/1", bearerToken(t, 8, "user"), nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("my bookings lists newest first", func(t *testing.T) {
		r := newTestRouter(t)
		token := bearerToken(t, 7, "user")

		for hour := 10; hour <= 12; hour++ {
			rec := doJSON(t, r, "POST", "/api/bookings", token, map[string]interface{}{
				"bike_id":     1,
				"start_time":  testInstant(hour, 0),
				"end_time":    testInstant(hour+1, 0),
				"total_price": 15,
			})
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d", rec.Code)
			}
		}

		rec := doJSON(t, r, "GET", "/api/bookings/my", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var bookings []struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &bookings); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(bookings) != 3 {
			t.Fatalf("expected 3 bookings, got %d", len(bookings))
		}
		for i := 1; i < len(bookings); i++ {
			if bookings[i-1].ID < bookings[i].ID {
				t.Fatal("bookings should be newest first")
			}
		}
	})
}

func TestBikeEndpoints(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("check availability reports conflicts", func(t *testing.T) {
		r := newTestRouter(t)

		rec := doJSON(t, r, "POST", "/api/bookings", bearerToken(t, 7, "user"), map[string]interface{}{
			"bike_id":     1,
			"start_time":  testInstant(10, 0),
			"end_time":    testInstant(11, 0),
			"total_price": 15,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		rec = doJSON(t, r, "POST", "/api/bikes/check-availability", "", map[string]interface{}{
			"bike_id":    1,
			"start_time": testInstant(10, 30),
			"end_time":   testInstant(11, 30),
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Available         bool `json:"available"`
			ConflictingWindow *struct {
				StartTime time.Time `json:"start_time"`
				EndTime   time.Time `json:"end_time"`
			} `json:"conflicting_window"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Available {
			t.Error("window should be unavailable")
		}
		if resp.ConflictingWindow == nil {
			t.Fatal("expected conflicting window")
		}
		if !resp.ConflictingWindow.StartTime.Equal(testInstant(10, 0)) {
			t.Errorf("expected conflict start 10:00, got %v", resp.ConflictingWindow.StartTime)
		}

		rec = doJSON(t, r, "POST", "/api/bikes/check-availability", "", map[string]interface{}{
			"bike_id":    1,
			"start_time": testInstant(11, 0),
			"end_time":   testInstant(12, 0),
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if !resp.Available {
			t.Error("adjacent window should be available")
		}
	})

	t.Run("unknown bike in availability check is 404", func(t *testing.T) {
		r := newTestRouter(t)
		rec := doJSON(t, r, "POST", "/api/bikes/check-availability", "", map[string]interface{}{
			"bike_id":    99,
			"start_time": testInstant(10, 0),
			"end_time":   testInstant(11, 0),
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("listing carries live availability", func(t *testing.T) {
		r := newTestRouter(t)

		// Booking covers the fixed clock instant (09:00).
		rec := doJSON(t, r, "POST", "/api/bookings", bearerToken(t, 7, "user"), map[string]interface{}{
			"bike_id":     1,
			"start_time":  testInstant(9, 0),
			"end_time":    testInstant(10, 0),
			"total_price": 15,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		rec = doJSON(t, r, "GET", "/api/bikes", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var bikes []struct {
			ID          int  `json:"id"`
			IsAvailable bool `json:"is_available"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &bikes); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(bikes) != 2 {
			t.Fatalf("expected 2 bikes, got %d", len(bikes))
		}
		for _, b := range bikes {
			switch b.ID {
			case 1:
				if b.IsAvailable {
					t.Error("bike 1 should be unavailable")
				}
			case 2:
				if !b.IsAvailable {
					t.Error("bike 2 should be available")
				}
			}
		}
	})

	t.Run("bike detail 404 on unknown id", func(t *testing.T) {
		r := newTestRouter(t)
		rec := doJSON(t, r, "GET", "/api/bikes/99", "", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestAdminEndpoints(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("booking list requires admin role", func(t *testing.T) {
		r := newTestRouter(t)

		rec := doJSON(t, r, "GET", "/admin/bookings", bearerToken(t, 7, "user"), nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}

		rec = doJSON(t, r, "GET", "/admin/bookings", bearerToken(t, 1, "admin"), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
