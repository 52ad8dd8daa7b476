package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bikerental/internal/auth"
	"bikerental/internal/db"
	"bikerental/internal/entities"
	"bikerental/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	booking, err := h.Service.CreateBooking(auth.UserID(r), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Booking created successfully",
		"booking": toBookingResponse(*booking),
	})
}

// MyBookings lists the caller's bookings, newest first.
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListUserBookings(auth.UserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid booking ID"})
		return
	}
	booking, err := h.Service.GetBooking(id, auth.UserID(r), auth.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(*booking))
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid booking ID"})
		return
	}
	if err := h.Service.CancelBooking(id, auth.UserID(r), auth.IsAdmin(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
}

func toBookingResponse(b db.Booking) entities.BookingResponse {
	return entities.BookingResponse{
		ID:         b.ID,
		Code:       b.Code,
		BikeID:     b.BikeID,
		BikeName:   b.BikeName,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}

func toBookingResponses(bookings []db.Booking) []entities.BookingResponse {
	responses := make([]entities.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, toBookingResponse(b))
	}
	return responses
}
