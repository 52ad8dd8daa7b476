package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bikerental/internal/entities"
	"bikerental/internal/service"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service *service.BookingService
}

func NewAdminHandler(svc *service.BookingService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) CreateBike(w http.ResponseWriter, r *http.Request) {
	var req entities.BikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	bike, err := h.Service.CreateBike(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bike)
}

func (h *AdminHandler) UpdateBike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid bike ID"})
		return
	}
	var req entities.BikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	bike, err := h.Service.UpdateBike(id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

// DeleteBike removes a bike and all of its bookings.
func (h *AdminHandler) DeleteBike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid bike ID"})
		return
	}
	if err := h.Service.DeleteBike(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bike deleted successfully"})
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.ListAllBookings()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}
