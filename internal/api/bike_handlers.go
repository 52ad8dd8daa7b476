package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bikerental/internal/entities"
	"bikerental/internal/service"

	"github.com/gorilla/mux"
)

type BikeHandler struct {
	Service *service.BookingService
}

func NewBikeHandler(svc *service.BookingService) *BikeHandler {
	return &BikeHandler{Service: svc}
}

// ListBikes returns the catalog with live availability at the current
// instant.
func (h *BikeHandler) ListBikes(w http.ResponseWriter, r *http.Request) {
	bikes, err := h.Service.ListBikesWithAvailability()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bikes)
}

func (h *BikeHandler) GetBike(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid bike ID"})
		return
	}
	bike, err := h.Service.GetBikeWithAvailability(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bike)
}

// CheckAvailability reports whether a bike is free for a requested
// window, including the conflicting window on rejection.
func (h *BikeHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	resp, err := h.Service.CheckWindowAvailability(req.BikeID, req.StartTime, req.EndTime)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
