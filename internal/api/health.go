package api

import (
	"database/sql"
	"net/http"
	"time"
)

type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(database *sql.DB) *HealthHandler {
	return &HealthHandler{DB: database}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	database := "Connected"
	if err := h.DB.Ping(); err != nil {
		database = "Disconnected"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Bike Rental API is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}
