package api

import (
	"encoding/json"
	"log"
	"net/http"

	httperrors "bikerental/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	httpErr := httperrors.FromService(err)
	if httpErr.Code >= http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	writeJSON(w, httpErr.Code, map[string]string{"message": httpErr.Message})
}
