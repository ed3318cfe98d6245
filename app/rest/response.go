package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lucas/ecommerce/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// Link is a hypermedia reference.
type Link struct {
	Href string `json:"href"`
}

// PageMetadata describes the position of a page in the full result set.
type PageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// CollectionResponse is the envelope of every list endpoint.
type CollectionResponse struct {
	Embedded map[string][]map[string]any `json:"_embedded"`
	Links    map[string]Link             `json:"_links"`
	Page     PageMetadata                `json:"page"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnknownSortProperty):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidReference), errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteRepositoryError maps a repository error to a status and JSON body.
// Unexpected errors are logged and hidden from the client.
func WriteRepositoryError(w http.ResponseWriter, log logrus.FieldLogger, err error, action string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("Failed to %s", action)
		WriteError(w, status, "failed to "+action)
		return
	}
	log.WithError(err).Warnf("Failed to %s", action)
	WriteError(w, status, err.Error())
}
