package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/league-skinset-finder/internal/domain"
	"github.com/dom/league-skinset-finder/internal/service"
)

var badRosterErrors = []error{
	domain.ErrNoPlayers,
	domain.ErrTooManyPlayers,
	domain.ErrUnknownChampion,
	domain.ErrUnknownSkinset,
	domain.ErrInvalidLane,
	domain.ErrDuplicateChampion,
}

// writeError maps service errors to status codes. Anything unexpected is
// logged under op and hidden from the client.
func writeError(w http.ResponseWriter, op string, err error) {
	for _, target := range badRosterErrors {
		if errors.Is(err, target) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrStaleShareToken):
		http.Error(w, "Share link was made for an older version of the data", http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidShareToken):
		http.Error(w, "Invalid share link", http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Printf("ERROR [%s] request cancelled: %v", op, err)
		http.Error(w, "Request cancelled", http.StatusServiceUnavailable)
	default:
		log.Printf("ERROR [%s]: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeRoster(w http.ResponseWriter, r *http.Request) (service.RosterSpec, bool) {
	var spec service.RosterSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return spec, false
	}
	return spec, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
