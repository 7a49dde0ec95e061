package http

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/unimate/campusvote/internal/core/domain"
)

// envelope is the response shape every endpoint returns.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Message: message}); err != nil {
		log.WithError(err).Error("failed to encode error response")
	}
}

// respondDomainError maps the error taxonomy onto HTTP statuses:
// validation 400, unknown poll/option 404, closed window 403, duplicate
// vote 409, transient store failure 503, anything else 500.
func respondDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var closedErr *domain.VotingClosedError
	if errors.As(err, &closedErr) {
		status := http.StatusForbidden
		if closedErr.Reason == domain.ReasonAlreadyVoted {
			status = http.StatusConflict
		}
		respondError(w, status, closedErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPollID):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPollNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrVoteNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		respondError(w, http.StatusServiceUnavailable, "store temporarily unavailable, please retry")
	default:
		log.WithError(err).Error("unhandled error")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
