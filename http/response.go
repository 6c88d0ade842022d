package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"loan-engine/domain"
	"loan-engine/repository"
	"loan-engine/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string                   `json:"error"`
	Details []domain.ValidationError `json:"details,omitempty"`
}

// decodeJSON enforces a JSON content type and a body size limit.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) (int, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return http.StatusUnsupportedMediaType, errors.New("content type must be application/json")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return http.StatusBadRequest, errors.New("invalid request body")
	}
	return http.StatusOK, nil
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, message string) {
	writeJSON(w, log, status, errorResponse{Error: message})
}

// writeServiceError maps domain and service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: domain.ErrValidation.Error(), Details: verrs})
	case errors.Is(err, domain.ErrInvalidLoanTerms), errors.Is(err, domain.ErrInvalidContext):
		writeError(w, log, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, log, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoEligibleTerm):
		writeError(w, log, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, log, http.StatusInternalServerError, "internal server error")
	}
}
