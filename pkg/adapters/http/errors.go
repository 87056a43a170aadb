package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/solliq/pkg/domain"
)

var (
	// ErrBadParameter is returned when a query or path parameter cannot be bound.
	ErrBadParameter = errors.New("bad parameter")
	// ErrUnknownPreset is returned when a preset name is not configured.
	ErrUnknownPreset = errors.New("unknown preset")
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotApplicable),
		errors.Is(err, domain.ErrCompositionOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownMaterial),
		errors.Is(err, domain.ErrUnknownSystem),
		errors.Is(err, domain.ErrUnknownPhase),
		errors.Is(err, domain.ErrUnknownGradient),
		errors.Is(err, domain.ErrUnknownMode),
		errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrUnsupportedElement),
		errors.Is(err, domain.ErrInvalidPressure),
		errors.Is(err, domain.ErrInvalidComposition),
		errors.Is(err, ErrBadParameter),
		errors.Is(err, ErrUnknownPreset):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
