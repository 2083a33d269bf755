package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/optimizer"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// allowMethod writes 405 and reports false when r.Method is not one of methods.
func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps domain and service errors to HTTP statuses.
// Unrecognised errors are logged and reported as 500 without details.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ic *domain.InvalidCoordinateError
	var ua *services.UnresolvedAddressError

	switch {
	case errors.As(err, &ic):
		writeError(w, r, http.StatusBadRequest, ic.Error())
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidOrder),
		errors.Is(err, services.ErrInvalidCSV):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrOrderNotFound):
		writeError(w, r, http.StatusNotFound, "order not found")
	case errors.As(err, &ua):
		writeError(w, r, http.StatusUnprocessableEntity, "could not geocode address: "+ua.Address)
	case errors.Is(err, services.ErrNoPendingOrders):
		writeError(w, r, http.StatusUnprocessableEntity, "no pending orders")
	case errors.Is(err, optimizer.ErrNoSolution):
		writeError(w, r, http.StatusUnprocessableEntity, "no route found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "request timed out")
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
