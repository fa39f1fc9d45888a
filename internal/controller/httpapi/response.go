package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Freeeeeet/tutorlink/internal/service"
	"go.uber.org/zap"
)

const serverErrorMessage = "Server error"

// envelope is the body of every API response: {success, message?, <data-key>?}.
type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeOK sends a success envelope. data adds keys next to success and message.
func writeOK(w http.ResponseWriter, message string, data envelope) {
	body := envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// statusFor maps an operation error to its HTTP status.
func statusFor(err error) int {
	var storeErr *service.StoreError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyApplied),
		errors.Is(err, service.ErrDuplicatePending):
		return http.StatusBadRequest
	case errors.As(err, &storeErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError reports a failed operation. Known kinds and store errors carry their own
// message; anything else is logged and hidden behind "Server error".
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeFailure(w, status, serverErrorMessage)
		return
	}

	var storeErr *service.StoreError
	if errors.As(err, &storeErr) {
		s.logger.Warn("Store rejected operation",
			zap.String("op", storeErr.Op),
			zap.Error(storeErr.Err),
		)
	}
	writeFailure(w, status, err.Error())
}
