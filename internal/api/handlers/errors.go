package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kenyagreatparty/kgp-backend/internal/services"
)

func (h *Handlers) logError(r *http.Request, err error) {
	h.factory.Logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
}

// errorResponse translates service errors into the wire error shape. Anything
// that is not an *services.APIError is treated as an internal failure and its
// detail is hidden outside development.
func (h *Handlers) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := envelope{
		"status":  status,
		"code":    services.CodeDependencyFailure,
		"message": "The server encountered a problem and could not process your request",
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		body["status"] = apiErr.Status
		body["code"] = apiErr.Code
		body["message"] = apiErr.Message
		if len(apiErr.Errors) > 0 {
			body["errors"] = apiErr.Errors
		}
	} else {
		h.logError(r, err)
		if h.config.IsDev {
			body["message"] = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		h.logError(r, encodeErr)
	}
}
