package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kenyagreatparty/kgp-backend/internal/dto"
)

type envelope map[string]any

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"data":   data,
		"status": status,
	}); err != nil {
		return err
	}

	return nil
}

// getPaginationParams parses ?page and ?limit, defaulting to the first page
// of 10 and clamping limit to [1,100].
func (h *Handlers) getPaginationParams(r *http.Request) (page, limit int) {
	page, limit = 1, 10

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > 100 {
				n = 100
			}
			limit = n
		}
	}

	return page, limit
}

func (h *Handlers) getApplicationFiltersQuery(r *http.Request) dto.ApplicationFilters {
	filters := dto.ApplicationFilters{}

	if v := r.URL.Query().Get("status"); v != "" {
		filters.Status = &v
	}

	if v := r.URL.Query().Get("county"); v != "" {
		filters.County = &v
	}

	return filters
}
