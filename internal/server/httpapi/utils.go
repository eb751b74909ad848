package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"progress_service/internal/repository"
	"progress_service/internal/service"
)

func mapErr(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp, _ := json.Marshal(map[string]string{"error": message})
	_, _ = w.Write(resp)
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	val := chi.URLParam(r, key)
	if val == "" {
		return 0, fmt.Errorf("missing path param: %s", key)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid path param %s: %q", key, val)
	}
	return id, nil
}

// parseInt64Query reads an optional numeric query parameter; absent means 0.
func parseInt64Query(r *http.Request, key string) (int64, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid query param %s: %q", key, val)
	}
	return id, nil
}
