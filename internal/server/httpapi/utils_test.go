package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"progress_service/internal/repository"
	"progress_service/internal/service"
)

func TestMapErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid reference", service.ErrInvalidReference, http.StatusBadRequest},
		{"service not found", service.ErrNotFound, http.StatusNotFound},
		{"repository not found", repository.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", service.ErrNotFound), http.StatusNotFound},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapErr(tt.err))
		})
	}
}

func TestParseInt64Query(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?user_id=42&bad=abc", nil)

	id, err := parseInt64Query(r, "user_id")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = parseInt64Query(r, "missing")
	assert.NoError(t, err)
	assert.Zero(t, id)

	_, err = parseInt64Query(r, "bad")
	assert.Error(t, err)
}
