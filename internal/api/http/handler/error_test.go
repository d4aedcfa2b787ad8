package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/quizzzy/internal/model"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantFields  map[string]string
	}{
		{
			name:        "validation with fields",
			err:         model.NewValidationError("Please fill in all required fields", map[string]string{"title": "required"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please fill in all required fields",
			wantFields:  map[string]string{"title": "required"},
		},
		{
			name:        "wrapped validation",
			err:         fmt.Errorf("failed to create quiz: %w", model.NewValidationError("bad", nil)),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "bad",
		},
		{
			name:        "email taken",
			err:         fmt.Errorf("failed to signup: %w", model.ErrEmailTaken),
			wantStatus:  http.StatusConflict,
			wantMessage: model.ErrEmailTaken.Error(),
		},
		{
			name:        "invalid credentials",
			err:         model.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: model.ErrInvalidCredentials.Error(),
		},
		{
			name:        "unauthenticated",
			err:         model.ErrUnauthenticated,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: model.ErrUnauthenticated.Error(),
		},
		{
			name:        "forbidden",
			err:         model.ErrForbidden,
			wantStatus:  http.StatusForbidden,
			wantMessage: model.ErrForbidden.Error(),
		},
		{
			name:        "not found",
			err:         fmt.Errorf("failed to get quiz: %w", model.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: model.ErrNotFound.Error(),
		},
		{
			name:        "not confirmed",
			err:         model.ErrNotConfirmed,
			wantStatus:  http.StatusConflict,
			wantMessage: model.ErrNotConfirmed.Error(),
		},
		{
			name:        "unknown error is hidden",
			err:         errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := handleError(tt.err)
			assert.Equal(t, tt.wantStatus, res.status)
			assert.Equal(t, tt.wantMessage, res.message)
			assert.Equal(t, tt.wantFields, res.fields)
		})
	}
}
