package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/quizzzy/internal/model"
)

type errorResult struct {
	status  int
	message string
	fields  map[string]string
}

func handleError(err error) errorResult {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return errorResult{status: http.StatusBadRequest, message: verr.Message, fields: verr.Fields}
	}

	switch {
	case errors.Is(err, model.ErrValidation):
		return errorResult{status: http.StatusBadRequest, message: err.Error()}
	case errors.Is(err, model.ErrEmailTaken):
		return errorResult{status: http.StatusConflict, message: model.ErrEmailTaken.Error()}
	case errors.Is(err, model.ErrInvalidCredentials):
		return errorResult{status: http.StatusUnauthorized, message: model.ErrInvalidCredentials.Error()}
	case errors.Is(err, model.ErrUnauthenticated):
		return errorResult{status: http.StatusUnauthorized, message: model.ErrUnauthenticated.Error()}
	case errors.Is(err, model.ErrForbidden):
		return errorResult{status: http.StatusForbidden, message: model.ErrForbidden.Error()}
	case errors.Is(err, model.ErrNotFound):
		return errorResult{status: http.StatusNotFound, message: model.ErrNotFound.Error()}
	case errors.Is(err, model.ErrNotConfirmed):
		return errorResult{status: http.StatusConflict, message: model.ErrNotConfirmed.Error()}
	default:
		return errorResult{status: http.StatusInternalServerError, message: "internal server error"}
	}
}
