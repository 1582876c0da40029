// Package handlers holds what the public, admin and auth HTTP handlers share.
package handlers

import (
	"errors"
	"net/http"

	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/internal/repository"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

// RespondWithStoreError maps repository and validation errors onto HTTP responses.
// kind names the resource in messages ("Project"), action describes the failed
// operation for the 500 case ("update project").
func RespondWithStoreError(w http.ResponseWriter, err error, kind, action string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.RespondWithError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, models.ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrInvalidID):
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid "+kind+" ID format")
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, models.ErrNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, kind+" not found")
	case errors.Is(err, repository.ErrDuplicateRecord):
		httputil.RespondWithError(w, http.StatusConflict, kind+" with this title already exists")
	default:
		debug.Error("Failed to %s: %v", action, err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// Publish forwards a change event when a publisher is configured.
func Publish(p Publisher, eventType, id string) {
	if p == nil {
		return
	}
	p.Publish(eventType, id)
}
