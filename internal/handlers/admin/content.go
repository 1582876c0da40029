package admin

import (
	"net/http"

	"github.com/northwind-labs/sitecms/internal/handlers"
	"github.com/northwind-labs/sitecms/internal/live"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

// UpdateAbout replaces the about page content.
func (h *Handler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	var about models.AboutContent
	if err := httputil.ParseJSONBody(r, &about); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := about.Validate(); err != nil {
		handlers.RespondWithStoreError(w, err, "About content", "update about content")
		return
	}
	if err := h.content.SaveAbout(r.Context(), &about); err != nil {
		handlers.RespondWithStoreError(w, err, "About content", "update about content")
		return
	}

	h.publish(live.EventAboutUpdated, models.ContentKeyAbout)
	httputil.RespondWithJSON(w, http.StatusOK, about)
}

// UpdateContact replaces the contact information. The map embed is stored as given.
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var contact models.ContactInfo
	if err := httputil.ParseJSONBody(r, &contact); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := contact.Validate(); err != nil {
		handlers.RespondWithStoreError(w, err, "Contact info", "update contact info")
		return
	}
	if err := h.content.SaveContact(r.Context(), &contact); err != nil {
		handlers.RespondWithStoreError(w, err, "Contact info", "update contact info")
		return
	}

	h.publish(live.EventContactUpdated, models.ContentKeyContact)
	httputil.RespondWithJSON(w, http.StatusOK, contact)
}
