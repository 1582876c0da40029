package admin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/northwind-labs/sitecms/internal/handlers"
	"github.com/northwind-labs/sitecms/internal/live"
	"github.com/northwind-labs/sitecms/internal/models"
	"github.com/northwind-labs/sitecms/pkg/debug"
	"github.com/northwind-labs/sitecms/pkg/httputil"
)

// StatusRequest is the body of PATCH /admin/enquiries/{id}/status
type StatusRequest struct {
	Status models.EnquiryStatus `json:"status"`
}

// NotesRequest is the body of PATCH /admin/enquiries/{id}/notes
type NotesRequest struct {
	Notes string `json:"notes"`
}

const maxNotesLength = 10000

// ListEnquiries godoc
// @Summary List enquiries, newest first
// @Tags Admin Enquiries
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Enquiry
// @Router /admin/enquiries [get]
// @Security ApiKeyAuth
func (h *Handler) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	filter := models.EnquiryStatus(httputil.GetQueryParam(r, "status"))
	if filter != "" && !filter.Valid() {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	enquiries, err := h.enquiries.List(r.Context())
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Enquiry", "retrieve enquiries")
		return
	}

	out := make([]models.Enquiry, 0, len(enquiries))
	for _, e := range enquiries {
		if filter == "" || e.Status == filter {
			out = append(out, e)
		}
	}
	httputil.RespondWithJSON(w, http.StatusOK, out)
}

func (h *Handler) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	e, err := h.enquiries.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Enquiry", "retrieve enquiry")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, e)
}

// UpdateEnquiryStatus godoc
// @Summary Move an enquiry through triage
// @Tags Admin Enquiries
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID (UUID)"
// @Param body body StatusRequest true "New status"
// @Success 200 {object} models.Enquiry
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /admin/enquiries/{id}/status [patch]
// @Security ApiKeyAuth
func (h *Handler) UpdateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := httputil.ParseJSONBody(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !req.Status.Valid() {
		httputil.RespondWithError(w, http.StatusBadRequest, "Status must be one of new, in-progress, completed, spam")
		return
	}

	e, err := h.enquiries.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Enquiry", "update enquiry status")
		return
	}

	debug.Info("Admin set enquiry %s to %s", e.ID, e.Status)
	h.publish(live.EventEnquiryUpdated, e.ID)
	httputil.RespondWithJSON(w, http.StatusOK, e)
}

func (h *Handler) UpdateEnquiryNotes(w http.ResponseWriter, r *http.Request) {
	var req NotesRequest
	if err := httputil.ParseJSONBody(r, &req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(req.Notes) > maxNotesLength {
		httputil.RespondWithError(w, http.StatusBadRequest, "Notes are too long")
		return
	}

	e, err := h.enquiries.UpdateNotes(r.Context(), mux.Vars(r)["id"], req.Notes)
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Enquiry", "update enquiry notes")
		return
	}

	h.publish(live.EventEnquiryUpdated, e.ID)
	httputil.RespondWithJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.enquiries.Delete(r.Context(), id); err != nil {
		handlers.RespondWithStoreError(w, err, "Enquiry", "delete enquiry")
		return
	}

	debug.Info("Admin deleted enquiry %s", id)
	h.publish(live.EventEnquiryDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}
