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

// ListCaseStudies returns every case study regardless of status.
func (h *Handler) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	var (
		studies []models.CaseStudy
		err     error
	)
	if status := models.CaseStudyStatus(httputil.GetQueryParam(r, "status")); status != "" {
		if !status.Valid() {
			httputil.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		studies, err = h.caseStudies.ListByStatus(r.Context(), status)
	} else {
		studies, err = h.caseStudies.List(r.Context())
	}
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "retrieve case studies")
		return
	}
	if studies == nil {
		studies = []models.CaseStudy{}
	}
	httputil.RespondWithJSON(w, http.StatusOK, studies)
}

// CreateCaseStudy stores a new case study, draft unless a status is given.
func (h *Handler) CreateCaseStudy(w http.ResponseWriter, r *http.Request) {
	var c models.CaseStudy
	if err := httputil.ParseJSONBody(r, &c); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := c.Validate(); err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "create case study")
		return
	}
	if err := h.caseStudies.Create(r.Context(), &c); err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "create case study")
		return
	}

	debug.Info("Admin created case study %q (ID: %s)", c.Title, c.ID)
	h.publish(live.EventCaseStudyCreated, c.ID)
	httputil.RespondWithJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	c, err := h.caseStudies.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "retrieve case study")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, c)
}

// UpdateCaseStudy applies the fields present in the body to the stored case study.
func (h *Handler) UpdateCaseStudy(w http.ResponseWriter, r *http.Request) {
	c, err := h.caseStudies.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "update case study")
		return
	}
	storedID, createdAt := c.ID, c.CreatedAt
	if err := httputil.ParseJSONBody(r, c); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	c.ID, c.CreatedAt = storedID, createdAt

	if err := c.Validate(); err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "update case study")
		return
	}
	if err := h.caseStudies.Update(r.Context(), c); err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "update case study")
		return
	}

	debug.Info("Admin updated case study %s", c.ID)
	h.publish(live.EventCaseStudyUpdated, c.ID)
	httputil.RespondWithJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCaseStudy(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.caseStudies.Delete(r.Context(), id); err != nil {
		handlers.RespondWithStoreError(w, err, "Case study", "delete case study")
		return
	}

	debug.Info("Admin deleted case study %s", id)
	h.publish(live.EventCaseStudyDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}
