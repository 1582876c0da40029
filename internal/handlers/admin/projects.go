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

// ListProjects godoc
// @Summary List all projects
// @Tags Admin Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} httputil.ErrorResponse
// @Router /admin/projects [get]
// @Security ApiKeyAuth
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "retrieve projects")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	httputil.RespondWithJSON(w, http.StatusOK, projects)
}

// CreateProject godoc
// @Summary Create a project
// @Tags Admin Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project (_id, createdAt, updatedAt ignored)"
// @Success 201 {object} models.Project
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 409 {object} httputil.ErrorResponse
// @Router /admin/projects [post]
// @Security ApiKeyAuth
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := httputil.ParseJSONBody(r, &p); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := p.Validate(); err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "create project")
		return
	}
	if err := h.projects.Create(r.Context(), &p); err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "create project")
		return
	}

	debug.Info("Admin created project %q (ID: %s)", p.Title, p.ID)
	h.publish(live.EventProjectCreated, p.ID)
	httputil.RespondWithJSON(w, http.StatusCreated, p)
}

// GetProject godoc
// @Summary Get a project
// @Tags Admin Projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} models.Project
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /admin/projects/{id} [get]
// @Security ApiKeyAuth
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "retrieve project")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, p)
}

// UpdateProject applies the fields present in the body to the stored project.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p, err := h.projects.GetByID(r.Context(), id)
	if err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "update project")
		return
	}
	storedID, createdAt := p.ID, p.CreatedAt
	if err := httputil.ParseJSONBody(r, p); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	p.ID, p.CreatedAt = storedID, createdAt

	if err := p.Validate(); err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "update project")
		return
	}
	if err := h.projects.Update(r.Context(), p); err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "update project")
		return
	}

	debug.Info("Admin updated project %s", p.ID)
	h.publish(live.EventProjectUpdated, p.ID)
	httputil.RespondWithJSON(w, http.StatusOK, p)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags Admin Projects
// @Param id path string true "Project ID (UUID)"
// @Success 204
// @Failure 404 {object} httputil.ErrorResponse
// @Router /admin/projects/{id} [delete]
// @Security ApiKeyAuth
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.projects.Delete(r.Context(), id); err != nil {
		handlers.RespondWithStoreError(w, err, "Project", "delete project")
		return
	}

	debug.Info("Admin deleted project %s", id)
	h.publish(live.EventProjectDeleted, id)
	w.WriteHeader(http.StatusNoContent)
}
