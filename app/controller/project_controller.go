package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"catalog-studio/apperr"
	"catalog-studio/models"
	"catalog-studio/service"
)

// ProjectController handles HTTP requests for the project document.
type ProjectController struct {
	projects *service.ProjectService
}

// NewProjectController creates a new ProjectController.
func NewProjectController(projects *service.ProjectService) *ProjectController {
	return &ProjectController{projects: projects}
}

// GetProject handles GET /admin/project
func (c *ProjectController) GetProject(w http.ResponseWriter, r *http.Request) {
	data := c.projects.Snapshot()
	writeJSON(w, http.StatusOK, data)
}

// RenameProject handles PUT /admin/project
func (c *ProjectController) RenameProject(w http.ResponseWriter, r *http.Request) {
	var req models.RenameProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "invalid request body"))
		return
	}
	if req.ProjectName == "" {
		writeError(w, apperr.New(apperr.CodeValidation, "projectName is required"))
		return
	}

	if err := c.projects.Rename(r.Context(), req.ProjectName); err != nil {
		writeError(w, fmt.Errorf("failed to rename project: %w", err))
		return
	}
	log.Info().Str("name", req.ProjectName).Msg("✓ Project renamed")
	writeJSON(w, http.StatusOK, c.projects.Snapshot())
}
