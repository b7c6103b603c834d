package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalog-studio/apperr"
	"catalog-studio/models"
	"catalog-studio/service"
)

// ColorController handles HTTP requests for the global color palette.
type ColorController struct {
	projects *service.ProjectService
}

// NewColorController creates a new ColorController.
func NewColorController(projects *service.ProjectService) *ColorController {
	return &ColorController{projects: projects}
}

// AddColor handles POST /admin/colors
func (c *ColorController) AddColor(w http.ResponseWriter, r *http.Request) {
	var req models.ColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "invalid request body"))
		return
	}

	color, err := c.projects.AddColor(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, color)
}

// UpdateColor handles PUT /admin/colors/{id}
// The replacement cascades into every product embedding the color.
func (c *ColorController) UpdateColor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "invalid request body"))
		return
	}

	color, err := c.projects.UpdateColor(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, color)
}
