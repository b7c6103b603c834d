package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"catalog-studio/apperr"
	"catalog-studio/models"
	"catalog-studio/service"
)

// ProductController handles HTTP requests for products.
type ProductController struct {
	projects *service.ProjectService
}

// NewProductController creates a new ProductController.
func NewProductController(projects *service.ProjectService) *ProductController {
	return &ProductController{projects: projects}
}

// CreateProduct handles POST /admin/products
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "invalid request body"))
		return
	}
	req.ID = ""

	product, err := c.projects.SaveProduct(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/{id}
func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data := c.projects.Snapshot()
	if data.FindProduct(id) == nil {
		writeError(w, apperr.Newf(apperr.CodeNotFound, "product %s not found", id))
		return
	}

	var req models.SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "invalid request body"))
		return
	}
	req.ID = id

	product, err := c.projects.SaveProduct(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/{id}
// Removes the product and cascades deletion of its image blobs.
func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	failed, err := c.projects.DeleteProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response := map[string]any{
		"status": "deleted",
		"id":     id,
	}
	if len(failed) > 0 {
		log.Warn().Strs("failed", failed).Msg("⚠️ Product deleted with blob cleanup failures")
		response["failedImageDeletes"] = failed
	}
	writeJSON(w, http.StatusOK, response)
}

// DuplicateProduct handles POST /admin/products/{id}/duplicate
func (c *ProductController) DuplicateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := c.projects.DuplicateProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}
