package controller

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-studio/apperr"
	"catalog-studio/models"
	"catalog-studio/repository"
	"catalog-studio/service"
)

// maxImageBytes bounds a single uploaded image.
const maxImageBytes = 10 << 20

// ImageController handles HTTP requests for image blobs.
type ImageController struct {
	blobs  repository.BlobRepositoryInterface
	images service.ImageServiceInterface
}

// NewImageController creates a new ImageController.
func NewImageController(blobs repository.BlobRepositoryInterface, images service.ImageServiceInterface) *ImageController {
	return &ImageController{blobs: blobs, images: images}
}

// UploadImage handles POST /admin/images
// Stores the uploaded binary in the blob store under a generated id;
// the returned id is what product payloads reference.
func (c *ImageController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "image is too large or the form is malformed (max 10MB)"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.CodeValidation, err, "failed to read upload"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" {
		writeError(w, apperr.Newf(apperr.CodeValidation, "unsupported content type %q", contentType))
		return
	}

	id := uuid.NewString()
	if err := c.blobs.Put(r.Context(), id, data, contentType); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("id", id).Int("bytes", len(data)).Msg("📥 Image stored")
	writeJSON(w, http.StatusCreated, models.UploadImageResponse{
		ID:          id,
		ContentType: contentType,
		SizeBytes:   len(data),
	})
}

// GetImage handles GET /admin/images/{id}?size=thumb|medium
// Acquires a display handle for the request and releases it once the
// bytes are served.
func (c *ImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	variant := r.URL.Query().Get("size")
	if variant == "" {
		variant = "medium"
	}

	handle, err := c.images.ResolveForDisplay(r.Context(), id, variant)
	if err != nil {
		writeError(w, err)
		return
	}
	if handle == nil {
		writeError(w, apperr.Newf(apperr.CodeNotFound, "image %s not found", id))
		return
	}
	defer handle.Release()

	w.Header().Set("Content-Type", handle.ContentType)
	http.ServeFile(w, r, handle.Path)
}

// DeleteImage handles DELETE /admin/images/{id}
func (c *ImageController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.blobs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
