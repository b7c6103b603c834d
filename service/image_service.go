package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-studio/repository"
)

// ImageServiceInterface is the image rehydrator: it turns persisted
// blob references into display handles or embeddable data URIs.
type ImageServiceInterface interface {
	ResolveForDisplay(ctx context.Context, imageID, variant string) (*DisplayHandle, error)
	ResolveForEmbedding(ctx context.Context, imageID string) string
}

// DisplayHandle is a short-lived, file-backed view of a stored image.
// The caller owns it and must call Release when the image is no longer
// displayed; Release removes the backing file.
type DisplayHandle struct {
	Path        string
	ContentType string
	released    bool
}

// Release frees the handle's backing file. Safe to call more than
// once.
func (h *DisplayHandle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", h.Path).Msg("⚠️ Failed to remove display handle file")
	}
}

// ImageService resolves stored image references into display or
// embedding form. Implements ImageServiceInterface.
type ImageService struct {
	blobs    repository.BlobRepositoryInterface
	cacheDir string
}

// NewImageService creates a new ImageService writing display handles
// under cacheDir.
func NewImageService(blobs repository.BlobRepositoryInterface, cacheDir string) *ImageService {
	return &ImageService{blobs: blobs, cacheDir: cacheDir}
}

// Ensure ImageService implements ImageServiceInterface
var _ ImageServiceInterface = (*ImageService)(nil)

// ResolveForDisplay fetches the blob, optimizes it for the requested
// variant and materializes it as a releasable display handle. A
// missing blob resolves to (nil, nil), not an error.
func (s *ImageService) ResolveForDisplay(ctx context.Context, imageID, variant string) (*DisplayHandle, error) {
	blob, err := s.blobs.Get(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}

	optimized, err := OptimizeImage(blob.Data, variant)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize image %s: %w", imageID, err)
	}

	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	path := filepath.Join(s.cacheDir, fmt.Sprintf("display_%s.jpg", uuid.NewString()))
	if err := os.WriteFile(path, optimized, 0644); err != nil {
		return nil, fmt.Errorf("failed to write display handle: %w", err)
	}

	return &DisplayHandle{Path: path, ContentType: "image/jpeg"}, nil
}

// ResolveForEmbedding fetches the blob and encodes it as a
// self-contained JPEG data URI at export quality. A missing blob or an
// undecodable one yields the empty placeholder so the document
// pipeline can still render the layout slot.
func (s *ImageService) ResolveForEmbedding(ctx context.Context, imageID string) string {
	blob, err := s.blobs.Get(ctx, imageID)
	if err != nil {
		log.Warn().Err(err).Str("id", imageID).Msg("⚠️ Blob store read failed during hydration")
		return ""
	}
	if blob == nil {
		log.Warn().Str("id", imageID).Msg("⚠️ Image blob missing during hydration")
		return ""
	}

	encoded, err := EncodeForEmbedding(blob.Data)
	if err != nil {
		log.Warn().Err(err).Str("id", imageID).Msg("⚠️ Failed to encode image for embedding")
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded)
}
