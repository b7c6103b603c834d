package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"

	"catalog-studio/apperr"
	"catalog-studio/catalog"
	"catalog-studio/models"
	"catalog-studio/repository"
)

// ProjectService is the single in-memory holder of the catalog
// document. Every mutation goes through one entry point that applies a
// pure transition, persists the result and swaps the whole document
// atomically; readers never observe a partial write.
type ProjectService struct {
	repo     repository.ProjectRepositoryInterface
	blobs    repository.BlobRepositoryInterface
	validate *validator.Validate

	mu   sync.RWMutex
	data models.ProjectData
}

// NewProjectService creates a ProjectService over the two stores.
func NewProjectService(repo repository.ProjectRepositoryInterface, blobs repository.BlobRepositoryInterface) *ProjectService {
	return &ProjectService{
		repo:     repo,
		blobs:    blobs,
		validate: validator.New(),
	}
}

// defaultProject seeds a fresh store: an empty catalog with the
// starter palette.
func defaultProject() models.ProjectData {
	return models.ProjectData{
		ProjectName: "Product Catalog",
		CreatedAt:   time.Now().Format(time.RFC3339),
		Products:    []models.Product{},
		Colors: []models.Color{
			{ID: "1", Name: "Black", Hex: "#000000"},
			{ID: "2", Name: "White", Hex: "#FFFFFF"},
			{ID: "3", Name: "Red", Hex: "#FF0000"},
		},
	}
}

// Init loads the persisted document, seeding defaults on first use.
func (s *ProjectService) Init(ctx context.Context) error {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if data == nil {
		seeded := defaultProject()
		if err := s.repo.Save(ctx, &seeded); err != nil {
			return fmt.Errorf("failed to seed project: %w", err)
		}
		data = &seeded
		log.Info().Msg("✓ Seeded new project")
	}

	s.mu.Lock()
	s.data = *data
	s.mu.Unlock()
	log.Info().Str("project", data.ProjectName).Int("products", len(data.Products)).Msg("✓ Project loaded")
	return nil
}

// Snapshot returns the current document.
func (s *ProjectService) Snapshot() models.ProjectData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// commit applies a pure transition to the current document, persists
// the result and swaps it in. The persisted write and the in-memory
// swap happen under the write lock, so there is exactly one writer at
// a time.
func (s *ProjectService) commit(ctx context.Context, transition func(models.ProjectData) models.ProjectData) (models.ProjectData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := transition(s.data)
	if err := s.repo.Save(ctx, &next); err != nil {
		return models.ProjectData{}, err
	}
	s.data = next
	return next, nil
}

// SaveProduct validates and applies an add-or-update. New products get
// a generated id and are appended; existing ones are replaced in
// place. Nothing is saved when validation fails.
func (s *ProjectService) SaveProduct(ctx context.Context, req models.SaveProductRequest) (models.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Product{}, apperr.Wrap(apperr.CodeValidation, err, "invalid product")
	}
	for _, size := range req.Sizes {
		if !models.ValidSize(size) {
			return models.Product{}, apperr.Newf(apperr.CodeValidation, "unknown size %q", size)
		}
	}

	product := req.Product()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	next, err := s.commit(ctx, func(data models.ProjectData) models.ProjectData {
		return catalog.UpsertProduct(data, product)
	})
	if err != nil {
		return models.Product{}, err
	}
	saved := next.FindProduct(product.ID)
	log.Info().Str("id", saved.ID).Str("code", saved.Code).Msg("✓ Product saved")
	return *saved, nil
}

// DeleteProduct removes a product and all of its image blobs. The
// blobs go first so a crash cannot leave a product referencing deleted
// state; a failed blob delete is reported but does not block the
// catalog removal. Returns the ids whose blob deletion failed.
func (s *ProjectService) DeleteProduct(ctx context.Context, id string) ([]string, error) {
	data := s.Snapshot()
	product := data.FindProduct(id)
	if product == nil {
		return nil, apperr.Newf(apperr.CodeNotFound, "product %s not found", id)
	}

	failed, blobErr := s.deleteBlobs(ctx, product.ImageIDs())
	if blobErr != nil {
		log.Warn().Err(blobErr).Str("product", id).Msg("⚠️ Some image blobs could not be deleted")
	}

	if _, err := s.commit(ctx, func(data models.ProjectData) models.ProjectData {
		return catalog.RemoveProduct(data, id)
	}); err != nil {
		return failed, err
	}
	log.Info().Str("id", id).Int("images", len(product.Images)).Msg("🗑️ Product deleted")
	return failed, nil
}

// deleteBlobs removes every id as one awaited batch. Failures are
// collected, not short-circuited.
func (s *ProjectService) deleteBlobs(ctx context.Context, ids []string) ([]string, error) {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []string
		errs   error
	)
	for _, imageID := range ids {
		wg.Add(1)
		go func(imageID string) {
			defer wg.Done()
			if err := s.blobs.Delete(ctx, imageID); err != nil {
				mu.Lock()
				failed = append(failed, imageID)
				errs = multierr.Append(errs, fmt.Errorf("image %s: %w", imageID, err))
				mu.Unlock()
			}
		}(imageID)
	}
	wg.Wait()
	return failed, errs
}

// DuplicateProduct deep-copies a product under a new id. Every owned
// image blob is re-persisted under a fresh id first, so the two
// products' image lifecycles stay independent.
func (s *ProjectService) DuplicateProduct(ctx context.Context, id string) (models.Product, error) {
	data := s.Snapshot()
	source := data.FindProduct(id)
	if source == nil {
		return models.Product{}, apperr.Newf(apperr.CodeNotFound, "product %s not found", id)
	}

	imageIDs, err := s.copyBlobs(ctx, source.ImageIDs())
	if err != nil {
		return models.Product{}, err
	}

	dup := catalog.DuplicateOf(*source, uuid.NewString(), imageIDs)
	next, err := s.commit(ctx, func(data models.ProjectData) models.ProjectData {
		return catalog.UpsertProduct(data, dup)
	})
	if err != nil {
		return models.Product{}, err
	}
	saved := next.FindProduct(dup.ID)
	log.Info().Str("source", id).Str("id", saved.ID).Msg("✓ Product duplicated")
	return *saved, nil
}

// copyBlobs re-persists each blob under a new id, fanned out and
// joined as one batch. Missing source blobs are skipped; storage
// failures abort the duplication.
func (s *ProjectService) copyBlobs(ctx context.Context, ids []string) (map[string]string, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		mapping = make(map[string]string, len(ids))
		errs    error
	)
	for _, imageID := range ids {
		wg.Add(1)
		go func(imageID string) {
			defer wg.Done()
			blob, err := s.blobs.Get(ctx, imageID)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("image %s: %w", imageID, err))
				mu.Unlock()
				return
			}
			if blob == nil {
				log.Warn().Str("id", imageID).Msg("⚠️ Source image blob missing, skipping copy")
				return
			}
			copyID := uuid.NewString()
			if err := s.blobs.Put(ctx, copyID, blob.Data, blob.ContentType); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("image %s: %w", imageID, err))
				mu.Unlock()
				return
			}
			mu.Lock()
			mapping[imageID] = copyID
			mu.Unlock()
		}(imageID)
	}
	wg.Wait()
	if errs != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, errs, "failed to copy image blobs")
	}
	return mapping, nil
}

// AddColor appends a palette color with a generated id.
func (s *ProjectService) AddColor(ctx context.Context, req models.ColorRequest) (models.Color, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Color{}, apperr.Wrap(apperr.CodeValidation, err, "invalid color")
	}

	color := models.Color{ID: uuid.NewString(), Name: req.Name, Hex: req.Hex}
	if _, err := s.commit(ctx, func(data models.ProjectData) models.ProjectData {
		return catalog.AddColor(data, color)
	}); err != nil {
		return models.Color{}, err
	}
	return color, nil
}

// UpdateColor replaces a palette color and cascades the replacement
// into every product holding a copy of it.
func (s *ProjectService) UpdateColor(ctx context.Context, id string, req models.ColorRequest) (models.Color, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Color{}, apperr.Wrap(apperr.CodeValidation, err, "invalid color")
	}
	data := s.Snapshot()
	if data.FindColor(id) == nil {
		return models.Color{}, apperr.Newf(apperr.CodeNotFound, "color %s not found", id)
	}

	color := models.Color{ID: id, Name: req.Name, Hex: req.Hex}
	if _, err := s.commit(ctx, func(data models.ProjectData) models.ProjectData {
		return catalog.UpdateColor(data, color)
	}); err != nil {
		return models.Color{}, err
	}
	log.Info().Str("id", id).Msg("✓ Color updated and cascaded")
	return color, nil
}

// Rename sets the project name.
func (s *ProjectService) Rename(ctx context.Context, name string) error {
	_, err := s.commit(ctx, func(data models.ProjectData) models.ProjectData {
		return catalog.RenameProject(data, name)
	})
	return err
}
