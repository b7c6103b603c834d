package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog-studio/apperr"
	"catalog-studio/db"
)

// Blob is a stored binary image together with its content type.
type Blob struct {
	ID          string
	Data        []byte
	ContentType string
}

// BlobRepository persists binary image objects in the blob store.
// Implements BlobRepositoryInterface.
type BlobRepository struct {
	conn *gorm.DB
}

// NewBlobRepository creates a new BlobRepository over the given store.
func NewBlobRepository(conn *gorm.DB) *BlobRepository {
	return &BlobRepository{conn: conn}
}

// Ensure BlobRepository implements BlobRepositoryInterface
var _ BlobRepositoryInterface = (*BlobRepository)(nil)

// Put inserts or overwrites the binary object under id.
func (r *BlobRepository) Put(ctx context.Context, id string, data []byte, contentType string) error {
	row := db.ImageBlob{
		ID:          id,
		Data:        data,
		ContentType: contentType,
		CreatedAt:   time.Now(),
	}
	err := r.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("❌ Failed to store image blob")
		return apperr.Wrap(apperr.CodeStorage, err, "failed to store image blob")
	}
	return nil
}

// Get returns the stored object, or (nil, nil) when the id is unknown.
func (r *BlobRepository) Get(ctx context.Context, id string) (*Blob, error) {
	var row db.ImageBlob
	err := r.conn.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "failed to read image blob")
	}
	return &Blob{ID: row.ID, Data: row.Data, ContentType: row.ContentType}, nil
}

// Delete removes the entry. Deleting an id that does not exist is a
// no-op, not an error.
func (r *BlobRepository) Delete(ctx context.Context, id string) error {
	err := r.conn.WithContext(ctx).Delete(&db.ImageBlob{}, "id = ?", id).Error
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("❌ Failed to delete image blob")
		return apperr.Wrap(apperr.CodeStorage, err, "failed to delete image blob")
	}
	return nil
}
