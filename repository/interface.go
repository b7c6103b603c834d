package repository

import (
	"context"

	"catalog-studio/models"
)

// BlobRepositoryInterface defines the contract for the binary image
// blob store. Get must report a missing key as (nil, nil), never as an
// error; Delete of a missing key is a no-op.
type BlobRepositoryInterface interface {
	Put(ctx context.Context, id string, data []byte, contentType string) error
	Get(ctx context.Context, id string) (*Blob, error)
	Delete(ctx context.Context, id string) error
}

// ProjectRepositoryInterface defines the contract for the structured
// catalog store: the whole ProjectData document read and written as one
// unit. Load returns (nil, nil) when no record has been saved yet.
type ProjectRepositoryInterface interface {
	Load(ctx context.Context) (*models.ProjectData, error)
	Save(ctx context.Context, data *models.ProjectData) error
}
