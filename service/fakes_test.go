package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"catalog-studio/models"
	"catalog-studio/repository"
)

// fakeBlobRepository is an in-memory stand-in for the blob store.
type fakeBlobRepository struct {
	mu    sync.Mutex
	blobs map[string]repository.Blob

	failGet    bool
	failDelete map[string]bool
}

func newFakeBlobRepository() *fakeBlobRepository {
	return &fakeBlobRepository{
		blobs:      make(map[string]repository.Blob),
		failDelete: make(map[string]bool),
	}
}

var _ repository.BlobRepositoryInterface = (*fakeBlobRepository)(nil)

func (f *fakeBlobRepository) Put(ctx context.Context, id string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[id] = repository.Blob{ID: id, Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

func (f *fakeBlobRepository) Get(ctx context.Context, id string) (*repository.Blob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errors.New("blob store unavailable")
	}
	blob, ok := f.blobs[id]
	if !ok {
		return nil, nil
	}
	out := blob
	return &out, nil
}

func (f *fakeBlobRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete[id] {
		return errors.New("blob store unavailable")
	}
	delete(f.blobs, id)
	return nil
}

func (f *fakeBlobRepository) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blobs)
}

func (f *fakeBlobRepository) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blobs[id]
	return ok
}

// fakeProjectRepository keeps the catalog document in memory.
type fakeProjectRepository struct {
	mu      sync.Mutex
	data    *models.ProjectData
	failNow bool
	saves   int
}

var _ repository.ProjectRepositoryInterface = (*fakeProjectRepository)(nil)

func (f *fakeProjectRepository) Load(ctx context.Context) (*models.ProjectData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		return nil, nil
	}
	out := *f.data
	return &out, nil
}

func (f *fakeProjectRepository) Save(ctx context.Context, data *models.ProjectData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNow {
		return errors.New("catalog store unavailable")
	}
	copied := *data
	f.data = &copied
	f.saves++
	return nil
}

// testPNG encodes a solid-color PNG of the given dimensions.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestProjectService(t *testing.T, blobs repository.BlobRepositoryInterface) *ProjectService {
	t.Helper()
	svc := NewProjectService(&fakeProjectRepository{}, blobs)
	require.NoError(t, svc.Init(context.Background()))
	return svc
}
