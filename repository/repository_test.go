package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog-studio/db"
	"catalog-studio/models"
)

var testDBSeq int

func newTestDB(t *testing.T, model interface{}) *gorm.DB {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", testDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(model))
	return conn
}

func TestBlobRepositoryPutGetDelete(t *testing.T) {
	repo := NewBlobRepository(newTestDB(t, &db.ImageBlob{}))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "img-1", []byte{0x01, 0x02, 0x03}, "image/png"))

	blob, err := repo.Get(ctx, "img-1")
	require.NoError(t, err)
	require.NotNil(t, blob)
	assert.Equal(t, "img-1", blob.ID)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, blob.Data)
	assert.Equal(t, "image/png", blob.ContentType)

	require.NoError(t, repo.Delete(ctx, "img-1"))
	blob, err = repo.Get(ctx, "img-1")
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestBlobRepositoryGetMissing(t *testing.T) {
	repo := NewBlobRepository(newTestDB(t, &db.ImageBlob{}))

	blob, err := repo.Get(context.Background(), "no-such-id")
	require.NoError(t, err, "a missing blob is an absence, not an error")
	assert.Nil(t, blob)
}

func TestBlobRepositoryDeleteMissingIsNoop(t *testing.T) {
	repo := NewBlobRepository(newTestDB(t, &db.ImageBlob{}))
	assert.NoError(t, repo.Delete(context.Background(), "no-such-id"))
}

func TestBlobRepositoryPutOverwrites(t *testing.T) {
	repo := NewBlobRepository(newTestDB(t, &db.ImageBlob{}))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "img-1", []byte("old"), "image/png"))
	require.NoError(t, repo.Put(ctx, "img-1", []byte("new"), "image/jpeg"))

	blob, err := repo.Get(ctx, "img-1")
	require.NoError(t, err)
	require.NotNil(t, blob)
	assert.Equal(t, []byte("new"), blob.Data)
	assert.Equal(t, "image/jpeg", blob.ContentType)
}

func TestProjectRepositoryLoadBeforeSave(t *testing.T) {
	repo := NewProjectRepository(newTestDB(t, &db.ProjectRecord{}))

	data, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data, "an empty store reads as no document")
}

func TestProjectRepositoryRoundTrip(t *testing.T) {
	repo := NewProjectRepository(newTestDB(t, &db.ProjectRecord{}))
	ctx := context.Background()

	saved := models.ProjectData{
		ProjectName: "Round Trip",
		CreatedAt:   "2026-01-15T10:00:00Z",
		Colors: []models.Color{
			{ID: "c1", Name: "Black", Hex: "#000000"},
		},
		Products: []models.Product{
			{
				ID:       "p1",
				Code:     "TS-01",
				Name:     "Basic Tee",
				Price:    44.5,
				Quantity: 12,
				Sizes:    []models.Size{"M", "XL"},
				Colors:   []models.Color{{ID: "c1", Name: "Black", Hex: "#000000"}},
				Images: []models.ProductImage{
					{ID: "img-1", Src: "data:image/jpeg;base64,abc", Alt: "front", IsCover: true},
				},
				Notes: "limited run",
				SizeChart: []models.SizeChartEntry{
					{ID: "s1", Size: "M", Width: "52"},
				},
			},
		},
	}
	require.NoError(t, repo.Save(ctx, &saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, saved.ProjectName, loaded.ProjectName)
	assert.Equal(t, saved.CreatedAt, loaded.CreatedAt)
	assert.Equal(t, saved.Colors, loaded.Colors)
	require.Len(t, loaded.Products, 1)

	got := loaded.Products[0]
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "TS-01", got.Code)
	assert.Equal(t, 44.5, got.Price)
	assert.Equal(t, saved.Products[0].Sizes, got.Sizes)
	assert.Equal(t, saved.Products[0].SizeChart, got.SizeChart)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "img-1", got.Images[0].ID)
	assert.True(t, got.Images[0].IsCover)
	assert.Empty(t, got.Images[0].Src, "transient data URIs must never be persisted")
}

func TestProjectRepositorySaveReplacesRecord(t *testing.T) {
	conn := newTestDB(t, &db.ProjectRecord{})
	repo := NewProjectRepository(conn)
	ctx := context.Background()

	first := models.ProjectData{ProjectName: "First"}
	require.NoError(t, repo.Save(ctx, &first))

	second := models.ProjectData{ProjectName: "Second"}
	require.NoError(t, repo.Save(ctx, &second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Second", loaded.ProjectName)

	var count int64
	require.NoError(t, conn.Model(&db.ProjectRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "the catalog store holds exactly one record")
}
