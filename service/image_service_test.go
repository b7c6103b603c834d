package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveForDisplay(t *testing.T) {
	blobs := newFakeBlobRepository()
	require.NoError(t, blobs.Put(context.Background(), "img-1", testPNG(t, 1200, 900), "image/png"))
	svc := NewImageService(blobs, t.TempDir())

	handle, err := svc.ResolveForDisplay(context.Background(), "img-1", "thumb")
	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, "image/jpeg", handle.ContentType)

	data, err := os.ReadFile(handle.Path)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), 300)
	assert.LessOrEqual(t, img.Bounds().Dy(), 300)

	handle.Release()
	_, err = os.Stat(handle.Path)
	assert.True(t, os.IsNotExist(err), "release removes the backing file")

	// repeated release is safe
	handle.Release()
}

func TestResolveForDisplayMissingBlob(t *testing.T) {
	svc := NewImageService(newFakeBlobRepository(), t.TempDir())

	handle, err := svc.ResolveForDisplay(context.Background(), "no-such-id", "medium")
	require.NoError(t, err)
	assert.Nil(t, handle)
}

func TestResolveForEmbedding(t *testing.T) {
	blobs := newFakeBlobRepository()
	require.NoError(t, blobs.Put(context.Background(), "img-1", testPNG(t, 64, 64), "image/png"))
	svc := NewImageService(blobs, t.TempDir())

	uri := svc.ResolveForEmbedding(context.Background(), "img-1")
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 64, img.Bounds().Dx(), "embedding keeps the full resolution")
}

func TestResolveForEmbeddingPlaceholders(t *testing.T) {
	blobs := newFakeBlobRepository()
	svc := NewImageService(blobs, t.TempDir())
	ctx := context.Background()

	assert.Empty(t, svc.ResolveForEmbedding(ctx, "missing"), "a missing blob hydrates to the empty placeholder")

	require.NoError(t, blobs.Put(ctx, "garbage", []byte("not an image"), "image/png"))
	assert.Empty(t, svc.ResolveForEmbedding(ctx, "garbage"), "an undecodable blob hydrates to the empty placeholder")

	blobs.failGet = true
	assert.Empty(t, svc.ResolveForEmbedding(ctx, "any"), "a store failure hydrates to the empty placeholder")
}

func TestOptimizeImageVariants(t *testing.T) {
	source := testPNG(t, 1600, 1000)

	thumb, err := OptimizeImage(source, "thumb")
	require.NoError(t, err)
	medium, err := OptimizeImage(source, "medium")
	require.NoError(t, err)

	thumbImg, _, err := image.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	mediumImg, _, err := image.Decode(bytes.NewReader(medium))
	require.NoError(t, err)

	assert.Equal(t, 300, thumbImg.Bounds().Dx())
	assert.Equal(t, 800, mediumImg.Bounds().Dx())
	// aspect ratio preserved
	assert.Equal(t, 187, thumbImg.Bounds().Dy())
	assert.Equal(t, 500, mediumImg.Bounds().Dy())
}

func TestOptimizeImageSmallPassThrough(t *testing.T) {
	out, err := OptimizeImage(testPNG(t, 100, 80), "medium")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	_, err := OptimizeImage([]byte("not an image"), "thumb")
	assert.Error(t, err)
}
