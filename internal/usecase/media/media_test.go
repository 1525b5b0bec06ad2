package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ink-agenda/internal/audit"
	domainMedia "github.com/BruksfildServices01/ink-agenda/internal/domain/media"
	"github.com/BruksfildServices01/ink-agenda/internal/infra/memory"
	"github.com/BruksfildServices01/ink-agenda/internal/validators"
)

const bucket = "https://cdn.test"

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadKey(t *testing.T) {
	at := time.UnixMilli(1730000000000)
	assert.Equal(t, "galeria/1730000000000-7-dragon-final.webp", UploadKey("galeria", at, 7, "../dragon final.PNG"))
}

func TestPrepareImage_Errors(t *testing.T) {
	_, err := PrepareImage(nil)
	assert.ErrorIs(t, err, ErrImageRequired)

	_, err = PrepareImage([]byte("not an image"))
	assert.ErrorIs(t, err, ErrImageUnsupported)
}

func TestPhotoLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	objects := memory.NewObjectStore(bucket)

	p, err := NewUploadPhoto(store.Photos(), objects, audit.Nop{}).Execute(
		ctx, 1, "tatuagem.png", pngBytes(t), validators.PhotoMeta{Titulo: "Fechamento"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Key, "galeria/"))
	assert.Equal(t, bucket+"/"+p.Key, p.URL)
	assert.Contains(t, objects.Keys(), p.Key)

	public, err := NewGetPhoto(store.Photos(), objects).Execute(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.URL, public.URL)

	del := NewDeletePhoto(store.Photos(), objects, audit.Nop{})
	assert.ErrorIs(t, del.Execute(ctx, 2, p.ID), ErrPhotoNotFound)

	objects.DeleteErr = errors.New("bucket offline")
	assert.ErrorIs(t, del.Execute(ctx, 1, p.ID), ErrStorageFailed)

	list, err := NewListPhotos(store.Photos(), objects).Execute(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1, "row kept when the object could not be removed")

	objects.DeleteErr = nil
	require.NoError(t, del.Execute(ctx, 1, p.ID))
	assert.Empty(t, objects.Keys())

	_, err = NewGetPhoto(store.Photos(), objects).Execute(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestGenerateImage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	objects := memory.NewObjectStore(bucket)
	gen := memory.Generator{Image: domainMedia.Generated{Data: []byte("png-bytes"), MimeType: "image/png"}}

	uc := NewGenerateImage(gen, store.GeneratedImages(), objects, audit.Nop{})
	uc.now = func() time.Time { return time.UnixMilli(1730000000000) }

	img, err := uc.Execute(ctx, 3, "dragão oriental")
	require.NoError(t, err)
	assert.Equal(t, bucket+"/generated/images/3-1730000000000.png", img.URL)
	assert.Equal(t, []byte("png-bytes"), objects.Objects["generated/images/3-1730000000000.png"])

	_, err = NewGetGenerated(store.GeneratedImages()).Execute(ctx, 4, img.ID)
	assert.ErrorIs(t, err, ErrImageNotFound)

	require.NoError(t, NewDeleteGenerated(store.GeneratedImages(), objects, audit.Nop{}).Execute(ctx, 3, img.ID))
	assert.Equal(t, []string{"generated/images/3-1730000000000.png"}, objects.Deleted)

	list, err := NewListGenerated(store.GeneratedImages()).Execute(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGenerateImage_UpstreamFailure(t *testing.T) {
	store := memory.NewStore()
	gen := memory.Generator{Err: domainMedia.ErrGeneratorNotConfigured}

	_, err := NewGenerateImage(gen, store.GeneratedImages(), memory.NewObjectStore(bucket), audit.Nop{}).
		Execute(context.Background(), 1, "qualquer")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
