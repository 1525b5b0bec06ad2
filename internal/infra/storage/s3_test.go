package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/media"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.test/galeria/1-2-a.webp", PublicURL("https://cdn.test/", "galeria/1-2-a.webp"))
	assert.Equal(t, "galeria/x.webp", PublicURL("", "galeria/x.webp"))
	assert.Empty(t, PublicURL("https://cdn.test", ""))
}

func TestKeyFromURL(t *testing.T) {
	base := "https://pub-123.r2.dev"

	assert.Equal(t, "generated/images/7-1700000000000.png",
		KeyFromURL(base, "https://pub-123.r2.dev/generated/images/7-1700000000000.png"))

	// a URL from a previous bucket domain still yields its path
	assert.Equal(t, "generated/images/7-1.png",
		KeyFromURL(base, "https://old.example.com/generated/images/7-1.png"))

	assert.Equal(t, "imagens/perfil/a.webp", KeyFromURL(base, "imagens/perfil/a.webp"))
}

func TestS3Store_NotConfigured(t *testing.T) {
	store := NewS3Store(Config{})

	err := store.Upload(context.Background(), "k", []byte("x"), "image/png")
	assert.ErrorIs(t, err, media.ErrStorageNotConfigured)

	err = store.Delete(context.Background(), "k")
	assert.ErrorIs(t, err, media.ErrStorageNotConfigured)
}
