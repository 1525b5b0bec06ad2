package media

import (
	"context"
	"errors"
)

var ErrStorageNotConfigured = errors.New("object storage not configured")

// ObjectStore is an S3-compatible bucket.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(url string) string
}

type Generated struct {
	Data     []byte
	MimeType string
}

// ImageGenerator turns a text prompt into one image.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (Generated, error)
}

var ErrGeneratorNotConfigured = errors.New("image generator not configured")

// ExtensionFor maps a MIME type to a file extension.
func ExtensionFor(mime string) string {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
