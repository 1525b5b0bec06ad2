package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/media"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	Region    string
}

// S3Store talks to any S3-compatible bucket (Cloudflare R2 by default).
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Store(cfg Config) *S3Store {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg := aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		HTTPClient:  &http.Client{Timeout: 60 * time.Second},
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

func (s *S3Store) configured() error {
	if s == nil || s.bucket == "" {
		return media.ErrStorageNotConfigured
	}
	return nil
}

func (s *S3Store) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	if err := s.configured(); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := s.configured(); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) PublicURL(key string) string {
	return PublicURL(s.publicURL, key)
}

func (s *S3Store) KeyFromURL(raw string) string {
	return KeyFromURL(s.publicURL, raw)
}

var _ media.ObjectStore = (*S3Store)(nil)

// PublicURL joins the public bucket base and an object key.
func PublicURL(base, key string) string {
	if key == "" {
		return ""
	}
	if base == "" {
		return key
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL recovers the object key from a public URL. Values that are
// already keys are returned unchanged.
func KeyFromURL(base, raw string) string {
	base = strings.TrimRight(base, "/")
	if base != "" && strings.HasPrefix(raw, base+"/") {
		return strings.TrimPrefix(raw, base+"/")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return strings.TrimLeft(raw, "/")
	}
	return strings.TrimLeft(u.Path, "/")
}
