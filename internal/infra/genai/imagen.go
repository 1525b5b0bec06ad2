package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/media"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ImagenClient calls the Gemini API predict endpoint of an Imagen model.
type ImagenClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewImagenClient(cfg Config, httpClient *http.Client) *ImagenClient {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &ImagenClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(base, "/"),
		http:    httpClient,
	}
}

func (c *ImagenClient) Generate(ctx context.Context, prompt string) (media.Generated, error) {
	if c.apiKey == "" || c.model == "" {
		return media.Generated{}, media.ErrGeneratorNotConfigured
	}

	payload, err := json.Marshal(map[string]any{
		"instances":  []map[string]any{{"prompt": prompt}},
		"parameters": map[string]any{"sampleCount": 1},
	})
	if err != nil {
		return media.Generated{}, fmt.Errorf("genai: marshal: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:predict", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return media.Generated{}, fmt.Errorf("genai: new request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return media.Generated{}, fmt.Errorf("genai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return media.Generated{}, fmt.Errorf("genai: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		return media.Generated{}, fmt.Errorf("genai: status %d: %s", resp.StatusCode, msg)
	}

	pred := gjson.GetBytes(body, "predictions.0")
	encoded := pred.Get("bytesBase64Encoded").String()
	if encoded == "" {
		// filtered prompts come back with no image
		reason := pred.Get("raiFilteredReason").String()
		return media.Generated{}, fmt.Errorf("genai: no image returned %s", reason)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return media.Generated{}, fmt.Errorf("genai: decode image: %w", err)
	}

	mime := pred.Get("mimeType").String()
	if mime == "" {
		mime = "image/png"
	}

	return media.Generated{Data: data, MimeType: mime}, nil
}

var _ media.ImageGenerator = (*ImagenClient)(nil)
