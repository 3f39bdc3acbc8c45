package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/httpclient"
	"pharmacart/internal/features/prescriptions/domain"
)

// APIAdapter implements ports.Uploader against the pharmacy backend.
type APIAdapter struct {
	client  *http.Client
	baseURL string
}

// NewAPIAdapter creates an upload adapter with a write-class timeout.
func NewAPIAdapter(baseURL string, timeout time.Duration, tokens httpclient.TokenSource) *APIAdapter {
	return &APIAdapter{
		client:  httpclient.NewAuthClient(timeout, tokens),
		baseURL: baseURL,
	}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	UUID    string `json:"uuid"`
	Message string `json:"message"`
}

// Upload bundles the images into one multipart request and returns the
// backend prescription identifier.
func (a *APIAdapter) Upload(ctx context.Context, images []domain.Image) (string, error) {
	if len(images) == 0 {
		return "", domain.ErrNoImages
	}
	if len(images) > domain.MaxImagesPerUpload {
		return "", fmt.Errorf("%w: got %d, max %d", domain.ErrTooManyImages, len(images), domain.MaxImagesPerUpload)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, img := range images {
		part, err := writer.CreateFormFile("prescriptions", img.FileName)
		if err != nil {
			return "", fmt.Errorf("failed to create multipart part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return "", fmt.Errorf("failed to write image data: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/upload", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := a.client.Do(req)
	if err != nil {
		return "", apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", apperr.SessionExpired()
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload endpoint returned status: %d", resp.StatusCode)
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if !body.Success || body.UUID == "" {
		return "", fmt.Errorf("upload rejected by backend: %s", body.Message)
	}

	return body.UUID, nil
}
