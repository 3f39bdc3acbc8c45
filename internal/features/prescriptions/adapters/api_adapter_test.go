package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmacart/internal/features/prescriptions/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(token string) func() string {
	return func() string { return token }
}

func images(n int) []domain.Image {
	out := make([]domain.Image, n)
	for i := range out {
		out[i] = domain.Image{FileName: "rx.jpg", Data: []byte("jpegdata")}
	}
	return out
}

func TestAPIAdapter_Upload_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/upload", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(10<<20))
		files := r.MultipartForm.File["prescriptions"]
		assert.Len(t, files, 2)

		w.Write([]byte(`{"success":true,"uuid":"rx-uuid-1"}`))
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken("tok"))
	id, err := adapter.Upload(context.Background(), images(2))

	require.NoError(t, err)
	assert.Equal(t, "rx-uuid-1", id)
}

func TestAPIAdapter_Upload_TooManyImages(t *testing.T) {
	adapter := NewAPIAdapter("http://unused", 5*time.Second, staticToken(""))
	_, err := adapter.Upload(context.Background(), images(6))
	assert.ErrorIs(t, err, domain.ErrTooManyImages)
}

func TestAPIAdapter_Upload_NoImages(t *testing.T) {
	adapter := NewAPIAdapter("http://unused", 5*time.Second, staticToken(""))
	_, err := adapter.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoImages)
}

func TestAPIAdapter_Upload_BackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"unreadable image"}`))
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken(""))
	_, err := adapter.Upload(context.Background(), images(1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable image")
}
