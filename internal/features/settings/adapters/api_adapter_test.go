package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmacart/internal/core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(token string) func() string {
	return func() string { return token }
}

func TestAPIAdapter_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/fetch-settings", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"settings":{"shippingThreshold":500,"shippingCharge":40,"codFee":20}}`))
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken("tok"))
	settings, err := adapter.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 500.0, settings.ShippingThreshold)
	assert.Equal(t, 40.0, settings.ShippingCharge)
	assert.Equal(t, 20.0, settings.CODFee)
}

func TestAPIAdapter_Fetch_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewAPIAdapter(server.URL, 5*time.Second, staticToken(""))
	_, err := adapter.Fetch(context.Background())

	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindSessionExpired, appErr.Kind)
}

func TestAPIAdapter_Fetch_TransportError(t *testing.T) {
	adapter := NewAPIAdapter("http://127.0.0.1:1", 500*time.Millisecond, staticToken(""))
	_, err := adapter.Fetch(context.Background())

	require.Error(t, err)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNetwork, appErr.Kind)
}
