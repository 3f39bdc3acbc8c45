package service

import (
	"context"
	"errors"
	"testing"

	"pharmacart/internal/features/settings/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider is a mock implementation of ports.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Fetch(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func TestSettingsService_Get_FetchesOnce(t *testing.T) {
	provider := new(MockProvider)
	expected := &domain.Settings{ShippingThreshold: 500, ShippingCharge: 40, CODFee: 20}
	provider.On("Fetch", mock.Anything).Return(expected, nil).Once()

	svc := NewSettingsService(provider)
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	second, err := svc.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, expected, first)
	assert.Same(t, first, second)
	provider.AssertExpectations(t)
}

func TestSettingsService_Get_FailureNotCached(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Fetch", mock.Anything).Return(nil, errors.New("backend down")).Once()
	provider.On("Fetch", mock.Anything).Return(&domain.Settings{ShippingCharge: 40}, nil).Once()

	svc := NewSettingsService(provider)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.Error(t, err)

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, settings.ShippingCharge)
	provider.AssertExpectations(t)
}

func TestSettingsService_Refresh(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Fetch", mock.Anything).Return(&domain.Settings{ShippingCharge: 40}, nil).Once()
	provider.On("Fetch", mock.Anything).Return(&domain.Settings{ShippingCharge: 60}, nil).Once()

	svc := NewSettingsService(provider)
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, first.ShippingCharge)

	refreshed, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60.0, refreshed.ShippingCharge)
	provider.AssertExpectations(t)
}
