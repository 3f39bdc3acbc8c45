package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/features/addresses/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider is a mock implementation of ports.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) List(ctx context.Context) ([]domain.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *MockProvider) Create(ctx context.Context, address domain.Address) (*domain.Address, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *MockProvider) Update(ctx context.Context, address domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockProvider) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProvider) CheckServiceability(ctx context.Context, city string) (bool, error) {
	args := m.Called(ctx, city)
	return args.Bool(0), args.Error(1)
}

func validAddress() domain.Address {
	return domain.Address{
		HouseNo:       "12A",
		StreetAddress: "MG Road",
		City:          "Pune",
		State:         "MH",
		Pincode:       "411001",
		Type:          domain.AddressTypeHome,
	}
}

func newService(provider *MockProvider) *AddressService {
	svc := NewAddressService(provider, 2, 2*time.Second)
	svc.sleep = func(time.Duration) {} // no real waiting in tests
	return svc
}

func TestAddressService_List_RetriesThenSucceeds(t *testing.T) {
	provider := new(MockProvider)
	provider.On("List", mock.Anything).Return(nil, errors.New("timeout")).Twice()
	provider.On("List", mock.Anything).Return([]domain.Address{validAddress()}, nil).Once()

	svc := newService(provider)
	slept := 0
	svc.sleep = func(d time.Duration) {
		assert.Equal(t, 2*time.Second, d)
		slept++
	}

	addresses, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
	assert.Equal(t, 2, slept)
	provider.AssertExpectations(t)
}

func TestAddressService_List_ExhaustsRetries(t *testing.T) {
	provider := new(MockProvider)
	provider.On("List", mock.Anything).Return(nil, errors.New("timeout")).Times(3)

	svc := newService(provider)
	_, err := svc.List(context.Background())

	require.Error(t, err)
	provider.AssertExpectations(t)
}

func TestAddressService_Create_Valid(t *testing.T) {
	provider := new(MockProvider)
	created := validAddress()
	created.ID = "addr-1"
	provider.On("Create", mock.Anything, validAddress()).Return(&created, nil).Once()

	svc := newService(provider)
	got, err := svc.Create(context.Background(), validAddress())

	require.NoError(t, err)
	assert.Equal(t, "addr-1", got.ID)
	provider.AssertExpectations(t)
}

func TestAddressService_Create_InvalidPincode(t *testing.T) {
	provider := new(MockProvider)
	svc := newService(provider)

	address := validAddress()
	address.Pincode = "4110" // not 6 digits

	_, err := svc.Create(context.Background(), address)
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Equal(t, "Pincode must be 6 digits", appErr.Fields["Pincode"])
	provider.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddressService_Create_InvalidType(t *testing.T) {
	provider := new(MockProvider)
	svc := newService(provider)

	address := validAddress()
	address.Type = "office"

	_, err := svc.Create(context.Background(), address)
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "Type")
}

func TestAddressService_Update_RequiresID(t *testing.T) {
	provider := new(MockProvider)
	svc := newService(provider)

	err := svc.Update(context.Background(), validAddress())
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestAddressService_CheckServiceability(t *testing.T) {
	provider := new(MockProvider)
	provider.On("CheckServiceability", mock.Anything, "Pune").Return(true, nil).Once()

	svc := newService(provider)
	available, err := svc.CheckServiceability(context.Background(), "Pune")

	require.NoError(t, err)
	assert.True(t, available)
	provider.AssertExpectations(t)
}
