package service

import (
	"context"
	"fmt"
	"time"

	"pharmacart/internal/core/apperr"
	"pharmacart/internal/core/logger"
	"pharmacart/internal/features/addresses/domain"
	"pharmacart/internal/features/addresses/ports"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// addressFieldMessages maps validator tags to inline messages per field.
var addressFieldMessages = map[string]string{
	"HouseNo":       "House number is required",
	"StreetAddress": "Street address is required",
	"City":          "City is required",
	"State":         "State is required",
	"Pincode":       "Pincode must be 6 digits",
	"Type":          "Address type must be home, work or other",
}

// AddressService implements ports.Service: client-side validation plus the
// list retry policy (the address list is fetched on checkout entry, so it
// gets a bounded retry; nothing else does).
type AddressService struct {
	provider ports.Provider
	validate *validator.Validate

	retryAttempts int
	retryBackoff  time.Duration
	sleep         func(time.Duration)
}

// NewAddressService creates an AddressService. retryAttempts is the number of
// extra attempts after the first failure.
func NewAddressService(provider ports.Provider, retryAttempts int, retryBackoff time.Duration) *AddressService {
	return &AddressService{
		provider:      provider,
		validate:      validator.New(),
		retryAttempts: retryAttempts,
		retryBackoff:  retryBackoff,
		sleep:         time.Sleep,
	}
}

// List retrieves the saved addresses, retrying on failure with a fixed backoff.
func (s *AddressService) List(ctx context.Context) ([]domain.Address, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retryAttempts; attempt++ {
		if attempt > 0 {
			logger.Get().Warn("Retrying address list fetch",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			s.sleep(s.retryBackoff)
		}

		addresses, err := s.provider.List(ctx)
		if err == nil {
			return addresses, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("service: failed to fetch addresses: %w", lastErr)
}

// Create validates and saves a new address.
func (s *AddressService) Create(ctx context.Context, address domain.Address) (*domain.Address, error) {
	if err := s.validateAddress(address); err != nil {
		return nil, err
	}
	created, err := s.provider.Create(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create address: %w", err)
	}
	return created, nil
}

// Update validates and replaces an existing address.
func (s *AddressService) Update(ctx context.Context, address domain.Address) error {
	if address.ID == "" {
		return apperr.Validation(map[string]string{"id": "Address id is required"})
	}
	if err := s.validateAddress(address); err != nil {
		return err
	}
	if err := s.provider.Update(ctx, address); err != nil {
		return fmt.Errorf("service: failed to update address: %w", err)
	}
	return nil
}

// Delete removes an address by id.
func (s *AddressService) Delete(ctx context.Context, id string) error {
	if err := s.provider.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete address: %w", err)
	}
	return nil
}

// CheckServiceability reports whether the given city is deliverable.
func (s *AddressService) CheckServiceability(ctx context.Context, city string) (bool, error) {
	available, err := s.provider.CheckServiceability(ctx, city)
	if err != nil {
		return false, fmt.Errorf("service: failed to check serviceability: %w", err)
	}
	return available, nil
}

// validateAddress converts validator failures into field-level messages.
// Validation never reaches the network.
func (s *AddressService) validateAddress(address domain.Address) error {
	err := s.validate.Struct(address)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	if invalid, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range invalid {
			if msg, known := addressFieldMessages[fe.Field()]; known {
				fields[fe.Field()] = msg
			} else {
				fields[fe.Field()] = "Invalid value"
			}
		}
	}
	return apperr.Validation(fields)
}
