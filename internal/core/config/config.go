package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// RedisURL is the connection URL for the local durable store
	// (cart items, pending prescriptions, auth token).
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`

	// Pharmacy holds the pharmacy backend API configuration.
	Pharmacy PharmacyConfig `mapstructure:",squash"`

	// Checkout holds checkout flow tuning knobs.
	Checkout CheckoutConfig `mapstructure:",squash"`
}

// PharmacyConfig holds the connection details for the pharmacy REST backend.
type PharmacyConfig struct {
	// URL is the base URL of the pharmacy backend.
	URL string `mapstructure:"PHARMACY_API_URL" required:"true"`
	// Token is a static bearer token used when no session token is stored.
	Token string `mapstructure:"PHARMACY_API_TOKEN"`
	// ReadTimeoutSeconds bounds read-style calls (settings, coupons, addresses).
	ReadTimeoutSeconds int `mapstructure:"PHARMACY_READ_TIMEOUT_SECONDS" default:"10"`
	// WriteTimeoutSeconds bounds uploads, order creation and payment calls.
	WriteTimeoutSeconds int `mapstructure:"PHARMACY_WRITE_TIMEOUT_SECONDS" default:"30"`
}

// CheckoutConfig holds retry tuning for checkout-adjacent fetches.
type CheckoutConfig struct {
	// AddressRetryAttempts is the number of extra attempts for the address list fetch.
	AddressRetryAttempts int `mapstructure:"ADDRESS_RETRY_ATTEMPTS" default:"2"`
	// AddressRetryBackoffSeconds is the fixed delay between address list attempts.
	AddressRetryBackoffSeconds int `mapstructure:"ADDRESS_RETRY_BACKOFF_SECONDS" default:"2"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
