package catalog

import (
	"reflect"
	"time"

	ierr "github.com/harborview/membership/internal/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Load reads a pricing catalog from a yaml file. An empty path returns the
// built-in default catalog. The loaded catalog is validated before use so a
// broken deployment file fails at startup, not mid-recommendation.
func Load(path string) (*PricingCatalog, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to read pricing catalog file %s", path).
			Mark(ierr.ErrSystem)
	}

	var c PricingCatalog
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		decimalDecodeHook,
		mapstructure.StringToTimeHookFunc(time.RFC3339),
	))
	if err := v.Unmarshal(&c, decodeHook); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Pricing catalog file is malformed").
			Mark(ierr.ErrValidation)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// decimalDecodeHook decodes yaml scalars into decimal.Decimal so catalog
// amounts can be written as plain numbers or strings
func decimalDecodeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	decimalType := reflect.TypeOf(decimal.Decimal{})
	if to != decimalType && to != reflect.PointerTo(decimalType) {
		return data, nil
	}

	var (
		dec decimal.Decimal
		err error
	)
	switch value := data.(type) {
	case string:
		dec, err = decimal.NewFromString(value)
	case float64:
		dec = decimal.NewFromFloat(value)
	case int:
		dec = decimal.NewFromInt(int64(value))
	case int64:
		dec = decimal.NewFromInt(value)
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	if to == reflect.PointerTo(decimalType) {
		return &dec, nil
	}
	return dec, nil
}
