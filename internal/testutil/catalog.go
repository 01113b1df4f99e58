package testutil

import (
	"time"

	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/config"
	"github.com/harborview/membership/internal/logger"
)

// TestCatalog returns a fresh copy of the default catalog for tests.
// Tests that need different numbers mutate their copy before wiring it in.
func TestCatalog() *catalog.PricingCatalog {
	return catalog.Default()
}

// FrozenClock returns a clock fixed inside the default catalog's promotion
// window, so promotional-discount tests are independent of wall time
func FrozenClock() func() time.Time {
	at := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// ClockOutsideWindow returns a clock fixed after the default catalog's
// promotion window has closed
func ClockOutsideWindow() func() time.Time {
	at := time.Date(2027, time.June, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// TestLogger returns a debug logger for tests
func TestLogger() *logger.Logger {
	log, err := logger.NewLogger(config.GetDefaultConfig())
	if err != nil {
		panic(err)
	}
	return log
}
