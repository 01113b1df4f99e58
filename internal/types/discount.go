package types

import (
	ierr "github.com/harborview/membership/internal/errors"
	"github.com/samber/lo"
)

// EligibilityDiscountType is a flat-dollar discount program tied to the
// purchaser rather than the visit plan ex educator, military
type EligibilityDiscountType string

const (
	EligibilityDiscountNone     EligibilityDiscountType = "none"
	EligibilityDiscountEducator EligibilityDiscountType = "educator"
	EligibilityDiscountMilitary EligibilityDiscountType = "military"
)

func (d EligibilityDiscountType) String() string {
	return string(d)
}

func (d EligibilityDiscountType) Validate() error {
	allowed := []EligibilityDiscountType{
		EligibilityDiscountNone,
		EligibilityDiscountEducator,
		EligibilityDiscountMilitary,
	}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid eligibility discount type").
			WithHint("Unknown discount type").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": d,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
