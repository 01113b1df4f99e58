package types

import (
	ierr "github.com/harborview/membership/internal/errors"
	"github.com/samber/lo"
)

// ProductID identifies a membership product
type ProductID string

const (
	// ProductScienceSingle is the 1-person science center membership.
	// It grants no guest discount anywhere.
	ProductScienceSingle ProductID = "science_single"

	// ProductScienceFamily is the science center membership for any party size
	ProductScienceFamily ProductID = "science_family"

	// ProductAviation and ProductChildrens have no 1-person tier. A lone
	// adult evaluating them is priced at the 2-person tier.
	ProductAviation  ProductID = "aviation"
	ProductChildrens ProductID = "childrens"

	// ProductAllAccess covers every venue and requires a party of 2+
	ProductAllAccess ProductID = "all_access"

	// ProductWelcome is the means-tested fixed-price program
	ProductWelcome ProductID = "welcome"

	// ProductPayAsYouGo is the regular-admission baseline. It is a
	// pseudo-product used for comparison and as a recommendation result,
	// never something the catalog prices by party size.
	ProductPayAsYouGo ProductID = "pay_as_you_go"

	// ProductNone is the sentinel for the "nothing to recommend" result
	ProductNone ProductID = "none"
)

// MembershipProducts returns the purchasable membership products in
// evaluation order. ProductAllAccess comes first so that total-cost ties
// resolve toward the all-venue product.
func MembershipProducts() []ProductID {
	return []ProductID{
		ProductAllAccess,
		ProductScienceFamily,
		ProductScienceSingle,
		ProductAviation,
		ProductChildrens,
	}
}

func (p ProductID) String() string {
	return string(p)
}

func (p ProductID) Validate() error {
	allowed := append(MembershipProducts(),
		ProductWelcome, ProductPayAsYouGo, ProductNone)
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid product").
			WithHint("Unknown membership product").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
