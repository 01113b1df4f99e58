package recommendation

import (
	"github.com/harborview/membership/internal/types"
	"github.com/shopspring/decimal"
)

// CostBreakdownItem is one additive line of a recommendation's total.
// The sum of all items in a breakdown equals the total exactly.
type CostBreakdownItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Detail string          `json:"detail,omitempty"`
}

// VenueSaving is an informational guest-discount saving at one venue.
// Savings are subtractive context for the caller, not part of the
// breakdown sum.
type VenueSaving struct {
	Venue  types.Venue     `json:"venue"`
	Amount decimal.Decimal `json:"amount"`
	Detail string          `json:"detail,omitempty"`
}

// ProductEvaluation records how one candidate product fared, so the caller
// can show eligibility and cost for every product, not only the winner
type ProductEvaluation struct {
	Product   types.ProductID `json:"product"`
	Label     string          `json:"label"`
	InfoURL   string          `json:"info_url,omitempty"`
	Available bool            `json:"available"`

	// UsedFallbackTier marks a 1-person family priced at a product's
	// 2-person tier because the product has no 1-person tier
	UsedFallbackTier bool `json:"used_fallback_tier,omitempty"`

	TotalCost decimal.Decimal `json:"total_cost"`
}

// Recommendation is the engine's output: the cheapest admission plan for a
// visit plan with a fully itemized cost breakdown. Constructed fresh on
// every request and never mutated. Deliberately carries no identifier:
// identical plans produce bit-identical recommendations, which the caching
// layer depends on. The API layer attaches response IDs.
type Recommendation struct {
	Status types.RecommendationStatus `json:"status"`

	Product types.ProductID `json:"product"`
	Label   string          `json:"label"`
	InfoURL string          `json:"info_url,omitempty"`

	// BasePrice is the membership price after promotional and eligibility
	// discounts; zero for the pay-as-you-go result
	BasePrice decimal.Decimal `json:"base_price"`

	// Breakdown itemizes TotalCost; its items sum to TotalCost exactly
	Breakdown []CostBreakdownItem `json:"breakdown"`
	TotalCost decimal.Decimal     `json:"total_cost"`

	// RegularAdmissionCost is the pay-as-you-go baseline the savings
	// figures compare against
	RegularAdmissionCost decimal.Decimal `json:"regular_admission_cost"`
	Savings              decimal.Decimal `json:"savings"`
	SavingsPercentage    int             `json:"savings_percentage"`

	// Guest-discount savings, informational only
	GuestSavings        decimal.Decimal `json:"guest_savings"`
	GuestSavingsByVenue []VenueSaving   `json:"guest_savings_by_venue,omitempty"`

	// Evaluations lists every candidate considered, winner included
	Evaluations []ProductEvaluation `json:"evaluations,omitempty"`

	TotalVisits int `json:"total_visits"`
}

// None returns the "nothing to recommend" sentinel for plans with no
// visits or no eligible family members. A terminal state, not an error.
func None() Recommendation {
	return Recommendation{
		Status:  types.RECOMMENDATION_STATUS_NO_VISITS,
		Product: types.ProductNone,
	}
}

// BreakdownTotal sums the breakdown items. It must equal TotalCost; the
// engine's tests assert this for every recommendation it produces.
func (r Recommendation) BreakdownTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Breakdown {
		total = total.Add(item.Amount)
	}
	return total
}

// GuestSavingsBreakdown is the result of the guest-admission savings
// computation: a subtractive adjustment with per-venue detail
type GuestSavingsBreakdown struct {
	Total    decimal.Decimal `json:"total"`
	PerVenue []VenueSaving   `json:"per_venue,omitempty"`
}

// WelcomeOption is the priced Welcome Program membership for a plan
type WelcomeOption struct {
	BasePrice            decimal.Decimal     `json:"base_price"`
	Breakdown            []CostBreakdownItem `json:"breakdown"`
	TotalCost            decimal.Decimal     `json:"total_cost"`
	RegularAdmissionCost decimal.Decimal     `json:"regular_admission_cost"`
}
