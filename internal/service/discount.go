package service

import (
	"context"
	"fmt"
	"time"

	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/domain/plan"
	"github.com/harborview/membership/internal/domain/recommendation"
	"github.com/harborview/membership/internal/logger"
	"github.com/harborview/membership/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DiscountService computes every discount the catalog declares: guest
// admission savings, the multi-person promotional discount, the Welcome
// Program, and the flat educator/military discounts.
type DiscountService interface {
	// ComputeGuestAdmissionSavings is the savings a member realizes on
	// companion admission relative to full price, honoring per-visit
	// headcount caps. A subtractive adjustment, not an absolute cost.
	ComputeGuestAdmissionSavings(ctx context.Context, visitPlan plan.VisitPlan, productID types.ProductID) recommendation.GuestSavingsBreakdown

	IsEligibleForPromotionalDiscount(ctx context.Context, familySize int, homeVenue types.Venue, productID types.ProductID) bool

	// ApplyPromotionalDiscount returns basePrice × (1 − rate) when eligible,
	// basePrice unchanged otherwise. Eligibility and rate are independent:
	// a zero rate pauses the discount without disabling the check.
	ApplyPromotionalDiscount(ctx context.Context, basePrice decimal.Decimal, familySize int, homeVenue types.Venue, productID types.ProductID) decimal.Decimal

	ComputeWelcomeProgramPricing(ctx context.Context, visitPlan plan.VisitPlan) recommendation.WelcomeOption

	// ApplyEligibilityDiscount subtracts the flat educator/military amount
	// for the product's lead venue, floored at zero
	ApplyEligibilityDiscount(basePrice decimal.Decimal, discountType types.EligibilityDiscountType, productHomeVenue types.Venue) decimal.Decimal
}

type discountService struct {
	catalog   *catalog.PricingCatalog
	admission AdmissionService
	logger    *logger.Logger
	now       func() time.Time
}

func NewDiscountService(catalog *catalog.PricingCatalog, admission AdmissionService, logger *logger.Logger) DiscountService {
	return &discountService{
		catalog:   catalog,
		admission: admission,
		logger:    logger,
		now:       time.Now,
	}
}

// NewDiscountServiceWithClock injects the promotion-window clock
func NewDiscountServiceWithClock(catalog *catalog.PricingCatalog, admission AdmissionService, logger *logger.Logger, now func() time.Time) DiscountService {
	return &discountService{
		catalog:   catalog,
		admission: admission,
		logger:    logger,
		now:       now,
	}
}

func (s *discountService) ComputeGuestAdmissionSavings(ctx context.Context, visitPlan plan.VisitPlan, productID types.ProductID) recommendation.GuestSavingsBreakdown {
	breakdown := recommendation.GuestSavingsBreakdown{Total: decimal.Zero}

	product, err := s.catalog.Product(productID)
	if err != nil {
		s.logger.Warnw("guest savings requested for unknown product",
			"product", productID, "error", err)
		return breakdown
	}

	cons := s.catalog.Constraints
	adults := types.ClampInt(visitPlan.AdultCount, 0, cons.MaxAdults)

	for _, venue := range types.Venues() {
		visits := types.ClampInt(visitPlan.Visits(venue), 0, cons.MaxVisitsPerLocation)
		if visits == 0 {
			continue
		}

		rate := product.GuestDiscountRateAt(venue)
		if rate.IsZero() {
			continue
		}

		pricing, err := s.catalog.VenuePricing(venue)
		if err != nil {
			s.logger.Warnw("skipping venue with no catalog pricing",
				"venue", venue, "error", err)
			continue
		}

		eligibleChildren := visitPlan.EligibleChildren(pricing)
		limit := s.catalog.GuestLimitAt(product, venue)

		// The cap is allocated to adults first, children take any remainder.
		// Guests beyond the cap pay full price and contribute no savings.
		discountedGuests := min(adults+eligibleChildren, limit)
		discountedAdults := min(adults, discountedGuests)
		discountedChildren := min(eligibleChildren, discountedGuests-discountedAdults)

		adultPrice := pricing.EffectiveAdultPrice(visitPlan.IsResidentDiscountEligible)
		childPrice := pricing.EffectiveChildPrice(visitPlan.IsResidentDiscountEligible)

		perVisit := adultPrice.Mul(rate).Mul(decimal.NewFromInt(int64(discountedAdults))).
			Add(childPrice.Mul(rate).Mul(decimal.NewFromInt(int64(discountedChildren))))
		saving := perVisit.Mul(decimal.NewFromInt(int64(visits)))
		if saving.IsZero() {
			continue
		}

		breakdown.PerVenue = append(breakdown.PerVenue, recommendation.VenueSaving{
			Venue:  venue,
			Amount: saving,
			Detail: fmt.Sprintf("%d visits, %d discounted guests per visit at %s off",
				visits, discountedGuests, rate.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%"),
		})
		breakdown.Total = breakdown.Total.Add(saving)
	}

	return breakdown
}

func (s *discountService) IsEligibleForPromotionalDiscount(ctx context.Context, familySize int, homeVenue types.Venue, productID types.ProductID) bool {
	rules := s.catalog.Promotion
	if familySize < rules.MinFamilySize {
		return false
	}
	if !lo.Contains(rules.EligibleHomeVenues, homeVenue) {
		return false
	}
	if lo.Contains(rules.ExcludedProducts, productID) {
		return false
	}
	return rules.WindowActiveAt(s.now())
}

func (s *discountService) ApplyPromotionalDiscount(ctx context.Context, basePrice decimal.Decimal, familySize int, homeVenue types.Venue, productID types.ProductID) decimal.Decimal {
	if !s.IsEligibleForPromotionalDiscount(ctx, familySize, homeVenue, productID) {
		return basePrice
	}
	return basePrice.Mul(decimal.NewFromInt(1).Sub(s.catalog.Promotion.Rate))
}

func (s *discountService) ComputeWelcomeProgramPricing(ctx context.Context, visitPlan plan.VisitPlan) recommendation.WelcomeOption {
	welcome := s.catalog.Welcome
	cons := s.catalog.Constraints

	option := recommendation.WelcomeOption{
		BasePrice: welcome.BasePrice,
		Breakdown: []recommendation.CostBreakdownItem{
			{
				Label:  welcome.Label,
				Amount: welcome.BasePrice,
				Detail: "Fixed program price regardless of family size",
			},
		},
	}
	total := welcome.BasePrice

	if visitPlan.IncludeParking {
		parkingVisits := types.ClampInt(
			visitPlan.Visits(s.catalog.Parking.Venue), 0, cons.MaxVisitsPerLocation)
		if parkingVisits > 0 {
			parking := s.catalog.Parking.MemberRate.
				Mul(decimal.NewFromInt(int64(parkingVisits)))
			option.Breakdown = append(option.Breakdown, recommendation.CostBreakdownItem{
				Label:  "Parking",
				Amount: parking,
				Detail: fmt.Sprintf("%d visits at member rate", parkingVisits),
			})
			total = total.Add(parking)
		}
	}

	// Visits outside the chosen primary venue are charged a flat per-person
	// rate for the whole party, capped at the program headcount
	headcount := min(visitPlan.TotalHeadcount(), welcome.MaxHeadcount)
	primary := visitPlan.PrimaryVenue()
	crossVenue := decimal.Zero
	crossVisits := 0
	for _, venue := range types.Venues() {
		if venue == primary {
			continue
		}
		visits := types.ClampInt(visitPlan.Visits(venue), 0, cons.MaxVisitsPerLocation)
		if visits == 0 {
			continue
		}
		crossVisits += visits
		crossVenue = crossVenue.Add(welcome.CrossVenuePerPersonRate.
			Mul(decimal.NewFromInt(int64(headcount))).
			Mul(decimal.NewFromInt(int64(visits))))
	}
	if crossVenue.IsPositive() {
		option.Breakdown = append(option.Breakdown, recommendation.CostBreakdownItem{
			Label:  "Other-venue admission",
			Amount: crossVenue,
			Detail: fmt.Sprintf("%d visits, %s per person", crossVisits,
				types.GetDisplayAmount(welcome.CrossVenuePerPersonRate)),
		})
		total = total.Add(crossVenue)
	}

	option.TotalCost = total
	option.RegularAdmissionCost = s.admission.ComputeRegularAdmissionCost(ctx, visitPlan)
	return option
}

func (s *discountService) ApplyEligibilityDiscount(basePrice decimal.Decimal, discountType types.EligibilityDiscountType, productHomeVenue types.Venue) decimal.Decimal {
	if discountType == types.EligibilityDiscountNone || discountType == "" {
		return basePrice
	}
	amount := s.catalog.EligibilityDiscountAmount(discountType, productHomeVenue)
	result := basePrice.Sub(amount)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}
