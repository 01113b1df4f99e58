package service

import (
	"context"
	"fmt"

	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/domain/plan"
	"github.com/harborview/membership/internal/domain/recommendation"
	"github.com/harborview/membership/internal/logger"
	"github.com/harborview/membership/internal/types"
	"github.com/shopspring/decimal"
)

// RecommendationService selects the most economical admission plan for a
// family: it enumerates every applicable membership product, prices each
// one fully loaded, and compares them all against paying per visit.
type RecommendationService interface {
	Recommend(ctx context.Context, visitPlan plan.VisitPlan) recommendation.Recommendation
}

type recommendationService struct {
	catalog   *catalog.PricingCatalog
	admission AdmissionService
	discount  DiscountService
	logger    *logger.Logger
}

func NewRecommendationService(
	catalog *catalog.PricingCatalog,
	admission AdmissionService,
	discount DiscountService,
	logger *logger.Logger,
) RecommendationService {
	return &recommendationService{
		catalog:   catalog,
		admission: admission,
		discount:  discount,
		logger:    logger,
	}
}

// candidate is one fully priced membership product under evaluation
type candidate struct {
	product      catalog.MembershipProduct
	basePrice    decimal.Decimal
	parking      decimal.Decimal
	crossVenue   decimal.Decimal
	totalCost    decimal.Decimal
	usedFallback bool
}

// Recommend never returns an error: out-of-range inputs are clamped, catalog
// misses are logged and the affected candidate dropped, and a plan with no
// visits or no eligible family yields the explicit no-recommendation result.
func (s *recommendationService) Recommend(ctx context.Context, visitPlan plan.VisitPlan) recommendation.Recommendation {
	cons := s.catalog.Constraints
	familySize := visitPlan.EligibleFamilySize(cons)

	if !visitPlan.HasVisits() || familySize == 0 {
		return recommendation.None()
	}

	regular := s.admission.ComputeRegularAdmissionCost(ctx, visitPlan)

	// The Welcome Program is means-tested: when the family qualifies it is
	// the answer, not one candidate among many. Paying per visit can still
	// undercut it, so the pay-as-you-go override applies here too.
	if visitPlan.SpecialPrograms.WelcomeEligible {
		option := s.discount.ComputeWelcomeProgramPricing(ctx, visitPlan)
		if regular.LessThan(option.TotalCost) {
			return s.payAsYouGoResult(visitPlan, regular, nil)
		}
		return s.welcomeResult(visitPlan, option, regular)
	}

	primary := visitPlan.PrimaryVenue()

	var best *candidate
	evaluations := make([]recommendation.ProductEvaluation, 0, len(types.MembershipProducts()))
	for _, id := range types.MembershipProducts() {
		product, err := s.catalog.Product(id)
		if err != nil {
			// Catalog miss: drop the candidate, the remaining known-good
			// products still compete
			s.logger.Errorw("membership product missing from catalog",
				"product", id, "error", err)
			continue
		}

		eval := recommendation.ProductEvaluation{
			Product: id,
			Label:   product.Label,
			InfoURL: product.InfoURL,
		}

		if !product.AvailableForSize(familySize) {
			evaluations = append(evaluations, eval)
			continue
		}

		price, ok := product.PriceForPartySize(familySize)
		usedFallback := false
		if !ok && familySize == 1 {
			// Products without a 1-person tier price lone adults at the
			// 2-person tier rather than dropping out silently
			price, ok = product.PriceForPartySize(2)
			usedFallback = ok
		}
		if !ok {
			s.logger.Warnw("no price tier for party size",
				"product", id, "family_size", familySize)
			evaluations = append(evaluations, eval)
			continue
		}

		c := candidate{
			product:      product,
			basePrice:    s.discount.ApplyPromotionalDiscount(ctx, price, familySize, primary, id),
			parking:      s.memberParkingCost(visitPlan),
			crossVenue:   s.crossVenueCost(ctx, visitPlan, product),
			usedFallback: usedFallback,
		}
		c.totalCost = c.basePrice.Add(c.parking).Add(c.crossVenue)

		eval.Available = true
		eval.UsedFallbackTier = usedFallback
		eval.TotalCost = c.totalCost
		evaluations = append(evaluations, eval)

		// Strictly-less keeps the earliest candidate on ties; the all-venue
		// product is evaluated first so ties resolve toward it
		if best == nil || c.totalCost.LessThan(best.totalCost) {
			bestCopy := c
			best = &bestCopy
		}
	}

	if best == nil {
		s.logger.Errorw("no membership product could be priced, falling back to pay-as-you-go",
			"family_size", familySize)
		return s.payAsYouGoResult(visitPlan, regular, evaluations)
	}

	// Flat educator/military discounts adjust the winner's final number but
	// never participate in the comparison that picks the winner
	if dt := visitPlan.SpecialPrograms.DiscountType; dt != types.EligibilityDiscountNone {
		discountedBase := s.discount.ApplyEligibilityDiscount(
			best.basePrice, dt, best.product.LeadHomeVenue())
		best.totalCost = best.totalCost.Sub(best.basePrice.Sub(discountedBase))
		best.basePrice = discountedBase
		for i := range evaluations {
			if evaluations[i].Product == best.product.ID {
				evaluations[i].TotalCost = best.totalCost
			}
		}
	}

	// A membership is never recommended when visiting à la carte is cheaper
	if regular.LessThan(best.totalCost) {
		return s.payAsYouGoResult(visitPlan, regular, evaluations)
	}

	return s.membershipResult(ctx, visitPlan, *best, regular, evaluations)
}

// memberParkingCost prices parking at the member rate for membership
// candidates. The standard rate only appears in the regular-admission
// baseline.
func (s *recommendationService) memberParkingCost(visitPlan plan.VisitPlan) decimal.Decimal {
	if !visitPlan.IncludeParking {
		return decimal.Zero
	}
	visits := types.ClampInt(
		visitPlan.Visits(s.catalog.Parking.Venue), 0, s.catalog.Constraints.MaxVisitsPerLocation)
	return s.catalog.Parking.MemberRate.Mul(decimal.NewFromInt(int64(visits)))
}

// crossVenueCost prices admission at venues the product does not cover.
// Members pay the guest-discounted rate there, with the discounted
// headcount capped per visit; products granting no guest discount pay full
// admission.
func (s *recommendationService) crossVenueCost(ctx context.Context, visitPlan plan.VisitPlan, product catalog.MembershipProduct) decimal.Decimal {
	cons := s.catalog.Constraints
	adults := types.ClampInt(visitPlan.AdultCount, 0, cons.MaxAdults)

	savings := s.discount.ComputeGuestAdmissionSavings(ctx, visitPlan, product.ID)
	savingByVenue := make(map[types.Venue]decimal.Decimal, len(savings.PerVenue))
	for _, saving := range savings.PerVenue {
		savingByVenue[saving.Venue] = saving.Amount
	}

	cross := decimal.Zero
	for _, venue := range types.Venues() {
		if product.IsHomeVenue(venue) {
			continue
		}
		visits := types.ClampInt(visitPlan.Visits(venue), 0, cons.MaxVisitsPerLocation)
		if visits == 0 {
			continue
		}

		pricing, err := s.catalog.VenuePricing(venue)
		if err != nil {
			s.logger.Warnw("skipping venue with no catalog pricing",
				"venue", venue, "error", err)
			continue
		}

		adultPrice := pricing.EffectiveAdultPrice(visitPlan.IsResidentDiscountEligible)
		childPrice := pricing.EffectiveChildPrice(visitPlan.IsResidentDiscountEligible)
		eligibleChildren := visitPlan.EligibleChildren(pricing)

		full := adultPrice.Mul(decimal.NewFromInt(int64(adults))).
			Add(childPrice.Mul(decimal.NewFromInt(int64(eligibleChildren)))).
			Mul(decimal.NewFromInt(int64(visits)))

		venueCost := full.Sub(savingByVenue[venue])
		if venueCost.IsNegative() {
			venueCost = decimal.Zero
		}
		cross = cross.Add(venueCost)
	}

	return cross
}

func (s *recommendationService) membershipResult(
	ctx context.Context,
	visitPlan plan.VisitPlan,
	winner candidate,
	regular decimal.Decimal,
	evaluations []recommendation.ProductEvaluation,
) recommendation.Recommendation {
	breakdown := []recommendation.CostBreakdownItem{
		{
			Label:  winner.product.Label,
			Amount: winner.basePrice,
			Detail: fmt.Sprintf("Annual membership price for a party of %d",
				visitPlan.EligibleFamilySize(s.catalog.Constraints)),
		},
	}
	if winner.parking.IsPositive() {
		breakdown = append(breakdown, recommendation.CostBreakdownItem{
			Label:  "Parking",
			Amount: winner.parking,
			Detail: "Member parking rate",
		})
	}
	if winner.crossVenue.IsPositive() {
		breakdown = append(breakdown, recommendation.CostBreakdownItem{
			Label:  "Other-venue admission",
			Amount: winner.crossVenue,
			Detail: "Guest-rate admission at venues this membership does not cover",
		})
	}

	guestSavings := s.discount.ComputeGuestAdmissionSavings(ctx, visitPlan, winner.product.ID)
	savings, pct := s.savingsAgainst(regular, winner.totalCost)

	return recommendation.Recommendation{
		Status:               types.RECOMMENDATION_STATUS_RECOMMENDED,
		Product:              winner.product.ID,
		Label:                winner.product.Label,
		InfoURL:              winner.product.InfoURL,
		BasePrice:            winner.basePrice,
		Breakdown:            breakdown,
		TotalCost:            winner.totalCost,
		RegularAdmissionCost: regular,
		Savings:              savings,
		SavingsPercentage:    pct,
		GuestSavings:         guestSavings.Total,
		GuestSavingsByVenue:  guestSavings.PerVenue,
		Evaluations:          evaluations,
		TotalVisits:          visitPlan.TotalVisits(s.catalog.Constraints),
	}
}

func (s *recommendationService) payAsYouGoResult(
	visitPlan plan.VisitPlan,
	regular decimal.Decimal,
	evaluations []recommendation.ProductEvaluation,
) recommendation.Recommendation {
	// Itemize parking out of the baseline so the breakdown still sums
	// exactly to the total
	parking := decimal.Zero
	if visitPlan.IncludeParking {
		visits := types.ClampInt(
			visitPlan.Visits(s.catalog.Parking.Venue), 0, s.catalog.Constraints.MaxVisitsPerLocation)
		parking = s.catalog.Parking.StandardRate.Mul(decimal.NewFromInt(int64(visits)))
	}
	admission := regular.Sub(parking)
	if admission.IsNegative() {
		admission = regular
		parking = decimal.Zero
	}

	breakdown := []recommendation.CostBreakdownItem{
		{
			Label:  "Regular admission",
			Amount: admission,
			Detail: "Pay-per-visit admission across all venues",
		},
	}
	if parking.IsPositive() {
		breakdown = append(breakdown, recommendation.CostBreakdownItem{
			Label:  "Parking",
			Amount: parking,
			Detail: "Standard parking rate",
		})
	}

	return recommendation.Recommendation{
		Status:               types.RECOMMENDATION_STATUS_RECOMMENDED,
		Product:              types.ProductPayAsYouGo,
		Label:                "Pay As You Go",
		BasePrice:            decimal.Zero,
		Breakdown:            breakdown,
		TotalCost:            regular,
		RegularAdmissionCost: regular,
		Savings:              decimal.Zero,
		SavingsPercentage:    0,
		GuestSavings:         decimal.Zero,
		Evaluations:          evaluations,
		TotalVisits:          visitPlan.TotalVisits(s.catalog.Constraints),
	}
}

func (s *recommendationService) welcomeResult(
	visitPlan plan.VisitPlan,
	option recommendation.WelcomeOption,
	regular decimal.Decimal,
) recommendation.Recommendation {
	savings, pct := s.savingsAgainst(regular, option.TotalCost)

	return recommendation.Recommendation{
		Status:               types.RECOMMENDATION_STATUS_RECOMMENDED,
		Product:              types.ProductWelcome,
		Label:                s.catalog.Welcome.Label,
		InfoURL:              s.catalog.Welcome.InfoURL,
		BasePrice:            option.BasePrice,
		Breakdown:            option.Breakdown,
		TotalCost:            option.TotalCost,
		RegularAdmissionCost: regular,
		Savings:              savings,
		SavingsPercentage:    pct,
		Evaluations: []recommendation.ProductEvaluation{
			{
				Product:   types.ProductWelcome,
				Label:     s.catalog.Welcome.Label,
				InfoURL:   s.catalog.Welcome.InfoURL,
				Available: true,
				TotalCost: option.TotalCost,
			},
		},
		TotalVisits: visitPlan.TotalVisits(s.catalog.Constraints),
	}
}

// savingsAgainst floors savings at zero and rounds the percentage, capping
// it at the configured maximum. A zero baseline short-circuits to 0% rather
// than dividing by zero.
func (s *recommendationService) savingsAgainst(regular, total decimal.Decimal) (decimal.Decimal, int) {
	savings := regular.Sub(total)
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	if !regular.IsPositive() {
		return savings, 0
	}

	pct := int(savings.Div(regular).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	if cap := s.catalog.Constraints.SavingsPercentageCap; pct > cap {
		pct = cap
	}
	if pct < 0 {
		pct = 0
	}
	return savings, pct
}
