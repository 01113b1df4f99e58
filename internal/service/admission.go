package service

import (
	"context"

	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/domain/plan"
	"github.com/harborview/membership/internal/logger"
	"github.com/harborview/membership/internal/types"
	"github.com/shopspring/decimal"
)

// AdmissionService prices regular, non-membership admission: the
// "do nothing" baseline every membership option is compared against.
type AdmissionService interface {
	ComputeRegularAdmissionCost(ctx context.Context, visitPlan plan.VisitPlan) decimal.Decimal
}

type admissionService struct {
	catalog *catalog.PricingCatalog
	logger  *logger.Logger
}

func NewAdmissionService(catalog *catalog.PricingCatalog, logger *logger.Logger) AdmissionService {
	return &admissionService{catalog: catalog, logger: logger}
}

// ComputeRegularAdmissionCost returns the annual cost of paying per visit
// with no membership. Parking is charged at the standard rate here; the
// member rate only exists for membership candidates. Inputs are clamped
// defensively, so the result is always non-negative and never an error.
func (s *admissionService) ComputeRegularAdmissionCost(ctx context.Context, visitPlan plan.VisitPlan) decimal.Decimal {
	cons := s.catalog.Constraints
	adults := types.ClampInt(visitPlan.AdultCount, 0, cons.MaxAdults)

	cost := decimal.Zero
	for _, venue := range types.Venues() {
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

		perVisit := adultPrice.Mul(decimal.NewFromInt(int64(adults))).
			Add(childPrice.Mul(decimal.NewFromInt(int64(eligibleChildren))))
		cost = cost.Add(perVisit.Mul(decimal.NewFromInt(int64(visits))))
	}

	if visitPlan.IncludeParking {
		parkingVisits := types.ClampInt(
			visitPlan.Visits(s.catalog.Parking.Venue), 0, cons.MaxVisitsPerLocation)
		cost = cost.Add(s.catalog.Parking.StandardRate.
			Mul(decimal.NewFromInt(int64(parkingVisits))))
	}

	if cost.IsNegative() {
		return decimal.Zero
	}
	return cost
}
