package service

import (
	"context"
	"testing"
	"time"

	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/domain/plan"
	"github.com/harborview/membership/internal/testutil"
	"github.com/harborview/membership/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RecommendationServiceSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *catalog.PricingCatalog
	engine  RecommendationService
}

func TestRecommendationService(t *testing.T) {
	suite.Run(t, new(RecommendationServiceSuite))
}

// SetupTest pins the clock after the promotion window so promotional
// pricing only appears in the tests that opt into it
func (s *RecommendationServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.catalog = testutil.TestCatalog()
	s.engine = s.buildEngine(s.catalog, testutil.ClockOutsideWindow())
}

func (s *RecommendationServiceSuite) buildEngine(c *catalog.PricingCatalog, clock func() time.Time) RecommendationService {
	log := testutil.TestLogger()
	admission := NewAdmissionService(c, log)
	discount := NewDiscountServiceWithClock(c, admission, log, clock)
	return NewRecommendationService(c, admission, discount, log)
}

func (s *RecommendationServiceSuite) newPlan(params plan.NewVisitPlanParams) plan.VisitPlan {
	return plan.New(params, s.catalog.Constraints)
}

func (s *RecommendationServiceSuite) TestNoVisitsReturnsSentinel() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{AdultCount: 2})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	s.Equal(types.RECOMMENDATION_STATUS_NO_VISITS, rec.Status)
	s.Equal(types.ProductNone, rec.Product)
}

func (s *RecommendationServiceSuite) TestZeroFamilySizeReturnsSentinel() {
	// An infant does not count toward the eligible family size
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		ChildAges:     []int{1},
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 2},
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)
	s.Equal(types.RECOMMENDATION_STATUS_NO_VISITS, rec.Status)
}

func (s *RecommendationServiceSuite) TestFewVisitsFavorPayAsYouGo() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:    2,
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 2},
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	s.Equal(types.ProductPayAsYouGo, rec.Product)
	s.True(decimal.RequireFromString("79.80").Equal(rec.TotalCost), rec.TotalCost.String())
	s.True(rec.TotalCost.Equal(rec.RegularAdmissionCost))
	s.True(rec.Savings.IsZero())
	s.Equal(0, rec.SavingsPercentage)
}

func (s *RecommendationServiceSuite) TestFrequentVisitorsGetMembership() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:    2,
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 4},
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	// regular admission 159.60 beats nothing: science family at 139 wins
	s.Equal(types.ProductScienceFamily, rec.Product)
	s.True(decimal.RequireFromString("139").Equal(rec.TotalCost), rec.TotalCost.String())
	s.True(decimal.RequireFromString("159.60").Equal(rec.RegularAdmissionCost))
	s.True(decimal.RequireFromString("20.60").Equal(rec.Savings), rec.Savings.String())
	s.Equal(13, rec.SavingsPercentage)
}

func (s *RecommendationServiceSuite) TestRecommendationNeverCostsMoreThanRegularAdmission() {
	plans := []plan.NewVisitPlanParams{
		{AdultCount: 1, VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 1}},
		{AdultCount: 2, ChildAges: []int{4}, VisitsByVenue: map[types.Venue]int{types.VenueAviationMuseum: 6}},
		{AdultCount: 3, ChildAges: []int{2, 8}, VisitsByVenue: map[types.Venue]int{
			types.VenueScienceCenter:   10,
			types.VenueAviationMuseum:  5,
			types.VenueChildrensMuseum: 5,
		}, IncludeParking: true},
		{AdultCount: 1, ChildAges: []int{15}, VisitsByVenue: map[types.Venue]int{types.VenueChildrensMuseum: 20}},
	}

	for _, params := range plans {
		rec := s.engine.Recommend(s.ctx, s.newPlan(params))
		s.True(rec.TotalCost.LessThanOrEqual(rec.RegularAdmissionCost),
			"product %s costs %s against baseline %s",
			rec.Product, rec.TotalCost, rec.RegularAdmissionCost)
	}
}

func (s *RecommendationServiceSuite) TestBreakdownSumsExactlyToTotal() {
	plans := []plan.NewVisitPlanParams{
		{AdultCount: 2, VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 4}},
		{AdultCount: 2, ChildAges: []int{6, 9}, VisitsByVenue: map[types.Venue]int{
			types.VenueScienceCenter:  6,
			types.VenueAviationMuseum: 6,
		}, IncludeParking: true},
		{AdultCount: 1, VisitsByVenue: map[types.Venue]int{types.VenueAviationMuseum: 8}},
		{AdultCount: 2, VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 1}, IncludeParking: true},
	}

	for _, params := range plans {
		rec := s.engine.Recommend(s.ctx, s.newPlan(params))
		s.True(rec.BreakdownTotal().Equal(rec.TotalCost),
			"product %s breakdown sums to %s, total is %s",
			rec.Product, rec.BreakdownTotal(), rec.TotalCost)
	}
}

func (s *RecommendationServiceSuite) TestIdempotent() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:     2,
		ChildAges:      []int{5},
		VisitsByVenue:  map[types.Venue]int{types.VenueScienceCenter: 6},
		IncludeParking: true,
	})

	first := s.engine.Recommend(s.ctx, visitPlan)
	second := s.engine.Recommend(s.ctx, visitPlan)
	s.Equal(first, second)
}

func (s *RecommendationServiceSuite) TestLoneAdultFallsBackToTwoPersonTier() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:    1,
		VisitsByVenue: map[types.Venue]int{types.VenueAviationMuseum: 8},
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	// aviation has no 1-person tier: the 2-person price 95 is substituted
	// and still beats 8 x 16.00 regular admission
	s.Equal(types.ProductAviation, rec.Product)
	s.True(decimal.RequireFromString("95").Equal(rec.TotalCost), rec.TotalCost.String())

	found := false
	for _, eval := range rec.Evaluations {
		if eval.Product == types.ProductAviation {
			found = true
			s.True(eval.Available)
			s.True(eval.UsedFallbackTier)
		}
	}
	s.True(found)
}

func (s *RecommendationServiceSuite) TestWelcomeProgramShortCircuits() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:      2,
		ChildAges:       []int{6},
		VisitsByVenue:   map[types.Venue]int{types.VenueScienceCenter: 5},
		WelcomeEligible: true,
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	s.Equal(types.ProductWelcome, rec.Product)
	s.True(decimal.RequireFromString("30").Equal(rec.BasePrice))
	s.True(decimal.RequireFromString("30").Equal(rec.TotalCost))
	s.Equal(89, rec.SavingsPercentage)
}

func (s *RecommendationServiceSuite) TestSavingsPercentageCappedAtNinety() {
	// 20 visits at 39.90 against the 30 Welcome price saves 96% raw; the
	// reported percentage stops at the cap
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:      2,
		VisitsByVenue:   map[types.Venue]int{types.VenueScienceCenter: 20},
		WelcomeEligible: true,
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	s.Equal(types.ProductWelcome, rec.Product)
	s.True(decimal.RequireFromString("798").Equal(rec.RegularAdmissionCost), rec.RegularAdmissionCost.String())
	s.True(decimal.RequireFromString("768").Equal(rec.Savings), rec.Savings.String())
	s.Equal(s.catalog.Constraints.SavingsPercentageCap, rec.SavingsPercentage)
}

func (s *RecommendationServiceSuite) TestWelcomeStillLosesToPayAsYouGo() {
	// a single cheap visit undercuts even the Welcome Program
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:      1,
		VisitsByVenue:   map[types.Venue]int{types.VenueChildrensMuseum: 1},
		WelcomeEligible: true,
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	s.Equal(types.ProductPayAsYouGo, rec.Product)
	s.True(decimal.RequireFromString("12.50").Equal(rec.TotalCost), rec.TotalCost.String())
}

func (s *RecommendationServiceSuite) TestAllAccessWinsForEvenSpread() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount: 2,
		ChildAges:  []int{6, 9},
		VisitsByVenue: map[types.Venue]int{
			types.VenueScienceCenter:   6,
			types.VenueAviationMuseum:  6,
			types.VenueChildrensMuseum: 6,
		},
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	s.Equal(types.ProductAllAccess, rec.Product)
	s.True(decimal.RequireFromString("259").Equal(rec.TotalCost), rec.TotalCost.String())
	s.Equal(75, rec.SavingsPercentage)
}

func (s *RecommendationServiceSuite) TestCostTieResolvesTowardAllAccess() {
	// Price the science family membership identically to all-access for a
	// party of two with science-only visits
	product := s.catalog.Products[types.ProductScienceFamily]
	product.PriceBySize[1] = decimal.NewFromInt(189)
	s.catalog.Products[types.ProductScienceFamily] = product

	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:    2,
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 10},
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)
	s.Equal(types.ProductAllAccess, rec.Product)
}

func (s *RecommendationServiceSuite) TestMemberRateParkingOnMembership() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:     2,
		ChildAges:      []int{7},
		VisitsByVenue:  map[types.Venue]int{types.VenueScienceCenter: 10},
		IncludeParking: true,
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	// science family size 3 at 169 plus 10 visits x 5.00 member parking
	s.Equal(types.ProductScienceFamily, rec.Product)
	s.True(decimal.RequireFromString("219").Equal(rec.TotalCost), rec.TotalCost.String())
}

func (s *RecommendationServiceSuite) TestPromotionalDiscountInsideWindow() {
	engine := s.buildEngine(s.catalog, testutil.FrozenClock())

	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:    2,
		ChildAges:     []int{5},
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 10},
	})

	rec := engine.Recommend(s.ctx, visitPlan)

	// family of 3 with a science center home venue: 169 x 0.9
	s.Equal(types.ProductScienceFamily, rec.Product)
	s.True(decimal.RequireFromString("152.10").Equal(rec.BasePrice), rec.BasePrice.String())
}

func (s *RecommendationServiceSuite) TestEligibilityDiscountAppliedAfterSelection() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:    2,
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 10},
		DiscountType:  types.EligibilityDiscountEducator,
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	// science family wins at 139, then the educator discount lands: 139 - 15
	s.Equal(types.ProductScienceFamily, rec.Product)
	s.True(decimal.RequireFromString("124").Equal(rec.BasePrice), rec.BasePrice.String())
	s.True(decimal.RequireFromString("124").Equal(rec.TotalCost), rec.TotalCost.String())
	s.True(rec.BreakdownTotal().Equal(rec.TotalCost))
}

func (s *RecommendationServiceSuite) TestEvaluationsCoverEveryProduct() {
	visitPlan := s.newPlan(plan.NewVisitPlanParams{
		AdultCount:    2,
		VisitsByVenue: map[types.Venue]int{types.VenueScienceCenter: 4},
	})

	rec := s.engine.Recommend(s.ctx, visitPlan)

	s.Len(rec.Evaluations, len(types.MembershipProducts()))
	for _, eval := range rec.Evaluations {
		if eval.Product == types.ProductScienceSingle {
			// individual membership is unavailable to a party of two
			s.False(eval.Available)
		} else {
			s.True(eval.Available, "product %s", eval.Product)
		}
	}
}
