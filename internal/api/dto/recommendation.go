package dto

import (
	"github.com/harborview/membership/internal/domain/plan"
	"github.com/harborview/membership/internal/domain/recommendation"
	"github.com/harborview/membership/internal/types"
)

// CreateRecommendationRequest represents the request payload for a
// membership recommendation. Numeric fields are clamped into the catalog's
// valid range rather than rejected, so no range validations appear here.
type CreateRecommendationRequest struct {
	AdultCount    int                 `json:"adult_count" example:"2"`
	ChildAges     []int               `json:"child_ages" example:"4,7"`
	VisitsByVenue map[types.Venue]int `json:"visits_by_venue"`

	IsResidentDiscountEligible bool `json:"is_resident_discount_eligible"`
	IncludeParking             bool `json:"include_parking"`
	WelcomeEligible            bool `json:"welcome_eligible"`

	DiscountType types.EligibilityDiscountType `json:"discount_type" example:"educator"`
}

// ToVisitPlanParams converts the request into constructor params for a plan
func (r *CreateRecommendationRequest) ToVisitPlanParams() plan.NewVisitPlanParams {
	return plan.NewVisitPlanParams{
		AdultCount:                 r.AdultCount,
		ChildAges:                  r.ChildAges,
		VisitsByVenue:              r.VisitsByVenue,
		IsResidentDiscountEligible: r.IsResidentDiscountEligible,
		IncludeParking:             r.IncludeParking,
		WelcomeEligible:            r.WelcomeEligible,
		DiscountType:               r.DiscountType,
	}
}

// RecommendationResponse wraps a recommendation with a response identifier.
// The engine itself produces no IDs so identical plans stay cacheable; the
// ID here identifies the API response, not the recommendation's content.
type RecommendationResponse struct {
	ID string `json:"id" example:"rec_01HXF2QZJXVBN8TK4R9M3W5YGD"`
	recommendation.Recommendation
}

// ToRecommendationResponse attaches a fresh response ID to a recommendation
func ToRecommendationResponse(rec recommendation.Recommendation) *RecommendationResponse {
	return &RecommendationResponse{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECOMMENDATION),
		Recommendation: rec,
	}
}
