package types

// RecommendationStatus distinguishes a priced recommendation from the
// legitimate "nothing to recommend" terminal state
type RecommendationStatus string

const (
	// RECOMMENDATION_STATUS_RECOMMENDED means a product was selected and priced
	RECOMMENDATION_STATUS_RECOMMENDED RecommendationStatus = "RECOMMENDED"

	// RECOMMENDATION_STATUS_NO_VISITS means the plan had zero visits or zero
	// eligible family members. Not an error.
	RECOMMENDATION_STATUS_NO_VISITS RecommendationStatus = "NO_VISITS"
)

func (s RecommendationStatus) String() string {
	return string(s)
}
