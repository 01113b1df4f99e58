package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harborview/membership/internal/catalog"
	"github.com/harborview/membership/internal/types"
)

// SpecialProgramFlags carry the means-tested and purchaser-eligibility
// programs a family may qualify for
type SpecialProgramFlags struct {
	WelcomeEligible bool
	DiscountType    types.EligibilityDiscountType
}

// VisitPlan is the immutable input to every recommendation. Build one with
// New so every field is clamped into the catalog's valid range; a VisitPlan
// is never mutated after construction.
type VisitPlan struct {
	AdultCount    int
	ChildAges     []int
	VisitsByVenue map[types.Venue]int

	// IsResidentDiscountEligible applies the resident admission tier at
	// venues that price residents separately
	IsResidentDiscountEligible bool

	IncludeParking  bool
	SpecialPrograms SpecialProgramFlags
}

// NewVisitPlanParams are the raw, possibly out-of-range inputs collected by
// the caller. The constructor clamps rather than rejects.
type NewVisitPlanParams struct {
	AdultCount                 int
	ChildAges                  []int
	VisitsByVenue              map[types.Venue]int
	IsResidentDiscountEligible bool
	IncludeParking             bool
	WelcomeEligible            bool
	DiscountType               types.EligibilityDiscountType
}

// New builds a VisitPlan, clamping every numeric field into the constraints'
// valid range. Negative values become 0, over-max values become the max,
// unknown venues are dropped, and an unrecognized discount type becomes none.
func New(params NewVisitPlanParams, cons catalog.Constraints) VisitPlan {
	adults := types.ClampInt(params.AdultCount, 0, cons.MaxAdults)

	ages := make([]int, 0, len(params.ChildAges))
	for _, age := range params.ChildAges {
		if len(ages) == cons.MaxChildren {
			break
		}
		ages = append(ages, types.ClampInt(age, 0, cons.MaxChildAge))
	}

	visits := make(map[types.Venue]int, len(params.VisitsByVenue))
	for _, venue := range types.Venues() {
		if count, ok := params.VisitsByVenue[venue]; ok {
			visits[venue] = types.ClampInt(count, 0, cons.MaxVisitsPerLocation)
		}
	}

	discountType := params.DiscountType
	if discountType == "" || discountType.Validate() != nil {
		discountType = types.EligibilityDiscountNone
	}

	return VisitPlan{
		AdultCount:                 adults,
		ChildAges:                  ages,
		VisitsByVenue:              visits,
		IsResidentDiscountEligible: params.IsResidentDiscountEligible,
		IncludeParking:             params.IncludeParking,
		SpecialPrograms: SpecialProgramFlags{
			WelcomeEligible: params.WelcomeEligible,
			DiscountType:    discountType,
		},
	}
}

// Visits returns the planned visit count for a venue, already clamped
func (p VisitPlan) Visits(venue types.Venue) int {
	return p.VisitsByVenue[venue]
}

// TotalVisits sums per-venue visits, capped at the reporting maximum.
// Cost computations intentionally sum per-venue capped visits without this
// cap; only reported totals are bounded by MaxTotalVisits.
func (p VisitPlan) TotalVisits(cons catalog.Constraints) int {
	total := 0
	for _, count := range p.VisitsByVenue {
		total += count
	}
	if total > cons.MaxTotalVisits {
		return cons.MaxTotalVisits
	}
	return total
}

// HasVisits reports whether any venue has at least one planned visit
func (p VisitPlan) HasVisits() bool {
	for _, count := range p.VisitsByVenue {
		if count > 0 {
			return true
		}
	}
	return false
}

// EligibleFamilySize is the headcount used to index membership price
// tables: adults plus children old enough to count as a person, capped at
// the combined adult+child maximum.
func (p VisitPlan) EligibleFamilySize(cons catalog.Constraints) int {
	size := p.AdultCount
	for _, age := range p.ChildAges {
		if age >= cons.ChildCountsAsPersonAge {
			size++
		}
	}
	if size > cons.MaxFamilySize() {
		return cons.MaxFamilySize()
	}
	return size
}

// TotalHeadcount is every person in the family regardless of age
func (p VisitPlan) TotalHeadcount() int {
	return p.AdultCount + len(p.ChildAges)
}

// EligibleChildren counts children who pay admission at a venue, i.e. those
// at or above the venue's free-age threshold
func (p VisitPlan) EligibleChildren(pricing catalog.VenuePricing) int {
	count := 0
	for _, age := range p.ChildAges {
		if age >= pricing.ChildFreeUnderAge {
			count++
		}
	}
	return count
}

// PrimaryVenue is the venue with the most planned visits. Ties resolve
// toward the science center via the fixed venue evaluation order.
func (p VisitPlan) PrimaryVenue() types.Venue {
	primary := types.VenueScienceCenter
	best := -1
	for _, venue := range types.Venues() {
		if count := p.VisitsByVenue[venue]; count > best {
			primary = venue
			best = count
		}
	}
	return primary
}

// Fingerprint returns a deterministic key for caching: identical plans
// always produce identical fingerprints.
func (p VisitPlan) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "a=%d", p.AdultCount)

	ages := make([]int, len(p.ChildAges))
	copy(ages, p.ChildAges)
	sort.Ints(ages)
	fmt.Fprintf(&b, "|c=%v", ages)

	for _, venue := range types.Venues() {
		fmt.Fprintf(&b, "|%s=%d", venue, p.VisitsByVenue[venue])
	}
	fmt.Fprintf(&b, "|r=%t|p=%t|w=%t|d=%s",
		p.IsResidentDiscountEligible,
		p.IncludeParking,
		p.SpecialPrograms.WelcomeEligible,
		p.SpecialPrograms.DiscountType,
	)
	return b.String()
}
