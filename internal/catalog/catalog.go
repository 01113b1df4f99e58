package catalog

import (
	"time"

	ierr "github.com/harborview/membership/internal/errors"
	"github.com/harborview/membership/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PartySizeTableLen is the number of entries in every membership price
// table. Index i prices a party of i+1 people; a zero amount is the
// "unavailable for this size" sentinel, never an actual price.
const PartySizeTableLen = 10

// VenuePricing holds regular admission pricing for one venue.
// ChildFreeUnderAge makes "free" a queryable fact: children younger than
// the threshold are admitted free and are excluded from every headcount.
type VenuePricing struct {
	Venue             types.Venue     `mapstructure:"venue"`
	AdultPrice        decimal.Decimal `mapstructure:"adult_price"`
	ChildPrice        decimal.Decimal `mapstructure:"child_price"`
	ChildFreeUnderAge int             `mapstructure:"child_free_under_age"`

	// Resident tier, only present for venues with a residency split
	ResidentAdultPrice *decimal.Decimal `mapstructure:"resident_adult_price"`
	ResidentChildPrice *decimal.Decimal `mapstructure:"resident_child_price"`
}

// HasResidentTier reports whether the venue prices residents separately
func (v VenuePricing) HasResidentTier() bool {
	return v.ResidentAdultPrice != nil && v.ResidentChildPrice != nil
}

// EffectiveAdultPrice returns the adult price honoring the resident tier
func (v VenuePricing) EffectiveAdultPrice(resident bool) decimal.Decimal {
	if resident && v.ResidentAdultPrice != nil {
		return *v.ResidentAdultPrice
	}
	return v.AdultPrice
}

// EffectiveChildPrice returns the child price honoring the resident tier
func (v VenuePricing) EffectiveChildPrice(resident bool) decimal.Decimal {
	if resident && v.ResidentChildPrice != nil {
		return *v.ResidentChildPrice
	}
	return v.ChildPrice
}

// GuestDiscountRow is one product's row in the guest-discount matrix:
// the fraction taken off guest admission at home venues vs everywhere else.
// Both zero means the product grants no guest discount at all.
type GuestDiscountRow struct {
	HomeRate decimal.Decimal `mapstructure:"home_rate"`
	AwayRate decimal.Decimal `mapstructure:"away_rate"`
}

// GuestDiscountLimits caps how many guests receive the discount per visit,
// declared per tier rather than hardcoded in the engine
type GuestDiscountLimits struct {
	HomeMuseumLimit   int `mapstructure:"home_museum_limit"`
	OtherMuseumsLimit int `mapstructure:"other_museums_limit"`
}

// MembershipProduct is one purchasable membership
type MembershipProduct struct {
	ID      types.ProductID `mapstructure:"id"`
	Label   string          `mapstructure:"label"`
	InfoURL string          `mapstructure:"info_url"`

	// PriceBySize indexes annual price by eligible party size 1..PartySizeTableLen.
	// Zero is the unavailable sentinel.
	PriceBySize []decimal.Decimal `mapstructure:"price_by_size"`

	// MinPartySize and MaxPartySize bound the availability predicate
	MinPartySize int `mapstructure:"min_party_size"`
	MaxPartySize int `mapstructure:"max_party_size"`

	// HomeVenues the product grants unlimited admission to
	HomeVenues []types.Venue `mapstructure:"home_venues"`

	GuestDiscount GuestDiscountRow `mapstructure:"guest_discount"`
}

// AvailableForSize is the availability predicate for a party size
func (p MembershipProduct) AvailableForSize(size int) bool {
	return size >= p.MinPartySize && size <= p.MaxPartySize
}

// IsHomeVenue reports whether the product grants unlimited admission at v
func (p MembershipProduct) IsHomeVenue(v types.Venue) bool {
	return lo.Contains(p.HomeVenues, v)
}

// GuestDiscountRateAt returns the guest discount fraction at a venue
func (p MembershipProduct) GuestDiscountRateAt(v types.Venue) decimal.Decimal {
	if p.IsHomeVenue(v) {
		return p.GuestDiscount.HomeRate
	}
	return p.GuestDiscount.AwayRate
}

// PriceForPartySize looks up the annual price for a party size. The second
// return is false when the size is out of range or marked unavailable.
func (p MembershipProduct) PriceForPartySize(size int) (decimal.Decimal, bool) {
	if size < 1 || size > len(p.PriceBySize) {
		return decimal.Zero, false
	}
	price := p.PriceBySize[size-1]
	if price.IsZero() {
		return decimal.Zero, false
	}
	return price, true
}

// LeadHomeVenue returns the venue that keys per-venue discount tables for
// this product. Multi-venue products are keyed by their first home venue.
func (p MembershipProduct) LeadHomeVenue() types.Venue {
	if len(p.HomeVenues) == 0 {
		return types.VenueScienceCenter
	}
	return p.HomeVenues[0]
}

// PromotionRules configures the multi-person promotional discount.
// Eligibility and rate are independent knobs: a zero rate pauses the
// discount without disabling the eligibility check.
type PromotionRules struct {
	MinFamilySize      int               `mapstructure:"min_family_size"`
	EligibleHomeVenues []types.Venue     `mapstructure:"eligible_home_venues"`
	ExcludedProducts   []types.ProductID `mapstructure:"excluded_products"`
	WindowStart        time.Time         `mapstructure:"window_start"`
	WindowEnd          time.Time         `mapstructure:"window_end"`
	Rate               decimal.Decimal   `mapstructure:"rate"`
}

// WindowActiveAt reports whether the promotion window covers t
func (p PromotionRules) WindowActiveAt(t time.Time) bool {
	return !t.Before(p.WindowStart) && !t.After(p.WindowEnd)
}

// WelcomeProgram is the means-tested fixed-price membership
type WelcomeProgram struct {
	Label   string `mapstructure:"label"`
	InfoURL string `mapstructure:"info_url"`

	// BasePrice is flat regardless of family size up to MaxHeadcount
	BasePrice    decimal.Decimal `mapstructure:"base_price"`
	MaxHeadcount int             `mapstructure:"max_headcount"`

	// CrossVenuePerPersonRate is the flat per-person per-visit admission
	// at venues other than the chosen primary venue
	CrossVenuePerPersonRate decimal.Decimal `mapstructure:"cross_venue_per_person_rate"`
}

// ParkingRates for the single venue that charges for parking
type ParkingRates struct {
	Venue        types.Venue     `mapstructure:"venue"`
	StandardRate decimal.Decimal `mapstructure:"standard_rate"`
	MemberRate   decimal.Decimal `mapstructure:"member_rate"`
}

// Constraints bound every numeric plan input. Out-of-range values are
// clamped to these, never rejected.
type Constraints struct {
	MaxAdults            int `mapstructure:"max_adults"`
	MaxChildren          int `mapstructure:"max_children"`
	MaxVisitsPerLocation int `mapstructure:"max_visits_per_location"`
	MaxTotalVisits       int `mapstructure:"max_total_visits"`

	// ChildCountsAsPersonAge is the age at which a child counts toward the
	// eligible family size used to index price tables
	ChildCountsAsPersonAge int `mapstructure:"child_counts_as_person_age"`
	MaxChildAge            int `mapstructure:"max_child_age"`

	SavingsPercentageCap int `mapstructure:"savings_percentage_cap"`
}

// MaxFamilySize caps the eligible family size used to index price tables
func (c Constraints) MaxFamilySize() int {
	return c.MaxAdults + c.MaxChildren
}

// PricingCatalog is the static pricing configuration the whole engine reads.
// It is an injected, immutable value: load once, never mutate, share freely
// across concurrent recommendation calls.
type PricingCatalog struct {
	Venues      map[types.Venue]VenuePricing         `mapstructure:"venues"`
	Products    map[types.ProductID]MembershipProduct `mapstructure:"products"`
	GuestLimits GuestDiscountLimits                  `mapstructure:"guest_limits"`
	Promotion   PromotionRules                       `mapstructure:"promotion"`
	Welcome     WelcomeProgram                       `mapstructure:"welcome"`
	Parking     ParkingRates                         `mapstructure:"parking"`

	// EligibilityDiscounts maps discount type -> product lead venue -> flat
	// dollar amount off the base price
	EligibilityDiscounts map[types.EligibilityDiscountType]map[types.Venue]decimal.Decimal `mapstructure:"eligibility_discounts"`

	Constraints Constraints `mapstructure:"constraints"`
}

// VenuePricing looks up a venue's admission pricing
func (c *PricingCatalog) VenuePricing(v types.Venue) (VenuePricing, error) {
	pricing, ok := c.Venues[v]
	if !ok {
		return VenuePricing{}, ierr.NewError("venue not found in catalog").
			WithHintf("No pricing configured for venue %s", v).
			Mark(ierr.ErrNotFound)
	}
	return pricing, nil
}

// Product looks up a membership product
func (c *PricingCatalog) Product(id types.ProductID) (MembershipProduct, error) {
	product, ok := c.Products[id]
	if !ok {
		return MembershipProduct{}, ierr.NewError("product not found in catalog").
			WithHintf("No membership product configured for id %s", id).
			Mark(ierr.ErrNotFound)
	}
	return product, nil
}

// GuestLimitAt returns the per-visit discounted-guest cap for a venue
// relative to a product's home venues
func (c *PricingCatalog) GuestLimitAt(p MembershipProduct, v types.Venue) int {
	if p.IsHomeVenue(v) {
		return c.GuestLimits.HomeMuseumLimit
	}
	return c.GuestLimits.OtherMuseumsLimit
}

// EligibilityDiscountAmount returns the flat discount for a discount type
// and product lead venue, zero when no entry exists
func (c *PricingCatalog) EligibilityDiscountAmount(dt types.EligibilityDiscountType, v types.Venue) decimal.Decimal {
	byVenue, ok := c.EligibilityDiscounts[dt]
	if !ok {
		return decimal.Zero
	}
	amount, ok := byVenue[v]
	if !ok {
		return decimal.Zero
	}
	return amount
}

// Validate checks the structural invariants every consumer relies on:
// complete price tables, known enum values, sane constraints.
func (c *PricingCatalog) Validate() error {
	if len(c.Venues) == 0 {
		return ierr.NewError("catalog has no venues").Mark(ierr.ErrValidation)
	}
	for _, v := range types.Venues() {
		if _, ok := c.Venues[v]; !ok {
			return ierr.NewError("catalog missing venue").
				WithHintf("Venue %s has no admission pricing", v).
				Mark(ierr.ErrValidation)
		}
	}
	for v, pricing := range c.Venues {
		if err := v.Validate(); err != nil {
			return err
		}
		if pricing.AdultPrice.IsNegative() || pricing.ChildPrice.IsNegative() {
			return ierr.NewError("negative admission price").
				WithHintf("Venue %s has a negative admission price", v).
				Mark(ierr.ErrValidation)
		}
	}

	for _, id := range types.MembershipProducts() {
		product, ok := c.Products[id]
		if !ok {
			return ierr.NewError("catalog missing product").
				WithHintf("Product %s has no price table", id).
				Mark(ierr.ErrValidation)
		}
		// Every table carries exactly one entry per supported party size so
		// lookups never index out of range. Unsupported sizes hold the zero
		// sentinel rather than being omitted.
		if len(product.PriceBySize) != PartySizeTableLen {
			return ierr.NewError("incomplete price table").
				WithHintf("Product %s must declare %d party-size entries", id, PartySizeTableLen).
				WithReportableDetails(map[string]any{
					"product": id,
					"entries": len(product.PriceBySize),
				}).
				Mark(ierr.ErrValidation)
		}
		if product.MinPartySize < 1 || product.MaxPartySize < product.MinPartySize {
			return ierr.NewError("invalid party size bounds").
				WithHintf("Product %s has inconsistent party size bounds", id).
				Mark(ierr.ErrValidation)
		}
		for _, home := range product.HomeVenues {
			if err := home.Validate(); err != nil {
				return err
			}
		}
	}

	if c.GuestLimits.HomeMuseumLimit < 0 || c.GuestLimits.OtherMuseumsLimit < 0 {
		return ierr.NewError("negative guest discount limit").Mark(ierr.ErrValidation)
	}

	if _, ok := c.Venues[c.Parking.Venue]; !ok {
		return ierr.NewError("parking venue not in catalog").
			WithHintf("Parking is configured for unknown venue %s", c.Parking.Venue).
			Mark(ierr.ErrValidation)
	}

	if c.Welcome.BasePrice.IsNegative() || c.Welcome.MaxHeadcount < 1 {
		return ierr.NewError("invalid welcome program configuration").Mark(ierr.ErrValidation)
	}

	cons := c.Constraints
	if cons.MaxAdults < 1 || cons.MaxChildren < 0 ||
		cons.MaxVisitsPerLocation < 1 || cons.MaxTotalVisits < 1 {
		return ierr.NewError("invalid constraints").Mark(ierr.ErrValidation)
	}
	if cons.MaxFamilySize() > PartySizeTableLen {
		return ierr.NewError("constraints exceed price table length").
			WithHintf("Max family size %d exceeds the %d-entry price tables",
				cons.MaxFamilySize(), PartySizeTableLen).
			Mark(ierr.ErrValidation)
	}

	return nil
}
