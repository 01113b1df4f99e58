package catalog

import (
	"time"

	"github.com/harborview/membership/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func table(amounts ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		out[i] = d(a)
	}
	return out
}

// Default returns the built-in pricing catalog for the current season.
// Deployments override it with a catalog file, see Load.
func Default() *PricingCatalog {
	return &PricingCatalog{
		Venues: map[types.Venue]VenuePricing{
			types.VenueScienceCenter: {
				Venue:              types.VenueScienceCenter,
				AdultPrice:         d("19.95"),
				ChildPrice:         d("14.95"),
				ChildFreeUnderAge:  3,
				ResidentAdultPrice: lo.ToPtr(d("15.95")),
				ResidentChildPrice: lo.ToPtr(d("11.95")),
			},
			types.VenueAviationMuseum: {
				Venue:             types.VenueAviationMuseum,
				AdultPrice:        d("16.00"),
				ChildPrice:        d("11.00"),
				ChildFreeUnderAge: 5,
			},
			types.VenueChildrensMuseum: {
				Venue:             types.VenueChildrensMuseum,
				AdultPrice:        d("12.50"),
				ChildPrice:        d("12.50"),
				ChildFreeUnderAge: 1,
			},
		},
		Products: map[types.ProductID]MembershipProduct{
			types.ProductScienceSingle: {
				ID:           types.ProductScienceSingle,
				Label:        "Science Center Individual",
				InfoURL:      "https://harborviewsciencecenter.org/membership/individual",
				PriceBySize:  table("89", "0", "0", "0", "0", "0", "0", "0", "0", "0"),
				MinPartySize: 1,
				MaxPartySize: 1,
				HomeVenues:   []types.Venue{types.VenueScienceCenter},
				// The individual membership grants no guest discount anywhere
				GuestDiscount: GuestDiscountRow{},
			},
			types.ProductScienceFamily: {
				ID:      types.ProductScienceFamily,
				Label:   "Science Center Family",
				InfoURL: "https://harborviewsciencecenter.org/membership/family",
				PriceBySize: table(
					"109", "139", "169", "199", "229",
					"259", "289", "319", "349", "379"),
				MinPartySize: 1,
				MaxPartySize: PartySizeTableLen,
				HomeVenues:   []types.Venue{types.VenueScienceCenter},
				GuestDiscount: GuestDiscountRow{
					HomeRate: d("0.5"),
					AwayRate: d("0.25"),
				},
			},
			types.ProductAviation: {
				ID:      types.ProductAviation,
				Label:   "Aviation Museum Household",
				InfoURL: "https://northgateaviation.org/join",
				// No 1-person tier; lone adults are priced at the 2-person tier
				PriceBySize: table(
					"0", "95", "115", "135", "155",
					"175", "195", "215", "235", "255"),
				MinPartySize: 1,
				MaxPartySize: PartySizeTableLen,
				HomeVenues:   []types.Venue{types.VenueAviationMuseum},
				GuestDiscount: GuestDiscountRow{
					HomeRate: d("0.5"),
					AwayRate: d("0.25"),
				},
			},
			types.ProductChildrens: {
				ID:      types.ProductChildrens,
				Label:   "Children's Museum Household",
				InfoURL: "https://eastpointchildrens.org/membership",
				PriceBySize: table(
					"0", "85", "105", "125", "145",
					"165", "185", "205", "225", "245"),
				MinPartySize: 1,
				MaxPartySize: PartySizeTableLen,
				HomeVenues:   []types.Venue{types.VenueChildrensMuseum},
				GuestDiscount: GuestDiscountRow{
					HomeRate: d("0.5"),
					AwayRate: d("0.25"),
				},
			},
			types.ProductAllAccess: {
				ID:      types.ProductAllAccess,
				Label:   "All-Access Network Membership",
				InfoURL: "https://harborviewsciencecenter.org/membership/all-access",
				PriceBySize: table(
					"0", "189", "224", "259", "294",
					"329", "364", "399", "434", "469"),
				MinPartySize: 2,
				MaxPartySize: PartySizeTableLen,
				HomeVenues: []types.Venue{
					types.VenueScienceCenter,
					types.VenueAviationMuseum,
					types.VenueChildrensMuseum,
				},
				GuestDiscount: GuestDiscountRow{
					HomeRate: d("0.5"),
					AwayRate: d("0.25"),
				},
			},
		},
		GuestLimits: GuestDiscountLimits{
			HomeMuseumLimit:   6,
			OtherMuseumsLimit: 4,
		},
		Promotion: PromotionRules{
			MinFamilySize: 3,
			EligibleHomeVenues: []types.Venue{
				types.VenueScienceCenter,
				types.VenueAviationMuseum,
			},
			// The children's museum runs its own pricing and never
			// participates in the network promotion
			ExcludedProducts: []types.ProductID{types.ProductChildrens},
			WindowStart:      time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			WindowEnd:        time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
			Rate:             d("0.10"),
		},
		Welcome: WelcomeProgram{
			Label:                   "Welcome Program",
			InfoURL:                 "https://harborviewsciencecenter.org/welcome-program",
			BasePrice:               d("30"),
			MaxHeadcount:            8,
			CrossVenuePerPersonRate: d("3"),
		},
		Parking: ParkingRates{
			Venue:        types.VenueScienceCenter,
			StandardRate: d("10"),
			MemberRate:   d("5"),
		},
		EligibilityDiscounts: map[types.EligibilityDiscountType]map[types.Venue]decimal.Decimal{
			types.EligibilityDiscountEducator: {
				types.VenueScienceCenter:   d("15"),
				types.VenueAviationMuseum:  d("10"),
				types.VenueChildrensMuseum: d("10"),
			},
			types.EligibilityDiscountMilitary: {
				types.VenueScienceCenter:   d("10"),
				types.VenueAviationMuseum:  d("10"),
				types.VenueChildrensMuseum: d("25"),
			},
		},
		Constraints: Constraints{
			MaxAdults:              4,
			MaxChildren:            6,
			MaxVisitsPerLocation:   20,
			MaxTotalVisits:         50,
			ChildCountsAsPersonAge: 2,
			MaxChildAge:            17,
			SavingsPercentageCap:   90,
		},
	}
}
