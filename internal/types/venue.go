package types

import (
	ierr "github.com/harborview/membership/internal/errors"
	"github.com/samber/lo"
)

// Venue identifies one of the physical locations in the network
type Venue string

const (
	// VenueScienceCenter is the primary venue. It is the only venue with
	// paid parking and a resident admission tier.
	VenueScienceCenter Venue = "science_center"

	VenueAviationMuseum  Venue = "aviation_museum"
	VenueChildrensMuseum Venue = "childrens_museum"
)

// Venues returns all venues in evaluation order. The science center comes
// first so that visit-count ties resolve toward it when picking the
// family's primary venue.
func Venues() []Venue {
	return []Venue{
		VenueScienceCenter,
		VenueAviationMuseum,
		VenueChildrensMuseum,
	}
}

func (v Venue) String() string {
	return string(v)
}

func (v Venue) Validate() error {
	if !lo.Contains(Venues(), v) {
		return ierr.NewError("invalid venue").
			WithHint("Unknown venue").
			WithReportableDetails(map[string]any{
				"allowed_values": Venues(),
				"provided_value": v,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
