package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const (
	// AddressMinTextLength is the minimum number of characters an address text
	// must contain (after trimming) to be considered descriptive enough for a
	// delivery agent to act on.
	AddressMinTextLength = 10

	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax = 180.0
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
// Addresses must be created using the NewAddress constructor to ensure validity.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a validated pickup or drop-off location for a delivery.
// It combines the human-readable address text with the geocoordinates resolved
// for it upstream. Address is an immutable value object: both components are
// mandatory and validated at construction, and an Address never changes after
// the owning delivery is created (edits require cancel and recreate).
//
// Example:
//
//	addr, err := kernel.NewAddress("221B Baker Street, London", 51.5238, -0.1586)
//	if err != nil {
//	    // Handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	text      string
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

// NewAddress creates a new Address from its text and resolved coordinates.
// The text must be at least AddressMinTextLength characters after trimming,
// and both coordinates must fall within their valid geographic ranges.
// Geocoding happens upstream; an address without resolved coordinates is
// rejected here rather than deferred.
//
// Returns a validation error describing every violated rule if any input is invalid.
func NewAddress(text string, latitude float64, longitude float64) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setText(text),
		addr.setLatitude(latitude),
		addr.setLongitude(longitude),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks if the Address was properly constructed using the constructor.
// The zero value of Address is invalid and will fail this validation.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Text returns the human-readable address text.
func (a Address) Text() string {
	return a.text
}

// Latitude returns the resolved latitude in decimal degrees.
func (a Address) Latitude() float64 {
	return a.latitude
}

// Longitude returns the resolved longitude in decimal degrees.
func (a Address) Longitude() float64 {
	return a.longitude
}

// String returns a human-readable representation of the Address,
// combining the text with its coordinates. Implements fmt.Stringer.
func (a Address) String() string {
	return fmt.Sprintf("%s (%.6f,%.6f)", a.text, a.latitude, a.longitude)
}

// IsEqual compares two addresses for equality.
// Two addresses are equal if their text and coordinates all match.
// Both addresses must be properly constructed for the comparison to succeed.
func (a Address) IsEqual(other Address) (bool, error) {
	if err := errors.Join(a.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return a.text == other.text &&
		a.latitude == other.latitude &&
		a.longitude == other.longitude, nil
}

// setText sets the address text with validation.
// Note: We intentionally use a pointer receiver here while other methods use value
// receivers, to enable self-encapsulated validation during object construction.
func (a *Address) setText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("address text")
	}
	if len(trimmed) < AddressMinTextLength {
		return errs.NewValueIsInvalidErrorWithCause("address text",
			fmt.Errorf("%q is shorter than %d characters", trimmed, AddressMinTextLength))
	}

	a.text = trimmed
	return nil
}

// setLatitude sets the latitude with range validation.
func (a *Address) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	a.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (a *Address) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	a.longitude = longitude
	return nil
}
