package delivery

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const (
	trackingIDPrefix        = "TRK"
	trackingIDPayloadLength = 6
	trackingIDSuffixModulo  = 100000
)

// trackingIDAlphabet excludes nothing: tracking IDs are read back by machines
// (lookup is exact-match), so visually ambiguous characters are acceptable.
const trackingIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var trackingIDPattern = regexp.MustCompile(`^TRK-[A-Z0-9]{6}-\d{5}$`)

// ErrTrackingIDIsNotConstructed is returned when validating a zero-value TrackingID.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingID must be created via GenerateTrackingID or TrackingIDFromString")

// TrackingID is the public, human-readable identifier of a delivery, in the
// form "TRK-XXXXXX-NNNNN": a fixed prefix, a random alphanumeric payload, and
// a time-derived numeric suffix. It is assigned once at creation, immutable,
// and globally unique (the store enforces uniqueness; callers regenerate on
// the negligible chance of a collision).
type TrackingID struct {
	value string

	guard guard.ConstructorGuard
}

// GenerateTrackingID produces a new tracking identifier. Collision resistance
// comes from the payload, drawn from a cryptographically secure source; the
// time-derived suffix is cosmetic and repeats. The store's unique index is the
// actual uniqueness guarantee, with callers regenerating on a collision.
func GenerateTrackingID() (TrackingID, error) {
	payload := make([]byte, trackingIDPayloadLength)
	if _, err := rand.Read(payload); err != nil {
		return TrackingID{}, fmt.Errorf("reading random payload: %w", err)
	}
	for i, b := range payload {
		payload[i] = trackingIDAlphabet[int(b)%len(trackingIDAlphabet)]
	}

	suffix := time.Now().Unix() % trackingIDSuffixModulo

	return TrackingID{
		value: fmt.Sprintf("%s-%s-%05d", trackingIDPrefix, payload, suffix),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// TrackingIDFromString parses and validates a tracking identifier from its
// string form. Used when reconstructing deliveries from persistence and when
// handling public tracking lookups.
func TrackingIDFromString(s string) (TrackingID, error) {
	if !trackingIDPattern.MatchString(s) {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId",
			fmt.Errorf("%q does not match the TRK-XXXXXX-NNNNN format", s))
	}

	return TrackingID{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the TrackingID was created through a constructor.
func (t TrackingID) Validate() error {
	return t.guard.Validate(ErrTrackingIDIsNotConstructed)
}

// String returns the tracking identifier in its wire form. Implements fmt.Stringer.
func (t TrackingID) String() string {
	return t.value
}

// IsEqual compares two tracking identifiers for equality.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}
