package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrTrackDeliveryQueryIsNotConstructed = errors.New(
	"TrackDeliveryQuery must be created via NewTrackDeliveryQuery constructor",
)

// TrackDeliveryQuery looks up one delivery by its public tracking identifier.
// This is the anonymous tracking view, so the response carries no owner or
// agent identifiers.
type TrackDeliveryQuery struct { //nolint:recvcheck //using for validation
	trackingID delivery.TrackingID

	guard guard.ConstructorGuard
}

// NewTrackDeliveryQuery creates a public tracking query.
func NewTrackDeliveryQuery(trackingID delivery.TrackingID) (TrackDeliveryQuery, error) {
	q := TrackDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setTrackingID(trackingID); err != nil {
		return TrackDeliveryQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrTrackDeliveryQueryIsNotConstructed)
}

// TrackingID returns the tracking identifier being looked up.
func (q TrackDeliveryQuery) TrackingID() delivery.TrackingID {
	return q.trackingID
}

func (q *TrackDeliveryQuery) setTrackingID(trackingID delivery.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}

	q.trackingID = trackingID
	return nil
}

// TrackDeliveryQueryResponse is the public view of a delivery's progress.
type TrackDeliveryQueryResponse struct {
	ID           kernel.UUID
	TrackingID   string
	Status       delivery.Status
	PickupText   string
	DropoffText  string
	DeliveryDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Timeline     []TrackDeliveryTimelineEntry
}

// TrackDeliveryTimelineEntry is one recorded status change, oldest first.
type TrackDeliveryTimelineEntry struct {
	Status     delivery.Status
	OccurredAt time.Time
}
