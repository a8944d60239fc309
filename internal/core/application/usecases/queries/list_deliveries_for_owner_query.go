package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrListDeliveriesForOwnerQueryIsNotConstructed = errors.New(
	"ListDeliveriesForOwnerQuery must be created via NewListDeliveriesForOwnerQuery constructor",
)

// ListDeliveriesForOwnerQuery retrieves all deliveries requested by one user,
// newest first.
type ListDeliveriesForOwnerQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListDeliveriesForOwnerQuery creates a query for an owner's deliveries.
func NewListDeliveriesForOwnerQuery(ownerID kernel.UUID) (ListDeliveriesForOwnerQuery, error) {
	q := ListDeliveriesForOwnerQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOwnerID(ownerID); err != nil {
		return ListDeliveriesForOwnerQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveriesForOwnerQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesForOwnerQueryIsNotConstructed)
}

// OwnerID returns the identifier of the requesting user.
func (q ListDeliveriesForOwnerQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

func (q *ListDeliveriesForOwnerQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	q.ownerID = ownerID
	return nil
}

// ListDeliveriesForOwnerQueryResponse represents one delivery of an owner.
type ListDeliveriesForOwnerQueryResponse struct {
	ID              kernel.UUID
	TrackingID      string
	Status          delivery.Status
	DropoffText     string
	AssignedAgentID *kernel.UUID
	DeliveryDate    time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
