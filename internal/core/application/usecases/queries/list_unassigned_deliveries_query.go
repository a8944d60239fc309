// Package queries contains read-only operations over the delivery store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the domain
// aggregates and the unit of work.
package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrListUnassignedDeliveriesQueryIsNotConstructed = errors.New(
	"ListUnassignedDeliveriesQuery must be created via NewListUnassignedDeliveriesQuery constructor",
)

// ListUnassignedDeliveriesQuery retrieves all pending deliveries waiting for
// an agent, newest first. This is the feed agents browse to claim work.
type ListUnassignedDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewListUnassignedDeliveriesQuery creates a query for the unassigned feed.
func NewListUnassignedDeliveriesQuery() ListUnassignedDeliveriesQuery {
	return ListUnassignedDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListUnassignedDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListUnassignedDeliveriesQueryIsNotConstructed)
}

// ListUnassignedDeliveriesQueryResponse represents one pending delivery in
// the claimable feed.
type ListUnassignedDeliveriesQueryResponse struct {
	ID                kernel.UUID
	TrackingID        string
	PickupText        string
	DropoffText       string
	ParcelDescription string
	DeliveryDate      time.Time
	PriceAmount       int64
	CreatedAt         time.Time
}
