// Package ports defines the repository and outbound service interfaces for
// the delivery domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
//
// Writes after creation are conditional: Update and AssignIfPending verify at
// the store that the row is still in the state the caller loaded it in, and
// fail without modifying anything when a concurrent writer got there first.
// This makes the repository the arbiter of write races; the aggregate only
// enforces the business rules on the state it was loaded with.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate together with its initial
	// history entry. Fails with an ObjectAlreadyExistsError when the tracking
	// identifier is already taken, so the caller can regenerate and retry.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists a status transition, guarded on the status the
	// aggregate was loaded with. The newly appended history entry is
	// stored in the same transaction. Returns a ConcurrentConflictError
	// when the stored status no longer matches loadedStatus.
	Update(ctx context.Context, aggregate *delivery.Delivery, loadedStatus delivery.Status) error

	// AssignIfPending persists an assignment if and only if the stored row
	// is still Pending and unassigned. Exactly one concurrent caller can
	// succeed; all others receive an AlreadyAssignedError and the row is
	// left untouched for them.
	AssignIfPending(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier,
	// including its full status history.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByTrackingID retrieves a delivery aggregate by its public
	// tracking identifier, including its full status history.
	GetByTrackingID(ctx context.Context, trackingID delivery.TrackingID) (*delivery.Delivery, error)

	// FindStalePending retrieves all deliveries that are still Pending and
	// unassigned and were created before the given instant, oldest first.
	FindStalePending(ctx context.Context, before time.Time) ([]*delivery.Delivery, error)
}
