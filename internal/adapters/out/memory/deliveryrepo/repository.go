// Package deliveryrepo provides an in-memory implementation of the delivery
// repository. It mirrors the precondition semantics of the PostgreSQL
// adapter (guarded updates, unique tracking identifiers, single-winner
// assignment) behind a mutex, which makes it suitable for tests and for
// running the service without a database.
package deliveryrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// Store is the shared in-memory state behind the repository instances.
// All repositories created from the same Store observe the same deliveries.
// Store is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	deliveries  map[kernel.UUID]*delivery.Delivery
	trackingIDs map[string]kernel.UUID
}

// NewStore creates an empty in-memory delivery store.
func NewStore() *Store {
	return &Store{
		deliveries:  make(map[kernel.UUID]*delivery.Delivery),
		trackingIDs: make(map[string]kernel.UUID),
	}
}

// InMemoryDeliveryRepository implements DeliveryRepository on top of a Store.
//
// Unlike the PostgreSQL adapter there is no transaction: every write is
// applied immediately under the store mutex. The same mutex serializes the
// precondition check and the write, so the guarded-update semantics hold.
type InMemoryDeliveryRepository struct {
	store *Store
}

// NewInMemoryDeliveryRepository creates a repository bound to the given store.
func NewInMemoryDeliveryRepository(store *Store) *InMemoryDeliveryRepository {
	return &InMemoryDeliveryRepository{store: store}
}

// Add stores a new delivery. Fails with an ObjectAlreadyExistsError when the
// tracking identifier is already taken.
func (r *InMemoryDeliveryRepository) Add(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.deliveries[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("delivery", aggregate.ID().String(), nil)
	}

	trackingID := aggregate.TrackingID().String()
	if _, ok := r.store.trackingIDs[trackingID]; ok {
		return errs.NewObjectAlreadyExistsError("trackingId", trackingID, nil)
	}

	snapshot, err := clone(aggregate)
	if err != nil {
		return err
	}

	r.store.deliveries[aggregate.ID()] = snapshot
	r.store.trackingIDs[trackingID] = aggregate.ID()
	return nil
}

// Update stores a status transition, guarded on the status the aggregate was
// loaded with.
func (r *InMemoryDeliveryRepository) Update(
	_ context.Context,
	aggregate *delivery.Delivery,
	loadedStatus delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.deliveries[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	if stored.Status() != loadedStatus {
		return errs.NewConcurrentConflictError("delivery", aggregate.ID().String())
	}

	snapshot, err := clone(aggregate)
	if err != nil {
		return err
	}

	r.store.deliveries[aggregate.ID()] = snapshot
	return nil
}

// AssignIfPending stores an assignment if and only if the stored delivery is
// still pending and unassigned. Exactly one concurrent caller succeeds.
func (r *InMemoryDeliveryRepository) AssignIfPending(
	_ context.Context,
	aggregate *delivery.Delivery,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.deliveries[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	if stored.Status() != delivery.Pending || stored.AssignedAgentID() != nil {
		return errs.NewAlreadyAssignedError(aggregate.ID().String())
	}

	snapshot, err := clone(aggregate)
	if err != nil {
		return err
	}

	r.store.deliveries[aggregate.ID()] = snapshot
	return nil
}

// Get retrieves a delivery by ID.
func (r *InMemoryDeliveryRepository) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.deliveries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}

	return clone(stored)
}

// GetByTrackingID retrieves a delivery by its public tracking identifier.
func (r *InMemoryDeliveryRepository) GetByTrackingID(
	_ context.Context,
	trackingID delivery.TrackingID,
) (*delivery.Delivery, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id, ok := r.store.trackingIDs[trackingID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
	}

	return clone(r.store.deliveries[id])
}

// FindStalePending retrieves all deliveries still waiting for an agent that
// were created before the given instant, oldest first.
func (r *InMemoryDeliveryRepository) FindStalePending(
	_ context.Context,
	before time.Time,
) ([]*delivery.Delivery, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stale := make([]*delivery.Delivery, 0)
	for _, stored := range r.store.deliveries {
		if stored.Status() != delivery.Pending || stored.AssignedAgentID() != nil {
			continue
		}
		if !stored.CreatedAt().Before(before) {
			continue
		}

		snapshot, err := clone(stored)
		if err != nil {
			return nil, err
		}
		stale = append(stale, snapshot)
	}

	sort.Slice(stale, func(i, j int) bool {
		return stale[i].CreatedAt().Before(stale[j].CreatedAt())
	})

	return stale, nil
}

// clone produces an independent copy of the aggregate so stored state never
// aliases a caller's mutable instance.
func clone(aggregate *delivery.Delivery) (*delivery.Delivery, error) {
	return delivery.RestoreDelivery(
		aggregate.ID(),
		aggregate.TrackingID(),
		aggregate.OwnerID(),
		aggregate.Pickup(),
		aggregate.Dropoff(),
		aggregate.ParcelDescription(),
		aggregate.ContactNumber(),
		aggregate.DeliveryDate(),
		aggregate.PriceAmount(),
		aggregate.AssignedAgentID(),
		aggregate.Status(),
		aggregate.History(),
		aggregate.CreatedAt(),
		aggregate.UpdatedAt(),
		aggregate.AssignedAt(),
	)
}
