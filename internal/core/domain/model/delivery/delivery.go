package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created
// through the NewDelivery or RestoreDelivery factory methods. This ensures all
// deliveries are properly validated.
var ErrDeliveryIsNotConstructed = errors.New(
	"Delivery must be created via NewDelivery or RestoreDelivery constructor")

// Delivery represents one parcel shipment tracked from creation to a terminal
// state. It is the aggregate root that owns the lifecycle state machine, the
// single-assignment invariant, and the append-only status history.
//
// Delivery maintains these invariants:
//   - An agent is assigned if and only if the status requires one
//     (a post-assignment cancellation keeps the agent reference for audit)
//   - The status history has at least one entry and its last entry always
//     mirrors the current status
//   - Once a terminal status (Delivered, Cancelled) is reached, no further
//     transition is permitted
//   - The agent reference is flipped from nil to non-nil exactly once, only
//     through Assign
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through validated methods. The atomicity of concurrent mutations is the
// repository's responsibility (conditional updates); the aggregate enforces
// the business rules on the state it was loaded with.
type Delivery struct {
	id                kernel.UUID
	trackingID        TrackingID
	ownerID           kernel.UUID
	pickup            kernel.Address
	dropoff           kernel.Address
	parcelDescription string
	contactNumber     string
	deliveryDate      time.Time
	priceAmount       int64
	assignedAgentID   *kernel.UUID
	status            Status
	history           []HistoryEntry
	createdAt         time.Time
	updatedAt         time.Time
	assignedAt        *time.Time

	isConstructed bool
}

// NewDelivery creates a new Delivery in Pending status with a single-entry
// status history attributed to the owner. The tracking identifier is generated
// by the caller so that a storage-level uniqueness conflict can be retried
// with a fresh identifier.
//
// All inputs are validated; violations are joined into a single error.
func NewDelivery(
	id kernel.UUID,
	trackingID TrackingID,
	ownerID kernel.UUID,
	pickup kernel.Address,
	dropoff kernel.Address,
	parcelDescription string,
	contactNumber string,
	deliveryDate time.Time,
	priceAmount int64,
) (*Delivery, error) {
	d := &Delivery{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setTrackingID(trackingID),
		d.setOwnerID(ownerID),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setParcelDescription(parcelDescription),
		d.setContactNumber(contactNumber),
		d.setDeliveryDate(deliveryDate),
		d.setPriceAmount(priceAmount),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d.createdAt = now
	d.updatedAt = now

	entry, err := NewHistoryEntry(Pending, now, ownerID)
	if err != nil {
		return nil, err
	}
	d.history = []HistoryEntry{entry}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
// Unlike NewDelivery it accepts the full persisted state, then verifies the
// cross-field invariants: status/agent consistency and history integrity
// (non-empty, last entry matching the current status). Data that violates
// these invariants is rejected rather than silently repaired.
func RestoreDelivery(
	id kernel.UUID,
	trackingID TrackingID,
	ownerID kernel.UUID,
	pickup kernel.Address,
	dropoff kernel.Address,
	parcelDescription string,
	contactNumber string,
	deliveryDate time.Time,
	priceAmount int64,
	assignedAgentID *kernel.UUID,
	status Status,
	history []HistoryEntry,
	createdAt time.Time,
	updatedAt time.Time,
	assignedAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setTrackingID(trackingID),
		d.setOwnerID(ownerID),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setParcelDescription(parcelDescription),
		d.setContactNumber(contactNumber),
		d.setDeliveryDate(deliveryDate),
		d.setPriceAmount(priceAmount),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveAgent(assignedAgentID != nil); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("last history entry is %s but current status is %s", last, status))
	}

	if createdAt.IsZero() || updatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("timestamps")
	}

	d.status = status
	d.assignedAgentID = assignedAgentID
	d.history = append([]HistoryEntry(nil), history...)
	d.createdAt = createdAt.UTC()
	d.updatedAt = updatedAt.UTC()
	if assignedAt != nil {
		at := assignedAt.UTC()
		d.assignedAt = &at
	}

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// TrackingID returns the public tracking identifier.
func (d *Delivery) TrackingID() TrackingID {
	return d.trackingID
}

// OwnerID returns the identifier of the user who requested the delivery.
func (d *Delivery) OwnerID() kernel.UUID {
	return d.ownerID
}

// Pickup returns the pickup address.
func (d *Delivery) Pickup() kernel.Address {
	return d.pickup
}

// Dropoff returns the drop-off address.
func (d *Delivery) Dropoff() kernel.Address {
	return d.dropoff
}

// ParcelDescription returns the free-form description of the parcel contents.
func (d *Delivery) ParcelDescription() string {
	return d.parcelDescription
}

// ContactNumber returns the phone number to reach the recipient.
func (d *Delivery) ContactNumber() string {
	return d.contactNumber
}

// DeliveryDate returns the requested delivery date.
func (d *Delivery) DeliveryDate() time.Time {
	return d.deliveryDate
}

// PriceAmount returns the quoted price in minor currency units.
func (d *Delivery) PriceAmount() int64 {
	return d.priceAmount
}

// AssignedAgentID returns the identifier of the assigned agent,
// or nil if the delivery is unassigned.
func (d *Delivery) AssignedAgentID() *kernel.UUID {
	return d.assignedAgentID
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// History returns a copy of the append-only status history, oldest first.
func (d *Delivery) History() []HistoryEntry {
	return append([]HistoryEntry(nil), d.history...)
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// AssignedAt returns the timestamp of the successful assignment,
// or nil if the delivery was never assigned.
func (d *Delivery) AssignedAt() *time.Time {
	return d.assignedAt
}

// LastHistoryEntry returns the most recent history entry.
func (d *Delivery) LastHistoryEntry() HistoryEntry {
	return d.history[len(d.history)-1]
}

// Assign binds the delivery to an agent and moves it to Assigned status.
//
// This is the only method that flips the agent reference from nil to non-nil.
// It requires the delivery to be Pending and unassigned; any other state
// yields an AlreadyAssignedError and leaves the aggregate untouched. The
// repository re-checks the same precondition at write time, so a stale
// in-memory copy can pass here and still lose the race at the store.
//
// The recordedBy actor is whoever initiated the binding: the claiming agent
// itself, or the admin who picked the agent.
func (d *Delivery) Assign(agentID kernel.UUID, recordedBy kernel.UUID) error {
	if err := errors.Join(agentID.Validate(), recordedBy.Validate()); err != nil {
		return err
	}

	if d.status != Pending || d.assignedAgentID != nil {
		return errs.NewAlreadyAssignedError(d.id.String())
	}

	now := time.Now().UTC()
	entry, err := NewHistoryEntry(Assigned, now, recordedBy)
	if err != nil {
		return err
	}

	d.status = Assigned
	d.assignedAgentID = &agentID
	d.assignedAt = &now
	d.updatedAt = now
	d.history = append(d.history, entry)
	return nil
}

// TransitionTo advances the delivery to the target status on behalf of an actor.
//
// The actor must be authorized for the requested transition:
//   - the owner may only cancel their own delivery
//   - the assigned agent may advance the happy path and cancel their own assignment
//   - an admin may perform any legal transition
//
// The target must be a legal successor of the current status; the Assigned
// target is rejected outright because assignment must go through Assign.
// On success exactly one history entry is appended.
func (d *Delivery) TransitionTo(target Status, actor Actor) error {
	if err := errors.Join(d.Validate(), actor.Validate(), target.Validate()); err != nil {
		return err
	}

	if target == Assigned {
		return fmt.Errorf("%w: assignment must go through claim or assign", ErrIllegalTransition)
	}

	if err := d.authorizeTransition(actor, target); err != nil {
		return err
	}

	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	entry, err := NewHistoryEntry(newStatus, now, actor.ID())
	if err != nil {
		return err
	}

	d.status = newStatus
	d.updatedAt = now
	d.history = append(d.history, entry)
	return nil
}

// Cancel aborts the delivery on behalf of an actor.
// It is a convenience over TransitionTo(Cancelled) with an explicit terminal
// check so callers receive ErrDeliveryAlreadyFinal rather than a generic
// transition failure.
func (d *Delivery) Cancel(actor Actor) error {
	if err := errors.Join(d.Validate(), actor.Validate()); err != nil {
		return err
	}

	if d.status.IsTerminal() {
		return fmt.Errorf("%w: status is %s", ErrDeliveryAlreadyFinal, d.status)
	}

	return d.TransitionTo(Cancelled, actor)
}

// authorizeTransition checks role and ownership rules for the requested transition.
func (d *Delivery) authorizeTransition(actor Actor, target Status) error {
	switch actor.Role() {
	case RoleAdmin:
		return nil
	case RoleOwner:
		if !actor.ID().IsEqual(d.ownerID) {
			return fmt.Errorf("%w: %s does not own this delivery", ErrActorForbidden, actor)
		}
		if target != Cancelled {
			return fmt.Errorf("%w: owners may only cancel", ErrActorForbidden)
		}
		return nil
	case RoleAgent:
		if d.assignedAgentID == nil || !actor.ID().IsEqual(*d.assignedAgentID) {
			return fmt.Errorf("%w: %s is not the assigned agent", ErrActorForbidden, actor)
		}
		return nil
	default:
		return fmt.Errorf("%w: unrecognized role", ErrActorForbidden)
	}
}

// setID validates and sets the delivery's unique identifier.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setTrackingID validates and sets the public tracking identifier.
func (d *Delivery) setTrackingID(trackingID TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	d.trackingID = trackingID
	return nil
}

// setOwnerID validates and sets the owning user's identifier.
func (d *Delivery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	d.ownerID = ownerID
	return nil
}

// setPickup validates and sets the pickup address.
func (d *Delivery) setPickup(pickup kernel.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	d.pickup = pickup
	return nil
}

// setDropoff validates and sets the drop-off address.
func (d *Delivery) setDropoff(dropoff kernel.Address) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	d.dropoff = dropoff
	return nil
}

// setParcelDescription validates and sets the parcel description.
func (d *Delivery) setParcelDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("parcelDescription")
	}
	d.parcelDescription = trimmed
	return nil
}

// setContactNumber validates and sets the recipient contact number.
func (d *Delivery) setContactNumber(contactNumber string) error {
	trimmed := strings.TrimSpace(contactNumber)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("contactNumber")
	}
	d.contactNumber = trimmed
	return nil
}

// setDeliveryDate validates and sets the requested delivery date.
func (d *Delivery) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}
	d.deliveryDate = deliveryDate.UTC()
	return nil
}

// setPriceAmount validates and sets the quoted price in minor units.
func (d *Delivery) setPriceAmount(priceAmount int64) error {
	if priceAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priceAmount",
			fmt.Errorf("%d is negative", priceAmount))
	}
	d.priceAmount = priceAmount
	return nil
}
