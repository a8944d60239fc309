package delivery

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// HistoryEntry is a single record in a delivery's append-only status timeline.
// Every successful transition appends exactly one entry; entries are never
// mutated or reordered. The last entry always mirrors the delivery's current
// status.
type HistoryEntry struct {
	status     Status
	occurredAt time.Time
	actorID    kernel.UUID
}

// NewHistoryEntry creates a validated history entry.
// The actor is whoever caused the transition: the owner at creation,
// the winning agent or the admin at assignment, and so on.
func NewHistoryEntry(status Status, occurredAt time.Time, actorID kernel.UUID) (HistoryEntry, error) {
	if err := errors.Join(status.Validate(), actorID.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return HistoryEntry{
		status:     status,
		occurredAt: occurredAt.UTC(),
		actorID:    actorID,
	}, nil
}

// Status returns the status recorded by this entry.
func (e HistoryEntry) Status() Status {
	return e.status
}

// OccurredAt returns the UTC timestamp of the transition.
func (e HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// ActorID returns the identifier of the actor who caused the transition.
func (e HistoryEntry) ActorID() kernel.UUID {
	return e.actorID
}
