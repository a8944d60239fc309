package delivery

import (
	"errors"
	"fmt"

	"parceltrack/internal/pkg/errs"
)

var (
	// ErrIllegalTransition is returned when a target status is not a legal
	// successor of the current status in the lifecycle graph.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrDeliveryAlreadyFinal is returned when attempting to mutate a delivery
	// that has reached a terminal status (Delivered or Cancelled).
	ErrDeliveryAlreadyFinal = errors.New("delivery is already in a terminal status")
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with an explicit successor table to ensure
// deliveries follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │            │            │            │
//	   └────────────┴────────────┴────────────┴──> Cancelled
//
// The happy path is strictly linear; no intermediate state may be skipped.
// Cancelled is reachable from every non-terminal state. Delivered and
// Cancelled are terminal: no further transitions are permitted.
//
// The Pending -> Assigned edge is special: it is only ever taken through the
// atomic assignment primitive (claim/assign), never through a plain status
// transition request.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created delivery.
	// Deliveries in this status are waiting to be claimed or assigned.
	Pending

	// Assigned indicates the delivery has been bound to exactly one agent.
	Assigned

	// PickedUp indicates the assigned agent has collected the parcel.
	PickedUp

	// InTransit indicates the parcel is on its way to the drop-off address.
	InTransit

	// Delivered indicates the parcel reached its destination. Terminal.
	Delivered

	// Cancelled indicates the delivery was aborted before completion. Terminal.
	// A delivery cancelled after assignment keeps its agent reference for audit.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getStatusSuccessors returns the legal-successor table of the lifecycle graph.
// Terminal statuses have no successors.
func getStatusSuccessors() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses a wire representation ("pending", "picked_up", ...)
// into a Status. Returns an error for unknown values, including "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the closed set of valid statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is a legal successor of the current
// status per the lifecycle graph. Re-entering the same status is never legal.
func (s Status) CanTransitionTo(target Status) bool {
	for _, successor := range getStatusSuccessors()[s] {
		if successor == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition to the target status.
//
// Returns:
//   - (target, nil) when target is a legal successor of the current status
//   - (0, ErrDeliveryAlreadyFinal) when the current status is terminal
//   - (0, ErrIllegalTransition) when target is not a legal successor
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := errors.Join(s.Validate(), target.Validate()); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: status is %s", ErrDeliveryAlreadyFinal, s)
	}

	if !s.CanTransitionTo(target) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, target)
	}

	return target, nil
}

// ValidateCanHaveAgent validates the consistency between delivery status and
// agent assignment.
//
// Business rules:
//   - Pending deliveries must not have an agent assigned
//   - Assigned, PickedUp, InTransit and Delivered deliveries must have an agent
//   - Cancelled deliveries may or may not have an agent, depending on whether
//     cancellation happened before or after assignment
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if hasAgent && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have an agent", s))
	}

	if !hasAgent && (s == Assigned || s == PickedUp || s == InTransit || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no agent", s))
	}

	return nil
}
