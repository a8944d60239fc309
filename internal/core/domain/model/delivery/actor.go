package delivery

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrActorForbidden is returned when an authenticated actor lacks the role or
// ownership required for the requested operation.
var ErrActorForbidden = errors.New("actor is not allowed to perform this operation")

// ErrActorIsNotConstructed is returned when validating a zero-value Actor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role represents the closed set of actor roles recognized by the core.
// Authentication happens upstream; the core only performs role and ownership
// checks based on the role it is handed.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleOwner is the user who requested the delivery.
	RoleOwner

	// RoleAgent is a delivery agent who can claim and advance deliveries.
	RoleAgent

	// RoleAdmin is operational staff with unrestricted transition authority.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their wire representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleOwner:   "owner",
		RoleAgent:   "agent",
		RoleAdmin:   "admin",
	}
}

// RoleFromString parses a wire representation ("owner", "agent", "admin") into a Role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is one of the closed set of valid roles.
func (r Role) Validate() error {
	if r != RoleOwner && r != RoleAgent && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the already-authenticated identity on whose behalf a mutating
// operation runs. The core trusts the (id, role) pair it receives and only
// performs the role/ownership checks defined by the lifecycle rules.
//
// Actor is an immutable value object; use NewActor to construct it.
type Actor struct {
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewActor creates an Actor from an authenticated identity and role.
// Both components are validated.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// String returns a human-readable representation for logging.
func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.role, a.id)
}
