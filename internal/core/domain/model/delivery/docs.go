// Package delivery contains the Delivery aggregate root and its supporting
// value objects: the lifecycle Status state machine, the append-only status
// history, tracking identifiers, and the Actor identity used for
// authorization checks.
//
// The aggregate enforces the lifecycle business rules on the state it was
// loaded with; protection against concurrent writers is provided by the
// repositories through conditional updates, so the same rules are re-checked
// at the storage boundary.
package delivery
