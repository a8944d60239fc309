package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// AgentDirectory answers questions about user roles that the delivery domain
// does not own. It backs the admin-assignment role check and staff fan-out.
type AgentDirectory interface {
	// IsAgent reports whether the user holds the agent role.
	IsAgent(ctx context.Context, userID kernel.UUID) (bool, error)

	// ListStaff returns the identifiers of all staff users
	// (agents and admins) that should receive broadcast notifications.
	ListStaff(ctx context.Context) ([]kernel.UUID, error)
}
