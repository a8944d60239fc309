package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrListDeliveriesForAgentQueryIsNotConstructed = errors.New(
	"ListDeliveriesForAgentQuery must be created via NewListDeliveriesForAgentQuery constructor",
)

// ListDeliveriesForAgentQuery retrieves all deliveries currently bound to one
// agent, newest first. This is the agent's personal worklist.
type ListDeliveriesForAgentQuery struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListDeliveriesForAgentQuery creates a query for an agent's worklist.
func NewListDeliveriesForAgentQuery(agentID kernel.UUID) (ListDeliveriesForAgentQuery, error) {
	q := ListDeliveriesForAgentQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setAgentID(agentID); err != nil {
		return ListDeliveriesForAgentQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveriesForAgentQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesForAgentQueryIsNotConstructed)
}

// AgentID returns the identifier of the agent whose worklist is requested.
func (q ListDeliveriesForAgentQuery) AgentID() kernel.UUID {
	return q.agentID
}

func (q *ListDeliveriesForAgentQuery) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	q.agentID = agentID
	return nil
}

// ListDeliveriesForAgentQueryResponse represents one delivery in an agent's worklist.
type ListDeliveriesForAgentQueryResponse struct {
	ID            kernel.UUID
	TrackingID    string
	Status        delivery.Status
	PickupText    string
	DropoffText   string
	ContactNumber string
	DeliveryDate  time.Time
	UpdatedAt     time.Time
}
