package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrAgentClaimDeliveryCommandIsNotConstructed = errors.New(
	"AgentClaimDeliveryCommand must be created via NewAgentClaimDeliveryCommand constructor",
)

// AgentClaimDeliveryCommand represents an agent volunteering for a pending
// delivery. When several agents claim the same delivery concurrently, exactly
// one wins; the rest are told it is already taken.
type AgentClaimDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	agentID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAgentClaimDeliveryCommand creates a command for an agent to claim a delivery.
func NewAgentClaimDeliveryCommand(deliveryID, agentID kernel.UUID) (AgentClaimDeliveryCommand, error) {
	cmd := AgentClaimDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAgentID(agentID),
	); err != nil {
		return AgentClaimDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AgentClaimDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAgentClaimDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery being claimed.
func (c AgentClaimDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// AgentID returns the identifier of the claiming agent.
func (c AgentClaimDeliveryCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *AgentClaimDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AgentClaimDeliveryCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
