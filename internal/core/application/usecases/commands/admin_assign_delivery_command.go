package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrAdminAssignDeliveryCommandIsNotConstructed = errors.New(
	"AdminAssignDeliveryCommand must be created via NewAdminAssignDeliveryCommand constructor",
)

// AdminAssignDeliveryCommand represents an administrator assigning a pending
// delivery to a chosen agent. The target user must actually hold the agent
// role; assigning to an arbitrary user is forbidden.
type AdminAssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	agentID    kernel.UUID
	adminID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdminAssignDeliveryCommand creates a command for an admin to assign a delivery.
func NewAdminAssignDeliveryCommand(
	deliveryID, agentID, adminID kernel.UUID,
) (AdminAssignDeliveryCommand, error) {
	cmd := AdminAssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAgentID(agentID),
		cmd.setAdminID(adminID),
	); err != nil {
		return AdminAssignDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdminAssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdminAssignDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to assign.
func (c AdminAssignDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// AgentID returns the identifier of the chosen agent.
func (c AdminAssignDeliveryCommand) AgentID() kernel.UUID {
	return c.agentID
}

// AdminID returns the identifier of the administrator making the assignment.
func (c AdminAssignDeliveryCommand) AdminID() kernel.UUID {
	return c.adminID
}

func (c *AdminAssignDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AdminAssignDeliveryCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *AdminAssignDeliveryCommand) setAdminID(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}

	c.adminID = adminID
	return nil
}
