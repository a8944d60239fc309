package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/ports"
)

// AdminAssignDeliveryCommandHandler handles administrators assigning pending
// deliveries to chosen agents.
//
// The target user's agent role is verified against the directory before any
// write. The persistence path is identical to an agent claim: Assign on the
// aggregate, AssignIfPending at the store, so racing an admin assignment
// against agent claims still produces exactly one winner.
type AdminAssignDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	agents     ports.AgentDirectory
	sink       ports.NotificationSink
}

// NewAdminAssignDeliveryCommandHandler creates a handler for admin assignment operations.
func NewAdminAssignDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	agents ports.AgentDirectory,
	sink ports.NotificationSink,
) AdminAssignDeliveryCommandHandler {
	return AdminAssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		agents:     agents,
		sink:       sink,
	}
}

// Handle processes the admin assignment command.
func (h AdminAssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AdminAssignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isAgent, err := h.agents.IsAgent(ctx, cmd.AgentID())
	if err != nil {
		return err
	}
	if !isAgent {
		return fmt.Errorf("%w: user %s does not hold the agent role",
			delivery.ErrActorForbidden, cmd.AgentID())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()

	aggregate, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.Assign(cmd.AgentID(), cmd.AdminID()); err != nil {
		return err
	}

	if err = repo.AssignIfPending(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}

// notify tells the agent about the new work and the owner about the
// assignment. Best-effort.
func (h AdminAssignDeliveryCommandHandler) notify(ctx context.Context, aggregate *delivery.Delivery) {
	if agentID := aggregate.AssignedAgentID(); agentID != nil {
		_ = h.sink.Send(ctx, ports.Notification{
			RecipientID: *agentID,
			Category:    ports.NotificationDeliveryAssigned,
			Message: fmt.Sprintf("delivery %s was assigned to you",
				aggregate.TrackingID()),
			RelatedDeliveryID: aggregate.ID(),
		})
	}

	_ = h.sink.Send(ctx, ports.Notification{
		RecipientID: aggregate.OwnerID(),
		Category:    ports.NotificationDeliveryAssigned,
		Message: fmt.Sprintf("an agent was assigned to your delivery %s",
			aggregate.TrackingID()),
		RelatedDeliveryID: aggregate.ID(),
	})
}
