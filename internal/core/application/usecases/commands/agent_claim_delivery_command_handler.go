package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/ports"
)

// AgentClaimDeliveryCommandHandler handles agents claiming pending deliveries.
//
// Claim and admin assignment share one write path: the aggregate's Assign
// method followed by the repository's AssignIfPending conditional update.
// The store-side precondition guarantees a single winner no matter how many
// claims race; losers receive an AlreadyAssignedError.
type AgentClaimDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	sink       ports.NotificationSink
}

// NewAgentClaimDeliveryCommandHandler creates a handler for claim operations.
func NewAgentClaimDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	sink ports.NotificationSink,
) AgentClaimDeliveryCommandHandler {
	return AgentClaimDeliveryCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
	}
}

// Handle processes the claim command.
func (h AgentClaimDeliveryCommandHandler) Handle(ctx context.Context, cmd AgentClaimDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = aggregate.Assign(cmd.AgentID(), cmd.AgentID()); err != nil {
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

// notify confirms the claim to the agent and tells the owner their delivery
// was picked up. Best-effort.
func (h AgentClaimDeliveryCommandHandler) notify(ctx context.Context, aggregate *delivery.Delivery) {
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
		Message: fmt.Sprintf("an agent accepted your delivery %s",
			aggregate.TrackingID()),
		RelatedDeliveryID: aggregate.ID(),
	})
}
