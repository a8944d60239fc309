package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/ports"
)

// TransitionDeliveryCommandHandler handles status transition requests.
// Loads the delivery, lets the aggregate enforce the lifecycle and
// authorization rules, then persists through a guarded update so a concurrent
// writer cannot be overwritten. On success the owner is notified of the new
// status; a transition to cancelled also notifies the assigned agent.
type TransitionDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	sink       ports.NotificationSink
}

// NewTransitionDeliveryCommandHandler creates a handler for transition operations.
func NewTransitionDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	sink ports.NotificationSink,
) TransitionDeliveryCommandHandler {
	return TransitionDeliveryCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
	}
}

// Handle processes the transition command.
func (h TransitionDeliveryCommandHandler) Handle(ctx context.Context, cmd TransitionDeliveryCommand) error {
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

	loadedStatus := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate, loadedStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}

// notify tells the owner about the status change. A cancellation also tells
// the assigned agent, if any, that the work is gone. Best-effort.
func (h TransitionDeliveryCommandHandler) notify(ctx context.Context, aggregate *delivery.Delivery) {
	_ = h.sink.Send(ctx, ports.Notification{
		RecipientID: aggregate.OwnerID(),
		Category:    ports.NotificationStatusChanged,
		Message: fmt.Sprintf("your delivery %s is now %s",
			aggregate.TrackingID(), aggregate.Status()),
		RelatedDeliveryID: aggregate.ID(),
	})

	if aggregate.Status() != delivery.Cancelled {
		return
	}

	if agentID := aggregate.AssignedAgentID(); agentID != nil {
		_ = h.sink.Send(ctx, ports.Notification{
			RecipientID: *agentID,
			Category:    ports.NotificationDeliveryCancelled,
			Message: fmt.Sprintf("delivery %s was cancelled",
				aggregate.TrackingID()),
			RelatedDeliveryID: aggregate.ID(),
		})
	}
}
