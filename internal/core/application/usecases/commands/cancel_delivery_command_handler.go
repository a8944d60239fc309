package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/ports"
)

// CancelDeliveryCommandHandler handles delivery cancellation.
// The aggregate enforces who may cancel and rejects terminal deliveries; the
// guarded update ensures a concurrent transition is not silently overwritten.
// On success the owner and, if one was assigned, the agent are notified.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	sink       ports.NotificationSink
}

// NewCancelDeliveryCommandHandler creates a handler for cancellation operations.
func NewCancelDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	sink ports.NotificationSink,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
	}
}

// Handle processes the cancellation command.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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
	if err = aggregate.Cancel(cmd.Actor()); err != nil {
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

// notify tells the owner and the assigned agent about the cancellation. Best-effort.
func (h CancelDeliveryCommandHandler) notify(ctx context.Context, aggregate *delivery.Delivery) {
	message := fmt.Sprintf("delivery %s was cancelled", aggregate.TrackingID())

	_ = h.sink.Send(ctx, ports.Notification{
		RecipientID:       aggregate.OwnerID(),
		Category:          ports.NotificationDeliveryCancelled,
		Message:           message,
		RelatedDeliveryID: aggregate.ID(),
	})

	if agentID := aggregate.AssignedAgentID(); agentID != nil {
		_ = h.sink.Send(ctx, ports.Notification{
			RecipientID:       *agentID,
			Category:          ports.NotificationDeliveryCancelled,
			Message:           message,
			RelatedDeliveryID: aggregate.ID(),
		})
	}
}
