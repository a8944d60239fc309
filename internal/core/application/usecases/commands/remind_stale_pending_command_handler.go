package commands

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
)

// RemindStalePendingCommandHandler notifies staff about deliveries that have
// been waiting for an agent too long. The reminder repeats on every run while
// the delivery stays unclaimed; the scheduler controls the cadence.
type RemindStalePendingCommandHandler struct {
	uowFactory DeliveryUoWFactory
	agents     ports.AgentDirectory
	sink       ports.NotificationSink
}

// NewRemindStalePendingCommandHandler creates a handler for stale pending reminders.
func NewRemindStalePendingCommandHandler(
	uowFactory DeliveryUoWFactory,
	agents ports.AgentDirectory,
	sink ports.NotificationSink,
) RemindStalePendingCommandHandler {
	return RemindStalePendingCommandHandler{
		uowFactory: uowFactory,
		agents:     agents,
		sink:       sink,
	}
}

// Handle finds deliveries pending longer than the command's threshold and
// sends a reminder about each one to every staff member.
func (h RemindStalePendingCommandHandler) Handle(ctx context.Context, cmd RemindStalePendingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	repo := h.uowFactory.Create().DeliveryRepository()

	before := time.Now().UTC().Add(-cmd.StaleAfter())
	stale, err := repo.FindStalePending(ctx, before)
	if err != nil {
		return err
	}

	if len(stale) == 0 {
		return nil
	}

	staff, err := h.agents.ListStaff(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range stale {
		h.notifyStaff(ctx, staff, aggregate)
	}

	return nil
}

// notifyStaff sends one reminder per staff member. Best-effort.
func (h RemindStalePendingCommandHandler) notifyStaff(
	ctx context.Context,
	staff []kernel.UUID,
	aggregate *delivery.Delivery,
) {
	message := fmt.Sprintf("delivery %s has been waiting for an agent since %s",
		aggregate.TrackingID(), aggregate.CreatedAt().Format(time.RFC3339))

	for _, staffID := range staff {
		_ = h.sink.Send(ctx, ports.Notification{
			RecipientID:       staffID,
			Category:          ports.NotificationPendingReminder,
			Message:           message,
			RelatedDeliveryID: aggregate.ID(),
		})
	}
}
