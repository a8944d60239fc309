package commands

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// maxTrackingIDAttempts bounds the regeneration loop when a generated tracking
// identifier collides with an existing one.
const maxTrackingIDAttempts = 5

// CreateDeliveryCommandHandler handles the business logic for delivery creation.
// Creates a new pending delivery with a generated tracking identifier, then
// notifies the owner and all staff users that a delivery is waiting to be
// claimed. Notification delivery is best-effort and never fails the creation.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	agents     ports.AgentDirectory
	sink       ports.NotificationSink
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation operations.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	agents ports.AgentDirectory,
	sink ports.NotificationSink,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		agents:     agents,
		sink:       sink,
	}
}

// Handle processes the delivery creation command.
// A tracking identifier collision at the store is retried with a freshly
// generated identifier; anything else is returned to the caller.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.persistWithFreshTrackingID(ctx, cmd)
	if err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}

// persistWithFreshTrackingID creates and stores the aggregate, regenerating
// the tracking identifier for a bounded number of unique-key collisions.
func (h CreateDeliveryCommandHandler) persistWithFreshTrackingID(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (*delivery.Delivery, error) {
	var lastErr error

	for attempt := 0; attempt < maxTrackingIDAttempts; attempt++ {
		trackingID, err := delivery.GenerateTrackingID()
		if err != nil {
			return nil, err
		}

		aggregate, err := delivery.NewDelivery(
			cmd.DeliveryID(),
			trackingID,
			cmd.OwnerID(),
			cmd.Pickup(),
			cmd.Dropoff(),
			cmd.ParcelDescription(),
			cmd.ContactNumber(),
			cmd.DeliveryDate(),
			cmd.PriceAmount(),
		)
		if err != nil {
			return nil, err
		}

		err = h.persist(ctx, aggregate)
		if err == nil {
			return aggregate, nil
		}
		if !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return nil, err
		}

		lastErr = err
	}

	return nil, fmt.Errorf("could not find an unused tracking identifier: %w", lastErr)
}

func (h CreateDeliveryCommandHandler) persist(ctx context.Context, aggregate *delivery.Delivery) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// notify fans out the creation to the owner and to all staff users.
// Errors are deliberately ignored; notification delivery is best-effort.
func (h CreateDeliveryCommandHandler) notify(ctx context.Context, aggregate *delivery.Delivery) {
	_ = h.sink.Send(ctx, ports.Notification{
		RecipientID: aggregate.OwnerID(),
		Category:    ports.NotificationDeliveryCreated,
		Message: fmt.Sprintf("your delivery %s was created and is waiting for an agent",
			aggregate.TrackingID()),
		RelatedDeliveryID: aggregate.ID(),
	})

	staff, err := h.agents.ListStaff(ctx)
	if err != nil {
		return
	}

	for _, staffID := range staff {
		_ = h.sink.Send(ctx, ports.Notification{
			RecipientID: staffID,
			Category:    ports.NotificationDeliveryCreated,
			Message: fmt.Sprintf("delivery %s is waiting to be claimed",
				aggregate.TrackingID()),
			RelatedDeliveryID: aggregate.ID(),
		})
	}
}
