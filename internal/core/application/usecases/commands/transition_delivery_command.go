package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrTransitionDeliveryCommandIsNotConstructed = errors.New(
	"TransitionDeliveryCommand must be created via NewTransitionDeliveryCommand constructor",
)

// TransitionDeliveryCommand represents a request to advance a delivery to a
// target lifecycle status on behalf of an actor. Assignment is not reachable
// this way; it has its own claim and assign commands.
type TransitionDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	target     delivery.Status
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

// NewTransitionDeliveryCommand creates a command to transition a delivery.
func NewTransitionDeliveryCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	actor delivery.Actor,
) (TransitionDeliveryCommand, error) {
	cmd := TransitionDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to transition.
func (c TransitionDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the requested target status.
func (c TransitionDeliveryCommand) Target() delivery.Status {
	return c.target
}

// Actor returns the actor requesting the transition.
func (c TransitionDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}

func (c *TransitionDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *TransitionDeliveryCommand) setTarget(target delivery.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionDeliveryCommand) setActor(actor delivery.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
