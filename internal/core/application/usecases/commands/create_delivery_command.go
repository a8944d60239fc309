package commands

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to register a new delivery.
// Encapsulates the owner, both addresses and the parcel details. The tracking
// identifier is not part of the command: the handler generates it and retries
// on a uniqueness collision.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID        kernel.UUID
	ownerID           kernel.UUID
	pickup            kernel.Address
	dropoff           kernel.Address
	parcelDescription string
	contactNumber     string
	deliveryDate      time.Time
	priceAmount       int64

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates identifiers, addresses and parcel details; violations are joined
// into a single error.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	ownerID kernel.UUID,
	pickup kernel.Address,
	dropoff kernel.Address,
	parcelDescription string,
	contactNumber string,
	deliveryDate time.Time,
	priceAmount int64,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setOwnerID(ownerID),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setParcelDescription(parcelDescription),
		cmd.setContactNumber(contactNumber),
		cmd.setDeliveryDate(deliveryDate),
		cmd.setPriceAmount(priceAmount),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OwnerID returns the identifier of the requesting user.
func (c CreateDeliveryCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Pickup returns the pickup address.
func (c CreateDeliveryCommand) Pickup() kernel.Address {
	return c.pickup
}

// Dropoff returns the drop-off address.
func (c CreateDeliveryCommand) Dropoff() kernel.Address {
	return c.dropoff
}

// ParcelDescription returns the free-form parcel description.
func (c CreateDeliveryCommand) ParcelDescription() string {
	return c.parcelDescription
}

// ContactNumber returns the recipient contact number.
func (c CreateDeliveryCommand) ContactNumber() string {
	return c.contactNumber
}

// DeliveryDate returns the requested delivery date.
func (c CreateDeliveryCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// PriceAmount returns the quoted price in minor currency units.
func (c CreateDeliveryCommand) PriceAmount() int64 {
	return c.priceAmount
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateDeliveryCommand) setPickup(pickup kernel.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateDeliveryCommand) setDropoff(dropoff kernel.Address) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}

	c.dropoff = dropoff
	return nil
}

func (c *CreateDeliveryCommand) setParcelDescription(parcelDescription string) error {
	if parcelDescription == "" {
		return errs.NewValueIsRequiredError("parcelDescription")
	}

	c.parcelDescription = parcelDescription
	return nil
}

func (c *CreateDeliveryCommand) setContactNumber(contactNumber string) error {
	if contactNumber == "" {
		return errs.NewValueIsRequiredError("contactNumber")
	}

	c.contactNumber = contactNumber
	return nil
}

func (c *CreateDeliveryCommand) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}

	c.deliveryDate = deliveryDate
	return nil
}

func (c *CreateDeliveryCommand) setPriceAmount(priceAmount int64) error {
	if priceAmount < 0 {
		return errs.NewValueIsOutOfRangeError("priceAmount", priceAmount, 0, int64(1<<62))
	}

	c.priceAmount = priceAmount
	return nil
}
