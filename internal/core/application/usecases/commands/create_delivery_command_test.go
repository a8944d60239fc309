package commands_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDeliveryCommand_ValidInput(t *testing.T) {
	deliveryID := kernel.NewUUID()
	ownerID := kernel.NewUUID()
	pickup := mustTestAddress(t, "1 Warehouse Road, Newark")
	dropoff := mustTestAddress(t, "350 Fifth Avenue, New York")
	date := time.Now().Add(48 * time.Hour)

	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, ownerID, pickup, dropoff, "box of books", "+12125550100", date, 2500)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, deliveryID, cmd.DeliveryID())
	assert.Equal(t, ownerID, cmd.OwnerID())
	assert.Equal(t, "box of books", cmd.ParcelDescription())
	assert.Equal(t, "+12125550100", cmd.ContactNumber())
	assert.Equal(t, int64(2500), cmd.PriceAmount())
}

func TestNewCreateDeliveryCommand_InvalidInput(t *testing.T) {
	pickup := mustTestAddress(t, "1 Warehouse Road, Newark")
	dropoff := mustTestAddress(t, "350 Fifth Avenue, New York")
	date := time.Now().Add(48 * time.Hour)

	t.Run("invalid_delivery_id", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(
			kernel.UUID{}, kernel.NewUUID(), pickup, dropoff, "box", "+12125550100", date, 100)
		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("empty_parcel_description", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "", "+12125550100", date, 100)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_delivery_date", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "box", "+12125550100", time.Time{}, 100)
		require.Error(t, err)
	})

	t.Run("negative_price", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "box", "+12125550100", date, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unconstructed_addresses", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.Address{}, kernel.Address{},
			"box", "+12125550100", date, 100)
		require.Error(t, err)
	})
}

func TestCreateDeliveryCommand_NotConstructed(t *testing.T) {
	cmd := commands.CreateDeliveryCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateDeliveryCommandIsNotConstructed)
}
