package kernel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("valid_address", func(t *testing.T) {
		addr, err := kernel.NewAddress("221B Baker Street, London", 51.5238, -0.1586)

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "221B Baker Street, London", addr.Text())
		assert.InDelta(t, 51.5238, addr.Latitude(), 0.0001)
		assert.InDelta(t, -0.1586, addr.Longitude(), 0.0001)
	})

	t.Run("trims_surrounding_whitespace", func(t *testing.T) {
		addr, err := kernel.NewAddress("  12 Long Avenue, Springfield  ", 10, 20)

		require.NoError(t, err)
		assert.Equal(t, "12 Long Avenue, Springfield", addr.Text())
	})

	t.Run("empty_text_is_required_error", func(t *testing.T) {
		_, err := kernel.NewAddress("   ", 10, 20)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("short_text_is_invalid", func(t *testing.T) {
		_, err := kernel.NewAddress("5 Elm", 10, 20)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewAddress("12 Long Avenue, Springfield", 91, 20)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewAddress("12 Long Avenue, Springfield", 10, -181)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("collects_all_violations", func(t *testing.T) {
		_, err := kernel.NewAddress("", 91, 181)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestAddress_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var addr kernel.Address

		err := addr.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrAddressIsNotConstructed, err)
	})
}

func TestAddress_IsEqual(t *testing.T) {
	t.Run("equal_addresses", func(t *testing.T) {
		a1, _ := kernel.NewAddress("12 Long Avenue, Springfield", 10, 20)
		a2, _ := kernel.NewAddress("12 Long Avenue, Springfield", 10, 20)

		equal, err := a1.IsEqual(a2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_coordinates", func(t *testing.T) {
		a1, _ := kernel.NewAddress("12 Long Avenue, Springfield", 10, 20)
		a2, _ := kernel.NewAddress("12 Long Avenue, Springfield", 11, 20)

		equal, err := a1.IsEqual(a2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed_operand_fails", func(t *testing.T) {
		a1, _ := kernel.NewAddress("12 Long Avenue, Springfield", 10, 20)
		var a2 kernel.Address

		_, err := a1.IsEqual(a2)

		require.Error(t, err)
	})
}

func TestAddress_String(t *testing.T) {
	addr, _ := kernel.NewAddress("12 Long Avenue, Springfield", 10.5, -20.25)

	assert.Equal(t, "12 Long Avenue, Springfield (10.500000,-20.250000)", addr.String())
}
