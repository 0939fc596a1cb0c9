//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"smart-parking/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slotStart = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func mustSlot(t *testing.T, start, end time.Time) reservation.TimeSlot {
	t.Helper()
	slot, err := reservation.NewTimeSlot(start, end)
	require.NoError(t, err)
	return slot
}

func TestTimeSlot(t *testing.T) {
	t.Run("end must be after start", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(slotStart, slotStart)
		assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)

		_, err = reservation.NewTimeSlot(slotStart, slotStart.Add(-time.Hour))
		assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)
	})

	t.Run("extended by whole hours", func(t *testing.T) {
		slot := mustSlot(t, slotStart, slotStart.Add(2*time.Hour))

		extended, err := slot.ExtendedBy(3)
		require.NoError(t, err)
		assert.Equal(t, slot.Start(), extended.Start())
		assert.Equal(t, slot.End().Add(3*time.Hour), extended.End())

		_, err = slot.ExtendedBy(0)
		assert.ErrorIs(t, err, reservation.ErrInvalidTimeSlot)
	})

	t.Run("overlap is half-open", func(t *testing.T) {
		slot := mustSlot(t, slotStart, slotStart.Add(2*time.Hour))
		adjacent := mustSlot(t, slot.End(), slot.End().Add(time.Hour))
		overlapping := mustSlot(t, slotStart.Add(time.Hour), slotStart.Add(3*time.Hour))

		assert.False(t, slot.Overlaps(adjacent), "back-to-back slots do not conflict")
		assert.True(t, slot.Overlaps(overlapping))
		assert.True(t, slot.Overlaps(slot))
	})
}

func TestReservationLifecycle(t *testing.T) {
	newActive := func(t *testing.T) *reservation.Reservation {
		res, err := reservation.NewReservation(
			uuid.New(), uuid.New(),
			mustSlot(t, slotStart, slotStart.Add(2*time.Hour)),
			decimal.RequireFromString("200.00"),
		)
		require.NoError(t, err)
		require.NoError(t, res.Activate())
		return res
	}

	t.Run("new reservations start pending", func(t *testing.T) {
		res, err := reservation.NewReservation(
			uuid.New(), uuid.New(),
			mustSlot(t, slotStart, slotStart.Add(time.Hour)),
			decimal.RequireFromString("100.00"),
		)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, res.Status())
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := reservation.NewReservation(
			uuid.New(), uuid.New(),
			mustSlot(t, slotStart, slotStart.Add(time.Hour)),
			decimal.RequireFromString("-1"),
		)
		assert.ErrorIs(t, err, reservation.ErrNegativePrice)
	})

	t.Run("extend adds the extension price", func(t *testing.T) {
		res := newActive(t)
		newSlot, err := res.TimeSlot().ExtendedBy(1)
		require.NoError(t, err)

		require.NoError(t, res.ExtendTo(newSlot, decimal.RequireFromString("100.00"), slotStart.Add(time.Hour)))
		assert.Equal(t, "300.00", res.TotalPrice().StringFixed(2))
		assert.Equal(t, newSlot.End(), res.TimeSlot().End())
	})

	t.Run("only active reservations extend", func(t *testing.T) {
		res, err := reservation.NewReservation(
			uuid.New(), uuid.New(),
			mustSlot(t, slotStart, slotStart.Add(time.Hour)),
			decimal.RequireFromString("100.00"),
		)
		require.NoError(t, err)
		newSlot, err := res.TimeSlot().ExtendedBy(1)
		require.NoError(t, err)

		assert.ErrorIs(t, res.ExtendTo(newSlot, decimal.Zero, slotStart), reservation.ErrNotActive)
	})

	t.Run("ended reservations do not extend", func(t *testing.T) {
		res := newActive(t)
		newSlot, err := res.TimeSlot().ExtendedBy(1)
		require.NoError(t, err)

		afterEnd := res.TimeSlot().End().Add(time.Minute)
		assert.ErrorIs(t, res.ExtendTo(newSlot, decimal.Zero, afterEnd), reservation.ErrAlreadyEnded)
	})

	t.Run("cancel transitions", func(t *testing.T) {
		res := newActive(t)
		require.NoError(t, res.Cancel())
		assert.Equal(t, reservation.StatusCancelled, res.Status())
		assert.ErrorIs(t, res.Cancel(), reservation.ErrAlreadyCancelled)
	})

	t.Run("activate requires pending", func(t *testing.T) {
		res := newActive(t)
		assert.ErrorIs(t, res.Activate(), reservation.ErrInvalidStatusChange)
	})
}
