//go:build unit

package booking_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, booking.PaymentWaiting, actual.PaymentStatus())
		assert.Equal(t, []int{10, 11, 12}, actual.Slots().Values())
		assert.Nil(t, actual.CancelledAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("identification mode", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "guest contact instead of account",
				mutate: func(b *builder.BookingBuilder) { b.AsGuest("山田太郎", "090-0000-0000") },
			},
			{
				name:   "neither account nor guest",
				mutate: func(b *builder.BookingBuilder) { b.WithoutIdentity() },
				errIs:  booking.ErrIdentificationMode,
			},
			{
				name: "both account and guest",
				mutate: func(b *builder.BookingBuilder) {
					b.GuestName = "山田太郎"
					b.GuestPhone = "090-0000-0000"
				},
				errIs: booking.ErrIdentificationMode,
			},
			{
				name: "guest without phone",
				mutate: func(b *builder.BookingBuilder) {
					b.CustomerID = nil
					b.GuestName = "山田太郎"
				},
				errIs: booking.ErrGuestContactIncomplete,
			},
		})
	})

	t.Run("date validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "same-day booking is allowed",
				mutate: func(b *builder.BookingBuilder) { b.WithDate(b.Now) },
			},
			{
				name:   "past date rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithDate(b.Now.AddDate(0, 0, -1)) },
				errIs:  booking.ErrPastDate,
			},
		})
	})

	t.Run("slot validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "single slot", mutate: func(b *builder.BookingBuilder) { b.WithSlots(1) }},
			{name: "boundary slot 24", mutate: func(b *builder.BookingBuilder) { b.WithSlots(24) }},
			{name: "empty slots", mutate: func(b *builder.BookingBuilder) { b.WithSlots() }, errIs: booking.ErrEmptySlots},
			{name: "slot zero", mutate: func(b *builder.BookingBuilder) { b.WithSlots(0) }, errIs: booking.ErrSlotOutOfRange},
			{name: "slot above maximum", mutate: func(b *builder.BookingBuilder) { b.WithSlots(25) }, errIs: booking.ErrSlotOutOfRange},
			{name: "duplicate slots", mutate: func(b *builder.BookingBuilder) { b.WithSlots(3, 3) }, errIs: booking.ErrDuplicateSlot},
		})
	})

	t.Run("amount validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "zero amount", mutate: func(b *builder.BookingBuilder) { b.WithAmount(0) }},
			{name: "negative amount", mutate: func(b *builder.BookingBuilder) { b.WithAmount(-1) }, errIs: booking.ErrNegativeAmount},
		})
	})

	t.Run("missing references", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "nil facility id",
				mutate: func(b *builder.BookingBuilder) { b.FacilityID = uuid.Nil },
				errIs:  booking.ErrMissingReference,
			},
			{
				name:   "nil site id",
				mutate: func(b *builder.BookingBuilder) { b.SiteID = uuid.Nil },
				errIs:  booking.ErrMissingReference,
			},
		})
	})
}

func TestTransitionTo(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	newBooking := func(t *testing.T) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		return b
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		b := newBooking(t)
		require.NoError(t, b.TransitionTo(booking.StatusConfirmed, now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Nil(t, b.CancelledAt())
	})

	t.Run("pending to cancelled records timestamp", func(t *testing.T) {
		b := newBooking(t)
		require.NoError(t, b.TransitionTo(booking.StatusCancelled, now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.CancelledAt())
		assert.Equal(t, now, *b.CancelledAt())
	})

	t.Run("confirmed to cancelled", func(t *testing.T) {
		b := newBooking(t)
		require.NoError(t, b.TransitionTo(booking.StatusConfirmed, now))
		require.NoError(t, b.TransitionTo(booking.StatusCancelled, now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("confirmed back to pending is illegal", func(t *testing.T) {
		b := newBooking(t)
		require.NoError(t, b.TransitionTo(booking.StatusConfirmed, now))
		assert.ErrorIs(t, b.TransitionTo(booking.StatusPending, now), booking.ErrInvalidTransition)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		b := newBooking(t)
		require.NoError(t, b.TransitionTo(booking.StatusCancelled, now))

		assert.ErrorIs(t, b.TransitionTo(booking.StatusPending, now), booking.ErrAlreadyCancelled)
		assert.ErrorIs(t, b.TransitionTo(booking.StatusConfirmed, now), booking.ErrAlreadyCancelled)
		assert.ErrorIs(t, b.TransitionTo(booking.StatusCancelled, now), booking.ErrAlreadyCancelled)
	})

	t.Run("unknown status", func(t *testing.T) {
		b := newBooking(t)
		assert.ErrorIs(t, b.TransitionTo(booking.Status("done"), now), booking.ErrInvalidStatus)
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	buildFor := func(t *testing.T, date time.Time) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) {
			bb.Now = now
			bb.Date = date
		}).BuildDomain()
		require.NoError(t, err)
		return b
	}

	t.Run("tomorrow with one-day cutoff succeeds", func(t *testing.T) {
		b := buildFor(t, now.AddDate(0, 0, 1))
		require.NoError(t, b.Cancel(now, 1))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.CancelledAt())
	})

	t.Run("same day with one-day cutoff fails", func(t *testing.T) {
		b := buildFor(t, now)
		assert.ErrorIs(t, b.Cancel(now, 1), booking.ErrCancelCutoff)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("three-day cutoff boundary", func(t *testing.T) {
		exact := buildFor(t, now.AddDate(0, 0, 3))
		require.NoError(t, exact.Cancel(now, 3))

		short := buildFor(t, now.AddDate(0, 0, 2))
		assert.ErrorIs(t, short.Cancel(now, 3), booking.ErrCancelCutoff)
	})

	t.Run("zero cutoff allows same-day cancellation", func(t *testing.T) {
		b := buildFor(t, now)
		require.NoError(t, b.Cancel(now, 0))
	})

	t.Run("cutoff uses calendar days, not elapsed hours", func(t *testing.T) {
		// 23:30 the night before: still one calendar day away
		lateEvening := time.Date(2026, 9, 1, 23, 30, 0, 0, time.UTC)
		b := buildFor(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
		require.NoError(t, b.Cancel(lateEvening, 1))
	})

	t.Run("already cancelled", func(t *testing.T) {
		b := buildFor(t, now.AddDate(0, 0, 5))
		require.NoError(t, b.Cancel(now, 1))
		assert.ErrorIs(t, b.Cancel(now, 1), booking.ErrAlreadyCancelled)
	})

	t.Run("confirmed booking can be cancelled within window", func(t *testing.T) {
		b := buildFor(t, now.AddDate(0, 0, 5))
		require.NoError(t, b.TransitionTo(booking.StatusConfirmed, now))
		require.NoError(t, b.Cancel(now, 1))
	})
}

func TestUpdateSpecialRequests(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("pending booking before the date", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.UpdateSpecialRequests("  電源サイト希望  ", now))
		assert.Equal(t, "電源サイト希望", b.SpecialRequests())
	})

	t.Run("confirmed booking is not editable", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.TransitionTo(booking.StatusConfirmed, now))

		assert.ErrorIs(t, b.UpdateSpecialRequests("x", now), booking.ErrNotEditable)
	})

	t.Run("cancelled booking is not editable", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.TransitionTo(booking.StatusCancelled, now))

		assert.ErrorIs(t, b.UpdateSpecialRequests("x", now), booking.ErrNotEditable)
	})
}
