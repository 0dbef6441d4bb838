//go:build unit

package booking_test

import (
	"testing"

	"facility-booking/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotSet(t *testing.T) {
	tests := []struct {
		name     string
		slots    []int
		expected []int
		errIs    error
	}{
		{name: "single slot", slots: []int{5}, expected: []int{5}},
		{name: "slots are sorted", slots: []int{12, 10, 11}, expected: []int{10, 11, 12}},
		{name: "full day", slots: []int{1, 24}, expected: []int{1, 24}},
		{name: "empty", slots: []int{}, errIs: booking.ErrEmptySlots},
		{name: "nil", slots: nil, errIs: booking.ErrEmptySlots},
		{name: "zero slot", slots: []int{0}, errIs: booking.ErrSlotOutOfRange},
		{name: "slot 25", slots: []int{10, 25}, errIs: booking.ErrSlotOutOfRange},
		{name: "duplicate", slots: []int{10, 11, 10}, errIs: booking.ErrDuplicateSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := booking.NewSlotSet(tt.slots)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.expected, actual.Values()); diff != "" {
				t.Errorf("slot values mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.expected), actual.Len())
		})
	}
}

func TestSlotSetIntersects(t *testing.T) {
	mustSlots := func(t *testing.T, slots ...int) booking.SlotSet {
		t.Helper()
		s, err := booking.NewSlotSet(slots)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name     string
		a        []int
		b        []int
		expected bool
	}{
		{name: "shared slot", a: []int{10, 11}, b: []int{11, 12}, expected: true},
		{name: "identical", a: []int{10}, b: []int{10}, expected: true},
		{name: "adjacent but disjoint", a: []int{10, 11}, b: []int{12, 13}, expected: false},
		{name: "far apart", a: []int{1}, b: []int{24}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustSlots(t, tt.a...)
			b := mustSlots(t, tt.b...)
			assert.Equal(t, tt.expected, a.Intersects(b))
			assert.Equal(t, tt.expected, b.Intersects(a))
		})
	}
}

func TestSlotSetContains(t *testing.T) {
	s, err := booking.NewSlotSet([]int{10, 12})
	require.NoError(t, err)

	assert.True(t, s.Contains(10))
	assert.True(t, s.Contains(12))
	assert.False(t, s.Contains(11))
}

func TestNewGuestContact(t *testing.T) {
	tests := []struct {
		name  string
		guest []string // name, phone, email
		errIs error
	}{
		{name: "name and phone", guest: []string{"山田太郎", "090-0000-0000", ""}},
		{name: "with email", guest: []string{"山田太郎", "090-0000-0000", "taro@example.com"}},
		{name: "missing phone", guest: []string{"山田太郎", "", ""}, errIs: booking.ErrGuestContactIncomplete},
		{name: "missing name", guest: []string{"", "090-0000-0000", ""}, errIs: booking.ErrGuestContactIncomplete},
		{name: "whitespace only", guest: []string{"  ", "  ", ""}, errIs: booking.ErrGuestContactIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := booking.NewGuestContact(tt.guest[0], tt.guest[1], tt.guest[2])
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.False(t, actual.IsZero())
		})
	}
}

func TestNewAmount(t *testing.T) {
	t.Run("zero is allowed", func(t *testing.T) {
		actual, err := booking.NewAmount(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), actual.Value())
	})

	t.Run("positive", func(t *testing.T) {
		actual, err := booking.NewAmount(45000)
		require.NoError(t, err)
		assert.Equal(t, int64(45000), actual.Value())
	})

	t.Run("negative", func(t *testing.T) {
		_, err := booking.NewAmount(-1)
		assert.ErrorIs(t, err, booking.ErrNegativeAmount)
	})
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     booking.Status
		to       booking.Status
		expected bool
	}{
		{name: "pending to confirmed", from: booking.StatusPending, to: booking.StatusConfirmed, expected: true},
		{name: "pending to cancelled", from: booking.StatusPending, to: booking.StatusCancelled, expected: true},
		{name: "confirmed to cancelled", from: booking.StatusConfirmed, to: booking.StatusCancelled, expected: true},
		{name: "confirmed to pending", from: booking.StatusConfirmed, to: booking.StatusPending, expected: false},
		{name: "cancelled to pending", from: booking.StatusCancelled, to: booking.StatusPending, expected: false},
		{name: "cancelled to confirmed", from: booking.StatusCancelled, to: booking.StatusConfirmed, expected: false},
		{name: "self transition", from: booking.StatusPending, to: booking.StatusPending, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewStatus(t *testing.T) {
	for _, s := range []booking.Status{booking.StatusPending, booking.StatusConfirmed, booking.StatusCancelled} {
		parsed, err := booking.NewStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := booking.NewStatus("done")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestNewPaymentStatus(t *testing.T) {
	parsed, err := booking.NewPaymentStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, booking.PaymentCompleted, parsed)

	_, err = booking.NewPaymentStatus("paid")
	assert.ErrorIs(t, err, booking.ErrInvalidPaymentStatus)
}
