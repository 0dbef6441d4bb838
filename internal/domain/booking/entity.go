package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidTransition    = errors.New("illegal status transition")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
	ErrCancelCutoff         = errors.New("booking date is within the cancellation cutoff window")
	ErrNotEditable          = errors.New("only pending bookings can be edited")
	ErrPastDate             = errors.New("booking date cannot be in the past")
	ErrMissingReference     = errors.New("facility and site references are required")
	ErrIdentificationMode   = errors.New("exactly one of member id or guest contact must be supplied")
)

// Booking is the central entity: a time-blocked claim on a site for one
// calendar date. Identification is either a member customer id or a guest
// contact, never both and never neither.
type Booking struct {
	id              uuid.UUID
	facilityID      uuid.UUID
	siteID          uuid.UUID
	customerID      *uuid.UUID
	guest           GuestContact
	date            time.Time
	slots           SlotSet
	amount          Amount
	status          Status
	paymentStatus   PaymentStatus
	specialRequests string
	adminMemo       string
	createdAt       time.Time
	updatedAt       time.Time
	cancelledAt     *time.Time
}

func NewBooking(
	facilityID, siteID uuid.UUID,
	customerID *uuid.UUID,
	guest *GuestContact,
	date time.Time,
	slots SlotSet,
	amount Amount,
	specialRequests string,
	now time.Time,
) (*Booking, error) {
	if facilityID == uuid.Nil || siteID == uuid.Nil {
		return nil, ErrMissingReference
	}

	hasMember := customerID != nil && *customerID != uuid.Nil
	hasGuest := guest != nil && !guest.IsZero()
	if hasMember == hasGuest {
		return nil, ErrIdentificationMode
	}

	if calendarDaysBetween(now, date) < 0 {
		return nil, ErrPastDate
	}

	b := &Booking{
		id:              uuid.New(),
		facilityID:      facilityID,
		siteID:          siteID,
		date:            truncateToDate(date),
		slots:           slots,
		amount:          amount,
		status:          StatusPending,
		paymentStatus:   PaymentWaiting,
		specialRequests: strings.TrimSpace(specialRequests),
		createdAt:       now,
		updatedAt:       now,
	}
	if hasMember {
		id := *customerID
		b.customerID = &id
	} else {
		b.guest = *guest
	}
	return b, nil
}

func ReconstructBooking(
	id, facilityID, siteID uuid.UUID,
	customerID *uuid.UUID,
	guest GuestContact,
	date time.Time,
	slots SlotSet,
	amount Amount,
	status Status,
	paymentStatus PaymentStatus,
	specialRequests, adminMemo string,
	createdAt, updatedAt time.Time,
	cancelledAt *time.Time,
) *Booking {
	return &Booking{
		id:              id,
		facilityID:      facilityID,
		siteID:          siteID,
		customerID:      customerID,
		guest:           guest,
		date:            truncateToDate(date),
		slots:           slots,
		amount:          amount,
		status:          status,
		paymentStatus:   paymentStatus,
		specialRequests: specialRequests,
		adminMemo:       adminMemo,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		cancelledAt:     cancelledAt,
	}
}

// TransitionTo applies the state machine. Any edge not present in the graph
// fails with ErrInvalidTransition; cancelled bookings report a dedicated error
// so callers can distinguish the terminal state.
func (b *Booking) TransitionTo(target Status, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !b.status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}

	b.status = target
	b.updatedAt = now
	if target == StatusCancelled {
		t := now
		b.cancelledAt = &t
	}
	return nil
}

// Cancel enforces the cutoff window on top of the state machine: a booking
// whose date is fewer than cutoffDays calendar days away can no longer be
// cancelled. The cutoff is store configuration, not a constant.
func (b *Booking) Cancel(now time.Time, cutoffDays int) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if cutoffDays < 0 {
		cutoffDays = 0
	}
	if calendarDaysBetween(now, b.date) < cutoffDays {
		return ErrCancelCutoff
	}
	return b.TransitionTo(StatusCancelled, now)
}

// UpdateSpecialRequests is the only customer-side field edit. Allowed while
// pending and strictly before the booking date; confirmed bookings must be
// cancelled and rebooked instead.
func (b *Booking) UpdateSpecialRequests(text string, now time.Time) error {
	if b.status != StatusPending {
		return ErrNotEditable
	}
	if calendarDaysBetween(now, b.date) < 1 {
		return ErrPastDate
	}
	b.specialRequests = strings.TrimSpace(text)
	b.updatedAt = now
	return nil
}

func (b *Booking) SetAdminMemo(memo string, now time.Time) {
	b.adminMemo = strings.TrimSpace(memo)
	b.updatedAt = now
}

func (b *Booking) SetPaymentStatus(ps PaymentStatus, now time.Time) error {
	if !ps.IsValid() {
		return ErrInvalidPaymentStatus
	}
	b.paymentStatus = ps
	b.updatedAt = now
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) FacilityID() uuid.UUID        { return b.facilityID }
func (b *Booking) SiteID() uuid.UUID            { return b.siteID }
func (b *Booking) CustomerID() *uuid.UUID       { return b.customerID }
func (b *Booking) Guest() GuestContact          { return b.guest }
func (b *Booking) Date() time.Time              { return b.date }
func (b *Booking) Slots() SlotSet               { return b.slots }
func (b *Booking) Amount() Amount               { return b.amount }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) SpecialRequests() string      { return b.specialRequests }
func (b *Booking) AdminMemo() string            { return b.adminMemo }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
func (b *Booking) CancelledAt() *time.Time      { return b.cancelledAt }

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// calendarDaysBetween counts whole calendar days from the day of `from` to
// the day of `to`, each taken in its own location. Negative when `to` is in
// the past.
func calendarDaysBetween(from, to time.Time) int {
	return int(truncateToDate(to).Sub(truncateToDate(from)).Hours() / 24)
}
