//go:build unit || e2e

package builder

import (
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	FacilityID      uuid.UUID
	SiteID          uuid.UUID
	CustomerID      *uuid.UUID
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	Date            time.Time
	Slots           []int
	Amount          int64
	SpecialRequests string
	Now             time.Time
}

func NewBookingBuilder() *BookingBuilder {
	customerID := uuid.New()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		FacilityID: uuid.New(),
		SiteID:     uuid.New(),
		CustomerID: &customerID,
		Date:       now.AddDate(0, 0, 7),
		Slots:      []int{10, 11, 12},
		Amount:     45000,
		Now:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithSlots(slots ...int) *BookingBuilder {
	b.Slots = slots
	return b
}

func (b *BookingBuilder) WithDate(date time.Time) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithAmount(amount int64) *BookingBuilder {
	b.Amount = amount
	return b
}

func (b *BookingBuilder) AsGuest(name, phone string) *BookingBuilder {
	b.CustomerID = nil
	b.GuestName = name
	b.GuestPhone = phone
	return b
}

func (b *BookingBuilder) WithoutIdentity() *BookingBuilder {
	b.CustomerID = nil
	b.GuestName = ""
	b.GuestPhone = ""
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	slots, err := booking.NewSlotSet(b.Slots)
	if err != nil {
		return nil, err
	}
	amount, err := booking.NewAmount(b.Amount)
	if err != nil {
		return nil, err
	}

	var guest *booking.GuestContact
	if b.GuestName != "" || b.GuestPhone != "" {
		g, gErr := booking.NewGuestContact(b.GuestName, b.GuestPhone, b.GuestEmail)
		if gErr != nil {
			return nil, gErr
		}
		guest = &g
	}

	return booking.NewBooking(
		b.FacilityID, b.SiteID,
		b.CustomerID, guest,
		b.Date, slots, amount,
		b.SpecialRequests,
		b.Now,
	)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              uuid.New(),
		FacilityID:      b.FacilityID,
		SiteID:          b.SiteID,
		CustomerID:      b.CustomerID,
		ReservationDate: b.Date,
		TimeSlots:       b.Slots,
		TotalAmount:     b.Amount,
		Status:          booking.StatusPending.String(),
		PaymentStatus:   booking.PaymentWaiting.String(),
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() map[string]any {
	return map[string]any{
		"facility_id":      b.FacilityID.String(),
		"site_id":          b.SiteID.String(),
		"reservation_date": b.Date.Format("2006-01-02"),
		"time_slots":       b.Slots,
		"total_amount":     b.Amount,
	}
}
