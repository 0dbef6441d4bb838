package request

import (
	"strings"
	"time"

	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	FacilityID      uuid.UUID `json:"facility_id" binding:"required"`
	SiteID          uuid.UUID `json:"site_id" binding:"required"`
	ReservationDate string    `json:"reservation_date" binding:"required"`
	TimeSlots       []int     `json:"time_slots" binding:"required"`
	// Pointer so a zero amount still satisfies required; negatives are
	// rejected by the domain.
	TotalAmount     *int64  `json:"total_amount" binding:"required"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

func (r CreateBookingRequest) ToInput(customerID uuid.UUID) (commands.CreateBookingInput, error) {
	date, err := parseDate(r.ReservationDate)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	return commands.CreateBookingInput{
		FacilityID:      r.FacilityID,
		SiteID:          r.SiteID,
		CustomerID:      &customerID,
		Date:            date,
		TimeSlots:       r.TimeSlots,
		TotalAmount:     *r.TotalAmount,
		SpecialRequests: trimPtr(r.SpecialRequests),
	}, nil
}

// CreateGuestBookingRequest is the unauthenticated intake form: contact
// details replace the customer account.
type CreateGuestBookingRequest struct {
	FacilityID      uuid.UUID `json:"facility_id" binding:"required"`
	SiteID          uuid.UUID `json:"site_id" binding:"required"`
	GuestName       string    `json:"guest_name" binding:"required"`
	GuestPhone      string    `json:"guest_phone" binding:"required"`
	GuestEmail      *string   `json:"guest_email,omitempty"`
	ReservationDate string    `json:"reservation_date" binding:"required"`
	TimeSlots       []int     `json:"time_slots" binding:"required"`
	TotalAmount     *int64    `json:"total_amount" binding:"required"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
}

func (r CreateGuestBookingRequest) ToInput() (commands.CreateBookingInput, error) {
	date, err := parseDate(r.ReservationDate)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	name := strings.TrimSpace(r.GuestName)
	phone := strings.TrimSpace(r.GuestPhone)
	return commands.CreateBookingInput{
		FacilityID:      r.FacilityID,
		SiteID:          r.SiteID,
		GuestName:       &name,
		GuestPhone:      &phone,
		GuestEmail:      trimPtr(r.GuestEmail),
		Date:            date,
		TimeSlots:       r.TimeSlots,
		TotalAmount:     *r.TotalAmount,
		SpecialRequests: trimPtr(r.SpecialRequests),
	}, nil
}

type UpdateStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	AdminMemo     *string `json:"admin_memo,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}

func (r UpdateStatusRequest) ToInput() commands.UpdateStatusInput {
	return commands.UpdateStatusInput{
		TargetStatus:  r.Status,
		AdminMemo:     trimPtr(r.AdminMemo),
		PaymentStatus: r.PaymentStatus,
	}
}

type UpdateBookingRequest struct {
	SpecialRequests string `json:"special_requests" binding:"required"`
}

type ListBookingsQuery struct {
	Status     *string `form:"status"`
	FacilityID *string `form:"facility_id"`
	DateFrom   *string `form:"date_from"`
	DateTo     *string `form:"date_to"`
	Page       int     `form:"page"`
	Limit      int     `form:"limit"`
}

func (q ListBookingsQuery) ToFilter() (queries.BookingFilter, error) {
	var filter queries.BookingFilter
	filter.Status = q.Status

	if q.FacilityID != nil {
		id, err := uuid.Parse(*q.FacilityID)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.FacilityID = &id
	}
	if q.DateFrom != nil {
		from, err := parseDate(*q.DateFrom)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.DateFrom = &from
	}
	if q.DateTo != nil {
		to, err := parseDate(*q.DateTo)
		if err != nil {
			return queries.BookingFilter{}, err
		}
		filter.DateTo = &to
	}
	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
