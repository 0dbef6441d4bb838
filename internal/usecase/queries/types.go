package queries

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	FacilityID      uuid.UUID  `json:"facility_id"`
	FacilityName    *string    `json:"facility_name,omitempty"`
	SiteID          uuid.UUID  `json:"site_id"`
	SiteName        *string    `json:"site_name,omitempty"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	GuestName       *string    `json:"guest_name,omitempty"`
	GuestPhone      *string    `json:"guest_phone,omitempty"`
	GuestEmail      *string    `json:"guest_email,omitempty"`
	ReservationDate time.Time  `json:"reservation_date"`
	TimeSlots       []int      `json:"time_slots"`
	TotalAmount     int64      `json:"total_amount"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"payment_status"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
	AdminMemo       *string    `json:"admin_memo,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	FacilityID      uuid.UUID `json:"facility_id"`
	FacilityName    *string   `json:"facility_name,omitempty"`
	SiteID          uuid.UUID `json:"site_id"`
	SiteName        *string   `json:"site_name,omitempty"`
	ReservationDate time.Time `json:"reservation_date"`
	TimeSlots       []int     `json:"time_slots"`
	TotalAmount     int64     `json:"total_amount"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingFilter narrows list queries; nil fields mean "no filter".
type BookingFilter struct {
	Status     *string
	FacilityID *uuid.UUID
	CustomerID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

type BookingPage struct {
	Items      []*BookingListItem `json:"items"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	PageCount  int                `json:"page_count"`
}

type FacilityView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Capacity     int       `json:"capacity"`
	WeekdayPrice int64     `json:"weekday_price"`
	WeekendPrice int64     `json:"weekend_price"`
	IsActive     bool      `json:"is_active"`
	SiteCount    int       `json:"site_count"`
}

type SiteView struct {
	ID         uuid.UUID `json:"id"`
	FacilityID uuid.UUID `json:"facility_id"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	IsActive   bool      `json:"is_active"`
}

type UserRecord struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
