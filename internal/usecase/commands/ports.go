package commands

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type SiteSnapshot struct {
	ID         uuid.UUID
	FacilityID uuid.UUID
	Name       string
	Capacity   int
	IsActive   bool
}

type FacilitySnapshot struct {
	ID           uuid.UUID
	Name         string
	Type         string
	Capacity     int
	WeekdayPrice int64
	WeekendPrice int64
	IsActive     bool
}

// StoreSettings is the per-request view of the external settings collaborator.
// Zero rows in the store fall back to config defaults.
type StoreSettings struct {
	CancelCutoffDays int
	BankName         string
	BankAccount      string
	BankHolder       string
}

type PaymentRecord struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Method    string
	Amount    int64
	Status    string
}

type BookingRepository interface {
	Create(ctx context.Context, tx infra.DBTX, b *booking.Booking) error
	FindByIDForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, tx infra.DBTX, b *booking.Booking) error
	ReleaseSlots(ctx context.Context, tx infra.DBTX, bookingID uuid.UUID) error
}

// AvailabilityChecker is the pure read side of conflict detection. A false
// result is advisory only; the slot uniqueness constraint closes the
// check-then-act window at insert time.
type AvailabilityChecker interface {
	HasConflict(ctx context.Context, siteID uuid.UUID, date time.Time, slots booking.SlotSet) (bool, error)
}

type SiteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SiteSnapshot, error)
	FindFacilityByID(ctx context.Context, id uuid.UUID) (*FacilitySnapshot, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, db infra.DBTX, rec PaymentRecord) error
	UpdateStatusByBookingID(ctx context.Context, db infra.DBTX, bookingID uuid.UUID, status string) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, db infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*StoreSettings, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, db infra.DBTX, userID uuid.UUID) error
}
