package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/facility"
	"facility-booking/internal/domain/user"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrFacilityNotFound        = errs.New("facility not found")
	ErrSiteNotFound            = errs.New("site not found")
	ErrSiteUnavailable         = errs.New("site is not available for booking")
	ErrValidation              = errs.New("booking validation failed")
	ErrSlotConflict            = errs.New("requested time slots are already booked")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidTransition       = errs.New("illegal status transition")
	ErrAlreadyCancelled        = errs.New("booking is already cancelled")
	ErrCancelCutoff            = errs.New("cancellation cutoff window violated")
	ErrNotEditable             = errs.New("booking can no longer be edited")
	ErrForbidden               = errs.New("caller may not act on this booking")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Actor identifies the caller for ownership checks.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

type CreateBookingInput struct {
	FacilityID      uuid.UUID
	SiteID          uuid.UUID
	CustomerID      *uuid.UUID
	GuestName       *string
	GuestPhone      *string
	GuestEmail      *string
	Date            time.Time
	TimeSlots       []int
	TotalAmount     int64
	SpecialRequests *string
}

// PaymentGuide carries the bank transfer instructions returned alongside a
// freshly created booking, sourced from the settings collaborator.
type PaymentGuide struct {
	BankName    string
	BankAccount string
	BankHolder  string
	Amount      int64
}

type CreateBookingResult struct {
	Booking      *queries.BookingView
	PaymentGuide PaymentGuide
}

type UpdateStatusInput struct {
	TargetStatus  string
	AdminMemo     *string
	PaymentStatus *string
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, in UpdateStatusInput) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID, actor Actor) (*queries.BookingView, error)
	UpdateRequests(ctx context.Context, id uuid.UUID, actor Actor, specialRequests string) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo      BookingRepository
	availability     AvailabilityChecker
	siteRepo         SiteRepository
	paymentRepo      PaymentRepository
	notificationRepo NotificationRepository
	settingsRepo     SettingsRepository
	bookingQueries   queries.BookingQueries
	db               *pgxpool.Pool
	clock            clock.Clock
	defaults         config.BookingConfig
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	availability AvailabilityChecker,
	siteRepo SiteRepository,
	paymentRepo PaymentRepository,
	notificationRepo NotificationRepository,
	settingsRepo SettingsRepository,
	bookingQueries queries.BookingQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
	defaults config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:      bookingRepo,
		availability:     availability,
		siteRepo:         siteRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		settingsRepo:     settingsRepo,
		bookingQueries:   bookingQueries,
		db:               db,
		clock:            clock,
		defaults:         defaults,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	if err := c.validateReferences(ctx, in.FacilityID, in.SiteID); err != nil {
		return nil, err
	}

	entity, err := c.buildBooking(in)
	if err != nil {
		return nil, err
	}

	conflict, err := c.availability.HasConflict(ctx, entity.SiteID(), entity.Date(), entity.Slots())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	if err := c.insertBooking(ctx, entity); err != nil {
		return nil, err
	}

	settings := c.resolveSettings(ctx)

	// Best-effort side effects: a failed payment record or notification must
	// never roll back a booking that is already committed.
	c.createPaymentRecord(ctx, entity)
	c.enqueueCreatedNotification(ctx, entity.ID())

	view, err := c.bookingQueries.GetByIDSystem(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CreateBookingResult{
		Booking: view,
		PaymentGuide: PaymentGuide{
			BankName:    settings.BankName,
			BankAccount: settings.BankAccount,
			BankHolder:  settings.BankHolder,
			Amount:      entity.Amount().Value(),
		},
	}, nil
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, id uuid.UUID, in UpdateStatusInput) (*queries.BookingView, error) {
	target, err := booking.NewStatus(in.TargetStatus)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var paymentMirror *string
	err = c.withinTx(ctx, func(tx infra.DBTX) error {
		entity, txErr := c.loadForUpdate(ctx, tx, id)
		if txErr != nil {
			return txErr
		}

		now := c.clock.Now()
		if txErr := entity.TransitionTo(target, now); txErr != nil {
			return markTransitionErr(txErr)
		}
		if in.AdminMemo != nil {
			entity.SetAdminMemo(*in.AdminMemo, now)
		}
		if in.PaymentStatus != nil {
			ps, psErr := booking.NewPaymentStatus(*in.PaymentStatus)
			if psErr != nil {
				return errs.Mark(psErr, ErrValidation)
			}
			if psErr := entity.SetPaymentStatus(ps, now); psErr != nil {
				return errs.Mark(psErr, ErrValidation)
			}
			s := ps.String()
			paymentMirror = &s
		}
		if target == booking.StatusCancelled {
			if txErr := c.bookingRepo.ReleaseSlots(ctx, tx, entity.ID()); txErr != nil {
				return errs.Mark(txErr, ErrDatabaseOperationFailed)
			}
			s := "cancelled"
			paymentMirror = &s
		}

		if txErr := c.bookingRepo.Update(ctx, tx, entity); txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if paymentMirror != nil {
		c.mirrorPaymentStatus(ctx, id, *paymentMirror)
	}

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor Actor) (*queries.BookingView, error) {
	settings := c.resolveSettings(ctx)

	err := c.withinTx(ctx, func(tx infra.DBTX) error {
		entity, txErr := c.loadForUpdate(ctx, tx, id)
		if txErr != nil {
			return txErr
		}
		if txErr := requireOwnership(entity, actor); txErr != nil {
			return txErr
		}

		if txErr := entity.Cancel(c.clock.Now(), settings.CancelCutoffDays); txErr != nil {
			return markTransitionErr(txErr)
		}
		if txErr := c.bookingRepo.ReleaseSlots(ctx, tx, entity.ID()); txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		if txErr := c.bookingRepo.Update(ctx, tx, entity); txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.mirrorPaymentStatus(ctx, id, "cancelled")

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) UpdateRequests(ctx context.Context, id uuid.UUID, actor Actor, specialRequests string) (*queries.BookingView, error) {
	err := c.withinTx(ctx, func(tx infra.DBTX) error {
		entity, txErr := c.loadForUpdate(ctx, tx, id)
		if txErr != nil {
			return txErr
		}
		if txErr := requireOwnership(entity, actor); txErr != nil {
			return txErr
		}

		if txErr := entity.UpdateSpecialRequests(specialRequests, c.clock.Now()); txErr != nil {
			return errs.Mark(txErr, ErrNotEditable)
		}
		if txErr := c.bookingRepo.Update(ctx, tx, entity); txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, id)
}

func (c *bookingCommandsImpl) validateReferences(ctx context.Context, facilityID, siteID uuid.UUID) error {
	fac, err := c.validateAndGetFacility(ctx, facilityID)
	if err != nil {
		return err
	}
	if !fac.IsActive() {
		return ErrSiteUnavailable
	}

	site, err := c.validateAndGetSite(ctx, siteID)
	if err != nil {
		return err
	}
	if !site.IsActive() || site.FacilityID() != facilityID {
		return ErrSiteUnavailable
	}
	return nil
}

func (c *bookingCommandsImpl) validateAndGetFacility(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	snap, err := c.siteRepo.FindFacilityByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	fac, err := facility.NewFacility(snap.ID, snap.Name, snap.Type, snap.Capacity, snap.WeekdayPrice, snap.WeekendPrice, snap.IsActive)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return fac, nil
}

func (c *bookingCommandsImpl) validateAndGetSite(ctx context.Context, id uuid.UUID) (*facility.Site, error) {
	snap, err := c.siteRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	site, err := facility.NewSite(snap.ID, snap.FacilityID, snap.Name, snap.Capacity, snap.IsActive)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return site, nil
}

func (c *bookingCommandsImpl) buildBooking(in CreateBookingInput) (*booking.Booking, error) {
	slots, err := booking.NewSlotSet(in.TimeSlots)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	amount, err := booking.NewAmount(in.TotalAmount)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var guest *booking.GuestContact
	if in.GuestName != nil || in.GuestPhone != nil || in.GuestEmail != nil {
		g, gErr := booking.NewGuestContact(deref(in.GuestName), deref(in.GuestPhone), deref(in.GuestEmail))
		if gErr != nil {
			return nil, errs.Mark(gErr, ErrValidation)
		}
		guest = &g
	}

	entity, err := booking.NewBooking(
		in.FacilityID, in.SiteID,
		in.CustomerID, guest,
		in.Date, slots, amount,
		deref(in.SpecialRequests),
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	return entity, nil
}

// insertBooking writes the booking row and its slot rows in one transaction.
// A unique violation on (site, date, slot) means a concurrent caller won the
// race after our availability check; it surfaces as the same conflict error.
func (c *bookingCommandsImpl) insertBooking(ctx context.Context, entity *booking.Booking) error {
	return c.withinTx(ctx, func(tx infra.DBTX) error {
		if err := c.bookingRepo.Create(ctx, tx, entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) withinTx(ctx context.Context, fn func(tx infra.DBTX) error) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) loadForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*booking.Booking, error) {
	entity, err := c.bookingRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (c *bookingCommandsImpl) resolveSettings(ctx context.Context) StoreSettings {
	settings, err := c.settingsRepo.Get(ctx)
	if err != nil || settings == nil {
		if err != nil {
			slog.Warn("failed to load store settings, using config defaults", "error", err.Error())
		}
		return StoreSettings{
			CancelCutoffDays: c.defaults.CancelCutoffDays,
			BankName:         c.defaults.BankName,
			BankAccount:      c.defaults.BankAccount,
			BankHolder:       c.defaults.BankHolder,
		}
	}
	return *settings
}

func (c *bookingCommandsImpl) createPaymentRecord(ctx context.Context, entity *booking.Booking) {
	rec := PaymentRecord{
		ID:        uuid.New(),
		BookingID: entity.ID(),
		Method:    "bank_transfer",
		Amount:    entity.Amount().Value(),
		Status:    booking.PaymentWaiting.String(),
	}
	if err := c.paymentRepo.Create(ctx, c.db, rec); err != nil {
		slog.Warn("failed to create payment record for booking", "booking_id", entity.ID(), "error", err.Error())
	}
}

func (c *bookingCommandsImpl) mirrorPaymentStatus(ctx context.Context, bookingID uuid.UUID, status string) {
	if err := c.paymentRepo.UpdateStatusByBookingID(ctx, c.db, bookingID, status); err != nil {
		slog.Warn("failed to mirror payment status", "booking_id", bookingID, "status", status, "error", err.Error())
	}
}

func (c *bookingCommandsImpl) enqueueCreatedNotification(ctx context.Context, bookingID uuid.UUID) {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       "booking_created",
	})
	if err != nil {
		slog.Warn("failed to marshal notification payload", "booking_id", bookingID, "error", err.Error())
		return
	}
	if err := c.notificationRepo.CreateJob(ctx, c.db, "email", "booking_created", payload, c.clock.Now()); err != nil {
		slog.Warn("failed to enqueue booking notification", "booking_id", bookingID, "error", err.Error())
	}
}

func requireOwnership(entity *booking.Booking, actor Actor) error {
	if actor.Role.IsStaff() {
		return nil
	}
	if entity.CustomerID() != nil && *entity.CustomerID() == actor.UserID {
		return nil
	}
	return ErrForbidden
}

func markTransitionErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return errs.Mark(err, ErrAlreadyCancelled)
	case errors.Is(err, booking.ErrCancelCutoff):
		return errs.Mark(err, ErrCancelCutoff)
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, booking.ErrInvalidStatus):
		return errs.Mark(err, ErrInvalidTransition)
	default:
		return errs.Mark(err, ErrValidation)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
