package repository

import (
	"context"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, facility_id, site_id, customer_id,
	guest_name, guest_phone, guest_email,
	reservation_date, time_slots, total_amount,
	status, payment_status, special_requests, admin_memo,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
)`

// The unnest insert claims every slot in one statement; the unique index on
// (site_id, reservation_date, slot) rejects the second of two racing inserts.
const claimSlotsSQL = `
INSERT INTO booking_slots (booking_id, site_id, reservation_date, slot)
SELECT $1, $2, $3, unnest($4::int[])`

func (r *BookingRepository) Create(ctx context.Context, tx infra.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.FacilityID(),
		b.SiteID(),
		pgconv.UUIDPtrToPgtype(b.CustomerID()),
		optionalText(b.Guest().Name()),
		optionalText(b.Guest().Phone()),
		optionalText(b.Guest().Email()),
		pgconv.DateToPgtype(b.Date()),
		slotsToInt32(b.Slots()),
		b.Amount().Value(),
		b.Status().String(),
		b.PaymentStatus().String(),
		optionalText(b.SpecialRequests()),
		optionalText(b.AdminMemo()),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	_, err = tx.Exec(ctx, claimSlotsSQL,
		b.ID(), b.SiteID(), pgconv.DateToPgtype(b.Date()), slotsToInt32(b.Slots()))
	if err != nil {
		return infra.WrapRepoErr("failed to claim booking slots", err)
	}
	return nil
}

const selectBookingForUpdateSQL = `
SELECT id, facility_id, site_id, customer_id,
       guest_name, guest_phone, guest_email,
       reservation_date, time_slots, total_amount,
       status, payment_status, special_requests, admin_memo,
       created_at, updated_at, cancelled_at
FROM bookings
WHERE id = $1
FOR UPDATE`

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row := tx.QueryRow(ctx, selectBookingForUpdateSQL, id)

	var (
		bID, facilityID, siteID              uuid.UUID
		customerID                           pgtype.UUID
		guestName, guestPhone, guestEmail    pgtype.Text
		date                                 pgtype.Date
		slots                                []int32
		amount                               int64
		status, paymentStatus                string
		specialRequests, adminMemo           pgtype.Text
		createdAt, updatedAt, cancelledAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&bID, &facilityID, &siteID, &customerID,
		&guestName, &guestPhone, &guestEmail,
		&date, &slots, &amount,
		&status, &paymentStatus, &specialRequests, &adminMemo,
		&createdAt, &updatedAt, &cancelledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking for update", err)
	}

	slotSet, err := booking.NewSlotSet(int32sToInts(slots))
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid slots", err)
	}
	storedAmount, err := booking.NewAmount(amount)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid amount", err)
	}

	var guest booking.GuestContact
	if guestName.Valid {
		guest, err = booking.NewGuestContact(guestName.String, guestPhone.String, guestEmail.String)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid guest contact", err)
		}
	}

	entity := booking.ReconstructBooking(
		bID, facilityID, siteID,
		pgconv.UUIDPtrFromPgtype(customerID),
		guest,
		pgconv.DateFromPgtype(date),
		slotSet,
		storedAmount,
		booking.Status(status),
		booking.PaymentStatus(paymentStatus),
		textOrEmpty(specialRequests),
		textOrEmpty(adminMemo),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
		pgconv.TimePtrFromPgtype(cancelledAt),
	)
	return entity, nil
}

const updateBookingSQL = `
UPDATE bookings
SET status = $2,
    payment_status = $3,
    special_requests = $4,
    admin_memo = $5,
    updated_at = $6,
    cancelled_at = $7
WHERE id = $1`

func (r *BookingRepository) Update(ctx context.Context, tx infra.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingSQL,
		b.ID(),
		b.Status().String(),
		b.PaymentStatus().String(),
		optionalText(b.SpecialRequests()),
		optionalText(b.AdminMemo()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) ReleaseSlots(ctx context.Context, tx infra.DBTX, bookingID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM booking_slots WHERE booking_id = $1`, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to release booking slots", err)
	}
	return nil
}

func slotsToInt32(s booking.SlotSet) []int32 {
	values := s.Values()
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}
	return out
}

func int32sToInts(s []int32) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
