package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	db *pgxpool.Pool
}

func NewBookingReadStore(db *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const selectBookingViewSQL = `
SELECT b.id, b.facility_id, f.name, b.site_id, s.name,
       b.customer_id, b.guest_name, b.guest_phone, b.guest_email,
       b.reservation_date, b.time_slots, b.total_amount,
       b.status, b.payment_status, b.special_requests, b.admin_memo,
       b.created_at, b.updated_at, b.cancelled_at
FROM bookings b
LEFT JOIN facilities f ON f.id = b.facility_id
LEFT JOIN sites s ON s.id = b.site_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, selectBookingViewSQL, id)

	var (
		v                                 queries.BookingView
		facilityName, siteName            pgtype.Text
		customerID                        pgtype.UUID
		guestName, guestPhone, guestEmail pgtype.Text
		date                              pgtype.Date
		slots                             []int32
		specialRequests, adminMemo        pgtype.Text
		createdAt, updatedAt, cancelledAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.FacilityID, &facilityName, &v.SiteID, &siteName,
		&customerID, &guestName, &guestPhone, &guestEmail,
		&date, &slots, &v.TotalAmount,
		&v.Status, &v.PaymentStatus, &specialRequests, &adminMemo,
		&createdAt, &updatedAt, &cancelledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	v.FacilityName = pgconv.StringPtrFromPgtype(facilityName)
	v.SiteName = pgconv.StringPtrFromPgtype(siteName)
	v.CustomerID = pgconv.UUIDPtrFromPgtype(customerID)
	v.GuestName = pgconv.StringPtrFromPgtype(guestName)
	v.GuestPhone = pgconv.StringPtrFromPgtype(guestPhone)
	v.GuestEmail = pgconv.StringPtrFromPgtype(guestEmail)
	v.ReservationDate = pgconv.DateFromPgtype(date)
	v.TimeSlots = int32sToInts(slots)
	v.SpecialRequests = pgconv.StringPtrFromPgtype(specialRequests)
	v.AdminMemo = pgconv.StringPtrFromPgtype(adminMemo)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	v.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &v, nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter, limit, offset int) ([]*queries.BookingListItem, int64, error) {
	where, args := buildBookingFilter(filter)

	var total int64
	countSQL := "SELECT count(*) FROM bookings b" + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count bookings", err)
	}

	listSQL := fmt.Sprintf(`
SELECT b.id, b.facility_id, f.name, b.site_id, s.name,
       b.reservation_date, b.time_slots, b.total_amount,
       b.status, b.payment_status, b.created_at
FROM bookings b
LEFT JOIN facilities f ON f.id = b.facility_id
LEFT JOIN sites s ON s.id = b.site_id
%s
ORDER BY b.created_at DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0, limit)
	for rows.Next() {
		var (
			item                   queries.BookingListItem
			facilityName, siteName pgtype.Text
			date                   pgtype.Date
			slots                  []int32
			createdAt              pgtype.Timestamptz
		)
		err := rows.Scan(
			&item.ID, &item.FacilityID, &facilityName, &item.SiteID, &siteName,
			&date, &slots, &item.TotalAmount,
			&item.Status, &item.PaymentStatus, &createdAt,
		)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.FacilityName = pgconv.StringPtrFromPgtype(facilityName)
		item.SiteName = pgconv.StringPtrFromPgtype(siteName)
		item.ReservationDate = pgconv.DateFromPgtype(date)
		item.TimeSlots = int32sToInts(slots)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, total, nil
}

func buildBookingFilter(filter queries.BookingFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != nil {
		add("b.status = $%d", *filter.Status)
	}
	if filter.FacilityID != nil {
		add("b.facility_id = $%d", *filter.FacilityID)
	}
	if filter.CustomerID != nil {
		add("b.customer_id = $%d", *filter.CustomerID)
	}
	if filter.DateFrom != nil {
		add("b.reservation_date >= $%d", pgconv.DateToPgtype(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		add("b.reservation_date <= $%d", pgconv.DateToPgtype(*filter.DateTo))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// FindActiveSlotSets returns the claimed slot sets of every pending or
// confirmed booking on the site and date. Cancelled bookings do not hold
// slots.
func (r *BookingReadStore) FindActiveSlotSets(ctx context.Context, siteID uuid.UUID, date time.Time) ([]booking.SlotSet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT time_slots
		FROM bookings
		WHERE site_id = $1
		  AND reservation_date = $2
		  AND status IN ($3, $4)`,
		siteID, pgconv.DateToPgtype(date),
		booking.StatusPending.String(), booking.StatusConfirmed.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load active slot sets", err)
	}
	defer rows.Close()

	var sets []booking.SlotSet
	for rows.Next() {
		var raw []int32
		if err := rows.Scan(&raw); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		set, err := booking.NewSlotSet(int32sToInts(raw))
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid slots", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}
	return sets, nil
}

// HasConflict is the advisory availability check. The definitive guard is the
// unique index on booking_slots, enforced at insert time.
func (r *BookingReadStore) HasConflict(ctx context.Context, siteID uuid.UUID, date time.Time, slots booking.SlotSet) (bool, error) {
	existing, err := r.FindActiveSlotSets(ctx, siteID, date)
	if err != nil {
		return false, err
	}
	return booking.HasSlotConflict(slots, existing), nil
}

func int32sToInts(s []int32) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}
