package readstore

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsReadStore struct {
	db       *pgxpool.Pool
	facility *FacilityReadStore
}

func NewAnalyticsReadStore(db *pgxpool.Pool) *AnalyticsReadStore {
	return &AnalyticsReadStore{db: db, facility: NewFacilityReadStore(db)}
}

// ListLedger fetches the raw (facility, status, amount) tuples for every
// booking whose reservation date falls inside the window. Aggregation stays
// in the usecase layer.
func (r *AnalyticsReadStore) ListLedger(ctx context.Context, from, to time.Time) ([]queries.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT facility_id, status, total_amount
		FROM bookings
		WHERE reservation_date >= $1 AND reservation_date <= $2`,
		pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking ledger", err)
	}
	defer rows.Close()

	var out []queries.LedgerEntry
	for rows.Next() {
		var e queries.LedgerEntry
		if err := rows.Scan(&e.FacilityID, &e.Status, &e.Amount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ledger row", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate ledger rows", err)
	}
	return out, nil
}

func (r *AnalyticsReadStore) CountActiveSites(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM sites WHERE is_active`).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active sites", err)
	}
	return n, nil
}

func (r *AnalyticsReadStore) CountOccupiedSites(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT count(DISTINCT site_id)
		FROM bookings
		WHERE reservation_date = $1 AND status IN ($2, $3)`,
		pgconv.DateToPgtype(date),
		booking.StatusPending.String(), booking.StatusConfirmed.String()).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count occupied sites", err)
	}
	return n, nil
}

func (r *AnalyticsReadStore) ListActiveFacilities(ctx context.Context) ([]*queries.FacilityView, error) {
	return r.facility.ListFacilities(ctx, true)
}
