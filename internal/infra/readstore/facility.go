package readstore

import (
	"context"

	"facility-booking/internal/infra"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FacilityReadStore struct {
	db *pgxpool.Pool
}

func NewFacilityReadStore(db *pgxpool.Pool) *FacilityReadStore {
	return &FacilityReadStore{db: db}
}

func (r *FacilityReadStore) ListFacilities(ctx context.Context, onlyActive bool) ([]*queries.FacilityView, error) {
	sql := `
SELECT f.id, f.name, f.type, f.capacity, f.weekday_price, f.weekend_price, f.is_active,
       count(s.id) AS site_count
FROM facilities f
LEFT JOIN sites s ON s.facility_id = f.id AND s.is_active
`
	if onlyActive {
		sql += "WHERE f.is_active\n"
	}
	sql += "GROUP BY f.id\nORDER BY f.name"

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list facilities", err)
	}
	defer rows.Close()

	var out []*queries.FacilityView
	for rows.Next() {
		var v queries.FacilityView
		err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.Capacity,
			&v.WeekdayPrice, &v.WeekendPrice, &v.IsActive, &v.SiteCount)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan facility row", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate facility rows", err)
	}
	return out, nil
}

func (r *FacilityReadStore) ListSites(ctx context.Context, facilityID uuid.UUID) ([]*queries.SiteView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, facility_id, name, capacity, is_active
		FROM sites
		WHERE facility_id = $1
		ORDER BY name`, facilityID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sites", err)
	}
	defer rows.Close()

	var out []*queries.SiteView
	for rows.Next() {
		var v queries.SiteView
		if err := rows.Scan(&v.ID, &v.FacilityID, &v.Name, &v.Capacity, &v.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan site row", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate site rows", err)
	}
	return out, nil
}
