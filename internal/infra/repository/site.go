package repository

import (
	"context"

	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SiteRepository struct {
	db *pgxpool.Pool
}

func NewSiteRepository(db *pgxpool.Pool) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.SiteSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, facility_id, name, capacity, is_active
		FROM sites
		WHERE id = $1`, id)

	var s commands.SiteSnapshot
	if err := row.Scan(&s.ID, &s.FacilityID, &s.Name, &s.Capacity, &s.IsActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("site not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find site", err)
	}
	return &s, nil
}

func (r *SiteRepository) FindFacilityByID(ctx context.Context, id uuid.UUID) (*commands.FacilitySnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, type, capacity, weekday_price, weekend_price, is_active
		FROM facilities
		WHERE id = $1`, id)

	var f commands.FacilitySnapshot
	if err := row.Scan(&f.ID, &f.Name, &f.Type, &f.Capacity, &f.WeekdayPrice, &f.WeekendPrice, &f.IsActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("facility not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find facility", err)
	}
	return &f, nil
}
