package repository

import (
	"context"

	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the single store_settings row. A missing row maps to
// KindNotFound; callers fall back to config defaults.
func (r *SettingsRepository) Get(ctx context.Context) (*commands.StoreSettings, error) {
	row := r.db.QueryRow(ctx, `
		SELECT cancel_cutoff_days, bank_name, bank_account, bank_holder
		FROM store_settings
		ORDER BY updated_at DESC
		LIMIT 1`)

	var s commands.StoreSettings
	if err := row.Scan(&s.CancelCutoffDays, &s.BankName, &s.BankAccount, &s.BankHolder); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("store settings not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load store settings", err)
	}
	return &s, nil
}
