package readstore

import (
	"context"

	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	db *pgxpool.Pool
}

func NewUserReadStore(db *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.UserRecord, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, role, is_active
		FROM users
		WHERE email = $1`, email)
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserRecord, error) {
	return r.findOne(ctx, `
		SELECT id, email, password_hash, role, is_active
		FROM users
		WHERE id = $1`, id)
}

func (r *UserReadStore) findOne(ctx context.Context, sql string, arg any) (*queries.UserRecord, error) {
	var u queries.UserRecord
	err := r.db.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &u, nil
}
