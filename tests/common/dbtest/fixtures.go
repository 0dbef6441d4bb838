//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Fixed fixture IDs so tests can reference seeded rows directly.
var (
	FixtureFacilityID         = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	FixtureSiteID             = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	FixtureSecondSiteID       = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	FixtureInactiveFacilityID = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	FixtureInactiveSiteID     = uuid.MustParse("55555555-5555-5555-5555-555555555555")
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	// bcrypt hash of "password123"
	passwordHash := "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO facilities (id, name, type, capacity, weekday_price, weekend_price, is_active) VALUES
		    ($1, 'Forest Camp', 'campsite', 40, 9000, 15000, true),
		    ($2, 'Closed Lodge', 'lodge', 10, 20000, 30000, false)
		ON CONFLICT (id) DO NOTHING;
	`, FixtureFacilityID, FixtureInactiveFacilityID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO sites (id, facility_id, name, capacity, is_active) VALUES
		    ($1, $3, 'A-1', 4, true),
		    ($2, $3, 'A-2', 6, true),
		    ($4, $3, 'B-1', 4, false)
		ON CONFLICT (id) DO NOTHING;
	`, FixtureSiteID, FixtureSecondSiteID, FixtureFacilityID, FixtureInactiveSiteID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO store_settings (cancel_cutoff_days, bank_name, bank_account, bank_holder)
		SELECT 1, 'みずほ銀行', '普通 1234567', 'カ）フォレストキャンプ'
		WHERE NOT EXISTS (SELECT 1 FROM store_settings);
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
