//go:build unit

package readstore

import (
	"testing"
	"time"

	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildBookingFilter(t *testing.T) {
	status := "pending"
	facilityID := uuid.New()
	customerID := uuid.New()
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	t.Run("no filters", func(t *testing.T) {
		where, args := buildBookingFilter(queries.BookingFilter{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("single filter", func(t *testing.T) {
		where, args := buildBookingFilter(queries.BookingFilter{Status: &status})
		assert.Equal(t, " WHERE b.status = $1", where)
		assert.Equal(t, []any{status}, args)
	})

	t.Run("placeholders stay aligned with argument order", func(t *testing.T) {
		where, args := buildBookingFilter(queries.BookingFilter{
			Status:     &status,
			FacilityID: &facilityID,
			CustomerID: &customerID,
			DateFrom:   &from,
			DateTo:     &to,
		})
		assert.Equal(t,
			" WHERE b.status = $1 AND b.facility_id = $2 AND b.customer_id = $3 AND b.reservation_date >= $4 AND b.reservation_date <= $5",
			where)
		assert.Equal(t, []any{status, facilityID, customerID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to)}, args)
	})

	t.Run("skipped filters do not leave placeholder gaps", func(t *testing.T) {
		where, args := buildBookingFilter(queries.BookingFilter{
			CustomerID: &customerID,
			DateTo:     &to,
		})
		assert.Equal(t, " WHERE b.customer_id = $1 AND b.reservation_date <= $2", where)
		assert.Equal(t, []any{customerID, pgconv.DateToPgtype(to)}, args)
	})
}
