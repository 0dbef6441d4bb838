//go:build e2e

package booking_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"facility-booking/internal/domain/user"
	"facility-booking/internal/handler/dto/response"
	"facility-booking/tests/common/builder"
	"facility-booking/tests/common/dbtest"
	"facility-booking/tests/common/httptest"
	"facility-booking/tests/e2e"
	"facility-booking/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/api/bookings"
	guestBookingsURL = "/api/bookings/guest"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) authHelper() *helper.JWTTestHelper {
	return helper.NewJWTTestHelper(s.DB, s.Config.JWT)
}

func dateString(daysFromNow int) string {
	return time.Now().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func bookingRequest(daysFromNow int, slots []int) map[string]any {
	b := builder.NewBookingBuilder()
	b.FacilityID = dbtest.FixtureFacilityID
	b.SiteID = dbtest.FixtureSiteID
	req := b.BuildCreateRequestDTO()
	req["reservation_date"] = dateString(daysFromNow)
	req["time_slots"] = slots
	return req
}

func (s *BookingSuite) createBooking(t *testing.T, token string, daysFromNow int, slots []int) response.CreateBookingResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(daysFromNow, slots), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.CreateBookingResponse
	_ = httptest.DecodeResponseBody(t, w.Body, &created)
	require.NotNil(t, created.Booking)
	return created
}

// =============================================================================
// TestCreateBooking - Booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: Member can create a booking and receives payment guide", func() {
		t := s.T()
		token := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		created := s.createBooking(t, token, 7, []int{10, 11, 12})

		require.Equal(t, "pending", created.Booking.Status)
		require.Equal(t, "waiting", created.Booking.PaymentStatus)
		require.Equal(t, dateString(7), created.Booking.ReservationDate)
		require.Equal(t, []int{10, 11, 12}, created.Booking.TimeSlots)
		require.Equal(t, "みずほ銀行", created.PaymentGuide.BankName)
		require.Equal(t, created.Booking.TotalAmount, created.PaymentGuide.Amount)

		// Detail is readable by its owner
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.Booking.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code, dw.Body.String())
	})

	s.Run("Normal case: Guest can create a booking without an account", func() {
		t := s.T()

		req := bookingRequest(7, []int{14, 15})
		req["guest_name"] = "山田太郎"
		req["guest_phone"] = "090-0000-0000"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, guestBookingsURL, req, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.CreateBookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)
		require.Equal(t, "pending", created.Booking.Status)
		require.NotNil(t, created.Booking.GuestName)
		require.Equal(t, "山田太郎", *created.Booking.GuestName)
		require.Nil(t, created.Booking.CustomerID)
	})

	s.Run("Normal case: Guest intake tolerates tokens without changing the outcome", func() {
		t := s.T()
		token := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		// A logged-in member posting to the guest endpoint still gets a
		// guest booking; the token is observed, not required.
		req := bookingRequest(7, []int{16, 17})
		req["guest_name"] = "山田太郎"
		req["guest_phone"] = "090-0000-0000"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, guestBookingsURL, req, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.CreateBookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &created)
		require.Nil(t, created.Booking.CustomerID)

		// A malformed token does not abort the request either
		req = bookingRequest(7, []int{18, 19})
		req["guest_name"] = "山田太郎"
		req["guest_phone"] = "090-0000-0000"

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, guestBookingsURL, req, "not-a-jwt")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: Guest booking without contact details fails", func() {
		t := s.T()

		req := bookingRequest(7, []int{14, 15})
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, guestBookingsURL, req, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: Unknown facility returns 404", func() {
		t := s.T()
		token := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		req := bookingRequest(7, []int{10})
		req["facility_id"] = uuid.New().String()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Facility not found")
	})

	s.Run("Error case: Inactive site is rejected", func() {
		t := s.T()
		token := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		req := bookingRequest(7, []int{10})
		req["site_id"] = dbtest.FixtureInactiveSiteID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "not available")
	})

	s.Run("Error case: Overlapping slots on the same site and date conflict", func() {
		t := s.T()
		auth := s.authHelper()
		firstToken := auth.CreateAndLogin(t, s.Router, "first@example.com", string(user.RoleCustomer))
		secondToken := auth.CreateAndLogin(t, s.Router, "second@example.com", string(user.RoleCustomer))

		s.createBooking(t, firstToken, 7, []int{10, 11, 12})

		// Any shared slot is enough to conflict
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(7, []int{12, 13}), secondToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already booked")

		// Disjoint slots on the same site and date are fine
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(7, []int{13, 14}), secondToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// The same slots on a different date are fine too
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(8, []int{10, 11, 12}), secondToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: Slot claims reject overlaps the availability read cannot see", func() {
		t := s.T()
		token := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		created := s.createBooking(t, token, 7, []int{10, 11})

		// Flip the booking to cancelled behind the API's back, leaving its
		// slot claims in place. The availability read now sees no active
		// booking, so only the unique index can stop the overlap.
		_, err := s.DB.Exec(context.Background(),
			`UPDATE bookings SET status = 'cancelled' WHERE id = $1`, created.Booking.ID)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(7, []int{11, 12}), token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already booked")
	})

	s.Run("Error case: Cancelled bookings release their slots", func() {
		t := s.T()
		token := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		created := s.createBooking(t, token, 7, []int{10, 11})

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.Booking.ID.String()+"/cancel", nil, token)
		require.Equal(t, http.StatusOK, cw.Code, cw.Body.String())

		// Slots freed by the cancellation can be booked again
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingRequest(7, []int{10, 11}), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestBookingLifecycle - Status transitions and cancellation rules
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: Staff can confirm a pending booking", func() {
		t := s.T()
		auth := s.authHelper()
		customerToken := auth.CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))
		staffToken := auth.CreateAndLogin(t, s.Router, "staff@example.com", string(user.RoleStaff))

		created := s.createBooking(t, customerToken, 7, []int{10, 11})
		statusURL := bookingsURL + "/" + created.Booking.ID.String() + "/status"

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]any{"status": "confirmed", "payment_status": "completed"}, staffToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &updated)
		require.Equal(t, "confirmed", updated.Status)
		require.Equal(t, "completed", updated.PaymentStatus)

		// Confirmed never goes back to pending
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL,
			map[string]any{"status": "pending"}, staffToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Illegal status transition")
	})

	s.Run("Error case: Customers cannot call the status endpoint", func() {
		t := s.T()
		customerToken := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		created := s.createBooking(t, customerToken, 7, []int{10})

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+created.Booking.ID.String()+"/status",
			map[string]any{"status": "confirmed"}, customerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Normal case: Customer can cancel before the cutoff", func() {
		t := s.T()
		customerToken := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		created := s.createBooking(t, customerToken, 2, []int{10, 11})
		cancelURL := bookingsURL + "/" + created.Booking.ID.String() + "/cancel"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, customerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)

		// Cancelled is terminal
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, customerToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already cancelled")
	})

	s.Run("Error case: Same-day cancellation is blocked by the cutoff", func() {
		t := s.T()
		customerToken := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		created := s.createBooking(t, customerToken, 0, []int{20, 21})

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			bookingsURL+"/"+created.Booking.ID.String()+"/cancel", nil, customerToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "deadline has passed")
	})

	s.Run("Error case: A customer cannot touch another customer's booking", func() {
		t := s.T()
		auth := s.authHelper()
		ownerToken := auth.CreateAndLogin(t, s.Router, "owner@example.com", string(user.RoleCustomer))
		otherToken := auth.CreateAndLogin(t, s.Router, "other@example.com", string(user.RoleCustomer))

		created := s.createBooking(t, ownerToken, 7, []int{10})
		id := created.Booking.ID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+id, nil, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "another customer")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+id+"/cancel", nil, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "another customer")
	})

	s.Run("Normal case: Special requests are editable while pending only", func() {
		t := s.T()
		auth := s.authHelper()
		customerToken := auth.CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))
		staffToken := auth.CreateAndLogin(t, s.Router, "staff@example.com", string(user.RoleStaff))

		created := s.createBooking(t, customerToken, 7, []int{10})
		bookingURL := bookingsURL + "/" + created.Booking.ID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingURL,
			map[string]any{"special_requests": "電源サイト希望"}, customerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.BookingResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &updated)
		require.NotNil(t, updated.SpecialRequests)
		require.Equal(t, "電源サイト希望", *updated.SpecialRequests)

		// Once confirmed, the edit window closes
		sw := httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingURL+"/status",
			map[string]any{"status": "confirmed"}, staffToken)
		require.Equal(t, http.StatusOK, sw.Code, sw.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, bookingURL,
			map[string]any{"special_requests": "やっぱり変更したい"}, customerToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "no longer be edited")
	})
}

// =============================================================================
// TestListBookings - Listing and ownership scoping
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: Customers only see their own bookings", func() {
		t := s.T()
		auth := s.authHelper()
		firstToken := auth.CreateAndLogin(t, s.Router, "first@example.com", string(user.RoleCustomer))
		secondToken := auth.CreateAndLogin(t, s.Router, "second@example.com", string(user.RoleCustomer))

		s.createBooking(t, firstToken, 7, []int{10, 11})
		s.createBooking(t, secondToken, 7, []int{14, 15})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, firstToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var page response.BookingPageResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &page)
		require.Equal(t, int64(1), page.TotalCount)
		require.Len(t, page.Items, 1)
		require.Equal(t, []int{10, 11}, page.Items[0].TimeSlots)
	})

	s.Run("Normal case: Staff see every booking and can filter by status", func() {
		t := s.T()
		auth := s.authHelper()
		customerToken := auth.CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))
		staffToken := auth.CreateAndLogin(t, s.Router, "staff@example.com", string(user.RoleStaff))

		first := s.createBooking(t, customerToken, 5, []int{10})
		s.createBooking(t, customerToken, 6, []int{10})

		sw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			bookingsURL+"/"+first.Booking.ID.String()+"/status",
			map[string]any{"status": "confirmed"}, staffToken)
		require.Equal(t, http.StatusOK, sw.Code, sw.Body.String())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, staffToken)
		require.Equal(t, http.StatusOK, w.Code)

		var page response.BookingPageResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &page)
		require.Equal(t, int64(2), page.TotalCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=confirmed", nil, staffToken)
		require.Equal(t, http.StatusOK, w.Code)

		_ = httptest.DecodeResponseBody(t, w.Body, &page)
		require.Equal(t, int64(1), page.TotalCount)
		require.Equal(t, "confirmed", page.Items[0].Status)
	})
}

// =============================================================================
// TestFacilitiesAndAnalytics - Catalog listing and admin summary
// =============================================================================

func (s *BookingSuite) TestFacilitiesAndAnalytics() {
	s.Run("Normal case: Facility catalog hides inactive facilities by default", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/facilities", nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var facilities []response.FacilityResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &facilities)
		require.Len(t, facilities, 1)
		require.Equal(t, "Forest Camp", facilities[0].Name)

		sw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			"/api/facilities/"+dbtest.FixtureFacilityID.String()+"/sites", nil, "")
		require.Equal(t, http.StatusOK, sw.Code)
	})

	s.Run("Normal case: Staff analytics summary reflects bookings", func() {
		t := s.T()
		auth := s.authHelper()
		customerToken := auth.CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))
		staffToken := auth.CreateAndLogin(t, s.Router, "staff@example.com", string(user.RoleStaff))

		s.createBooking(t, customerToken, 0, []int{10, 11})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/analytics/summary?period=week", nil, staffToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var summary response.AnalyticsSummaryResponse
		_ = httptest.DecodeResponseBody(t, w.Body, &summary)
		require.Equal(t, "week", summary.Period)
		require.Equal(t, int64(1), summary.ReservationCount)
		require.Positive(t, summary.Revenue)
		require.Positive(t, summary.OccupancyRate)
	})

	s.Run("Error case: Customers cannot read the analytics summary", func() {
		t := s.T()
		customerToken := s.authHelper().CreateAndLogin(t, s.Router, "member@example.com", string(user.RoleCustomer))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/admin/analytics/summary", nil, customerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
