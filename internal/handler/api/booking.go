package api

import (
	"errors"
	"net/http"

	reqdto "facility-booking/internal/handler/dto/request"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Create a new booking for the authenticated customer
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation date format",
		})
		return
	}

	h.create(c, input)
}

// @Summary Create guest booking
// @Description Create a booking without an account using contact details
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateGuestBookingRequest true "Guest booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/guest [post]
func (h *BookingHandler) CreateGuestBooking(c *gin.Context) {
	var req reqdto.CreateGuestBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation date format",
		})
		return
	}

	h.create(c, input)
}

func (h *BookingHandler) create(c *gin.Context, input commands.CreateBookingInput) {
	result, err := h.bookingCommands.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrFacilityNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Facility not found",
			})
		case errors.Is(err, commands.ErrSiteNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Site not found",
			})
		case errors.Is(err, commands.ErrSiteUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Site is not available for booking",
			})
		case errors.Is(err, commands.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Requested time slots are already booked",
			})
		case errors.Is(err, commands.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Get booking
// @Description Get booking by ID; customers only see their own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, actor, ok := h.bookingTarget(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor.UserID, actor.Role.IsStaff(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrBookingAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Booking belongs to another customer",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings with optional filters; customers only see their own
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param facility_id query string false "Filter by facility"
// @Param date_from query string false "Reservation date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Reservation date upper bound (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, _ := middleware.GetUserRole(c)

	var q reqdto.ListBookingsQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	filter, err := q.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid filter parameters",
		})
		return
	}
	if !role.IsStaff() {
		filter.CustomerID = &userID
	}

	page, err := h.bookingQueries.List(c.Request.Context(), filter, q.Page, q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingPage(page))
}

// @Summary Update booking status
// @Description Transition a booking through its lifecycle (staff only)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateStatusRequest true "Status update"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, _, ok := h.bookingTarget(c)
	if !ok {
		return
	}

	var req reqdto.UpdateStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.UpdateStatus(c.Request.Context(), id, req.ToInput())
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a booking; customers may cancel their own until the cutoff
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, actor, ok := h.bookingTarget(c)
	if !ok {
		return
	}

	view, err := h.bookingCommands.Cancel(c.Request.Context(), id, actor)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking
// @Description Update the special requests of a pending booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Booking update"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, actor, ok := h.bookingTarget(c)
	if !ok {
		return
	}

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.UpdateRequests(c.Request.Context(), id, actor, req.SpecialRequests)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) bookingTarget(c *gin.Context) (uuid.UUID, commands.Actor, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return uuid.Nil, commands.Actor{}, false
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, commands.Actor{}, false
	}
	role, _ := middleware.GetUserRole(c)

	return id, commands.Actor{UserID: userID, Role: role}, true
}

func (h *BookingHandler) respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Booking belongs to another customer",
		})
	case errors.Is(err, commands.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is already cancelled",
		})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Illegal status transition",
		})
	case errors.Is(err, commands.ErrCancelCutoff):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Cancellation deadline has passed",
		})
	case errors.Is(err, commands.ErrNotEditable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking can no longer be edited",
		})
	case errors.Is(err, commands.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
