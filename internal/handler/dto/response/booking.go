package response

import (
	"time"

	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	FacilityID      uuid.UUID  `json:"facility_id"`
	FacilityName    *string    `json:"facility_name,omitempty"`
	SiteID          uuid.UUID  `json:"site_id"`
	SiteName        *string    `json:"site_name,omitempty"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	GuestName       *string    `json:"guest_name,omitempty"`
	GuestPhone      *string    `json:"guest_phone,omitempty"`
	GuestEmail      *string    `json:"guest_email,omitempty"`
	ReservationDate string     `json:"reservation_date"`
	TimeSlots       []int      `json:"time_slots"`
	TotalAmount     int64      `json:"total_amount"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"payment_status"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
	AdminMemo       *string    `json:"admin_memo,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

type BookingListItemResponse struct {
	ID              uuid.UUID `json:"id"`
	FacilityID      uuid.UUID `json:"facility_id"`
	FacilityName    *string   `json:"facility_name,omitempty"`
	SiteID          uuid.UUID `json:"site_id"`
	SiteName        *string   `json:"site_name,omitempty"`
	ReservationDate string    `json:"reservation_date"`
	TimeSlots       []int     `json:"time_slots"`
	TotalAmount     int64     `json:"total_amount"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingPageResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	TotalCount int64                      `json:"total_count"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	PageCount  int                        `json:"page_count"`
}

type PaymentGuideResponse struct {
	BankName    string `json:"bank_name"`
	BankAccount string `json:"bank_account"`
	BankHolder  string `json:"bank_holder"`
	Amount      int64  `json:"amount"`
}

type CreateBookingResponse struct {
	Booking      *BookingResponse     `json:"booking"`
	PaymentGuide PaymentGuideResponse `json:"payment_guide"`
}

const dateLayout = "2006-01-02"

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	resp.ReservationDate = rm.ReservationDate.Format(dateLayout)
	return &resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListItemResponse {
	var resp BookingListItemResponse
	_ = copier.Copy(&resp, rm)
	resp.ReservationDate = rm.ReservationDate.Format(dateLayout)
	return &resp
}

func FromBookingPage(page *queries.BookingPage) *BookingPageResponse {
	items := make([]*BookingListItemResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = FromBookingListItem(item)
	}
	return &BookingPageResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		PageCount:  page.PageCount,
	}
}

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: FromBookingView(result.Booking),
		PaymentGuide: PaymentGuideResponse{
			BankName:    result.PaymentGuide.BankName,
			BankAccount: result.PaymentGuide.BankAccount,
			BankHolder:  result.PaymentGuide.BankHolder,
			Amount:      result.PaymentGuide.Amount,
		},
	}
}
