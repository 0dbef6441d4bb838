package response

import (
	"time"

	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AnalyticsSummaryResponse struct {
	Period           string                       `json:"period"`
	RangeFrom        time.Time                    `json:"range_from"`
	RangeTo          time.Time                    `json:"range_to"`
	Revenue          int64                        `json:"revenue"`
	ReservationCount int64                        `json:"reservation_count"`
	OccupancyRate    float64                      `json:"occupancy_rate"`
	ConversionRate   float64                      `json:"conversion_rate"`
	Facilities       []*FacilityBreakdownResponse `json:"facilities"`
}

type FacilityBreakdownResponse struct {
	FacilityID       uuid.UUID `json:"facility_id"`
	FacilityName     string    `json:"facility_name"`
	SiteCount        int       `json:"site_count"`
	ReservationCount int64     `json:"reservation_count"`
	Revenue          int64     `json:"revenue"`
}

func FromAnalyticsSummary(rm *queries.AnalyticsSummary) *AnalyticsSummaryResponse {
	var resp AnalyticsSummaryResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
