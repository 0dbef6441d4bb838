package response

import (
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type FacilityResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Capacity     int       `json:"capacity"`
	WeekdayPrice int64     `json:"weekday_price"`
	WeekendPrice int64     `json:"weekend_price"`
	IsActive     bool      `json:"is_active"`
	SiteCount    int       `json:"site_count"`
}

type SiteResponse struct {
	ID         uuid.UUID `json:"id"`
	FacilityID uuid.UUID `json:"facility_id"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	IsActive   bool      `json:"is_active"`
}

func FromFacilityViews(views []*queries.FacilityView) []*FacilityResponse {
	out := make([]*FacilityResponse, len(views))
	for i, v := range views {
		var resp FacilityResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}

func FromSiteViews(views []*queries.SiteView) []*SiteResponse {
	out := make([]*SiteResponse, len(views))
	for i, v := range views {
		var resp SiteResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}
