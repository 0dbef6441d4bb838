package api

import (
	"net/http"

	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FacilityHandler struct {
	facilityQueries queries.FacilityQueries
}

func NewFacilityHandler(facilityQueries queries.FacilityQueries) *FacilityHandler {
	return &FacilityHandler{
		facilityQueries: facilityQueries,
	}
}

// @Summary List facilities
// @Description List facilities in the catalog with their site counts
// @Tags facilities
// @Produce json
// @Param include_inactive query bool false "Include inactive facilities"
// @Success 200 {array} resdto.FacilityResponse
// @Router /facilities [get]
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	onlyActive := c.Query("include_inactive") != "true"

	views, err := h.facilityQueries.ListFacilities(c.Request.Context(), onlyActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromFacilityViews(views))
}

// @Summary List sites
// @Description List the sites belonging to one facility
// @Tags facilities
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {array} resdto.SiteResponse
// @Failure 400 {object} map[string]string
// @Router /facilities/{id}/sites [get]
func (h *FacilityHandler) ListSites(c *gin.Context) {
	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid facility ID format",
		})
		return
	}

	views, err := h.facilityQueries.ListSites(c.Request.Context(), facilityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSiteViews(views))
}
