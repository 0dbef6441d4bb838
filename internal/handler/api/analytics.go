package api

import (
	"net/http"

	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsQueries queries.AnalyticsQueries
}

func NewAnalyticsHandler(analyticsQueries queries.AnalyticsQueries) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsQueries: analyticsQueries,
	}
}

// @Summary Analytics summary
// @Description Aggregate revenue, reservation counts, occupancy and conversion for a period
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param period query string false "Aggregation period (week, month, quarter, year)"
// @Success 200 {object} resdto.AnalyticsSummaryResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsQueries.Summarize(c.Request.Context(), c.Query("period"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAnalyticsSummary(summary))
}
