// File: /controllers/analytics_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gigtrack-api/metrics"
	"gigtrack-api/models"
	"gigtrack-api/services"
)

type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

// boolQuery reads a true/false query parameter, falling back to def when absent
func boolQuery(c *gin.Context, name string, def bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

func granularityQuery(c *gin.Context) (metrics.Granularity, error) {
	raw := c.DefaultQuery("granularity", string(metrics.Week))
	return metrics.ParseGranularity(raw)
}

func (ac *AnalyticsController) GetFuelEfficiency(c *gin.Context) {
	est, err := ac.analytics.FuelEfficiency(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// GetPeriod summarises one calendar window.
// Query: granularity (day|week|month|year), date (YYYY-MM-DD, default today),
// include_expenses, include_tax, include_personal_fuel (default true).
func (ac *AnalyticsController) GetPeriod(c *gin.Context) {
	granularity, err := granularityQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	anchor, err := ac.analytics.ParseAnchor(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	toggles := metrics.DefaultToggles()
	for name, dst := range map[string]*bool{
		"include_expenses":      &toggles.IncludeExternalExpenses,
		"include_tax":           &toggles.IncludeTax,
		"include_personal_fuel": &toggles.IncludePersonalFuel,
	} {
		v, err := boolQuery(c, name, true)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be true or false"})
			return
		}
		*dst = v
	}

	report, err := ac.analytics.Period(c.GetString("user_id"), services.PeriodRequest{
		Granularity: granularity,
		Anchor:      anchor,
		Toggles:     toggles,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Navigate moves the anchor one window back (direction=-1) or forward (1)
func (ac *AnalyticsController) Navigate(c *gin.Context) {
	granularity, err := granularityQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	anchor, err := ac.analytics.ParseAnchor(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	direction, err := strconv.Atoi(c.DefaultQuery("direction", "1"))
	if err != nil || (direction != 1 && direction != -1) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 1 or -1"})
		return
	}

	next, window := ac.analytics.Navigate(granularity, anchor, direction)
	c.JSON(http.StatusOK, gin.H{
		"date":   next.Format(models.DateLayout),
		"window": window,
	})
}

func (ac *AnalyticsController) GetTrips(c *gin.Context) {
	trips, err := ac.analytics.Trips(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func (ac *AnalyticsController) GetWeeklyGoal(c *gin.Context) {
	status, err := ac.analytics.WeeklyGoal(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
