// File: /controllers/trip_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigtrack-api/models"
	"gigtrack-api/services"
	"gigtrack-api/utils"
)

type TripController struct {
	ledger *services.LedgerService
}

func NewTripController(ledger *services.LedgerService) *TripController {
	return &TripController{ledger: ledger}
}

type TripRequest struct {
	Date          string          `json:"date" binding:"required"`
	Type          models.TripType `json:"type"`
	Platform      string          `json:"platform"`
	Km            float64         `json:"km" binding:"gte=0"`
	DurationHours float64         `json:"duration_hours" binding:"gte=0"`
	Earnings      float64         `json:"earnings" binding:"gte=0"`
}

func (r TripRequest) toModel() models.TripLog {
	tripType := r.Type
	if tripType == "" {
		tripType = models.TripBusiness
	}
	return models.TripLog{
		Date:          r.Date,
		Type:          tripType,
		Platform:      r.Platform,
		Km:            r.Km,
		DurationHours: r.DurationHours,
		Earnings:      r.Earnings,
	}
}

func (tc *TripController) GetTrips(c *gin.Context) {
	trips, err := tc.ledger.ListTrips(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func (tc *TripController) CreateTrip(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := tc.ledger.AddTrip(c.GetString("user_id"), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (tc *TripController) UpdateTrip(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := tc.ledger.UpdateTrip(c.GetString("user_id"), c.Param("id"), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (tc *TripController) DeleteTrip(c *gin.Context) {
	if err := tc.ledger.DeleteTrip(c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Trip deleted", nil)
}
