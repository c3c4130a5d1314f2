// File: /controllers/car_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigtrack-api/models"
	"gigtrack-api/services"
)

// CarController serves the car profile and the driver's settings
type CarController struct {
	ledger *services.LedgerService
}

func NewCarController(ledger *services.LedgerService) *CarController {
	return &CarController{ledger: ledger}
}

type CarRequest struct {
	Name     string          `json:"name" binding:"required"`
	FuelType models.FuelType `json:"fuel_type" binding:"required"`
	TankSize float64         `json:"tank_size" binding:"required,gt=0"`
	Odometer float64         `json:"odometer" binding:"gte=0"`
}

type SettingsRequest struct {
	TaxRatePercent    float64 `json:"tax_rate_percent" binding:"gte=0,lte=100"`
	WeeklyGoalAmount  float64 `json:"weekly_goal_amount" binding:"gte=0"`
	CurrencyCode      string  `json:"currency_code"`
	WeeklyReportEmail bool    `json:"weekly_report_email"`
}

func (cc *CarController) GetCar(c *gin.Context) {
	car, err := cc.ledger.GetCar(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (cc *CarController) SaveCar(c *gin.Context) {
	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := cc.ledger.SaveCar(c.GetString("user_id"), models.Car{
		Name:     req.Name,
		FuelType: req.FuelType,
		TankSize: req.TankSize,
		Odometer: req.Odometer,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (cc *CarController) GetSettings(c *gin.Context) {
	settings, err := cc.ledger.GetSettings(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (cc *CarController) SaveSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := cc.ledger.SaveSettings(c.GetString("user_id"), models.Settings{
		TaxRatePercent:    req.TaxRatePercent,
		WeeklyGoalAmount:  req.WeeklyGoalAmount,
		CurrencyCode:      req.CurrencyCode,
		WeeklyReportEmail: req.WeeklyReportEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
