// File: /controllers/fuel_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigtrack-api/models"
	"gigtrack-api/services"
	"gigtrack-api/utils"
)

type FuelController struct {
	ledger *services.LedgerService
}

func NewFuelController(ledger *services.LedgerService) *FuelController {
	return &FuelController{ledger: ledger}
}

// FuelRequest has no total; it is always litres times price
type FuelRequest struct {
	Date          string  `json:"date" binding:"required"`
	Odometer      float64 `json:"odometer" binding:"gte=0"`
	Litres        float64 `json:"litres" binding:"required,gt=0"`
	PricePerLitre float64 `json:"price_per_litre" binding:"required,gt=0"`
	FullTank      bool    `json:"full_tank"`
}

func (fc *FuelController) GetFuelLogs(c *gin.Context) {
	logs, err := fc.ledger.ListFuel(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fuel_logs": logs})
}

func (fc *FuelController) CreateFuelLog(c *gin.Context) {
	var req FuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := fc.ledger.AddFuel(c.GetString("user_id"), models.FuelLog{
		Date:          req.Date,
		Odometer:      req.Odometer,
		Litres:        req.Litres,
		PricePerLitre: req.PricePerLitre,
		FullTank:      req.FullTank,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (fc *FuelController) DeleteFuelLog(c *gin.Context) {
	if err := fc.ledger.DeleteFuel(c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Fuel log deleted", nil)
}
