// File: /controllers/expense_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigtrack-api/models"
	"gigtrack-api/services"
	"gigtrack-api/utils"
)

type ExpenseController struct {
	ledger *services.LedgerService
}

func NewExpenseController(ledger *services.LedgerService) *ExpenseController {
	return &ExpenseController{ledger: ledger}
}

type ExpenseRequest struct {
	Date     string                 `json:"date" binding:"required"`
	Category models.ExpenseCategory `json:"category" binding:"required"`
	Cost     float64                `json:"cost" binding:"gte=0"`
	Note     string                 `json:"note" binding:"max=500"`
}

func (ec *ExpenseController) GetExpenses(c *gin.Context) {
	expenses, err := ec.ledger.ListExpenses(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := ec.ledger.AddExpense(c.GetString("user_id"), models.ExpenseLog{
		Date:     req.Date,
		Category: req.Category,
		Cost:     req.Cost,
		Note:     req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	if err := ec.ledger.DeleteExpense(c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Expense deleted", nil)
}
