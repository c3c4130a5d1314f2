// File: /controllers/errors.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gigtrack-api/metrics"
	"gigtrack-api/repositories"
	"gigtrack-api/services"
	"gigtrack-api/utils"
)

// respondError maps service and repository errors onto HTTP statuses.
// Anything unrecognised is attached to the context for ErrorHandler.
func respondError(c *gin.Context, err error) {
	var invalidRecord *metrics.InvalidRecordError

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.SendValidationError(c, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, repositories.ErrOdometerNotIncreasing):
		c.JSON(http.StatusConflict, utils.ErrorResponse{
			Error:   "Odometer must increase",
			Message: err.Error(),
			Code:    http.StatusConflict,
		})
	case errors.As(err, &invalidRecord):
		c.JSON(http.StatusUnprocessableEntity, utils.ErrorResponse{
			Error:   "Stored record is invalid",
			Message: invalidRecord.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
	default:
		_ = c.Error(err)
	}
}
