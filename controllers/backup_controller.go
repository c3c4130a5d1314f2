// File: /controllers/backup_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gigtrack-api/models"
	"gigtrack-api/services"
	"gigtrack-api/utils"
)

type BackupController struct {
	backups *services.BackupService
}

func NewBackupController(backups *services.BackupService) *BackupController {
	return &BackupController{backups: backups}
}

// Export downloads every record as a GigTrack backup file
func (bc *BackupController) Export(c *gin.Context) {
	backup, err := bc.backups.Export(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("gigtrack_backup_%s.json", time.Now().Format(models.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, backup)
}

// Import restores the parts present in the uploaded backup
func (bc *BackupController) Import(c *gin.Context) {
	var backup services.Backup
	if err := c.ShouldBindJSON(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid backup file: " + err.Error()})
		return
	}

	summary, err := bc.backups.Import(c.GetString("user_id"), backup)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendSuccess(c, "Backup restored", summary)
}
