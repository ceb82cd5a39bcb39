package handlers

import (
	"net/http"

	"parking-backend/internal/services"
	"parking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BackupHandler struct {
	backupService *services.BackupService
	validator     *validator.Validate
}

func NewBackupHandler(backupService *services.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
		validator:     validator.New(),
	}
}

// RunBackup exports the selected collections and records the result
func (h *BackupHandler) RunBackup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.RunBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	history, err := h.backupService.Run(&req, userID.(string))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Backup failed", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Backup completed successfully", history)
}

// GetBackups lists backup history, newest first
func (h *BackupHandler) GetBackups(c *gin.Context) {
	history, err := h.backupService.GetHistory()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve backup history", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Backup history retrieved successfully", history)
}

// DeleteBackup removes a history record and its file
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	if err := h.backupService.DeleteHistory(c.Param("id")); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete backup", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Backup deleted successfully", nil)
}
