package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodshot-admin-api/config"
	"foodshot-admin-api/models"
	"foodshot-admin-api/services"
	"foodshot-admin-api/utils"
)

// GetSubmissions lists submissions, optionally filtered by client and/or
// status.
func GetSubmissions(c *gin.Context) {
	query := config.DB.Preload("Client").Preload("Editor").
		Where("delete_at IS NULL").
		Order("create_at DESC")

	if clientID := c.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if raw := c.Query("status"); raw != "" {
		status, err := services.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("status = ?", string(status))
	}

	var submissions []models.Submission
	if err := query.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// GetSubmission returns one submission with its status history.
func GetSubmission(c *gin.Context) {
	id := c.Param("id")

	var submission models.Submission
	if err := config.DB.Preload("Client").Preload("Editor").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("changed_at ASC") }).
		Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

type CreateSubmissionRequest struct {
	ClientID   *string `json:"client_id"`
	DishName   string  `json:"dish_name" binding:"required"`
	PhotoCount int     `json:"photo_count"`
}

// CreateSubmission registers a new photo-processing job in the initial
// status.
func CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	submission := models.Submission{
		SubmissionID: uuid.NewString(),
		ClientID:     req.ClientID,
		DishName:     utils.SanitizeInput(req.DishName),
		Status:       string(services.StatusPendingProcessing),
		PhotoCount:   req.PhotoCount,
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

type AssignEditorRequest struct {
	EditorID string `json:"editor_id" binding:"required"`
}

// AssignEditor attaches an editor to a submission.
func AssignEditor(c *gin.Context) {
	id := c.Param("id")

	var req AssignEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var editor models.User
	if err := config.DB.Where("user_id = ? AND role_id = ? AND delete_at IS NULL",
		req.EditorID, models.RoleEditor).First(&editor).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Editor not found"})
		return
	}

	res := config.DB.Model(&models.Submission{}).
		Where("submission_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"editor_id": req.EditorID,
			"update_at": time.Now(),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign editor"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Editor assigned"})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// UpdateSubmissionStatus changes a submission's workflow status through the
// status service, which owns the serving-ledger and notification side
// effects.
func UpdateSubmissionStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := services.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var changedBy *string
	if userID, ok := getCurrentUserID(c); ok {
		changedBy = &userID
	}

	notifier := &services.CollectingNotifier{}
	updater := services.NewStatusUpdater(config.DB, notifier, defaultInvalidator())

	updated, err := updater.UpdateSubmissionStatus(id, status, req.Note, changedBy)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrValidation):
			code = http.StatusBadRequest
		case errors.Is(err, services.ErrSubmissionNotFound):
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{
			"error":    err.Error(),
			"messages": notifier.Messages,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission": updated,
		"messages":   notifier.Messages,
	})
}
