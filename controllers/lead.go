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
	"foodshot-admin-api/utils"
)

var errLeadAlreadyConverted = errors.New("lead already converted")

var leadStatuses = map[string]bool{
	"new":       true,
	"contacted": true,
	"converted": true,
	"closed":    true,
}

// GetLeads lists leads, optionally filtered by status.
func GetLeads(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL").Order("create_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var leads []models.Lead
	if err := query.Find(&leads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

type CreateLeadRequest struct {
	BusinessName string  `json:"business_name" binding:"required"`
	ContactName  *string `json:"contact_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Source       *string `json:"source"`
	Notes        *string `json:"notes"`
}

func CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	lead := models.Lead{
		LeadID:       uuid.NewString(),
		BusinessName: utils.SanitizeInput(req.BusinessName),
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Source:       req.Source,
		Notes:        req.Notes,
		Status:       "new",
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&lead).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lead"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func UpdateLeadStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !leadStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown lead status"})
		return
	}

	res := config.DB.Model(&models.Lead{}).
		Where("lead_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"status":    req.Status,
			"update_at": time.Now(),
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lead"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead updated"})
}

// ConvertLead turns a lead into a client and marks the lead converted, in
// one transaction.
func ConvertLead(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var lead models.Lead
		if err := tx.Where("lead_id = ? AND delete_at IS NULL", id).
			First(&lead).Error; err != nil {
			return err
		}
		if lead.Status == "converted" {
			return errLeadAlreadyConverted
		}

		now := time.Now()
		client = models.Client{
			ClientID:     uuid.NewString(),
			BusinessName: lead.BusinessName,
			ContactName:  lead.ContactName,
			Email:        lead.Email,
			Phone:        lead.Phone,
			CreateAt:     &now,
			UpdateAt:     &now,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		return tx.Model(&models.Lead{}).
			Where("lead_id = ?", id).
			Updates(map[string]interface{}{
				"status":    "converted",
				"update_at": now,
			}).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		case errors.Is(err, errLeadAlreadyConverted):
			c.JSON(http.StatusConflict, gin.H{"error": "Lead already converted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert lead"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}
