package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodshot-admin-api/config"
	"foodshot-admin-api/models"
	"foodshot-admin-api/utils"
)

// GetClients lists active clients.
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := config.DB.Preload("Package").
		Where("delete_at IS NULL").
		Order("business_name ASC").
		Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClient returns one client with its recent serving-ledger audit trail.
func GetClient(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := config.DB.Preload("Package").
		Where("client_id = ? AND delete_at IS NULL", id).
		First(&client).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	var ledger []models.ServingLedgerEntry
	if err := config.DB.Where("client_id = ?", id).
		Order("create_at DESC").
		Limit(50).
		Find(&ledger).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":         client,
		"serving_ledger": ledger,
	})
}

type CreateClientRequest struct {
	BusinessName      string  `json:"business_name" binding:"required"`
	ContactName       *string `json:"contact_name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	PackageID         *string `json:"package_id"`
	RemainingServings int     `json:"remaining_servings"`
}

// CreateClient registers a new client, optionally starting with the serving
// balance of a purchased package.
func CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != nil && !utils.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}
	if req.RemainingServings < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Remaining servings cannot be negative"})
		return
	}

	servings := req.RemainingServings
	if req.PackageID != nil && servings == 0 {
		var pkg models.Package
		if err := config.DB.Where("package_id = ? AND delete_at IS NULL", *req.PackageID).
			First(&pkg).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Package not found"})
			return
		}
		servings = pkg.ServingsGranted
	}

	now := time.Now()
	client := models.Client{
		ClientID:          uuid.NewString(),
		BusinessName:      utils.SanitizeInput(req.BusinessName),
		ContactName:       req.ContactName,
		Email:             req.Email,
		Phone:             req.Phone,
		PackageID:         req.PackageID,
		RemainingServings: servings,
		CreateAt:          &now,
		UpdateAt:          &now,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

type UpdateClientRequest struct {
	BusinessName      *string `json:"business_name"`
	ContactName       *string `json:"contact_name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	Notes             *string `json:"notes"`
	RemainingServings *int    `json:"remaining_servings"`
}

// UpdateClient applies manual admin edits. Manual remaining_servings edits
// bypass the serving ledger on purpose and leave no audit entry.
func UpdateClient(c *gin.Context) {
	id := c.Param("id")

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.BusinessName != nil {
		updates["business_name"] = utils.SanitizeInput(*req.BusinessName)
	}
	if req.ContactName != nil {
		updates["contact_name"] = *req.ContactName
	}
	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
			return
		}
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.RemainingServings != nil {
		if *req.RemainingServings < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Remaining servings cannot be negative"})
			return
		}
		updates["remaining_servings"] = *req.RemainingServings
	}

	res := config.DB.Model(&models.Client{}).
		Where("client_id = ? AND delete_at IS NULL", id).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client updated"})
}
