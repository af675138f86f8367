package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodshot-admin-api/config"
	"foodshot-admin-api/models"
	"foodshot-admin-api/utils"
)

// GetPackages lists active serving packages.
func GetPackages(c *gin.Context) {
	var packages []models.Package
	if err := config.DB.Where("delete_at IS NULL AND is_active = 1").
		Order("servings_granted ASC").
		Find(&packages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch packages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

type CreatePackageRequest struct {
	PackageName     string          `json:"package_name" binding:"required"`
	ServingsGranted int             `json:"servings_granted" binding:"required,min=1"`
	Price           decimal.Decimal `json:"price"`
}

func CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}

	now := time.Now()
	pkg := models.Package{
		PackageID:       uuid.NewString(),
		PackageName:     utils.SanitizeInput(req.PackageName),
		ServingsGranted: req.ServingsGranted,
		Price:           req.Price,
		IsActive:        true,
		CreateAt:        &now,
		UpdateAt:        &now,
	}

	if err := config.DB.Create(&pkg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"package": pkg})
}
