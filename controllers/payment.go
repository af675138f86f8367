package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodshot-admin-api/config"
	"foodshot-admin-api/models"
)

// GetPayments lists payments, optionally for one client.
func GetPayments(c *gin.Context) {
	query := config.DB.Preload("Client").Preload("Package").
		Order("create_at DESC")
	if clientID := c.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

type CreatePaymentRequest struct {
	ClientID  string          `json:"client_id" binding:"required"`
	PackageID *string         `json:"package_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
}

var paymentStatuses = map[string]bool{
	"pending":  true,
	"paid":     true,
	"refunded": true,
}

// CreatePayment records a payment. Payment-status editing lives in the
// billing area of the dashboard, not here.
func CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount cannot be negative"})
		return
	}
	status := req.Status
	if status == "" {
		status = "pending"
	}
	if !paymentStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment status"})
		return
	}

	var client models.Client
	if err := config.DB.Where("client_id = ? AND delete_at IS NULL", req.ClientID).
		First(&client).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client not found"})
		return
	}

	now := time.Now()
	payment := models.Payment{
		PaymentID: uuid.NewString(),
		ClientID:  req.ClientID,
		PackageID: req.PackageID,
		Amount:    req.Amount,
		Status:    status,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if status == "paid" {
		payment.PaidAt = &now
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}
