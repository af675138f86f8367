package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents the payments table. Payment-status editing workflows
// live in the dashboard's billing area; this API only records and lists.
type Payment struct {
	PaymentID string          `gorm:"primaryKey;column:payment_id;type:char(36)" json:"payment_id"`
	ClientID  string          `gorm:"column:client_id;type:char(36)" json:"client_id"`
	PackageID *string         `gorm:"column:package_id;type:char(36)" json:"package_id,omitempty"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(10,2)" json:"amount"`
	Status    string          `gorm:"column:status" json:"status"` // pending|paid|refunded
	PaidAt    *time.Time      `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreateAt  *time.Time      `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time      `gorm:"column:update_at" json:"update_at"`

	Client  *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
