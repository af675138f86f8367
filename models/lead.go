package models

import "time"

// Lead represents the leads table: a prospect that has not been converted to
// a client yet.
type Lead struct {
	LeadID       string     `gorm:"primaryKey;column:lead_id;type:char(36)" json:"lead_id"`
	BusinessName string     `gorm:"column:business_name" json:"business_name"`
	ContactName  *string    `gorm:"column:contact_name" json:"contact_name,omitempty"`
	Email        *string    `gorm:"column:email" json:"email,omitempty"`
	Phone        *string    `gorm:"column:phone" json:"phone,omitempty"`
	Source       *string    `gorm:"column:source" json:"source,omitempty"`
	Status       string     `gorm:"column:status" json:"status"` // new|contacted|converted|closed
	Notes        *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Lead) TableName() string {
	return "leads"
}
