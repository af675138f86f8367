package models

import "time"

// Client represents the clients table. RemainingServings is the prepaid
// credit balance; the serving ledger is the only automatic writer of that
// column (manual admin edits go through the client controller and are not
// coordinated with the ledger).
type Client struct {
	ClientID          string     `gorm:"primaryKey;column:client_id;type:char(36)" json:"client_id"`
	BusinessName      string     `gorm:"column:business_name" json:"business_name"`
	ContactName       *string    `gorm:"column:contact_name" json:"contact_name,omitempty"`
	Email             *string    `gorm:"column:email" json:"email,omitempty"`
	Phone             *string    `gorm:"column:phone" json:"phone,omitempty"`
	RemainingServings int        `gorm:"column:remaining_servings" json:"remaining_servings"`
	PackageID         *string    `gorm:"column:package_id;type:char(36)" json:"package_id,omitempty"`
	Notes             *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreateAt          *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt          *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

func (Client) TableName() string {
	return "clients"
}
