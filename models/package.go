package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package represents the packages table: a prepaid bundle of servings.
type Package struct {
	PackageID       string          `gorm:"primaryKey;column:package_id;type:char(36)" json:"package_id"`
	PackageName     string          `gorm:"column:package_name" json:"package_name"`
	ServingsGranted int             `gorm:"column:servings_granted" json:"servings_granted"`
	Price           decimal.Decimal `gorm:"column:price;type:decimal(10,2)" json:"price"`
	IsActive        bool            `gorm:"column:is_active" json:"is_active"`
	CreateAt        *time.Time      `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time      `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time      `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Package) TableName() string {
	return "packages"
}
