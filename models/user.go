package models

import "time"

// Role IDs as stored in the roles table.
const (
	RoleAdmin  = 1
	RoleEditor = 2
)

type User struct {
	UserID   string     `gorm:"primaryKey;column:user_id;type:char(36)" json:"user_id"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	FullName string     `gorm:"column:full_name" json:"full_name"`
	RoleID   int        `gorm:"column:role_id" json:"role_id"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID int    `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role   string `gorm:"column:role" json:"role"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}
