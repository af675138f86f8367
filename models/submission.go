package models

import "time"

// Submission represents the submissions table: a single photo-processing job.
// ClientID is nullable, unlinked submissions exist and must skip the serving
// ledger entirely. DishName is the display name used in audit messages and
// may contain arbitrary Unicode text.
type Submission struct {
	SubmissionID string     `gorm:"primaryKey;column:submission_id;type:char(36)" json:"submission_id"`
	ClientID     *string    `gorm:"column:client_id;type:char(36)" json:"client_id,omitempty"`
	DishName     string     `gorm:"column:dish_name" json:"dish_name"`
	Status       string     `gorm:"column:status" json:"status"`
	EditorID     *string    `gorm:"column:editor_id;type:char(36)" json:"editor_id,omitempty"`
	PhotoCount   int        `gorm:"column:photo_count" json:"photo_count"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Editor *User   `gorm:"foreignKey:EditorID" json:"editor,omitempty"`

	StatusHistory []SubmissionStatusHistory `gorm:"foreignKey:SubmissionID;references:SubmissionID" json:"status_history,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
