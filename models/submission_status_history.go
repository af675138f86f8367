package models

import "time"

// SubmissionStatusHistory tracks historical status changes for submissions.
// Append-only; one row per transition, built from the previous status read
// immediately before the write.
type SubmissionStatusHistory struct {
	HistoryID    int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	SubmissionID string    `gorm:"column:submission_id;type:char(36)" json:"submission_id"`
	FromStatus   *string   `gorm:"column:from_status" json:"from_status"`
	ToStatus     string    `gorm:"column:to_status" json:"to_status"`
	ChangedBy    *string   `gorm:"column:changed_by;type:char(36)" json:"changed_by,omitempty"`
	Note         *string   `gorm:"column:note" json:"note,omitempty"`
	ChangedAt    time.Time `gorm:"column:changed_at" json:"changed_at"`
}

// TableName specifies the table for SubmissionStatusHistory.
func (SubmissionStatusHistory) TableName() string {
	return "submission_status_history"
}
