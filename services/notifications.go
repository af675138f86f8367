package services

import (
	"fmt"
	"log"
	"time"

	"foodshot-admin-api/models"
)

// notifyEditor creates an in-app notification record for the assigned editor
// with a deep link to the submission, and best-effort sends an email copy.
func (s *StatusUpdater) notifyEditor(editorID string, updated *UpdatedSubmission) error {
	link := "/submissions/" + updated.SubmissionID
	notification := models.Notification{
		UserID:              editorID,
		Title:               "הגשה ממתינה לטיפול",
		Message:             msgEditorNotification(updated.DishName, updated.Status),
		Type:                "info",
		Link:                &link,
		RelatedSubmissionID: &updated.SubmissionID,
		CreateAt:            time.Now(),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.emailEditor(editorID, &notification)
	return nil
}

// emailEditor sends an email copy of the notification. Never fails the
// caller: missing SMTP config or a dead mail server only shows up in the log.
func (s *StatusUpdater) emailEditor(editorID string, notification *models.Notification) {
	if s.sendMail == nil {
		return
	}

	var editor models.User
	if err := s.db.Select("email").
		Where("user_id = ? AND delete_at IS NULL", editorID).
		First(&editor).Error; err != nil {
		log.Printf("notification email: failed to load editor %s: %v", editorID, err)
		return
	}
	if editor.Email == "" {
		return
	}

	html := fmt.Sprintf("<p>%s</p><p><a href=%q>%s</a></p>",
		notification.Message, *notification.Link, *notification.Link)
	if err := s.sendMail([]string{editor.Email}, notification.Title, html); err != nil {
		log.Printf("notification email to %s failed: %v", editor.Email, err)
	}
}
