package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"foodshot-admin-api/config"
	"foodshot-admin-api/metrics"
	"foodshot-admin-api/models"
)

// Error kinds for UpdateSubmissionStatus. Only these three fail the overall
// operation; everything after a successful status write is best-effort.
var (
	ErrValidation         = errors.New("validation error")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrSubmissionFetch    = errors.New("failed to load submission")
	ErrStatusWrite        = errors.New("failed to update submission status")
)

// UpdatedSubmission is returned to the caller after a successful status
// write. ClientID is nil for unlinked submissions.
type UpdatedSubmission struct {
	SubmissionID   string  `json:"submission_id"`
	Status         Status  `json:"status"`
	PreviousStatus Status  `json:"previous_status"`
	ClientID       *string `json:"client_id,omitempty"`
	DishName       string  `json:"dish_name"`

	LedgerAction LedgerAction `json:"-"`
}

// StatusUpdater is the single authoritative place a submission status is
// changed. It owns the write and orchestrates the side effects that follow:
// editor notification, serving ledger, cache invalidation.
type StatusUpdater struct {
	db          *gorm.DB
	ledger      *ServingLedger
	notifier    Notifier
	invalidator Invalidator

	// broadDeduction also counts Ready for Review as delivered work
	// (DEDUCT_ON_READY_FOR_REVIEW=true). Default is Completed & Approved
	// only.
	broadDeduction bool

	sendMail func(to []string, subject, html string) error
}

func NewStatusUpdater(db *gorm.DB, notifier Notifier, invalidator Invalidator) *StatusUpdater {
	return &StatusUpdater{
		db:             db,
		ledger:         NewServingLedger(db, notifier),
		notifier:       notifier,
		invalidator:    invalidator,
		broadDeduction: os.Getenv("DEDUCT_ON_READY_FOR_REVIEW") == "true",
		sendMail:       config.SendMail,
	}
}

// UpdateSubmissionStatus performs the authoritative status change for one
// submission.
//
// The previous status is a fresh read taken immediately before the write,
// inside the same transaction as the write and the status-history append. A
// failed read or write aborts with no side effects. After a successful write
// the operation always reports success: editor notification, serving ledger
// and cache invalidation are each best-effort and isolated, their failures
// surface only through the notification channel and the log.
func (s *StatusUpdater) UpdateSubmissionStatus(submissionID string, newStatus Status, note string, changedBy *string) (*UpdatedSubmission, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		s.notifier.Notify(SeverityError, MsgSubmissionIDRequired)
		return nil, fmt.Errorf("%w: submission id is required", ErrValidation)
	}
	if !newStatus.Valid() {
		s.notifier.Notify(SeverityError, MsgInvalidStatus)
		return nil, fmt.Errorf("%w: unknown status '%s'", ErrValidation, newStatus)
	}

	var sub models.Submission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("submission_id", "client_id", "dish_name", "status", "editor_id").
			Where("submission_id = ? AND delete_at IS NULL", submissionID).
			First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrSubmissionNotFound, submissionID)
			}
			return fmt.Errorf("%w: %v", ErrSubmissionFetch, err)
		}

		now := time.Now()
		if err := tx.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Updates(map[string]interface{}{
				"status":    string(newStatus),
				"update_at": now,
			}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStatusWrite, err)
		}

		fromStatus := sub.Status
		history := models.SubmissionStatusHistory{
			SubmissionID: submissionID,
			FromStatus:   &fromStatus,
			ToStatus:     string(newStatus),
			ChangedBy:    changedBy,
			ChangedAt:    now,
		}
		if trimmed := strings.TrimSpace(note); trimmed != "" {
			history.Note = &trimmed
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStatusWrite, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmissionNotFound):
			s.notifier.Notify(SeverityError, MsgSubmissionNotFound)
		case errors.Is(err, ErrSubmissionFetch):
			s.notifier.Notify(SeverityError, MsgSubmissionFetchError)
		default:
			s.notifier.Notify(SeverityError, MsgStatusUpdateError)
		}
		return nil, err
	}

	previous := Status(sub.Status)
	metrics.ObserveStatusTransition(sub.Status, string(newStatus))
	s.notifier.Notify(SeveritySuccess, msgStatusUpdated(newStatus))

	updated := &UpdatedSubmission{
		SubmissionID:   submissionID,
		Status:         newStatus,
		PreviousStatus: previous,
		ClientID:       sub.ClientID,
		DishName:       sub.DishName,
		LedgerAction:   ClassifyTransition(previous, newStatus, s.broadDeduction),
	}

	s.dispatchSideEffects(&sub, updated)
	return updated, nil
}

// dispatchSideEffects runs after the status write has been committed. Each
// step is independently failure-tolerant: a failure in one never blocks the
// next and never turns the overall result into a failure.
func (s *StatusUpdater) dispatchSideEffects(sub *models.Submission, updated *UpdatedSubmission) {
	if sub.EditorID != nil && updated.Status.NeedsEditorAttention() {
		if err := s.notifyEditor(*sub.EditorID, updated); err != nil {
			log.Printf("editor notification for submission %s failed: %v", updated.SubmissionID, err)
		}
	}

	if updated.LedgerAction != LedgerNoop && updated.ClientID != nil {
		reason := deductReason(updated.DishName)
		if updated.LedgerAction == LedgerRestore {
			reason = restoreReason(updated.DishName)
		}
		if _, err := s.ledger.Adjust(updated.LedgerAction, *updated.ClientID, reason); err != nil {
			// Adjust already reported through the notification channel.
			log.Printf("serving ledger for submission %s failed: %v", updated.SubmissionID, err)
		}
	}

	keys := []CacheKey{
		{"submissions", updated.SubmissionID},
		{"submissions"},
	}
	if updated.ClientID != nil {
		keys = append(keys, CacheKey{"clients", *updated.ClientID}, CacheKey{"clients"})
	}
	s.invalidator.Invalidate(keys)
}
