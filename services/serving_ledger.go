package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"foodshot-admin-api/metrics"
	"foodshot-admin-api/models"
)

// ServingLedger adjusts a client's prepaid serving balance by exactly one
// unit and records why. It is the sole automatic writer of
// clients.remaining_servings.
type ServingLedger struct {
	db       *gorm.DB
	notifier Notifier
}

func NewServingLedger(db *gorm.DB, notifier Notifier) *ServingLedger {
	return &ServingLedger{db: db, notifier: notifier}
}

// LedgerResult reports what the ledger did. Applied is false both for the
// silent zero-balance skip and for a lost race against a concurrent
// deduction.
type LedgerResult struct {
	Applied    bool
	NewBalance int
}

// Adjust applies a single deduction or restoration for clientID and appends
// an audit entry carrying reason. Deductions against a zero balance are
// skipped silently (log only, no write issued). The update is guarded with
// "remaining_servings > 0" so concurrent deductions cannot drive the balance
// below zero; losing that race also counts as a skip.
//
// The returned error is informational: callers report it through the
// notification channel only and must not fail the surrounding status update.
// Adjust emits the success/failure notifications itself.
func (l *ServingLedger) Adjust(direction LedgerAction, clientID, reason string) (LedgerResult, error) {
	if direction != LedgerDeduct && direction != LedgerRestore {
		return LedgerResult{}, fmt.Errorf("unsupported ledger direction %q", direction)
	}
	if clientID == "" {
		return LedgerResult{}, fmt.Errorf("client id is required")
	}

	var result LedgerResult
	var clientName string

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.Select("client_id", "business_name", "remaining_servings").
			Where("client_id = ? AND delete_at IS NULL", clientID).
			First(&client).Error; err != nil {
			return fmt.Errorf("failed to load client %s: %w", clientID, err)
		}
		clientName = client.BusinessName

		if direction == LedgerDeduct && client.RemainingServings <= 0 {
			log.Printf("serving ledger: client %s (%s) has no remaining servings, skipping deduction (%s)",
				clientID, clientName, reason)
			return nil
		}

		now := time.Now()
		update := tx.Model(&models.Client{}).Where("client_id = ?", clientID)

		delta := 1
		expr := gorm.Expr("remaining_servings + 1")
		if direction == LedgerDeduct {
			delta = -1
			expr = gorm.Expr("remaining_servings - 1")
			// Guard re-checked in SQL so a concurrent deduction cannot push
			// the balance below zero between our read and this write.
			update = update.Where("remaining_servings > 0")
		}

		res := update.Updates(map[string]interface{}{
			"remaining_servings": expr,
			"update_at":          now,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update balance for client %s: %w", clientID, res.Error)
		}
		if res.RowsAffected == 0 {
			log.Printf("serving ledger: deduction for client %s lost the race to zero, skipping (%s)",
				clientID, reason)
			return nil
		}

		entry := models.ServingLedgerEntry{
			ClientID:     clientID,
			Delta:        delta,
			BalanceAfter: client.RemainingServings + delta,
			Reason:       reason,
			CreateAt:     now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to record ledger entry for client %s: %w", clientID, err)
		}

		result = LedgerResult{Applied: true, NewBalance: entry.BalanceAfter}
		return nil
	})

	if err != nil {
		metrics.ObserveServingAdjustment(direction.String(), "failed")
		l.notifier.Notify(SeverityError, msgLedgerFailed(clientID))
		return LedgerResult{}, err
	}

	if !result.Applied {
		metrics.ObserveServingAdjustment(direction.String(), "skipped")
		return result, nil
	}

	metrics.ObserveServingAdjustment(direction.String(), "applied")
	if direction == LedgerDeduct {
		l.notifier.Notify(SeveritySuccess, msgLedgerDeducted(clientName, result.NewBalance))
	} else {
		l.notifier.Notify(SeveritySuccess, msgLedgerRestored(clientName, result.NewBalance))
	}
	return result, nil
}
