package models

import "time"

// ServingLedgerEntry is the audit trail for automatic serving-credit
// adjustments. Delta is always +1 or -1; BalanceAfter is the client balance
// as written in the same transaction.
type ServingLedgerEntry struct {
	EntryID      int       `gorm:"primaryKey;column:entry_id" json:"entry_id"`
	ClientID     string    `gorm:"column:client_id;type:char(36)" json:"client_id"`
	Delta        int       `gorm:"column:delta" json:"delta"`
	BalanceAfter int       `gorm:"column:balance_after" json:"balance_after"`
	Reason       string    `gorm:"column:reason" json:"reason"`
	CreateAt     time.Time `gorm:"column:create_at" json:"create_at"`
}

func (ServingLedgerEntry) TableName() string {
	return "serving_ledger_entries"
}
