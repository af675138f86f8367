package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func clientRow(balance int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"client_id", "business_name", "remaining_servings"}).
		AddRow("c1", "מסעדת הגפן", balance)
}

func TestLedgerDeductDecrementsBalance(t *testing.T) {
	gdb, mock := newMockDB(t)
	notifier := &CollectingNotifier{}
	ledger := NewServingLedger(gdb, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(15))
	mock.ExpectExec("UPDATE `clients` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `serving_ledger_entries`").
		WithArgs("c1", -1, 14, ReasonDeductPrefix+": עוגת שוקולד", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := ledger.Adjust(LedgerDeduct, "c1", deductReason("עוגת שוקולד"))
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 14, result.NewBalance)

	require.Len(t, notifier.Messages, 1)
	assert.Equal(t, SeveritySuccess, notifier.Messages[0].Severity)
	assert.Contains(t, notifier.Messages[0].Text, "מסעדת הגפן")
	assert.Contains(t, notifier.Messages[0].Text, "14")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerDeductAtZeroSkipsWithoutWrite(t *testing.T) {
	gdb, mock := newMockDB(t)
	notifier := &CollectingNotifier{}
	ledger := NewServingLedger(gdb, notifier)

	// Only the balance read may hit the database; no update, no audit entry.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(0))
	mock.ExpectCommit()

	result, err := ledger.Adjust(LedgerDeduct, "c1", deductReason("Chocolate Cake"))
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Empty(t, notifier.Messages)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRestoreIncrementsBalance(t *testing.T) {
	gdb, mock := newMockDB(t)
	notifier := &CollectingNotifier{}
	ledger := NewServingLedger(gdb, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(3))
	mock.ExpectExec("UPDATE `clients` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `serving_ledger_entries`").
		WithArgs("c1", 1, 4, ReasonRestorePrefix+": Chocolate Cake", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := ledger.Adjust(LedgerRestore, "c1", restoreReason("Chocolate Cake"))
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 4, result.NewBalance)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRestoreFromZero(t *testing.T) {
	gdb, mock := newMockDB(t)
	notifier := &CollectingNotifier{}
	ledger := NewServingLedger(gdb, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(0))
	mock.ExpectExec("UPDATE `clients` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `serving_ledger_entries`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := ledger.Adjust(LedgerRestore, "c1", restoreReason("Pasta"))
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 1, result.NewBalance)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerDeductLostRaceCountsAsSkip(t *testing.T) {
	gdb, mock := newMockDB(t)
	notifier := &CollectingNotifier{}
	ledger := NewServingLedger(gdb, notifier)

	// Balance was positive at read time but another deduction got there
	// first; the guarded update affects zero rows.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(1))
	mock.ExpectExec("UPDATE `clients` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	result, err := ledger.Adjust(LedgerDeduct, "c1", deductReason("Pasta"))
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Empty(t, notifier.Messages)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerFailureNotifiesAndReturnsError(t *testing.T) {
	gdb, mock := newMockDB(t)
	notifier := &CollectingNotifier{}
	ledger := NewServingLedger(gdb, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(5))
	mock.ExpectExec("UPDATE `clients` SET").
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := ledger.Adjust(LedgerDeduct, "c1", deductReason("Pasta"))
	require.Error(t, err)

	require.Len(t, notifier.Messages, 1)
	assert.Equal(t, SeverityError, notifier.Messages[0].Severity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRejectsBadInput(t *testing.T) {
	gdb, _ := newMockDB(t)
	ledger := NewServingLedger(gdb, &CollectingNotifier{})

	_, err := ledger.Adjust(LedgerNoop, "c1", "reason")
	assert.Error(t, err)

	_, err = ledger.Adjust(LedgerDeduct, "", "reason")
	assert.Error(t, err)
}

func TestLedgerReasonCarriesDishNameVerbatim(t *testing.T) {
	// Unicode display names must survive interpolation byte-for-byte.
	dish := "שקשוקה עם פטה 🍳"
	reason := deductReason(dish)
	assert.Equal(t, fmt.Sprintf("%s: %s", ReasonDeductPrefix, dish), reason)
	assert.Contains(t, restoreReason(dish), dish)
}
