package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	keys []CacheKey
}

func (r *recordingInvalidator) Invalidate(keys []CacheKey) {
	r.keys = append(r.keys, keys...)
}

func newUpdater(t *testing.T) (*StatusUpdater, sqlmock.Sqlmock, *CollectingNotifier, *recordingInvalidator) {
	t.Helper()

	gdb, mock := newMockDB(t)
	notifier := &CollectingNotifier{}
	invalidator := &recordingInvalidator{}
	updater := &StatusUpdater{
		db:          gdb,
		ledger:      NewServingLedger(gdb, notifier),
		notifier:    notifier,
		invalidator: invalidator,
	}
	return updater, mock, notifier, invalidator
}

func submissionRow(id string, clientID *string, dish, status string, editorID *string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"submission_id", "client_id", "dish_name", "status", "editor_id"}).
		AddRow(id, clientID, dish, status, editorID)
}

func expectStatusWrite(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `submissions`").WillReturnRows(rows)
	mock.ExpectExec("UPDATE `submissions` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `submission_status_history`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
}

func TestUpdateStatusRejectsEmptySubmissionID(t *testing.T) {
	updater, mock, notifier, invalidator := newUpdater(t)

	_, err := updater.UpdateSubmissionStatus("  ", StatusInProcessing, "", nil)
	require.ErrorIs(t, err, ErrValidation)

	// No reads, no writes, no side effects.
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, invalidator.keys)
	require.Len(t, notifier.Messages, 1)
	assert.Equal(t, SeverityError, notifier.Messages[0].Severity)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	updater, mock, _, _ := newUpdater(t)

	_, err := updater.UpdateSubmissionStatus("s1", Status("Archived"), "", nil)
	require.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusDeductsOnCompletion(t *testing.T) {
	updater, mock, notifier, invalidator := newUpdater(t)
	clientID := "c1"

	expectStatusWrite(mock, submissionRow("s1", &clientID, "Chocolate Cake", string(StatusInProcessing), nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(15))
	mock.ExpectExec("UPDATE `clients` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `serving_ledger_entries`").
		WithArgs("c1", -1, 14, ReasonDeductPrefix+": Chocolate Cake", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	updated, err := updater.UpdateSubmissionStatus("s1", StatusCompletedApproved, "", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCompletedApproved, updated.Status)
	assert.Equal(t, StatusInProcessing, updated.PreviousStatus)
	assert.Equal(t, "Chocolate Cake", updated.DishName)
	require.NotNil(t, updated.ClientID)
	assert.Equal(t, "c1", *updated.ClientID)
	assert.Equal(t, LedgerDeduct, updated.LedgerAction)

	// Status success + deduction success naming the new balance.
	require.Len(t, notifier.Messages, 2)
	assert.Equal(t, SeveritySuccess, notifier.Messages[1].Severity)
	assert.Contains(t, notifier.Messages[1].Text, "14")

	assert.ElementsMatch(t, []CacheKey{
		{"submissions", "s1"},
		{"submissions"},
		{"clients", "c1"},
		{"clients"},
	}, invalidator.keys)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusZeroBalanceStillUpdatesStatus(t *testing.T) {
	updater, mock, notifier, _ := newUpdater(t)
	clientID := "c1"

	expectStatusWrite(mock, submissionRow("s1", &clientID, "Chocolate Cake", string(StatusInProcessing), nil))

	// Ledger reads the balance, finds zero and issues no write.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(0))
	mock.ExpectCommit()

	updated, err := updater.UpdateSubmissionStatus("s1", StatusCompletedApproved, "", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCompletedApproved, updated.Status)

	// Only the status-update success message; no deduction notification.
	require.Len(t, notifier.Messages, 1)
	assert.Equal(t, SeveritySuccess, notifier.Messages[0].Severity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRestoresOnUnapproval(t *testing.T) {
	updater, mock, notifier, _ := newUpdater(t)
	clientID := "c2"

	expectStatusWrite(mock, submissionRow("s2", &clientID, "Pasta", string(StatusCompletedApproved), nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(3))
	mock.ExpectExec("UPDATE `clients` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `serving_ledger_entries`").
		WithArgs("c2", 1, 4, ReasonRestorePrefix+": Pasta", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	updated, err := updater.UpdateSubmissionStatus("s2", StatusFeedbackReceived, "", nil)
	require.NoError(t, err)
	assert.Equal(t, LedgerRestore, updated.LedgerAction)

	require.Len(t, notifier.Messages, 2)
	assert.Contains(t, notifier.Messages[1].Text, "4")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNonTriggeringTransitionSkipsLedger(t *testing.T) {
	updater, mock, _, invalidator := newUpdater(t)
	clientID := "c3"

	// Pending -> In Processing: no ledger queries at all.
	expectStatusWrite(mock, submissionRow("s3", &clientID, "Burger", string(StatusPendingProcessing), nil))

	updated, err := updater.UpdateSubmissionStatus("s3", StatusInProcessing, "", nil)
	require.NoError(t, err)
	assert.Equal(t, LedgerNoop, updated.LedgerAction)
	assert.Len(t, invalidator.keys, 4)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusUnlinkedSubmissionSkipsLedger(t *testing.T) {
	updater, mock, notifier, invalidator := newUpdater(t)

	// No owning client: the ledger is never invoked even on a qualifying
	// transition, and only submission keys are invalidated.
	expectStatusWrite(mock, submissionRow("s4", nil, "Salad", string(StatusInProcessing), nil))

	updated, err := updater.UpdateSubmissionStatus("s4", StatusCompletedApproved, "", nil)
	require.NoError(t, err)
	assert.Nil(t, updated.ClientID)
	assert.Equal(t, LedgerDeduct, updated.LedgerAction)

	require.Len(t, notifier.Messages, 1)
	assert.ElementsMatch(t, []CacheKey{
		{"submissions", "s4"},
		{"submissions"},
	}, invalidator.keys)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	updater, mock, notifier, _ := newUpdater(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `submissions`").
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "client_id", "dish_name", "status", "editor_id"}))
	mock.ExpectRollback()

	_, err := updater.UpdateSubmissionStatus("missing", StatusInProcessing, "", nil)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
	require.Len(t, notifier.Messages, 1)
	assert.Equal(t, MsgSubmissionNotFound, notifier.Messages[0].Text)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusWriteFailureBlocksSideEffects(t *testing.T) {
	updater, mock, notifier, invalidator := newUpdater(t)
	clientID := "c1"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `submissions`").
		WillReturnRows(submissionRow("s1", &clientID, "Chocolate Cake", string(StatusInProcessing), nil))
	mock.ExpectExec("UPDATE `submissions` SET").WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	_, err := updater.UpdateSubmissionStatus("s1", StatusCompletedApproved, "", nil)
	require.ErrorIs(t, err, ErrStatusWrite)

	// Neither the ledger nor cache invalidation may run.
	assert.Empty(t, invalidator.keys)
	require.Len(t, notifier.Messages, 1)
	assert.Equal(t, MsgStatusUpdateError, notifier.Messages[0].Text)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusLedgerFailureKeepsOperationSuccessful(t *testing.T) {
	updater, mock, notifier, invalidator := newUpdater(t)
	clientID := "c1"

	expectStatusWrite(mock, submissionRow("s1", &clientID, "Chocolate Cake", string(StatusInProcessing), nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	updated, err := updater.UpdateSubmissionStatus("s1", StatusCompletedApproved, "", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusCompletedApproved, updated.Status)

	// Ledger failure surfaces only through the notification channel.
	require.Len(t, notifier.Messages, 2)
	assert.Equal(t, SeverityError, notifier.Messages[1].Severity)

	// Cache invalidation still fires after the committed status write.
	assert.Len(t, invalidator.keys, 4)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotifiesAssignedEditor(t *testing.T) {
	updater, mock, _, _ := newUpdater(t)
	clientID := "c1"
	editorID := "e1"

	var sentTo []string
	updater.sendMail = func(to []string, subject, html string) error {
		sentTo = append(sentTo, to...)
		return nil
	}

	expectStatusWrite(mock, submissionRow("s1", &clientID, "Chocolate Cake", string(StatusInProcessing), &editorID))

	// Notification record, then the editor's email for the mail copy.
	mock.ExpectExec("INSERT INTO `notifications`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("editor@foodshot.studio"))

	_, err := updater.UpdateSubmissionStatus("s1", StatusFeedbackReceived, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"editor@foodshot.studio"}, sentTo)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusBroadDeductionMode(t *testing.T) {
	updater, mock, _, _ := newUpdater(t)
	updater.broadDeduction = true
	clientID := "c1"

	expectStatusWrite(mock, submissionRow("s1", &clientID, "Chocolate Cake", string(StatusInProcessing), nil))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").WillReturnRows(clientRow(5))
	mock.ExpectExec("UPDATE `clients` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `serving_ledger_entries`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	updated, err := updater.UpdateSubmissionStatus("s1", StatusReadyForReview, "", nil)
	require.NoError(t, err)
	assert.Equal(t, LedgerDeduct, updated.LedgerAction)

	assert.NoError(t, mock.ExpectationsWereMet())
}
