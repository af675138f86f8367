package services

import "fmt"

// Operator-facing messages, Hebrew to match the dashboard UI. Status labels
// stay in English (exact match with submissions.status values).
const (
	// Automatic-reason prefixes for serving ledger entries. The full reason
	// is "<prefix>: <dish name>" with the dish name interpolated verbatim.
	ReasonDeductPrefix  = "ניכוי מנה אוטומטי בעקבות השלמת הגשה"
	ReasonRestorePrefix = "החזרת מנה אוטומטית בעקבות ביטול השלמת הגשה"

	MsgSubmissionIDRequired = "יש לציין מזהה הגשה"
	MsgInvalidStatus        = "סטטוס ההגשה אינו חוקי"
	MsgSubmissionNotFound   = "ההגשה לא נמצאה"
	MsgSubmissionFetchError = "טעינת ההגשה נכשלה"
	MsgStatusUpdateError    = "עדכון סטטוס ההגשה נכשל"
)

func deductReason(dishName string) string {
	return ReasonDeductPrefix + ": " + dishName
}

func restoreReason(dishName string) string {
	return ReasonRestorePrefix + ": " + dishName
}

func msgStatusUpdated(status Status) string {
	return fmt.Sprintf("סטטוס ההגשה עודכן ל-%s", status)
}

func msgLedgerDeducted(clientName string, balance int) string {
	return fmt.Sprintf("נוכתה מנה אחת מהיתרה של %s, נותרו %d מנות", clientName, balance)
}

func msgLedgerRestored(clientName string, balance int) string {
	return fmt.Sprintf("הוחזרה מנה אחת ליתרה של %s, נותרו %d מנות", clientName, balance)
}

func msgLedgerFailed(clientID string) string {
	return fmt.Sprintf("עדכון יתרת המנות של הלקוח %s נכשל, הסטטוס עודכן בכל זאת", clientID)
}

func msgEditorNotification(dishName string, status Status) string {
	return fmt.Sprintf("ההגשה \"%s\" עברה לסטטוס %s וממתינה לטיפולך", dishName, status)
}
