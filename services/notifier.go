package services

import "log"

// Severity of an operator-facing notification (toast in the dashboard).
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// OperatorMessage is one notification shown to the operator who triggered
// the request.
type OperatorMessage struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Notifier is the fire-and-forget operator notification channel.
type Notifier interface {
	Notify(severity Severity, text string)
}

// LogNotifier writes notifications to the application log. Used where no
// request is waiting for them (jobs, tooling).
type LogNotifier struct{}

func (LogNotifier) Notify(severity Severity, text string) {
	log.Printf("[notify:%s] %s", severity, text)
}

// CollectingNotifier gathers notifications so a controller can return them
// in the response body for the dashboard to toast.
type CollectingNotifier struct {
	Messages []OperatorMessage
}

func (n *CollectingNotifier) Notify(severity Severity, text string) {
	n.Messages = append(n.Messages, OperatorMessage{Severity: severity, Text: text})
}
