package services

import (
	"fmt"
	"strings"
)

// Status is a submission workflow status. The set is closed and ordered from
// least to most complete, but the state machine itself allows any transition,
// including a no-op transition to the same status.
type Status string

const (
	StatusPendingProcessing Status = "Pending Processing"
	StatusInProcessing      Status = "In Processing"
	StatusReadyForReview    Status = "Ready for Review"
	StatusFeedbackReceived  Status = "Feedback Received"
	StatusCompletedApproved Status = "Completed & Approved"
)

// AllStatuses lists every workflow status in stage order.
var AllStatuses = []Status{
	StatusPendingProcessing,
	StatusInProcessing,
	StatusReadyForReview,
	StatusFeedbackReceived,
	StatusCompletedApproved,
}

var statusSynonyms = map[Status][]string{
	StatusPendingProcessing: {"pending processing", "pending", "new"},
	StatusInProcessing:      {"in processing", "processing", "in_progress"},
	StatusReadyForReview:    {"ready for review", "ready", "review"},
	StatusFeedbackReceived:  {"feedback received", "feedback", "revision"},
	StatusCompletedApproved: {"completed & approved", "completed", "approved", "done"},
}

var statusAliasToCanonical = buildStatusAliasMap()

func buildStatusAliasMap() map[string]Status {
	aliasMap := make(map[string]Status)
	for canonical, synonyms := range statusSynonyms {
		aliasMap[normalizeStatus(string(canonical))] = canonical
		for _, alias := range synonyms {
			aliasMap[normalizeStatus(alias)] = canonical
		}
	}
	return aliasMap
}

func normalizeStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseStatus resolves a raw label (canonical or synonym, case-insensitive)
// to its canonical Status.
func ParseStatus(raw string) (Status, error) {
	if status, ok := statusAliasToCanonical[normalizeStatus(raw)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown submission status '%s'", strings.TrimSpace(raw))
}

// Valid reports whether s is one of the canonical workflow statuses.
func (s Status) Valid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ConsumesServing reports whether the status counts as delivered work. The
// canonical rule is Completed & Approved only; broadMode additionally counts
// Ready for Review (DEDUCT_ON_READY_FOR_REVIEW).
func (s Status) ConsumesServing(broadMode bool) bool {
	if s == StatusCompletedApproved {
		return true
	}
	return broadMode && s == StatusReadyForReview
}

// NeedsEditorAttention reports whether the assigned editor should be notified
// when a submission enters this status.
func (s Status) NeedsEditorAttention() bool {
	return s == StatusFeedbackReceived || s == StatusPendingProcessing
}

// LedgerAction is the outcome of classifying a status transition.
type LedgerAction int

const (
	LedgerNoop LedgerAction = iota
	LedgerDeduct
	LedgerRestore
)

func (a LedgerAction) String() string {
	switch a {
	case LedgerDeduct:
		return "deduct"
	case LedgerRestore:
		return "restore"
	default:
		return "noop"
	}
}

// ClassifyTransition maps an (old, new) status pair to the serving-ledger
// action. Pure: no I/O, no side effects. oldStatus must be the stored status
// read immediately before the write, never a cached or assumed value.
func ClassifyTransition(oldStatus, newStatus Status, broadMode bool) LedgerAction {
	wasConsuming := oldStatus.ConsumesServing(broadMode)
	isConsuming := newStatus.ConsumesServing(broadMode)

	switch {
	case !wasConsuming && isConsuming:
		return LedgerDeduct
	case wasConsuming && !isConsuming:
		return LedgerRestore
	default:
		return LedgerNoop
	}
}
