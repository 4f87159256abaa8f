package swap

import (
	"fmt"

	"fabswap/internal/models"
)

// FailureKind classifies why a swap or undo failed.
type FailureKind string

const (
	// FailValidation: bad arguments; nothing was touched.
	FailValidation FailureKind = "validation"
	// FailCapture: the original item could not be snapshotted.
	FailCapture FailureKind = "capture"
	// FailLoad: the catalog could not load the requested entry.
	FailLoad FailureKind = "load"
	// FailDelete: removing an item from the document failed.
	FailDelete FailureKind = "delete"
	// FailAdd: inserting an item into the document failed. The most severe
	// outcome: the document may be left missing an item.
	FailAdd FailureKind = "add"
	// FailRestoreNotFound: undo could not locate any candidate catalog entry.
	FailRestoreNotFound FailureKind = "restore_not_found"
	// FailNothingToUndo: the history is empty.
	FailNothingToUndo FailureKind = "nothing_to_undo"
)

// GroupOutcome is the result of transferring one property group.
type GroupOutcome string

const (
	GroupApplied GroupOutcome = "applied"
	GroupSkipped GroupOutcome = "skipped"
	GroupFailed  GroupOutcome = "failed"
)

// GroupResult reports one property group's transfer.
type GroupResult struct {
	Group   string       `json:"group"`
	Outcome GroupOutcome `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
}

// TransferReport lists per-group outcomes of a property transfer.
type TransferReport struct {
	Groups []GroupResult `json:"groups"`
}

// Failed returns the groups that could not be transferred.
func (r TransferReport) Failed() []GroupResult {
	var out []GroupResult
	for _, g := range r.Groups {
		if g.Outcome == GroupFailed {
			out = append(out, g)
		}
	}
	return out
}

// Result is the outcome of a swap or undo. No error is thrown across this
// boundary: callers inspect OK, Kind, and Message. Property-transfer and
// alignment problems surface as Warnings on an otherwise successful result.
type Result struct {
	OK       bool               `json:"ok"`
	Kind     FailureKind        `json:"kind,omitempty"`
	Message  string             `json:"message,omitempty"`
	Item     *models.PlacedItem `json:"item,omitempty"`
	Transfer TransferReport     `json:"transfer,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
}

func failure(kind FailureKind, format string, args ...interface{}) Result {
	return Result{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
