package swap

import (
	"fmt"

	"fabswap/internal/models"
)

// Swapper performs item swaps against the document and catalog, and undoes
// them from its history. Operations run to completion synchronously on the
// calling goroutine; the history is the only shared state.
type Swapper struct {
	catalog   Catalog
	doc       Document
	reconcile Reconciler
	refresh   RefreshSink
	transfer  TransferEngine
	history   *History
}

// NewSwapper wires a swapper. refresh may be nil.
func NewSwapper(catalog Catalog, doc Document, transform Transformer, refresh RefreshSink, history *History) *Swapper {
	if refresh == nil {
		refresh = nopRefresh{}
	}
	return &Swapper{
		catalog:   catalog,
		doc:       doc,
		reconcile: Reconciler{Transform: transform},
		refresh:   refresh,
		history:   history,
	}
}

// History exposes the undo stack for observers (command state, persistence).
func (s *Swapper) History() *History { return s.history }

// CanUndo reports whether an undo is available.
func (s *Swapper) CanUndo() bool { return s.history.CanUndo() }

// UndoCount returns the number of undoable swaps.
func (s *Swapper) UndoCount() int { return s.history.Count() }

// NextUndoDescription returns the description of the swap UndoLast would
// revert, or "" when there is none.
func (s *Swapper) NextUndoDescription() string { return s.history.NextDescription() }

// Swap replaces original with a fresh item loaded from the given slot of
// button, carrying over placement and the property groups selected by opts.
// On success the swap is recorded and can be reverted with UndoLast.
//
// Removing the original is the point of no return: a failure before it
// leaves the document untouched; a failure after it is surfaced and may
// leave the document missing an item.
func (s *Swapper) Swap(original *models.PlacedItem, button *models.Button, slotIndex int, opts models.TransferOptions) Result {
	// Step 0: validate. No mutation on any failure here.
	if original == nil {
		return failure(FailValidation, "no item selected to swap")
	}
	if button == nil {
		return failure(FailValidation, "no target button given")
	}
	if slotIndex < 0 {
		return failure(FailValidation, "slot index %d out of range", slotIndex)
	}
	targetSlots, err := s.catalog.ButtonSlots(button.ID)
	if err != nil {
		return failure(FailValidation, "button %s: %v", button.Name, err)
	}
	if slotIndex >= len(targetSlots) {
		return failure(FailValidation, "slot index %d out of range: button %s has %d slots", slotIndex, button.Name, len(targetSlots))
	}

	// Step 1: capture the original before anything changes.
	rec, err := Capture(original)
	if err != nil {
		return failure(FailCapture, "capture %s: %v", original.ID, err)
	}

	var warnings []string

	// Step 2: best-effort provenance. When the owning button cannot be
	// identified, record the target button instead so undo can at least
	// reload something from the same catalog slot. Degraded on purpose:
	// graceful degradation over hard failure.
	if buttons, err := s.catalog.ServiceButtons(rec.ServiceName); err == nil {
		if name, path, ok := findProvenance(buttons, original); ok {
			rec.ButtonName = name
			rec.SlotPath = path
		}
	}
	if rec.ButtonName == "" {
		rec.ButtonName = button.Name
		rec.SlotPath = targetSlots[slotIndex].Path
		warnings = append(warnings,
			fmt.Sprintf("original catalog entry for %s not identified; undo will reload from %s", original.Name, button.Name))
	}

	// Step 3: load the replacement. The document is still untouched.
	newItem, err := s.catalog.LoadFromSlot(button, slotIndex, true)
	if err != nil {
		return failure(FailLoad, "load %s slot %d: %v", button.Name, slotIndex, err)
	}

	// Step 4: property transfer. Per-group failures are warnings, never
	// reasons to abandon the swap.
	report := s.transfer.Transfer(rec.Properties, newItem, opts)
	for _, g := range report.Failed() {
		warnings = append(warnings, fmt.Sprintf("transfer %s: %s", g.Group, g.Reason))
	}

	// Step 5: remove the original. Point of no return. On failure the
	// loaded replacement is discarded, best effort.
	if err := s.doc.RemoveItem(original.ID); err != nil {
		s.discard(newItem)
		return failure(FailDelete, "remove %s: %v", original.ID, err)
	}

	// Step 6: insert the replacement. A failure here leaves the document
	// with neither item; surfaced, not recovered.
	if err := s.doc.AddItem(newItem); err != nil {
		return failure(FailAdd, "add replacement for %s: %v (document may be missing the item)", original.ID, err)
	}

	// Step 7: positional alignment, requested and possible.
	if opts.Position && rec.Position.Valid {
		if !s.reconcile.Align(newItem, rec.Position) {
			warnings = append(warnings, "replacement has no connectors; position not aligned")
		}
	}

	// Step 8: record, notify, done.
	s.history.Push(rec.Complete(newItem))
	s.refresh.NotifyChanged([]*models.PlacedItem{newItem})

	return Result{OK: true, Item: newItem, Transfer: report, Warnings: warnings}
}

// UndoLast reverts the most recent recorded swap: the swapped-in item is
// removed and the original catalog entry is re-acquired, reloaded, and
// restored with every property group applied.
func (s *Swapper) UndoLast() Result {
	rec := s.history.Pop()
	if rec == nil {
		return failure(FailNothingToUndo, "nothing to undo")
	}

	// Remove the swapped-in item if it is still present. A removal failure
	// means the undo did not happen: the record goes back on the stack.
	if cur, err := s.doc.GetItem(rec.NewID); err == nil && cur != nil {
		if err := s.doc.RemoveItem(rec.NewID); err != nil {
			s.history.Push(*rec)
			return failure(FailDelete, "remove %s: %v", rec.NewID, err)
		}
	}

	// Re-acquire the original catalog entry: exact match, then filename
	// heuristic, then first available slot in the service.
	buttons, err := s.catalog.ServiceButtons(rec.ServiceName)
	if err != nil {
		return failure(FailRestoreNotFound, "service %s: %v", rec.ServiceName, err)
	}
	loc, ok := locateOriginal(buttons, rec.CapturedState)
	if !ok {
		return failure(FailRestoreNotFound,
			"no catalog entry found for %s (service %s, button %s)",
			rec.OriginalName, rec.ServiceName, rec.ButtonName)
	}

	restored, err := s.catalog.LoadFromSlot(loc.Button, loc.Slot.Index, true)
	if err != nil {
		return failure(FailLoad, "load %s slot %d: %v", loc.Button.Name, loc.Slot.Index, err)
	}

	// Full restoration: every group, regardless of what the forward swap
	// transferred.
	report := s.transfer.Transfer(rec.Properties, restored, models.TransferEverything())
	var warnings []string
	for _, g := range report.Failed() {
		warnings = append(warnings, fmt.Sprintf("transfer %s: %s", g.Group, g.Reason))
	}

	// The swapped-in item is already gone; re-attempting this undo would
	// not help, so the record is not restored on failure here.
	if err := s.doc.AddItem(restored); err != nil {
		return failure(FailAdd, "add restored item: %v (document may be missing the item)", err)
	}

	if rec.Position.Valid {
		if !s.reconcile.Align(restored, rec.Position) {
			warnings = append(warnings, "restored item has no connectors; position not aligned")
		}
	}

	s.refresh.NotifyChanged([]*models.PlacedItem{restored})

	return Result{OK: true, Item: restored, Transfer: report, Warnings: warnings}
}

// discard drops a loaded-but-unplaced item. Stores that register items at
// load time get a best-effort removal; failures are swallowed.
func (s *Swapper) discard(item *models.PlacedItem) {
	if item == nil {
		return
	}
	_ = s.doc.RemoveItem(item.ID)
}
