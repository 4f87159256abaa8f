package swap

import (
	"fmt"
	"time"

	"fabswap/internal/models"
)

// CapturedState is the immutable snapshot of an item taken before it is
// replaced. It carries everything undo needs: identity, provenance for
// re-acquiring the catalog entry, the positional anchor, and the full
// property bag.
type CapturedState struct {
	OriginalID      string                  `json:"original_id"`
	OriginalName    string                  `json:"original_name"`
	OriginalClassID string                  `json:"original_class_id"`
	ServiceName     string                  `json:"service_name,omitempty"`
	ButtonName      string                  `json:"button_name,omitempty"`
	SlotPath        string                  `json:"slot_path,omitempty"`
	Position        models.PositionSnapshot `json:"position"`
	Properties      models.PropertySnapshot `json:"properties"`
}

// CompletedSwap is a CapturedState plus the identity of the replacement,
// created only once every step of a forward swap has succeeded. Only
// CompletedSwap values enter the history.
type CompletedSwap struct {
	CapturedState
	NewID       string    `json:"new_id"`
	NewName     string    `json:"new_name"`
	Description string    `json:"description"`
	SwappedAt   time.Time `json:"swapped_at"`
}

// Capture snapshots an item's identity, position, and transferable
// properties. The returned state is independent of the live item: maps are
// copied so later edits to the document cannot mutate the record.
func Capture(item *models.PlacedItem) (CapturedState, error) {
	if item == nil {
		return CapturedState{}, fmt.Errorf("no item to capture")
	}
	if item.ID == "" {
		return CapturedState{}, fmt.Errorf("item has no identity")
	}

	state := CapturedState{
		OriginalID:      item.ID,
		OriginalName:    item.Name,
		OriginalClassID: item.ClassID,
		ServiceName:     item.ServiceName,
		Properties: models.PropertySnapshot{
			Name:       item.Name,
			Dimensions: copyFloatMap(item.Dimensions),
			Options:    copyStringMap(item.Options),
			CustomData: copyStringMap(item.CustomData),
			Notes:      item.Notes,
			Status:     item.Status,
			Section:    item.Section,
			PriceList:  item.PriceList,
		},
	}

	if end, ok := item.PrimaryEnd(); ok {
		state.Position = models.PositionSnapshot{End: end, Valid: true}
	}

	return state, nil
}

// Complete finalizes a captured state with the replacement's identity.
func (c CapturedState) Complete(newItem *models.PlacedItem) CompletedSwap {
	return CompletedSwap{
		CapturedState: c,
		NewID:         newItem.ID,
		NewName:       newItem.Name,
		Description:   fmt.Sprintf("%s -> %s", c.OriginalName, newItem.Name),
		SwappedAt:     time.Now(),
	}
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
