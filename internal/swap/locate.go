package swap

import (
	"strings"

	"fabswap/internal/models"
)

// located is a button/slot pair chosen by a matcher tier.
type located struct {
	Button *models.Button
	Slot   models.Slot
}

// matcher is one tier of the undo re-acquisition strategy. Tiers are tried
// in order; the first hit wins.
type matcher func(buttons []ButtonSlots, rec CapturedState) (located, bool)

// locateTiers: exact button+slot-path match, then filename heuristic, then
// first button with any slot at all.
var locateTiers = []matcher{
	matchExact,
	matchHeuristic,
	matchFirstAvailable,
}

// matchExact finds the button named rec.ButtonName containing a slot whose
// path equals rec.SlotPath.
func matchExact(buttons []ButtonSlots, rec CapturedState) (located, bool) {
	if rec.ButtonName == "" || rec.SlotPath == "" {
		return located{}, false
	}
	for _, b := range buttons {
		if b.Button.Name != rec.ButtonName {
			continue
		}
		for _, s := range b.Slots {
			if s.Path == rec.SlotPath {
				return located{Button: b.Button, Slot: s}, true
			}
		}
	}
	return located{}, false
}

// matchHeuristic scans every slot in the service for a resolved filename
// containing the original class identifier or display name.
func matchHeuristic(buttons []ButtonSlots, rec CapturedState) (located, bool) {
	classID := strings.ToLower(rec.OriginalClassID)
	name := strings.ToLower(rec.OriginalName)
	for _, b := range buttons {
		for _, s := range b.Slots {
			filename := strings.ToLower(s.Filename)
			if filename == "" {
				continue
			}
			if classID != "" && strings.Contains(filename, classID) {
				return located{Button: b.Button, Slot: s}, true
			}
			if name != "" && strings.Contains(filename, name) {
				return located{Button: b.Button, Slot: s}, true
			}
		}
	}
	return located{}, false
}

// matchFirstAvailable takes the first button that has any slot. Last resort:
// loading something from the right service beats failing outright.
func matchFirstAvailable(buttons []ButtonSlots, rec CapturedState) (located, bool) {
	for _, b := range buttons {
		if len(b.Slots) > 0 {
			return located{Button: b.Button, Slot: b.Slots[0]}, true
		}
	}
	return located{}, false
}

// locateOriginal runs the tiers against the service's button tree.
func locateOriginal(buttons []ButtonSlots, rec CapturedState) (located, bool) {
	for _, tier := range locateTiers {
		if loc, ok := tier(buttons, rec); ok {
			return loc, true
		}
	}
	return located{}, false
}

// findProvenance searches a service's button tree for the entry an item was
// plausibly loaded from, by matching resolved filenames against the item's
// class identifier or display name. Best effort, not exact.
func findProvenance(buttons []ButtonSlots, item *models.PlacedItem) (buttonName, slotPath string, ok bool) {
	classID := strings.ToLower(item.ClassID)
	name := strings.ToLower(item.Name)
	for _, b := range buttons {
		for _, s := range b.Slots {
			filename := strings.ToLower(s.Filename)
			if filename == "" {
				continue
			}
			if (classID != "" && strings.Contains(filename, classID)) ||
				(name != "" && strings.Contains(filename, name)) {
				return b.Button.Name, s.Path, true
			}
		}
	}
	return "", "", false
}
