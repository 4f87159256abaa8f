// Package swap implements item replacement with positional and property
// carry-over, and a bounded undo history over completed swaps.
package swap

import (
	"fabswap/internal/models"
)

// ButtonSlots pairs a catalog button with its loadable slots, as exposed by
// the catalog's service tree.
type ButtonSlots struct {
	Button *models.Button
	Slots  []models.Slot
}

// Catalog resolves button-and-slot references to loadable item definitions.
type Catalog interface {
	// LoadFromSlot materializes a fresh item from the given slot of a button.
	// carryDefaults controls whether catalog default dimensions/options are
	// applied to the new item.
	LoadFromSlot(button *models.Button, slotIndex int, carryDefaults bool) (*models.PlacedItem, error)

	// ServiceButtons returns the button tree of the named service, buttons in
	// catalog order with their slots.
	ServiceButtons(serviceName string) ([]ButtonSlots, error)

	// ButtonSlots returns the slots of one button in index order.
	ButtonSlots(buttonID string) ([]models.Slot, error)
}

// Document holds the live set of placed items.
type Document interface {
	AddItem(item *models.PlacedItem) error
	RemoveItem(id string) error
	GetItem(id string) (*models.PlacedItem, error)
	ListItems() ([]*models.PlacedItem, error)
}

// Transformer applies rigid translations to an item's geometry.
type Transformer interface {
	Translate(itemID string, delta models.Point3) error
}

// RefreshSink receives change notifications for redrawing. Best-effort;
// failures are ignored by callers.
type RefreshSink interface {
	NotifyChanged(items []*models.PlacedItem)
}

// nopRefresh is used when no sink is supplied.
type nopRefresh struct{}

func (nopRefresh) NotifyChanged([]*models.PlacedItem) {}
