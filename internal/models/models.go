package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Point3 is a position in world coordinates, in job length units.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sub returns the component-wise difference p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Add returns the component-wise sum p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// MaxAbsAxis returns the largest per-axis magnitude of p.
func (p Point3) MaxAbsAxis() float64 {
	return math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z)))
}

func (p Point3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", p.X, p.Y, p.Z)
}

// ParsePoint3 parses "X,Y,Z" as used by --at and --by flags.
func ParsePoint3(s string) (Point3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Point3{}, fmt.Errorf("expected X,Y,Z, got %q", s)
	}
	coords := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Point3{}, fmt.Errorf("invalid coordinate %q", part)
		}
		coords[i] = v
	}
	return Point3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// Connector is a point on an item where it joins adjacent items.
// The first connector of an item is its positional anchor for swaps.
type Connector struct {
	Name string `json:"name"`
	End  Point3 `json:"end"`
}

// PlacedItem is a live object in the job document.
type PlacedItem struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	ClassID     string             `json:"class_id"`
	ServiceName string             `json:"service_name,omitempty"`
	ButtonRef   string             `json:"button_ref,omitempty"` // originating catalog button; not always resolvable
	Origin      Point3             `json:"origin"`
	Connectors  []Connector        `json:"connectors,omitempty"`
	Dimensions  map[string]float64 `json:"dimensions,omitempty"`
	Options     map[string]string  `json:"options,omitempty"`
	CustomData  map[string]string  `json:"custom_data,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Status      string             `json:"status,omitempty"`
	Section     string             `json:"section,omitempty"`
	PriceList   string             `json:"price_list,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// PrimaryEnd returns the item's first connector endpoint, if it has one.
func (it *PlacedItem) PrimaryEnd() (Point3, bool) {
	if len(it.Connectors) == 0 {
		return Point3{}, false
	}
	return it.Connectors[0].End, true
}

// Service is a top-level catalog grouping.
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Button is a named catalog entry under a service, holding ordered slots.
type Button struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
}

// Slot is one loadable item definition within a button.
type Slot struct {
	ID       string `json:"id"`
	ButtonID string `json:"button_id"`
	Index    int    `json:"index"`
	Path     string `json:"path"`     // catalog path, e.g. "Ductwork/Straight/Std"
	Filename string `json:"filename"` // resolved definition filename
}

// PositionSnapshot captures an item's primary connector endpoint at swap time.
// Valid is false for items with no connectors.
type PositionSnapshot struct {
	End   Point3 `json:"end"`
	Valid bool   `json:"valid"`
}

// PropertySnapshot is the bag of transferable fields captured from an item
// before it is replaced.
type PropertySnapshot struct {
	Name       string             `json:"name"`
	Dimensions map[string]float64 `json:"dimensions,omitempty"`
	Options    map[string]string  `json:"options,omitempty"`
	CustomData map[string]string  `json:"custom_data,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	Status     string             `json:"status,omitempty"`
	Section    string             `json:"section,omitempty"`
	PriceList  string             `json:"price_list,omitempty"`
}

// TransferOptions selects which property groups move during a transfer.
type TransferOptions struct {
	Position   bool `json:"position"`
	Dimensions bool `json:"dimensions"`
	Options    bool `json:"options"`
	CustomData bool `json:"custom_data"`
	BasicInfo  bool `json:"basic_info"`
	Status     bool `json:"status"`
	PriceList  bool `json:"price_list"`
}

// TransferEverything returns options with every group enabled.
// Undo always uses this to guarantee full restoration.
func TransferEverything() TransferOptions {
	return TransferOptions{
		Position:   true,
		Dimensions: true,
		Options:    true,
		CustomData: true,
		BasicInfo:  true,
		Status:     true,
		PriceList:  true,
	}
}

// Config is the local per-job configuration state.
type Config struct {
	ActiveService   string           `json:"active_service,omitempty"`
	DefaultTransfer *TransferOptions `json:"default_transfer,omitempty"`
}
