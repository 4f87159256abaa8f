package swap

import (
	"fmt"
	"strings"
	"testing"

	"fabswap/internal/models"
)

// fakeCatalog serves a single-service button tree with cloneable templates.
type fakeCatalog struct {
	tree      []ButtonSlots
	templates map[string]*models.PlacedItem // keyed "buttonID/slotIndex"
	nextID    int
	loadErr   error
}

func (c *fakeCatalog) LoadFromSlot(button *models.Button, slotIndex int, carryDefaults bool) (*models.PlacedItem, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	tmpl, ok := c.templates[fmt.Sprintf("%s/%d", button.ID, slotIndex)]
	if !ok {
		return nil, fmt.Errorf("button %s has no slot %d", button.Name, slotIndex)
	}
	c.nextID++
	item := *tmpl
	item.ID = fmt.Sprintf("it-load%02d", c.nextID)
	item.ButtonRef = button.Name
	item.Dimensions = copyFloatMap(tmpl.Dimensions)
	item.Options = copyStringMap(tmpl.Options)
	item.CustomData = copyStringMap(tmpl.CustomData)
	item.Connectors = append([]models.Connector(nil), tmpl.Connectors...)
	if !carryDefaults {
		item.Dimensions = nil
		item.Options = nil
	}
	return &item, nil
}

func (c *fakeCatalog) ServiceButtons(serviceName string) ([]ButtonSlots, error) {
	return c.tree, nil
}

func (c *fakeCatalog) ButtonSlots(buttonID string) ([]models.Slot, error) {
	for _, b := range c.tree {
		if b.Button.ID == buttonID {
			return b.Slots, nil
		}
	}
	return nil, fmt.Errorf("button not found: %s", buttonID)
}

// fakeDoc is an in-memory document with injectable failures.
type fakeDoc struct {
	items     map[string]*models.PlacedItem
	removeErr map[string]error
	addErr    map[string]error
	removed   []string
	added     []string
}

func newFakeDoc(items ...*models.PlacedItem) *fakeDoc {
	d := &fakeDoc{
		items:     map[string]*models.PlacedItem{},
		removeErr: map[string]error{},
		addErr:    map[string]error{},
	}
	for _, it := range items {
		d.items[it.ID] = it
	}
	return d
}

func (d *fakeDoc) AddItem(item *models.PlacedItem) error {
	if err := d.addErr[item.ID]; err != nil {
		return err
	}
	if _, dup := d.items[item.ID]; dup {
		return fmt.Errorf("duplicate item: %s", item.ID)
	}
	d.items[item.ID] = item
	d.added = append(d.added, item.ID)
	return nil
}

func (d *fakeDoc) RemoveItem(id string) error {
	if err := d.removeErr[id]; err != nil {
		return err
	}
	if _, ok := d.items[id]; !ok {
		return fmt.Errorf("item not found: %s", id)
	}
	delete(d.items, id)
	d.removed = append(d.removed, id)
	return nil
}

func (d *fakeDoc) GetItem(id string) (*models.PlacedItem, error) {
	item, ok := d.items[id]
	if !ok {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return item, nil
}

func (d *fakeDoc) ListItems() ([]*models.PlacedItem, error) {
	var out []*models.PlacedItem
	for _, it := range d.items {
		out = append(out, it)
	}
	return out, nil
}

// docTransform moves items inside the fake document.
type docTransform struct {
	doc   *fakeDoc
	calls int
	err   error
}

func (t *docTransform) Translate(itemID string, delta models.Point3) error {
	t.calls++
	if t.err != nil {
		return t.err
	}
	item, ok := t.doc.items[itemID]
	if !ok {
		return fmt.Errorf("item not found: %s", itemID)
	}
	item.Origin = item.Origin.Add(delta)
	for i := range item.Connectors {
		item.Connectors[i].End = item.Connectors[i].End.Add(delta)
	}
	return nil
}

type countingSink struct {
	notified [][]*models.PlacedItem
}

func (s *countingSink) NotifyChanged(items []*models.PlacedItem) {
	s.notified = append(s.notified, items)
}

// fixture: one placed straight duct, a service with Straight and Bend buttons.
type fixture struct {
	catalog  *fakeCatalog
	doc      *fakeDoc
	trans    *docTransform
	sink     *countingSink
	history  *History
	swapper  *Swapper
	original *models.PlacedItem
	bend     *models.Button
	straight *models.Button
}

func newFixture() *fixture {
	straight := &models.Button{ID: "bt-1", ServiceID: "sv-1", Name: "Straight"}
	bend := &models.Button{ID: "bt-2", ServiceID: "sv-1", Name: "Bend"}

	catalog := &fakeCatalog{
		tree: []ButtonSlots{
			{Button: straight, Slots: []models.Slot{
				{ID: "sl-1", ButtonID: "bt-1", Index: 0, Path: "Ductwork/Straight/Std", Filename: "duct.straight.itm"},
			}},
			{Button: bend, Slots: []models.Slot{
				{ID: "sl-2", ButtonID: "bt-2", Index: 0, Path: "Ductwork/Bend/90", Filename: "duct.bend.90.itm"},
			}},
		},
		templates: map[string]*models.PlacedItem{
			"bt-1/0": {
				Name:    "Straight Duct",
				ClassID: "duct.straight",
				Connectors: []models.Connector{
					{Name: "C1", End: models.Point3{}},
					{Name: "C2", End: models.Point3{X: 48}},
				},
				Dimensions: map[string]float64{"Length": 48, "Width": 12},
			},
			"bt-2/0": {
				Name:    "Square Bend",
				ClassID: "duct.bend.90",
				Connectors: []models.Connector{
					{Name: "C1", End: models.Point3{}},
					{Name: "C2", End: models.Point3{X: 12, Y: 12}},
				},
				Dimensions: map[string]float64{"Width": 12, "Angle": 90},
			},
		},
	}

	original := &models.PlacedItem{
		ID:          "it-orig",
		Name:        "Straight Duct",
		ClassID:     "duct.straight",
		ServiceName: "Supply Air",
		Origin:      models.Point3{X: 100, Y: 50},
		Connectors: []models.Connector{
			{Name: "C1", End: models.Point3{X: 100, Y: 50}},
			{Name: "C2", End: models.Point3{X: 148, Y: 50}},
		},
		Dimensions: map[string]float64{"Length": 48, "Width": 12},
		Options:    map[string]string{"Gauge": "26"},
		CustomData: map[string]string{"Zone": "L2"},
		Status:     "fabricate",
	}

	doc := newFakeDoc(original)
	trans := &docTransform{doc: doc}
	sink := &countingSink{}
	history := NewHistory()

	return &fixture{
		catalog:  catalog,
		doc:      doc,
		trans:    trans,
		sink:     sink,
		history:  history,
		swapper:  NewSwapper(catalog, doc, trans, sink, history),
		original: original,
		bend:     bend,
		straight: straight,
	}
}

func TestSwapValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		run  func() Result
	}{
		{"nil original", func() Result { return f.swapper.Swap(nil, f.bend, 0, models.TransferEverything()) }},
		{"nil button", func() Result { return f.swapper.Swap(f.original, nil, 0, models.TransferEverything()) }},
		{"negative slot", func() Result { return f.swapper.Swap(f.original, f.bend, -1, models.TransferEverything()) }},
		{"slot out of range", func() Result { return f.swapper.Swap(f.original, f.bend, 5, models.TransferEverything()) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := tc.run()
			if res.OK {
				t.Fatal("swap succeeded")
			}
			if res.Kind != FailValidation {
				t.Errorf("kind = %s, want validation", res.Kind)
			}
			if _, err := f.doc.GetItem("it-orig"); err != nil {
				t.Error("validation failure mutated the document")
			}
			if f.history.Count() != 0 {
				t.Error("validation failure pushed a record")
			}
		})
	}
}

func TestSwapSuccess(t *testing.T) {
	f := newFixture()

	res := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if !res.OK {
		t.Fatalf("swap failed: %s", res.Message)
	}

	// Old gone, new present.
	if _, err := f.doc.GetItem("it-orig"); err == nil {
		t.Error("original still in document")
	}
	newItem, err := f.doc.GetItem(res.Item.ID)
	if err != nil {
		t.Fatalf("replacement not in document: %v", err)
	}

	// Properties moved.
	if newItem.Name != "Straight Duct" {
		t.Errorf("Name = %q, want transferred name", newItem.Name)
	}
	if newItem.Options["Gauge"] != "26" || newItem.CustomData["Zone"] != "L2" {
		t.Error("options/custom data not transferred")
	}
	if newItem.Status != "fabricate" {
		t.Errorf("Status = %q", newItem.Status)
	}

	// Position aligned to the original's primary connector.
	end, ok := newItem.PrimaryEnd()
	if !ok {
		t.Fatal("replacement has no connectors")
	}
	if d := end.Sub(models.Point3{X: 100, Y: 50}); d.MaxAbsAxis() > AlignTolerance {
		t.Errorf("primary end = %v, want within %v of (100,50,0)", end, AlignTolerance)
	}

	// Recorded and observable.
	if f.history.Count() != 1 {
		t.Fatalf("history count = %d, want 1", f.history.Count())
	}
	recd := f.history.Peek()
	if recd.OriginalID != "it-orig" || recd.NewID != newItem.ID {
		t.Errorf("record = %s -> %s", recd.OriginalID, recd.NewID)
	}
	if recd.ButtonName != "Straight" {
		t.Errorf("provenance button = %q, want Straight (filename match)", recd.ButtonName)
	}
	if !strings.Contains(recd.Description, "Straight Duct") {
		t.Errorf("description = %q", recd.Description)
	}
	if len(f.sink.notified) != 1 {
		t.Errorf("refresh notifications = %d, want 1", len(f.sink.notified))
	}
}

func TestSwapSkipPosition(t *testing.T) {
	f := newFixture()

	opts := models.TransferEverything()
	opts.Position = false
	res := f.swapper.Swap(f.original, f.bend, 0, opts)
	if !res.OK {
		t.Fatalf("swap failed: %s", res.Message)
	}
	if f.trans.calls != 0 {
		t.Error("position transfer skipped but transform was called")
	}
}

func TestSwapProvenanceFallsBackToTarget(t *testing.T) {
	f := newFixture()
	// No catalog filename mentions this item: provenance search comes up
	// empty and the target button is recorded instead.
	f.original.ClassID = "pipe.copper"
	f.original.Name = "Copper Pipe"

	res := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if !res.OK {
		t.Fatalf("swap failed: %s", res.Message)
	}

	recd := f.history.Peek()
	if recd.ButtonName != "Bend" {
		t.Errorf("fallback provenance button = %q, want Bend", recd.ButtonName)
	}
	if recd.SlotPath != "Ductwork/Bend/90" {
		t.Errorf("fallback slot path = %q", recd.SlotPath)
	}
	if len(res.Warnings) == 0 {
		t.Error("degraded provenance produced no warning")
	}
}

func TestSwapLoadFailure(t *testing.T) {
	f := newFixture()
	f.catalog.loadErr = fmt.Errorf("content file unreadable")

	res := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if res.OK || res.Kind != FailLoad {
		t.Fatalf("result = %+v, want load failure", res)
	}
	if _, err := f.doc.GetItem("it-orig"); err != nil {
		t.Error("load failure mutated the document")
	}
	if f.history.Count() != 0 {
		t.Error("load failure pushed a record")
	}
}

func TestSwapDeleteFailure(t *testing.T) {
	f := newFixture()
	f.doc.removeErr["it-orig"] = fmt.Errorf("entity locked by host")

	res := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if res.OK || res.Kind != FailDelete {
		t.Fatalf("result = %+v, want delete failure", res)
	}
	if _, err := f.doc.GetItem("it-orig"); err != nil {
		t.Error("original missing after failed delete")
	}
	// Nothing new left behind.
	items, _ := f.doc.ListItems()
	if len(items) != 1 {
		t.Errorf("document has %d items, want 1", len(items))
	}
	if f.history.Count() != 0 {
		t.Error("delete failure pushed a record")
	}
}

func TestSwapAddFailure(t *testing.T) {
	f := newFixture()
	// The next load yields it-load01; fail its insertion.
	f.doc.addErr["it-load01"] = fmt.Errorf("scene insert rejected")

	res := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if res.OK || res.Kind != FailAdd {
		t.Fatalf("result = %+v, want add failure", res)
	}

	// The failure mode is surfaced, not papered over: the original is gone
	// and must not have been re-added or duplicated.
	items, _ := f.doc.ListItems()
	if len(items) != 0 {
		t.Errorf("document has %d items after add failure, want 0", len(items))
	}
	if f.history.Count() != 0 {
		t.Error("add failure pushed a record")
	}
}

func TestSwapTransferWarningsAreNonFatal(t *testing.T) {
	f := newFixture()
	f.original.Dimensions["Width"] = -3

	res := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if !res.OK {
		t.Fatalf("swap failed on a transfer warning: %s", res.Message)
	}
	if len(res.Warnings) == 0 {
		t.Error("failed transfer group produced no warning")
	}
	if len(res.Transfer.Failed()) != 1 {
		t.Errorf("failed groups = %d, want 1", len(res.Transfer.Failed()))
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	f := newFixture()

	res := f.swapper.UndoLast()
	if res.OK || res.Kind != FailNothingToUndo {
		t.Fatalf("result = %+v, want nothing-to-undo failure", res)
	}
	if _, err := f.doc.GetItem("it-orig"); err != nil {
		t.Error("undo on empty history mutated the document")
	}
}

func TestSwapThenUndoRoundTrip(t *testing.T) {
	f := newFixture()

	swapRes := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if !swapRes.OK {
		t.Fatalf("swap failed: %s", swapRes.Message)
	}

	undoRes := f.swapper.UndoLast()
	if !undoRes.OK {
		t.Fatalf("undo failed: %s", undoRes.Message)
	}

	// Swapped-in item gone, restored item present.
	if _, err := f.doc.GetItem(swapRes.Item.ID); err == nil {
		t.Error("swapped-in item still in document after undo")
	}
	restored, err := f.doc.GetItem(undoRes.Item.ID)
	if err != nil {
		t.Fatalf("restored item not in document: %v", err)
	}

	// Identity-equivalent restoration.
	if restored.Name != "Straight Duct" {
		t.Errorf("restored name = %q", restored.Name)
	}
	if restored.Dimensions["Length"] != 48 || restored.Options["Gauge"] != "26" {
		t.Error("restored properties do not match the pre-swap item")
	}
	if restored.CustomData["Zone"] != "L2" || restored.Status != "fabricate" {
		t.Error("restored custom data/status do not match")
	}

	end, ok := restored.PrimaryEnd()
	if !ok {
		t.Fatal("restored item has no connectors")
	}
	if d := end.Sub(models.Point3{X: 100, Y: 50}); d.MaxAbsAxis() > AlignTolerance {
		t.Errorf("restored primary end = %v, out of tolerance", end)
	}

	if f.history.Count() != 0 {
		t.Errorf("history count = %d after undo, want 0", f.history.Count())
	}
}

func TestUndoDeleteFailureRestoresRecord(t *testing.T) {
	f := newFixture()

	swapRes := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if !swapRes.OK {
		t.Fatalf("swap failed: %s", swapRes.Message)
	}
	f.doc.removeErr[swapRes.Item.ID] = fmt.Errorf("entity locked by host")

	res := f.swapper.UndoLast()
	if res.OK || res.Kind != FailDelete {
		t.Fatalf("result = %+v, want delete failure", res)
	}

	// The undo did not happen: the record must still be available.
	if f.history.Count() != 1 {
		t.Errorf("history count = %d, want 1 (record pushed back)", f.history.Count())
	}
	if _, err := f.doc.GetItem(swapRes.Item.ID); err != nil {
		t.Error("swapped-in item missing after failed undo delete")
	}
}

func TestUndoRestoreNotFound(t *testing.T) {
	f := newFixture()

	swapRes := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if !swapRes.OK {
		t.Fatalf("swap failed: %s", swapRes.Message)
	}

	// Empty the catalog: every tier must come up dry.
	f.catalog.tree = nil

	res := f.swapper.UndoLast()
	if res.OK || res.Kind != FailRestoreNotFound {
		t.Fatalf("result = %+v, want restore-not-found failure", res)
	}
	if !strings.Contains(res.Message, "Supply Air") {
		t.Errorf("message %q does not name the searched service", res.Message)
	}
}

func TestUndoUsesExactTierFirst(t *testing.T) {
	f := newFixture()

	swapRes := f.swapper.Swap(f.original, f.bend, 0, models.TransferEverything())
	if !swapRes.OK {
		t.Fatalf("swap failed: %s", swapRes.Message)
	}

	// The record's provenance points at Straight/Std. Make the heuristic
	// tier ambiguous by renaming the bend filename to contain the class id;
	// the exact tier must still decide.
	f.catalog.tree[1].Slots[0].Filename = "duct.straight.alt.itm"

	res := f.swapper.UndoLast()
	if !res.OK {
		t.Fatalf("undo failed: %s", res.Message)
	}
	if res.Item.ButtonRef != "Straight" {
		t.Errorf("restored from button %q, want Straight (exact tier)", res.Item.ButtonRef)
	}
}
