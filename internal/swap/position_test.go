package swap

import (
	"fmt"
	"testing"

	"fabswap/internal/models"
)

type recordingTransform struct {
	calls  int
	lastID string
	delta  models.Point3
	err    error
}

func (r *recordingTransform) Translate(itemID string, delta models.Point3) error {
	r.calls++
	r.lastID = itemID
	r.delta = delta
	return r.err
}

func itemAt(end models.Point3) *models.PlacedItem {
	return &models.PlacedItem{
		ID:         "it-abc",
		Connectors: []models.Connector{{Name: "C1", End: end}},
	}
}

func TestAlignWithinToleranceNoTransform(t *testing.T) {
	tr := &recordingTransform{}
	r := Reconciler{Transform: tr}

	anchor := models.PositionSnapshot{End: models.Point3{X: 10, Y: 5}, Valid: true}
	target := itemAt(models.Point3{X: 10.05, Y: 4.95, Z: 0.02})

	if !r.Align(target, anchor) {
		t.Fatal("Align returned false")
	}
	if tr.calls != 0 {
		t.Errorf("transform called %d times for in-tolerance target", tr.calls)
	}
}

func TestAlignAppliesTranslation(t *testing.T) {
	tr := &recordingTransform{}
	r := Reconciler{Transform: tr}

	anchor := models.PositionSnapshot{End: models.Point3{X: 10, Y: 5, Z: 2}, Valid: true}
	target := itemAt(models.Point3{X: 4, Y: 1, Z: 2})
	target.Origin = models.Point3{X: 4}

	if !r.Align(target, anchor) {
		t.Fatal("Align returned false")
	}
	if tr.calls != 1 {
		t.Fatalf("transform calls = %d, want 1", tr.calls)
	}
	if tr.lastID != "it-abc" {
		t.Errorf("translated %s, want it-abc", tr.lastID)
	}
	want := models.Point3{X: 6, Y: 4, Z: 0}
	if tr.delta != want {
		t.Errorf("delta = %v, want %v", tr.delta, want)
	}

	// In-memory geometry follows the transform.
	end, _ := target.PrimaryEnd()
	if end != anchor.End {
		t.Errorf("connector end = %v, want %v", end, anchor.End)
	}
	if (target.Origin != models.Point3{X: 10, Y: 4, Z: 0}) {
		t.Errorf("origin = %v", target.Origin)
	}
}

func TestAlignNoConnectors(t *testing.T) {
	tr := &recordingTransform{}
	r := Reconciler{Transform: tr}

	anchor := models.PositionSnapshot{End: models.Point3{X: 1}, Valid: true}
	target := &models.PlacedItem{ID: "it-bare"}

	if r.Align(target, anchor) {
		t.Error("Align returned true for a connectorless item")
	}
	if tr.calls != 0 {
		t.Error("transform called for a connectorless item")
	}
}

func TestAlignInvalidAnchor(t *testing.T) {
	tr := &recordingTransform{}
	r := Reconciler{Transform: tr}

	if r.Align(itemAt(models.Point3{}), models.PositionSnapshot{}) {
		t.Error("Align returned true for an invalid anchor")
	}
	if tr.calls != 0 {
		t.Error("transform called for an invalid anchor")
	}
}

func TestAlignTransformFailureIsNonFatal(t *testing.T) {
	tr := &recordingTransform{err: fmt.Errorf("entity locked")}
	r := Reconciler{Transform: tr}

	anchor := models.PositionSnapshot{End: models.Point3{X: 100}, Valid: true}
	target := itemAt(models.Point3{})

	if !r.Align(target, anchor) {
		t.Error("Align returned false on transform failure; mis-position is non-fatal")
	}
	// No phantom move recorded on failure.
	if end, _ := target.PrimaryEnd(); end != (models.Point3{}) {
		t.Errorf("connector end moved to %v despite failed transform", end)
	}
}
