package swap

import (
	"fabswap/internal/models"
)

// AlignTolerance is the per-axis offset below which no transform is applied.
const AlignTolerance = 0.1

// Reconciler moves a freshly loaded item so its primary connector endpoint
// matches a captured anchor. Mis-positioning is an acceptable degraded
// outcome: alignment problems never fail a swap.
//
// Known limitation: items whose placement is constrained by adjacency to
// neighboring items may not end up at the anchor even though the translation
// is applied, because the geometry engine re-constrains them afterward.
type Reconciler struct {
	Transform Transformer
}

// Align translates target so its first connector endpoint lands on the
// anchor. Returns false only when the target has no connectors to align
// from; true means aligned, already within tolerance, or attempted.
func (r Reconciler) Align(target *models.PlacedItem, anchor models.PositionSnapshot) bool {
	if target == nil || !anchor.Valid {
		return false
	}
	current, ok := target.PrimaryEnd()
	if !ok {
		return false
	}

	delta := anchor.End.Sub(current)
	if delta.MaxAbsAxis() <= AlignTolerance {
		return true
	}

	if r.Transform == nil {
		return true
	}
	if err := r.Transform.Translate(target.ID, delta); err != nil {
		// Non-fatal: the item stays where the load put it.
		return true
	}

	// Keep the in-memory view consistent with the applied transform.
	target.Origin = target.Origin.Add(delta)
	for i := range target.Connectors {
		target.Connectors[i].End = target.Connectors[i].End.Add(delta)
	}
	return true
}
