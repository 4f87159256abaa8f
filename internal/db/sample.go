package db

import (
	"fmt"

	"fabswap/internal/models"
)

// SeedSample installs a small ductwork catalog for quickstart and tests:
// one service with straight, bend, and tee buttons, two slots each.
func (db *DB) SeedSample() error {
	svc, err := db.CreateService("Supply Air")
	if err != nil {
		return fmt.Errorf("seed sample: %w", err)
	}

	type slotDef struct {
		path     string
		filename string
		item     *models.PlacedItem
	}
	buttons := []struct {
		name  string
		slots []slotDef
	}{
		{
			name: "Straight",
			slots: []slotDef{
				{"Ductwork/Straight/Std", "Straight Duct.itm", &models.PlacedItem{
					Name:    "Straight Duct",
					ClassID: "duct.straight",
					Connectors: []models.Connector{
						{Name: "C1", End: models.Point3{}},
						{Name: "C2", End: models.Point3{X: 48}},
					},
					Dimensions: map[string]float64{"Length": 48, "Width": 12, "Depth": 8},
					Options:    map[string]string{"Gauge": "26"},
				}},
				{"Ductwork/Straight/Heavy", "Straight Duct Heavy.itm", &models.PlacedItem{
					Name:    "Straight Duct Heavy",
					ClassID: "duct.straight.heavy",
					Connectors: []models.Connector{
						{Name: "C1", End: models.Point3{}},
						{Name: "C2", End: models.Point3{X: 48}},
					},
					Dimensions: map[string]float64{"Length": 48, "Width": 12, "Depth": 8},
					Options:    map[string]string{"Gauge": "22"},
				}},
			},
		},
		{
			name: "Bend",
			slots: []slotDef{
				{"Ductwork/Bend/90", "Square Bend.itm", &models.PlacedItem{
					Name:    "Square Bend",
					ClassID: "duct.bend.90",
					Connectors: []models.Connector{
						{Name: "C1", End: models.Point3{}},
						{Name: "C2", End: models.Point3{X: 12, Y: 12}},
					},
					Dimensions: map[string]float64{"Width": 12, "Depth": 8, "Angle": 90},
				}},
				{"Ductwork/Bend/45", "Square Bend 45.itm", &models.PlacedItem{
					Name:    "Square Bend 45",
					ClassID: "duct.bend.45",
					Connectors: []models.Connector{
						{Name: "C1", End: models.Point3{}},
						{Name: "C2", End: models.Point3{X: 12, Y: 5}},
					},
					Dimensions: map[string]float64{"Width": 12, "Depth": 8, "Angle": 45},
				}},
			},
		},
		{
			name: "Tee",
			slots: []slotDef{
				{"Ductwork/Tee/Std", "Duct Tee.itm", &models.PlacedItem{
					Name:    "Duct Tee",
					ClassID: "duct.tee",
					Connectors: []models.Connector{
						{Name: "C1", End: models.Point3{}},
						{Name: "C2", End: models.Point3{X: 24}},
						{Name: "C3", End: models.Point3{X: 12, Y: 12}},
					},
					Dimensions: map[string]float64{"Width": 12, "Depth": 8, "Branch": 10},
				}},
				{"Ductwork/Tee/Reducing", "Reducing Tee.itm", &models.PlacedItem{
					Name:    "Reducing Tee",
					ClassID: "duct.tee.reducing",
					Connectors: []models.Connector{
						{Name: "C1", End: models.Point3{}},
						{Name: "C2", End: models.Point3{X: 24}},
						{Name: "C3", End: models.Point3{X: 12, Y: 12}},
					},
					Dimensions: map[string]float64{"Width": 12, "Depth": 8, "Branch": 8},
				}},
			},
		},
	}

	for _, b := range buttons {
		btn, err := db.CreateButton(svc.ID, b.name)
		if err != nil {
			return fmt.Errorf("seed sample: %w", err)
		}
		for _, s := range b.slots {
			if _, err := db.CreateSlot(btn.ID, s.path, s.filename, s.item); err != nil {
				return fmt.Errorf("seed sample: %w", err)
			}
		}
	}
	return nil
}
