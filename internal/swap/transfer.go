package swap

import (
	"fmt"

	"fabswap/internal/models"
)

// Property group names as reported in transfer results.
const (
	GroupBasicInfo  = "basic_info"
	GroupDimensions = "dimensions"
	GroupOptions    = "options"
	GroupCustomData = "custom_data"
	GroupStatus     = "status"
	GroupPriceList  = "price_list"
)

// TransferEngine copies captured property groups onto a target item. Each
// group is attempted independently: a failure in one group is reported and
// the remaining groups are still tried.
type TransferEngine struct{}

type groupTransfer struct {
	name   string
	wanted func(models.TransferOptions) bool
	apply  func(models.PropertySnapshot, *models.PlacedItem) error
}

var groupTransfers = []groupTransfer{
	{
		name:   GroupBasicInfo,
		wanted: func(o models.TransferOptions) bool { return o.BasicInfo },
		apply: func(s models.PropertySnapshot, t *models.PlacedItem) error {
			if s.Name == "" {
				return fmt.Errorf("snapshot has no name")
			}
			t.Name = s.Name
			t.Notes = s.Notes
			return nil
		},
	},
	{
		name:   GroupDimensions,
		wanted: func(o models.TransferOptions) bool { return o.Dimensions },
		apply: func(s models.PropertySnapshot, t *models.PlacedItem) error {
			if len(s.Dimensions) == 0 {
				return nil
			}
			if t.Dimensions == nil {
				t.Dimensions = make(map[string]float64, len(s.Dimensions))
			}
			var bad []string
			for k, v := range s.Dimensions {
				if v < 0 {
					bad = append(bad, k)
					continue
				}
				t.Dimensions[k] = v
			}
			if len(bad) > 0 {
				return fmt.Errorf("negative dimension value for %v", bad)
			}
			return nil
		},
	},
	{
		name:   GroupOptions,
		wanted: func(o models.TransferOptions) bool { return o.Options },
		apply: func(s models.PropertySnapshot, t *models.PlacedItem) error {
			if len(s.Options) == 0 {
				return nil
			}
			if t.Options == nil {
				t.Options = make(map[string]string, len(s.Options))
			}
			for k, v := range s.Options {
				t.Options[k] = v
			}
			return nil
		},
	},
	{
		name:   GroupCustomData,
		wanted: func(o models.TransferOptions) bool { return o.CustomData },
		apply: func(s models.PropertySnapshot, t *models.PlacedItem) error {
			if len(s.CustomData) == 0 {
				return nil
			}
			if t.CustomData == nil {
				t.CustomData = make(map[string]string, len(s.CustomData))
			}
			for k, v := range s.CustomData {
				t.CustomData[k] = v
			}
			return nil
		},
	},
	{
		name:   GroupStatus,
		wanted: func(o models.TransferOptions) bool { return o.Status },
		apply: func(s models.PropertySnapshot, t *models.PlacedItem) error {
			t.Status = s.Status
			t.Section = s.Section
			return nil
		},
	},
	{
		name:   GroupPriceList,
		wanted: func(o models.TransferOptions) bool { return o.PriceList },
		apply: func(s models.PropertySnapshot, t *models.PlacedItem) error {
			t.PriceList = s.PriceList
			return nil
		},
	},
}

// Transfer applies the requested property groups from snapshot to target.
// Position is not handled here; the reconciler owns placement.
func (TransferEngine) Transfer(snapshot models.PropertySnapshot, target *models.PlacedItem, opts models.TransferOptions) TransferReport {
	var report TransferReport
	for _, g := range groupTransfers {
		if !g.wanted(opts) {
			report.Groups = append(report.Groups, GroupResult{Group: g.name, Outcome: GroupSkipped})
			continue
		}
		if target == nil {
			report.Groups = append(report.Groups, GroupResult{Group: g.name, Outcome: GroupFailed, Reason: "no target item"})
			continue
		}
		if err := g.apply(snapshot, target); err != nil {
			report.Groups = append(report.Groups, GroupResult{Group: g.name, Outcome: GroupFailed, Reason: err.Error()})
			continue
		}
		report.Groups = append(report.Groups, GroupResult{Group: g.name, Outcome: GroupApplied})
	}
	return report
}
