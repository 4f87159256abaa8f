package cmd

import (
	"github.com/spf13/cobra"

	"fabswap/internal/db"
	"fabswap/internal/models"
	"fabswap/internal/output"
)

var placeCmd = &cobra.Command{
	Use:     "place <button>",
	Short:   "Load a catalog entry and add it to the document",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		serviceFlag, _ := cmd.Flags().GetString("service")
		serviceName, err := resolveService(serviceFlag)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		button, err := database.FindButton(serviceName, args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		slotIndex, _ := cmd.Flags().GetInt("slot")
		item, err := database.LoadFromSlot(button, slotIndex, true)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if atFlag, _ := cmd.Flags().GetString("at"); atFlag != "" {
			at, err := models.ParsePoint3(atFlag)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			delta := at.Sub(item.Origin)
			item.Origin = at
			for i := range item.Connectors {
				item.Connectors[i].End = item.Connectors[i].End.Add(delta)
			}
		}

		if err := database.AddItem(item); err != nil {
			output.Error("%v", err)
			return err
		}

		output.Success("Placed %s", item.ID)
		output.Info("%s", output.FormatItemShort(item))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(placeCmd)
	placeCmd.Flags().Int("slot", 0, "Slot index within the button")
	placeCmd.Flags().String("service", "", "Catalog service (defaults to the active service)")
	placeCmd.Flags().String("at", "", "Place origin at X,Y,Z")
}
