package cmd

import (
	"github.com/spf13/cobra"

	"fabswap/internal/db"
	"fabswap/internal/models"
	"fabswap/internal/output"
)

var moveCmd = &cobra.Command{
	Use:     "move <id>",
	Short:   "Translate a placed item",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		byFlag, _ := cmd.Flags().GetString("by")
		delta, err := models.ParsePoint3(byFlag)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		id := db.NormalizeItemID(args[0])
		if err := database.Translate(id, delta); err != nil {
			output.Error("%v", err)
			return err
		}

		item, err := database.GetItem(id)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		output.Success("Moved %s by %s", id, delta)
		output.Info("%s", output.FormatItemShort(item))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().String("by", "", "Translation as DX,DY,DZ")
	moveCmd.MarkFlagRequired("by")
}
