package cmd

import (
	"github.com/spf13/cobra"

	"fabswap/internal/db"
	"fabswap/internal/output"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a placed item from the document",
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		id := db.NormalizeItemID(args[0])
		if err := database.RemoveItem(id); err != nil {
			output.Error("%v", err)
			return err
		}

		output.Success("Removed %s", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
