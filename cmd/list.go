package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabswap/internal/db"
	"fabswap/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List placed items",
	GroupID: "query",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		items, err := database.ListItems()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(items)
		}

		if len(items) == 0 {
			fmt.Println("Document is empty")
			return nil
		}
		for _, item := range items {
			fmt.Println(output.FormatItemShort(item))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Output as JSON")
}
