package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabswap/internal/db"
	"fabswap/internal/output"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show a placed item in full",
	GroupID: "query",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		item, err := database.GetItem(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(item)
		}

		fmt.Print(output.FormatItemLong(item))

		if item.Notes != "" {
			fmt.Print(output.SectionHeader("notes"))
			rendered, err := output.RenderMarkdown(item.Notes)
			if err != nil {
				fmt.Println(item.Notes)
			} else {
				fmt.Println(rendered)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("json", false, "Output as JSON")
}
