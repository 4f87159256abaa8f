package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabswap/internal/db"
	"fabswap/internal/output"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last swap",
	Long: `Undo the most recent recorded swap: the swapped-in item is removed and
the original catalog entry is re-acquired, reloaded, and restored with its
captured position and properties.

The history keeps the last 10 swaps. Use 'fab undo --list' to see them.

Re-acquisition is best effort: when the original button/slot cannot be
found, the closest catalog entry in the same service is loaded instead.`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		swapper, err := buildSwapper(database)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if list, _ := cmd.Flags().GetBool("list"); list {
			records := swapper.History().Records()
			if len(records) == 0 {
				fmt.Println("No swaps to undo")
				return nil
			}
			fmt.Println("SWAP HISTORY (newest first):")
			for i := len(records) - 1; i >= 0; i-- {
				fmt.Printf("  %s\n", output.FormatSwapRecord(records[i]))
			}
			return nil
		}

		res := swapper.UndoLast()
		if !res.OK {
			output.Error("%s", res.Message)
			return fmt.Errorf("undo failed: %s", res.Message)
		}

		output.Success("Restored %s", res.Item.ID)
		if formatted := output.FormatSwapResult(res); formatted != "" {
			output.Info("%s", formatted)
		}
		return nil
	},
}

var lastCmd = &cobra.Command{
	Use:     "last",
	Short:   "Show what 'fab undo' would revert",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		swapper, err := buildSwapper(database)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if !swapper.CanUndo() {
			fmt.Println("No swaps to undo")
			return nil
		}
		fmt.Printf("%s (%d in history)\n", swapper.NextUndoDescription(), swapper.UndoCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(lastCmd)
	undoCmd.Flags().Bool("list", false, "List recorded swaps")
}
