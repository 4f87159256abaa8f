package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabswap/internal/config"
	"fabswap/internal/db"
	"fabswap/internal/output"
)

var swapCmd = &cobra.Command{
	Use:   "swap <id> <button>",
	Short: "Replace a placed item with another catalog entry",
	Long: `Replace a placed item with a fresh item loaded from the given catalog
button, keeping the original's position and configurable properties.

Successful swaps are recorded and can be reverted with 'fab undo'. Property
groups can be excluded with the --skip-* flags; position carry-over is on
unless --skip-position is given.`,
	GroupID: "core",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		database, err := db.Open(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		original, err := database.GetItem(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		serviceFlag, _ := cmd.Flags().GetString("service")
		serviceName := serviceFlag
		if serviceName == "" && original.ServiceName != "" {
			serviceName = original.ServiceName
		}
		if serviceName == "" {
			serviceName, err = resolveService("")
			if err != nil {
				output.Error("%v", err)
				return err
			}
		}

		button, err := database.FindButton(serviceName, args[1])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		cfg, err := config.Load(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		opts := config.DefaultTransfer(cfg)
		if v, _ := cmd.Flags().GetBool("skip-position"); v {
			opts.Position = false
		}
		if v, _ := cmd.Flags().GetBool("skip-dimensions"); v {
			opts.Dimensions = false
		}
		if v, _ := cmd.Flags().GetBool("skip-options"); v {
			opts.Options = false
		}
		if v, _ := cmd.Flags().GetBool("skip-custom"); v {
			opts.CustomData = false
		}
		if v, _ := cmd.Flags().GetBool("skip-info"); v {
			opts.BasicInfo = false
		}
		if v, _ := cmd.Flags().GetBool("skip-status"); v {
			opts.Status = false
		}
		if v, _ := cmd.Flags().GetBool("skip-pricelist"); v {
			opts.PriceList = false
		}

		swapper, err := buildSwapper(database)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		slotIndex, _ := cmd.Flags().GetInt("slot")
		res := swapper.Swap(original, button, slotIndex, opts)
		if !res.OK {
			output.Error("%s", res.Message)
			return fmt.Errorf("swap failed: %s", res.Message)
		}

		output.Success("Swapped %s -> %s", original.ID, res.Item.ID)
		if formatted := output.FormatSwapResult(res); formatted != "" {
			output.Info("%s", formatted)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(swapCmd)
	swapCmd.Flags().Int("slot", 0, "Slot index within the target button")
	swapCmd.Flags().String("service", "", "Catalog service of the target button")
	swapCmd.Flags().Bool("skip-position", false, "Do not carry over the position")
	swapCmd.Flags().Bool("skip-dimensions", false, "Do not carry over dimensions")
	swapCmd.Flags().Bool("skip-options", false, "Do not carry over options")
	swapCmd.Flags().Bool("skip-custom", false, "Do not carry over custom data")
	swapCmd.Flags().Bool("skip-info", false, "Do not carry over name and notes")
	swapCmd.Flags().Bool("skip-status", false, "Do not carry over status and section")
	swapCmd.Flags().Bool("skip-pricelist", false, "Do not carry over the price list")
}
