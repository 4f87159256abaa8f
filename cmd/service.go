package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabswap/internal/config"
	"fabswap/internal/db"
	"fabswap/internal/output"
)

var serviceCmd = &cobra.Command{
	Use:     "service [name]",
	Short:   "Show or set the active catalog service",
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		cfg, err := config.Load(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if len(args) == 0 {
			if cfg.ActiveService == "" {
				fmt.Println("No active service set")
				return nil
			}
			fmt.Println(cfg.ActiveService)
			return nil
		}

		database, err := db.Open(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		svc, err := database.GetService(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		cfg.ActiveService = svc.Name
		if err := config.Save(baseDir, cfg); err != nil {
			output.Error("save config: %v", err)
			return err
		}

		output.Success("Active service: %s", svc.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serviceCmd)
}
