package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabswap/internal/config"
	"fabswap/internal/db"
	"fabswap/internal/models"
	"fabswap/internal/output"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Create a job database in the current directory",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		database, err := db.Initialize(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		sample, _ := cmd.Flags().GetBool("sample")
		if sample {
			if err := database.SeedSample(); err != nil {
				output.Error("%v", err)
				return err
			}
			if err := config.Save(baseDir, &models.Config{ActiveService: "Supply Air"}); err != nil {
				output.Error("save config: %v", err)
				return err
			}
			fmt.Println("Seeded sample catalog (service: Supply Air)")
		}

		output.Success("Initialized job database in %s/.fabswap", baseDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("sample", false, "Seed a small sample catalog")
}
