package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fabswap/internal/db"
	"fabswap/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Short:   "Browse the catalog (services, buttons, slots)",
	GroupID: "query",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		serviceFlag, _ := cmd.Flags().GetString("service")
		if serviceFlag == "" {
			services, err := database.ListServices()
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if len(services) == 0 {
				fmt.Println("Catalog is empty")
				return nil
			}
			fmt.Println("SERVICES:")
			for _, s := range services {
				fmt.Printf("  %s\n", s.Name)
			}
			return nil
		}

		tree, err := database.ServiceButtons(serviceFlag)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if len(tree) == 0 {
			fmt.Printf("Service %s has no buttons\n", serviceFlag)
			return nil
		}

		for _, b := range tree {
			fmt.Printf("%s\n", b.Button.Name)
			for _, s := range b.Slots {
				fmt.Printf("  [%d] %s (%s)\n", s.Index, s.Path, s.Filename)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().String("service", "", "Show the button tree of a service")
}
