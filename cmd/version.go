package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show the fab version",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := version
		if v == "" {
			v = "dev"
		}
		fmt.Printf("fab %s\n", v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
