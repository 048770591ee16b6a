package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print the directories scanned for applications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, dir := range scanDirs() {
			fmt.Fprintln(cmd.OutOrStdout(), dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
