// cmd/chart.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwtrainer/internal/morse"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the Morse code table",
	Long:  `Prints every character the trainer knows together with its code, for study away from the key.`,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, entry := range morse.Entries() {
			fmt.Fprintf(cmd.OutOrStdout(), "%c  %s\n", entry.Char, entry.Code)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
}
