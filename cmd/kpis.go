package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "List the KPI catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		for _, d := range reg.Definitions() {
			fmt.Printf("- %s: %s [%s]\n", d.ID, d.Name, d.Category)
			fmt.Printf("  %s\n", d.Description)
			fmt.Printf("  keywords: %s\n", strings.Join(d.Keywords, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kpisCmd)
}
