package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a decision table for consistency",
	Long: `Loads a YAML decision table and reports out-of-range links, missing prompts
and invalid stages. Without --file the built-in table is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		table, err := loadTable(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if err := table.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("Table is valid! ✅ (%d questions, %d stages)\n", table.Len(), len(table.Stages()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "YAML decision table to check (built-in table if empty)")
}
