package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ucanfire"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ucanfire",
	// Skips config loading so version works with a broken environment.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ucanfire version %s\n", strings.TrimSpace(ucanfire.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
