package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "producer-pal",
	Short: "Producer Pal is a duplication orchestration layer for Ableton Live",
	Long: `Producer Pal composes Live's coarse duplication primitives into rich
copy operations: count-based duplication with auto-incrementing names,
stripped track copies, device duplication, and arrangement placement by
bar|beat position or locator.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "producer-pal.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().String("fixture", "", "YAML set fixture served by the in-memory host (overrides config)")
}
