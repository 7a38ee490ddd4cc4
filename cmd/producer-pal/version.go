package main

import (
	"fmt"
	"strings"

	producerpal "github.com/adamjmurray/producer-pal"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of producer-pal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("producer-pal version %s\n", strings.TrimSpace(producerpal.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
