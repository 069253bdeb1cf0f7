package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/formwise"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of formwise",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formwise version %s\n", formwise.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
