package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qodalab/qoda"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of qoda",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qoda version %s\n", qoda.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
