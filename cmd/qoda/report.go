package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qodalab/qoda/pkg/report"
	"github.com/qodalab/qoda/pkg/whowhat"
)

var reportCmd = &cobra.Command{
	Use:   "report <workdir>",
	Short: "Report on coding progress",
	Long: `Reads sample-who-what.txt and summarizes how many units have been
coded, by which pairs of coders, over how many blocks.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("=================================")
		fmt.Println("=== Report of Coding Progress ===")
		fmt.Println("=================================")

		reg, err := whowhat.Load(args[0])
		if err != nil {
			fatal("cannot read registry", err)
		}
		report.Progress(os.Stdout, reg)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
