package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qodalab/qoda/pkg/prepare"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <outputdir> <textfile>...",
	Short: "Prepare raw text files for annotation",
	Long: `Reads and converts text files one by one and writes their converted
version to <outputdir>. Breaks lines after each sentence (using simple
heuristics to determine sentence ends) and inserts empty annotation
braces {{}} on the next line.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		preparer := prepare.New(os.Stdout, slog.Default())
		if err := preparer.PrepareFiles(args[0], args[1:]); err != nil {
			fatal("prepare failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}
