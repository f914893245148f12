package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qodalab/qoda"
)

var (
	maxCountDiff int
	onlyFor      string
)

var compareCmd = &cobra.Command{
	Use:     "compare <workdir>",
	Aliases: []string{"comp"},
	Short:   "Compare annotations between coders and flag discrepancies",
	Long: `Compares the annotations of each registered file pair. Knows about
allowed and non-allowed discrepancies and about the code for silencing
them. Reports problems on stdout; the exit code is the discrepancy
count (capped at 255).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("=========================================================================================")
		fmt.Println("=== check pairs of files (consult with your fellow coder except for obvious mistakes) ===")
		fmt.Println("=========================================================================================")

		opts := []qoda.Option{qoda.WithLogger(slog.Default())}
		if cmd.Flags().Changed("maxcountdiff") {
			opts = append(opts, qoda.WithMaxCountDiff(maxCountDiff))
		}
		project, err := qoda.Open(args[0], opts...)
		if err != nil {
			fatal("cannot open workspace", err)
		}

		problems, err := project.Compare(onlyFor)
		if err != nil {
			fatal("comparison aborted", err)
		}
		os.Exit(problems)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().IntVar(&maxCountDiff, "maxcountdiff", 2,
		"How much the two coders' i/u counts may differ without a message")
	compareCmd.Flags().StringVar(&onlyFor, "onlyfor", "",
		"Only messages for this coder will be displayed")
}
