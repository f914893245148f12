package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qodalab/qoda/pkg/textenc"
)

var fixEncodingCmd = &cobra.Command{
	Use:   "fix-encoding <file>...",
	Short: "Make files conform to UTF-8",
	Long: `Attempts to read each file as UTF-8. If that fails, reads it as
Windows-1252 and writes it back to the same filename as UTF-8.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("============================================================")
		fmt.Println("=== Rewrite non-UTF8 files (interpreted as Windows-1252) ===")
		fmt.Println("============================================================")

		fixer := textenc.New(os.Stdout, slog.Default())
		if err := fixer.FixFiles(args); err != nil {
			fatal("fix-encoding failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(fixEncodingCmd)
}
