package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qodalab/qoda"
)

var checkWatch bool

var checkCmd = &cobra.Command{
	Use:     "check <workdir>",
	Aliases: []string{"ck"},
	Short:   "Check annotated extract files for errors",
	Long: `Reads all extracts files of the workdir and checks them for syntax
errors, undefined codes and disallowed suffixes. Reports problems on
stdout; the exit code is the problem count (capped at 255).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("===============================================================================")
		fmt.Println("=== check individual files (correct mistakes even if they are not your own) ===")
		fmt.Println("===============================================================================")

		project, err := qoda.Open(args[0], qoda.WithLogger(slog.Default()))
		if err != nil {
			fatal("cannot open workspace", err)
		}

		problems := project.Check()

		if checkWatch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := project.Watch(ctx); err != nil {
				fatal("cannot watch extracts", err)
			}
			fmt.Println("\nwatching for changes, Ctrl-C to stop...")
			<-ctx.Done()
			return
		}

		os.Exit(problems)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "Keep running and re-check files as they change")
}
