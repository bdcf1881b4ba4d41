package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"beatdash/internal/platform/tui"
	"beatdash/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats [track]",
	Short: "View run history",
	Long: `Show recorded runs. Without an argument the most recent runs across
all tracks are listed; with a track title the view is limited to that
track, best completion first, with an aggregate summary.

Examples:
  beatdash stats
  beatdash stats track.wav`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	track := ""
	if len(args) > 0 {
		track = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunStats(store, track, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
