package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"beatdash/internal/analysis"
	"beatdash/internal/level"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <track>",
	Short: "Print a track's analysis without playing",
	Long: `Decode and analyze the given audio file, then print what a run on it
would look like: duration, detected beats, tempo estimate, and the
obstacle count per difficulty tier.

Examples:
  beatdash analyze track.wav`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) {
	trackPath := args[0]

	res, err := analysis.AnalyzeFile(trackPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Track:    %s\n", filepath.Base(trackPath))
	fmt.Printf("Duration: %.1fs\n", res.Duration)
	fmt.Printf("Beats:    %d\n", len(res.Beats))
	if res.Tempo > 0 {
		fmt.Printf("Tempo:    %.1f BPM\n", res.Tempo)
	} else {
		fmt.Printf("Tempo:    unknown (fixed pre-roll will be used)\n")
	}

	fmt.Println()
	fmt.Println("Obstacles per tier:")
	for _, tier := range level.Tiers() {
		filtered := level.Filter(res.Beats, tier)
		lvl := level.Build(filtered, level.DefaultLeadTime)
		fmt.Printf("  %-8s %d\n", tier.Title(), len(lvl.Obstacles))
	}
}
