// beatdash is a beat-synchronized runner that turns an audio track into
// an obstacle course in the terminal.
//
// Usage:
//
//	beatdash play <track>     - Analyze a track and play it
//	beatdash analyze <track>  - Print the analysis of a track
//	beatdash stats [track]    - Show run history
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 120)
//	--seed <value>  - Set RNG seed for reproducible visuals
//	--db <path>     - Set database path (default: ~/.beatdash/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beatdash",
	Short: "Beat-synchronized runner for your terminal",
	Long: `beatdash analyzes an audio track, builds an obstacle course from its
beats, and scrolls it at you in sync with playback. Jump over spikes,
land on platforms, survive to the end of the song.

Available commands:
  play     - Analyze a track and play it
  analyze  - Print a track's analysis without playing
  stats    - View run history

Examples:
  beatdash play track.wav
  beatdash play track.wav --difficulty hard --no-audio
  beatdash analyze track.wav
  beatdash stats track.wav`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 120, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.beatdash/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statsCmd)
}
