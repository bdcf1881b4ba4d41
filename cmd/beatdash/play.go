package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"beatdash/internal/analysis"
	"beatdash/internal/audio"
	"beatdash/internal/config"
	"beatdash/internal/core"
	"beatdash/internal/level"
	"beatdash/internal/platform/tui"
	"beatdash/internal/sim"
	"beatdash/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoAudio    bool
	flagTitle      string
)

var playCmd = &cobra.Command{
	Use:   "play <track>",
	Short: "Analyze a track and play it",
	Long: `Analyze the given audio file (WAV or MP3), pick a difficulty, and play
the generated obstacle course in sync with the music.

Controls:
  Space/Up/W/Click - Jump
  P                - Pause
  R                - Restart (after death)
  T                - Change difficulty (after death)
  Esc              - Back to menu
  Q/Ctrl+C         - Quit

Difficulty tiers:
  easy   - every third beat becomes an obstacle
  normal - every second beat becomes an obstacle
  hard   - every beat becomes an obstacle

Examples:
  beatdash play track.wav
  beatdash play track.wav --difficulty hard
  beatdash play track.wav --no-audio
  beatdash play track.wav --config ./my-tuning.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty tier: easy, normal, hard (skips the picker)")
	playCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Run silently (timing only, no playback)")
	playCmd.Flags().StringVar(&flagTitle, "title", "", "Track title shown in the HUD (default: file name)")
}

func runPlay(cmd *cobra.Command, args []string) {
	trackPath := args[0]

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "beatdash",
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Fatal("could not load config", "error", err)
	}

	logger.Info("analyzing track", "path", trackPath)
	res, err := analysis.AnalyzeFile(trackPath)
	if err != nil {
		logger.Fatal("analysis failed", "error", err)
	}
	logger.Info("analysis complete",
		"duration", fmt.Sprintf("%.1fs", res.Duration),
		"beats", len(res.Beats),
		"tempo", fmt.Sprintf("%.1f", res.Tempo))

	title := flagTitle
	if title == "" {
		title = filepath.Base(trackPath)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	var transport sim.Transport
	if flagNoAudio {
		transport = audio.NewSilent(core.SystemClock{}, res.Duration)
	} else {
		player, audioErr := audio.Load(trackPath)
		if audioErr != nil {
			logger.Fatal("could not open audio device, try --no-audio", "error", audioErr)
		}
		transport = player
	}
	defer transport.Stop()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage - the run still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	tier, ok := pickTier(title, res.Beats, width, height, logger)
	if !ok {
		return
	}

	for {
		beats := level.Filter(res.Beats, tier)
		lvl := level.Build(beats, cfg.Timing.LeadTime)

		session := sim.NewSession(cfg, rt, core.SystemClock{}, transport, lvl, res.Envelope, res.Duration, res.Tempo)
		hud := tui.RunHUD{Title: title, Tier: tier.Title()}

		result, runErr := tui.Run(session, hud, rt)
		if runErr != nil {
			logger.Fatal("run failed", "error", runErr)
		}

		if result.Outcome == sim.OutcomeAudioFailed {
			logger.Fatal("audio playback failed mid-run, try --no-audio")
		}

		if store != nil {
			if _, saveErr := store.SaveRun(storage.RunRecord{
				Track:      title,
				Tier:       string(tier),
				Outcome:    result.Outcome.String(),
				Completion: result.CompletionPercent,
				Jumps:      result.Jumps,
			}); saveErr != nil {
				logger.Warn("could not save run", "error", saveErr)
			}
		}

		switch result.Outcome {
		case sim.OutcomeRestart:
			rt.Seed = time.Now().UnixNano()
			continue

		case sim.OutcomeChangeDifficulty:
			// Always show the picker here, even when --difficulty was given.
			newTier, picked, selErr := tui.RunDifficultySelector(title, res.Beats, width, height)
			if selErr != nil {
				logger.Fatal("difficulty selection failed", "error", selErr)
			}
			if !picked {
				return
			}
			tier = newTier
			rt.Seed = time.Now().UnixNano()
			continue

		case sim.OutcomeCompleted:
			logger.Info("track completed", "tier", string(tier), "jumps", result.Jumps)
			return

		default:
			return
		}
	}
}

// pickTier resolves the tier from the --difficulty flag, falling back to
// the interactive picker. The second return is false when the user
// cancelled.
func pickTier(title string, beats []float64, width, height int, logger *log.Logger) (level.Tier, bool) {
	if flagDifficulty != "" {
		for _, t := range level.Tiers() {
			if string(t) == flagDifficulty {
				return t, true
			}
		}
		logger.Fatal("unknown difficulty", "difficulty", flagDifficulty)
	}

	tier, ok, err := tui.RunDifficultySelector(title, beats, width, height)
	if err != nil {
		logger.Fatal("difficulty selection failed", "error", err)
	}
	return tier, ok
}
