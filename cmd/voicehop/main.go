// voicehop is an endless side-scrolling platformer steered by loudness.
//
// Usage:
//
//	voicehop list              - List available rule sets
//	voicehop play [game]       - Play a game (menu when no game is given)
//	voicehop serve             - Start SSH server for remote play
//	voicehop scores [game]     - Show best runs
//	voicehop config            - Print the hop config YAML
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible courses
//	--db <path>          - Set database path (default: ~/.voicehop/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/voicehop/internal/games/hop"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voicehop",
	Short: "Voice Hop - shout to fly over an endless course",
	Long: `Voice Hop is an endless side-scrolling platformer played in the terminal.
The louder you are, the faster you run and the higher you rise.
Land on platforms to score, dodge the spikes, and don't fall.

Available commands:
  list     - Show all rule sets
  play     - Play a rule set (menu when none given)
  serve    - Start SSH server for remote play
  scores   - View best runs
  config   - Print the hop config

Examples:
  voicehop list
  voicehop play
  arecord -q -f S16_LE -r 16000 -c 1 | voicehop play hop --input pcm
  voicehop serve --ssh :2222
  voicehop scores hop`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.voicehop/runs.db", "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the command logger. Full-screen commands pass
// fullscreen=true so nothing is written over the TUI unless a log file is set.
// The returned closer is always non-nil.
func newLogger(fullscreen bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	case fullscreen:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "voicehop",
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
