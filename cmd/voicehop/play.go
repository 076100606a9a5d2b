package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/voicehop/internal/audio"
	"github.com/vovakirdan/voicehop/internal/config"
	"github.com/vovakirdan/voicehop/internal/core"
	"github.com/vovakirdan/voicehop/internal/games/hop"
	"github.com/vovakirdan/voicehop/internal/platform/tui"
	"github.com/vovakirdan/voicehop/internal/registry"
	"github.com/vovakirdan/voicehop/internal/storage"
)

const (
	inputKeys = "keys"
	inputPCM  = "pcm"
)

var (
	flagConfig  string
	flagVariant string
	flagInput   string
	flagPCM     string
	flagGain    float64
	flagWindow  int
	flagPlayer  string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the given rule set, or pick one from the menu.

Loudness comes from one of two inputs:
  keys  - Space/Up/W is a shout; the level decays between presses
  pcm   - signed 16-bit little-endian mono PCM from --pcm (default: stdin)

Controls:
  Space/Up/W  - Shout (keys input); start from the splash
  Enter       - Start
  P           - Pause
  R           - Restart
  Esc/B       - Back to menu (splash or paused)
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

Examples:
  voicehop play
  voicehop play hop_calm
  voicehop play --variant marathon --seed 42
  voicehop play hop --config ./my-hop.yaml
  arecord -q -f S16_LE -r 16000 -c 1 | voicehop play hop --input pcm --gain 6`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom hop config YAML")
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Rule set when no game is given: spiky, calm, marathon")
	playCmd.Flags().StringVar(&flagInput, "input", inputKeys, "Loudness input: keys or pcm")
	playCmd.Flags().StringVar(&flagPCM, "pcm", "-", "PCM source for --input pcm ('-' = stdin)")
	playCmd.Flags().Float64Var(&flagGain, "gain", audio.DefaultGain, "Gain applied to PCM loudness")
	playCmd.Flags().IntVar(&flagWindow, "window", audio.DefaultWindow, "PCM frames per loudness sample")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name recorded with runs")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(cmd.Context(), args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	gameID, err := resolveGameID(args)
	if err != nil {
		return err
	}

	// Validate the config file up front; Reset would silently fall back.
	if _, err := config.LoadHop(flagConfig); err != nil {
		return err
	}
	hop.SetConfigPath(flagConfig)

	logger, logCloser, err := newLogger(true)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	meter, err := openMeter()
	if err != nil {
		return err
	}
	if meter != nil {
		defer func() {
			if err := meter.Close(); err != nil {
				logger.Warn("closing pcm input", "error", err)
			}
		}()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("storage disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	opts := func() tui.Options {
		var src core.LevelSource = audio.NewManual(0, 0)
		if meter != nil {
			src = meter
		}
		return tui.Options{
			Source:  src,
			Store:   store,
			Logger:  logger,
			Player:  flagPlayer,
			Context: ctx,
		}
	}

	if gameID != "" {
		_, err := runGame(gameID, cfg, opts(), logger)
		return err
	}
	return menuLoop(store, cfg, opts, logger)
}

// resolveGameID picks the game from the argument or --variant.
// An empty result means the menu should be shown.
func resolveGameID(args []string) (string, error) {
	if len(args) > 0 {
		if !registry.Exists(args[0]) {
			return "", fmt.Errorf("unknown game %q (run 'voicehop list' to see available games)", args[0])
		}
		return args[0], nil
	}
	if flagVariant == "" {
		return "", nil
	}
	v, err := config.ParseVariant(flagVariant)
	if err != nil {
		return "", err
	}
	return hop.New(v).ID(), nil
}

// openMeter starts nothing; capture begins when the first run starts.
func openMeter() (*audio.Meter, error) {
	switch flagInput {
	case inputKeys:
		return nil, nil
	case inputPCM:
	default:
		return nil, fmt.Errorf("invalid --input %q: want %s or %s", flagInput, inputKeys, inputPCM)
	}

	var r io.Reader = os.Stdin
	if flagPCM != "-" && flagPCM != "" {
		f, err := os.Open(flagPCM)
		if err != nil {
			return nil, fmt.Errorf("cannot open pcm input: %w", err)
		}
		r = f
	}
	return audio.NewMeter(r, flagWindow, flagGain), nil
}

func runGame(gameID string, cfg core.RuntimeConfig, opts tui.Options, logger *log.Logger) (bool, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return false, err
	}

	logger.Debug("starting game", "game", gameID, "seed", cfg.Seed)
	backToMenu, err := tui.Run(game, cfg, opts)
	if err != nil {
		return false, err
	}
	if m, ok := opts.Source.(*audio.Meter); ok {
		if merr := meterErr(m.Err()); merr != nil {
			return false, merr
		}
		if m.Err() != nil {
			logger.Warn("pcm input ended, playing on in silence", "error", m.Err())
		}
	}
	return backToMenu, nil
}

// meterErr returns the capture errors that should stop the command.
// A PCM stream that simply ends leaves the level at silence and is not one of them.
func meterErr(err error) error {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return err
}

// menuLoop alternates between the menu, the scoreboard and games until the player quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig, opts func() tui.Options, logger *log.Logger) error {
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}

		default:
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			backToMenu, err := runGame(res.GameID, cfg, opts(), logger)
			if err != nil {
				return err
			}
			if !backToMenu {
				return nil
			}
		}
	}
}
