package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/voicehop/internal/platform/tui"
	"github.com/vovakirdan/voicehop/internal/registry"
	"github.com/vovakirdan/voicehop/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresTUI    bool
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show best runs",
	Long: `Display the best runs for a game, or a summary of every game played.

Examples:
  voicehop scores
  voicehop scores hop
  voicehop scores hop_marathon --limit 20
  voicehop scores --recent
  voicehop scores hop --clear
  voicehop scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs across all games")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the given game")
}

func runScores(cmd *cobra.Command, args []string) {
	if flagScoresClear && len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a game")
		os.Exit(1)
	}
	if len(args) > 0 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'voicehop list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err = tui.RunScoreboard(store, width, height)
	case flagScoresClear:
		if err = store.ClearRuns(args[0]); err == nil {
			fmt.Printf("Cleared all runs of %s.\n", args[0])
		}
	case flagScoresRecent:
		err = printRecentRuns(store)
	case len(args) > 0:
		err = printTopRuns(store, args[0])
	default:
		err = printSummary(store)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func printTopRuns(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'voicehop play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-7s  %-12s  %s\n", "Rank", "Score", "Distance", "Cause", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-7s  %-12s  %s\n", "----", "-----", "--------", "-----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-8.1f  %-7s  %-12s  %s\n",
			i+1, r.Score, r.Distance, r.Cause, player, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Longest: %.1f\n",
		stats.Runs, stats.BestScore, stats.AvgScore, stats.BestDistance)
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}

	fmt.Println("Run Summary")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-14s  %-5s  %-5s  %-8s  %s\n", "Game", "Runs", "Best", "Longest", "Last played")
	fmt.Printf("  %-14s  %-5s  %-5s  %-8s  %s\n", "----", "----", "----", "-------", "-----------")
	for _, g := range registry.List() {
		s, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-14s  %-5d  %-5d  %-8.1f  %s\n",
			g.ID, s.Runs, s.BestScore, s.BestDistance, s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecentRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-14s  %-6s  %-8s  %-7s  %s\n", "Date", "Game", "Score", "Distance", "Cause", "Player")
	fmt.Printf("  %-16s  %-14s  %-6s  %-8s  %-7s  %s\n", "----", "----", "-----", "--------", "-----", "------")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-14s  %-6d  %-8.1f  %-7s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.GameID, r.Score, r.Distance, r.Cause, r.Player)
	}
	return nil
}
