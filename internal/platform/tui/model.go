package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voicehop/internal/core"
	"github.com/vovakirdan/voicehop/internal/registry"
	"github.com/vovakirdan/voicehop/internal/storage"
)

// starter is implemented by sources that capture in the background.
type starter interface {
	Start(ctx context.Context)
}

// ticker is implemented by sources that change once per simulation tick.
type ticker interface {
	Tick()
}

// bumper is implemented by sources driven by the shout key.
type bumper interface {
	Bump()
}

// Options configures a game Model.
type Options struct {
	// Source supplies the raw loudness sample each tick. Nil means silence.
	Source core.LevelSource

	// Store receives finished runs. Nil disables persistence.
	Store *storage.Store

	// Logger receives host events. Nil discards them.
	Logger *log.Logger

	// Player is recorded with each run.
	Player string

	// Context bounds background capture started by the model.
	Context context.Context
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	source     core.LevelSource
	ctx        context.Context
	player     string
	config     core.RuntimeConfig
	fixedSeed  bool
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	captureOn  bool
	quitting   bool
	backToMenu bool
	runs       int
}

// NewModel creates a new Bubble Tea model for the given game.
// The bottom terminal row is kept for the help line.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	fixedSeed := cfg.Seed != 0
	if !fixedSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	cfg.ScreenH = playfieldHeight(cfg.ScreenH)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		source:     opts.Source,
		ctx:        ctx,
		player:     opts.Player,
		config:     cfg,
		fixedSeed:  fixedSeed,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW

	m.game.Reset(m.config)
	m.seedBest()
	m.gameState = m.game.State()
	return m
}

func playfieldHeight(h int) int {
	if h > 2 {
		return h - 1
	}
	return h
}

// seedBest shows the stored best score for this game, if any.
func (m *Model) seedBest() {
	seeder, ok := m.game.(registry.BestSeeder)
	if !ok || m.store == nil {
		return
	}
	best, err := m.store.BestScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not load best score", "game", m.game.ID(), "error", err)
		return
	}
	seeder.SetBest(best)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		if m.gameState.Paused || !m.gameState.Playing {
			m.backToMenu = true
			return m, tea.Quit
		}
	case core.ActionShout:
		if b, ok := m.source.(bumper); ok {
			b.Bump()
		}
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = playfieldHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	// Only the splash screen is rebuilt; a run in progress keeps its world.
	if !m.gameState.Playing {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		if !m.fixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		m.logger.Debug("game restarted", "game", m.game.ID())
		return m, tickCmd(m.config.TickRate)
	}

	if m.source != nil {
		m.inputFrame.Level = m.source.Level()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	if t, ok := m.source.(ticker); ok {
		t.Tick()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvent reacts to game events: capture start, logging and the run log.
func (m *Model) handleEvent(ev core.Event) {
	switch ev.Kind {
	case core.EventStarted:
		if s, ok := m.source.(starter); ok && !m.captureOn {
			s.Start(m.ctx)
			m.captureOn = true
		}
		m.logger.Info("run started", "game", m.game.ID(), "player", m.player)

	case core.EventScored:
		m.logger.Debug("landed", "score", ev.Score)

	case core.EventDied:
		m.runs++
		m.logger.Info("run ended",
			"game", m.game.ID(),
			"cause", ev.Cause,
			"score", ev.Score,
			"distance", fmt.Sprintf("%.1f", ev.Distance),
			"ticks", ev.Ticks,
		)
		m.saveRun(ev)
	}
}

// saveRun appends a finished run to the store. Failures are only logged.
func (m *Model) saveRun(ev core.Event) {
	if m.store == nil || ev.Ticks == 0 {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Player:   m.player,
		Score:    ev.Score,
		Distance: ev.Distance,
		Ticks:    ev.Ticks,
		Cause:    ev.Cause,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".voicehop", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Runs returns how many runs ended while the model was active.
func (m Model) Runs() int {
	return m.runs
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
// It returns true if the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
