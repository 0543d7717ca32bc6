// Package tui provides the Bubble Tea front-end for the puzzle.
// It handles the terminal UI loop, input mapping, persistence of the running
// game and the leaderboard screens.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lab2048/internal/core"
	"github.com/vovakirdan/lab2048/internal/registry"
	"github.com/vovakirdan/lab2048/internal/storage"
)

// Options configures the game screen.
type Options struct {
	Runtime         core.RuntimeConfig
	LeaderboardSize int
	DefaultName     string
	ScreenshotDir   string // Defaults to ~/.lab2048/screenshots
}

type screen int

const (
	screenPlay screen = iota
	screenName
	screenLeaders
)

// Model is the Bubble Tea model for playing one puzzle variant.
type Model struct {
	game        registry.Game
	store       *storage.Store // May be nil, persistence is then skipped
	logger      *log.Logger
	opts        Options
	keys        KeyMap
	help        help.Model
	state       core.GameState
	best        int
	screen      screen
	nameInput   textinput.Model
	leaders     LeaderboardModel
	leaderSaved bool // Whether the current game over has been handled
	width       int
	height      int
	quitting    bool
}

// NewModel creates a new Bubble Tea model for the given game.
// The saved game for the variant is resumed when the store has one.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, opts Options) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = storage.DefaultLeaderboardSize
	}
	if opts.DefaultName == "" {
		opts.DefaultName = "Anonymous"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = opts.DefaultName
	ti.Prompt = "name: "
	ti.CharLimit = 24
	ti.Width = 24

	m := Model{
		game:      game,
		store:     store,
		logger:    logger.With("variant", game.ID()),
		opts:      opts,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		nameInput: ti,
	}

	m.game.Reset(opts.Runtime)
	m.resume()
	m.state = m.game.State()
	// A finished game loaded from disk was already offered to the leaderboard
	m.leaderSaved = m.state.Over

	return m
}

// resume loads the saved game and the best score from the store.
// Any failure keeps the fresh game.
func (m *Model) resume() {
	if m.store == nil {
		return
	}

	best, err := m.store.BestScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not read best score", "error", err)
	}
	m.best = best

	data, err := m.store.LoadGame(m.game.ID())
	switch {
	case errors.Is(err, storage.ErrNoSavedGame):
		m.logger.Debug("no saved game, starting fresh")
		return
	case err != nil:
		m.logger.Warn("could not load saved game", "error", err)
		return
	}

	if err := m.game.UnmarshalRecord(data); err != nil {
		m.logger.Warn("discarding invalid saved game", "error", err)
		return
	}
	m.logger.Info("resumed saved game", "score", m.game.State().Score)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenLeaders {
			return m.updateLeaders(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenName:
			return m.updateName(msg)
		case screenLeaders:
			return m.updateLeaders(msg)
		}
		return m.handleKey(msg)
	}

	// Cursor blink and other input messages
	if m.screen == screenName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input on the game screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.persist()
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeaders:
		m.openLeaders(0)
		return m, nil
	}

	if !m.game.Apply(action) {
		return m, nil
	}
	m.state = m.game.State()
	if action == core.ActionNewGame {
		m.leaderSaved = false
		m.logger.Info("new game")
	}
	m.persist()

	if m.state.Over && !m.leaderSaved {
		m.logger.Info("game over", "score", m.state.Score, "max_tile", m.state.MaxTile, "moves", m.state.Moves)
		if m.store == nil || m.state.Score == 0 {
			m.leaderSaved = true
			return m, nil
		}
		m.screen = screenName
		m.nameInput.SetValue("")
		return m, m.nameInput.Focus()
	}

	return m, nil
}

// updateName handles the leader name prompt shown after a game over.
func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.leaderSaved = true
		m.screen = screenPlay
		return m, nil
	case tea.KeyEnter:
		m.nameInput.Blur()
		m.leaderSaved = true
		rank := m.saveLeader(m.nameInput.Value())
		m.openLeaders(rank)
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// updateLeaders forwards messages to the embedded leaderboard.
func (m Model) updateLeaders(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.leaders.Update(msg)
	if lb, ok := next.(LeaderboardModel); ok {
		m.leaders = lb
	}
	if m.leaders.IsQuitting() {
		m.persist()
		m.quitting = true
		return m, tea.Quit
	}
	if m.leaders.IsGoingBack() {
		m.screen = screenPlay
	}
	return m, cmd
}

// openLeaders switches to the leaderboard, selecting rank if non-zero.
func (m *Model) openLeaders(rank int) {
	m.leaders = NewLeaderboardModel(m.store, m.game.ID(), m.opts.LeaderboardSize, m.width, m.height)
	if rank > 0 {
		m.leaders.Highlight(rank)
	}
	m.screen = screenLeaders
}

// saveLeader records the finished game and returns its rank, 0 if it
// did not make the board.
func (m *Model) saveLeader(name string) int {
	if m.store == nil {
		return 0
	}
	rank, err := m.store.SaveLeader(m.game.ID(), name, m.state.Score, m.opts.LeaderboardSize, m.opts.DefaultName)
	if err != nil {
		m.logger.Warn("could not save leader", "error", err)
		return 0
	}
	m.logger.Info("leader saved", "score", m.state.Score, "rank", rank)
	return rank
}

// persist saves the running game and raises the best score.
// Failures are logged and the game continues.
func (m *Model) persist() {
	if m.state.Score > m.best {
		m.best = m.state.Score
	}
	if m.store == nil {
		return
	}

	data, err := m.game.MarshalRecord()
	if err != nil {
		m.logger.Error("could not encode game", "error", err)
		return
	}
	if err := m.store.SaveGame(m.game.ID(), data); err != nil {
		m.logger.Warn("could not save game", "error", err)
	}

	best, err := m.store.UpdateBest(m.game.ID(), m.state.Score)
	if err != nil {
		m.logger.Warn("could not update best score", "error", err)
		return
	}
	m.best = best
}

// saveScreenshot saves the current board as plain text.
func (m *Model) saveScreenshot() {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("could not resolve home directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".lab2048", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	content := fmt.Sprintf("%s  score %d\n%s\n", m.game.Title(), m.state.Score, PlainBoard(m.state))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenLeaders {
		return m.leaders.View()
	}

	var b strings.Builder
	b.WriteString(RenderHeader(m.game.Title(), m.state, m.best))
	b.WriteString("\n\n")
	b.WriteString(RenderBoard(m.state))
	b.WriteString("\n")

	if m.screen == screenName {
		b.WriteString(overStyle.Render("GAME OVER"))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("Final score %d. Enter your name for the leaderboard:", m.state.Score)))
		b.WriteString("\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter save • esc skip"))
	} else {
		b.WriteString(RenderStatus(m.state))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, opts Options) error {
	model := NewModel(game, store, logger, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
