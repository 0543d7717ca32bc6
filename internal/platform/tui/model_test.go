package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lab2048/internal/core"
	"github.com/vovakirdan/lab2048/internal/games/t2048"
	"github.com/vovakirdan/lab2048/internal/storage"
)

// lastMove is a board where a left move merges the 2s and the spawned 2
// fills the only gap with nothing left to merge.
const lastMove = `{"grid":[2,2,8,16,32,64,128,256,512,1024,2048,4096,8192,16384,32768,65536],"score":0}`

func testOptions() Options {
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	cfg.Spawn4Prob = 0
	return Options{Runtime: cfg}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func TestModelWithoutStore(t *testing.T) {
	m := NewModel(t2048.New(), nil, nil, testOptions())

	if m.state.Score != 0 || m.state.Over {
		t.Fatalf("fresh model state = %+v", m.state)
	}

	before := m.state.Moves
	for _, k := range []tea.KeyType{tea.KeyLeft, tea.KeyUp, tea.KeyRight, tea.KeyDown} {
		m = send(t, m, tea.KeyMsg{Type: k})
	}
	if m.state.Moves <= before {
		t.Error("arrow keys should move the board")
	}
	if m.View() == "" {
		t.Error("View() should render the board")
	}
}

func TestModelResumesSavedGame(t *testing.T) {
	store := openStore(t)
	saved := `{"grid":[2,0,0,0,0,4,0,0,0,0,0,0,0,0,0,8],"score":12}`
	if err := store.SaveGame("2048", []byte(saved)); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	m := NewModel(t2048.New(), store, nil, testOptions())
	if m.state.Score != 12 {
		t.Errorf("resumed score = %d, want 12", m.state.Score)
	}
}

func TestModelDiscardsInvalidSave(t *testing.T) {
	store := openStore(t)
	if err := store.SaveGame("2048", []byte(`{"grid":[3]}`)); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}

	m := NewModel(t2048.New(), store, nil, testOptions())
	if m.state.Score != 0 || len(m.state.Grid) != 16 {
		t.Errorf("invalid save should fall back to a new game, got %+v", m.state)
	}
}

func TestModelPersistsAfterMove(t *testing.T) {
	store := openStore(t)
	m := NewModel(t2048.New(), store, nil, testOptions())
	if err := m.game.UnmarshalRecord([]byte(`{"grid":[2,2,0,0,0,0,0,0,0,0,0,0,0,0,0,0],"score":0}`)); err != nil {
		t.Fatalf("UnmarshalRecord() failed: %v", err)
	}
	m.state = m.game.State()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	if _, err := store.LoadGame("2048"); err != nil {
		t.Errorf("LoadGame() after move failed: %v", err)
	}
	best, err := store.BestScore("2048")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 4 || m.best != 4 {
		t.Errorf("best = %d (model %d), want 4", best, m.best)
	}
}

func TestGameOverPromptsForLeaderName(t *testing.T) {
	store := openStore(t)
	m := NewModel(t2048.New(), store, nil, testOptions())
	if err := m.game.UnmarshalRecord([]byte(lastMove)); err != nil {
		t.Fatalf("UnmarshalRecord() failed: %v", err)
	}
	m.state = m.game.State()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if !m.state.Over {
		t.Fatal("game should be over")
	}
	if m.screen != screenName {
		t.Fatalf("screen = %d, want name prompt", m.screen)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenLeaders {
		t.Errorf("screen = %d, want leaderboard", m.screen)
	}
	leaders, err := store.Leaders("2048", 10)
	if err != nil {
		t.Fatalf("Leaders() failed: %v", err)
	}
	if len(leaders) != 1 || leaders[0].Name != "Ada" || leaders[0].Score != 4 {
		t.Errorf("leaders = %+v, want Ada with 4", leaders)
	}

	// Leaving the board returns to the finished game without a second prompt
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenPlay {
		t.Errorf("screen = %d, want game", m.screen)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.screen != screenPlay {
		t.Error("a finished game should not prompt twice")
	}
}

func TestGameOverSkipKeepsBoardEmpty(t *testing.T) {
	store := openStore(t)
	m := NewModel(t2048.New(), store, nil, testOptions())
	if err := m.game.UnmarshalRecord([]byte(lastMove)); err != nil {
		t.Fatalf("UnmarshalRecord() failed: %v", err)
	}
	m.state = m.game.State()

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.screen != screenPlay {
		t.Errorf("screen = %d, want game", m.screen)
	}
	if leaders, _ := store.Leaders("2048", 10); len(leaders) != 0 {
		t.Errorf("skipping the prompt saved %d leaders", len(leaders))
	}

	m = send(t, m, runeKey('n'))
	if m.state.Over || m.state.Score != 0 {
		t.Errorf("new game state = %+v", m.state)
	}
}

func TestScreenshotWritesBoard(t *testing.T) {
	opts := testOptions()
	opts.ScreenshotDir = t.TempDir()
	m := NewModel(t2048.New(), nil, nil, opts)

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	matches, err := filepath.Glob(filepath.Join(opts.ScreenshotDir, "2048_*.txt"))
	if err != nil {
		t.Fatalf("Glob() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("screenshots = %v, want one file", matches)
	}
}
