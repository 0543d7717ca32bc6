package t2048

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/lab2048/internal/core"
	"github.com/vovakirdan/lab2048/internal/registry"
)

// oneMoveLeft is a full board whose only pair sits in the top row.
// After a left move with 2-only spawns the freed cell at position 3 gets a
// 2 that pairs vertically with the 2 below it, so left and right become no-ops.
var oneMoveLeft = []int{
	2, 2, 8, 16,
	32, 64, 128, 2,
	512, 1024, 2048, 4096,
	8192, 16384, 32768, 65536,
}

var stalemate = []int{
	2, 4, 8, 16,
	32, 64, 128, 256,
	512, 1024, 2048, 4096,
	8192, 16384, 32768, 65536,
}

// newTestGame creates a 4x4 game that only spawns 2s, loaded with grid.
func newTestGame(t *testing.T, grid []int) *Game {
	t.Helper()
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	cfg.Spawn4Prob = 0
	g.Reset(cfg)
	if err := g.LoadRecord(Record{Grid: grid}); err != nil {
		t.Fatalf("LoadRecord() failed: %v", err)
	}
	return g
}

// moveAny performs the first move that changes the board.
func moveAny(t *testing.T, g *Game) Direction {
	t.Helper()
	for _, dir := range Directions {
		if g.Move(dir) {
			return dir
		}
	}
	t.Fatal("no direction moved")
	return 0
}

func TestNewGamePlacesOneToThreeTiles(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := New()
		cfg := core.DefaultConfig()
		cfg.Seed = seed
		g.Reset(cfg)

		st := g.Details()
		if n := len(st.Tiles); n < 1 || n > 3 {
			t.Fatalf("seed %d: %d tiles, want 1..3", seed, n)
		}
		for _, tile := range st.Tiles {
			if tile.Value != 2 && tile.Value != 4 {
				t.Errorf("seed %d: tile value %d, want 2 or 4", seed, tile.Value)
			}
			if st.Grid[tile.Pos] != tile.Value {
				t.Errorf("seed %d: grid[%d] = %d, tile says %d", seed, tile.Pos, st.Grid[tile.Pos], tile.Value)
			}
		}
		filled := len(st.Grid) - len(EmptyCells(st.Grid))
		if filled != len(st.Tiles) {
			t.Errorf("seed %d: %d filled cells for %d tiles", seed, filled, len(st.Tiles))
		}
		if st.Score != 0 || st.Over || st.CanUndo {
			t.Errorf("seed %d: score=%d over=%v canUndo=%v", seed, st.Score, st.Over, st.CanUndo)
		}
	}
}

func TestDeterministicSpawn(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 12345

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	if !reflect.DeepEqual(g1.Record(), g2.Record()) {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", g1.Record(), g2.Record())
	}

	moveAny(t, g1)
	moveAny(t, g2)
	if !reflect.DeepEqual(g1.Record(), g2.Record()) {
		t.Error("Same seed should produce same board after a move")
	}
}

func TestMoveCommitsAndSpawns(t *testing.T) {
	g := newTestGame(t, oneMoveLeft)

	if !g.Move(DirLeft) {
		t.Fatal("Move(left) should succeed")
	}

	want := []int{
		4, 8, 16, 2,
		32, 64, 128, 2,
		512, 1024, 2048, 4096,
		8192, 16384, 32768, 65536,
	}
	st := g.Details()
	if !reflect.DeepEqual(st.Grid, want) {
		t.Errorf("grid after move:\n%v\nwant\n%v", st.Grid, want)
	}
	if st.Score != 4 {
		t.Errorf("score = %d, want 4", st.Score)
	}
	if st.Over {
		t.Error("board with a vertical pair should not be over")
	}

	// Legacy load numbers tiles by position, so the wall-side 2 is id 1.
	merged, ok := g.registry.Get(1)
	if !ok || merged.Value != 4 || merged.Pos != 0 {
		t.Errorf("survivor = %+v (live=%v), want id 1 value 4 at 0", merged, ok)
	}
	if _, ok := g.registry.Get(2); ok {
		t.Error("consumed tile 2 should be retired")
	}
	if g.registry.Len() != 16 {
		t.Errorf("live tiles = %d, want 16", g.registry.Len())
	}
}

func TestMoveEvents(t *testing.T) {
	g := newTestGame(t, oneMoveLeft)
	g.Move(DirLeft)

	kinds := map[EventKind][]TileEvent{}
	for _, e := range g.Events() {
		kinds[e.Kind] = append(kinds[e.Kind], e)
	}

	if m := kinds[EventMerged]; len(m) != 1 || m[0].ID != 1 || m[0].Value != 4 {
		t.Errorf("merged events = %+v", m)
	}
	if r := kinds[EventRemoved]; len(r) != 1 || r[0].ID != 2 || r[0].MergedInto != 1 || r[0].To != 0 {
		t.Errorf("removed events = %+v", r)
	}
	if mv := kinds[EventMoved]; len(mv) != 2 {
		t.Errorf("moved events = %+v, want 2", mv)
	}
	s := kinds[EventSpawned]
	if len(s) != 1 || s[0].To != 3 || s[0].ID != 17 {
		t.Errorf("spawned events = %+v, want id 17 at 3", s)
	}

	st := g.State()
	if !reflect.DeepEqual(st.MergedCells, []int{0}) || !reflect.DeepEqual(st.SpawnedCells, []int{3}) {
		t.Errorf("highlights merged=%v spawned=%v", st.MergedCells, st.SpawnedCells)
	}
}

func TestNoOpMoveLeavesStateUntouched(t *testing.T) {
	g := newTestGame(t, oneMoveLeft)
	g.Move(DirLeft)

	before := g.Record()
	beforeNext := g.registry.NextID()

	for _, dir := range []Direction{DirLeft, DirRight} {
		if g.Move(dir) {
			t.Errorf("Move(%s) should be a no-op", dir)
		}
	}

	if !reflect.DeepEqual(g.Record(), before) {
		t.Error("no-op move changed the session")
	}
	if g.registry.NextID() != beforeNext {
		t.Error("no-op move spawned a tile")
	}

	// The pending snapshot from the real move survives the no-ops.
	if !g.Undo() {
		t.Fatal("Undo() after no-op moves should succeed")
	}
	if !reflect.DeepEqual(g.Record().Grid, oneMoveLeft) || g.Score() != 0 {
		t.Errorf("undo restored %v score %d", g.Record().Grid, g.Score())
	}
}

func TestStalemateRefusesAllMoves(t *testing.T) {
	g := newTestGame(t, stalemate)

	if !g.Over() {
		t.Fatal("loading a stalemate should mark the game over")
	}

	before := g.Record()
	for _, dir := range Directions {
		if g.Move(dir) {
			t.Errorf("Move(%s) on stalemate should return false", dir)
		}
	}
	if !reflect.DeepEqual(g.Record(), before) {
		t.Error("moves on stalemate changed the session")
	}
}

func TestGameOverAfterFinalSpawn(t *testing.T) {
	// Left merges the 2s, the spawned 2 lands in the only gap and
	// nothing can merge afterwards.
	g := newTestGame(t, []int{
		2, 2, 8, 16,
		32, 64, 128, 256,
		512, 1024, 2048, 4096,
		8192, 16384, 32768, 65536,
	})

	if !g.Move(DirLeft) {
		t.Fatal("Move(left) should succeed")
	}
	if !g.Over() {
		t.Error("game should be over after filling the last cell")
	}
	if g.Undo() {
		t.Error("Undo() after game over should be refused")
	}
	if g.Move(DirRight) {
		t.Error("Move() after game over should be refused")
	}
}

func TestUndoIsSingleLevel(t *testing.T) {
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	g.Reset(cfg)
	if err := g.LoadRecord(Record{Grid: row(2)}); err != nil {
		t.Fatalf("LoadRecord() failed: %v", err)
	}

	if g.Undo() {
		t.Error("Undo() without a move should be a no-op")
	}

	moveAny(t, g) // move A
	beforeB := g.Record()
	moveAny(t, g) // move B

	if !g.Undo() {
		t.Fatal("Undo() should succeed after a move")
	}
	if !reflect.DeepEqual(g.Record(), beforeB) {
		t.Errorf("undo restored\n%v\nwant state before move B\n%v", g.Record(), beforeB)
	}

	if g.Undo() {
		t.Error("second Undo() should be a no-op")
	}
	if !reflect.DeepEqual(g.Record(), beforeB) {
		t.Error("second Undo() changed the session")
	}
}

func TestUndoDoesNotReuseIDs(t *testing.T) {
	g := newTestGame(t, oneMoveLeft)
	g.Move(DirLeft) // spawns id 17
	g.Undo()
	g.Move(DirLeft)

	for _, e := range g.Events() {
		if e.Kind == EventSpawned && e.ID != 18 {
			t.Errorf("spawn after undo got id %d, want 18", e.ID)
		}
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 99
	g.Reset(cfg)

	last := 0
	for i := 0; i < 500 && !g.Over(); i++ {
		g.Move(Directions[i%len(Directions)])
		if g.Score() < last {
			t.Fatalf("score dropped from %d to %d", last, g.Score())
		}
		last = g.Score()

		st := g.Details()
		if !reflect.DeepEqual(GridFromTiles(st.Tiles, BoardSize), st.Grid) {
			t.Fatalf("grid and tiles disagree after move %d", i)
		}
	}
}

func TestApplyActions(t *testing.T) {
	g := newTestGame(t, oneMoveLeft)

	if !g.Apply(core.ActionLeft) {
		t.Error("ActionLeft should move")
	}
	if !g.State().CanUndo {
		t.Error("state should report a pending undo")
	}
	if !g.Apply(core.ActionUndo) {
		t.Error("ActionUndo should undo")
	}
	if g.Apply(core.ActionLeaders) {
		t.Error("ActionLeaders is not a game command")
	}
	if !g.Apply(core.ActionNewGame) || g.Score() != 0 {
		t.Error("ActionNewGame should restart")
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %s not registered", v.ID)
			continue
		}
		game, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", v.ID, err)
		}
		game.Reset(core.DefaultConfig())
		if st := game.State(); st.Size != v.Size || len(st.Grid) != v.Size*v.Size {
			t.Errorf("variant %s: size %d grid %d", v.ID, st.Size, len(st.Grid))
		}
	}
}

func TestDirectionAction(t *testing.T) {
	want := map[Direction]core.Action{
		DirUp:    core.ActionUp,
		DirDown:  core.ActionDown,
		DirLeft:  core.ActionLeft,
		DirRight: core.ActionRight,
	}
	for dir, action := range want {
		if got := dir.Action(); got != action {
			t.Errorf("%s.Action() = %s, want %s", dir, got, action)
		}
	}
	if got := Direction(9).Action(); got != core.ActionNone {
		t.Errorf("invalid direction action = %s, want None", got)
	}
}

func TestNewSized(t *testing.T) {
	tests := []struct {
		size int
		id   string
	}{
		{3, "2048_3x3"},
		{4, "2048"},
		{7, "2048_custom"},
	}
	for _, tt := range tests {
		g := NewSized(tt.size)
		if g.ID() != tt.id || g.Size() != tt.size {
			t.Errorf("NewSized(%d) = %s size %d, want %s", tt.size, g.ID(), g.Size(), tt.id)
		}
	}
}

func TestSetRandIsDeterministic(t *testing.T) {
	a, b := New(), New()
	a.SetRand(rand.New(rand.NewSource(5)))
	b.SetRand(rand.New(rand.NewSource(5)))
	a.NewGame()
	b.NewGame()

	if !reflect.DeepEqual(a.Details().Grid, b.Details().Grid) {
		t.Errorf("same seed produced different boards: %v vs %v", a.Details().Grid, b.Details().Grid)
	}
}
