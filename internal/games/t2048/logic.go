package t2048

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// BoardSize is the default board dimension.
const BoardSize = 4

// ErrUnknownDirection is returned when a direction name can't be parsed.
var ErrUnknownDirection = errors.New("t2048: unknown direction")

// Directions lists all move directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts a name like "left" or "L" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Merge describes two tiles combining during a move.
type Merge struct {
	Kept     int // Surviving id (closer to the wall)
	Consumed int // Retired id
	Pos      int // Final position of the merged tile
	Value    int // Value after merging
}

// MoveResult is the outcome of resolving one move.
type MoveResult struct {
	Moved     bool
	ScoreGain int
	Tiles     []Tile // Resulting tiles ordered by position
	Merges    []Merge
}

// lineCells returns the grid positions of one row or column in travel
// order, i.e. starting from the wall the tiles move toward.
func lineCells(dir Direction, line, size int) []int {
	cells := make([]int, size)
	for k := range size {
		switch dir {
		case DirLeft:
			cells[k] = line*size + k
		case DirRight:
			cells[k] = line*size + (size - 1 - k)
		case DirUp:
			cells[k] = k*size + line
		case DirDown:
			cells[k] = (size-1-k)*size + line
		}
	}
	return cells
}

// Resolve slides and merges every line of the board in the given direction.
// Merging is a single greedy pass per line: the earlier tile in travel order
// absorbs the next one and keeps its id, and a merged tile is never merged
// again within the same move. The input slice is not modified.
func Resolve(tiles []Tile, dir Direction, size int) MoveResult {
	if !dir.Valid() {
		out := make([]Tile, len(tiles))
		copy(out, tiles)
		return MoveResult{Tiles: out}
	}

	byPos := make(map[int]Tile, len(tiles))
	for _, t := range tiles {
		byPos[t.Pos] = t
	}

	res := MoveResult{Tiles: make([]Tile, 0, len(tiles))}

	for line := range size {
		cells := lineCells(dir, line, size)

		// Slide: keep only occupied cells, in travel order
		compact := make([]Tile, 0, size)
		for _, pos := range cells {
			if t, ok := byPos[pos]; ok {
				compact = append(compact, t)
			}
		}

		slot := 0
		for i := 0; i < len(compact); i++ {
			cur := compact[i]
			out := Tile{ID: cur.ID, Value: cur.Value, Pos: cells[slot]}

			if i+1 < len(compact) && compact[i+1].Value == cur.Value {
				next := compact[i+1]
				out.Value = cur.Value * 2
				out.MergedFrom = &[2]int{cur.ID, next.ID}
				res.ScoreGain += out.Value
				res.Merges = append(res.Merges, Merge{
					Kept:     cur.ID,
					Consumed: next.ID,
					Pos:      out.Pos,
					Value:    out.Value,
				})
				res.Moved = true
				i++ // next tile is consumed
			}

			if out.Pos != cur.Pos {
				res.Moved = true
			}

			res.Tiles = append(res.Tiles, out)
			slot++
		}
	}

	sort.Slice(res.Tiles, func(i, j int) bool {
		return res.Tiles[i].Pos < res.Tiles[j].Pos
	})

	return res
}

// GridFromTiles builds the flat value grid for a set of tiles.
func GridFromTiles(tiles []Tile, size int) []int {
	grid := make([]int, size*size)
	for _, t := range tiles {
		if t.Pos >= 0 && t.Pos < len(grid) {
			grid[t.Pos] = t.Value
		}
	}
	return grid
}

// EmptyCells returns the positions of all empty cells.
func EmptyCells(grid []int) []int {
	var cells []int
	for i, v := range grid {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(grid []int) bool {
	for _, v := range grid {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(grid []int, size int) bool {
	for y := range size {
		for x := range size {
			val := grid[y*size+x]
			if val == 0 {
				continue
			}
			// Check right neighbor
			if x < size-1 && grid[y*size+x+1] == val {
				return true
			}
			// Check bottom neighbor
			if y < size-1 && grid[(y+1)*size+x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(grid []int, size int) bool {
	return HasEmptyCell(grid) || HasPossibleMerge(grid, size)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(grid []int) int {
	maxVal := 0
	for _, v := range grid {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// isPowerOfTwo reports whether v is a valid tile value.
func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
