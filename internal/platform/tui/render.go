package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lab2048/internal/core"
)

// cellWidth is the printable width of one board cell.
const cellWidth = 7

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// cellText returns the centered label for a cell value.
func cellText(value int) string {
	label := "·"
	if value > 0 {
		label = strconv.Itoa(value)
	}
	if len(label) >= cellWidth {
		return label
	}
	pad := cellWidth - lipgloss.Width(label)
	left := pad / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", pad-left)
}

// RenderBoard renders the grid as a bordered block of colored cells.
// Cells merged by the last move are drawn reversed and freshly spawned
// cells are underlined.
func RenderBoard(st core.GameState) string {
	if st.Size <= 0 || len(st.Grid) != st.Size*st.Size {
		return ""
	}

	merged := make(map[int]bool, len(st.MergedCells))
	for _, p := range st.MergedCells {
		merged[p] = true
	}
	spawned := make(map[int]bool, len(st.SpawnedCells))
	for _, p := range st.SpawnedCells {
		spawned[p] = true
	}

	rows := make([]string, st.Size)
	for r := range st.Size {
		var sb strings.Builder
		for c := range st.Size {
			pos := r*st.Size + c
			value := st.Grid[pos]

			style, ok := colorStyles[core.TileColor(value)]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			switch {
			case merged[pos]:
				style = style.Reverse(true)
			case spawned[pos]:
				style = style.Underline(true)
			}
			sb.WriteString(style.Render(cellText(value)))
		}
		rows[r] = sb.String()
	}

	// Blank line between rows keeps cells roughly square
	return boardStyle.Render(strings.Join(rows, "\n\n"))
}

// RenderHeader renders the title with the score and best score.
func RenderHeader(title string, st core.GameState, best int) string {
	if st.Score > best {
		best = st.Score
	}
	return fmt.Sprintf("%s   %s %s   %s %s   %s %s",
		titleStyle.Render(title),
		labelStyle.Render("score"), valueStyle.Render(strconv.Itoa(st.Score)),
		labelStyle.Render("best"), valueStyle.Render(strconv.Itoa(best)),
		labelStyle.Render("moves"), valueStyle.Render(strconv.Itoa(st.Moves)),
	)
}

// RenderStatus renders the line below the board.
func RenderStatus(st core.GameState) string {
	if st.Over {
		return overStyle.Render("GAME OVER") + labelStyle.Render("  press n for a new game")
	}
	if st.CanUndo {
		return labelStyle.Render("u to undo the last move")
	}
	return ""
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// PlainBoard renders the grid as unstyled text, one row per line.
// Used for screenshots and non-terminal output.
func PlainBoard(st core.GameState) string {
	if st.Size <= 0 || len(st.Grid) != st.Size*st.Size {
		return ""
	}
	lines := make([]string, st.Size)
	for r := range st.Size {
		var sb strings.Builder
		for c := range st.Size {
			sb.WriteString(cellText(st.Grid[r*st.Size+c]))
		}
		lines[r] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}
