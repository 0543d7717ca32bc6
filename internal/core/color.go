package core

// Color represents a tile color.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined tile colors, from small values to large ones.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorBlue
	ColorCyan
	ColorGreen
	ColorBrightYellow
	ColorBrightRed
	ColorBrightMagenta
	ColorGray
)

// tileColors is indexed by log2(value) - 1.
var tileColors = []Color{
	ColorWhite,         // 2
	ColorYellow,        // 4
	ColorOrange,        // 8
	ColorRed,           // 16
	ColorMagenta,       // 32
	ColorBlue,          // 64
	ColorCyan,          // 128
	ColorGreen,         // 256
	ColorBrightYellow,  // 512
	ColorBrightRed,     // 1024
	ColorBrightMagenta, // 2048
}

// TileColor returns the display color for a tile value.
// Empty cells map to ColorGray and values beyond 2048 reuse the last color.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	exp := 0
	for v := value; v > 1; v >>= 1 {
		exp++
	}
	if exp == 0 {
		return ColorDefault
	}
	if exp > len(tileColors) {
		return tileColors[len(tileColors)-1]
	}
	return tileColors[exp-1]
}
