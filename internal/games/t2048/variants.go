// Package t2048 implements the sliding-tile merge puzzle: a tile registry with
// stable identities, the move engine and a single-player session controller.
package t2048

// Variant defines a board size offered by the platform.
type Variant struct {
	ID    string
	Name  string
	Size  int
	Title string
}

// Variants lists the registered board sizes. The first entry is the classic game.
var Variants = []Variant{
	{ID: "2048", Name: "Classic", Size: 4, Title: "2048"},
	{ID: "2048_3x3", Name: "Tiny", Size: 3, Title: "2048 (3x3)"},
	{ID: "2048_5x5", Name: "Roomy", Size: 5, Title: "2048 (5x5)"},
	{ID: "2048_6x6", Name: "Huge", Size: 6, Title: "2048 (6x6)"},
}
