package debugui

import "github.com/plus3/rockfall/well"

// Cell is one filled square of the well in screen coordinates.
type Cell struct {
	X, Y, Size float32
	Kind       rune
}

// WellCells lays out the rock and falling cells of rendered well lines on a
// grid of size-pixel squares starting at (x, y). Empty cells are omitted.
func WellCells(lines []string, x, y, size float32) []Cell {
	var cells []Cell
	for row, line := range lines {
		for col, c := range []rune(line) {
			if c == well.CellEmpty {
				continue
			}
			cells = append(cells, Cell{
				X:    x + float32(col)*size,
				Y:    y + float32(row)*size,
				Size: size,
				Kind: c,
			})
		}
	}
	return cells
}
