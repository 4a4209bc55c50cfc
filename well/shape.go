// Package well implements the narrow vertical well that rocks are dropped into:
// the fixed catalog of falling shapes and the bit-packed ring buffer of rows
// that records which cells near the top of the stack are occupied.
package well

// Width is the number of columns in the well. Rows are stored MSB-first in a
// byte, so only the high Width bits of a Row are meaningful.
const Width = 7

// Row is one horizontal slice of the well. Bit 7 is the leftmost column.
type Row uint8

// Solid is the value of a row that has never been written. It collides with
// everything, which gives the well an implicit floor.
const Solid Row = 0xFF

// Shape is one of the falling pieces. Mask holds the rows of the shape from
// top to bottom, left aligned, so that Mask[r] >> x places the shape's left
// edge at column x.
type Shape struct {
	Name   string
	Width  int
	Height int
	Mask   [4]Row
}

// CatalogSize is the number of shapes that are cycled through.
const CatalogSize = 5

var catalog = [CatalogSize]Shape{
	{
		Name:   "bar",
		Width:  4,
		Height: 1,
		Mask:   [4]Row{0b11110000, 0b00000000, 0b00000000, 0b00000000},
	},
	{
		Name:   "plus",
		Width:  3,
		Height: 3,
		Mask:   [4]Row{0b01000000, 0b11100000, 0b01000000, 0b00000000},
	},
	{
		Name:   "corner",
		Width:  3,
		Height: 3,
		Mask:   [4]Row{0b00100000, 0b00100000, 0b11100000, 0b00000000},
	},
	{
		Name:   "pillar",
		Width:  1,
		Height: 4,
		Mask:   [4]Row{0b10000000, 0b10000000, 0b10000000, 0b10000000},
	},
	{
		Name:   "block",
		Width:  2,
		Height: 2,
		Mask:   [4]Row{0b11000000, 0b11000000, 0b00000000, 0b00000000},
	},
}

// ShapeAt returns the i-th shape of the catalog, wrapping around. The
// returned shape is shared and must not be modified.
func ShapeAt(i int) *Shape {
	return &catalog[i%CatalogSize]
}

// Fits reports whether the shape lies entirely inside the well when its left
// edge is at column x.
func (s *Shape) Fits(x int) bool {
	return x >= 0 && x+s.Width <= Width
}

// At reports whether the cell at row r, column c of the shape is occupied.
func (s *Shape) At(r, c int) bool {
	if r < 0 || r >= len(s.Mask) || c < 0 || c >= 8 {
		return false
	}
	return s.Mask[r]&(1<<(7-c)) != 0
}
