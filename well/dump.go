package well

import (
	"io"
	"strings"
)

const (
	CellEmpty   = '.'
	CellRock    = '#'
	CellFalling = '@'
)

// Overlay is a shape drawn over the well while it is still falling. Y is in
// the store's logical coordinates and may be negative.
type Overlay struct {
	Shape *Shape
	X, Y  int
}

// Occupied reports whether column c of the row is set.
func (r Row) Occupied(c int) bool {
	return c >= 0 && c < Width && r&(1<<(7-c)) != 0
}

func (r Row) String() string {
	var b [Width]byte
	for c := range b {
		if r.Occupied(c) {
			b[c] = CellRock
		} else {
			b[c] = CellEmpty
		}
	}
	return string(b[:])
}

// Render draws the top rows of src as text, one string per row, top first.
// When the overlay sits above logical row 0 the output starts with enough
// empty rows to show it.
func Render(src RowSource, rows int, overlay *Overlay) []string {
	pad := 0
	if overlay != nil && overlay.Shape != nil && overlay.Y < 0 {
		pad = -overlay.Y
	}

	lines := make([][]byte, 0, pad+rows)
	for range pad {
		lines = append(lines, []byte(strings.Repeat(string(CellEmpty), Width)))
	}
	for i := range rows {
		lines = append(lines, []byte(src.Row(i).String()))
	}

	if overlay != nil && overlay.Shape != nil {
		shape := overlay.Shape
		for r := range shape.Height {
			index := overlay.Y + pad + r
			if index < 0 || index >= len(lines) {
				continue
			}
			for c := range shape.Width {
				col := overlay.X + c
				if shape.At(r, c) && col >= 0 && col < Width {
					lines[index][col] = CellFalling
				}
			}
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = string(line)
	}
	return out
}

// Dump writes Render's output to w, one row per line.
func Dump(w io.Writer, src RowSource, rows int, overlay *Overlay) error {
	var sb strings.Builder
	for _, line := range Render(src, rows, overlay) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
