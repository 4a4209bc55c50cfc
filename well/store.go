package well

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of rows a Store keeps unless told otherwise.
// Collision tests only ever look a few rows below a falling shape, so older
// rows can be overwritten.
const DefaultCapacity = 500

// MinCapacity is the smallest ring the simulator accepts. A shape can fall
// well below the top row before it rests, and a smaller ring wraps those
// collision tests onto recent rows.
const MinCapacity = 64

var (
	ErrCapacity = errors.New("well: capacity too small")
)

// RowSource is anything that can answer what a logical row looks like.
type RowSource interface {
	Row(i int) Row
}

// Store is a fixed-size ring buffer of rows. Logical row 0 is the top of the
// stack; higher indexes go down towards the floor. Rows that were never
// written read as Solid.
type Store struct {
	rows []Row
	head int
}

// NewStore allocates a store with the given number of rows, all Solid.
func NewStore(capacity int) (*Store, error) {
	if capacity < MinCapacity {
		return nil, fmt.Errorf("%w: %d rows (minimum %d)", ErrCapacity, capacity, MinCapacity)
	}

	rows := make([]Row, capacity)
	for i := range rows {
		rows[i] = Solid
	}

	return &Store{rows: rows}, nil
}

// Capacity returns the number of rows in the ring.
func (s *Store) Capacity() int {
	return len(s.rows)
}

// Head returns the physical index of logical row 0.
func (s *Store) Head() int {
	return s.head
}

// Unshift grows the well upward by one empty row.
func (s *Store) Unshift() {
	s.head = (s.head + len(s.rows) - 1) % len(s.rows)
	s.rows[s.head] = 0
}

// Row returns logical row i. i must not be negative.
func (s *Store) Row(i int) Row {
	return s.rows[s.index(i)]
}

func (s *Store) index(i int) int {
	index := s.head + i
	if index >= len(s.rows) {
		index %= len(s.rows)
	}
	return index
}

// Set ORs the shape into the store with its top-left corner at column x,
// logical row y. The caller must have checked that the placement is free.
func (s *Store) Set(shape *Shape, x, y int) {
	for r, mask := range shape.Mask {
		s.rows[s.index(y+r)] |= mask >> x
	}
}

// Test reports whether the shape placed at (x, y) overlaps any occupied cell.
// Rows above logical row 0 are open air and never collide.
func (s *Store) Test(shape *Shape, x, y int) bool {
	for r, mask := range shape.Mask {
		if y+r < 0 || mask == 0 {
			continue
		}
		if (mask>>x)&s.Row(y+r) != 0 {
			return true
		}
	}
	return false
}

// AppendWindow appends every row of the ring to dst in logical order, top
// first, and returns the extended slice.
func (s *Store) AppendWindow(dst []byte) []byte {
	for _, r := range s.rows[s.head:] {
		dst = append(dst, byte(r))
	}
	for _, r := range s.rows[:s.head] {
		dst = append(dst, byte(r))
	}
	return dst
}

// Snapshot copies the top n logical rows.
func (s *Store) Snapshot(n int) Snapshot {
	n = min(n, len(s.rows))
	snap := make(Snapshot, n)
	for i := range snap {
		snap[i] = s.Row(i)
	}
	return snap
}

// Snapshot is a detached copy of the top rows of a Store. Rows past its end
// read as Solid, like unwritten rows of the store itself.
type Snapshot []Row

func (s Snapshot) Row(i int) Row {
	if i < 0 || i >= len(s) {
		return Solid
	}
	return s[i]
}
