// Package sim drops shapes into a well one after another, pushing each one
// sideways with a repeating jet pattern until it comes to rest, and tracks
// how tall the resulting stack gets.
package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/plus3/rockfall/well"
)

const (
	// spawnColumn is the left edge of every new shape.
	spawnColumn = 2
	// spawnGap is the number of empty rows between a new shape and the top
	// of the stack. The shape is pushed once per row on the way down.
	spawnGap = 3

	// cancelCheckInterval is how many drops RunContext simulates between
	// context checks.
	cancelCheckInterval = 4096
)

// Phase identifies where in its fall a shape is.
type Phase int

const (
	PhaseSpawn Phase = iota
	PhaseFreeFall
	PhaseStep
	PhaseRest
	// PhaseSettled follows PhaseRest once the shape has been written to the
	// well. Its Y is in the well's new coordinates.
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawn:
		return "spawn"
	case PhaseFreeFall:
		return "free-fall"
	case PhaseStep:
		return "step"
	case PhaseRest:
		return "rest"
	case PhaseSettled:
		return "settled"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Step is one observed position of a falling shape. Y is relative to the top
// of the stack as it was when the shape spawned.
type Step struct {
	Phase    Phase
	Shape    *well.Shape
	X, Y     int
	JetIndex int
}

// Observer receives every Step of every drop, synchronously.
type Observer func(Step)

// Simulator owns one well and drops shapes into it. It is not safe for
// concurrent use; independent simulators share nothing.
type Simulator struct {
	jets  *Jets
	store *well.Store
	opts  Options
	log   hclog.Logger

	shapeIndex int
	height     int64
	drops      int64
	x, y       int

	cycles *cycleDetector
	cycle  *Cycle
}

// New creates a simulator for the given jet pattern.
func New(pattern string, opts ...Option) (*Simulator, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	jets, err := ParseJets(pattern)
	if err != nil {
		return nil, err
	}

	store, err := well.NewStore(options.Capacity)
	if err != nil {
		return nil, fmt.Errorf("creating well store: %w", err)
	}

	s := &Simulator{
		jets:  jets,
		store: store,
		opts:  options,
		log:   options.Logger,
	}
	if options.CycleSkip {
		s.cycles = newCycleDetector()
	}

	s.log.Trace("simulator created", "jets", jets.Len(), "capacity", store.Capacity(), "cycle_skip", options.CycleSkip)
	return s, nil
}

// Height runs a fresh simulator for the given number of drops and returns the
// height of the stack.
func Height(pattern string, drops int64, opts ...Option) (int64, error) {
	s, err := New(pattern, opts...)
	if err != nil {
		return 0, err
	}
	return s.Run(drops)
}

// Run drops n more shapes and returns the total height of the stack.
func (s *Simulator) Run(n int64) (int64, error) {
	return s.RunContext(context.Background(), n)
}

// RunContext is Run that stops early with the context's error once ctx is
// done. The stack keeps every shape dropped before that.
func (s *Simulator) RunContext(ctx context.Context, n int64) (int64, error) {
	if n < 0 {
		return s.height, fmt.Errorf("%w: %d", ErrNegativeDrops, n)
	}

	target := s.drops + n
	for steps := 0; s.drops < target; steps++ {
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				s.log.Debug("run cancelled", "drops", s.drops, "height", s.height)
				return s.height, err
			}
		}
		if s.cycles != nil {
			s.skipCycles(target)
			if s.drops >= target {
				break
			}
		}
		s.Drop()
	}

	s.log.Debug("run complete", "drops", s.drops, "height", s.height)
	return s.height, nil
}

// Drop lets the next shape fall until it rests and commits it to the well.
func (s *Simulator) Drop() {
	shape := well.ShapeAt(s.shapeIndex)

	s.notify(PhaseSpawn, shape, spawnColumn, -spawnGap-shape.Height)
	x := s.freeFall(shape)
	x, y := s.stepFall(shape, x)
	s.notify(PhaseRest, shape, x, y)
	s.settle(shape, x, y)

	s.shapeIndex = (s.shapeIndex + 1) % well.CatalogSize
	s.drops++
}

// freeFall pushes the shape through the empty rows above the stack. Nothing
// can be hit there, so only the walls are checked.
func (s *Simulator) freeFall(shape *well.Shape) int {
	x := spawnColumn
	for row := range spawnGap {
		if next := x + s.jets.Next(); shape.Fits(next) {
			x = next
		}
		s.notify(PhaseFreeFall, shape, x, row-spawnGap-shape.Height)
	}
	return x
}

// stepFall alternates pushes and one-row drops until the row beneath the
// shape is blocked. The jet cursor advances even on the final push.
func (s *Simulator) stepFall(shape *well.Shape, x int) (int, int) {
	y := -shape.Height
	for int64(y+shape.Height) <= s.height {
		if next := x + s.jets.Next(); shape.Fits(next) && !s.store.Test(shape, next, y) {
			x = next
		}
		s.notify(PhaseStep, shape, x, y)

		if s.store.Test(shape, x, y+1) {
			break
		}
		y++
	}
	return x, y
}

// settle grows the well for any part of the shape resting above the old top,
// then writes the shape into the store.
func (s *Simulator) settle(shape *well.Shape, x, y int) {
	for ; y < 0; y++ {
		s.store.Unshift()
		s.height++
	}
	s.store.Set(shape, x, y)
	s.x, s.y = x, y
	s.notify(PhaseSettled, shape, x, y)
}

func (s *Simulator) notify(phase Phase, shape *well.Shape, x, y int) {
	if s.opts.Observer == nil {
		return
	}
	s.opts.Observer(Step{
		Phase:    phase,
		Shape:    shape,
		X:        x,
		Y:        y,
		JetIndex: s.jets.Cursor(),
	})
}

// Height is the number of rows the stack has grown by.
func (s *Simulator) Height() int64 {
	return s.height
}

// Drops is the number of shapes dropped so far, including skipped cycles.
func (s *Simulator) Drops() int64 {
	return s.drops
}

func (s *Simulator) JetIndex() int {
	return s.jets.Cursor()
}

func (s *Simulator) Jets() *Jets {
	return s.jets
}

func (s *Simulator) ShapeIndex() int {
	return s.shapeIndex
}

// NextShape is the shape the next Drop will use.
func (s *Simulator) NextShape() *well.Shape {
	return well.ShapeAt(s.shapeIndex)
}

// Position is where the last shape came to rest, in the well's current
// coordinates.
func (s *Simulator) Position() (x, y int) {
	return s.x, s.y
}

// Store exposes the well for rendering. Callers must not modify it.
func (s *Simulator) Store() *well.Store {
	return s.store
}

// Cycle returns the last repeated block skipped by Run.
func (s *Simulator) Cycle() (Cycle, bool) {
	if s.cycle == nil {
		return Cycle{}, false
	}
	return *s.cycle, true
}

// Dump writes the top rows of the well as text, at most the store's
// capacity.
func (s *Simulator) Dump(w io.Writer, rows int) error {
	return well.Dump(w, s.store, min(rows, s.store.Capacity()), nil)
}
