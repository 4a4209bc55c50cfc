// Package anim turns a running simulation into a sequence of frames that a
// viewer can show one at a time.
package anim

import (
	"strings"

	"github.com/plus3/rockfall/sim"
	"github.com/plus3/rockfall/well"
)

// Headroom is the number of open-air rows shown above the stack: the spawn
// gap plus the tallest shape.
const Headroom = 3 + 4

// Frame is everything needed to draw one moment of the simulation.
type Frame struct {
	Phase sim.Phase
	// Overlay is the falling shape. It is nil once the shape has settled.
	Overlay  *well.Overlay
	Rows     well.Snapshot
	Height   int64
	Drops    int64
	JetIndex int
	Shape    string
}

// Lines renders the frame as text with exactly headroom rows above the top
// of the stack, followed by every row of the snapshot.
func (f Frame) Lines(headroom int) []string {
	lines := well.Render(f.Rows, len(f.Rows), f.Overlay)

	pad := len(lines) - len(f.Rows)
	switch {
	case pad < headroom:
		air := make([]string, headroom-pad, headroom+len(f.Rows))
		for i := range air {
			air[i] = strings.Repeat(string(well.CellEmpty), well.Width)
		}
		lines = append(air, lines...)
	case pad > headroom:
		lines = lines[pad-headroom:]
	}
	return lines
}

// Player drives a simulator one drop at a time and buffers the frames of
// each drop. Frames of a falling shape are drawn against the well as it was
// before that drop, so the shape never overlaps its own final cells.
type Player struct {
	sim       *sim.Simulator
	depth     int
	recording bool

	rows    well.Snapshot
	pending []Frame
	next    int
}

// NewPlayer creates a simulator for the pattern and keeps depth rows of the
// well in every frame.
func NewPlayer(pattern string, depth int, opts ...sim.Option) (*Player, error) {
	p := &Player{depth: depth, recording: true}

	opts = append(opts, sim.WithObserver(p.record))
	s, err := sim.New(pattern, opts...)
	if err != nil {
		return nil, err
	}
	p.sim = s

	return p, nil
}

func (p *Player) Simulator() *sim.Simulator {
	return p.sim
}

// Next returns the next frame, dropping another shape when all frames of the
// previous one have been returned.
func (p *Player) Next() Frame {
	if p.next >= len(p.pending) {
		p.advance()
	}
	frame := p.pending[p.next]
	p.next++
	return frame
}

// NextDrop skips the remaining frames of the current drop and returns the
// settled frame of the next one.
func (p *Player) NextDrop() Frame {
	p.advance()
	p.next = len(p.pending)
	return p.pending[len(p.pending)-1]
}

// Skip drops n shapes without producing frames for them.
func (p *Player) Skip(n int64) error {
	p.pending = p.pending[:0]
	p.next = 0

	p.recording = false
	defer func() { p.recording = true }()

	_, err := p.sim.Run(n)
	return err
}

func (p *Player) advance() {
	p.pending = p.pending[:0]
	p.next = 0
	p.rows = p.sim.Store().Snapshot(p.depth)
	p.sim.Drop()
}

func (p *Player) record(step sim.Step) {
	if !p.recording {
		return
	}

	frame := Frame{
		Phase:    step.Phase,
		Rows:     p.rows,
		Height:   p.sim.Height(),
		Drops:    p.sim.Drops(),
		JetIndex: step.JetIndex,
		Shape:    step.Shape.Name,
	}
	if step.Phase == sim.PhaseSettled {
		frame.Rows = p.sim.Store().Snapshot(p.depth)
		frame.Drops++
	} else {
		frame.Overlay = &well.Overlay{Shape: step.Shape, X: step.X, Y: step.Y}
	}

	p.pending = append(p.pending, frame)
}
