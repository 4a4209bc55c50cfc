package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/rockfall/sim"
)

const examplePattern = ">>><<><>><<<>><>>><<<>>><<<><<<>><>><<>>"

func newTestPlayer(t *testing.T, pattern string, depth int) *Player {
	t.Helper()
	p, err := NewPlayer(pattern, depth)
	require.NoError(t, err)
	return p
}

func TestFirstDropFrames(t *testing.T) {
	p := newTestPlayer(t, ">", 2)

	var phases []sim.Phase
	var frames []Frame
	for range 7 {
		frame := p.Next()
		phases = append(phases, frame.Phase)
		frames = append(frames, frame)
	}

	assert.Equal(t, []sim.Phase{
		sim.PhaseSpawn,
		sim.PhaseFreeFall,
		sim.PhaseFreeFall,
		sim.PhaseFreeFall,
		sim.PhaseStep,
		sim.PhaseRest,
		sim.PhaseSettled,
	}, phases)

	assert.Equal(t, []string{
		".......",
		".......",
		".......",
		"..@@@@.",
		".......",
		".......",
		".......",
		"#######",
		"#######",
	}, frames[0].Lines(Headroom))

	assert.Equal(t, []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		".......",
		"...@@@@",
		"#######",
		"#######",
	}, frames[4].Lines(Headroom))

	settled := frames[6]
	assert.Nil(t, settled.Overlay)
	assert.Equal(t, int64(1), settled.Height)
	assert.Equal(t, int64(1), settled.Drops)
	assert.Equal(t, "bar", settled.Shape)
	assert.Equal(t, []string{"...####", "#######"}, settled.Lines(0))

	next := p.Next()
	assert.Equal(t, sim.PhaseSpawn, next.Phase)
	assert.Equal(t, "plus", next.Shape)
	assert.Equal(t, int64(1), next.Drops)
}

func TestFallingFramesUseTheWellBeforeTheDrop(t *testing.T) {
	p := newTestPlayer(t, ">", 3)

	for {
		if p.Next().Phase == sim.PhaseSettled {
			break
		}
	}

	frame := p.Next()
	require.NotNil(t, frame.Overlay)
	assert.Equal(t, "...####", frame.Rows.Row(0).String())
}

func TestNextDropAndSkip(t *testing.T) {
	p := newTestPlayer(t, examplePattern, 10)

	require.NoError(t, p.Skip(4))
	frame := p.NextDrop()

	assert.Equal(t, sim.PhaseSettled, frame.Phase)
	assert.Equal(t, int64(5), frame.Drops)
	assert.Equal(t, int64(9), frame.Height)
	assert.Equal(t, []string{
		"....##.",
		"....##.",
		"....#..",
		"..#.#..",
		"..#.#..",
		"#####..",
		"..###..",
		"...#...",
		"..####.",
		"#######",
	}, frame.Lines(0))

	assert.Equal(t, sim.PhaseSpawn, p.Next().Phase)
}

func TestLinesTrimsExtraHeadroom(t *testing.T) {
	p := newTestPlayer(t, ">", 1)

	frame := p.Next()
	assert.Equal(t, []string{"..@@@@.", ".......", ".......", ".......", "#######"}, frame.Lines(4))
	assert.Equal(t, []string{".......", "#######"}, frame.Lines(1))
}

func TestNewPlayerRejectsEmptyPattern(t *testing.T) {
	_, err := NewPlayer("", 5)
	assert.ErrorIs(t, err, sim.ErrEmptyPattern)
}
