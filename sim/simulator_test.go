package sim

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/rockfall/well"
)

const examplePattern = ">>><<><>><<<>><>>><<<>>><<<><<<>><>><<>>"

func newTestSimulator(t *testing.T, pattern string, opts ...Option) *Simulator {
	t.Helper()
	s, err := New(pattern, opts...)
	require.NoError(t, err)
	return s
}

func TestExamplePatternHeight(t *testing.T) {
	for _, cycleSkip := range []bool{false, true} {
		height, err := Height(examplePattern, 2022, WithCycleSkip(cycleSkip))
		require.NoError(t, err)
		assert.Equal(t, int64(3068), height, "cycle skip %v", cycleSkip)
	}
}

func TestExamplePatternTrillionDrops(t *testing.T) {
	s := newTestSimulator(t, examplePattern)

	height, err := s.Run(1_000_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(1_514_285_714_288), height)
	assert.Equal(t, int64(1_000_000_000_000), s.Drops())

	cycle, ok := s.Cycle()
	require.True(t, ok)
	assert.Equal(t, Cycle{Start: 343, Length: 35, Height: 53, Repeats: 28_571_428_560}, cycle)
}

func TestSingleDropRestsOnFloor(t *testing.T) {
	s := newTestSimulator(t, ">")

	height, err := s.Run(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), height)

	x, y := s.Position()
	assert.Equal(t, 3, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, well.Row(0b00011110), s.Store().Row(0))
	assert.Equal(t, well.Solid, s.Store().Row(1))
	assert.Equal(t, "plus", s.NextShape().Name)
}

func TestObserverSeesEveryPhase(t *testing.T) {
	var steps []Step
	s := newTestSimulator(t, ">", WithObserver(func(step Step) {
		steps = append(steps, step)
	}))

	s.Drop()

	bar := well.ShapeAt(0)
	expected := []Step{
		{Phase: PhaseSpawn, Shape: bar, X: 2, Y: -4},
		{Phase: PhaseFreeFall, Shape: bar, X: 3, Y: -4},
		{Phase: PhaseFreeFall, Shape: bar, X: 3, Y: -3},
		{Phase: PhaseFreeFall, Shape: bar, X: 3, Y: -2},
		{Phase: PhaseStep, Shape: bar, X: 3, Y: -1},
		{Phase: PhaseRest, Shape: bar, X: 3, Y: -1},
		{Phase: PhaseSettled, Shape: bar, X: 3, Y: 0},
	}
	assert.Equal(t, expected, steps)
}

func TestRunIsCumulative(t *testing.T) {
	s := newTestSimulator(t, examplePattern, WithCycleSkip(false))

	_, err := s.Run(1000)
	require.NoError(t, err)
	height, err := s.Run(1022)
	require.NoError(t, err)

	assert.Equal(t, int64(3068), height)
	assert.Equal(t, int64(2022), s.Drops())
}

func TestDeterministic(t *testing.T) {
	a := newTestSimulator(t, examplePattern, WithCycleSkip(false))
	b := newTestSimulator(t, examplePattern, WithCycleSkip(false))

	for range 500 {
		a.Drop()
		b.Drop()
		require.Equal(t, a.Height(), b.Height())
		require.Equal(t, a.JetIndex(), b.JetIndex())
	}
	assert.Equal(t, a.Store().AppendWindow(nil), b.Store().AppendWindow(nil))
}

func TestRestingShapesStayInsideWell(t *testing.T) {
	for _, pattern := range []string{"<", ">", "<>", examplePattern} {
		var rests int
		s := newTestSimulator(t, pattern, WithObserver(func(step Step) {
			if step.Phase != PhaseRest {
				return
			}
			rests++
			assert.True(t, step.Shape.Fits(step.X), "%s at column %d", step.Shape.Name, step.X)
		}))

		last := s.Height()
		for range 300 {
			s.Drop()
			require.GreaterOrEqual(t, s.Height(), last, "height went down")
			last = s.Height()

			x, y := s.Position()
			shape := well.ShapeAt(s.ShapeIndex() + well.CatalogSize - 1)
			assert.True(t, s.Store().Test(shape, x, y), "committed %s must collide with itself", shape.Name)
		}
		assert.Equal(t, 300, rests, pattern)
	}
}

func TestCycleSkipMatchesFullSimulation(t *testing.T) {
	patterns := []string{
		"<",
		"<<>",
		"><<<>>><>",
		"<<>><<>><><<<>>>><<<><>>",
		examplePattern,
	}
	for _, pattern := range patterns {
		full, err := Height(pattern, 5000, WithCycleSkip(false))
		require.NoError(t, err)

		s := newTestSimulator(t, pattern)
		skipped, err := s.Run(5000)
		require.NoError(t, err)

		assert.Equal(t, full, skipped, pattern)
		_, ok := s.Cycle()
		assert.True(t, ok, "expected a cycle for %q", pattern)
	}
}

func TestCycleSkipMatchesFullSimulationAtMinCapacity(t *testing.T) {
	patterns := []string{
		"<",
		"<<>",
		"><<<>>><>",
		"><><<>><><><<",
		"<<>><<>><><<<>>>><<<><>>",
		examplePattern,
	}
	for _, pattern := range patterns {
		want, err := Height(pattern, 7000, WithCycleSkip(false))
		require.NoError(t, err)

		full, err := Height(pattern, 7000, WithCapacity(well.MinCapacity), WithCycleSkip(false))
		require.NoError(t, err)
		assert.Equal(t, want, full, "full simulation of %q", pattern)

		s := newTestSimulator(t, pattern, WithCapacity(well.MinCapacity))
		skipped, err := s.Run(7000)
		require.NoError(t, err)
		assert.Equal(t, want, skipped, "cycle skip of %q", pattern)
	}
}

func TestExamplePatternWithTrailingRightPush(t *testing.T) {
	for _, skip := range []bool{true, false} {
		height, err := Height(examplePattern+">", 2022, WithCycleSkip(skip))
		require.NoError(t, err)
		assert.Equal(t, int64(3103), height, "cycle skip %v", skip)
	}
}

func TestRunContextStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSimulator(t, examplePattern, WithCycleSkip(false))
	height, err := s.RunContext(ctx, 1_000_000_000_000)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, height)
	assert.Zero(t, s.Drops())
}

func TestRunContextStopsMidRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := newTestSimulator(t, examplePattern, WithCycleSkip(false))
	_, err := s.RunContext(ctx, 1_000_000_000_000)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, s.Drops())
	assert.Less(t, s.Drops(), int64(1_000_000_000_000))
}

func TestSmallRunsDoNotSkip(t *testing.T) {
	s := newTestSimulator(t, examplePattern)
	_, err := s.Run(100)
	require.NoError(t, err)

	_, ok := s.Cycle()
	assert.False(t, ok)
}

func TestNewErrors(t *testing.T) {
	_, err := New("")
	require.ErrorIs(t, err, ErrEmptyPattern)

	_, err = New(">", WithCapacity(2))
	require.ErrorIs(t, err, well.ErrCapacity)

	s := newTestSimulator(t, ">")
	_, err = s.Run(-1)
	require.ErrorIs(t, err, ErrNegativeDrops)
}

func TestDumpShowsFloor(t *testing.T) {
	s := newTestSimulator(t, ">")
	s.Drop()

	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf, 2))
	assert.Equal(t, "...####\n#######\n", buf.String())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "spawn", PhaseSpawn.String())
	assert.Equal(t, "free-fall", PhaseFreeFall.String())
	assert.Equal(t, "step", PhaseStep.String())
	assert.Equal(t, "rest", PhaseRest.String())
	assert.Equal(t, "settled", PhaseSettled.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
