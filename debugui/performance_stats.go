package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rockfall/anim"
	"github.com/plus3/rockfall/sim"
)

// FrameHistory is a fixed ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

func (h *FrameHistory) Record(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Samples returns the backing ring, suitable for plotting.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}

func (h *FrameHistory) Len() int {
	return h.filled
}

// Stats returns the average, minimum and maximum of the recorded samples.
func (h *FrameHistory) Stats() (avg, lo, hi float32) {
	if h.filled == 0 {
		return 0, 0, 0
	}

	lo = h.samples[0]
	for _, ms := range h.samples[:h.filled] {
		avg += ms
		lo = min(lo, ms)
		hi = max(hi, ms)
	}
	return avg / float32(h.filled), lo, hi
}

type FrameTimer struct {
	lastFrameTime time.Time
	now           func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
		now:           time.Now,
	}
}

// GetDeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := ft.now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}

// StatsLines describes the frame and the detected cycle, one line per entry.
func StatsLines(frame anim.Frame, jets int, cycle *sim.Cycle) []string {
	lines := []string{
		fmt.Sprintf("Height: %d", frame.Height),
		fmt.Sprintf("Drops: %d", frame.Drops),
		fmt.Sprintf("Jet: %d/%d", frame.JetIndex, jets),
		fmt.Sprintf("Shape: %s (%s)", frame.Shape, frame.Phase),
	}
	if cycle == nil {
		return append(lines, "Cycle: none")
	}
	return append(lines,
		fmt.Sprintf("Cycle: %d drops from drop %d", cycle.Length, cycle.Start),
		fmt.Sprintf("Cycle height: %d", cycle.Height),
		fmt.Sprintf("Repeats: %d", cycle.Repeats),
	)
}

// StatsPanel is a Dear ImGui window with the simulation state and a frame
// time graph.
type StatsPanel struct {
	history *FrameHistory
}

func NewStatsPanel(historyFrames int) *StatsPanel {
	return &StatsPanel{history: NewFrameHistory(historyFrames)}
}

func (p *StatsPanel) History() *FrameHistory {
	return p.history
}

func (p *StatsPanel) Render(frame anim.Frame, jets int, cycle *sim.Cycle, deltaTime float32) {
	p.history.Record(deltaTime * 1000.0)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)

	if !imgui.BeginV("Rockfall", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, line := range StatsLines(frame, jets, cycle) {
		imgui.Text(line)
	}

	avg, lo, hi := p.history.Stats()
	imgui.Separator()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.Text(fmt.Sprintf("Min/Max: %.2f / %.2f ms", lo, hi))
	imgui.Text("Frame Time Graph (ms)")
	samples := p.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	imgui.End()
}
