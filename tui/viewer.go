// Package tui replays a simulation in the terminal, one shape position per
// tick, with the well on the left and a status column on the right.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/rockfall/anim"
	"github.com/plus3/rockfall/well"
)

const statusColumn = well.Width + 4

var (
	wallStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	airStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	rockStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	fallingStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	textStyle    = tcell.StyleDefault
)

// Viewer draws frames from a Player onto a tcell screen.
type Viewer struct {
	screen tcell.Screen
	player *anim.Player
	frame  anim.Frame
	paused bool
}

// NewViewer prepares a viewer showing the player's first frame.
func NewViewer(screen tcell.Screen, player *anim.Player) *Viewer {
	return &Viewer{
		screen: screen,
		player: player,
		frame:  player.Next(),
	}
}

func (v *Viewer) Frame() anim.Frame {
	return v.frame
}

func (v *Viewer) Paused() bool {
	return v.paused
}

// Step advances to the next frame.
func (v *Viewer) Step() {
	v.frame = v.player.Next()
}

// HandleEvent applies one input event. It returns false when the viewer
// should close.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'n':
				v.Step()
			case 'd':
				v.frame = v.player.NextDrop()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Draw renders the current frame.
func (v *Viewer) Draw() {
	v.screen.Clear()

	lines := v.frame.Lines(anim.Headroom)
	if _, height := v.screen.Size(); len(lines) > height-1 {
		lines = lines[:max(height-1, 0)]
	}

	for y, line := range lines {
		v.screen.SetContent(0, y, '|', nil, wallStyle)
		for x, c := range line {
			style := airStyle
			switch c {
			case well.CellRock:
				style = rockStyle
			case well.CellFalling:
				style = fallingStyle
			}
			v.screen.SetContent(x+1, y, c, nil, style)
		}
		v.screen.SetContent(well.Width+1, y, '|', nil, wallStyle)
	}
	v.drawText(0, len(lines), "+-------+", wallStyle)

	status := []string{
		fmt.Sprintf("height  %d", v.frame.Height),
		fmt.Sprintf("drops   %d", v.frame.Drops),
		fmt.Sprintf("jet     %d/%d", v.frame.JetIndex, v.player.Simulator().Jets().Len()),
		fmt.Sprintf("shape   %s", v.frame.Shape),
		fmt.Sprintf("phase   %s", v.frame.Phase),
		"",
		"space pause  n step",
		"d drop       q quit",
	}
	if v.paused {
		status = append(status, "", "[paused]")
	}
	for y, text := range status {
		v.drawText(statusColumn, y, text, textStyle)
	}

	v.screen.Show()
}

func (v *Viewer) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Run animates until the user quits or ctx is done, advancing one frame
// every interval while not paused.
func (v *Viewer) Run(ctx context.Context, interval time.Duration) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			if v.paused {
				continue
			}
			v.Step()
			v.Draw()
		}
	}
}
