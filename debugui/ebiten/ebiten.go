// Package ebiten shows a simulation in an Ebiten window with a Dear ImGui
// stats panel on top.
package ebiten

import (
	"image/color"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/rockfall/anim"
	"github.com/plus3/rockfall/debugui"
	"github.com/plus3/rockfall/sim"
	"github.com/plus3/rockfall/well"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is
// disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

type Options struct {
	// FramesPerTick is how many animation frames are advanced per Update.
	FramesPerTick int
	CellSize      float32
	HistoryFrames int
}

func DefaultOptions() Options {
	return Options{
		FramesPerTick: 1,
		CellSize:      20,
		HistoryFrames: 120,
	}
}

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	wallColor       = color.RGBA{120, 120, 130, 255}
	rockColor       = color.RGBA{214, 170, 90, 255}
	fallingColor    = color.RGBA{230, 80, 70, 255}
)

// Game implements ebiten.Game, replaying frames from a Player.
type Game struct {
	backend *ImguiBackend
	player  *anim.Player
	overlay debugui.Overlay
	stats   *debugui.StatsPanel
	timer   *debugui.FrameTimer
	frame   anim.Frame
	opts    Options
	paused  bool
}

func NewGame(backend *ImguiBackend, player *anim.Player, opts Options) *Game {
	g := &Game{
		backend: backend,
		player:  player,
		stats:   debugui.NewStatsPanel(opts.HistoryFrames),
		timer:   debugui.NewFrameTimer(),
		frame:   player.Next(),
		opts:    opts,
	}

	jets := player.Simulator().Jets().Len()
	g.overlay.Add(func() {
		var cycle *sim.Cycle
		if c, ok := g.player.Simulator().Cycle(); ok {
			cycle = &c
		}
		g.stats.Render(g.frame, jets, cycle, g.timer.GetDeltaTime())
	})

	return g
}

func (g *Game) Update() error {
	if !g.overlay.Input().WantCaptureKeyboard {
		if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.paused = !g.paused
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			g.frame = g.player.Next()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyD) {
			g.frame = g.player.NextDrop()
		}
	}

	if !g.paused {
		for range g.opts.FramesPerTick {
			g.frame = g.player.Next()
		}
	}

	g.backend.BeginFrame()
	g.overlay.Render()
	g.backend.EndFrame()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	size := g.opts.CellSize
	bounds := screen.Bounds()

	lines := g.frame.Lines(anim.Headroom)
	if fit := int(float32(bounds.Dy())/size) - 1; len(lines) > fit {
		lines = lines[:max(fit, 0)]
	}

	left := float32(bounds.Dx()) - float32(well.Width+3)*size
	depth := float32(len(lines)) * size

	vector.DrawFilledRect(screen, left, 0, size, depth+size, wallColor, false)
	vector.DrawFilledRect(screen, left+float32(well.Width+1)*size, 0, size, depth+size, wallColor, false)
	vector.DrawFilledRect(screen, left, depth, float32(well.Width+2)*size, size, wallColor, false)

	for _, cell := range debugui.WellCells(lines, left+size, 0, size) {
		c := rockColor
		if cell.Kind == well.CellFalling {
			c = fallingColor
		}
		vector.DrawFilledRect(screen, cell.X+1, cell.Y+1, cell.Size-2, cell.Size-2, c, false)
	}

	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and replays the player until it is closed.
func Run(title string, player *anim.Player, opts Options) error {
	const width, height = 960, 720

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	backend := NewImguiBackend(title, width, height)
	return ebiten.RunGame(NewGame(backend, player, opts))
}
