// Package debugui draws Dear ImGui panels over a running simulation.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// Item holds a Dear ImGui render function called once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay collects items and renders them between a backend's BeginFrame
// and EndFrame.
type Overlay struct {
	items []Item
	input InputState
}

func (o *Overlay) Add(render func()) {
	o.items = append(o.items, Item{Render: render})
}

func (o *Overlay) Len() int {
	return len(o.items)
}

// Input returns the capture state seen by the last Render.
func (o *Overlay) Input() InputState {
	return o.input
}

// Render updates the input state and calls every item in the order added.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}
