// Package debugui draws Dear ImGui inspector windows over the ebiten
// frontend.
package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Item is one immediate-mode window. Render runs once per frame between
// BeginFrame and EndFrame.
type Item struct {
	Render func()
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay hosts items on the cimgui ebiten backend.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
	items   []Item
	visible bool
	input   InputState
}

// NewOverlay creates the backend window. It must be called before
// ebiten.RunGame.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Overlay{backend: backend, visible: true}
}

// Add appends items in draw order.
func (o *Overlay) Add(items ...Item) {
	o.items = append(o.items, items...)
}

func (o *Overlay) Toggle() {
	o.visible = !o.visible
}

func (o *Overlay) Visible() bool {
	return o.visible
}

// Input returns the capture state observed during the last Update.
func (o *Overlay) Input() InputState {
	return o.input
}

// Update builds one ImGui frame.
func (o *Overlay) Update() {
	o.backend.BeginFrame()

	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if o.visible {
		for _, item := range o.items {
			item.Render()
		}
	}

	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}
