package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"arrowswarm/physics"
)

// InputProvider is sampled once per frame by the game loop
type InputProvider interface {
	// Update samples the devices for this frame
	Update()

	// Pointer returns the pointer position in screen coordinates
	Pointer() physics.Vec2

	// PointerDelta returns the pointer displacement since the previous frame
	PointerDelta() physics.Vec2

	// CursorToggled reports a request to enable or disable the repulsor
	CursorToggled() bool

	// FullscreenToggled reports a request to switch fullscreen mode
	FullscreenToggled() bool

	// QuitRequested reports a request to leave the game
	QuitRequested() bool
}

// PointerInput reads the mouse and keyboard through ebiten
type PointerInput struct {
	pos     physics.Vec2
	delta   physics.Vec2
	sampled bool

	toggleCursor     bool
	toggleFullscreen bool
	quit             bool
}

// NewPointerInput creates a new pointer input provider
func NewPointerInput() *PointerInput {
	return &PointerInput{}
}

// Update samples the cursor position and the key presses of this frame
func (p *PointerInput) Update() {
	x, y := ebiten.CursorPosition()
	pos := physics.Vec2{X: float64(x), Y: float64(y)}

	// The first sample has nothing to diff against
	if p.sampled {
		p.delta = pos.Sub(p.pos)
	}
	p.pos = pos
	p.sampled = true

	p.toggleCursor = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	p.quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	// Alt+Enter or F11 toggles fullscreen
	altDown := ebiten.IsKeyPressed(ebiten.KeyAlt)
	p.toggleFullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF11) ||
		(altDown && inpututil.IsKeyJustPressed(ebiten.KeyEnter))
}

// Pointer returns the last sampled cursor position
func (p *PointerInput) Pointer() physics.Vec2 {
	return p.pos
}

// PointerDelta returns the cursor displacement since the previous sample
func (p *PointerInput) PointerDelta() physics.Vec2 {
	return p.delta
}

// CursorToggled returns true on the frame Space was pressed
func (p *PointerInput) CursorToggled() bool {
	return p.toggleCursor
}

// FullscreenToggled returns true on the frame the fullscreen shortcut was pressed
func (p *PointerInput) FullscreenToggled() bool {
	return p.toggleFullscreen
}

// QuitRequested returns true on the frame Escape was pressed
func (p *PointerInput) QuitRequested() bool {
	return p.quit
}
