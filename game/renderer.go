package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	hitboxColor = color.RGBA{255, 255, 255, 255}
	cursorColor = color.NRGBA{255, 255, 255, 96}
	hudColor    = color.RGBA{220, 220, 220, 255}
)

// Renderer draws the agents and overlays of a World
type Renderer struct {
	debug DebugOptions

	// white is a 1x1 source for untextured triangles
	white    *ebiten.Image
	face     text.Face
	vertices []ebiten.Vertex
}

// NewRenderer creates a new renderer
func NewRenderer(debug DebugOptions) *Renderer {
	return &Renderer{
		debug: debug,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// Render draws every agent and the enabled overlays
func (r *Renderer) Render(screen *ebiten.Image, world *World, fps float64) {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	for _, agent := range world.Agents() {
		r.renderAgent(screen, agent)
	}

	if r.debug.ShowAgentHitboxes {
		for _, agent := range world.Agents() {
			r.renderHitbox(screen, agent)
		}
	}

	cursor := world.Cursor()
	if r.debug.ShowCursorHitbox && cursor.Enabled() {
		pos := cursor.Position()
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(cursor.Radius()), cursorColor, true)
	}

	if r.debug.ShowHUD {
		r.renderHUD(screen, world, fps)
	}
}

// renderAgent fills the arrow with the agent color
func (r *Renderer) renderAgent(screen *ebiten.Image, agent *Agent) {
	outline := agent.WorldOutline()
	cr := float32(agent.Color.R) / 255
	cg := float32(agent.Color.G) / 255
	cb := float32(agent.Color.B) / 255
	ca := float32(agent.Color.A) / 255

	r.vertices = r.vertices[:0]
	for _, p := range outline {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr * ca,
			ColorG: cg * ca,
			ColorB: cb * ca,
			ColorA: ca,
		})
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	screen.DrawTriangles(r.vertices, arrowTriangles, r.white, op)
}

// renderHitbox strokes the polygon the physics space collides with
func (r *Renderer) renderHitbox(screen *ebiten.Image, agent *Agent) {
	outline := agent.WorldOutline()
	for i := range outline {
		a := outline[i]
		b := outline[(i+1)%len(outline)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, hitboxColor, true)
	}
}

// renderHUD prints frame rate and world state in the top left corner
func (r *Renderer) renderHUD(screen *ebiten.Image, world *World, fps float64) {
	config := world.Config()
	cursorState := "off"
	if world.Cursor().Enabled() {
		cursorState = "on"
	}

	hud := fmt.Sprintf("FPS: %.1f / %d\nAgents: %d\nDrive: %s\nCursor: %s (Space)\nFrame: %d",
		fps, config.FrameRate, len(world.Agents()), config.DriveMode, cursorState, world.Frame())

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(hudColor)
	text.Draw(screen, hud, r.face, op)
}
