package game

import (
	"errors"
	"fmt"
	"image/color"

	"arrowswarm/physics"
)

// ErrInvalidAgent is returned when an agent cannot be given a positive mass
var ErrInvalidAgent = errors.New("invalid agent")

// AgentSpec describes an agent before its body exists
type AgentSpec struct {
	Position physics.Vec2
	Width    float64
	Height   float64
	Color    color.NRGBA
}

// Validate checks that the size yields a positive mass
func (s AgentSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %vx%v", ErrInvalidAgent, s.Width, s.Height)
	}
	return nil
}

// arrowOutline is the arrow in unit box coordinates, x along the shaft
var arrowOutline = [7]physics.Vec2{
	{X: 0, Y: 0.25},
	{X: 0.75, Y: 0.25},
	{X: 0.75, Y: 0},
	{X: 1, Y: 0.5},
	{X: 0.75, Y: 1},
	{X: 0.75, Y: 0.75},
	{X: 0, Y: 0.75},
}

// arrowTriangles splits arrowOutline into shaft (two triangles) and head
var arrowTriangles = []uint16{0, 1, 5, 0, 5, 6, 2, 3, 4}

// ArrowOutline returns the arrow scaled to width x height and centred on the origin
func ArrowOutline(width, height float64) []physics.Vec2 {
	verts := make([]physics.Vec2, len(arrowOutline))
	for i, p := range arrowOutline {
		verts[i] = physics.Vec2{
			X: p.X*width - width/2,
			Y: p.Y*height - height/2,
		}
	}
	return verts
}

// Agent is a steering arrow backed by a rigid body
type Agent struct {
	// Position and Rotation mirror the body for rendering
	Position physics.Vec2
	Rotation float64

	Color  color.NRGBA
	Width  float64
	Height float64

	mass     float64
	outline  []physics.Vec2
	body     *physics.Body
	shape    *physics.Shape
	steering *Steering
}

// NewAgent creates the agent body and hull and adds them to space.
// The body's velocity update is replaced by integrator.
func NewAgent(space *physics.Space, spec AgentSpec, config Config, steering *Steering, integrator physics.VelocityIntegrator) (*Agent, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if config.MassMultiplier <= 0 {
		return nil, fmt.Errorf("%w: mass multiplier must be positive, got %v", ErrInvalidAgent, config.MassMultiplier)
	}

	mass := spec.Width * spec.Height * config.MassMultiplier
	outline := ArrowOutline(spec.Width, spec.Height)

	body := physics.NewDynamicBody(mass, physics.MomentForPolygon(mass, outline))
	body.SetPosition(spec.Position)
	body.SetVelocityIntegrator(integrator)

	shape := physics.NewPolygonShape(body, outline)
	shape.SetElasticity(config.Elasticity)
	shape.SetFriction(config.Friction)

	space.Add(body, shape)

	a := &Agent{
		Color:    spec.Color,
		Width:    spec.Width,
		Height:   spec.Height,
		mass:     mass,
		outline:  outline,
		body:     body,
		shape:    shape,
		steering: steering,
	}
	a.Sync()
	return a, nil
}

// Update steers the agent toward target for this frame
func (a *Agent) Update(target physics.Vec2) {
	a.Sync()
	a.Apply(a.Plan(target))
}

// Plan computes this frame's command from the body state without changing it
func (a *Agent) Plan(target physics.Vec2) Command {
	return a.steering.Plan(a.body.Position(), a.body.Angle(), a.body.Velocity(), a.mass, target)
}

// Apply writes a command to the body
func (a *Agent) Apply(cmd Command) {
	a.body.SetAngularVelocity(cmd.AngularVelocity)
	a.steering.drive.apply(a.body, cmd.Drive)
}

// Sync copies the body pose into Position and Rotation
func (a *Agent) Sync() {
	a.Position = a.body.Position()
	a.Rotation = a.body.Angle()
}

// Mass returns the agent mass
func (a *Agent) Mass() float64 {
	return a.mass
}

// Velocity returns the body's linear velocity
func (a *Agent) Velocity() physics.Vec2 {
	return a.body.Velocity()
}

// AngularVelocity returns the body's angular velocity
func (a *Agent) AngularVelocity() float64 {
	return a.body.AngularVelocity()
}

// Force returns the force currently set on the body
func (a *Agent) Force() physics.Vec2 {
	return a.body.Force()
}

// Outline returns a copy of the centred arrow outline in body space
func (a *Agent) Outline() []physics.Vec2 {
	out := make([]physics.Vec2, len(a.outline))
	copy(out, a.outline)
	return out
}

// WorldOutline returns the outline transformed by the mirrored pose
func (a *Agent) WorldOutline() []physics.Vec2 {
	out := make([]physics.Vec2, len(a.outline))
	for i, p := range a.outline {
		out[i] = p.Rotate(a.Rotation).Add(a.Position)
	}
	return out
}

// Body exposes the underlying body for tests and tools
func (a *Agent) Body() *physics.Body {
	return a.body
}
