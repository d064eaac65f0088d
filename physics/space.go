// Package physics wraps the Chipmunk2D port behind the small set of
// operations the steering simulation needs.
package physics

import (
	"github.com/jakecoffman/cp"
)

// Body is a rigid body owned by a Space
type Body struct {
	body *cp.Body
}

// Shape is a collision shape attached to a Body
type Shape struct {
	shape *cp.Shape
}

// Space holds bodies and shapes and advances them in time
type Space struct {
	space *cp.Space
}

// NewSpace creates an empty space with the given gravity
func NewSpace(gravity Vec2) *Space {
	space := cp.NewSpace()
	space.SetGravity(toCP(gravity))
	return &Space{space: space}
}

// NewDynamicBody creates a body with finite mass and moment of inertia.
// The body is not part of any space until Space.Add is called.
func NewDynamicBody(mass, moment float64) *Body {
	return &Body{body: cp.NewBody(mass, moment)}
}

// NewKinematicBody creates a body driven only by its velocity
func NewKinematicBody() *Body {
	return &Body{body: cp.NewKinematicBody()}
}

// MomentForPolygon returns the moment of inertia of a solid polygon around the body origin
func MomentForPolygon(mass float64, verts []Vec2) float64 {
	return cp.MomentForPoly(mass, len(verts), toCPSlice(verts), cp.Vector{}, 0)
}

// NewPolygonShape attaches a polygon hull to body. Vertices are in body-local space.
func NewPolygonShape(body *Body, verts []Vec2) *Shape {
	shape := cp.NewPolyShape(body.body, len(verts), toCPSlice(verts), cp.NewTransformIdentity(), 0)
	return &Shape{shape: shape}
}

// NewCircleShape attaches a circle centred on the body origin
func NewCircleShape(body *Body, radius float64) *Shape {
	return &Shape{shape: cp.NewCircle(body.body, radius, cp.Vector{})}
}

// Add inserts body and its shapes into the space
func (s *Space) Add(body *Body, shapes ...*Shape) {
	s.space.AddBody(body.body)
	for _, shape := range shapes {
		s.space.AddShape(shape.shape)
	}
}

// Remove takes body and its shapes out of the space
func (s *Space) Remove(body *Body, shapes ...*Shape) {
	for _, shape := range shapes {
		s.space.RemoveShape(shape.shape)
	}
	s.space.RemoveBody(body.body)
}

// Step advances the space by dt seconds
func (s *Space) Step(dt float64) {
	s.space.Step(dt)
}

// SetElasticity sets the restitution of the shape
func (s *Shape) SetElasticity(e float64) {
	s.shape.SetElasticity(e)
}

// SetFriction sets the friction coefficient of the shape
func (s *Shape) SetFriction(f float64) {
	s.shape.SetFriction(f)
}

// Position returns the body position
func (b *Body) Position() Vec2 {
	return fromCP(b.body.Position())
}

// SetPosition moves the body
func (b *Body) SetPosition(p Vec2) {
	b.body.SetPosition(toCP(p))
}

// Angle returns the body rotation in radians
func (b *Body) Angle() float64 {
	return b.body.Angle()
}

// SetAngle sets the body rotation in radians
func (b *Body) SetAngle(a float64) {
	b.body.SetAngle(a)
}

// Velocity returns the linear velocity
func (b *Body) Velocity() Vec2 {
	return fromCP(b.body.Velocity())
}

// SetVelocity sets the linear velocity
func (b *Body) SetVelocity(v Vec2) {
	b.body.SetVelocityVector(toCP(v))
}

// AngularVelocity returns the angular velocity in radians per second
func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// SetAngularVelocity sets the angular velocity in radians per second
func (b *Body) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(w)
}

// Force returns the force accumulated on the body
func (b *Body) Force() Vec2 {
	return fromCP(b.body.Force())
}

// SetForce replaces the force acting on the body
func (b *Body) SetForce(f Vec2) {
	b.body.SetForce(toCP(f))
}

// Mass returns the body mass
func (b *Body) Mass() float64 {
	return b.body.Mass()
}

// Moment returns the body moment of inertia
func (b *Body) Moment() float64 {
	return b.body.Moment()
}

// SetVelocityIntegrator replaces the engine's velocity update for this body.
// Unlike the engine default, the accumulated force is left untouched so it
// keeps acting on every sub-step until it is set again.
func (b *Body) SetVelocityIntegrator(vi VelocityIntegrator) {
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		state := VelocityState{
			Velocity:        fromCP(body.Velocity()),
			AngularVelocity: body.AngularVelocity(),
			Force:           fromCP(body.Force()),
			Torque:          body.Torque(),
			InvMass:         inverse(body.Mass()),
			InvMoment:       inverse(body.Moment()),
		}
		v, w := vi.IntegrateVelocity(state, fromCP(gravity), damping, dt)
		body.SetVelocityVector(toCP(v))
		body.SetAngularVelocity(w)
	})
}

func inverse(x float64) float64 {
	if x == 0 {
		return 0
	}
	return 1 / x
}
