package game

import (
	"go.uber.org/zap"

	"arrowswarm/physics"
)

// Cursor is a kinematic circle that follows the pointer and pushes agents away
type Cursor struct {
	space     *physics.Space
	body      *physics.Body
	shape     *physics.Shape
	radius    float64
	frameRate float64
	enabled   bool
	logger    *zap.Logger
}

// NewCursor creates a disabled cursor for space
func NewCursor(space *physics.Space, config Config, logger *zap.Logger) *Cursor {
	if logger == nil {
		logger = zap.NewNop()
	}
	body := physics.NewKinematicBody()
	shape := physics.NewCircleShape(body, config.RepulsionRadius)
	shape.SetElasticity(config.CursorElasticity)

	return &Cursor{
		space:     space,
		body:      body,
		shape:     shape,
		radius:    config.RepulsionRadius,
		frameRate: float64(config.FrameRate),
		logger:    logger,
	}
}

// Update turns the pointer displacement since the last frame into a velocity
func (c *Cursor) Update(delta physics.Vec2) {
	c.body.SetVelocity(delta.Scale(c.frameRate))
}

// Enable places the cursor at the pointer and inserts it into the space
func (c *Cursor) Enable(at physics.Vec2) {
	if c.enabled {
		return
	}
	c.body.SetPosition(at)
	c.body.SetVelocity(physics.Vec2{})
	c.space.Add(c.body, c.shape)
	c.enabled = true
	c.logger.Debug("cursor enabled", zap.Float64("x", at.X), zap.Float64("y", at.Y))
}

// Disable removes the cursor from the space
func (c *Cursor) Disable() {
	if !c.enabled {
		return
	}
	c.space.Remove(c.body, c.shape)
	c.enabled = false
	c.logger.Debug("cursor disabled")
}

// Enabled reports whether the cursor is part of the space
func (c *Cursor) Enabled() bool {
	return c.enabled
}

// Position returns the cursor centre
func (c *Cursor) Position() physics.Vec2 {
	return c.body.Position()
}

// Velocity returns the cursor velocity
func (c *Cursor) Velocity() physics.Vec2 {
	return c.body.Velocity()
}

// Radius returns the repulsion radius
func (c *Cursor) Radius() float64 {
	return c.radius
}
