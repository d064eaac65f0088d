package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arrowswarm/physics"
)

func TestCursorUpdateScalesByFrameRate(t *testing.T) {
	config := DefaultConfig()
	cursor := NewCursor(physics.NewSpace(physics.Vec2{}), config, nil)

	cursor.Update(physics.Vec2{X: 10})

	assert.Equal(t, physics.Vec2{X: 300, Y: 0}, cursor.Velocity())
}

func TestCursorEnableDisable(t *testing.T) {
	config := DefaultConfig()
	space := physics.NewSpace(physics.Vec2{})
	cursor := NewCursor(space, config, nil)

	assert.False(t, cursor.Enabled())
	assert.Equal(t, config.RepulsionRadius, cursor.Radius())

	cursor.Enable(physics.Vec2{X: 50, Y: 60})
	assert.True(t, cursor.Enabled())
	assert.Equal(t, physics.Vec2{X: 50, Y: 60}, cursor.Position())

	// enabling twice is a no-op
	cursor.Enable(physics.Vec2{X: 1, Y: 1})
	assert.Equal(t, physics.Vec2{X: 50, Y: 60}, cursor.Position())

	cursor.Update(physics.Vec2{X: 3})
	space.Step(1.0 / 30)
	assert.InDelta(t, 53.0, cursor.Position().X, 1e-9)

	cursor.Disable()
	assert.False(t, cursor.Enabled())
	cursor.Disable()

	cursor.Enable(physics.Vec2{X: 200, Y: 300})
	assert.Equal(t, physics.Vec2{X: 200, Y: 300}, cursor.Position())
	assert.Equal(t, physics.Vec2{}, cursor.Velocity())
}

func TestCursorDoesNotMoveWhileDisabled(t *testing.T) {
	space := physics.NewSpace(physics.Vec2{})
	cursor := NewCursor(space, DefaultConfig(), nil)

	cursor.Update(physics.Vec2{X: 10, Y: 10})
	space.Step(1)

	assert.Equal(t, physics.Vec2{}, cursor.Position())
}
