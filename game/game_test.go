package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrowswarm/physics"
)

// scriptedInput replays one queued frame per Update
type scriptedInput struct {
	frames  []scriptedFrame
	current scriptedFrame
}

type scriptedFrame struct {
	pointer      physics.Vec2
	delta        physics.Vec2
	toggleCursor bool
	quit         bool
}

func (s *scriptedInput) Update() {
	if len(s.frames) == 0 {
		s.current = scriptedFrame{pointer: s.current.pointer}
		return
	}
	s.current, s.frames = s.frames[0], s.frames[1:]
}

func (s *scriptedInput) Pointer() physics.Vec2      { return s.current.pointer }
func (s *scriptedInput) PointerDelta() physics.Vec2 { return s.current.delta }
func (s *scriptedInput) CursorToggled() bool        { return s.current.toggleCursor }
func (s *scriptedInput) FullscreenToggled() bool    { return false }
func (s *scriptedInput) QuitRequested() bool        { return s.current.quit }

func testGameConfig() Config {
	config := DefaultConfig()
	config.AgentCount = 3
	config.Seed = 5
	return config
}

func TestNewGameEnablesCursorAtPointer(t *testing.T) {
	input := &scriptedInput{frames: []scriptedFrame{{pointer: physics.Vec2{X: 120, Y: 80}}}}

	g, err := NewGame(testGameConfig(), input, nil)
	require.NoError(t, err)

	assert.True(t, g.World().Cursor().Enabled())
	assert.Equal(t, physics.Vec2{X: 120, Y: 80}, g.World().Cursor().Position())
}

func TestNewGameCursorDisabled(t *testing.T) {
	config := testGameConfig()
	config.CursorEnabled = false

	g, err := NewGame(config, &scriptedInput{}, nil)
	require.NoError(t, err)

	assert.False(t, g.World().Cursor().Enabled())
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	config := testGameConfig()
	config.SubSteps = 0

	_, err := NewGame(config, &scriptedInput{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGameUpdate(t *testing.T) {
	input := &scriptedInput{frames: []scriptedFrame{
		{pointer: physics.Vec2{X: 100, Y: 100}},
		{pointer: physics.Vec2{X: 110, Y: 100}, delta: physics.Vec2{X: 10}},
		{pointer: physics.Vec2{X: 110, Y: 100}, toggleCursor: true},
		{pointer: physics.Vec2{X: 400, Y: 300}, delta: physics.Vec2{X: 290, Y: 200}, toggleCursor: true},
		{quit: true},
	}}

	g, err := NewGame(testGameConfig(), input, nil)
	require.NoError(t, err)
	cursor := g.World().Cursor()

	require.NoError(t, g.Update())
	assert.Equal(t, physics.Vec2{X: 300}, cursor.Velocity())
	assert.Equal(t, uint64(1), g.World().Frame())

	require.NoError(t, g.Update())
	assert.False(t, cursor.Enabled())

	require.NoError(t, g.Update())
	assert.True(t, cursor.Enabled())
	assert.InDelta(t, 400.0, cursor.Position().X, 1e-9)
	assert.InDelta(t, 300.0, cursor.Position().Y, 1e-9)

	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, uint64(3), g.World().Frame())
}

func TestGameCursorTracksPointerAfterReenable(t *testing.T) {
	frames := []scriptedFrame{
		{pointer: physics.Vec2{X: 380, Y: 300}},
		{pointer: physics.Vec2{X: 380, Y: 300}, toggleCursor: true},
		{pointer: physics.Vec2{X: 400, Y: 300}, delta: physics.Vec2{X: 20}, toggleCursor: true},
	}
	pointer := physics.Vec2{X: 400, Y: 300}
	for i := 0; i < 5; i++ {
		pointer = pointer.Add(physics.Vec2{X: 5})
		frames = append(frames, scriptedFrame{pointer: pointer, delta: physics.Vec2{X: 5}})
	}

	config := testGameConfig()
	config.AgentCount = 0
	g, err := NewGame(config, &scriptedInput{frames: frames}, nil)
	require.NoError(t, err)
	cursor := g.World().Cursor()

	require.NoError(t, g.Update())
	require.False(t, cursor.Enabled())

	require.NoError(t, g.Update())
	require.True(t, cursor.Enabled())
	assert.InDelta(t, 400.0, cursor.Position().X, 1e-9)
	assert.InDelta(t, 300.0, cursor.Position().Y, 1e-9)

	for i := 0; i < 5; i++ {
		require.NoError(t, g.Update())
	}
	assert.InDelta(t, 425.0, cursor.Position().X, 1e-9)
	assert.InDelta(t, 300.0, cursor.Position().Y, 1e-9)
}

func TestGameLayout(t *testing.T) {
	g, err := NewGame(testGameConfig(), &scriptedInput{}, nil)
	require.NoError(t, err)

	w, h := g.Layout(10, 10)
	assert.Equal(t, 1000, w)
	assert.Equal(t, 900, h)
}
