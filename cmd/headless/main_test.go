package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"arrowswarm/game"
	"arrowswarm/physics"
)

func TestOrbit(t *testing.T) {
	center := physics.Vec2{X: 500, Y: 450}

	start := orbit(center, 100, 4, 0)
	quarter := orbit(center, 100, 4, 1)

	assert.InDelta(t, 600.0, start.X, 1e-9)
	assert.InDelta(t, 450.0, start.Y, 1e-9)
	assert.InDelta(t, 500.0, quarter.X, 1e-9)
	assert.InDelta(t, 550.0, quarter.Y, 1e-9)
}

func TestRun(t *testing.T) {
	config := game.DefaultConfig()
	config.AgentCount = 4
	world, err := game.NewWorld(config, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)

	run(context.Background(), world, 45, 200, 3, zap.NewNop())

	assert.Equal(t, uint64(45), world.Frame())
	assert.True(t, world.Cursor().Enabled())
}

func TestRunStopsOnCancel(t *testing.T) {
	config := game.DefaultConfig()
	config.AgentCount = 2
	world, err := game.NewWorld(config, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	run(ctx, world, 100, 200, 3, zap.NewNop())

	assert.Equal(t, uint64(0), world.Frame())
}

func TestSpeedsEmptyWorld(t *testing.T) {
	config := game.DefaultConfig()
	config.AgentCount = 0
	world, err := game.NewWorld(config, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)

	mean, peak := speeds(world)
	assert.Zero(t, mean)
	assert.Zero(t, peak)
	assert.Zero(t, meanDistance(world, physics.Vec2{}))
}
