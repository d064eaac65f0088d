package game

import (
	"image/color"
	"math/rand"

	"arrowswarm/physics"
)

// SpawnSpecs lays out the agents for the configured generation mode
func SpawnSpecs(config Config, rng *rand.Rand) []AgentSpec {
	switch config.Generation {
	case GenerationGrid:
		return gridSpecs(config, rng)
	default:
		return randomSpecs(config, rng)
	}
}

// randomSpecs scatters agents over the screen with random lengths
func randomSpecs(config Config, rng *rand.Rand) []AgentSpec {
	specs := make([]AgentSpec, 0, config.AgentCount)
	for i := 0; i < config.AgentCount; i++ {
		length := float64(config.AgentLengthMin + rng.Intn(config.AgentLengthMax-config.AgentLengthMin+1))
		specs = append(specs, AgentSpec{
			Position: physics.Vec2{
				X: float64(rng.Intn(config.ScreenWidth + 1)),
				Y: float64(rng.Intn(config.ScreenHeight + 1)),
			},
			Width:  length,
			Height: length / 2,
			Color:  randomColor(rng),
		})
	}
	return specs
}

// gridSpecs centres one agent in every grid cell
func gridSpecs(config Config, rng *rand.Rand) []AgentSpec {
	specs := make([]AgentSpec, 0, config.GridColumns*config.GridRows)
	if config.GridColumns == 0 || config.GridRows == 0 {
		return specs
	}

	cellW := float64(config.ScreenWidth) / float64(config.GridColumns)
	cellH := float64(config.ScreenHeight) / float64(config.GridRows)
	for col := 0; col < config.GridColumns; col++ {
		for row := 0; row < config.GridRows; row++ {
			specs = append(specs, AgentSpec{
				Position: physics.Vec2{
					X: float64(col)*cellW + cellW/2,
					Y: float64(row)*cellH + cellH/2,
				},
				Width:  config.GridAgentWidth,
				Height: config.GridAgentHeight,
				Color:  randomColor(rng),
			})
		}
	}
	return specs
}

// randomColor picks a light opaque color, each channel in [100, 255]
func randomColor(rng *rand.Rand) color.NRGBA {
	return color.NRGBA{
		R: uint8(100 + rng.Intn(156)),
		G: uint8(100 + rng.Intn(156)),
		B: uint8(100 + rng.Intn(156)),
		A: 255,
	}
}
