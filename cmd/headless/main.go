// Command headless runs the arrow simulation without a window.
// The target orbits the scene centre and progress is logged once per simulated second.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"arrowswarm/game"
	"arrowswarm/physics"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	frames := flag.Int("frames", 300, "number of frames to simulate")
	orbitRadius := flag.Float64("orbit", 250, "radius of the target orbit in pixels")
	orbitPeriod := flag.Float64("period", 6, "seconds per target orbit")
	flag.Parse()

	logger, err := game.NewLogger(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	config := game.DefaultConfig()
	if *configPath != "" {
		config, err = game.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("loading config", zap.Error(err))
		}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world, err := game.NewWorld(config, rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		logger.Fatal("creating world", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run(ctx, world, *frames, *orbitRadius, *orbitPeriod, logger)
}

// orbit returns the target position at time t
func orbit(center physics.Vec2, radius, period, t float64) physics.Vec2 {
	angle := 2 * math.Pi * t / period
	return physics.Vec2{
		X: center.X + math.Cos(angle)*radius,
		Y: center.Y + math.Sin(angle)*radius,
	}
}

func run(ctx context.Context, world *game.World, frames int, radius, period float64, logger *zap.Logger) {
	config := world.Config()
	center := physics.Vec2{X: float64(config.ScreenWidth) / 2, Y: float64(config.ScreenHeight) / 2}
	frameTime := 1 / float64(config.FrameRate)

	target := orbit(center, radius, period, 0)
	if config.CursorEnabled {
		world.Cursor().Enable(target)
	}

	started := time.Now()
	var maxSpeed float64
	for frame := 1; frame <= frames; frame++ {
		if ctx.Err() != nil {
			logger.Info("interrupted", zap.Int("frame", frame))
			break
		}

		next := orbit(center, radius, period, float64(frame)*frameTime)
		world.Advance(game.FrameInput{Target: next, PointerDelta: next.Sub(target)})
		target = next

		mean, peak := speeds(world)
		maxSpeed = math.Max(maxSpeed, peak)
		if frame%config.FrameRate == 0 {
			logger.Info("progress",
				zap.Int("frame", frame),
				zap.Float64("meanSpeed", mean),
				zap.Float64("maxSpeed", peak),
				zap.Float64("meanDistance", meanDistance(world, target)),
			)
		}
	}

	logger.Info("done",
		zap.Uint64("frames", world.Frame()),
		zap.Int("agents", len(world.Agents())),
		zap.Float64("peakSpeed", maxSpeed),
		zap.Duration("elapsed", time.Since(started)),
	)
}

func speeds(world *game.World) (mean, peak float64) {
	agents := world.Agents()
	if len(agents) == 0 {
		return 0, 0
	}
	var sum float64
	for _, agent := range agents {
		speed := agent.Velocity().Len()
		sum += speed
		peak = math.Max(peak, speed)
	}
	return sum / float64(len(agents)), peak
}

func meanDistance(world *game.World, target physics.Vec2) float64 {
	agents := world.Agents()
	if len(agents) == 0 {
		return 0
	}
	var sum float64
	for _, agent := range agents {
		sum += agent.Position.Dist(target)
	}
	return sum / float64(len(agents))
}
