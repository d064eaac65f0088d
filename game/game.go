package game

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Game drives a World from ebiten's update loop
type Game struct {
	world    *World
	renderer *Renderer
	input    InputProvider
	config   Config
	logger   *zap.Logger

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Performance profiling, nil when disabled
	profiler *Profiler

	// Game start time to ignore FPS drops during startup
	gameStartTime time.Time

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates the world for config and enables the cursor at the pointer if configured
func NewGame(config Config, input InputProvider, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world, err := NewWorld(config, rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		return nil, err
	}

	var profiler *Profiler
	if config.ProfileDir != "" {
		profiler, err = NewProfiler(config.ProfileDir, logger)
		if err != nil {
			return nil, err
		}
	}

	if config.CursorEnabled {
		input.Update()
		world.Cursor().Enable(input.Pointer())
	}

	return &Game{
		world:          world,
		renderer:       NewRenderer(config.Debug),
		input:          input,
		config:         config,
		logger:         logger,
		fps:            float64(config.FrameRate),
		profiler:       profiler,
		gameStartTime:  time.Now(),
		lastUpdateTime: time.Now(),
	}, nil
}

// Update advances the simulation by one frame
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	g.input.Update()
	if g.input.QuitRequested() {
		g.logger.Info("quit requested", zap.Uint64("frames", g.world.Frame()))
		return ebiten.Termination
	}

	if g.input.FullscreenToggled() {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	if g.input.CursorToggled() {
		cursor := g.world.Cursor()
		if cursor.Enabled() {
			cursor.Disable()
		} else {
			// This frame's pointer velocity carries it the rest of the way
			cursor.Enable(g.input.Pointer().Sub(g.input.PointerDelta()))
		}
	}

	g.world.Advance(FrameInput{
		Target:       g.input.Pointer(),
		PointerDelta: g.input.PointerDelta(),
	})

	g.trackFPS(deltaTime)
	return nil
}

// trackFPS updates the measured frame rate every half second and
// captures a profile when it stays below 90% of the target after warm-up
func (g *Game) trackFPS(deltaTime float64) {
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}

	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	if g.profiler == nil || time.Since(g.gameStartTime) < 3*time.Second {
		return
	}
	if g.fps >= 0.9*float64(g.config.FrameRate) {
		return
	}

	reason := fmt.Sprintf("fps%.0f-agents%d", g.fps, len(g.world.Agents()))
	if err := g.profiler.CaptureProfile(reason); err == nil {
		g.logger.Warn("frame rate drop, capturing profile", zap.Float64("fps", g.fps))
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.renderer.Render(screen, g.world, g.fps)
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}

// World returns the simulated world
func (g *Game) World() *World {
	return g.world
}
