package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"arrowswarm/physics"
)

// FrameInput is what a frame driver samples once per frame
type FrameInput struct {
	// Target is the point every agent steers toward
	Target physics.Vec2

	// PointerDelta is the raw pointer displacement since the previous frame
	PointerDelta physics.Vec2
}

// World owns the physics space, the agents and the cursor
type World struct {
	config   Config
	space    *physics.Space
	steering *Steering
	agents   []*Agent
	cursor   *Cursor
	commands []Command
	frame    uint64

	metrics *worldMetrics
	logger  *zap.Logger
}

// NewWorld validates config and builds a zero-gravity world with all agents in place.
// The cursor starts disabled. A nil rng is seeded from the clock.
func NewWorld(config Config, rng *rand.Rand, logger *zap.Logger) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	specs := SpawnSpecs(config, rng)
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
	}

	metrics, err := newWorldMetrics()
	if err != nil {
		return nil, err
	}

	space := physics.NewSpace(physics.Vec2{})
	steering := NewSteering(config)
	limiter := physics.SpeedLimiter{
		MaxSpeed: config.MaxSpeed,
		OnClamp:  metrics.recordClamp,
	}

	w := &World{
		config:   config,
		space:    space,
		steering: steering,
		agents:   make([]*Agent, 0, len(specs)),
		cursor:   NewCursor(space, config, logger),
		commands: make([]Command, len(specs)),
		metrics:  metrics,
		logger:   logger,
	}

	for _, spec := range specs {
		agent, err := NewAgent(space, spec, config, steering, limiter)
		if err != nil {
			return nil, err
		}
		w.agents = append(w.agents, agent)
	}

	logger.Info("world created",
		zap.Int("agents", len(w.agents)),
		zap.Stringer("generation", config.Generation),
		zap.Stringer("drive", config.DriveMode),
		zap.Int("frameRate", config.FrameRate),
		zap.Int("subSteps", config.SubSteps),
		zap.Int("workers", config.Workers),
	)

	return w, nil
}

// Advance runs one frame: cursor, steering for every agent, then the sub-steps
func (w *World) Advance(in FrameInput) {
	start := time.Now()

	w.cursor.Update(in.PointerDelta)

	w.plan(in.Target)
	for i, agent := range w.agents {
		agent.Apply(w.commands[i])
	}

	dt := w.config.SubStepDuration()
	for i := 0; i < w.config.SubSteps; i++ {
		w.space.Step(dt)
	}

	for _, agent := range w.agents {
		agent.Sync()
	}

	w.frame++
	w.metrics.recordFrame(w.config.SubSteps, float64(time.Since(start).Microseconds())/1000)
}

// plan fills w.commands. Planning only reads bodies, so it may fan out.
func (w *World) plan(target physics.Vec2) {
	if w.config.Workers <= 1 || len(w.agents) < 2 {
		for i, agent := range w.agents {
			agent.Sync()
			w.commands[i] = agent.Plan(target)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(w.config.Workers)
	for i, agent := range w.agents {
		g.Go(func() error {
			agent.Sync()
			w.commands[i] = agent.Plan(target)
			return nil
		})
	}
	// planning cannot fail
	_ = g.Wait()
}

// Agents returns the agents in creation order. The slice must not be modified.
func (w *World) Agents() []*Agent {
	return w.agents
}

// Cursor returns the repulsor cursor
func (w *World) Cursor() *Cursor {
	return w.cursor
}

// Frame returns the number of frames advanced so far
func (w *World) Frame() uint64 {
	return w.frame
}

// Config returns the world configuration
func (w *World) Config() Config {
	return w.config
}
