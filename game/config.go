package game

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration value cannot produce a valid world
var ErrInvalidConfig = errors.New("invalid config")

// DriveMode selects how the steering drive is applied to a body
type DriveMode int

const (
	// DriveForce sets the drive as a force on the body
	DriveForce DriveMode = iota
	// DriveVelocity adds the drive directly to the body velocity
	DriveVelocity
)

// String returns the config name of the mode
func (m DriveMode) String() string {
	switch m {
	case DriveForce:
		return "force"
	case DriveVelocity:
		return "velocity"
	}
	return fmt.Sprintf("DriveMode(%d)", int(m))
}

// UnmarshalYAML reads the mode from its name
func (m *DriveMode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "force":
		*m = DriveForce
	case "velocity":
		*m = DriveVelocity
	default:
		return fmt.Errorf("unknown drive mode %q", value.Value)
	}
	return nil
}

// GenerationMode selects how agents are placed at startup
type GenerationMode int

const (
	// GenerationRandom places AgentCount agents with random sizes at random positions
	GenerationRandom GenerationMode = iota
	// GenerationGrid places a GridColumns x GridRows grid of equally sized agents
	GenerationGrid
)

// String returns the config name of the mode
func (m GenerationMode) String() string {
	switch m {
	case GenerationRandom:
		return "random"
	case GenerationGrid:
		return "grid"
	}
	return fmt.Sprintf("GenerationMode(%d)", int(m))
}

// UnmarshalYAML reads the mode from its name
func (m *GenerationMode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "random":
		*m = GenerationRandom
	case "grid":
		*m = GenerationGrid
	default:
		return fmt.Errorf("unknown generation mode %q", value.Value)
	}
	return nil
}

// DebugOptions controls optional overlays
type DebugOptions struct {
	ShowAgentHitboxes bool `yaml:"show_agent_hitboxes"`
	ShowCursorHitbox  bool `yaml:"show_cursor_hitbox"`
	ShowHUD           bool `yaml:"show_hud"`
}

// Config holds the simulation configuration. It is fixed for the lifetime of a world.
type Config struct {
	// ScreenWidth is the scene width in pixels
	ScreenWidth int `yaml:"screen_width"`

	// ScreenHeight is the scene height in pixels
	ScreenHeight int `yaml:"screen_height"`

	// FrameRate is the number of frames simulated per second
	FrameRate int `yaml:"frame_rate"`

	// SubSteps is the number of physics steps per frame
	SubSteps int `yaml:"sub_steps"`

	Generation GenerationMode `yaml:"generation"`

	// AgentCount is used by GenerationRandom
	AgentCount int `yaml:"agent_count"`

	// GridColumns and GridRows are used by GenerationGrid
	GridColumns int `yaml:"grid_columns"`
	GridRows    int `yaml:"grid_rows"`

	// GridAgentWidth and GridAgentHeight size every agent in GenerationGrid
	GridAgentWidth  float64 `yaml:"grid_agent_width"`
	GridAgentHeight float64 `yaml:"grid_agent_height"`

	// AgentLengthMin and AgentLengthMax bound random agent lengths; height is half the length
	AgentLengthMin int `yaml:"agent_length_min"`
	AgentLengthMax int `yaml:"agent_length_max"`

	// MassMultiplier turns agent area into mass
	MassMultiplier float64 `yaml:"mass_multiplier"`

	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`

	// RotationGain scales the heading error into angular velocity
	RotationGain float64 `yaml:"rotation_gain"`

	// AccelGain scales the drive magnitude
	AccelGain float64 `yaml:"accel_gain"`

	// MaxSpeed caps every agent's linear speed in pixels per second
	MaxSpeed float64 `yaml:"max_speed"`

	// DistanceScale turns target distance into a drive scale, clamped to [MinScale, MaxScale]
	DistanceScale float64 `yaml:"distance_scale"`
	MinScale      float64 `yaml:"min_scale"`
	MaxScale      float64 `yaml:"max_scale"`

	DriveMode DriveMode `yaml:"drive_mode"`

	// RepulsionRadius is the cursor obstacle radius in pixels
	RepulsionRadius  float64 `yaml:"repulsion_radius"`
	CursorElasticity float64 `yaml:"cursor_elasticity"`

	// CursorEnabled inserts the cursor obstacle at startup
	CursorEnabled bool `yaml:"cursor_enabled"`

	// Workers is the number of goroutines planning agent commands each frame
	Workers int `yaml:"workers"`

	// Seed seeds agent generation, 0 picks one from the clock
	Seed int64 `yaml:"seed"`

	// ProfileDir receives CPU profiles and traces on frame rate drops, empty disables it
	ProfileDir string `yaml:"profile_dir"`

	Debug DebugOptions `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:      1000,
		ScreenHeight:     900,
		FrameRate:        30,
		SubSteps:         10,
		Generation:       GenerationRandom,
		AgentCount:       20,
		GridColumns:      10,
		GridRows:         10,
		GridAgentWidth:   100,
		GridAgentHeight:  50,
		AgentLengthMin:   50,
		AgentLengthMax:   200,
		MassMultiplier:   10,
		Elasticity:       0.5,
		Friction:         0,
		RotationGain:     10,
		AccelGain:        10,
		MaxSpeed:         1000,
		DistanceScale:    0.005,
		MinScale:         0.2,
		MaxScale:         1,
		DriveMode:        DriveForce,
		RepulsionRadius:  100,
		CursorElasticity: 1,
		CursorEnabled:    true,
		Workers:          1,
		Debug: DebugOptions{
			ShowHUD: true,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate reports the first value that cannot produce a valid world
func (c Config) Validate() error {
	if name, ok := c.nonFinite(); ok {
		return invalid("%s must be finite", name)
	}

	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return invalid("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	case c.FrameRate <= 0:
		return invalid("frame rate must be positive, got %d", c.FrameRate)
	case c.SubSteps < 1:
		return invalid("sub steps must be at least 1, got %d", c.SubSteps)
	case c.MassMultiplier <= 0:
		return invalid("mass multiplier must be positive, got %v", c.MassMultiplier)
	case c.AgentCount < 0:
		return invalid("agent count must not be negative, got %d", c.AgentCount)
	case c.GridColumns < 0 || c.GridRows < 0:
		return invalid("grid must not be negative, got %dx%d", c.GridColumns, c.GridRows)
	case c.GridAgentWidth <= 0 || c.GridAgentHeight <= 0:
		return invalid("grid agent size must be positive, got %vx%v", c.GridAgentWidth, c.GridAgentHeight)
	case c.AgentLengthMin <= 0:
		return invalid("agent length min must be positive, got %d", c.AgentLengthMin)
	case c.AgentLengthMin > c.AgentLengthMax:
		return invalid("agent length min %d exceeds max %d", c.AgentLengthMin, c.AgentLengthMax)
	case c.MaxSpeed <= 0:
		return invalid("max speed must be positive, got %v", c.MaxSpeed)
	case c.RotationGain < 0 || c.AccelGain < 0:
		return invalid("gains must not be negative, got rotation %v accel %v", c.RotationGain, c.AccelGain)
	case c.DistanceScale < 0:
		return invalid("distance scale must not be negative, got %v", c.DistanceScale)
	case c.MinScale < 0 || c.MinScale > c.MaxScale:
		return invalid("scale range [%v, %v] is invalid", c.MinScale, c.MaxScale)
	case c.RepulsionRadius <= 0:
		return invalid("repulsion radius must be positive, got %v", c.RepulsionRadius)
	case c.Workers < 1:
		return invalid("workers must be at least 1, got %d", c.Workers)
	case c.DriveMode != DriveForce && c.DriveMode != DriveVelocity:
		return invalid("unknown drive mode %v", c.DriveMode)
	case c.Generation != GenerationRandom && c.Generation != GenerationGrid:
		return invalid("unknown generation mode %v", c.Generation)
	}
	return nil
}

// nonFinite returns the name of the first float field that is NaN or infinite
func (c Config) nonFinite() (string, bool) {
	fields := []struct {
		name  string
		value float64
	}{
		{"grid_agent_width", c.GridAgentWidth},
		{"grid_agent_height", c.GridAgentHeight},
		{"mass_multiplier", c.MassMultiplier},
		{"elasticity", c.Elasticity},
		{"friction", c.Friction},
		{"rotation_gain", c.RotationGain},
		{"accel_gain", c.AccelGain},
		{"max_speed", c.MaxSpeed},
		{"distance_scale", c.DistanceScale},
		{"min_scale", c.MinScale},
		{"max_scale", c.MaxScale},
		{"repulsion_radius", c.RepulsionRadius},
		{"cursor_elasticity", c.CursorElasticity},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, true
		}
	}
	return "", false
}

// SubStepDuration returns the physics step length in seconds
func (c Config) SubStepDuration() float64 {
	return 1 / float64(c.FrameRate) / float64(c.SubSteps)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
