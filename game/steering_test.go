package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"arrowswarm/physics"
)

func TestHeadingDeltaStaysInRange(t *testing.T) {
	for desired := 0.0; desired < 360; desired += 0.5 {
		for current := 0.0; current < 360; current += 0.5 {
			delta := HeadingDelta(desired, current)
			if delta < -180 || delta > 180 {
				t.Fatalf("HeadingDelta(%v, %v) = %v", desired, current, delta)
			}
		}
	}

	// desired comes from atan2, current from the body angle
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		desired := rng.Float64()*360 - 180
		current := rng.Float64() * 360
		delta := HeadingDelta(desired, current)
		assert.GreaterOrEqual(t, delta, -180.0)
		assert.LessOrEqual(t, delta, 180.0)
	}
}

func TestHeadingDelta(t *testing.T) {
	tests := []struct {
		name             string
		desired, current float64
		want             float64
	}{
		{"aligned", 45, 45, 0},
		{"small positive", 30, 10, 20},
		{"small negative", 10, 30, -20},
		{"wraps down", 350, 10, -20},
		{"wraps up", 10, 350, 20},
		{"desired negative", -90, 350, -80},
		{"half turn from zero", 180, 0, 180},
		{"half turn back to zero", 0, 180, 180},
		{"negative half turn", -180, 0, 180},
		{"half turn across wrap", 90, 270, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HeadingDelta(tt.desired, tt.current), 1e-9)
		})
	}
}

func TestHeadingTo(t *testing.T) {
	origin := physics.Vec2{}
	assert.Equal(t, 0.0, HeadingTo(origin, physics.Vec2{X: 100}))
	assert.Equal(t, 90.0, HeadingTo(origin, physics.Vec2{Y: 100}))
	assert.Equal(t, 180.0, HeadingTo(origin, physics.Vec2{X: -100}))
	assert.Equal(t, -90.0, HeadingTo(origin, physics.Vec2{Y: -100}))
	// degenerate target is a defined heading
	assert.Equal(t, 0.0, HeadingTo(origin, origin))
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, normalizeDegrees(0))
	assert.Equal(t, 0.0, normalizeDegrees(360))
	assert.Equal(t, 270.0, normalizeDegrees(-90))
	assert.Equal(t, 10.0, normalizeDegrees(730))
	assert.Equal(t, 0.0, normalizeDegrees(-1e-14))
}

func TestSteeringScaleClamps(t *testing.T) {
	s := NewSteering(DefaultConfig())

	assert.Equal(t, s.MinScale, s.Scale(0))
	assert.InDelta(t, 0.5, s.Scale(100), 1e-12)
	assert.Equal(t, s.MaxScale, s.Scale(1e9))

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		scale := s.Scale(rng.Float64() * 1e5)
		assert.GreaterOrEqual(t, scale, s.MinScale)
		assert.LessOrEqual(t, scale, s.MaxScale)
	}
}

func TestPlanAlignedHasNoAngularVelocity(t *testing.T) {
	s := NewSteering(DefaultConfig())

	cmd := s.Plan(physics.Vec2{}, 0, physics.Vec2{}, 1, physics.Vec2{X: 100})

	assert.Equal(t, 0.0, cmd.AngularVelocity)
}

func TestPlanTurnsTowardTarget(t *testing.T) {
	config := DefaultConfig()
	s := NewSteering(config)

	// target straight down the screen, body facing +x
	cmd := s.Plan(physics.Vec2{}, 0, physics.Vec2{}, 1, physics.Vec2{Y: 100})
	assert.InDelta(t, math.Pi/2*config.RotationGain, cmd.AngularVelocity, 1e-9)

	// directly behind turns the positive way
	cmd = s.Plan(physics.Vec2{}, 0, physics.Vec2{}, 1, physics.Vec2{X: -100})
	assert.InDelta(t, math.Pi*config.RotationGain, cmd.AngularVelocity, 1e-9)
}

func TestPlanForceDrive(t *testing.T) {
	config := DefaultConfig()
	s := NewSteering(config)
	mass := 5000.0

	cmd := s.Plan(physics.Vec2{}, 0, physics.Vec2{}, mass, physics.Vec2{X: 100})

	want := config.AccelGain * mass * float64(config.FrameRate) * float64(config.SubSteps) * 0.5
	assert.InDelta(t, want, cmd.Thrust.X, 1e-6)
	assert.Equal(t, 0.0, cmd.Thrust.Y)
	assert.Equal(t, cmd.Thrust, cmd.Drive)
}

func TestPlanVelocityDrive(t *testing.T) {
	config := DefaultConfig()
	config.DriveMode = DriveVelocity
	s := NewSteering(config)

	cmd := s.Plan(physics.Vec2{}, 0, physics.Vec2{X: 40, Y: 10}, 5000, physics.Vec2{X: 1000})

	want := float64(config.FrameRate) * config.AccelGain * config.MaxScale
	assert.InDelta(t, want, cmd.Thrust.X, 1e-9)
	assert.InDelta(t, want-40, cmd.Drive.X, 1e-9)
	assert.InDelta(t, -10.0, cmd.Drive.Y, 1e-9)
}

func TestPlanThrustFollowsCurrentHeading(t *testing.T) {
	s := NewSteering(DefaultConfig())

	// body points down the screen, target to the right: thrust still goes down this frame
	cmd := s.Plan(physics.Vec2{}, math.Pi/2, physics.Vec2{}, 1, physics.Vec2{X: 100})

	assert.InDelta(t, 0.0, cmd.Thrust.X, 1e-9)
	assert.Greater(t, cmd.Thrust.Y, 0.0)
	assert.Less(t, cmd.AngularVelocity, 0.0)
}

func TestPlanDegenerateTarget(t *testing.T) {
	config := DefaultConfig()
	s := NewSteering(config)
	pos := physics.Vec2{X: 250, Y: 250}

	cmd := s.Plan(pos, 0, physics.Vec2{}, 2, pos)

	assert.False(t, math.IsNaN(cmd.AngularVelocity))
	assert.False(t, math.IsNaN(cmd.Thrust.X) || math.IsNaN(cmd.Thrust.Y))
	want := config.AccelGain * 2 * float64(config.FrameRate) * float64(config.SubSteps) * config.MinScale
	assert.InDelta(t, want, cmd.Thrust.Len(), 1e-9)
}
