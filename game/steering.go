package game

import (
	"math"

	"arrowswarm/physics"
)

// Command is the per-frame output of steering for one agent
type Command struct {
	// AngularVelocity is written straight to the body
	AngularVelocity float64

	// Thrust is the desired force (or velocity) along the current heading
	Thrust physics.Vec2

	// Drive is Thrust minus the body's current velocity; this is what gets applied
	Drive physics.Vec2
}

// driveStrategy turns a distance scale into a drive magnitude and applies the drive
type driveStrategy interface {
	magnitude(mass, scale float64) float64
	apply(body *physics.Body, drive physics.Vec2)
}

// forceDrive sets the drive as a force that stays on the body for every sub-step
type forceDrive struct {
	frameRate, subSteps, accelGain float64
}

func (d forceDrive) magnitude(mass, scale float64) float64 {
	return d.frameRate * d.subSteps * d.accelGain * mass * scale
}

func (forceDrive) apply(body *physics.Body, drive physics.Vec2) {
	body.SetForce(drive)
}

// velocityDrive adds the drive to the body velocity once per frame
type velocityDrive struct {
	frameRate, accelGain float64
}

func (d velocityDrive) magnitude(_, scale float64) float64 {
	return d.frameRate * d.accelGain * scale
}

func (velocityDrive) apply(body *physics.Body, drive physics.Vec2) {
	body.SetVelocity(body.Velocity().Add(drive))
}

// Steering holds the tuning shared by every agent in a world
type Steering struct {
	RotationGain  float64
	DistanceScale float64
	MinScale      float64
	MaxScale      float64

	drive driveStrategy
}

// NewSteering builds the steering parameters and picks the drive strategy once
func NewSteering(config Config) *Steering {
	s := &Steering{
		RotationGain:  config.RotationGain,
		DistanceScale: config.DistanceScale,
		MinScale:      config.MinScale,
		MaxScale:      config.MaxScale,
	}
	switch config.DriveMode {
	case DriveVelocity:
		s.drive = velocityDrive{
			frameRate: float64(config.FrameRate),
			accelGain: config.AccelGain,
		}
	default:
		s.drive = forceDrive{
			frameRate: float64(config.FrameRate),
			subSteps:  float64(config.SubSteps),
			accelGain: config.AccelGain,
		}
	}
	return s
}

// Scale maps a target distance into [MinScale, MaxScale]
func (s *Steering) Scale(distance float64) float64 {
	return clamp(distance*s.DistanceScale, s.MinScale, s.MaxScale)
}

// Plan computes the command for a body at pos with the given rotation (radians),
// velocity and mass, steering toward target. It does not touch the body.
func (s *Steering) Plan(pos physics.Vec2, rotation float64, velocity physics.Vec2, mass float64, target physics.Vec2) Command {
	desired := HeadingTo(pos, target)
	current := normalizeDegrees(rad2deg(rotation))
	delta := HeadingDelta(desired, current)

	magnitude := s.drive.magnitude(mass, s.Scale(pos.Dist(target)))

	// Thrust follows the heading the body had before this frame's rotation.
	// Screen y grows downward, so the heading is mirrored and sin negated.
	heading := -rotation
	thrust := physics.Vec2{
		X: math.Cos(heading) * magnitude,
		Y: -math.Sin(heading) * magnitude,
	}

	return Command{
		AngularVelocity: deg2rad(delta) * s.RotationGain,
		Thrust:          thrust,
		Drive:           thrust.Sub(velocity),
	}
}

// HeadingTo returns the angle in degrees from pos to target, in (-180, 180].
// A target on top of pos has heading 0.
func HeadingTo(pos, target physics.Vec2) float64 {
	return rad2deg(math.Atan2(target.Y-pos.Y, target.X-pos.X))
}

// HeadingDelta returns desired - current in degrees wrapped once into [-180, 180].
// Both inputs are expected within one turn of each other. An exact half turn
// always comes back as +180 so the agent turns the positive way.
func HeadingDelta(desired, current float64) float64 {
	delta := desired - current
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	if delta == -180 {
		delta = 180
	}
	return delta
}

// normalizeDegrees maps any angle into [0, 360)
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -tiny + 360 rounds up to exactly 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func rad2deg(r float64) float64 {
	return r * 180 / math.Pi
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
