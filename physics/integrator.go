package physics

// VelocityState is the part of a body a velocity integrator reads.
// It carries no engine types so rules can be tested on their own.
type VelocityState struct {
	Velocity        Vec2
	AngularVelocity float64
	Force           Vec2
	Torque          float64
	InvMass         float64
	InvMoment       float64
}

// VelocityIntegrator advances a body's velocity by one sub-step.
// It returns the new linear and angular velocity.
type VelocityIntegrator interface {
	IntegrateVelocity(s VelocityState, gravity Vec2, damping, dt float64) (Vec2, float64)
}

// SemiImplicit is the standard semi-implicit Euler velocity update
type SemiImplicit struct{}

// IntegrateVelocity applies damping, gravity and the accumulated force/torque
func (SemiImplicit) IntegrateVelocity(s VelocityState, gravity Vec2, damping, dt float64) (Vec2, float64) {
	accel := gravity.Add(s.Force.Scale(s.InvMass))
	v := s.Velocity.Scale(damping).Add(accel.Scale(dt))
	w := s.AngularVelocity*damping + s.Torque*s.InvMoment*dt
	return v, w
}

// SpeedLimiter runs the semi-implicit update and caps the resulting speed
type SpeedLimiter struct {
	MaxSpeed float64

	// OnClamp is called with the pre-clamp speed whenever the cap kicks in
	OnClamp func(speed float64)
}

// IntegrateVelocity integrates then rescales the velocity to MaxSpeed if it is exceeded
func (l SpeedLimiter) IntegrateVelocity(s VelocityState, gravity Vec2, damping, dt float64) (Vec2, float64) {
	v, w := SemiImplicit{}.IntegrateVelocity(s, gravity, damping, dt)
	speed := v.Len()
	if speed > l.MaxSpeed {
		if l.OnClamp != nil {
			l.OnClamp(speed)
		}
		v = ClampSpeed(v, l.MaxSpeed)
	}
	return v, w
}

// ClampSpeed rescales v to maxSpeed when it is longer, keeping its direction
func ClampSpeed(v Vec2, maxSpeed float64) Vec2 {
	speed := v.Len()
	if speed <= maxSpeed || speed == 0 {
		return v
	}
	return v.Scale(maxSpeed / speed)
}
