package sim

import (
	"github.com/alice-viola/NCC-1701-D/vmath"
)

// Ship-local coordinate convention. Forward is -Z, matching the camera's
// viewing axis; a spawned projectile's velocity must have a positive dot
// product with the orientation-transformed Forward (asserted in tests).
// Getting this wrong fires torpedoes backward, so it is declared exactly once.
var (
	Forward = vmath.Vec3{X: 0, Y: 0, Z: -1}
	Up      = vmath.Vec3{X: 0, Y: 1, Z: 0}
	Right   = vmath.Vec3{X: 1, Y: 0, Z: 0}
)

// Flight constants
const (
	pitchRate = 1.1 // radians per second at full deflection
	yawRate   = 0.9
	rollRate  = 1.6

	ImpulseMax      = 30.0 // world units per second at full impulse throttle
	WarpMultiplier  = 8.0  // speed factor while warping
	warpMinThrottle = 0.05 // warp refuses to engage / auto-disengages below this
	AccelRate       = 60.0 // max speed change per second (rate-limited, never snaps)

	throttleLevels = 9 // discrete speed-set levels map to throttle n/9

	PhaserChargeMax = 100.0
	phaserRegenRate = 12.0 // charge per second, always applied
	phaserDrainRate = 28.0 // charge per second while the trigger is held
	phaserMinCharge = 5.0  // firing forbidden below this floor
	TorpedoMaxCount = 20
)

// ShipTransform is a position + orientation pair with derived velocity.
// Exactly one controller owns mutation of a transform per tick: the flight
// model for the player, the enemy pilot for the hostile.
type ShipTransform struct {
	Position    vmath.Vec3
	Orientation vmath.Quat
	Velocity    vmath.Vec3
}

// ForwardDir returns the world-space forward axis of the transform.
func (t *ShipTransform) ForwardDir() vmath.Vec3 {
	return vmath.QRotate(t.Orientation, Forward)
}

// ThrottleState holds the propulsion setting and the rate-limited speed
// derived from it.
type ThrottleState struct {
	Throttle float64 // commanded fraction of impulse power, [0,1]
	Speed    float64 // actual speed, approaches target at AccelRate
	IsWarp   bool
}

// WeaponState holds the fire economy plus the per-frame fire intents the
// weapon system consumes.
type WeaponState struct {
	PhaserCharge  float64 // [0,100], regenerates; drains while firing
	TorpedoCount  int
	PhaserFiring  bool // held intent, true only while charge allows
	TorpedoFiring bool // edge intent, true for at most one tick per press
}

// FlightModel integrates the player ship from input each tick and derives
// weapon/shield intents. It owns the player transform exclusively.
type FlightModel struct {
	Transform ShipTransform
	Throttle  ThrottleState
	Weapons   WeaponState

	// ShieldToggle is the edge-triggered intent the shield system consumes.
	ShieldToggle bool

	// WarpRamp eases 0..1 as actual speed climbs past impulse range; the
	// camera reads it for offset/FOV blending.
	WarpRamp float64
}

// NewFlightModel returns a flight model at the spawn state.
func NewFlightModel() *FlightModel {
	f := &FlightModel{}
	f.Reset()
	return f
}

// Reset restores every field to initial defaults (full mission reset).
func (f *FlightModel) Reset() {
	f.Transform = ShipTransform{
		Position:    vmath.Vec3{},
		Orientation: vmath.QIdentity(),
	}
	f.Throttle = ThrottleState{}
	f.Weapons = WeaponState{
		PhaserCharge: PhaserChargeMax,
		TorpedoCount: TorpedoMaxCount,
	}
	f.ShieldToggle = false
	f.WarpRamp = 0
}

// Update advances the flight model one tick. dt must already be clamped by
// the caller. events receives warp engage/disengage notifications.
func (f *FlightModel) Update(in *InputFrame, events *EventQueue, dt float64) {
	f.updateRotation(in, dt)
	f.updateThrottle(in, events, dt)
	f.updateSpeed(dt)
	f.updatePosition(dt)
	f.updateIntents(in, dt)
}

// updateRotation composes pitch, then yaw, then roll onto the orientation.
// The order is load-bearing: it shapes the curve of combined maneuvers and
// must stay stable for reproducible flight feel.
func (f *FlightModel) updateRotation(in *InputFrame, dt float64) {
	pitch := axisInput(in, ActionPitchUp, ActionPitchDown) * pitchRate * dt
	yaw := axisInput(in, ActionYawLeft, ActionYawRight) * yawRate * dt
	roll := axisInput(in, ActionRollLeft, ActionRollRight) * rollRate * dt

	q := f.Transform.Orientation
	if pitch != 0 {
		q = vmath.QMul(q, vmath.QFromAxisAngle(Right, pitch))
	}
	if yaw != 0 {
		q = vmath.QMul(q, vmath.QFromAxisAngle(Up, yaw))
	}
	if roll != 0 {
		q = vmath.QMul(q, vmath.QFromAxisAngle(Forward, roll))
	}

	// Renormalize every tick; repeated composition drifts off unit length.
	f.Transform.Orientation = vmath.QNormalize(q)
}

// axisInput collapses a positive/negative held pair to -1, 0 or +1.
func axisInput(in *InputFrame, pos, neg Action) float64 {
	v := 0.0
	if in.IsHeld(pos) {
		v += 1
	}
	if in.IsHeld(neg) {
		v -= 1
	}
	return v
}

// updateThrottle applies discrete speed-level sets and the warp toggle.
func (f *FlightModel) updateThrottle(in *InputFrame, events *EventQueue, dt float64) {
	for level := 0; level <= throttleLevels; level++ {
		if in.WasJustTriggered(ActionThrottle0 + Action(level)) {
			f.Throttle.Throttle = float64(level) / float64(throttleLevels)
		}
	}

	if in.WasJustTriggered(ActionToggleWarp) {
		if f.Throttle.IsWarp {
			f.Throttle.IsWarp = false
			events.Emit(EventWarpDisengaged, ParticipantPlayer)
		} else if f.Throttle.Throttle > warpMinThrottle {
			// Engaging requires throttle above the floor.
			f.Throttle.IsWarp = true
			events.Emit(EventWarpEngaged, ParticipantPlayer)
		}
	}

	// Auto-disengage is checked every frame, not just on toggle: throttle
	// can decay below the floor without any warp input.
	if f.Throttle.IsWarp && f.Throttle.Throttle <= warpMinThrottle {
		f.Throttle.IsWarp = false
		events.Emit(EventWarpDisengaged, ParticipantPlayer)
	}
}

// updateSpeed moves actual speed toward the throttle-derived target at a
// bounded rate, never an instantaneous jump.
func (f *FlightModel) updateSpeed(dt float64) {
	target := f.Throttle.Throttle * ImpulseMax
	if f.Throttle.IsWarp {
		target *= WarpMultiplier
	}

	maxStep := AccelRate * dt
	diff := target - f.Throttle.Speed
	if diff > maxStep {
		diff = maxStep
	} else if diff < -maxStep {
		diff = -maxStep
	}
	f.Throttle.Speed += diff

	// Warp ramp for the camera: how far past impulse range we are.
	ramp := (f.Throttle.Speed - ImpulseMax) / (ImpulseMax * (WarpMultiplier - 1))
	if ramp < 0 {
		ramp = 0
	} else if ramp > 1 {
		ramp = 1
	}
	f.WarpRamp = ramp
}

// updatePosition integrates position along the orientation's forward axis.
func (f *FlightModel) updatePosition(dt float64) {
	fwd := f.Transform.ForwardDir()
	f.Transform.Velocity = vmath.V3Scale(fwd, f.Throttle.Speed)
	f.Transform.Position = vmath.V3Add(f.Transform.Position, vmath.V3Scale(f.Transform.Velocity, dt))
}

// updateIntents derives weapon/shield intents and runs the charge economy.
func (f *FlightModel) updateIntents(in *InputFrame, dt float64) {
	// Regen always applies; drain applies while firing. Both land in the
	// same frame, and drain exceeds regen so sustained fire depletes.
	f.Weapons.PhaserCharge += phaserRegenRate * dt

	f.Weapons.PhaserFiring = in.IsHeld(ActionFirePhaser) && f.Weapons.PhaserCharge > phaserMinCharge
	if f.Weapons.PhaserFiring {
		f.Weapons.PhaserCharge -= phaserDrainRate * dt
	}

	if f.Weapons.PhaserCharge > PhaserChargeMax {
		f.Weapons.PhaserCharge = PhaserChargeMax
	} else if f.Weapons.PhaserCharge < 0 {
		f.Weapons.PhaserCharge = 0
	}

	// Zero ammo silently suppresses the intent; no error surfaces.
	f.Weapons.TorpedoFiring = in.WasJustTriggered(ActionFireTorpedo) && f.Weapons.TorpedoCount > 0

	f.ShieldToggle = in.WasJustTriggered(ActionToggleShields)
}
