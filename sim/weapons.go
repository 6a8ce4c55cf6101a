package sim

import (
	"github.com/alice-viola/NCC-1701-D/vmath"
)

// Weapon constants
const (
	beamMaxAge       = 0.5  // seconds a beam pulse stays alive/visible
	beamRefireDelay  = 0.12 // cooldown between pulses while trigger held
	BeamLength       = 45.0 // visual beam reach, world units
	TorpedoMaxAge    = 5.0  // seconds before a torpedo fades
	torpedoSpeed     = 95.0 // world units per second
	torpedoTurnRate  = 1.8  // radians per second of homing steer
	torpedoLockRange = 300.0
)

// Hull-relative emitter offsets in ship-local space. Beams alternate between
// the port and starboard strips; torpedoes launch from the bow tube.
var (
	beamEmitterPort      = vmath.Vec3{X: -1.8, Y: -0.4, Z: -2.0}
	beamEmitterStarboard = vmath.Vec3{X: 1.8, Y: -0.4, Z: -2.0}
	torpedoTube          = vmath.Vec3{X: 0, Y: -0.8, Z: -3.0}
)

// Beam is an ephemeral phaser pulse: a short-lived visual/hit-test record.
type Beam struct {
	ID        int
	Owner     Participant
	Position  vmath.Vec3 // world-space emitter origin at spawn
	Direction vmath.Vec3 // unit direction
	Age       float64
	MaxAge    float64
}

// Torpedo is a persistent projectile with optional homing.
type Torpedo struct {
	ID       int
	Owner    Participant
	Position vmath.Vec3
	Velocity vmath.Vec3
	Age      float64
	MaxAge   float64
	Homing   bool
	Target   vmath.Vec3 // refreshed each tick while the target lives
}

// WeaponSystem exclusively owns the active projectile collections. Other
// components read positions for hit-testing and report indices to remove;
// removal is explicit and immediate because the rendering layer keys visual
// resources 1:1 to projectile IDs.
type WeaponSystem struct {
	Beams     []Beam
	Torpedoes []Torpedo

	playerBeamCooldown float64
	portNext           bool // alternate emitters for the strobing effect
	nextID             int
}

// NewWeaponSystem returns an empty weapon system.
func NewWeaponSystem() *WeaponSystem {
	return &WeaponSystem{nextID: 1}
}

// Reset clears all projectiles and cooldowns.
func (w *WeaponSystem) Reset() {
	w.Beams = w.Beams[:0]
	w.Torpedoes = w.Torpedoes[:0]
	w.playerBeamCooldown = 0
	w.portNext = false
}

// Update consumes the player's fire intents, then ages and steers every
// projectile. Enemy fire requests arrive separately through SpawnBeam /
// SpawnTorpedo from the enemy pilot.
func (w *WeaponSystem) Update(f *FlightModel, enemyPos vmath.Vec3, enemyAlive bool, events *EventQueue, dt float64) {
	w.playerBeamCooldown -= dt

	if f.Weapons.PhaserFiring && w.playerBeamCooldown <= 0 {
		// Sustained rapid pulses while held, not a single shot.
		w.SpawnBeam(ParticipantPlayer, &f.Transform)
		w.playerBeamCooldown = beamRefireDelay
		events.Emit(EventPhaserFired, ParticipantPlayer)
	}

	if f.Weapons.TorpedoFiring {
		homing := enemyAlive && vmath.V3Dist(f.Transform.Position, enemyPos) <= torpedoLockRange
		w.SpawnTorpedo(ParticipantPlayer, &f.Transform, enemyPos, homing)
		f.Weapons.TorpedoCount--
		events.Emit(EventTorpedoFired, ParticipantPlayer)
	}

	w.advanceProjectiles(enemyPos, enemyAlive, dt)
}

// SpawnBeam adds one beam pulse at a hull-relative emitter transformed into
// world space by the shooter's orientation.
func (w *WeaponSystem) SpawnBeam(owner Participant, t *ShipTransform) {
	emitter := beamEmitterStarboard
	if w.portNext {
		emitter = beamEmitterPort
	}
	w.portNext = !w.portNext

	w.Beams = append(w.Beams, Beam{
		ID:        w.nextID,
		Owner:     owner,
		Position:  vmath.V3Add(t.Position, vmath.QRotate(t.Orientation, emitter)),
		Direction: t.ForwardDir(),
		MaxAge:    beamMaxAge,
	})
	w.nextID++
}

// SpawnTorpedo adds one torpedo launched from the shooter's bow tube.
func (w *WeaponSystem) SpawnTorpedo(owner Participant, t *ShipTransform, target vmath.Vec3, homing bool) {
	w.Torpedoes = append(w.Torpedoes, Torpedo{
		ID:       w.nextID,
		Owner:    owner,
		Position: vmath.V3Add(t.Position, vmath.QRotate(t.Orientation, torpedoTube)),
		Velocity: vmath.V3Scale(t.ForwardDir(), torpedoSpeed),
		MaxAge:   TorpedoMaxAge,
		Homing:   homing,
		Target:   target,
	})
	w.nextID++
}

// advanceProjectiles ages every record, steers homing torpedoes, and expires
// anything past max age in the same tick its age crosses the threshold.
func (w *WeaponSystem) advanceProjectiles(enemyPos vmath.Vec3, enemyAlive bool, dt float64) {
	live := w.Beams[:0]
	for i := range w.Beams {
		b := w.Beams[i]
		b.Age += dt
		if b.Age < b.MaxAge {
			live = append(live, b)
		}
	}
	w.Beams = live

	liveTorps := w.Torpedoes[:0]
	for i := range w.Torpedoes {
		tp := w.Torpedoes[i]
		tp.Age += dt
		if tp.Age >= tp.MaxAge {
			continue
		}

		if tp.Homing {
			if tp.Owner == ParticipantPlayer && enemyAlive {
				tp.Target = enemyPos
			}
			w.steerToward(&tp, dt)
		}

		tp.Position = vmath.V3Add(tp.Position, vmath.V3Scale(tp.Velocity, dt))
		liveTorps = append(liveTorps, tp)
	}
	w.Torpedoes = liveTorps
}

// steerToward bends the torpedo's velocity direction toward its target at a
// bounded angular rate, preserving speed. Proportional-navigation-lite:
// chase the target's position, not a lead-pursuit intercept.
func (w *WeaponSystem) steerToward(tp *Torpedo, dt float64) {
	toTarget := vmath.V3Sub(tp.Target, tp.Position)
	if vmath.V3MagSq(toTarget) < 1e-6 {
		return
	}
	speed := vmath.V3Mag(tp.Velocity)
	if speed == 0 {
		return
	}
	cur := vmath.V3Scale(tp.Velocity, 1/speed)
	want := vmath.V3Normalize(toTarget)
	turned := vmath.V3RotateToward(cur, want, torpedoTurnRate*dt)
	tp.Velocity = vmath.V3Scale(turned, speed)
}

// HasActiveBeam reports whether the owner has any live beam pulse; the
// combat model uses it as the beam damage window.
func (w *WeaponSystem) HasActiveBeam(owner Participant) bool {
	for i := range w.Beams {
		if w.Beams[i].Owner == owner {
			return true
		}
	}
	return false
}

// RemoveTorpedo deletes a torpedo by index, immediately. Callers removing
// several indices must iterate in descending order.
func (w *WeaponSystem) RemoveTorpedo(i int) {
	if i < 0 || i >= len(w.Torpedoes) {
		return
	}
	w.Torpedoes = append(w.Torpedoes[:i], w.Torpedoes[i+1:]...)
}
