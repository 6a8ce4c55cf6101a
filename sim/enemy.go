package sim

import (
	"math"
	"math/rand"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

// EnemyBehavior is the hostile pilot's current state.
type EnemyBehavior int

const (
	BehaviorIdle EnemyBehavior = iota
	BehaviorAlert
	BehaviorAttack
	BehaviorEvasive
)

func (b EnemyBehavior) String() string {
	switch b {
	case BehaviorIdle:
		return "idle"
	case BehaviorAlert:
		return "alert"
	case BehaviorAttack:
		return "attack"
	case BehaviorEvasive:
		return "evasive"
	default:
		return "unknown"
	}
}

// Enemy behavior constants
const (
	enemyDetectRange = 220.0
	enemyAttackRange = 140.0
	enemyCloseRange  = 50.0 // backs off inside this
	enemyAlertTime   = 2.0  // seconds spent turning to face before attacking

	enemyTurnRate     = 1.2  // radians per second, bounded slerp
	enemySpeed        = 18.0 // cruise speed while attacking
	enemyIdleRadius   = 40.0 // orbit radius around spawn
	enemyIdleAngular  = 0.25 // orbit radians per second
	evasiveSpeedMult  = 1.8
	evasiveHullEnter  = 35.0 // drops into evasive below this hull
	evasiveHullMargin = 10.0 // recovers to attack above enter+margin

	// Beam re-arm is probabilistic within [min,max] to avoid robotic
	// regularity; torpedoes use a long fixed cooldown.
	enemyBeamCooldownMin = 0.35
	enemyBeamCooldownMax = 1.4
	evasiveBeamPenalty   = 2.0 // evasive fires at half the rate
	enemyTorpedoCooldown = 6.0

	enemyFireAlignDot    = 0.92  // beam trigger alignment
	enemyTorpedoAlignDot = 0.985 // torpedoes need a tight lock

	breakupSpinRate   = 2.6 // cosmetic radians per second after destruction
	breakupShrinkTime = 2.5 // seconds to shrink to nothing
)

// EnemyShip is the hostile combatant: transform (owned exclusively here),
// behavior machine, its own shields, and weapon cooldowns.
type EnemyShip struct {
	Transform ShipTransform
	Behavior  EnemyBehavior
	Shields   *ShieldSystem

	beamCooldown    float64
	torpedoCooldown float64
	alertTimer      float64

	// Idle scratch: slow circle around the spawn point.
	orbitCenter vmath.Vec3
	orbitAngle  float64

	// Evasive scratch: time-seeded oscillation clock.
	evasiveClock float64

	// Cosmetic breakup after destruction.
	BreakupSpin  float64
	BreakupScale float64

	rng *rand.Rand
}

// NewEnemyShip spawns an idle hostile orbiting the given point. The seeded
// RNG feeds only the probabilistic beam re-arm, keeping tests reproducible.
func NewEnemyShip(spawn vmath.Vec3, seed int64) *EnemyShip {
	e := &EnemyShip{
		Transform: ShipTransform{
			Position:    vmath.V3Add(spawn, vmath.Vec3{X: enemyIdleRadius}),
			Orientation: vmath.QIdentity(),
		},
		Behavior:     BehaviorIdle,
		Shields:      NewShieldSystem(),
		orbitCenter:  spawn,
		BreakupScale: 1,
		rng:          rand.New(rand.NewSource(seed)),
	}
	return e
}

// Update advances the behavior machine one tick. The destroyed check runs
// first and short-circuits everything: a dead ship only tumbles.
func (e *EnemyShip) Update(player *ShipTransform, own *ShipHealth, w *WeaponSystem, events *EventQueue, dt float64) {
	if own.Destroyed {
		e.BreakupSpin += breakupSpinRate * dt
		e.BreakupScale -= dt / breakupShrinkTime
		if e.BreakupScale < 0 {
			e.BreakupScale = 0
		}
		return
	}

	e.beamCooldown -= dt
	e.torpedoCooldown -= dt

	dist := vmath.V3Dist(e.Transform.Position, player.Position)

	switch e.Behavior {
	case BehaviorIdle:
		e.updateIdle(dist, dt)
	case BehaviorAlert:
		e.updateAlert(player, events, dt)
	case BehaviorAttack:
		e.updateAttack(player, own, w, events, dist, dt)
	case BehaviorEvasive:
		e.updateEvasive(player, own, w, events, dist, dt)
	}
}

// updateIdle flies a slow circle around the spawn point and watches for the
// player entering detection range. Never fires.
func (e *EnemyShip) updateIdle(dist, dt float64) {
	e.orbitAngle += enemyIdleAngular * dt
	pos := vmath.V3Add(e.orbitCenter, vmath.Vec3{
		X: math.Cos(e.orbitAngle) * enemyIdleRadius,
		Z: math.Sin(e.orbitAngle) * enemyIdleRadius,
	})
	// Face along the orbit tangent.
	tangent := vmath.Vec3{X: -math.Sin(e.orbitAngle), Z: math.Cos(e.orbitAngle)}
	e.turnToward(vmath.V3Add(pos, tangent), dt)
	e.Transform.Velocity = vmath.V3Scale(vmath.V3Sub(pos, e.Transform.Position), 1/math.Max(dt, 1e-6))
	e.Transform.Position = pos

	if dist < enemyDetectRange {
		e.Behavior = BehaviorAlert
		e.alertTimer = enemyAlertTime
	}
}

// updateAlert holds position, turns to face the player, and raises shields.
func (e *EnemyShip) updateAlert(player *ShipTransform, events *EventQueue, dt float64) {
	e.turnToward(player.Position, dt)
	if !e.Shields.Active && e.Shields.Strength > 0 {
		e.Shields.Toggle(ParticipantEnemy, events)
	}
	e.Transform.Velocity = vmath.Vec3{}

	e.alertTimer -= dt
	if e.alertTimer <= 0 {
		e.Behavior = BehaviorAttack
	}
}

// updateAttack closes to attack range, holds there, and fires when aligned.
func (e *EnemyShip) updateAttack(player *ShipTransform, own *ShipHealth, w *WeaponSystem, events *EventQueue, dist, dt float64) {
	e.turnToward(player.Position, dt)

	speed := 0.0
	if dist > enemyAttackRange {
		speed = enemySpeed
	} else if dist < enemyCloseRange {
		speed = -enemySpeed * 0.6
	}
	e.advance(speed, dt)

	e.tryFire(player, w, events, dist, 1.0)

	if own.Hull < evasiveHullEnter {
		e.Behavior = BehaviorEvasive
		e.evasiveClock = 0
	}
}

// updateEvasive flies an erratic pseudo-randomized heading, faster than
// normal, still firing opportunistically at a reduced rate.
func (e *EnemyShip) updateEvasive(player *ShipTransform, own *ShipHealth, w *WeaponSystem, events *EventQueue, dist, dt float64) {
	e.evasiveClock += dt

	// Time-seeded oscillation around the flee direction; no RNG in the
	// movement path so equal inputs replay identically.
	away := vmath.V3Sub(e.Transform.Position, player.Position)
	if vmath.V3MagSq(away) < 1e-6 {
		away = vmath.Vec3{X: 1}
	}
	yawOff := math.Sin(e.evasiveClock*2.1) * 1.2
	pitchOff := math.Cos(e.evasiveClock*1.7) * 0.6
	jink := vmath.QMul(
		vmath.QFromAxisAngle(Up, yawOff),
		vmath.QFromAxisAngle(Right, pitchOff),
	)
	heading := vmath.QRotate(jink, vmath.V3Normalize(away))
	e.turnToward(vmath.V3Add(e.Transform.Position, heading), dt)
	e.advance(enemySpeed*evasiveSpeedMult, dt)

	e.tryFire(player, w, events, dist, evasiveBeamPenalty)

	if own.Hull > evasiveHullEnter+evasiveHullMargin || dist > enemyDetectRange {
		e.Behavior = BehaviorAttack
	}
}

// tryFire pulls the beam trigger when roughly aligned and in range, and the
// torpedo tube on a tight lock. cooldownScale stretches the beam re-arm.
func (e *EnemyShip) tryFire(player *ShipTransform, w *WeaponSystem, events *EventQueue, dist, cooldownScale float64) {
	if dist > beamMaxRange {
		return
	}
	to := vmath.V3Normalize(vmath.V3Sub(player.Position, e.Transform.Position))
	align := vmath.V3Dot(e.Transform.ForwardDir(), to)

	if align >= enemyFireAlignDot && e.beamCooldown <= 0 {
		w.SpawnBeam(ParticipantEnemy, &e.Transform)
		span := enemyBeamCooldownMax - enemyBeamCooldownMin
		e.beamCooldown = (enemyBeamCooldownMin + e.rng.Float64()*span) * cooldownScale
		events.Emit(EventPhaserFired, ParticipantEnemy)
	}

	if align >= enemyTorpedoAlignDot && e.torpedoCooldown <= 0 {
		w.SpawnTorpedo(ParticipantEnemy, &e.Transform, player.Position, false)
		e.torpedoCooldown = enemyTorpedoCooldown
		events.Emit(EventTorpedoFired, ParticipantEnemy)
	}
}

// turnToward slews the orientation toward facing a world point at the
// bounded turn rate, the same no-snap primitive the camera uses.
func (e *EnemyShip) turnToward(point vmath.Vec3, dt float64) {
	dir := vmath.V3Sub(point, e.Transform.Position)
	if vmath.V3MagSq(dir) < 1e-9 {
		return
	}
	want := vmath.QLookRotation(dir, Up)
	e.Transform.Orientation = vmath.QNormalize(
		vmath.QRotateToward(e.Transform.Orientation, want, enemyTurnRate*dt))
}

// advance integrates position along the current forward axis.
func (e *EnemyShip) advance(speed, dt float64) {
	e.Transform.Velocity = vmath.V3Scale(e.Transform.ForwardDir(), speed)
	e.Transform.Position = vmath.V3Add(e.Transform.Position, vmath.V3Scale(e.Transform.Velocity, dt))
}
