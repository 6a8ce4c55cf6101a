package sim

import (
	"math"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

// Combat constants
const (
	HullMax            = 100.0
	absorptionFraction = 0.7 // share of raw damage the shields soak
	shieldDrainFactor  = 0.5 // pool cost per point absorbed (not 1:1 by design)

	damageFlashMax   = 1.0
	damageFlashDecay = 2.0 // flash units per second, linear

	beamMaxRange   = 180.0
	beamBaseDot    = 0.94 // cone half-angle floor at long range
	beamCloseBonus = 12.0 // forgiveness numerator; widens the cone up close
	beamDPS        = 22.0 // continuous damage per second while aligned

	TorpedoDamage    = 18.0
	torpedoHitRadius = 6.0
)

// ShipHealth is one combatant's destructible state. ShieldsUp/ShieldStrength
// mirror the owning ShieldSystem each tick; the combat model is the only
// writer of Hull, Destroyed and the flash timer.
type ShipHealth struct {
	Hull           float64
	MaxHull        float64
	ShieldsUp      bool
	ShieldStrength float64
	Destroyed      bool    // monotonic: once true, stays true
	DamageFlash    float64 // presentational, decays to 0, still queried
}

// Outcome is the combat verdict. Set at most once, never reverts.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// CombatState holds exactly two health records plus the verdict.
type CombatState struct {
	Player ShipHealth
	Enemy  ShipHealth
	Result Outcome
}

// NewCombatState returns both combatants at full hull, verdict open.
func NewCombatState() *CombatState {
	return &CombatState{
		Player: ShipHealth{Hull: HullMax, MaxHull: HullMax},
		Enemy:  ShipHealth{Hull: HullMax, MaxHull: HullMax},
	}
}

// Reset restores both records and clears the verdict.
func (c *CombatState) Reset() {
	*c = *NewCombatState()
}

// Health returns the record for a participant.
func (c *CombatState) Health(p Participant) *ShipHealth {
	if p == ParticipantEnemy {
		return &c.Enemy
	}
	return &c.Player
}

// ApplyDamage routes raw damage through shield absorption into the hull.
// Dead ships absorb no further state change; zero damage changes nothing.
func ApplyDamage(t *ShipHealth, raw float64) {
	if t.Destroyed || raw <= 0 {
		return
	}

	effective := raw
	if t.ShieldsUp && t.ShieldStrength > 0 {
		absorbed := raw * absorptionFraction
		t.ShieldStrength -= absorbed * shieldDrainFactor
		if t.ShieldStrength <= 0 {
			t.ShieldStrength = 0
			// Shields drop mid-hit when the pool depletes.
			t.ShieldsUp = false
		}
		effective = raw - absorbed
	}

	t.Hull -= effective
	if t.Hull <= 0 {
		t.Hull = 0
		t.Destroyed = true
	}
	t.DamageFlash = damageFlashMax
}

// TickTimers decays the damage flashes. Separate from damage application so
// the flash fades even in frames with no hits.
func (c *CombatState) TickTimers(dt float64) {
	for _, h := range []*ShipHealth{&c.Player, &c.Enemy} {
		h.DamageFlash -= damageFlashDecay * dt
		if h.DamageFlash < 0 {
			h.DamageFlash = 0
		}
	}
}

// BeamMinDot returns the alignment threshold for a beam hit at the given
// distance. The cone loosens at close range: a near-miss far away is
// forgiven less than one at point-blank.
func BeamMinDot(dist float64) float64 {
	loosened := 1 - beamCloseBonus/math.Max(dist, 1)
	return math.Max(beamBaseDot, loosened)
}

// BeamAligned runs the cone test: target within range and within the
// distance-dependent angular tolerance of the shooter's forward axis.
func BeamAligned(shooterPos, shooterFwd, targetPos vmath.Vec3) bool {
	to := vmath.V3Sub(targetPos, shooterPos)
	dist := vmath.V3Mag(to)
	if dist > beamMaxRange || dist == 0 {
		return false
	}
	dot := vmath.V3Dot(vmath.V3Scale(to, 1/dist), shooterFwd)
	return dot >= BeamMinDot(dist)
}

// ResolveBeams applies continuous beam damage from shooter to target while
// the shooter has a live beam window and holds alignment. Returns whether
// damage landed this tick.
func (c *CombatState) ResolveBeams(w *WeaponSystem, shooter Participant, shooterT *ShipTransform, targetPos vmath.Vec3, dt float64) bool {
	target := c.Health(shooter.other())
	if target.Destroyed {
		return false
	}
	if !w.HasActiveBeam(shooter) {
		return false
	}
	if !BeamAligned(shooterT.Position, shooterT.ForwardDir(), targetPos) {
		return false
	}
	ApplyDamage(target, beamDPS*dt)
	return true
}

// ResolveTorpedoes applies one damage quantum per torpedo within the hit
// radius of the target and removes those torpedoes immediately. Returns the
// number of hits.
func (c *CombatState) ResolveTorpedoes(w *WeaponSystem, shooter Participant, targetPos vmath.Vec3, events *EventQueue) int {
	target := c.Health(shooter.other())
	if target.Destroyed {
		return 0
	}

	hits := 0
	for i := len(w.Torpedoes) - 1; i >= 0; i-- {
		tp := &w.Torpedoes[i]
		if tp.Owner != shooter {
			continue
		}
		if vmath.V3Dist(tp.Position, targetPos) > torpedoHitRadius {
			continue
		}
		shielded := target.ShieldsUp && target.ShieldStrength > 0
		ApplyDamage(target, TorpedoDamage)
		if shielded {
			events.Emit(EventShieldHit, shooter.other())
		} else {
			events.Emit(EventHullHit, shooter.other())
		}
		w.RemoveTorpedo(i)
		hits++
	}
	return hits
}

// EvaluateOutcome polls both records and sets the verdict the first time
// either Destroyed flag flips. Defeat takes priority: the player's ship
// blowing up ends the mission regardless of what else happened this tick.
func (c *CombatState) EvaluateOutcome(events *EventQueue) Outcome {
	if c.Result != OutcomeNone {
		return c.Result
	}
	if c.Player.Destroyed {
		c.Result = OutcomeDefeat
		events.Emit(EventShipDestroyed, ParticipantPlayer)
	} else if c.Enemy.Destroyed {
		c.Result = OutcomeVictory
		events.Emit(EventShipDestroyed, ParticipantEnemy)
	}
	return c.Result
}

// other returns the opposing participant.
func (p Participant) other() Participant {
	if p == ParticipantPlayer {
		return ParticipantEnemy
	}
	return ParticipantPlayer
}
