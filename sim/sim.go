package sim

import (
	"github.com/alice-viola/NCC-1701-D/vmath"
)

// Tick constants
const (
	// MaxDeltaTime clamps a frame hitch: a stalled host must not cause a
	// huge simulation jump on resume.
	MaxDeltaTime = 0.05 // seconds

	enemySpawnDistance = 260.0 // ahead of the player, outside detection range
)

// Simulation is the headless core: every combat and flight system wired
// together under one single-threaded tick. The host feeds it an InputFrame,
// calls Tick once per frame, then drains Events and reads a Snapshot.
type Simulation struct {
	Flight  *FlightModel
	Camera  *CameraRig
	Weapons *WeaponSystem
	Shields *ShieldSystem
	Combat  *CombatState
	Enemy   *EnemyShip // nil outside active combat
	Mission *Mission
	Univ    *Universe
	Env     *Environment
	Events  *EventQueue

	seed int64
}

// NewSimulation wires a fresh simulation in the home system. The seed feeds
// the enemy pilot's probabilistic weapon re-arm only.
func NewSimulation(seed int64) *Simulation {
	s := &Simulation{
		Flight:  NewFlightModel(),
		Camera:  NewCameraRig(),
		Weapons: NewWeaponSystem(),
		Shields: NewShieldSystem(),
		Combat:  NewCombatState(),
		Mission: NewMission(),
		Univ:    NewUniverse(),
		Events:  &EventQueue{},
		seed:    seed,
	}
	s.Env = BuildScene(s.Univ.SystemByID("sol-station"))
	return s
}

// Tick advances the whole simulation by dt seconds. Update order is fixed
// and load-bearing: input-driven phase transitions, player flight, body
// collision, camera, player weapons, combat resolution (player's hits land
// before the enemy's), shield upkeep, enemy pilot, timer decay, verdict.
// Edge-triggered input is cleared at the end so nothing leaks into the next
// frame.
func (s *Simulation) Tick(in *InputFrame, dt float64) {
	if dt > MaxDeltaTime {
		dt = MaxDeltaTime
	}
	if dt < 0 {
		dt = 0
	}

	s.handleMissionInput(in)

	// Free-fly camera is photo mode: the ship holds still while detached,
	// and any stale fire intent from the previous frame is dropped.
	if s.Camera.Mode == CameraChase {
		s.Flight.Update(in, s.Events, dt)
		s.Env.CollideShip(&s.Flight.Transform, ParticipantPlayer, s.Events)
	} else {
		s.Flight.Weapons.PhaserFiring = false
		s.Flight.Weapons.TorpedoFiring = false
	}
	s.Env.AdvanceOrbits(dt)

	s.Camera.Update(in, &s.Flight.Transform, s.Flight.Throttle.Speed, s.Flight.WarpRamp, dt)

	enemyPos := vmath.Vec3{}
	enemyAlive := false
	if s.Enemy != nil && !s.Combat.Enemy.Destroyed {
		enemyPos = s.Enemy.Transform.Position
		enemyAlive = true
	}
	s.Weapons.Update(s.Flight, enemyPos, enemyAlive, s.Events, dt)

	if s.Mission.CombatActive() && s.Enemy != nil {
		s.resolveCombat(dt)
		s.Enemy.Update(&s.Flight.Transform, &s.Combat.Enemy, s.Weapons, s.Events, dt)
		s.Env.CollideShip(&s.Enemy.Transform, ParticipantEnemy, s.Events)
		s.Enemy.Shields.Update(ParticipantEnemy, s.Events, dt)
	} else if s.Enemy != nil && s.Combat.Enemy.Destroyed {
		// Past the verdict the wreck still tumbles; AI and combat stay off.
		s.Enemy.Update(&s.Flight.Transform, &s.Combat.Enemy, s.Weapons, s.Events, dt)
	}

	if s.Flight.ShieldToggle {
		s.Shields.Toggle(ParticipantPlayer, s.Events)
		s.Flight.ShieldToggle = false
	}
	s.Shields.Update(ParticipantPlayer, s.Events, dt)

	s.Combat.TickTimers(dt)
	s.Mission.Conclude(s.Combat.EvaluateOutcome(s.Events), s.Events)

	in.EndFrame()
}

// handleMissionInput consumes the phase-transition actions. Each query is
// edge-triggered and self-clearing, so transitions fire at most once per
// press regardless of phase checks.
func (s *Simulation) handleMissionInput(in *InputFrame) {
	if in.WasJustTriggered(ActionStartBriefing) {
		s.Mission.StartBriefing(s.Events)
	}
	if in.WasJustTriggered(ActionSkipNarration) {
		s.Mission.SkipNarration()
	}
	if in.WasJustTriggered(ActionConfirmBriefing) {
		if s.Mission.Confirm(s.Events) {
			s.spawnEnemy()
		}
	}
	if in.WasJustTriggered(ActionResetMission) {
		if s.Mission.Reset(s.Events) {
			s.ResetAll()
		}
	}
}

// spawnEnemy places the hostile ahead of the player, outside detection
// range so the encounter opens from idle, and arms the combat records.
func (s *Simulation) spawnEnemy() {
	ahead := vmath.V3Scale(s.Flight.Transform.ForwardDir(), enemySpawnDistance)
	spawn := vmath.V3Add(s.Flight.Transform.Position, ahead)
	s.Enemy = NewEnemyShip(spawn, s.seed)
	s.Combat.Reset()
}

// ResetAll zeroes every transient record back to initial defaults: the full
// state reset, not a partial one. The universe's discovery flags survive.
func (s *Simulation) ResetAll() {
	s.Flight.Reset()
	s.Camera.Reset()
	s.Weapons.Reset()
	s.Shields.Reset()
	s.Combat.Reset()
	s.Enemy = nil
}

// resolveCombat syncs the shield mirrors into the health records, lands the
// player's hits, then the enemy's, then writes absorbed pool values back to
// the owning shield systems. The mirror dance keeps ShieldSystem the owner
// of activation state while the combat model stays the only writer of hull.
func (s *Simulation) resolveCombat(dt float64) {
	s.Combat.Player.ShieldsUp = s.Shields.Active
	s.Combat.Player.ShieldStrength = s.Shields.Strength
	s.Combat.Enemy.ShieldsUp = s.Enemy.Shields.Active
	s.Combat.Enemy.ShieldStrength = s.Enemy.Shields.Strength

	enemyPos := s.Enemy.Transform.Position
	playerPos := s.Flight.Transform.Position

	if s.Combat.ResolveBeams(s.Weapons, ParticipantPlayer, &s.Flight.Transform, enemyPos, dt) {
		s.emitHitFeedback(ParticipantEnemy)
	}
	s.Combat.ResolveTorpedoes(s.Weapons, ParticipantPlayer, enemyPos, s.Events)

	if s.Combat.ResolveBeams(s.Weapons, ParticipantEnemy, &s.Enemy.Transform, playerPos, dt) {
		s.emitHitFeedback(ParticipantPlayer)
	}
	s.Combat.ResolveTorpedoes(s.Weapons, ParticipantEnemy, playerPos, s.Events)

	s.Shields.Absorbed(s.Combat.Player.ShieldStrength, ParticipantPlayer, s.Events)
	s.Enemy.Shields.Absorbed(s.Combat.Enemy.ShieldStrength, ParticipantEnemy, s.Events)
}

// emitHitFeedback attributes a beam hit to the victim for the audio layer.
func (s *Simulation) emitHitFeedback(victim Participant) {
	h := s.Combat.Health(victim)
	if h.ShieldsUp && h.ShieldStrength > 0 {
		s.Events.Emit(EventShieldHit, victim)
	} else {
		s.Events.Emit(EventHullHit, victim)
	}
}
