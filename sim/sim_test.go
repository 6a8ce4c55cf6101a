package sim

import (
	"testing"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

func tickN(s *Simulation, in *InputFrame, n int) {
	for i := 0; i < n; i++ {
		s.Tick(in, testDt)
	}
}

// startCombat drives the phase machine into active and returns the spawned
// enemy.
func startCombat(s *Simulation, in *InputFrame) *EnemyShip {
	in.Press(ActionStartBriefing)
	s.Tick(in, testDt)
	in.Press(ActionSkipNarration)
	s.Tick(in, testDt)
	in.Press(ActionConfirmBriefing)
	s.Tick(in, testDt)
	return s.Enemy
}

func TestTickClampsDelta(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}
	in.Press(ActionThrottle9)
	s.Tick(in, testDt)

	// A ten second stall advances at most one clamped step.
	before := s.Flight.Transform.Position
	s.Tick(in, 10)
	moved := vmath.V3Dist(before, s.Flight.Transform.Position)
	if max := ImpulseMax * MaxDeltaTime; moved > max+1e-9 {
		t.Fatalf("stalled frame moved %v, clamp allows %v", moved, max)
	}

	// Negative deltas are inert.
	before = s.Flight.Transform.Position
	s.Tick(in, -1)
	if s.Flight.Transform.Position != before {
		t.Fatal("negative dt moved the ship")
	}
}

func TestEnemySpawnsOnConfirm(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}

	if s.Enemy != nil {
		t.Fatal("enemy exists before the mission starts")
	}
	enemy := startCombat(s, in)
	if enemy == nil {
		t.Fatal("no enemy after confirmation")
	}
	if s.Mission.Phase != PhaseActive {
		t.Fatalf("phase = %v, want active", s.Mission.Phase)
	}
	if enemy.Behavior != BehaviorIdle {
		t.Fatalf("spawned enemy behavior = %v, want idle", enemy.Behavior)
	}
	if dist := vmath.V3Dist(enemy.Transform.Position, s.Flight.Transform.Position); dist < enemyDetectRange {
		t.Fatalf("enemy spawned inside detection range: %v", dist)
	}
}

func TestEnemyEngagesWhenApproached(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}
	enemy := startCombat(s, in)

	// Teleport the player next to the hostile and let the machine run.
	s.Flight.Transform.Position = vmath.V3Add(enemy.Transform.Position, vmath.Vec3{X: 80})
	s.Tick(in, testDt)
	s.Tick(in, testDt)
	if enemy.Behavior != BehaviorAlert {
		t.Fatalf("behavior = %v, want alert near the player", enemy.Behavior)
	}

	// The alert hold lasts about two seconds before the attack opens.
	tickN(s, in, 150)
	if enemy.Behavior != BehaviorAttack {
		t.Fatalf("behavior = %v, want attack after alert", enemy.Behavior)
	}
}

func TestCombatGatedOutsideActive(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}

	// Fire away in free roam; nothing evaluates combat.
	in.SetHeld(ActionFirePhaser, true)
	tickN(s, in, 60)
	if s.Combat.Player.Hull != HullMax || s.Combat.Enemy.Hull != HullMax {
		t.Fatal("combat state mutated outside active phase")
	}
}

func TestShieldToggleThroughTick(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}

	in.Press(ActionToggleShields)
	s.Tick(in, testDt)
	if !s.Shields.Active {
		t.Fatal("shields did not raise from input")
	}

	in.Press(ActionToggleShields)
	s.Tick(in, testDt)
	if s.Shields.Active {
		t.Fatal("shields did not drop from input")
	}
}

func TestPhotoModeFreezesFlight(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}

	in.Press(ActionThrottle9)
	tickN(s, in, 60)

	in.Press(ActionToggleCamera)
	s.Tick(in, testDt)
	pos := s.Flight.Transform.Position
	tickN(s, in, 120)
	if s.Flight.Transform.Position != pos {
		t.Fatal("ship moved while the camera was detached")
	}

	// Re-attaching resumes flight.
	in.Press(ActionToggleCamera)
	s.Tick(in, testDt)
	tickN(s, in, 30)
	if s.Flight.Transform.Position == pos {
		t.Fatal("ship frozen after returning to chase camera")
	}
}

func TestMissionDefeatAndFullReset(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}
	startCombat(s, in)

	// Scuff the transient state so the reset is observable.
	in.Press(ActionThrottle9)
	tickN(s, in, 120)
	s.Flight.Weapons.TorpedoCount = 2

	// Kill the player.
	s.Combat.Player.Hull = 1
	ApplyDamage(&s.Combat.Player, 50)
	s.Tick(in, testDt)
	if s.Mission.Phase != PhaseDefeat {
		t.Fatalf("phase = %v, want defeat", s.Mission.Phase)
	}

	in.Press(ActionResetMission)
	s.Tick(in, testDt)
	if s.Mission.Phase != PhaseFree {
		t.Fatalf("phase after reset = %v, want free", s.Mission.Phase)
	}
	if s.Enemy != nil {
		t.Fatal("enemy instance survived reset")
	}
	if s.Combat.Player.Hull != HullMax || s.Combat.Result != OutcomeNone {
		t.Fatalf("combat not reset: %+v", s.Combat.Player)
	}
	if s.Flight.Weapons.TorpedoCount != TorpedoMaxCount {
		t.Fatalf("ammo not restored: %d", s.Flight.Weapons.TorpedoCount)
	}
	if s.Flight.Transform.Position != (vmath.Vec3{}) {
		t.Fatalf("position not restored: %+v", s.Flight.Transform.Position)
	}
	if s.Flight.Throttle.Speed != 0 {
		t.Fatalf("speed not restored: %v", s.Flight.Throttle.Speed)
	}
}

func TestVictoryFromEnemyDestruction(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}
	startCombat(s, in)

	s.Combat.Enemy.Hull = 1
	ApplyDamage(&s.Combat.Enemy, 50)
	s.Tick(in, testDt)
	if s.Mission.Phase != PhaseVictory {
		t.Fatalf("phase = %v, want victory", s.Mission.Phase)
	}

	// The wreck tumbles but the verdict and phase hold.
	tickN(s, in, 60)
	if s.Mission.Phase != PhaseVictory || s.Combat.Result != OutcomeVictory {
		t.Fatal("victory state did not hold")
	}
}

func TestSnapshotReflectsState(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}
	startCombat(s, in)

	in.Press(ActionThrottle5)
	s.Tick(in, testDt)
	snap := s.Snapshot()

	if snap.Throttle != 5.0/9.0 {
		t.Fatalf("snapshot throttle = %v", snap.Throttle)
	}
	if snap.Phase != PhaseActive {
		t.Fatalf("snapshot phase = %v", snap.Phase)
	}
	if !snap.EnemyAlive {
		t.Fatal("snapshot reports dead enemy")
	}
	if snap.ShipPosition != s.Flight.Transform.Position {
		t.Fatal("snapshot position mismatch")
	}

	// Snapshot slices are copies; mutating them must not touch live state.
	s.Weapons.SpawnBeam(ParticipantPlayer, &s.Flight.Transform)
	snap = s.Snapshot()
	snap.Beams[0].Position = vmath.Vec3{X: 9999}
	if s.Weapons.Beams[0].Position.X == 9999 {
		t.Fatal("snapshot aliases live projectile storage")
	}
}

func TestEventsDrainOnce(t *testing.T) {
	s := NewSimulation(1)
	in := &InputFrame{}

	in.Press(ActionToggleShields)
	s.Tick(in, testDt)
	first := s.Events.Drain()
	if !hasEvent(first, EventShieldRaised) {
		t.Fatal("missing shield event")
	}
	if len(s.Events.Drain()) != 0 {
		t.Fatal("events drained twice")
	}
}
