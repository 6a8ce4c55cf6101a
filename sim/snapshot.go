package sim

import (
	"github.com/alice-viola/NCC-1701-D/vmath"
)

// Snapshot is the flat read-only view of one completed tick. Presentation
// layers consume it without reaching into live simulation state; slices are
// copied so a held snapshot stays valid across ticks.
type Snapshot struct {
	// Player ship.
	ShipPosition    vmath.Vec3
	ShipOrientation vmath.Quat
	ShipVelocity    vmath.Vec3
	Throttle        float64
	Speed           float64
	IsWarp          bool
	WarpRamp        float64

	// Weapons.
	PhaserCharge float64
	TorpedoCount int
	Beams        []Beam
	Torpedoes    []Torpedo

	// Shields.
	ShieldsActive  bool
	ShieldStrength float64
	ShieldPulse    float64
	ShieldOpacity  float64

	// Combat.
	PlayerHull        float64
	PlayerDamageFlash float64
	EnemyHull         float64
	EnemyDamageFlash  float64
	Result            Outcome

	// Enemy.
	EnemyAlive        bool
	EnemyPosition     vmath.Vec3
	EnemyOrientation  vmath.Quat
	EnemyBehavior     EnemyBehavior
	EnemyShieldsUp    bool
	EnemyBreakupSpin  float64
	EnemyBreakupScale float64

	// Camera.
	CameraMode CameraMode
	CameraPos  vmath.Vec3
	CameraLook vmath.Vec3
	CameraFOV  float64

	// Mission.
	Phase         MissionPhase
	NarrationDone bool
}

// Snapshot captures the current frame's observable state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		ShipPosition:    s.Flight.Transform.Position,
		ShipOrientation: s.Flight.Transform.Orientation,
		ShipVelocity:    s.Flight.Transform.Velocity,
		Throttle:        s.Flight.Throttle.Throttle,
		Speed:           s.Flight.Throttle.Speed,
		IsWarp:          s.Flight.Throttle.IsWarp,
		WarpRamp:        s.Flight.WarpRamp,

		PhaserCharge: s.Flight.Weapons.PhaserCharge,
		TorpedoCount: s.Flight.Weapons.TorpedoCount,
		Beams:        append([]Beam(nil), s.Weapons.Beams...),
		Torpedoes:    append([]Torpedo(nil), s.Weapons.Torpedoes...),

		ShieldsActive:  s.Shields.Active,
		ShieldStrength: s.Shields.Strength,
		ShieldPulse:    s.Shields.Pulse,
		ShieldOpacity:  s.Shields.Opacity,

		PlayerHull:        s.Combat.Player.Hull,
		PlayerDamageFlash: s.Combat.Player.DamageFlash,
		EnemyHull:         s.Combat.Enemy.Hull,
		EnemyDamageFlash:  s.Combat.Enemy.DamageFlash,
		Result:            s.Combat.Result,

		CameraMode: s.Camera.Mode,
		CameraPos:  s.Camera.Position,
		CameraLook: s.Camera.LookTarget,
		CameraFOV:  s.Camera.FOV,

		Phase:         s.Mission.Phase,
		NarrationDone: s.Mission.NarrationDone,
	}

	if s.Enemy != nil {
		snap.EnemyAlive = !s.Combat.Enemy.Destroyed
		snap.EnemyPosition = s.Enemy.Transform.Position
		snap.EnemyOrientation = s.Enemy.Transform.Orientation
		snap.EnemyBehavior = s.Enemy.Behavior
		snap.EnemyShieldsUp = s.Enemy.Shields.Active
		snap.EnemyBreakupSpin = s.Enemy.BreakupSpin
		snap.EnemyBreakupScale = s.Enemy.BreakupScale
	}
	return snap
}
