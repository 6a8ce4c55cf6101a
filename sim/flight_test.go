package sim

import (
	"math"
	"testing"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

const testDt = 1.0 / 60.0

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestThrottleDirectSet(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionThrottle9)
	f.Update(in, q, testDt)
	if f.Throttle.Throttle != 1.0 {
		t.Fatalf("throttle after level 9 = %v, want 1.0", f.Throttle.Throttle)
	}

	in.Press(ActionThrottle3)
	f.Update(in, q, testDt)
	if want := 3.0 / 9.0; f.Throttle.Throttle != want {
		t.Fatalf("throttle after level 3 = %v, want %v", f.Throttle.Throttle, want)
	}

	in.Press(ActionThrottle0)
	f.Update(in, q, testDt)
	if f.Throttle.Throttle != 0 {
		t.Fatalf("throttle after level 0 = %v, want 0", f.Throttle.Throttle)
	}
}

func TestSpeedRateLimited(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionThrottle9)
	f.Update(in, q, 0.05)
	if max := AccelRate * 0.05; f.Throttle.Speed > max+1e-9 {
		t.Fatalf("speed %v jumped past rate limit %v in one tick", f.Throttle.Speed, max)
	}

	// A second of updates settles exactly on the target.
	for i := 0; i < 60; i++ {
		f.Update(in, q, testDt)
	}
	if math.Abs(f.Throttle.Speed-ImpulseMax) > 1e-9 {
		t.Fatalf("settled speed = %v, want %v", f.Throttle.Speed, ImpulseMax)
	}
}

func TestWarpEngageRequiresThrottle(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionToggleWarp)
	f.Update(in, q, testDt)
	if f.Throttle.IsWarp {
		t.Fatal("warp engaged at zero throttle")
	}
	if hasEvent(q.Drain(), EventWarpEngaged) {
		t.Fatal("warp engage event emitted at zero throttle")
	}

	in.Press(ActionThrottle5)
	f.Update(in, q, testDt)
	in.Press(ActionToggleWarp)
	f.Update(in, q, testDt)
	if !f.Throttle.IsWarp {
		t.Fatal("warp refused with throttle set")
	}
	if !hasEvent(q.Drain(), EventWarpEngaged) {
		t.Fatal("no warp engage event")
	}
}

func TestWarpAutoDisengage(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionThrottle5)
	f.Update(in, q, testDt)
	in.Press(ActionToggleWarp)
	f.Update(in, q, testDt)
	if !f.Throttle.IsWarp {
		t.Fatal("warp did not engage")
	}
	q.Drain()

	// Dropping the throttle to zero must cut warp without any warp input.
	in.Press(ActionThrottle0)
	f.Update(in, q, testDt)
	if f.Throttle.IsWarp {
		t.Fatal("warp stayed engaged below throttle floor")
	}
	if !hasEvent(q.Drain(), EventWarpDisengaged) {
		t.Fatal("no warp disengage event")
	}
}

func TestWarpSpeedTarget(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionThrottle9)
	f.Update(in, q, testDt)
	in.Press(ActionToggleWarp)
	for i := 0; i < 600; i++ {
		f.Update(in, q, testDt)
	}
	want := ImpulseMax * WarpMultiplier
	if math.Abs(f.Throttle.Speed-want) > 1e-6 {
		t.Fatalf("warp speed = %v, want %v", f.Throttle.Speed, want)
	}
	if f.WarpRamp != 1 {
		t.Fatalf("warp ramp = %v, want 1", f.WarpRamp)
	}
}

func TestOrientationStaysUnit(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.SetHeld(ActionPitchUp, true)
	in.SetHeld(ActionYawLeft, true)
	in.SetHeld(ActionRollRight, true)
	for i := 0; i < 3600; i++ {
		f.Update(in, q, testDt)
	}
	if mag := vmath.QMag(f.Transform.Orientation); math.Abs(mag-1) > 1e-9 {
		t.Fatalf("orientation magnitude drifted to %v", mag)
	}
}

func TestPositionFollowsForward(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionThrottle9)
	for i := 0; i < 120; i++ {
		f.Update(in, q, testDt)
	}
	// Identity orientation flies along -Z.
	if f.Transform.Position.Z >= 0 {
		t.Fatalf("ship moved to Z=%v, want negative", f.Transform.Position.Z)
	}
	if math.Abs(f.Transform.Position.X) > 1e-9 || math.Abs(f.Transform.Position.Y) > 1e-9 {
		t.Fatalf("ship drifted off axis: %+v", f.Transform.Position)
	}
}

func TestPhaserChargeEconomy(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.SetHeld(ActionFirePhaser, true)
	f.Update(in, q, 1.0)
	want := PhaserChargeMax + phaserRegenRate - phaserDrainRate
	if math.Abs(f.Weapons.PhaserCharge-want) > 1e-9 {
		t.Fatalf("charge after 1s firing = %v, want %v", f.Weapons.PhaserCharge, want)
	}
	if !f.Weapons.PhaserFiring {
		t.Fatal("firing intent false with charge available")
	}

	// Below the floor the intent is suppressed and regen recovers.
	f.Weapons.PhaserCharge = phaserMinCharge - 1
	f.Update(in, q, testDt)
	if f.Weapons.PhaserFiring {
		t.Fatal("firing intent true below minimum charge")
	}

	in.SetHeld(ActionFirePhaser, false)
	for i := 0; i < 600; i++ {
		f.Update(in, q, testDt)
	}
	if f.Weapons.PhaserCharge != PhaserChargeMax {
		t.Fatalf("charge did not regen to cap: %v", f.Weapons.PhaserCharge)
	}
}

func TestTorpedoIntentEdgeTriggered(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionFireTorpedo)
	f.Update(in, q, testDt)
	if !f.Weapons.TorpedoFiring {
		t.Fatal("torpedo intent false on press")
	}

	// No new press: intent clears.
	f.Update(in, q, testDt)
	if f.Weapons.TorpedoFiring {
		t.Fatal("torpedo intent survived without a new press")
	}

	// Zero ammo silently suppresses the intent.
	f.Weapons.TorpedoCount = 0
	in.Press(ActionFireTorpedo)
	f.Update(in, q, testDt)
	if f.Weapons.TorpedoFiring {
		t.Fatal("torpedo intent true with zero ammo")
	}
}

func TestFlightReset(t *testing.T) {
	f := NewFlightModel()
	in := &InputFrame{}
	q := &EventQueue{}

	in.Press(ActionThrottle9)
	in.SetHeld(ActionPitchUp, true)
	for i := 0; i < 300; i++ {
		f.Update(in, q, testDt)
	}
	f.Weapons.TorpedoCount = 3

	f.Reset()
	if f.Transform.Position != (vmath.Vec3{}) {
		t.Fatalf("position not reset: %+v", f.Transform.Position)
	}
	if f.Transform.Orientation != vmath.QIdentity() {
		t.Fatalf("orientation not reset: %+v", f.Transform.Orientation)
	}
	if f.Throttle.Speed != 0 || f.Throttle.Throttle != 0 || f.Throttle.IsWarp {
		t.Fatalf("throttle not reset: %+v", f.Throttle)
	}
	if f.Weapons.TorpedoCount != TorpedoMaxCount || f.Weapons.PhaserCharge != PhaserChargeMax {
		t.Fatalf("weapons not reset: %+v", f.Weapons)
	}
}
