package sim

import (
	"math"
	"testing"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

func TestChaseCameraConverges(t *testing.T) {
	c := NewCameraRig()
	in := &InputFrame{}
	ship := &ShipTransform{Position: vmath.Vec3{X: 100, Z: -200}, Orientation: vmath.QIdentity()}

	for i := 0; i < 600; i++ {
		c.Update(in, ship, 0, 0, testDt)
	}
	desired := vmath.V3Add(ship.Position, chaseOffsetNormal)
	if vmath.V3Dist(c.Position, desired) > 0.5 {
		t.Fatalf("camera at %+v, want near %+v", c.Position, desired)
	}
}

func TestChaseCameraNoSnap(t *testing.T) {
	c := NewCameraRig()
	in := &InputFrame{}
	ship := &ShipTransform{Position: vmath.Vec3{X: 1000}, Orientation: vmath.QIdentity()}

	before := c.Position
	c.Update(in, ship, 0, 0, testDt)
	moved := vmath.V3Dist(before, c.Position)
	gap := vmath.V3Dist(before, vmath.V3Add(ship.Position, chaseOffsetNormal))
	if moved >= gap {
		t.Fatalf("camera snapped %v of a %v gap in one tick", moved, gap)
	}
}

func TestChaseFOVWidensWithSpeed(t *testing.T) {
	c := NewCameraRig()
	in := &InputFrame{}
	ship := &ShipTransform{Orientation: vmath.QIdentity()}

	c.Update(in, ship, 0, 0, testDt)
	slow := c.FOV
	c.Update(in, ship, ImpulseMax*WarpMultiplier, 1, testDt)
	fast := c.FOV
	if fast <= slow {
		t.Fatalf("FOV did not widen: %v -> %v", slow, fast)
	}
	if math.Abs(fast-fovMax) > 1e-9 {
		t.Fatalf("full-warp FOV = %v, want %v", fast, fovMax)
	}
}

func TestCameraToggleToFree(t *testing.T) {
	c := NewCameraRig()
	in := &InputFrame{}
	ship := &ShipTransform{Orientation: vmath.QIdentity()}

	in.Press(ActionToggleCamera)
	c.Update(in, ship, 0, 0, testDt)
	if c.Mode != CameraFree {
		t.Fatalf("mode = %v, want free", c.Mode)
	}

	in.Press(ActionToggleCamera)
	c.Update(in, ship, 0, 0, testDt)
	if c.Mode != CameraChase {
		t.Fatalf("mode = %v, want chase after second toggle", c.Mode)
	}
}

func TestFreeCameraMovesOnInput(t *testing.T) {
	c := NewCameraRig()
	in := &InputFrame{}
	ship := &ShipTransform{Orientation: vmath.QIdentity()}

	in.Press(ActionToggleCamera)
	c.Update(in, ship, 0, 0, testDt)

	before := c.Position
	in.SetHeld(ActionCameraForward, true)
	for i := 0; i < 60; i++ {
		c.Update(in, ship, 0, 0, testDt)
	}
	if vmath.V3Dist(before, c.Position) < 1 {
		t.Fatal("free camera did not move forward")
	}
}

func TestFreeCameraResetRestoresEntry(t *testing.T) {
	c := NewCameraRig()
	in := &InputFrame{}
	ship := &ShipTransform{Orientation: vmath.QIdentity()}

	// Settle the chase camera somewhere definite first.
	for i := 0; i < 300; i++ {
		c.Update(in, ship, 0, 0, testDt)
	}

	in.Press(ActionToggleCamera)
	c.Update(in, ship, 0, 0, testDt)
	entryPos := c.resetPos
	entryFOV := c.resetFOV

	in.SetHeld(ActionCameraForward, true)
	in.SetHeld(ActionZoomOut, true)
	for i := 0; i < 120; i++ {
		c.Update(in, ship, 0, 0, testDt)
	}
	in.SetHeld(ActionCameraForward, false)
	in.SetHeld(ActionZoomOut, false)

	in.Press(ActionCameraReset)
	c.Update(in, ship, 0, 0, testDt)
	if c.Position != entryPos {
		t.Fatalf("reset position %+v, want %+v", c.Position, entryPos)
	}
	if c.FOV != entryFOV {
		t.Fatalf("reset FOV %v, want %v", c.FOV, entryFOV)
	}
}

func TestFreeCameraPitchClamped(t *testing.T) {
	c := NewCameraRig()
	in := &InputFrame{}
	ship := &ShipTransform{Orientation: vmath.QIdentity()}

	in.Press(ActionToggleCamera)
	c.Update(in, ship, 0, 0, testDt)

	for i := 0; i < 200; i++ {
		in.MouseDY = -500
		c.Update(in, ship, 0, 0, testDt)
		in.MouseDY = 0
	}
	if c.freePitch > freePitchMax || c.freePitch < -freePitchMax {
		t.Fatalf("pitch escaped clamp: %v", c.freePitch)
	}

	in.SetHeld(ActionZoomIn, true)
	for i := 0; i < 600; i++ {
		c.Update(in, ship, 0, 0, testDt)
	}
	if c.FOV < freeFovMin {
		t.Fatalf("FOV below floor: %v", c.FOV)
	}
}
