package sim

import (
	"math"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

// CameraMode selects which rig drives the camera. Exactly one is active.
type CameraMode int

const (
	CameraChase CameraMode = iota
	CameraFree
)

// Camera constants
const (
	chaseFollowRate = 6.0  // exponential smoothing rate, 1/s
	lookFollowRate  = 9.0  // look-target smoothing rate, 1/s
	lookAheadDist   = 60.0 // how far ahead of the ship the camera looks

	fovMin = 60.0  // degrees, stationary
	fovMax = 100.0 // degrees, full warp

	freeLookSens  = 0.004 // radians per pixel of mouse drag
	freeMoveSpeed = 45.0  // units per second along camera-local axes
	freeZoomRate  = 40.0  // degrees per second
	freeFovMin    = 25.0
	freeFovMax    = 110.0
	freePitchMax  = 1.55 // just shy of straight up/down
)

// Chase offsets in ship-local space; the warp offset pulls the camera back
// and up as the warp ramp climbs.
var (
	chaseOffsetNormal = vmath.Vec3{X: 0, Y: 5, Z: 16}
	chaseOffsetWarp   = vmath.Vec3{X: 0, Y: 7, Z: 26}
)

// CameraRig owns the camera transform. Chase mode follows the ship with
// frame-rate-independent exponential smoothing; free-fly mode detaches
// entirely for observation ("photo mode").
type CameraRig struct {
	Mode CameraMode

	Position   vmath.Vec3
	LookTarget vmath.Vec3
	FOV        float64 // degrees

	// Free-fly state.
	freeYaw   float64
	freePitch float64

	// Reset target captured when entering free-fly.
	resetPos   vmath.Vec3
	resetLook  vmath.Vec3
	resetFOV   float64
	resetYaw   float64
	resetPitch float64
}

// NewCameraRig returns a chase camera parked behind the spawn point.
func NewCameraRig() *CameraRig {
	c := &CameraRig{}
	c.Reset()
	return c
}

// Reset snaps the rig back to its initial chase configuration.
func (c *CameraRig) Reset() {
	c.Mode = CameraChase
	c.Position = chaseOffsetNormal
	c.LookTarget = vmath.Vec3{}
	c.FOV = fovMin
	c.freeYaw = 0
	c.freePitch = 0
}

// Update advances the active camera mode one tick.
func (c *CameraRig) Update(in *InputFrame, ship *ShipTransform, speed, warpRamp, dt float64) {
	if in.WasJustTriggered(ActionToggleCamera) {
		if c.Mode == CameraChase {
			c.enterFree()
		} else {
			// Chase mode recomputes from scratch next tick; no blend back.
			c.Mode = CameraChase
		}
	}

	switch c.Mode {
	case CameraChase:
		c.updateChase(ship, speed, warpRamp, dt)
	case CameraFree:
		c.updateFree(in, dt)
	}
}

// enterFree captures the current camera as the free-fly reset target and
// derives yaw/pitch from the current view direction.
func (c *CameraRig) enterFree() {
	c.Mode = CameraFree
	c.resetPos = c.Position
	c.resetLook = c.LookTarget
	c.resetFOV = c.FOV

	dir := vmath.V3Normalize(vmath.V3Sub(c.LookTarget, c.Position))
	c.freeYaw = math.Atan2(dir.X, -dir.Z)
	c.freePitch = math.Asin(clamp(dir.Y, -1, 1))
	c.resetYaw = c.freeYaw
	c.resetPitch = c.freePitch
}

// updateChase smooths the camera toward a ship-relative offset. The
// smoothing uses pos += (desired-pos) * (1 - e^(-k*dt)) so the follow feel
// is identical at any frame rate, unlike a fixed-fraction lerp.
func (c *CameraRig) updateChase(ship *ShipTransform, speed, warpRamp, dt float64) {
	offset := vmath.V3Lerp(chaseOffsetNormal, chaseOffsetWarp, warpRamp)
	desired := vmath.V3Add(ship.Position, vmath.QRotate(ship.Orientation, offset))

	posBlend := 1 - math.Exp(-chaseFollowRate*dt)
	c.Position = vmath.V3Add(c.Position, vmath.V3Scale(vmath.V3Sub(desired, c.Position), posBlend))

	ahead := vmath.V3Add(ship.Position, vmath.V3Scale(ship.ForwardDir(), lookAheadDist))
	lookBlend := 1 - math.Exp(-lookFollowRate*dt)
	c.LookTarget = vmath.V3Add(c.LookTarget, vmath.V3Scale(vmath.V3Sub(ahead, c.LookTarget), lookBlend))

	// FOV widens on a quadratic ease of normalized speed, so the tunnel
	// vision ramps in disproportionately near full warp.
	norm := clamp(speed/(ImpulseMax*WarpMultiplier), 0, 1)
	c.FOV = fovMin + (fovMax-fovMin)*norm*norm
}

// updateFree flies the camera on its own yaw/pitch, decoupled from the ship.
func (c *CameraRig) updateFree(in *InputFrame, dt float64) {
	if in.WasJustTriggered(ActionCameraReset) {
		c.Position = c.resetPos
		c.LookTarget = c.resetLook
		c.FOV = c.resetFOV
		c.freeYaw = c.resetYaw
		c.freePitch = c.resetPitch
		return
	}

	c.freeYaw += in.MouseDX * freeLookSens
	c.freePitch = clamp(c.freePitch-in.MouseDY*freeLookSens, -freePitchMax, freePitchMax)

	fwd := c.freeForward()
	right := vmath.V3Normalize(vmath.V3Cross(fwd, Up))
	up := vmath.V3Cross(right, fwd)

	move := vmath.Vec3{}
	if in.IsHeld(ActionCameraForward) {
		move = vmath.V3Add(move, fwd)
	}
	if in.IsHeld(ActionCameraBack) {
		move = vmath.V3Sub(move, fwd)
	}
	if in.IsHeld(ActionCameraRight) {
		move = vmath.V3Add(move, right)
	}
	if in.IsHeld(ActionCameraLeft) {
		move = vmath.V3Sub(move, right)
	}
	if in.IsHeld(ActionCameraUp) {
		move = vmath.V3Add(move, up)
	}
	if in.IsHeld(ActionCameraDown) {
		move = vmath.V3Sub(move, up)
	}
	if vmath.V3MagSq(move) > 0 {
		move = vmath.V3Scale(vmath.V3Normalize(move), freeMoveSpeed*dt)
		c.Position = vmath.V3Add(c.Position, move)
	}

	if in.IsHeld(ActionZoomIn) {
		c.FOV -= freeZoomRate * dt
	}
	if in.IsHeld(ActionZoomOut) {
		c.FOV += freeZoomRate * dt
	}
	c.FOV = clamp(c.FOV, freeFovMin, freeFovMax)

	c.LookTarget = vmath.V3Add(c.Position, fwd)
}

// freeForward converts yaw/pitch into a view direction.
func (c *CameraRig) freeForward() vmath.Vec3 {
	cp := math.Cos(c.freePitch)
	return vmath.Vec3{
		X: math.Sin(c.freeYaw) * cp,
		Y: math.Sin(c.freePitch),
		Z: -math.Cos(c.freeYaw) * cp,
	}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
