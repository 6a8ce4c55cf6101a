package sim

// Action is a logical control the simulation reacts to. The host maps
// physical keys/buttons onto actions; the core never sees device state.
type Action int

const (
	ActionPitchUp Action = iota
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionRollLeft
	ActionRollRight

	// Throttle levels are direct-set: level N maps to throttle N/9.
	ActionThrottle0
	ActionThrottle1
	ActionThrottle2
	ActionThrottle3
	ActionThrottle4
	ActionThrottle5
	ActionThrottle6
	ActionThrottle7
	ActionThrottle8
	ActionThrottle9

	ActionToggleWarp
	ActionFirePhaser
	ActionFireTorpedo
	ActionToggleShields

	ActionToggleCamera
	ActionCameraReset
	ActionCameraForward
	ActionCameraBack
	ActionCameraLeft
	ActionCameraRight
	ActionCameraUp
	ActionCameraDown
	ActionZoomIn
	ActionZoomOut

	ActionStartBriefing
	ActionConfirmBriefing
	ActionSkipNarration
	ActionResetMission

	ActionCount
)

// InputFrame is one tick's worth of input. Held state is sampled once per
// tick and stable for the whole tick; edge-triggered state clears itself on
// first read so an action can only fire once no matter how many call sites
// check it.
type InputFrame struct {
	held    [ActionCount]bool
	pressed [ActionCount]bool

	// Mouse drag deltas for the free-fly camera, in pixels this frame.
	MouseDX float64
	MouseDY float64
}

// SetHeld records whether an action is currently held.
func (f *InputFrame) SetHeld(a Action, v bool) {
	f.held[a] = v
}

// Press records an edge-triggered activation for this frame.
func (f *InputFrame) Press(a Action) {
	f.pressed[a] = true
}

// IsHeld reports whether the action is held this frame.
func (f *InputFrame) IsHeld(a Action) bool {
	return f.held[a]
}

// WasJustTriggered reports whether the action was newly pressed this frame.
// The flag clears on read: a second query in the same tick returns false.
func (f *InputFrame) WasJustTriggered(a Action) bool {
	if f.pressed[a] {
		f.pressed[a] = false
		return true
	}
	return false
}

// EndFrame clears all edge-triggered flags and mouse deltas. The host calls
// this after the simulation tick so stale presses never leak into the next
// frame.
func (f *InputFrame) EndFrame() {
	for i := range f.pressed {
		f.pressed[i] = false
	}
	f.MouseDX = 0
	f.MouseDY = 0
}
