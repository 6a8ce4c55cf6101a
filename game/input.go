package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/alice-viola/NCC-1701-D/sim"
)

// keyBinding maps one physical key to one logical action. Held actions are
// sampled every frame; edge actions fire only on the press transition.
type keyBinding struct {
	key    ebiten.Key
	action sim.Action
	edge   bool
}

var bindings = []keyBinding{
	{ebiten.KeyArrowUp, sim.ActionPitchUp, false},
	{ebiten.KeyArrowDown, sim.ActionPitchDown, false},
	{ebiten.KeyArrowLeft, sim.ActionYawLeft, false},
	{ebiten.KeyArrowRight, sim.ActionYawRight, false},
	{ebiten.KeyQ, sim.ActionRollLeft, false},
	{ebiten.KeyE, sim.ActionRollRight, false},

	{ebiten.KeyDigit0, sim.ActionThrottle0, true},
	{ebiten.KeyDigit1, sim.ActionThrottle1, true},
	{ebiten.KeyDigit2, sim.ActionThrottle2, true},
	{ebiten.KeyDigit3, sim.ActionThrottle3, true},
	{ebiten.KeyDigit4, sim.ActionThrottle4, true},
	{ebiten.KeyDigit5, sim.ActionThrottle5, true},
	{ebiten.KeyDigit6, sim.ActionThrottle6, true},
	{ebiten.KeyDigit7, sim.ActionThrottle7, true},
	{ebiten.KeyDigit8, sim.ActionThrottle8, true},
	{ebiten.KeyDigit9, sim.ActionThrottle9, true},

	{ebiten.KeyTab, sim.ActionToggleWarp, true},
	{ebiten.KeySpace, sim.ActionFirePhaser, false},
	{ebiten.KeyT, sim.ActionFireTorpedo, true},
	{ebiten.KeyS, sim.ActionToggleShields, true},

	{ebiten.KeyC, sim.ActionToggleCamera, true},
	{ebiten.KeyHome, sim.ActionCameraReset, true},
	{ebiten.KeyW, sim.ActionCameraForward, false},
	{ebiten.KeyX, sim.ActionCameraBack, false},
	{ebiten.KeyA, sim.ActionCameraLeft, false},
	{ebiten.KeyD, sim.ActionCameraRight, false},
	{ebiten.KeyPageUp, sim.ActionCameraUp, false},
	{ebiten.KeyPageDown, sim.ActionCameraDown, false},
	{ebiten.KeyEqual, sim.ActionZoomIn, false},
	{ebiten.KeyMinus, sim.ActionZoomOut, false},

	{ebiten.KeyB, sim.ActionStartBriefing, true},
	{ebiten.KeyEnter, sim.ActionConfirmBriefing, true},
	{ebiten.KeyN, sim.ActionSkipNarration, true},
	{ebiten.KeyR, sim.ActionResetMission, true},
}

// InputAdapter samples the keyboard and mouse into a simulation InputFrame
// once per frame. The simulation never touches device state directly.
type InputAdapter struct {
	Frame sim.InputFrame

	dragging       bool
	lastMX, lastMY int
}

// NewInputAdapter returns an adapter with an empty frame.
func NewInputAdapter() *InputAdapter {
	return &InputAdapter{}
}

// Sample fills the frame from the current device state. Mouse drag deltas
// only accumulate while the left button is held, so an idle cursor never
// spins the free camera.
func (a *InputAdapter) Sample() *sim.InputFrame {
	for _, b := range bindings {
		if b.edge {
			if inpututil.IsKeyJustPressed(b.key) {
				a.Frame.Press(b.action)
			}
		} else {
			a.Frame.SetHeld(b.action, ebiten.IsKeyPressed(b.key))
		}
	}

	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if a.dragging {
			a.Frame.MouseDX += float64(mx - a.lastMX)
			a.Frame.MouseDY += float64(my - a.lastMY)
		}
		a.dragging = true
	} else {
		a.dragging = false
	}
	a.lastMX, a.lastMY = mx, my

	return &a.Frame
}
