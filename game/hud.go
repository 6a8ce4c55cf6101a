package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/alice-viola/NCC-1701-D/sim"
)

// HUD constants
const (
	barWidth      = 180.0
	barHeight     = 10.0
	hudMargin     = 16.0
	narrationPace = 2.8 // seconds per briefing line
)

var briefingScript = []string{
	"Priority one transmission from Starbase 74.",
	"A hostile raider has been detected on an intercept course.",
	"Your orders: engage and neutralize the threat.",
	"Shields and weapons are released. Good hunting, Captain.",
}

var (
	colorBarBack   = color.RGBA{30, 36, 48, 200}
	colorBarPhaser = color.RGBA{255, 150, 60, 255}
	colorBarShield = color.RGBA{90, 170, 255, 255}
	colorBarHull   = color.RGBA{120, 220, 120, 255}
	colorBarEnemy  = color.RGBA{220, 100, 100, 255}
	colorText      = color.RGBA{210, 220, 235, 255}
	colorDim       = color.RGBA{140, 150, 170, 255}
)

// HUD draws the instrument overlay and owns the briefing narration pacing.
// The simulation only learns "narration complete"; all text lives here.
type HUD struct {
	width, height float64

	narrLine   int
	narrTimer  float64
	narrActive bool
}

// NewHUD returns a HUD sized to the render resolution.
func NewHUD(config Config) *HUD {
	return &HUD{
		width:  float64(config.ScreenWidth),
		height: float64(config.ScreenHeight),
	}
}

// StartNarration begins the briefing script from the top.
func (h *HUD) StartNarration() {
	h.narrLine = 0
	h.narrTimer = 0
	h.narrActive = true
}

// Update paces the narration. Returns true once the whole script has played.
func (h *HUD) Update(dt float64) bool {
	if !h.narrActive {
		return false
	}
	h.narrTimer += dt
	if h.narrTimer >= narrationPace {
		h.narrTimer = 0
		h.narrLine++
		if h.narrLine >= len(briefingScript) {
			h.narrActive = false
			return true
		}
	}
	return false
}

// Draw renders the full overlay from the frame snapshot.
func (h *HUD) Draw(screen *ebiten.Image, snap *sim.Snapshot) {
	face := basicfont.Face7x13

	// Propulsion readout, top left.
	y := hudMargin + 12.0
	drive := "IMPULSE"
	if snap.IsWarp {
		drive = "WARP"
	}
	text.Draw(screen, fmt.Sprintf("%s  thr %.0f%%  spd %.1f", drive, snap.Throttle*100, snap.Speed), face, int(hudMargin), int(y), colorText)

	// Weapon and shield bars.
	y += 16
	h.bar(screen, hudMargin, y, snap.PhaserCharge/sim.PhaserChargeMax, colorBarPhaser)
	text.Draw(screen, fmt.Sprintf("PHASER %3.0f", snap.PhaserCharge), face, int(hudMargin+barWidth+8), int(y+barHeight), colorText)

	y += barHeight + 8
	h.bar(screen, hudMargin, y, snap.ShieldStrength/sim.ShieldStrengthMax, colorBarShield)
	shieldLabel := "SHIELDS DOWN"
	if snap.ShieldsActive {
		shieldLabel = "SHIELDS UP"
	}
	text.Draw(screen, shieldLabel, face, int(hudMargin+barWidth+8), int(y+barHeight), colorText)

	y += barHeight + 8
	h.bar(screen, hudMargin, y, snap.PlayerHull/sim.HullMax, colorBarHull)
	text.Draw(screen, fmt.Sprintf("HULL  torp %d", snap.TorpedoCount), face, int(hudMargin+barWidth+8), int(y+barHeight), colorText)

	// Enemy readout, top right, only while a contact exists.
	if snap.EnemyAlive {
		ex := h.width - hudMargin - barWidth
		h.bar(screen, ex, hudMargin+12, snap.EnemyHull/sim.HullMax, colorBarEnemy)
		text.Draw(screen, fmt.Sprintf("CONTACT [%s]", snap.EnemyBehavior), face, int(ex), int(hudMargin+12+barHeight+14), colorText)
	}

	h.drawPhase(screen, snap, face)
}

// bar draws one filled gauge with a background trough.
func (h *HUD) bar(screen *ebiten.Image, x, y, frac float64, clr color.RGBA) {
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(barWidth), float32(barHeight), colorBarBack, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(barWidth*frac), float32(barHeight), clr, false)
}

// drawPhase renders the phase-specific center overlays.
func (h *HUD) drawPhase(screen *ebiten.Image, snap *sim.Snapshot, face *basicfont.Face) {
	cx := int(h.width / 2)
	switch snap.Phase {
	case sim.PhaseFree:
		h.centered(screen, "[B] mission briefing   [C] photo mode   [Tab] warp", face, cx, int(h.height-30), colorDim)
	case sim.PhaseBriefing:
		line := briefingScript[len(briefingScript)-1]
		if h.narrActive && h.narrLine < len(briefingScript) {
			line = briefingScript[h.narrLine]
		}
		h.centered(screen, line, face, cx, int(h.height/2), colorText)
		hint := "[N] skip narration"
		if snap.NarrationDone {
			hint = "[Enter] engage"
		}
		h.centered(screen, hint, face, cx, int(h.height/2)+24, colorDim)
	case sim.PhaseVictory:
		h.centered(screen, "TARGET DESTROYED - MISSION COMPLETE", face, cx, int(h.height/2), colorBarHull)
		h.centered(screen, "[R] return to patrol", face, cx, int(h.height/2)+24, colorDim)
	case sim.PhaseDefeat:
		h.centered(screen, "HULL BREACH - ALL HANDS LOST", face, cx, int(h.height/2), colorBarEnemy)
		h.centered(screen, "[R] reset simulation", face, cx, int(h.height/2)+24, colorDim)
	}
}

// centered draws text horizontally centered on cx.
func (h *HUD) centered(screen *ebiten.Image, s string, face *basicfont.Face, cx, y int, clr color.Color) {
	w := font7x13Width(s)
	text.Draw(screen, s, face, cx-w/2, y, clr)
}

// font7x13Width measures basicfont text; every glyph advances 7 pixels.
func font7x13Width(s string) int {
	return 7 * len(s)
}
