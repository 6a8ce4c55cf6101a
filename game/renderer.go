package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/alice-viola/NCC-1701-D/sim"
	"github.com/alice-viola/NCC-1701-D/vmath"
)

// Render constants
const (
	nearPlane       = 0.5
	shipSpriteScale = 9.0  // world units of ship width at depth 1
	indicatorMargin = 28.0 // screen-edge inset for the offscreen marker
	indicatorLen    = 14.0
)

var (
	colorBeamPlayer = color.RGBA{255, 140, 60, 255}
	colorBeamEnemy  = color.RGBA{120, 255, 120, 255}
	colorTorpedo    = color.RGBA{255, 90, 140, 255}
	colorShield     = color.RGBA{90, 170, 255, 255}
	colorIndicator  = color.RGBA{255, 80, 80, 255}
)

// viewCam is the per-frame projection basis derived from the camera rig.
type viewCam struct {
	pos, right, up, fwd vmath.Vec3
	focal               float64
	cx, cy              float64
}

// Renderer projects the simulation's world state onto the screen with a
// simple pinhole camera. Planets and ships live at fixed world coordinates;
// only the star backdrop follows the camera.
type Renderer struct {
	width, height float64
	stars         *Starfield
	sprites       *SpriteSet
}

// NewRenderer builds the renderer and its static resources.
func NewRenderer(config Config) *Renderer {
	return &Renderer{
		width:   float64(config.ScreenWidth),
		height:  float64(config.ScreenHeight),
		stars:   NewStarfield(config.StarCount),
		sprites: LoadSprites(),
	}
}

// Draw renders one frame from the snapshot.
func (r *Renderer) Draw(screen *ebiten.Image, snap *sim.Snapshot, env *sim.Environment) {
	screen.Fill(color.RGBA{4, 5, 12, 255})

	cam := r.makeCam(snap)
	r.stars.Draw(screen, &cam, snap.WarpRamp)
	r.drawBodies(screen, &cam, env)
	r.drawProjectiles(screen, &cam, snap)
	r.drawEnemy(screen, &cam, snap)
	r.drawPlayer(screen, &cam, snap)
}

// makeCam derives the orthonormal view basis and focal length.
func (r *Renderer) makeCam(snap *sim.Snapshot) viewCam {
	fwd := vmath.V3Sub(snap.CameraLook, snap.CameraPos)
	if vmath.V3MagSq(fwd) < 1e-9 {
		fwd = vmath.Vec3{Z: -1}
	}
	fwd = vmath.V3Normalize(fwd)
	right := vmath.V3Cross(fwd, sim.Up)
	if vmath.V3MagSq(right) < 1e-9 {
		right = sim.Right
	}
	right = vmath.V3Normalize(right)
	up := vmath.V3Cross(right, fwd)

	fovRad := snap.CameraFOV * math.Pi / 180
	return viewCam{
		pos:   snap.CameraPos,
		right: right,
		up:    up,
		fwd:   fwd,
		focal: (r.height / 2) / math.Tan(fovRad/2),
		cx:    r.width / 2,
		cy:    r.height / 2,
	}
}

// project maps a world point to screen space. ok is false behind the near
// plane; depth is the camera-space distance along the view axis.
func (c *viewCam) project(p vmath.Vec3) (sx, sy, depth float64, ok bool) {
	d := vmath.V3Sub(p, c.pos)
	z := vmath.V3Dot(d, c.fwd)
	if z < nearPlane {
		return 0, 0, z, false
	}
	x := vmath.V3Dot(d, c.right)
	y := vmath.V3Dot(d, c.up)
	return c.cx + x*c.focal/z, c.cy - y*c.focal/z, z, true
}

// projectDir maps a world direction to a screen-space heading for the
// offscreen indicator, ignoring translation.
func (c *viewCam) projectDir(d vmath.Vec3) (dx, dy float64) {
	x := vmath.V3Dot(d, c.right)
	y := -vmath.V3Dot(d, c.up)
	m := math.Hypot(x, y)
	if m < 1e-9 {
		return 0, -1
	}
	return x / m, y / m
}

// drawBodies renders the star and planets back-to-front as shaded discs.
func (r *Renderer) drawBodies(screen *ebiten.Image, cam *viewCam, env *sim.Environment) {
	type drawn struct {
		x, y, radius, depth float64
		body                *sim.Body
	}
	var list []drawn
	for i := range env.Bodies {
		b := &env.Bodies[i]
		sx, sy, z, ok := cam.project(b.Position)
		if !ok {
			continue
		}
		list = append(list, drawn{sx, sy, b.Radius * cam.focal / z, z, b})
	}
	// Painter's order, farthest first.
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[j].depth > list[i].depth {
				list[i], list[j] = list[j], list[i]
			}
		}
	}

	for _, d := range list {
		clr := bodyColor(d.body)
		if d.body.Kind == sim.BodyStar {
			// Halo behind the disc.
			halo := clr
			halo.A = 60
			vector.DrawFilledCircle(screen, float32(d.x), float32(d.y), float32(d.radius*1.6), halo, true)
		}
		vector.DrawFilledCircle(screen, float32(d.x), float32(d.y), float32(d.radius), clr, true)
		if d.body.HasRings {
			ring := clr
			ring.A = 120
			vector.StrokeCircle(screen, float32(d.x), float32(d.y), float32(d.radius*1.7), 2, ring, true)
		}
	}
}

// bodyColor resolves a body's palette entry from its texture key or star hex.
func bodyColor(b *sim.Body) color.RGBA {
	if b.Kind == sim.BodyStar {
		return parseHexColor(b.Color)
	}
	switch b.TextureKey {
	case "rock_blue":
		return color.RGBA{90, 120, 190, 255}
	case "rock_red":
		return color.RGBA{190, 90, 70, 255}
	case "rock_grey":
		return color.RGBA{120, 120, 130, 255}
	case "rock_brown":
		return color.RGBA{150, 110, 80, 255}
	case "gas_amber":
		return color.RGBA{220, 170, 90, 255}
	case "gas_violet":
		return color.RGBA{160, 110, 220, 255}
	case "gas_green":
		return color.RGBA{110, 200, 140, 255}
	case "ice_white":
		return color.RGBA{230, 240, 250, 255}
	case "ice_blue":
		return color.RGBA{160, 200, 240, 255}
	case "ocean_teal":
		return color.RGBA{60, 170, 180, 255}
	default:
		return color.RGBA{140, 140, 150, 255}
	}
}

// parseHexColor reads "#rrggbb"; malformed input falls back to white.
func parseHexColor(s string) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{255, 255, 255, 255}
	}
	hex := func(c byte) int {
		switch {
		case c >= '0' && c <= '9':
			return int(c - '0')
		case c >= 'a' && c <= 'f':
			return int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			return int(c-'A') + 10
		}
		return 0
	}
	return color.RGBA{
		R: uint8(hex(s[1])<<4 | hex(s[2])),
		G: uint8(hex(s[3])<<4 | hex(s[4])),
		B: uint8(hex(s[5])<<4 | hex(s[6])),
		A: 255,
	}
}

// drawProjectiles renders beams as glowing segments and torpedoes as dots.
func (r *Renderer) drawProjectiles(screen *ebiten.Image, cam *viewCam, snap *sim.Snapshot) {
	for i := range snap.Beams {
		b := &snap.Beams[i]
		endPos := vmath.V3Add(b.Position, vmath.V3Scale(b.Direction, sim.BeamLength))
		x1, y1, _, ok1 := cam.project(b.Position)
		x2, y2, _, ok2 := cam.project(endPos)
		if !ok1 || !ok2 {
			continue
		}
		clr := colorBeamPlayer
		if b.Owner == sim.ParticipantEnemy {
			clr = colorBeamEnemy
		}
		fade := 1 - b.Age/b.MaxAge
		clr.A = uint8(255 * fade)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 2, clr, true)
	}

	for i := range snap.Torpedoes {
		tp := &snap.Torpedoes[i]
		sx, sy, z, ok := cam.project(tp.Position)
		if !ok {
			continue
		}
		radius := math.Max(1.5, 1.2*cam.focal/z)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), colorTorpedo, true)
	}
}

// drawPlayer renders the player ship with its shield bubble and damage tint.
func (r *Renderer) drawPlayer(screen *ebiten.Image, cam *viewCam, snap *sim.Snapshot) {
	sx, sy, z, ok := cam.project(snap.ShipPosition)
	if !ok {
		return
	}
	scale := shipSpriteScale * cam.focal / z
	r.sprites.DrawShip(screen, r.sprites.Player, sx, sy, scale, 0, snap.PlayerDamageFlash)

	if snap.ShieldOpacity > 0.02 {
		bubble := colorShield
		alpha := snap.ShieldOpacity * (0.35 + 0.4*snap.ShieldPulse)
		bubble.A = uint8(255 * math.Min(alpha, 1))
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(scale*0.85), 2, bubble, true)
	}
}

// drawEnemy renders the hostile, shrunk and spun while breaking up, plus the
// screen-edge marker when it is out of view.
func (r *Renderer) drawEnemy(screen *ebiten.Image, cam *viewCam, snap *sim.Snapshot) {
	if !snap.EnemyAlive && snap.EnemyBreakupScale <= 0 {
		return
	}

	sx, sy, z, ok := cam.project(snap.EnemyPosition)
	onScreen := ok && sx >= 0 && sx <= r.width && sy >= 0 && sy <= r.height
	if onScreen {
		scale := shipSpriteScale * cam.focal / z * snap.EnemyBreakupScale
		r.sprites.DrawShip(screen, r.sprites.Enemy, sx, sy, scale, snap.EnemyBreakupSpin, snap.EnemyDamageFlash)
		if snap.EnemyShieldsUp {
			bubble := colorShield
			bubble.A = 70
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32(scale*0.85), 1.5, bubble, true)
		}
		return
	}
	if !snap.EnemyAlive {
		return
	}
	r.drawOffscreenIndicator(screen, cam, snap.EnemyPosition)
}

// drawOffscreenIndicator draws an edge arrow toward a world position outside
// the viewport so the player can reacquire the target.
func (r *Renderer) drawOffscreenIndicator(screen *ebiten.Image, cam *viewCam, target vmath.Vec3) {
	dx, dy := cam.projectDir(vmath.V3Sub(target, cam.pos))

	// March from screen center to the edge along the direction.
	tx := r.width/2 - indicatorMargin
	ty := r.height/2 - indicatorMargin
	t := math.Inf(1)
	if dx != 0 {
		t = math.Min(t, tx/math.Abs(dx))
	}
	if dy != 0 {
		t = math.Min(t, ty/math.Abs(dy))
	}
	if math.IsInf(t, 1) {
		return
	}
	px := r.width/2 + dx*t
	py := r.height/2 + dy*t

	tipX := px + dx*indicatorLen*0.6
	tipY := py + dy*indicatorLen*0.6
	tailX := px - dx*indicatorLen*0.4
	tailY := py - dy*indicatorLen*0.4
	vector.StrokeLine(screen, float32(tailX), float32(tailY), float32(tipX), float32(tipY), 2, colorIndicator, true)

	wing := math.Pi / 6
	sinA, cosA := math.Sin(wing), math.Cos(wing)
	lx, ly := dx*cosA-dy*sinA, dx*sinA+dy*cosA
	rx, ry := dx*cosA+dy*sinA, -dx*sinA+dy*cosA
	wingLen := indicatorLen * 0.5
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(tipX-lx*wingLen), float32(tipY-ly*wingLen), 2, colorIndicator, true)
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(tipX-rx*wingLen), float32(tipY-ry*wingLen), 2, colorIndicator, true)
}
