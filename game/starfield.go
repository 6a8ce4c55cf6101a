package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/alice-viola/NCC-1701-D/vmath"
)

const starDistance = 5000.0 // far enough that translation never parallaxes

// Starfield is the infinite backdrop: stars are fixed unit directions that
// rotate with the camera but never translate, unlike planets which hold
// world positions.
type Starfield struct {
	dirs  []vmath.Vec3
	size  []float64
	shade []uint8
}

// NewStarfield scatters count stars uniformly over the sphere. The fixed
// seed keeps the sky identical between runs.
func NewStarfield(count int) *Starfield {
	rng := rand.New(rand.NewSource(1701))
	s := &Starfield{
		dirs:  make([]vmath.Vec3, count),
		size:  make([]float64, count),
		shade: make([]uint8, count),
	}
	for i := 0; i < count; i++ {
		// Uniform sphere sampling via z and azimuth.
		z := rng.Float64()*2 - 1
		theta := rng.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		s.dirs[i] = vmath.Vec3{X: r * math.Cos(theta), Y: z, Z: r * math.Sin(theta)}
		s.size[i] = 0.6 + rng.Float64()*1.3
		s.shade[i] = uint8(110 + rng.Intn(146))
	}
	return s
}

// Draw renders the backdrop. At warp the stars stretch into streaks flowing
// away from the view axis.
func (s *Starfield) Draw(screen *ebiten.Image, cam *viewCam, warpRamp float64) {
	for i, dir := range s.dirs {
		p := vmath.V3Add(cam.pos, vmath.V3Scale(dir, starDistance))
		sx, sy, _, ok := cam.project(p)
		if !ok {
			continue
		}
		v := s.shade[i]
		clr := color.RGBA{v, v, v, 255}

		if warpRamp > 0.05 {
			// Streak radially outward from screen center, longer with ramp.
			ox := sx - cam.cx
			oy := sy - cam.cy
			m := math.Hypot(ox, oy)
			if m > 1 {
				stretch := 4 + warpRamp*40*(m/cam.cy)
				ex := sx + ox/m*stretch
				ey := sy + oy/m*stretch
				vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), float32(s.size[i]), clr, false)
				continue
			}
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(s.size[i]), clr, false)
	}
}
