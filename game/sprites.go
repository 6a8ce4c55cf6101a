package game

import (
	"bytes"
	_ "embed"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/ship.svg
var shipSVGData []byte

//go:embed assets/enemy.svg
var enemySVGData []byte

const spriteSize = 48 // rasterization target, pixels

// SpriteSet holds the rasterized ship sprites.
type SpriteSet struct {
	Player *ebiten.Image
	Enemy  *ebiten.Image
}

// LoadSprites rasterizes the embedded SVG hulls. A bad asset logs and falls
// back to a flat procedural placeholder instead of failing startup.
func LoadSprites() *SpriteSet {
	return &SpriteSet{
		Player: loadShipSprite(shipSVGData, color.RGBA{200, 210, 230, 255}),
		Enemy:  loadShipSprite(enemySVGData, color.RGBA{90, 200, 110, 255}),
	}
}

func loadShipSprite(svgData []byte, fallback color.RGBA) *ebiten.Image {
	img, err := svgToImage(svgData, spriteSize, spriteSize)
	if err != nil {
		log.Warn().Err(err).Msg("svg rasterization failed, using placeholder sprite")
		return placeholderShip(fallback)
	}
	return ebiten.NewImageFromImage(img)
}

// svgToImage rasterizes SVG data at the given pixel size.
func svgToImage(svgData []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// placeholderShip draws a simple upward-pointing triangle hull.
func placeholderShip(clr color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(spriteSize, spriteSize)
	half := spriteSize / 2
	for y := 0; y < spriteSize; y++ {
		// Triangle widens toward the bottom.
		halfWidth := y * half / spriteSize
		for x := half - halfWidth; x <= half+halfWidth; x++ {
			img.Set(x, y, clr)
		}
	}
	return img
}

// DrawShip renders a sprite centered at screen coordinates, scaled to a
// target pixel width, spun by rotation, and tinted red by the damage flash.
func (s *SpriteSet) DrawShip(screen *ebiten.Image, sprite *ebiten.Image, x, y, scale, rotation, flash float64) {
	if scale < 1 {
		scale = 1
	}
	w := float64(sprite.Bounds().Dx())
	h := float64(sprite.Bounds().Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(rotation)
	op.GeoM.Scale(scale/w, scale/h)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	if flash > 0 {
		op.ColorScale.Scale(1, float32(1-0.6*flash), float32(1-0.6*flash), 1)
	}
	screen.DrawImage(sprite, op)
}
