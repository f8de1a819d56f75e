// Package palette maps cell codes to display colours.
package palette

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"neilpa.me/go-stbi"
)

var ErrEmptyImage = errors.New("palette: image has no pixels")

// Palette holds one colour per cell code. Code 0 is air and never drawn.
type Palette [256]color.RGBA

// place holds the 32 colours of the 2022 r/place canvas, in canvas order.
var place = [32]uint32{
	0x6D001A, 0xBE0039, 0xFF4500, 0xFFA800, 0xFFD635, 0xFFF8B8, 0x00A368, 0x00CC78,
	0x7EED56, 0x00756F, 0x009EAA, 0x00CCC0, 0x2450A4, 0x3690EA, 0x51E9F4, 0x493AC1,
	0x6A5CFF, 0x94B3FF, 0x811E9F, 0xB44AC0, 0xE4ABFF, 0xDE107F, 0xFF3881, 0xFF99AA,
	0x6D482F, 0x9C6926, 0xFFB470, 0x000000, 0x515252, 0x898D90, 0xD4D7D9, 0xFFFFFF,
}

// PlaceColors is the number of colours in the default palette.
const PlaceColors = len(place)

// Default returns the r/place palette. Codes past the last colour wrap around.
func Default() *Palette {
	var p Palette
	for i := range p {
		v := place[i%len(place)]
		p[i] = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
	}
	return &p
}

// RGB returns the colour of code as floats in [0, 1].
func (p *Palette) RGB(code uint8) mgl32.Vec3 {
	c := p[code]
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Texels returns the palette as 256 RGBA pixels for upload as a 1D lookup texture.
func (p *Palette) Texels() []uint8 {
	out := make([]uint8, 0, len(p)*4)
	for _, c := range p {
		out = append(out, c.R, c.G, c.B, c.A)
	}
	return out
}

// Load reads a palette strip image: the pixel in column i of the first row
// is the colour of code i. Codes beyond the image width keep the default colour.
func Load(path string) (*Palette, error) {
	img, err := stbi.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load palette %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, path)
	}

	p := Default()
	for i := 0; i < b.Dx() && i < len(p); i++ {
		p[i] = img.RGBAAt(b.Min.X+i, b.Min.Y)
		p[i].A = 0xFF
	}
	return p, nil
}

// Nearest returns the code in 1..limit whose colour is closest to c in Lab
// space. Fully transparent colours map to 0.
func (p *Palette) Nearest(c color.Color, limit uint8) uint8 {
	want, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}

	best, dist := uint8(0), 0.0
	for code := 1; code <= int(limit); code++ {
		have, _ := colorful.MakeColor(p[code])
		if d := want.DistanceLab(have); best == 0 || d < dist {
			best, dist = uint8(code), d
		}
	}
	return best
}
