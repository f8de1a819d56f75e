// Package stamp paints pictures into the world as flat layers of cells,
// one cell per pixel.
package stamp

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"voxplace/internal/palette"
	"voxplace/internal/world"
)

// Options place a stamp. The picture covers Width x Depth cells starting
// at world column (X, Z), all at height Y. Image rows run along +Z.
type Options struct {
	Path  string `json:"path" yaml:"path"`
	X     int    `json:"x" yaml:"x"`
	Y     int    `json:"y" yaml:"y"`
	Z     int    `json:"z" yaml:"z"`
	Width int    `json:"width" yaml:"width"`
	Depth int    `json:"depth" yaml:"depth"`
}

// Load opens the image at path, centre-crops it to the target aspect and
// scales it to width x depth pixels.
func Load(path string, width, depth int) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stamp %s: %w", path, err)
	}
	return imaging.Fill(img, width, depth, imaging.Center, imaging.NearestNeighbor), nil
}

// Quantize maps every pixel to the nearest palette code up to limit.
// Transparent pixels become 0 and are not painted.
func Quantize(img image.Image, p *palette.Palette, limit uint8) [][]uint8 {
	b := img.Bounds()
	codes := make([][]uint8, b.Dy())
	for row := range codes {
		codes[row] = make([]uint8, b.Dx())
		for col := range codes[row] {
			codes[row][col] = p.Nearest(img.At(b.Min.X+col, b.Min.Y+row), limit)
		}
	}
	return codes
}

// Paint writes codes into r with row i at z+i and column j at x+j.
// It returns how many cells were written.
func Paint(r *world.Registry, codes [][]uint8, x, y, z int) int {
	n := 0
	for row, line := range codes {
		for col, code := range line {
			if code == 0 {
				continue
			}
			if r.SetBlock(x+col, y, z+row, code) {
				n++
			}
		}
	}
	return n
}

// Apply loads, quantises and paints the stamp described by o.
func Apply(r *world.Registry, o Options, p *palette.Palette, limit uint8) (int, error) {
	img, err := Load(o.Path, o.Width, o.Depth)
	if err != nil {
		return 0, err
	}
	return Paint(r, Quantize(img, p, limit), o.X, o.Y, o.Z), nil
}
