// Package terrain paints a rolling height field into chunks.
package terrain

import (
	"github.com/ojrac/opensimplex-go"

	"voxplace/internal/chunk"
)

// Palette codes used for the terrain bands.
const (
	Grass uint8 = 8
	Dirt  uint8 = 26
	Stone uint8 = 29
)

// DirtDepth is how many cells of dirt sit under the grass.
const DirtDepth = 2

// Params shape the height field.
type Params struct {
	Seed        int64   `json:"seed" yaml:"seed"`
	BaseHeight  int     `json:"base_height" yaml:"base_height"`
	Amplitude   float32 `json:"amplitude" yaml:"amplitude"`
	Octaves     int     `json:"octaves" yaml:"octaves"`
	Lacunarity  float32 `json:"lacunarity" yaml:"lacunarity"`
	Persistence float32 `json:"persistence" yaml:"persistence"`
	Scale       float32 `json:"scale" yaml:"scale"`
}

func DefaultParams() Params {
	return Params{
		Seed:        123,
		BaseHeight:  5,
		Amplitude:   4,
		Octaves:     2,
		Lacunarity:  1.5,
		Persistence: 0.5,
		Scale:       24,
	}
}

type Generator struct {
	p     Params
	noise opensimplex.Noise32
}

func New(p Params) *Generator {
	return &Generator{p: p, noise: opensimplex.New32(p.Seed)}
}

// HeightAt returns the surface height at world column (wx, wz) before it
// is clamped to a chunk.
func (g *Generator) HeightAt(wx, wz int) int {
	x := float32(wx)
	z := float32(wz)
	amp := g.p.Amplitude

	val := float32(0)
	for i := 0; i < g.p.Octaves; i++ {
		val += g.noise.Eval2(x/g.p.Scale, z/g.p.Scale) * amp
		x *= g.p.Lacunarity
		z *= g.p.Lacunarity
		amp *= g.p.Persistence
	}
	return g.p.BaseHeight + int(val)
}

// Fill writes the height field into c: grass on top, DirtDepth cells of dirt,
// stone down to the bedrock layer. Cells above the surface are left alone.
func (g *Generator) Fill(c *chunk.Chunk) {
	d := c.Dims()
	origin := c.Coord()
	for x := 0; x < d.X; x++ {
		for z := 0; z < d.Z; z++ {
			h := g.HeightAt(origin.X*d.X+x, origin.Z*d.Z+z)
			h = min(max(h, chunk.BedrockLayer), d.Y-1)

			for y := chunk.BedrockLayer + 1; y <= h; y++ {
				code := Stone
				switch {
				case y == h:
					code = Grass
				case y >= h-DirtDepth:
					code = Dirt
				}
				c.Set(x, y, z, code)
			}
		}
	}
}
