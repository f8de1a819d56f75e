package stats

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Overlay rasterises text lines into an RGBA image for the HUD texture.
type Overlay struct {
	ctx  *freetype.Context
	dst  *image.RGBA
	size float64
}

// NewOverlay prepares a width x height canvas using the Go regular font at size points.
func NewOverlay(width, height int, size float64) (*Overlay, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse overlay font: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetDst(dst)
	ctx.SetClip(dst.Bounds())
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)
	return &Overlay{ctx: ctx, dst: dst, size: size}, nil
}

// Draw clears the canvas and writes lines top to bottom. The returned
// image is reused by the next call.
func (o *Overlay) Draw(lines []string) (*image.RGBA, error) {
	draw.Draw(o.dst, o.dst.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)

	step := int(o.size * 1.4)
	pt := freetype.Pt(4, step)
	for _, line := range lines {
		if _, err := o.ctx.DrawString(line, pt); err != nil {
			return nil, fmt.Errorf("draw overlay text: %w", err)
		}
		pt.Y += o.ctx.PointToFixed(o.size * 1.4)
	}
	return o.dst, nil
}
