package app

import (
	"image"
	"image/color"
	"image/draw"
)

// canvas wraps an RGBA image with the primitive fills the charts are
// built from.
type canvas struct {
	img *image.RGBA
}

func newCanvas(width, height int) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	return &canvas{img: img}
}

func (c *canvas) fillRect(x0, y0, x1, y1 int, col color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	draw.Draw(c.img, image.Rect(x0, y0, x1, y1), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) hLine(x0, x1, y int, col color.Color) {
	c.fillRect(x0, y, x1, y+1, col)
}

func (c *canvas) vLine(x, y0, y1 int, col color.Color) {
	c.fillRect(x, y0, x+1, y1, col)
}

// fillCircle draws a filled disc, used for scatter points.
func (c *canvas) fillCircle(cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.img.Set(cx+dx, cy+dy, col)
			}
		}
	}
}
