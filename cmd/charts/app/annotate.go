package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	dpi      float64 = 72
	fontSize float64 = 14
	titleScale       = 1.5
)

// Annotator draws chart text with a shared freetype context.
type Annotator struct {
	context *freetype.Context
}

func NewAnnotator() (*Annotator, error) {
	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	context := freetype.NewContext()
	context.SetDPI(dpi)
	context.SetFont(parsedFont)
	context.SetFontSize(fontSize)
	context.SetHinting(font.HintingFull)
	context.SetSrc(image.White)

	return &Annotator{context: context}, nil
}

func (a *Annotator) Bind(img *image.RGBA) {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)
}

// Label draws a single line of text with its baseline at (x, y).
func (a *Annotator) Label(x, y int, text string) {
	a.context.SetFontSize(fontSize)
	_, _ = a.context.DrawString(text, freetype.Pt(x, y))
}

// Title draws the chart title in a larger size.
func (a *Annotator) Title(x, y int, text string) {
	a.context.SetFontSize(fontSize * titleScale)
	_, _ = a.context.DrawString(text, freetype.Pt(x, y))
	a.context.SetFontSize(fontSize)
}

// LineHeight is the vertical advance for stacked labels.
func (a *Annotator) LineHeight() int {
	return a.context.PointToFixed(fontSize * 1.4).Ceil()
}

// SetColor changes the text color for subsequent draws.
func (a *Annotator) SetColor(c color.Color) {
	a.context.SetSrc(image.NewUniform(c))
}
