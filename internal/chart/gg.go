package chart

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontsOnce           sync.Once
	regularTTF, boldTTF *truetype.Font
	fontErr             error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularTTF, fontErr = truetype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		boldTTF, fontErr = truetype.Parse(gobold.TTF)
	})
	return fontErr
}

// ImageCanvas is a Canvas backed by an in-memory RGBA image.
type ImageCanvas struct {
	dc       *gg.Context
	fill     color.Color
	stroke   color.Color
	align    TextAlign
	baseline TextBaseline
	faces    map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewImageCanvas allocates a transparent width x height surface.
func NewImageCanvas(width, height int) *ImageCanvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &ImageCanvas{
		dc:     gg.NewContext(width, height),
		fill:   color.Black,
		stroke: color.Black,
		faces:  make(map[faceKey]font.Face),
	}
	c.dc.SetLineWidth(1)
	c.SetFont(10, false)
	return c
}

// NewCanvas adapts NewImageCanvas to Panel's factory signature.
func NewCanvas(width, height int) Canvas {
	return NewImageCanvas(width, height)
}

func (c *ImageCanvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

func (c *ImageCanvas) Clear() {
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
	c.applyStyles()
}

func (c *ImageCanvas) BeginPath()          { c.dc.ClearPath() }
func (c *ImageCanvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *ImageCanvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *ImageCanvas) ClosePath()          { c.dc.ClosePath() }

func (c *ImageCanvas) Arc(x, y, radius, startAngle, endAngle float64) {
	c.dc.DrawArc(x, y, radius, startAngle, endAngle)
}

func (c *ImageCanvas) SetFillStyle(col color.Color) {
	c.fill = col
	c.dc.SetFillStyle(gg.NewSolidPattern(col))
}

func (c *ImageCanvas) SetStrokeStyle(col color.Color) {
	c.stroke = col
	c.dc.SetStrokeStyle(gg.NewSolidPattern(col))
}

func (c *ImageCanvas) SetLineWidth(w float64) { c.dc.SetLineWidth(w) }

// SetFont selects Go Regular or Go Bold at size points. Faces are cached per canvas.
func (c *ImageCanvas) SetFont(size float64, bold bool) {
	if err := loadFonts(); err != nil {
		return
	}
	key := faceKey{size: size, bold: bold}
	face, ok := c.faces[key]
	if !ok {
		f := regularTTF
		if bold {
			f = boldTTF
		}
		face = truetype.NewFace(f, &truetype.Options{Size: size})
		c.faces[key] = face
	}
	c.dc.SetFontFace(face)
}

func (c *ImageCanvas) SetTextAlign(a TextAlign)       { c.align = a }
func (c *ImageCanvas) SetTextBaseline(b TextBaseline) { c.baseline = b }

func (c *ImageCanvas) Fill()   { c.dc.FillPreserve() }
func (c *ImageCanvas) Stroke() { c.dc.StrokePreserve() }

// FillRect paints a rectangle. The current path is discarded.
func (c *ImageCanvas) FillRect(x, y, w, h float64) {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *ImageCanvas) FillText(text string, x, y float64) {
	var ax, ay float64
	switch c.align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	switch c.baseline {
	case BaselineMiddle:
		ay = 0.5
	case BaselineTop:
		ay = 1
	}
	// text is drawn with the solid colour, not the fill pattern
	c.dc.SetColor(c.fill)
	c.dc.DrawStringAnchored(text, x, y, ax, ay)
	c.applyStyles()
}

func (c *ImageCanvas) applyStyles() {
	c.dc.SetFillStyle(gg.NewSolidPattern(c.fill))
	c.dc.SetStrokeStyle(gg.NewSolidPattern(c.stroke))
}

// Image returns the rendered surface
func (c *ImageCanvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the surface as PNG
func (c *ImageCanvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

// RenderPNG draws onto a fresh width x height surface and writes it as PNG. When draw
// returns a placeholder nothing is written.
func RenderPNG(w io.Writer, width, height int, draw func(Canvas) Result) (Result, error) {
	c := NewImageCanvas(width, height)
	res := draw(c)
	if !res.Drawn() {
		return res, nil
	}
	return res, c.EncodePNG(w)
}
