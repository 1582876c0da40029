package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwind-labs/sitecms/internal/models"
)

type recordingCanvas struct {
	width, height float64
	calls         []string
	texts         []string
	fills         []color.Color
}

func newRecorder(width, height int) *recordingCanvas {
	return &recordingCanvas{width: float64(width), height: float64(height)}
}

func (r *recordingCanvas) rec(format string, v ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, v...))
}

func (r *recordingCanvas) Size() (float64, float64) { return r.width, r.height }
func (r *recordingCanvas) Clear()                   { r.rec("clear") }
func (r *recordingCanvas) BeginPath()               { r.rec("beginPath") }
func (r *recordingCanvas) MoveTo(x, y float64)      { r.rec("moveTo %.1f %.1f", x, y) }
func (r *recordingCanvas) LineTo(x, y float64)      { r.rec("lineTo %.1f %.1f", x, y) }
func (r *recordingCanvas) ClosePath()               { r.rec("closePath") }
func (r *recordingCanvas) Arc(x, y, rad, a0, a1 float64) {
	r.rec("arc %.1f %.1f %.1f", x, y, rad)
}
func (r *recordingCanvas) SetFillStyle(c color.Color) {
	r.fills = append(r.fills, c)
	r.rec("fillStyle")
}
func (r *recordingCanvas) SetStrokeStyle(color.Color)   { r.rec("strokeStyle") }
func (r *recordingCanvas) SetLineWidth(w float64)       { r.rec("lineWidth %.0f", w) }
func (r *recordingCanvas) SetFont(size float64, b bool) { r.rec("font %.0f %v", size, b) }
func (r *recordingCanvas) SetTextAlign(TextAlign)       { r.rec("textAlign") }
func (r *recordingCanvas) SetTextBaseline(TextBaseline) { r.rec("textBaseline") }
func (r *recordingCanvas) Fill()                        { r.rec("fill") }
func (r *recordingCanvas) Stroke()                      { r.rec("stroke") }
func (r *recordingCanvas) FillRect(x, y, w, h float64) {
	r.rec("fillRect %.0f %.0f %.0f %.0f", x, y, w, h)
}
func (r *recordingCanvas) FillText(s string, x, y float64) {
	r.texts = append(r.texts, s)
	r.rec("fillText %s %.1f %.1f", s, x, y)
}

func (r *recordingCanvas) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func TestHex(t *testing.T) {
	c, err := Hex("#374151")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}, c)

	c, err = Hex("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = Hex("#12")
	assert.Error(t, err)
	_, err = Hex("#zzzzzz")
	assert.Error(t, err)
}

func TestDrawLine(t *testing.T) {
	t.Run("empty data draws nothing", func(t *testing.T) {
		c := newRecorder(600, 300)
		res := DrawLine(c, nil)
		assert.False(t, res.Drawn())
		assert.Equal(t, NoVisitorData, res.Placeholder)
		assert.Empty(t, c.calls)
	})

	t.Run("scales to max plus ten percent", func(t *testing.T) {
		c := newRecorder(600, 300)
		points := []LinePoint{{"1/1", 0}, {"2/1", 50}, {"3/1", 100}}
		res := DrawLine(c, points)
		assert.True(t, res.Drawn())

		// y labels run from the top grid line down to zero
		assert.Equal(t, []string{"110", "88", "66", "44", "22", "0"}, c.texts[:6])
		assert.Equal(t, []string{"1/1", "2/1", "3/1"}, c.texts[6:])
		assert.Equal(t, 3, c.count("arc"))
		assert.Contains(t, c.calls, "moveTo 40.0 260.0")
		assert.Contains(t, c.calls, "lineTo 560.0 40.0")
	})

	t.Run("all zero uses a hundred", func(t *testing.T) {
		c := newRecorder(600, 300)
		DrawLine(c, []LinePoint{{"1/1", 0}, {"2/1", 0}})
		assert.Equal(t, "100", c.texts[0])
	})

	t.Run("single point sits on the y axis", func(t *testing.T) {
		c := newRecorder(600, 300)
		res := DrawLine(c, []LinePoint{{"5/3", 10}})
		assert.True(t, res.Drawn())
		assert.Contains(t, c.calls, "arc 40.0 60.0 4.0")
	})

	t.Run("labels at most six dates", func(t *testing.T) {
		c := newRecorder(600, 300)
		points := make([]LinePoint, 30)
		for i := range points {
			points[i] = LinePoint{Label: fmt.Sprintf("%d/6", i+1), Value: float64(i)}
		}
		DrawLine(c, points)
		assert.Equal(t, []string{"1/6", "6/6", "11/6", "16/6", "21/6", "26/6"}, c.texts[6:])
	})
}

func TestVisitorSeries(t *testing.T) {
	points := VisitorSeries([]models.VisitorPoint{
		{Date: "2024-03-05", Count: 7},
		{Date: "bogus", Count: 1},
	})
	assert.Equal(t, []LinePoint{{Label: "5/3", Value: 7}, {Label: "bogus", Value: 1}}, points)
}

func TestDrawPie(t *testing.T) {
	t.Run("empty data draws nothing", func(t *testing.T) {
		c := newRecorder(400, 300)
		res := DrawPie(c, []PieSlice{})
		assert.Equal(t, NoEnquiryData, res.Placeholder)
		assert.Empty(t, c.calls)
	})

	t.Run("wedges labels and legend", func(t *testing.T) {
		c := newRecorder(400, 300)
		res := DrawPie(c, []PieSlice{
			{Label: "Web", Value: 75},
			{Label: "Mobile", Value: 25, Color: color.RGBA{R: 255, A: 255}},
		})
		assert.True(t, res.Drawn())
		assert.Equal(t, "75%", c.texts[0])
		assert.ElementsMatch(t, []string{"75%", "25%", "Web (75%)", "Mobile (25%)"}, c.texts)
		assert.Equal(t, 4, c.count("arc"))
		assert.Contains(t, c.calls, "arc 200.0 150.0 110.0")
		assert.Contains(t, c.calls, "fillRect 20 220 16 16")
		assert.Contains(t, c.calls, "fillRect 20 244 16 16")
		// first wedge takes the palette, second keeps its own colour
		assert.Equal(t, DefaultPalette[0], c.fills[0])
		assert.Contains(t, c.fills, color.Color(color.RGBA{R: 255, A: 255}))
	})

	t.Run("zero total draws legend only", func(t *testing.T) {
		c := newRecorder(400, 300)
		res := DrawPie(c, []PieSlice{{Label: "Web", Value: 0}})
		assert.True(t, res.Drawn())
		assert.Zero(t, c.count("arc"))
		assert.Equal(t, []string{"Web (0%)"}, c.texts)
	})

	t.Run("palette cycles", func(t *testing.T) {
		slices := make([]PieSlice, 6)
		for i := range slices {
			slices[i] = PieSlice{Label: fmt.Sprint(i), Value: 1}
		}
		c := newRecorder(400, 300)
		DrawPie(c, slices)
		var legend []color.Color
		for i, call := range c.calls {
			if strings.HasPrefix(call, "fillRect") {
				// the fill style set right before each legend swatch
				n := 0
				for _, prev := range c.calls[:i] {
					if prev == "fillStyle" {
						n++
					}
				}
				legend = append(legend, c.fills[n-1])
			}
		}
		require.Len(t, legend, 6)
		assert.Equal(t, DefaultPalette[0], legend[5])
	})
}

func TestEnquirySlices(t *testing.T) {
	slices := EnquirySlices([]models.EnquiryType{
		{Label: "Web", Value: 60, Color: "#000000"},
		{Label: "Other", Value: 40, Color: ""},
	})
	require.Len(t, slices, 2)
	assert.Equal(t, color.RGBA{A: 255}, slices[0].Color)
	assert.Nil(t, slices[1].Color)
}

func TestPanelResizeRedraws(t *testing.T) {
	var canvases []*recordingCanvas
	p := NewPanel(0, func(w, h int) Canvas {
		c := newRecorder(w, h)
		canvases = append(canvases, c)
		return c
	}, func(c Canvas) Result {
		return DrawLine(c, []LinePoint{{"1/1", 3}, {"2/1", 4}})
	})
	assert.Nil(t, p.Canvas())

	res := p.Render(600)
	assert.True(t, res.Drawn())
	res = p.Resize(900)
	assert.True(t, res.Drawn())

	require.Len(t, canvases, 2)
	assert.NotEmpty(t, canvases[1].calls)
	w, h := p.Canvas().Size()
	assert.Equal(t, 900.0, w)
	assert.Equal(t, float64(DefaultHeight), h)
	assert.Contains(t, canvases[1].calls, "lineTo 860.0 260.0")
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	res, err := RenderPNG(&buf, 320, 200, func(c Canvas) Result {
		return DrawPie(c, []PieSlice{{Label: "Web", Value: 2}, {Label: "SEO", Value: 1}})
	})
	require.NoError(t, err)
	assert.True(t, res.Drawn())

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	buf.Reset()
	res, err = RenderPNG(&buf, 320, 200, func(c Canvas) Result { return DrawLine(c, nil) })
	require.NoError(t, err)
	assert.Equal(t, NoVisitorData, res.Placeholder)
	assert.Zero(t, buf.Len())
}
