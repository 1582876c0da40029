package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/northwind-labs/sitecms/internal/models"
)

// NoEnquiryData is the pie chart placeholder
const NoEnquiryData = "No enquiry data available"

// DefaultPalette colours wedges that carry no colour of their own
var DefaultPalette = []color.Color{
	mustHex("#000000"),
	mustHex("#374151"),
	mustHex("#6b7280"),
	mustHex("#9ca3af"),
	mustHex("#d1d5db"),
}

// PieSlice is one wedge. A nil Color takes the palette colour of its position.
type PieSlice struct {
	Label string
	Value float64
	Color color.Color
}

// EnquirySlices converts the dashboard enquiry breakdown into wedges.
func EnquirySlices(types []models.EnquiryType) []PieSlice {
	slices := make([]PieSlice, len(types))
	for i, t := range types {
		slices[i] = PieSlice{Label: t.Label, Value: t.Value}
		if c, err := Hex(t.Color); err == nil {
			slices[i].Color = c
		}
	}
	return slices
}

// DrawPie renders slices clockwise from angle 0 in input order, with a legend in the
// lower left. Empty input draws nothing; a zero total draws the legend only.
func DrawPie(c Canvas, slices []PieSlice) Result {
	if len(slices) == 0 {
		return Result{Placeholder: NoEnquiryData}
	}

	colored := make([]PieSlice, len(slices))
	total := 0.0
	for i, s := range slices {
		if s.Color == nil {
			s.Color = DefaultPalette[i%len(DefaultPalette)]
		}
		colored[i] = s
		total += s.Value
	}

	width, height := c.Size()
	cx, cy := width/2, height/2
	radius := math.Max(math.Min(cx, cy)-40, 0)

	c.Clear()

	if total > 0 {
		start := 0.0
		for _, s := range colored {
			sweep := s.Value / total * 2 * math.Pi
			end := start + sweep

			c.BeginPath()
			c.MoveTo(cx, cy)
			c.Arc(cx, cy, radius, start, end)
			c.ClosePath()
			c.SetFillStyle(s.Color)
			c.Fill()

			c.BeginPath()
			c.MoveTo(cx, cy)
			c.Arc(cx, cy, radius, start, end)
			c.ClosePath()
			c.SetStrokeStyle(paperColor)
			c.SetLineWidth(2)
			c.Stroke()

			mid := start + sweep/2
			c.SetFillStyle(paperColor)
			c.SetFont(14, true)
			c.SetTextAlign(AlignCenter)
			c.SetTextBaseline(BaselineMiddle)
			c.FillText(fmt.Sprintf("%.0f%%", math.Round(s.Value/total*100)),
				cx+math.Cos(mid)*radius*0.7, cy+math.Sin(mid)*radius*0.7)

			start = end
		}
	}

	legendX := 20.0
	legendY := height - 80
	for _, s := range colored {
		c.SetFillStyle(s.Color)
		c.FillRect(legendX, legendY, 16, 16)

		c.SetFillStyle(inkColor)
		c.SetFont(14, false)
		c.SetTextAlign(AlignLeft)
		c.SetTextBaseline(BaselineMiddle)
		c.FillText(fmt.Sprintf("%s (%s%%)", s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64)), legendX+24, legendY+8)

		legendY += 24
	}

	return Result{}
}
