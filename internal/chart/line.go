package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/northwind-labs/sitecms/internal/models"
)

// NoVisitorData is the line chart placeholder
const NoVisitorData = "No visitor data available"

const (
	linePadding   = 40.0
	lineGridLines = 5
	markerRadius  = 4.0
)

var (
	axisColor  = mustHex("#e5e7eb")
	gridColor  = mustHex("#f3f4f6")
	labelColor = mustHex("#9ca3af")
	inkColor   = mustHex("#000000")
	paperColor = mustHex("#ffffff")
	areaColor  = color.NRGBA{A: 26}
)

// LinePoint is one sample of the line chart
type LinePoint struct {
	Label string
	Value float64
}

// VisitorSeries converts dashboard visitor data into line points labelled "d/m".
func VisitorSeries(data []models.VisitorPoint) []LinePoint {
	points := make([]LinePoint, len(data))
	for i, d := range data {
		label := d.Date
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			label = fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
		}
		points[i] = LinePoint{Label: label, Value: float64(d.Count)}
	}
	return points
}

// DrawLine renders an area line chart of points. Empty input draws nothing.
func DrawLine(c Canvas, points []LinePoint) Result {
	if len(points) == 0 {
		return Result{Placeholder: NoVisitorData}
	}

	width, height := c.Size()
	chartWidth := width - linePadding*2
	chartHeight := height - linePadding*2

	maxValue := 0.0
	for _, p := range points {
		maxValue = math.Max(maxValue, p.Value)
	}
	maxValue *= 1.1
	if maxValue == 0 {
		maxValue = 100
	}

	xAt := func(i int) float64 {
		if len(points) == 1 {
			return linePadding
		}
		return linePadding + chartWidth/float64(len(points)-1)*float64(i)
	}
	yAt := func(v float64) float64 {
		return linePadding + chartHeight - v/maxValue*chartHeight
	}

	c.Clear()

	// axes
	c.BeginPath()
	c.MoveTo(linePadding, linePadding)
	c.LineTo(linePadding, height-linePadding)
	c.LineTo(width-linePadding, height-linePadding)
	c.SetStrokeStyle(axisColor)
	c.Stroke()

	// grid and y labels
	c.BeginPath()
	c.SetFillStyle(labelColor)
	c.SetFont(12, false)
	c.SetTextAlign(AlignRight)
	c.SetTextBaseline(BaselineAlphabetic)
	for i := 0; i <= lineGridLines; i++ {
		y := linePadding + chartHeight/lineGridLines*float64(i)
		c.MoveTo(linePadding, y)
		c.LineTo(width-linePadding, y)
		label := math.Round(maxValue - maxValue/lineGridLines*float64(i))
		c.FillText(strconv.FormatFloat(label, 'f', 0, 64), linePadding-10, y+4)
	}
	c.SetStrokeStyle(gridColor)
	c.Stroke()

	// x labels
	c.SetFillStyle(labelColor)
	c.SetTextAlign(AlignCenter)
	step := int(math.Ceil(float64(len(points)) / 6))
	for i := 0; i < len(points); i += step {
		c.FillText(points[i].Label, xAt(i), height-linePadding+20)
	}

	// line
	c.BeginPath()
	for i, p := range points {
		if i == 0 {
			c.MoveTo(xAt(i), yAt(p.Value))
		} else {
			c.LineTo(xAt(i), yAt(p.Value))
		}
	}
	c.SetStrokeStyle(inkColor)
	c.SetLineWidth(2)
	c.Stroke()

	// area under the line
	c.LineTo(linePadding+chartWidth, height-linePadding)
	c.LineTo(linePadding, height-linePadding)
	c.ClosePath()
	c.SetFillStyle(areaColor)
	c.Fill()

	// markers
	for i, p := range points {
		c.BeginPath()
		c.Arc(xAt(i), yAt(p.Value), markerRadius, 0, 2*math.Pi)
		c.SetFillStyle(inkColor)
		c.Fill()
		c.SetStrokeStyle(paperColor)
		c.SetLineWidth(2)
		c.Stroke()
	}

	return Result{}
}
