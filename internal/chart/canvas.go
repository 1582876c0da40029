// Package chart draws the dashboard line and pie charts onto a 2D canvas.
package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// TextAlign is the horizontal anchor of FillText
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline is the vertical anchor of FillText
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineMiddle
	BaselineTop
)

// Canvas is a 2D drawing surface with path semantics: Fill and Stroke paint the
// current path without clearing it, BeginPath starts a new one.
type Canvas interface {
	Size() (width, height float64)
	Clear()

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	ClosePath()

	SetFillStyle(c color.Color)
	SetStrokeStyle(c color.Color)
	SetLineWidth(w float64)
	SetFont(size float64, bold bool)
	SetTextAlign(a TextAlign)
	SetTextBaseline(b TextBaseline)

	Fill()
	Stroke()
	FillRect(x, y, w, h float64)
	FillText(text string, x, y float64)
}

// Result tells the caller what was rendered. A non-empty Placeholder means nothing
// was drawn and the text should be shown instead.
type Result struct {
	Placeholder string
}

// Drawn reports whether the chart was painted
func (r Result) Drawn() bool {
	return r.Placeholder == ""
}

// Hex parses "#rrggbb" or "#rgb" into an opaque colour.
func Hex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustHex(s string) color.RGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
