package chart

import "sync"

// DefaultHeight is the fixed chart height used by the dashboard
const DefaultHeight = 300

// Panel owns a canvas sized to its container and redraws whenever that size changes.
type Panel struct {
	mu        sync.Mutex
	height    int
	newCanvas func(width, height int) Canvas
	draw      func(Canvas) Result
	canvas    Canvas
	result    Result
}

// NewPanel creates a panel of fixed height. newCanvas allocates a surface, draw paints it.
func NewPanel(height int, newCanvas func(width, height int) Canvas, draw func(Canvas) Result) *Panel {
	if height <= 0 {
		height = DefaultHeight
	}
	return &Panel{height: height, newCanvas: newCanvas, draw: draw}
}

// Render allocates a canvas of the given width and draws into it.
func (p *Panel) Render(width int) Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.canvas = p.newCanvas(width, p.height)
	p.result = p.draw(p.canvas)
	return p.result
}

// Resize re-creates the surface at the new width and redraws the chart onto it.
func (p *Panel) Resize(width int) Result {
	return p.Render(width)
}

// Canvas returns the current surface, nil before the first Render.
func (p *Panel) Canvas() Canvas {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canvas
}

// Result returns the outcome of the last draw.
func (p *Panel) Result() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}
