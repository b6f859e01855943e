package engine

import "github.com/go-gl/mathgl/mgl64"

// Color4 is an RGBA color with components in [0, 1].
type Color4 struct {
	R, G, B, A float64
}

var (
	ColorYellow = Color4{1, 1, 0, 1}
	ColorRed    = Color4{1, 0, 0, 1}
)

// DebugLine is a world-space debug segment.
type DebugLine struct {
	From  mgl64.Vec3
	To    mgl64.Vec3
	Color Color4
}

// DebugCircle is a world-space debug circle marker.
type DebugCircle struct {
	Center mgl64.Vec3
	Radius float64
	Color  Color4
}

// DebugLineRender buffers debug primitives for one frame. The viewer
// drains the buffer onto its canvas and clears it.
type DebugLineRender struct {
	lines   []DebugLine
	circles []DebugCircle
}

func newDebugLineRender() *DebugLineRender {
	return &DebugLineRender{}
}

// DrawTransformedLine queues a world-space segment.
func (d *DebugLineRender) DrawTransformedLine(from, to mgl64.Vec3, color Color4) {
	d.lines = append(d.lines, DebugLine{From: from, To: to, Color: color})
}

// DrawCircle queues a world-space circle marker.
func (d *DebugLineRender) DrawCircle(center mgl64.Vec3, radius float64, color Color4) {
	d.circles = append(d.circles, DebugCircle{Center: center, Radius: radius, Color: color})
}

// Lines returns the queued segments.
func (d *DebugLineRender) Lines() []DebugLine { return d.lines }

// Circles returns the queued circle markers.
func (d *DebugLineRender) Circles() []DebugCircle { return d.circles }

// Clear drops all queued primitives.
func (d *DebugLineRender) Clear() {
	d.lines = d.lines[:0]
	d.circles = d.circles[:0]
}
