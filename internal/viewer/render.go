package viewer

import (
	"fmt"
	"strings"

	"github.com/san-kum/contactlab/internal/viz"
)

// view window in world units, side-on (x across, y up)
const (
	viewMinX = -2.0
	viewMaxX = 2.0
	viewMinY = -0.25
	viewMaxY = 2.25
)

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + viz.Title.Render("contactlab") + "  " + viz.Subtle.Render("physics scene contact validation") + "\n\n")
	b.WriteString("  " + viz.MetricLabel.Render(fmt.Sprintf("dataset: %s (%d scenes)", m.dataset.Name, len(m.dataset.Scenes))) + "\n\n")

	for i, sc := range m.dataset.Scenes {
		cursor := "  "
		line := sc.ID
		detail := fmt.Sprintf("%d rigid, %d articulated", len(sc.RigidObjects), len(sc.ArticulatedObjects))
		if i == m.cursor {
			cursor = viz.Title.Render("> ")
			line = viz.Title.Render(line)
		} else {
			line = viz.Subtle.Render(line)
		}
		b.WriteString("  " + cursor + line + "  " + viz.MetricLabel.Render(detail) + "\n")
	}

	b.WriteString("\n  " + viz.KeyHint.Render("↑/↓ select · enter open · q quit") + "\n")
	return b.String()
}

func (m model) viewSim() string {
	if m.sim == nil {
		return ""
	}

	canvasW := m.width - 4
	if canvasW < 20 {
		canvasW = 20
	}
	if canvasW > 100 {
		canvasW = 100
	}
	canvasH := m.height - 12
	if canvasH < 8 {
		canvasH = 8
	}

	canvas := viz.NewCanvas(canvasW, canvasH)
	m.drawWorld(canvas)

	var b strings.Builder
	b.WriteString("\n")

	status := viz.StatusPaused.Render("paused")
	if m.simulating {
		status = viz.StatusRunning.Render(fmt.Sprintf("simulating x%.2g", m.speed))
	}
	header := fmt.Sprintf("  %s  %s  %s",
		viz.Title.Render("scene "+m.sceneID),
		status,
		viz.MetricLabel.Render(fmt.Sprintf("t=%.2fs", m.simTime)))
	b.WriteString(header + "\n")

	active := 0
	for _, cp := range m.sim.ContactPoints() {
		if cp.IsActive {
			active++
		}
	}
	contactLine := viz.MetricLabel.Render("active contacts: ") + viz.MetricValue.Render(fmt.Sprintf("%d", active))
	if active > 0 {
		contactLine += "  " + viz.ContactHit.Render("●")
	}
	if m.debugDraw {
		contactLine += "  " + viz.MetricLabel.Render("debug draw on")
	}
	b.WriteString("  " + contactLine + "\n")

	b.WriteString("  " + viz.MetricLabel.Render("penetration ") + viz.SparklineChart(m.penHistory, 40) + "\n\n")

	for _, row := range strings.Split(canvas.String(), "\n") {
		b.WriteString("  " + row + "\n")
	}

	b.WriteString("\n  " + viz.Separator(canvasW) + "\n")
	b.WriteString("  " + viz.KeyHint.Render("space run/pause · c check contacts · n next contact scene · d debug draw · r reload · +/- speed · q menu") + "\n")

	if m.report != "" {
		b.WriteString("\n" + viz.GlassPanel.Render(m.report) + "\n")
	}

	return b.String()
}

// drawWorld projects the side view of the world onto the canvas: stage
// line, body outlines and any queued debug primitives.
func (m model) drawWorld(canvas *viz.Canvas) {
	subW := canvas.Width * 2
	subH := canvas.Height * 4

	toX := func(wx float64) int {
		return int((wx - viewMinX) / (viewMaxX - viewMinX) * float64(subW-1))
	}
	toY := func(wy float64) int {
		return int((1 - (wy-viewMinY)/(viewMaxY-viewMinY)) * float64(subH-1))
	}
	toR := func(wr float64) int {
		r := int(wr / (viewMaxX - viewMinX) * float64(subW-1))
		if r < 1 {
			r = 1
		}
		return r
	}

	// stage plane at y=0
	canvas.DrawLine(0, toY(0), subW-1, toY(0))

	rom := m.sim.RigidObjectManager()
	for _, ro := range rom.ObjectsByHandleSubstring("") {
		canvas.DrawCircle(toX(ro.Position.X()), toY(ro.Position.Y()), toR(ro.Radius))
	}

	aom := m.sim.ArticulatedObjectManager()
	for _, ao := range aom.ObjectsByHandleSubstring("") {
		for i := 0; i < ao.NumLinks(); i++ {
			pos, err := ao.LinkWorldPosition(i)
			if err != nil {
				continue
			}
			canvas.DrawCircle(toX(pos.X()), toY(pos.Y()), toR(ao.Link(i).Radius))
		}
	}

	dlr := m.sim.DebugLineRender()
	for _, line := range dlr.Lines() {
		canvas.DrawLine(toX(line.From.X()), toY(line.From.Y()), toX(line.To.X()), toY(line.To.Y()))
	}
	for _, circle := range dlr.Circles() {
		canvas.DrawCircle(toX(circle.Center.X()), toY(circle.Center.Y()), toR(circle.Radius))
	}
}
