package viewer

import (
	"context"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/contactlab/internal/config"
	"github.com/san-kum/contactlab/internal/engine"
	"github.com/san-kum/contactlab/internal/probe"
	"github.com/san-kum/contactlab/internal/scene"
)

type state int

const (
	stateMenu state = iota
	stateSim
)

type model struct {
	state  state
	cursor int

	dataset  *scene.Dataset
	settings *config.Settings
	scanner  *probe.Scanner

	sim        *engine.Simulator
	sceneID    string
	simTime    float64
	simulating bool
	debugDraw  bool
	speed      float64

	report     string
	penHistory []float64

	width  int
	height int
}

// New builds the interactive viewer over a loaded dataset. If the
// settings name a scene the viewer opens it directly, otherwise it starts
// on the scene menu.
func New(ds *scene.Dataset, settings *config.Settings) *model {
	m := &model{
		state:      stateMenu,
		dataset:    ds,
		settings:   settings,
		scanner:    probe.NewScanner(ds, checkOptions(settings)),
		speed:      1.0,
		penHistory: make([]float64, 0, 60),
		width:      80,
		height:     24,
	}
	if settings.Scene != "" {
		if sc, err := ds.SceneByID(settings.Scene); err == nil {
			m.openScene(sc)
		}
	}
	return m
}

// Run starts the bubbletea program and blocks until the viewer quits.
func Run(ds *scene.Dataset, settings *config.Settings) error {
	p := tea.NewProgram(New(ds, settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func checkOptions(settings *config.Settings) probe.Options {
	return probe.Options{
		LinkResolution: settings.LinkResolution,
		SettleSteps:    settings.SettleSteps,
		Dt:             settings.Dt,
		Margin:         settings.ContactMargin,
	}
}

func (m *model) openScene(sc *scene.Scene) {
	m.sim = sc.Build()
	m.sim.SetContactMargin(m.settings.ContactMargin)
	m.sceneID = sc.ID
	m.simTime = 0
	m.simulating = false
	m.report = ""
	m.penHistory = m.penHistory[:0]
	m.state = stateSim
}

func (m model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state == stateSim && m.sim != nil {
			m.frame()
		}
		return m, tick()
	}
	return m, nil
}

// frame advances the world and refreshes the contact snapshot driving the
// debug overlay and the penetration sparkline.
func (m *model) frame() {
	if m.simulating && m.settings.EnablePhysics {
		steps := int(m.speed)
		if steps < 1 {
			steps = 1
		}
		for i := 0; i < steps; i++ {
			if err := m.sim.StepWorld(m.settings.Dt); err != nil {
				m.simulating = false
				break
			}
			m.simTime += m.settings.Dt
		}
	}

	m.sim.PerformDiscreteCollisionDetection()

	m.sim.DebugLineRender().Clear()
	if m.debugDraw {
		probe.DebugDrawContacts(m.sim)
	}

	depth := 0.0
	for _, cp := range m.sim.ContactPoints() {
		if cp.IsActive && cp.ContactDistance < depth {
			depth = cp.ContactDistance
		}
	}
	m.penHistory = append(m.penHistory, -depth)
	if len(m.penHistory) > 60 {
		m.penHistory = m.penHistory[1:]
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSim:
		return m.simKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.dataset.Scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.openScene(&m.dataset.Scenes[m.cursor])
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) simKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "escape":
		m.state = stateMenu
		m.sim = nil
		m.report = ""
		return m, tea.ClearScreen
	case " ", "p":
		m.simulating = !m.simulating
	case "c":
		m.checkContacts()
	case "n":
		m.sweepScenes()
	case "d":
		m.debugDraw = !m.debugDraw
	case "r":
		if sc, err := m.dataset.SceneByID(m.sceneID); err == nil {
			m.openScene(sc)
		}
		return m, tea.ClearScreen
	case "+", "=":
		m.speed = math.Min(m.speed*2, 16)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	case "0":
		m.speed = 1.0
	}
	return m, nil
}

// checkContacts runs the single-scene contact check and keeps the report
// text for the report panel.
func (m *model) checkContacts() {
	report, err := probe.Check(m.sim, checkOptions(m.settings))
	if err != nil {
		m.report = "check failed: " + err.Error()
		return
	}
	report.SceneID = m.sceneID
	m.report = report.Format()
}

// sweepScenes scans forward through the dataset for the next scene with
// active contacts and adopts its world when found.
func (m *model) sweepScenes() {
	report, err := m.scanner.Sweep(context.Background())
	if err != nil {
		m.report = "sweep failed: " + err.Error()
		return
	}
	if !report.HasContacts() {
		m.report = "sweep: no contacts in remaining scenes (wrapped to start)"
		return
	}
	if sim, sceneID := m.scanner.Current(); sim != nil {
		// the sweep's check already applied the configured margin
		m.sim = sim
		m.sceneID = sceneID
		m.simTime = 0
		m.simulating = false
		m.penHistory = m.penHistory[:0]
	}
	m.report = report.Format()
}
