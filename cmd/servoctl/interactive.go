package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/servoctl/pkg/servo"
)

type InteractiveCommand struct{}

func (c *InteractiveCommand) Execute(args []string) error {
	return runConnected(args, runInteractive)
}

const (
	headerHeight = 3 // title, step, blank line
	tableHeight  = 8 // angle table with border
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
	minChart     = 6 // smallest chart height worth drawing
)

// Channel colors - distinct colors for each servo
var channelColors = [servo.NumChannels]string{
	"196", // red
	"226", // yellow
	"46",  // green
	"51",  // cyan
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func dataSetName(ch int) string {
	return fmt.Sprintf("servo %d", ch)
}

// interactiveModel sends every key press synchronously from Update, so
// commands reach the controller in the order the keys were pressed.
type interactiveModel struct {
	session  *servo.Session
	chart    *streamlinechart.Model
	step     int
	width    int // terminal width
	height   int // terminal height
	logs     []string
	quitting bool
}

func runInteractive(a *app) error {
	// Center every servo one by one before taking over the terminal.
	for _, ch := range servo.AllChannels() {
		if _, err := a.session.SetAngle(ch, servo.CenterAngle); err != nil {
			return fmt.Errorf("center servo %d: %w", ch, err)
		}
	}

	p := tea.NewProgram(newInteractiveModel(a.session, a.cfg.Step), tea.WithAltScreen())
	defer a.ownTerminal(func() {
		p.Quit()
		p.Wait()
	})()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interactive mode: %w", err)
	}
	return nil
}

func newInteractiveModel(session *servo.Session, step int) interactiveModel {
	chart := streamlinechart.New(80, 12,
		streamlinechart.WithYRange(servo.MinAngle, servo.MaxAngle),
	)
	for ch, color := range channelColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(dataSetName(ch), runes.ThinLineStyle, style)
	}

	m := interactiveModel{
		session: session,
		chart:   &chart,
		step:    adjustStep(step, 0),
	}
	m.pushAngles()
	return m
}

func (m *interactiveModel) addLog(msg string) {
	m.logs = append(m.logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *interactiveModel) pushAngles() {
	for ch, angle := range m.session.Angles() {
		m.chart.PushDataSet(dataSetName(ch), float64(angle))
	}
	m.chart.DrawAll()
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *interactiveModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 12 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - tableHeight - legendHeight - footerHeight - borderSize
	if height < minChart {
		height = minChart
	}
	return width, height
}

func (m *interactiveModel) report(what string, responses []string, err error) {
	if err != nil {
		m.addLog(fmt.Sprintf("%s failed: %v", what, err))
		return
	}
	if len(responses) == 0 {
		m.addLog(what)
		return
	}
	m.addLog(fmt.Sprintf("%s -> %s", what, strings.Join(responses, " | ")))
}

func (m interactiveModel) Init() tea.Cmd {
	return nil
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.chartSize()
		m.chart.Resize(w, h)
		m.chart.DrawAll()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "Q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "+":
			m.step = adjustStep(m.step, 1)
			m.addLog(fmt.Sprintf("step set to %d°", m.step))

		case "-":
			m.step = adjustStep(m.step, -1)
			m.addLog(fmt.Sprintf("step set to %d°", m.step))

		case "r", "R":
			responses, err := m.session.Center()
			m.report("all servos reset to 90°", responses, err)
			m.pushAngles()

		default:
			n, ok := channelKeys[key]
			if !ok {
				return m, nil
			}
			angle := nudgedAngle(m.session.Angle(n.channel), n, m.step)
			responses, err := m.session.SetAngle(n.channel, angle)
			m.report(fmt.Sprintf("servo %d -> %d°", n.channel, angle), responses, err)
			m.pushAngles()
		}

		if !m.session.IsConnected() {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m interactiveModel) View() string {
	if m.quitting {
		return "Leaving interactive mode.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Interactive mode"))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  %s", m.session.Port())))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Step: %d°   ", m.step))
	sb.WriteString(statusStyle.Render("+/- step  r reset  q quit"))
	sb.WriteString("\n\n")

	sb.WriteString(angleTable(m.session.Angles()))
	sb.WriteString("\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width)

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press a servo key to move")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for ch, color := range channelColors {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + " " + dataSetName(ch)
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}
