// Package tui provides the Bubble Tea interface over a session controller.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/zipfr/internal/session"
)

const (
	headerHeight = 2
	minListWidth = 36
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	modeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1E1E")).Background(lipgloss.Color("#C89A3A")).Bold(true).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3A")).Bold(true)
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	rowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	actualStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7"))
	overlayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	pickerKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements tea.Model by forwarding input to a session controller and
// drawing its view model.
type Model struct {
	ctrl *session.Controller
	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel wraps a controller.
func NewModel(ctrl *session.Controller) *Model {
	h := help.New()
	h.Styles.ShortKey = mutedStyle
	h.Styles.ShortDesc = footerStyle
	h.Styles.ShortSeparator = footerStyle
	h.Styles.FullKey = mutedStyle
	h.Styles.FullDesc = footerStyle
	h.Styles.FullSeparator = footerStyle
	return &Model{
		ctrl: ctrl,
		keys: defaultKeyMap(),
		help: h,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.ctrl.Mode() == session.ModeNormal && msg.String() == "?" {
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}
		for _, ev := range keyEvents(msg) {
			m.ctrl.Dispatch(ev)
			if m.ctrl.Done() {
				return m, tea.Quit
			}
		}
		// The footer height follows the mode.
		if m.height > 0 {
			m.resize()
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	vm := m.ctrl.View()
	footer := m.renderFooter(vm)
	footerHeight := lipgloss.Height(footer)
	bodyHeight := maxInt(1, m.height-headerHeight-footerHeight)

	header := fitLines(m.renderHeader(vm), m.width, headerHeight)
	body := fitLines(m.renderBody(vm, bodyHeight), m.width, bodyHeight)
	footer = fitLines(footer, m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) resize() {
	m.ctrl.Dispatch(session.ResizeEvent{Height: m.listHeight()})
}

// listHeight is the number of word rows that fit: the body minus the list's
// column header.
func (m *Model) listHeight() int {
	footerHeight := lipgloss.Height(m.renderFooter(m.ctrl.View()))
	return maxInt(1, m.height-headerHeight-footerHeight-1)
}

func (m *Model) layoutWidths() (listWidth, chartWidth int) {
	listWidth = maxInt(minListWidth, m.width*2/5)
	if listWidth > m.width {
		listWidth = m.width
	}
	chartWidth = m.width - listWidth - 1
	if chartWidth < 0 {
		chartWidth = 0
	}
	return listWidth, chartWidth
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
