// Package tui renders a terminal inspector for keyboard layout files:
// rows and key caps, home row highlighted, with a detail panel for the
// selected key.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/keyheat/internal/layout"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	rowIDStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	keyStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("28")).Padding(0, 1)
	homeStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208")).Padding(0, 1)
	selStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("231")).Padding(0, 1).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	detailStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Model is the bubbletea model for the layout inspector.
type Model struct {
	km       *layout.Keymap
	keys     []*layout.Key
	rowOrder []string
	byRow    map[string][]*layout.Key
	selected int
}

func NewModel(km *layout.Keymap) Model {
	m := Model{
		km:    km,
		keys:  km.Positions(),
		byRow: make(map[string][]*layout.Key),
	}
	for _, k := range m.keys {
		if _, seen := m.byRow[k.Row]; !seen {
			m.rowOrder = append(m.rowOrder, k.Row)
		}
		m.byRow[k.Row] = append(m.byRow[k.Row], k)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % len(m.keys)
		case "left", "h":
			m.selected--
			if m.selected < 0 {
				m.selected = len(m.keys) - 1
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("keyheat :: %s", m.km.Name)))
	b.WriteString("\n")

	for _, rowID := range m.rowOrder {
		caps := make([]string, 0, len(m.byRow[rowID]))
		for _, k := range m.byRow[rowID] {
			style := keyStyle
			if k.Home {
				style = homeStyle
			}
			if k == m.keys[m.selected] {
				style = selStyle
			}
			caps = append(caps, style.Render(k.Lower))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			rowIDStyle.Render(rowID),
			lipgloss.JoinHorizontal(lipgloss.Top, caps...),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString(helpStyle.Render("←/→ select key   q quit"))
	return b.String()
}

func (m Model) detail() string {
	k := m.keys[m.selected]

	upper := k.Upper
	if upper == "" {
		upper = "(none)"
	}
	shift := "(none)"
	if k.Upper != "" {
		if s := m.km.ShiftFor(k); s != nil {
			shift = s.Lower
		}
	}

	lines := []string{
		labelStyle.Render("lower") + valueStyle.Render(k.Lower),
		labelStyle.Render("upper") + valueStyle.Render(upper),
		labelStyle.Render("row") + valueStyle.Render(k.Row),
		labelStyle.Render("position") + valueStyle.Render(fmt.Sprintf("(%.2g, %.2g)", k.X, k.Y)),
		labelStyle.Render("width") + valueStyle.Render(fmt.Sprintf("%.2g", k.Width)),
		labelStyle.Render("home row") + valueStyle.Render(fmt.Sprintf("%v", k.Home)),
		labelStyle.Render("shift key") + valueStyle.Render(shift),
	}
	return detailStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// Run opens the inspector and blocks until the user quits it.
func Run(km *layout.Keymap) error {
	p := tea.NewProgram(NewModel(km))
	_, err := p.Run()
	return err
}
