package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/dictcoder/codingpath"
	"github.com/wippyai/dictcoder/tree"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 20

type row struct {
	node  *tree.Node
	path  string
	depth int
}

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateDetail
)

type interactiveModel struct {
	err      error
	root     *tree.Node
	detail   string
	filename string
	rows     []row
	visible  []int
	filter   textinput.Model
	cfg      config
	selected int
	offset   int
	width    int
	state    modelState
}

type loadedMsg struct {
	err  error
	root *tree.Node
}

func newInteractiveModel(cfg config) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "path substring"
	ti.Prompt = "filter: "
	ti.Width = 40

	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return &interactiveModel{
		cfg:      cfg,
		filename: cfg.inFile,
		filter:   ti,
		width:    width,
		state:    stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	_, root, err := loadTree(m.cfg)
	return loadedMsg{root: root, err: err}
}

// flattenRows lists every node of the tree in walk order.
func flattenRows(root *tree.Node) []row {
	var rows []row
	root.Walk(func(path *codingpath.Node, n *tree.Node) bool {
		rows = append(rows, row{node: n, path: path.String(), depth: path.Depth()})
		return true
	})
	return rows
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, r := range m.rows {
		if q == "" || strings.Contains(strings.ToLower(r.path), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.selected = 0
	m.offset = 0
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.root = msg.root
		m.rows = flattenRows(msg.root)
		m.applyFilter()

	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				m.state = stateBrowse
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
				if m.selected < m.offset {
					m.offset = m.selected
				}
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
				if m.selected >= m.offset+pageSize {
					m.offset = m.selected - pageSize + 1
				}
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.visible) == 0 {
					break
				}
				r := m.rows[m.visible[m.selected]]
				out, err := renderYAML(r.node.Interface())
				if err != nil {
					out = errorStyle.Render(err.Error())
				}
				m.detail = out
				m.state = stateDetail
			case stateDetail:
				m.state = stateBrowse
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
			}
		}
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.root == nil {
		return "Loading document..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("dictcoder"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateFilter:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		end := min(len(m.visible), m.offset+pageSize)
		for i := m.offset; i < end; i++ {
			line := m.formatRow(m.rows[m.visible[i]])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(helpStyle.Render("type to filter • enter/esc done"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter show • / filter • q quit"))
		}

	case stateDetail:
		r := m.rows[m.visible[m.selected]]
		b.WriteString(fmt.Sprintf("%s %s\n\n", pathStyle.Render(r.path), kindStyle.Render(r.node.Kind().String())))
		b.WriteString(valueStyle.Render(m.detail))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}
	return b.String()
}

func (m *interactiveModel) formatRow(r row) string {
	indent := strings.Repeat("  ", r.depth)
	line := indent + pathStyle.Render(r.path) + " " + kindStyle.Render(r.node.Kind().String())
	if !r.node.Kind().IsContainer() {
		line += " " + valueStyle.Render(r.node.String())
	} else {
		line += fmt.Sprintf(" (%d)", r.node.Len())
	}
	if w := lipgloss.Width(line); m.width > 4 && w > m.width-4 {
		line = indent + pathStyle.Render(r.path) + " " + kindStyle.Render(r.node.Kind().String())
	}
	return line
}

func runInteractive(cfg config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
