package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tonylturner/ddcdec/internal/ddc"
)

// Row filters cycled with tab.
var rowFilters = []string{"all", ddc.RowDDC, ddc.RowDebug}

const (
	defaultWidth  = 100
	defaultHeight = 30
	chromeLines   = 6
)

// Model is the annotation viewer.
type Model struct {
	title   string
	all     []ddc.Annotation
	visible []ddc.Annotation
	filter  int
	cursor  int
	offset  int
	width   int
	height  int
	status  string
	styles  Styles
	copyFn  func(string) error
}

// NewModel creates a viewer over annotations.
func NewModel(title string, annotations []ddc.Annotation) *Model {
	m := &Model{
		title:  title,
		all:    annotations,
		width:  defaultWidth,
		height: defaultHeight,
		styles: DefaultStyles,
	}
	m.applyFilter()
	return m
}

// Filter returns the active row filter.
func (m *Model) Filter() string { return rowFilters[m.filter] }

// Selected returns the annotation under the cursor.
func (m *Model) Selected() (ddc.Annotation, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return ddc.Annotation{}, false
	}
	return m.visible[m.cursor], true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil

	case clipboardCopyMsg:
		if msg.err != nil {
			m.status = m.styles.Error.Render(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.status = m.styles.Success.Render("Copied: " + msg.content)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "pgup":
		m.move(-m.pageSize())
	case "pgdown", " ":
		m.move(m.pageSize())
	case "home", "g":
		m.move(-len(m.visible))
	case "end", "G":
		m.move(len(m.visible))
	case "tab":
		m.filter = (m.filter + 1) % len(rowFilters)
		m.applyFilter()
		m.status = ""
	case "c":
		if a, ok := m.Selected(); ok {
			return m, copyToClipboard(m.copyFn, a.Text)
		}
	}
	return m, nil
}

func (m *Model) applyFilter() {
	want := rowFilters[m.filter]
	m.visible = m.visible[:0]
	for _, a := range m.all {
		if want == "all" || a.Category.Row() == want {
			m.visible = append(m.visible, a)
		}
	}
	m.cursor = 0
	m.offset = 0
}

func (m *Model) move(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

func (m *Model) pageSize() int {
	if n := m.height - chromeLines; n > 1 {
		return n
	}
	return 1
}

func (m *Model) scroll() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	header := fmt.Sprintf("%s  rows: %s  (%d/%d)", m.title, m.Filter(), len(m.visible), len(m.all))
	b.WriteString(m.styles.Title.Render(header))
	b.WriteString("\n")

	var lines []string
	if len(m.visible) == 0 {
		lines = append(lines, m.styles.Dim.Render("no annotations"))
	}
	end := m.offset + m.pageSize()
	if end > len(m.visible) {
		end = len(m.visible)
	}
	for i := m.offset; i < end; i++ {
		a := m.visible[i]
		span := fmt.Sprintf("%10d-%-10d", a.Start, a.End)
		if i == m.cursor {
			lines = append(lines, m.styles.Cursor.Render(fmt.Sprintf("%s %-8s %s", span, a.Category, a.Text)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", m.styles.Dim.Render(span), m.styles.CategoryLabel(a.Category), m.styles.Base.Render(a.Text)))
	}
	b.WriteString(m.styles.Box.Width(m.boxWidth()).Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) boxWidth() int {
	if m.width > 4 {
		return m.width - 2
	}
	return defaultWidth
}

func (m *Model) footer() string {
	keys := []struct{ key, hint string }{
		{"↑/↓", "move"},
		{"tab", "rows"},
		{"c", "copy"},
		{"q", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = m.styles.KeyBinding.Render(k.key) + " " + m.styles.KeyHint.Render(k.hint)
	}
	return strings.Join(parts, "  ")
}
