package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/storeman/graph-uml/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// typeEntry is one selectable row in the type picker.
type typeEntry struct {
	name    string
	kind    string // class, abstractClass, interface, extension
	extends string
	members int
}

// typePickerModel is the bubbletea model for interactive type selection.
// Space toggles the type under the cursor, "a" toggles all, enter
// confirms, q aborts without a selection.
type typePickerModel struct {
	entries  []typeEntry
	checked  map[int]bool
	cursor   int
	height   int
	offset   int
	accepted bool
}

// newTypePicker creates a picker over every type and extension in the
// model. Names listed in preselected start out checked.
func newTypePicker(m *model.Model, preselected []string) typePickerModel {
	pre := make(map[string]bool, len(preselected))
	for _, name := range preselected {
		pre[name] = true
	}

	var entries []typeEntry
	for i := range m.Types {
		t := &m.Types[i]
		kind := t.Kind
		if kind == "" {
			kind = "class"
		}
		entries = append(entries, typeEntry{
			name:    t.Name,
			kind:    kind,
			extends: t.Extends,
			members: len(t.Constants) + len(t.Properties) + len(t.Methods),
		})
	}
	for i := range m.Extensions {
		e := &m.Extensions[i]
		entries = append(entries, typeEntry{
			name:    e.Name,
			kind:    "extension",
			members: len(e.Constants) + len(e.Functions),
		})
	}

	checked := make(map[int]bool)
	for i, e := range entries {
		if pre[e.name] {
			checked[i] = true
		}
	}
	return typePickerModel{entries: entries, checked: checked, height: 15}
}

func (m typePickerModel) Init() tea.Cmd {
	return nil
}

func (m typePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ", "x":
			m.checked[m.cursor] = !m.checked[m.cursor]
		case "a":
			all := len(m.checked) < len(m.entries)
			for i := range m.entries {
				m.checked[i] = all
			}
			if !all {
				m.checked = make(map[int]bool)
			}
		case "enter":
			m.accepted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m typePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Types"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		e := m.entries[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.checked[i] {
			mark = "✓"
		}

		extends := e.extends
		if extends == "" {
			extends = "—"
		}
		rows = append(rows, []string{cursor, mark, e.name, e.kind, extends, fmt.Sprintf("%d", e.members)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Type", "Kind", "Extends", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.offset + row
			if actualIdx >= len(m.entries) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if actualIdx == m.cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if m.checked[actualIdx] {
				return base.Foreground(colorGreen)
			}
			if col >= 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d selected]", len(m.selected()), len(m.entries))))

	return b.String()
}

// selected returns the checked names in model order.
func (m typePickerModel) selected() []string {
	var names []string
	for i, e := range m.entries {
		if m.checked[i] {
			names = append(names, e.name)
		}
	}
	return names
}

// split separates the checked names into types and extensions, both in
// model order.
func (m typePickerModel) split() (types, extensions []string) {
	for i, e := range m.entries {
		if !m.checked[i] {
			continue
		}
		if e.kind == "extension" {
			extensions = append(extensions, e.name)
		} else {
			types = append(types, e.name)
		}
	}
	return types, extensions
}

// pickTypes runs the interactive type picker and returns the confirmed
// type and extension selection. An aborted picker returns no names.
func pickTypes(m *model.Model, preselected []string) (types, extensions []string, err error) {
	p := tea.NewProgram(newTypePicker(m, preselected))
	final, err := p.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("type picker: %w", err)
	}
	picker, ok := final.(typePickerModel)
	if !ok || !picker.accepted {
		return nil, nil, nil
	}
	types, extensions = picker.split()
	return types, extensions, nil
}
