package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/errors"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// DeadlineListModel - Interactive term/assignment selection
// =============================================================================

// DeadlineListModel is the bubbletea model for choosing a registry entry.
type DeadlineListModel struct {
	Table    deadline.Table
	Keys     []deadline.Key
	Cursor   int
	Selected *deadline.Key
	Height   int
	Offset   int
}

// NewDeadlineListModel creates a list over every entry in table.
func NewDeadlineListModel(t deadline.Table) DeadlineListModel {
	return DeadlineListModel{
		Table:  t,
		Keys:   t.Keys(),
		Height: 15,
	}
}

func (m DeadlineListModel) Init() tea.Cmd {
	return nil
}

func (m DeadlineListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Keys)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Keys) == 0 {
				return m, tea.Quit
			}
			k := m.Keys[m.Cursor]
			m.Selected = &k
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DeadlineListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Assignment"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Keys) {
		end = len(m.Keys)
	}

	rows := deadlineRows(m.Table, m.Keys[m.Offset:end])
	for i := range rows {
		cursor := "  "
		if m.Offset+i == m.Cursor {
			cursor = "▸ "
		}
		rows[i] = append([]string{cursor}, rows[i]...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, deadlineHeaders...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col > 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Keys))))

	return b.String()
}

// pickDeadline runs the interactive picker and returns the chosen entry.
func pickDeadline(t deadline.Table) (deadline.Key, error) {
	final, err := tea.NewProgram(NewDeadlineListModel(t)).Run()
	if err != nil {
		return deadline.Key{}, errors.Wrap(errors.ErrCodeInternal, err, "run picker")
	}
	m, ok := final.(DeadlineListModel)
	if !ok || m.Selected == nil {
		return deadline.Key{}, errors.New(errors.ErrCodeInvalidInput, "no assignment selected")
	}
	return *m.Selected, nil
}
