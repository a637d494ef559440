package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/parametriclab/nodeflow/pkg/registry"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TypeListModel - Interactive node type selection
// =============================================================================

// typeRow is one selectable entry of the picker, a registration plus the
// port counts of a freshly constructed node of that kind.
type typeRow struct {
	reg     registry.Registration
	inputs  int
	outputs int
}

// TypeListModel is the bubbletea model for interactive node type selection.
type TypeListModel struct {
	Rows     []typeRow
	Cursor   int
	Selected *registry.Registration
	Height   int
	Offset   int
}

// NewTypeListModel creates a type list model over the given registrations.
// Each kind is instantiated once to count its ports for the listing.
func NewTypeListModel(regs []registry.Registration) TypeListModel {
	rows := make([]typeRow, 0, len(regs))
	for _, reg := range regs {
		n := reg.New()
		rows = append(rows, typeRow{
			reg:     reg,
			inputs:  len(n.Inputs()),
			outputs: len(n.Outputs()),
		})
	}
	return TypeListModel{
		Rows:   rows,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m TypeListModel) Init() tea.Cmd {
	return nil
}

func (m TypeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			reg := m.Rows[m.Cursor].reg
			m.Selected = &reg
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

func (m TypeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node Type"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			r.reg.TypeName,
			r.reg.DisplayName,
			r.reg.Category,
			strconv.Itoa(r.inputs),
			strconv.Itoa(r.outputs),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Type", "Name", "Category", "In", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorGray)
			}

			if actualIdx == m.Cursor {
				if col >= 4 {
					return base.Bold(true)
				}
				return base.Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return base.Foreground(colorDim)
			}
			if col >= 4 {
				return base
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
