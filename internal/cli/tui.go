package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// candidateRow is one proposed block position.
type candidateRow struct {
	Coord lattice.Coord
	Exits int // -1 when no kind was given
}

// =============================================================================
// Candidate Table
// =============================================================================

// candidateTable renders rows[offset:offset+height]. The row at cursor is
// highlighted; pass cursor -1 for a static table.
func candidateTable(rows []candidateRow, cursor, offset, height int) string {
	end := min(offset+height, len(rows))
	showExits := len(rows) > 0 && rows[0].Exits >= 0

	headers := []string{"", "#", "Position"}
	if showExits {
		headers = append(headers, "Exits")
	}

	var cells [][]string
	for i := offset; i < end; i++ {
		r := rows[i]
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		line := []string{marker, strconv.Itoa(i + 1), r.Coord.String()}
		if showExits {
			line = append(line, strconv.Itoa(r.Exits))
		}
		cells = append(cells, line)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := offset + row
			if idx >= len(rows) {
				return lipgloss.NewStyle()
			}
			base := listNormalStyle
			if showExits && rows[idx].Exits == 0 {
				base = listDimStyle
			}
			if idx == cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	return t.Render()
}

// =============================================================================
// CandidateListModel - Interactive candidate selection
// =============================================================================

// CandidateListModel is the bubbletea model for picking one candidate.
type CandidateListModel struct {
	Rows     []candidateRow
	Cursor   int
	Offset   int
	Height   int
	Selected *candidateRow
}

// NewCandidateListModel creates a new candidate list model.
func NewCandidateListModel(rows []candidateRow) CandidateListModel {
	return CandidateListModel{Rows: rows, Height: 15}
}

func (m CandidateListModel) Init() tea.Cmd {
	return nil
}

func (m CandidateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if len(m.Rows) == 0 {
				return m, tea.Quit
			}
			row := m.Rows[m.Cursor]
			m.Selected = &row
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m CandidateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Position"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")
	b.WriteString(candidateTable(m.Rows, m.Cursor, m.Offset, m.Height))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
