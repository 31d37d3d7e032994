package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hubrank/pkg/centrality"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// RankingModel - Interactive ranking browser
// =============================================================================

// AirportDetail is what the browser shows for the entry under the cursor.
type AirportDetail struct {
	Code      string
	Neighbors []string
}

// RankingModel is the bubbletea model for browsing a ranking.
type RankingModel struct {
	Entries []centrality.Entry
	Mode    string
	Cursor  int
	Height  int
	Offset  int

	// Detail looks up an entry's code and neighbors by node id.
	Detail func(id int) AirportDetail

	// Expanded shows the detail pane for the entry under the cursor.
	Expanded bool
}

// NewRankingModel creates a ranking browser over entries.
func NewRankingModel(entries []centrality.Entry, mode string, detail func(int) AirportDetail) RankingModel {
	return RankingModel{
		Entries: entries,
		Mode:    mode,
		Height:  15,
		Detail:  detail,
	}
}

func (m RankingModel) Init() tea.Cmd {
	return nil
}

func (m RankingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Entries))
		case "end", "G":
			m.move(len(m.Entries))
		case "enter":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

// move shifts the cursor by delta, keeping it inside the list and the
// visible window.
func (m *RankingModel) move(delta int) {
	if len(m.Entries) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Entries)-1)
	m.clampOffset()
}

func (m *RankingModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m RankingModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Airports by degree (%s)", m.Mode)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  no ranked airports"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(i + 1), e.Label, strconv.Itoa(e.Degree)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Airport", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col == 1 || col == 3 {
				base = base.Align(lipgloss.Right)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col == 1 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded && m.Detail != nil {
		b.WriteString(m.detailView(m.Entries[m.Cursor]))
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	return b.String()
}

func (m RankingModel) detailView(e centrality.Entry) string {
	d := m.Detail(e.ID)
	neighbors := strings.Join(d.Neighbors, " ")
	if neighbors == "" {
		neighbors = listDimStyle.Render("none")
	}
	body := fmt.Sprintf("%s  %s\nid %d · degree %d\nroutes to: %s",
		StyleTitle.Render(d.Code), e.Label, e.ID, e.Degree, neighbors)
	return listDetailStyle.Width(60).Render(body)
}
