package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/clusterviz/pkg/components"
	"github.com/matzehuels/clusterviz/pkg/graph"
	"github.com/matzehuels/clusterviz/pkg/palette"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// detailMembers caps the member list in the detail pane.
const detailMembers = 30

// =============================================================================
// ComponentListModel - Interactive component browser
// =============================================================================

// ComponentRow is one component as shown in the browser.
type ComponentRow struct {
	ID      int
	Color   string
	Members []string
	Edges   int
	// Hub is the member with the highest degree, first in graph order on ties.
	Hub       string
	HubDegree int
}

// NewComponentRows collects a row per component in id order.
func NewComponentRows(g *graph.Graph, comps *components.Result, pal palette.Palette) []ComponentRow {
	rows := make([]ComponentRow, comps.Count())
	for cid := range rows {
		rows[cid] = ComponentRow{ID: cid, Color: pal.Color(cid), Members: comps.Members(cid)}
		for _, id := range rows[cid].Members {
			if d := g.Degree(id); rows[cid].Hub == "" || d > rows[cid].HubDegree {
				rows[cid].Hub, rows[cid].HubDegree = id, d
			}
		}
	}
	for _, e := range g.Edges() {
		if cid, ok := comps.Of(e.Source); ok {
			rows[cid].Edges++
		}
	}
	return rows
}

// ComponentListModel is the bubbletea model for browsing components.
type ComponentListModel struct {
	Rows     []ComponentRow
	Cursor   int
	Height   int
	Offset   int
	Expanded bool
	BySize   bool
}

// NewComponentListModel creates a new component list model.
func NewComponentListModel(rows []ComponentRow) ComponentListModel {
	return ComponentListModel{Rows: rows, Height: 15}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
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
			if len(m.Rows) > 0 {
				m.Expanded = !m.Expanded
			}
		case "s":
			m = m.sorted(!m.BySize)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// sorted reorders rows by descending size (ties by id) or by id, keeping the
// cursor on the same component.
func (m ComponentListModel) sorted(bySize bool) ComponentListModel {
	if len(m.Rows) == 0 {
		m.BySize = bySize
		return m
	}
	current := m.Rows[m.Cursor].ID
	rows := slices.Clone(m.Rows)
	slices.SortStableFunc(rows, func(a, b ComponentRow) int {
		if bySize && len(a.Members) != len(b.Members) {
			return len(b.Members) - len(a.Members)
		}
		return a.ID - b.ID
	})
	m.Rows = rows
	m.BySize = bySize
	m.Cursor = slices.IndexFunc(rows, func(r ComponentRow) bool { return r.ID == current })
	m.Offset = max(0, min(m.Offset, m.Cursor))
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m ComponentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Components"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  s sort  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  graph has no nodes"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(r.ID),
			swatch(r.Color) + " " + r.Color,
			strconv.Itoa(len(r.Members)),
			strconv.Itoa(r.Edges),
			preview(r.Members, 3),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Color", "Nodes", "Edges", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor && col != 2 {
				return listSelectedStyle
			}
			if col == 3 || col == 4 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	order := "id"
	if m.BySize {
		order = "size"
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] sorted by %s", m.Cursor+1, len(m.Rows), order)))

	if m.Expanded {
		b.WriteString("\n\n")
		b.WriteString(m.detail(m.Rows[m.Cursor]))
	}
	return b.String()
}

func (m ComponentListModel) detail(r ComponentRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", swatch(r.Color), StyleTitle.Render(fmt.Sprintf("Component %d", r.ID)))
	fmt.Fprintf(&b, "%d nodes, %d edges, hub %s (degree %d)\n\n", len(r.Members), r.Edges, r.Hub, r.HubDegree)
	shown := r.Members
	if len(shown) > detailMembers {
		shown = shown[:detailMembers]
	}
	b.WriteString(strings.Join(shown, "  "))
	if rest := len(r.Members) - len(shown); rest > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("\n… %d more", rest)))
	}
	return detailBoxStyle.Render(b.String())
}
