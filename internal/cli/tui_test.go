package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/clusterviz/pkg/components"
	"github.com/matzehuels/clusterviz/pkg/graph"
	"github.com/matzehuels/clusterviz/pkg/palette"
)

func testRows(t *testing.T) []ComponentRow {
	t.Helper()
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}, {ID: "f"}}
	edges := []graph.Edge{
		{Source: "a", Target: "b", Weight: 1},
		{Source: "c", Target: "d", Weight: 1},
		{Source: "d", Target: "e", Weight: 1},
		{Source: "e", Target: "c", Weight: 1},
	}
	g, err := graph.Build(nodes, edges)
	if err != nil {
		t.Fatal(err)
	}
	comps := components.Find(g)
	return NewComponentRows(g, comps, palette.New(comps.Count()))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m ComponentListModel, msgs ...tea.Msg) ComponentListModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ComponentListModel)
	}
	return m
}

func TestNewComponentRows(t *testing.T) {
	rows := testRows(t)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	want := []struct {
		members, edges int
		color          string
		hub            string
		hubDegree      int
	}{
		{2, 1, "#1f77b4", "a", 1},
		{3, 3, "#ff7f0e", "c", 2},
		{1, 0, "#2ca02c", "f", 0},
	}
	for i, w := range want {
		r := rows[i]
		if r.ID != i || len(r.Members) != w.members || r.Edges != w.edges || r.Color != w.color ||
			r.Hub != w.hub || r.HubDegree != w.hubDegree {
			t.Errorf("row %d = %+v, want %+v", i, r, w)
		}
	}
}

func TestComponentListNavigation(t *testing.T) {
	m := NewComponentListModel(testRows(t))

	m = update(m, key("down"), key("down"), key("down"))
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m = update(m, key("k"), key("k"), key("k"))
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 (clamped)", m.Cursor)
	}

	m = update(m, key("j"), key("enter"))
	if !m.Expanded {
		t.Fatal("enter should expand the selected component")
	}
	if view := m.View(); !strings.Contains(view, "Component 1") || !strings.Contains(view, "3 nodes, 3 edges, hub c (degree 2)") {
		t.Errorf("detail pane missing: %q", view)
	}

	m = update(m, key("esc"))
	if m.Expanded {
		t.Error("esc should collapse the detail pane first")
	}
	if _, cmd := m.Update(key("esc")); cmd == nil {
		t.Error("esc on the list should quit")
	}
}

func TestComponentListSortKeepsSelection(t *testing.T) {
	m := NewComponentListModel(testRows(t))
	m = update(m, key("down"))
	if m.Rows[m.Cursor].ID != 1 {
		t.Fatalf("selected %d, want 1", m.Rows[m.Cursor].ID)
	}

	m = update(m, key("s"))
	if !m.BySize {
		t.Fatal("s should sort by size")
	}
	if got := []int{m.Rows[0].ID, m.Rows[1].ID, m.Rows[2].ID}; got[0] != 1 || got[1] != 0 || got[2] != 2 {
		t.Errorf("order by size = %v, want [1 0 2]", got)
	}
	if m.Rows[m.Cursor].ID != 1 {
		t.Errorf("selection moved to %d", m.Rows[m.Cursor].ID)
	}

	m = update(m, key("s"))
	if m.Rows[0].ID != 0 || m.Rows[m.Cursor].ID != 1 {
		t.Errorf("sort by id lost order or selection: %+v cursor=%d", m.Rows, m.Cursor)
	}
}

func TestComponentListScrolls(t *testing.T) {
	m := NewComponentListModel(testRows(t))
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Fatalf("height = %d, want minimum 5", m.Height)
	}
	m.Height = 2
	m = update(m, key("down"), key("down"))
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1", m.Offset)
	}
	if view := m.View(); !strings.Contains(view, "[3/3]") {
		t.Errorf("position indicator missing: %q", view)
	}
}

func TestComponentListEmpty(t *testing.T) {
	m := NewComponentListModel(nil)
	m = update(m, key("down"), key("enter"), key("s"))
	if m.Expanded || m.Cursor != 0 {
		t.Errorf("empty list changed state: %+v", m)
	}
	if !strings.Contains(m.View(), "no nodes") {
		t.Error("empty view should say the graph has no nodes")
	}
}
