package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parametriclab/nodeflow/pkg/nodes"
)

func TestTypesTable(t *testing.T) {
	reg := nodes.DefaultRegistry()
	out := typesTable(reg.Types())

	for _, want := range []string{"math/add", "math/divide", "geometry/point", "lists/range"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should list %q", want)
		}
	}
	if !strings.Contains(out, "Category") {
		t.Error("table should carry a Category header")
	}
}

func TestTypesCommandQuery(t *testing.T) {
	if err := execRoot(t, "types", "divide"); err != nil {
		t.Fatalf("types divide: %v", err)
	}
	// No matches is informational, not an error.
	if err := execRoot(t, "types", "definitely-not-a-node"); err != nil {
		t.Fatalf("types with no matches: %v", err)
	}
}

func TestTypeListModelNavigation(t *testing.T) {
	m := NewTypeListModel(nodes.DefaultRegistry().Types())
	if len(m.Rows) == 0 {
		t.Fatal("model should carry the built-in kinds")
	}

	key := func(s string) tea.Msg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	next, _ := m.Update(key("j"))
	m = next.(TypeListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(key("k"))
	m = next.(TypeListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after k = %d, want 0", m.Cursor)
	}

	// Moving up past the first row stays put.
	next, _ = m.Update(key("k"))
	m = next.(TypeListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor should stay at 0, got %d", m.Cursor)
	}
}

func TestTypeListModelSelect(t *testing.T) {
	m := NewTypeListModel(nodes.DefaultRegistry().Types())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(TypeListModel)

	if m.Selected == nil {
		t.Fatal("enter should select the row under the cursor")
	}
	if m.Selected.TypeName != m.Rows[0].reg.TypeName {
		t.Errorf("selected %q, want %q", m.Selected.TypeName, m.Rows[0].reg.TypeName)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestTypeListModelQuit(t *testing.T) {
	m := NewTypeListModel(nodes.DefaultRegistry().Types())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(TypeListModel)

	if m.Selected != nil {
		t.Error("esc should not select anything")
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestTypeListModelView(t *testing.T) {
	m := NewTypeListModel(nodes.DefaultRegistry().Types())
	view := m.View()

	if !strings.Contains(view, "Select Node Type") {
		t.Error("view should carry the title")
	}
	if !strings.Contains(view, m.Rows[0].reg.TypeName) {
		t.Errorf("view should list %q", m.Rows[0].reg.TypeName)
	}
}

func TestTypeListModelScrolling(t *testing.T) {
	m := NewTypeListModel(nodes.DefaultRegistry().Types())
	m.Height = 3

	key := func(s string) tea.Msg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	for i := 0; i < 5; i++ {
		next, _ := m.Update(key("j"))
		m = next.(TypeListModel)
	}

	if m.Cursor != 5 {
		t.Fatalf("cursor = %d, want 5", m.Cursor)
	}
	if m.Offset != 3 {
		t.Errorf("offset = %d, want 3 (window keeps cursor visible)", m.Offset)
	}
}
