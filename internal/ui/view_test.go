package ui

import (
	"strings"
	"testing"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

func sizedTestModel() Model {
	m, _ := createTestModel()
	m.termWidth = 120
	m.termHeight = 50
	return m
}

func TestView_GridMode(t *testing.T) {
	m := sizedTestModel()
	output := m.View()

	for _, want := range []string{"Editor", "Notes", "Work", "Home", "Page 1/2", "Main", "📝"} {
		if !strings.Contains(output, want) {
			t.Errorf("View output missing %q. Got:\n%s", want, output)
		}
	}
}

func TestView_Hidden(t *testing.T) {
	m := sizedTestModel()
	m.visible = false
	output := m.View()

	if strings.Contains(output, "Editor") {
		t.Error("Hidden view must not draw the grid")
	}
	if !strings.Contains(output, "is hidden") || !strings.Contains(output, "F11") {
		t.Errorf("Hidden view missing summon hint. Got:\n%s", output)
	}
}

func TestView_OffsetSlidesPanelUp(t *testing.T) {
	m := sizedTestModel()
	full := strings.Split(m.View(), "\n")

	m.offset = -3
	slid := strings.Split(m.View(), "\n")

	if len(full)-len(slid) != 3 {
		t.Errorf("Expected 3 lines cut, got %d vs %d", len(full), len(slid))
	}

	m.offset = -float64(len(full) + 5)
	if out := m.View(); out != "" {
		t.Errorf("Expected nothing drawn when fully off screen, got %q", out)
	}
}

func TestView_TerminalTooSmall(t *testing.T) {
	m := sizedTestModel()
	m.termWidth = 30
	m.termHeight = 10

	if output := m.View(); !strings.Contains(output, "Terminal too small") {
		t.Errorf("Expected size overlay. Got:\n%s", output)
	}
}

func TestView_DetailMode(t *testing.T) {
	m := sizedTestModel()
	b, _ := m.page.ButtonAt(config.Position{Row: 1, Col: 1})
	m.mode = detailMode
	m.detail = detailFor(b)
	output := m.View()

	for _, want := range []string{"Editor", "Path:", "/usr/bin/vim", "Workdir", "LaunchApp"} {
		if !strings.Contains(output, want) {
			t.Errorf("Detail view missing %q. Got:\n%s", want, output)
		}
	}
}

func TestView_HelpMode(t *testing.T) {
	m := sizedTestModel()
	m.mode = helpMode
	m.help.ShowAll = true

	if output := m.View(); !strings.Contains(output, "undo drop") {
		t.Errorf("Help view missing full bindings. Got:\n%s", output)
	}
}

func TestCellLabelTruncates(t *testing.T) {
	got := cellLabel("Visual Studio Code Insiders")
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected truncation marker, got %q", got)
	}
	if cellLabel("vim") != "vim" {
		t.Errorf("Short labels must not change, got %q", cellLabel("vim"))
	}
}

func TestCellIcon(t *testing.T) {
	cases := []struct {
		icon string
		want string
	}{
		{"", ""},
		{"🚀", "🚀"},
		{"data:image/png;base64,AAAA", imageGlyph},
		{"/usr/share/icons/vim.png", imageGlyph},
	}
	for _, c := range cases {
		if got := cellIcon(config.Button{Icon: c.icon}); got != c.want {
			t.Errorf("cellIcon(%q) = %q, want %q", c.icon, got, c.want)
		}
	}
}

func TestGeometryMatchesRenderedGrid(t *testing.T) {
	m := sizedTestModel()
	g := m.geometry()

	if g.Rows != 2 || g.Cols != 3 || len(g.Cells) != 6 {
		t.Fatalf("Unexpected geometry %+v", g)
	}
	if g.Bounds.W != 3*cellBoxWidth || g.Bounds.H != 2*cellBoxHeight {
		t.Errorf("Unexpected bounds %+v", g.Bounds)
	}

	// The Editor label must be drawn inside the box geometry reports for (1,1).
	lines := strings.Split(m.View(), "\n")
	box := g.Cells[0].Box
	found := false
	for y := int(box.Y); y < int(box.Y+box.H) && y < len(lines); y++ {
		if strings.Contains(lines[y], "Editor") {
			found = true
		}
	}
	if !found {
		t.Errorf("Editor not drawn within rows %v-%v", box.Y, box.Y+box.H)
	}
}
