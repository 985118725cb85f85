package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

func testModel() DeckModel {
	slides := []content.Slide{
		{Title: "Annual Report", Subtitle: "2024"},
		{Headline: "Revenue", Chart: map[string]any{}},
		{Headline: "Say hi", LayoutHint: "Blank"},
	}
	return NewDeckModel(slides, pipeline.DefaultRouter())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m DeckModel, keys ...string) (DeckModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(DeckModel)
	}
	return m, cmd
}

func TestNewDeckModel(t *testing.T) {
	m := testModel()
	want := []struct {
		layout layout.Name
		rule   selector.RuleID
	}{
		{layout.TitleWhite, selector.RuleTitle},
		{layout.ChartNoSubheadline, selector.RuleChart},
		{"Blank", selector.RuleHint},
	}
	if len(m.Routes) != len(want) {
		t.Fatalf("Routes = %d, want %d", len(m.Routes), len(want))
	}
	for i, w := range want {
		if m.Routes[i].Layout != w.layout || m.Routes[i].Rule != w.rule {
			t.Errorf("Routes[%d] = %s/%s, want %s/%s", i, m.Routes[i].Layout, m.Routes[i].Rule, w.layout, w.rule)
		}
	}
}

func TestDeckModelNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"down", []string{"down"}, 1},
		{"vim keys", []string{"j", "j", "k"}, 1},
		{"clamped at end", []string{"down", "down", "down", "down"}, 2},
		{"clamped at start", []string{"up", "k"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(testModel(), tt.keys...)
			if m.Cursor != tt.want {
				t.Errorf("Cursor = %d, want %d", m.Cursor, tt.want)
			}
		})
	}
}

func TestDeckModelScroll(t *testing.T) {
	m := testModel()
	m.Height = 1
	m, _ = press(m, "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m, _ = press(m, "up")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
}

func TestDeckModelDetails(t *testing.T) {
	m, _ := press(testModel(), "down", "enter")
	if !m.Details {
		t.Fatal("enter should open details")
	}
	view := m.View()
	for _, want := range []string{"Deck Layouts", string(layout.ChartNoSubheadline), "chart", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	m, _ = press(m, "enter")
	if m.Details {
		t.Error("enter should close details")
	}
}

func TestDeckModelQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		var msg tea.KeyMsg
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = key(k)
		}
		_, cmd := testModel().Update(msg)
		if cmd == nil {
			t.Errorf("%q should return a quit command", k)
		}
	}
}

func TestDeckModelWindowSize(t *testing.T) {
	next, _ := testModel().Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := next.(DeckModel).Height; got != 5 {
		t.Errorf("Height = %d, want 5", got)
	}
	next, _ = testModel().Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	if got := next.(DeckModel).Height; got != 32 {
		t.Errorf("Height = %d, want 32", got)
	}
}

func TestHeadlineOf(t *testing.T) {
	tests := []struct {
		slide content.Slide
		want  string
	}{
		{content.Slide{Headline: "Revenue"}, "Revenue"},
		{content.Slide{Title: "Report"}, "Report"},
		{content.Slide{Headline: "two\nlines"}, "two lines"},
		{content.Slide{}, "—"},
		{content.Slide{Headline: strings.Repeat("x", 60)}, strings.Repeat("x", headlineWidth-1) + "…"},
	}
	for _, tt := range tests {
		if got := headlineOf(tt.slide); got != tt.want {
			t.Errorf("headlineOf(%+v) = %q, want %q", tt.slide, got, tt.want)
		}
	}
}
