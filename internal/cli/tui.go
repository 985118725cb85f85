package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	detailBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// headlineWidth caps the headline column, in runes.
const headlineWidth = 48

// browseCommand creates the browse command for exploring a routed deck.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [deck]",
		Short: "Browse a deck and the layout chosen for each slide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slides, err := readDeck(cmd, inputPath(args))
			if err != nil {
				return err
			}
			if len(slides) == 0 {
				printWarning("deck is empty")
				return nil
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			model := NewDeckModel(slides, router(cfg))
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// DeckModel - Interactive deck browser
// =============================================================================

// DeckModel is the bubbletea model for browsing routed slides.
type DeckModel struct {
	Slides  []content.Slide
	Routes  []pipeline.Explanation
	Cursor  int
	Height  int
	Offset  int
	Details bool
}

// NewDeckModel routes every slide with router and returns a browser model.
func NewDeckModel(slides []content.Slide, router *pipeline.Router) DeckModel {
	routes := make([]pipeline.Explanation, len(slides))
	for i, s := range slides {
		routes[i] = router.Explain(s)
	}
	return DeckModel{
		Slides: slides,
		Routes: routes,
		Height: 15,
	}
}

func (m DeckModel) Init() tea.Cmd {
	return nil
}

func (m DeckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Slides)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Details = !m.Details
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DeckModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Deck Layouts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Slides))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		r := m.Routes[i]
		rows = append(rows, []string{cursor, fmt.Sprintf("%d", i), headlineOf(m.Slides[i]), r.Layout.String(), string(r.Rule)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Headline", "Layout", "Rule").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			isCurrent := m.Offset+row == m.Cursor
			base := lipgloss.NewStyle()
			if col == 1 || col == 4 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Details && m.Cursor < len(m.Routes) {
		b.WriteString(m.detailView(m.Routes[m.Cursor]))
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Slides))))

	return b.String()
}

// detailView renders the analysis behind one routing decision.
func (m DeckModel) detailView(exp pipeline.Explanation) string {
	a := exp.Analysis
	lines := []string{
		detailKeyStyle.Render("layout") + StyleHighlight.Render(exp.Layout.String()),
		detailKeyStyle.Render("rule") + string(exp.Rule),
		detailKeyStyle.Render("features") + strings.Join(features(a), ", "),
		detailKeyStyle.Render("length") + fmt.Sprintf("%d", a.ContentLength),
	}
	if a.HasLayoutHint() {
		lines = append(lines, detailKeyStyle.Render("hint")+a.LayoutHint.String())
	}
	return detailBoxStyle.Render(strings.Join(lines, "\n"))
}

// =============================================================================
// Helpers
// =============================================================================

// headlineOf returns a one-line summary of a slide for list display.
func headlineOf(s content.Slide) string {
	text := strings.Join(strings.Fields(s.HeadlineText()), " ")
	if text == "" {
		return "—"
	}
	return truncate(text, headlineWidth)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
