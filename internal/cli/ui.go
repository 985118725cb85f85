package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/slidelayout/pkg/core/analysis"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
	"github.com/matzehuels/slidelayout/pkg/registry"
)

// out receives human-readable status output. Machine-readable output (JSON,
// DOT, SVG, schemas) goes to the command's own writer instead.
var out io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(out, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Routing Output
// =============================================================================

// printExplanation prints the layout, the winning rule and the features
// that were present on the slide.
func printExplanation(exp pipeline.Explanation) {
	printKeyValue("layout", StyleHighlight.Render(exp.Layout.String()))
	printKeyValue("rule", string(exp.Rule))
	printKeyValue("features", strings.Join(features(exp.Analysis), ", "))
	if exp.Analysis.HasHeadline {
		printKeyValue("length", fmt.Sprintf("%d", exp.Analysis.ContentLength))
	}
}

// features lists the set flags of a, in a stable order.
func features(a analysis.Analysis) []string {
	flags := []struct {
		set  bool
		name string
	}{
		{a.HasLayoutHint(), "hint"},
		{a.IsContact, "contact"},
		{a.IsTitle, "title"},
		{a.HasIcons, fmt.Sprintf("icons(%d)", a.IconCount)},
		{a.HasChart, "chart"},
		{a.HasTable, "table"},
		{a.HasLeftRightContent, "two-column"},
		{a.HasHeadline, "headline"},
		{a.HasTwoLineTitle, "two-line"},
		{a.HasSubheadline, "subheadline"},
		{a.HasMainContent, "main-content"},
		{a.HasImage, "image"},
	}
	var names []string
	for _, f := range flags {
		if f.set {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return []string{"none"}
	}
	return names
}

// printStats prints deck statistics on a single line, rules in chain order.
func printStats(stats pipeline.Stats) {
	parts := []string{fmt.Sprintf("%d slides", stats.Slides)}
	for _, id := range selector.Chain() {
		if n := stats.ByRule[id]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, id))
		}
	}
	parts = append(parts, fmt.Sprintf("%d layouts", len(stats.ByLayout)))
	fmt.Fprintln(out, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// renderResults renders per-slide routing results as a table.
func renderResults(results []pipeline.SlideResult) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{fmt.Sprintf("%d", r.Index), r.Layout.String(), string(r.Rule)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Layout", "Rule").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// renderLayouts renders registry entries as a table. Layouts named in used
// are highlighted.
func renderLayouts(layouts []registry.Layout, used map[layout.Name]bool) string {
	rows := make([][]string, len(layouts))
	for i, l := range layouts {
		mark := ""
		if used[l.Name] {
			mark = iconSuccess
		}
		rows[i] = []string{l.Group, l.Name.String(), mark}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Group", "Layout", "Rules").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < len(layouts) && used[layouts[row].Name] {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// sortedKeys returns the keys of m sorted by name.
func sortedKeys[V any](m map[layout.Name]V) []layout.Name {
	names := make([]layout.Name, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
