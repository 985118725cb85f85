package layout

import "strings"

// Name identifies a slide layout (slide master) in an external catalog.
type Name string

// String returns the name as a plain string.
func (n Name) String() string { return string(n) }

// IsZero reports whether the name is empty.
func (n Name) IsZero() bool { return n == "" }

// Canonical returns the name with surrounding whitespace removed.
// Catalogs exported from PowerPoint occasionally carry trailing spaces in
// master names, so registries compare canonical forms.
func (n Name) Canonical() Name { return Name(strings.TrimSpace(string(n))) }

// Well-known layout names used by the built-in rule presets.
const (
	ContactUs                  Name = "Contact us"
	TitleWhite                 Name = "Title White - reports and presentations (hIHS)"
	Icons3ColumnsVertical      Name = "Icons 3 Columns Vertical"
	Icons4ColumnsVertical      Name = "Icons 4 Columns Vertical"
	Icons4ColumnsContent       Name = "Icons 4 Columns + Content"
	ChartWithSubheadline       Name = "Chart w/Sub-headline"
	ChartNoSubheadline         Name = "Chart - no sub-headline"
	ContentChartTable          Name = "Content + Chart/Table 1"
	TwoContentSubtitles        Name = "Two Content + Subtitles"
	ContentTwoLineTitleSubhead Name = "Content w 2 Line Title and Sub-headline"
	ContentSubheadline         Name = "Content w/Sub-headline"
	ContentNoSubtitle          Name = "Content - no subtitle"
)
