package registry

import "github.com/matzehuels/slidelayout/pkg/core/layout"

// builtinGroups is the corporate slide master list, grouped as it appears in
// the template's layout pane.
var builtinGroups = []struct {
	group string
	names []layout.Name
}{
	{"content", []layout.Name{
		layout.ContentSubheadline,
		layout.ContentTwoLineTitleSubhead,
		layout.ContentNoSubtitle,
		"Two Content",
		"Two Content + Subtitles ",
		"Content 4 Columns",
		"Content 5 Columns",
		"Content with Sidebar",
		"Title Only",
		"Blank",
		"Content + Image/Icon",
		"Content + Photo White",
		"Content + Photo Black",
		"Content + Photo Blue",
	}},
	{"icons", []layout.Name{
		layout.Icons3ColumnsVertical,
		"Icons 3 Columns Horizontal",
		layout.Icons4ColumnsContent,
		"Icons 4 Columns + Content Black",
		"Icons 4 Columns + Content Blue",
		"Icons 2 x 3 Columns",
	}},
	{"charts", []layout.Name{
		layout.ContentChartTable,
		"Chart - Horizontal 2",
		"Chart + Statement 2",
		"Chart + Statement 3",
	}},
	{"statements", []layout.Name{
		"Statement Photo",
		"Statement Black",
		"Statement White",
	}},
	{"dividers", []layout.Name{
		"Section Header",
		"Divider 4 Photo",
		"Divider 1",
		"Divider 2",
	}},
	{"placeholders", []layout.Name{
		"Two Placeholders",
		"Three Placeholders 1",
		"Three Placeholders 2",
		"Three Placeholders 3",
		"Four Placeholders",
	}},
	{"title", []layout.Name{
		"Title Image Bottom",
		layout.TitleWhite,
	}},
	{"navigation", []layout.Name{
		"Divider Photo 2",
		"Agenda - presentations",
		"TOC - reports",
	}},
	{"authors", []layout.Name{
		"Single Author",
		"2 Authors",
		"3 Authors",
		"4 Authors",
	}},
	{"sectors", []layout.Name{
		"Energy",
		"Companies & Transactions",
	}},
	{"closing", []layout.Name{
		layout.ContactUs,
	}},
}

// Builtin returns a fresh registry holding the corporate catalog. Its default
// template is the plain content layout.
func Builtin() *Registry {
	r := New(layout.ContentNoSubtitle)
	for _, g := range builtinGroups {
		for _, n := range g.names {
			r.Register(Layout{Name: n, Group: g.group})
		}
	}
	return r
}
