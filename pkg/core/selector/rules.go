package selector

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/slidelayout/pkg/core/layout"
)

// ChartStrategy selects how chart slides are routed.
type ChartStrategy string

// Chart strategies.
const (
	// ChartDualVariant routes to one of two chart layouts depending on
	// whether the slide has a subheadline.
	ChartDualVariant ChartStrategy = "dual-variant"

	// ChartConsolidated routes every chart slide to a single layout.
	ChartConsolidated ChartStrategy = "consolidated"
)

// ChartStrategies lists the valid strategies.
var ChartStrategies = []ChartStrategy{ChartDualVariant, ChartConsolidated}

// ParseChartStrategy converts s to a ChartStrategy.
func ParseChartStrategy(s string) (ChartStrategy, error) {
	cs := ChartStrategy(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ChartStrategies, cs) {
		return cs, nil
	}
	return "", fmt.Errorf("invalid chart strategy: %q (must be one of: dual-variant, consolidated)", s)
}

// IconTable maps icon counts to layouts. Counts without an entry route to
// Default.
type IconTable struct {
	ByCount map[int]layout.Name `json:"byCount"`
	Default layout.Name         `json:"default"`
}

// Lookup returns the layout for n icons, falling back to Default.
func (t IconTable) Lookup(n int) layout.Name {
	if name, ok := t.ByCount[n]; ok && name != "" {
		return name
	}
	return t.Default
}

// Counts returns the mapped icon counts in ascending order.
func (t IconTable) Counts() []int {
	return slices.Sorted(maps.Keys(t.ByCount))
}

// ChartLayouts names the layouts used by each chart strategy.
type ChartLayouts struct {
	WithSubheadline    layout.Name `json:"withSubheadline"`
	WithoutSubheadline layout.Name `json:"withoutSubheadline"`
	Consolidated       layout.Name `json:"consolidated"`
}

// Rules is a complete rule table. The zero value is not usable; start from
// [DefaultRules] or [Preset].
type Rules struct {
	Contact layout.Name `json:"contact"`
	Title   layout.Name `json:"title"`

	Icons IconTable `json:"icons"`

	ChartStrategy ChartStrategy `json:"chartStrategy"`
	Charts        ChartLayouts  `json:"charts"`

	TwoColumn layout.Name `json:"twoColumn"`

	TwoLineTitleSubheadline layout.Name `json:"twoLineTitleSubheadline"`
	Subheadline             layout.Name `json:"subheadline"`
	Content                 layout.Name `json:"content"`

	EnableImageFallback bool        `json:"enableImageFallback"`
	ImageFallback       layout.Name `json:"imageFallback"`

	// Default is returned when no rule matches.
	Default layout.Name `json:"default"`
}

// Clone returns a deep copy of r.
func (r Rules) Clone() Rules {
	out := r
	out.Icons.ByCount = maps.Clone(r.Icons.ByCount)
	return out
}

// Names returns every layout name the table can produce, excluding hints,
// deduplicated and sorted.
func (r Rules) Names() []layout.Name {
	set := map[layout.Name]bool{
		r.Contact: true, r.Title: true, r.Icons.Default: true,
		r.TwoColumn: true, r.TwoLineTitleSubheadline: true,
		r.Subheadline: true, r.Content: true, r.Default: true,
	}
	for _, n := range r.Icons.ByCount {
		set[n] = true
	}
	switch r.ChartStrategy {
	case ChartConsolidated:
		set[r.Charts.Consolidated] = true
	default:
		set[r.Charts.WithSubheadline] = true
		set[r.Charts.WithoutSubheadline] = true
	}
	if r.EnableImageFallback {
		set[r.ImageFallback] = true
	}
	delete(set, "")
	return slices.Sorted(maps.Keys(set))
}

// Preset names.
const (
	PresetReference = "reference"
	PresetCatalog   = "catalog"
)

// Presets lists the built-in rule tables by name.
var Presets = []string{PresetReference, PresetCatalog}

// DefaultRules returns the reference rule table.
func DefaultRules() Rules {
	return referenceRules()
}

// Preset returns the named built-in rule table.
func Preset(name string) (Rules, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetReference:
		return referenceRules(), nil
	case PresetCatalog:
		return catalogRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown preset: %q (must be one of: %s)", name, strings.Join(Presets, ", "))
	}
}

func referenceRules() Rules {
	return Rules{
		Contact: layout.ContactUs,
		Title:   layout.TitleWhite,
		Icons: IconTable{
			ByCount: map[int]layout.Name{
				3: layout.Icons3ColumnsVertical,
				4: layout.Icons4ColumnsVertical,
			},
			Default: layout.Icons3ColumnsVertical,
		},
		ChartStrategy: ChartDualVariant,
		Charts: ChartLayouts{
			WithSubheadline:    layout.ChartWithSubheadline,
			WithoutSubheadline: layout.ChartNoSubheadline,
			Consolidated:       layout.ContentChartTable,
		},
		TwoColumn:               layout.TwoContentSubtitles,
		TwoLineTitleSubheadline: layout.ContentTwoLineTitleSubhead,
		Subheadline:             layout.ContentSubheadline,
		Content:                 layout.ContentNoSubtitle,
		EnableImageFallback:     true,
		ImageFallback:           layout.ContentSubheadline,
		Default:                 layout.ContentNoSubtitle,
	}
}

func catalogRules() Rules {
	r := referenceRules()
	r.Icons.ByCount[4] = layout.Icons4ColumnsContent
	r.ChartStrategy = ChartConsolidated
	return r
}
