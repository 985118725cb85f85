package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
)

// DefaultTwoLineTitleThreshold is the headline length above which a title is
// expected to wrap onto a second line.
const DefaultTwoLineTitleThreshold = 60

// contactKeyword marks a contact slide when found in the headline.
const contactKeyword = "contact"

// Analysis is the set of features the selector routes on.
type Analysis struct {
	IsTitle             bool        `json:"isTitle"`
	IsContact           bool        `json:"isContact"`
	HasHeadline         bool        `json:"hasHeadline"`
	HasTwoLineTitle     bool        `json:"hasTwoLineTitle"`
	HasSubheadline      bool        `json:"hasSubheadline"`
	HasMainContent      bool        `json:"hasMainContent"`
	ContentLength       int         `json:"contentLength"`
	HasLeftRightContent bool        `json:"hasLeftRightContent"`
	HasIcons            bool        `json:"hasIcons"`
	IconCount           int         `json:"iconCount"`
	HasChart            bool        `json:"hasChart"`
	HasImage            bool        `json:"hasImage"`
	HasTable            bool        `json:"hasTable"`
	LayoutHint          layout.Name `json:"layoutHint,omitempty"`
}

// HasLayoutHint reports whether the caller supplied an explicit layout.
func (a Analysis) HasLayoutHint() bool { return a.LayoutHint != "" }

// Options configures an [Analyzer].
type Options struct {
	// TwoLineTitleThreshold is the code point count a headline must exceed
	// to count as a two-line title. Zero selects the default (60); negative
	// values are treated as zero.
	TwoLineTitleThreshold int
}

// Analyzer computes an [Analysis] for slides. It holds only immutable
// options and is safe for concurrent use.
type Analyzer struct {
	threshold int
}

// New returns an Analyzer configured by opts.
func New(opts Options) *Analyzer {
	threshold := opts.TwoLineTitleThreshold
	switch {
	case threshold == 0:
		threshold = DefaultTwoLineTitleThreshold
	case threshold < 0:
		threshold = 0
	}
	return &Analyzer{threshold: threshold}
}

// Threshold returns the effective two-line title threshold.
func (z *Analyzer) Threshold() int { return z.threshold }

var defaultAnalyzer = New(Options{})

// Analyze inspects s with default options.
func Analyze(s content.Slide) Analysis {
	return defaultAnalyzer.Analyze(s)
}

// Analyze inspects s and returns its routing features.
func (z *Analyzer) Analyze(s content.Slide) Analysis {
	headline := s.HeadlineText()

	return Analysis{
		IsTitle:             s.Title != "" && s.Subtitle != "" && s.MainContent == "",
		IsContact:           s.Type == content.TypeContact || containsFold(s.Headline, contactKeyword),
		HasHeadline:         headline != "",
		HasTwoLineTitle:     utf8.RuneCountInString(headline) > z.threshold,
		HasSubheadline:      s.Subheadline != "" || s.Subtitle != "",
		HasMainContent:      s.MainContent != "",
		ContentLength:       utf8.RuneCountInString(s.MainContent),
		HasLeftRightContent: s.LeftContent != "" && s.RightContent != "",
		HasIcons:            len(s.Icons) > 0,
		IconCount:           len(s.Icons),
		HasChart:            content.Present(s.Chart) || content.Present(s.ChartData),
		HasImage:            content.Present(s.Image) || content.Present(s.ImagePath),
		HasTable:            content.Present(s.Table) || content.Present(s.TableData),
		LayoutHint:          layout.Name(s.LayoutHint),
	}
}

func containsFold(s, substr string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), substr)
}
