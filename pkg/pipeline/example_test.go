package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/slidelayout/pkg/core/analysis"
	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

func ExampleLayoutForContent() {
	slide := content.Slide{
		Headline:    "Quarterly results",
		Subheadline: "Revenue by region",
		MainContent: "Revenue grew in every region.",
	}
	fmt.Println(pipeline.LayoutForContent(slide))
	// Output:
	// Content w/Sub-headline
}

func ExampleRouter_Explain() {
	rules, _ := selector.Preset(selector.PresetCatalog)
	router := pipeline.NewRouter(analysis.Options{}, rules)

	exp := router.Explain(content.Slide{
		Headline: "Four pillars",
		Icons:    make([]content.Icon, 4),
	})
	fmt.Println(exp.Layout)
	fmt.Println(exp.Rule, exp.Analysis.IconCount)
	// Output:
	// Icons 4 Columns + Content
	// icons 4
}

func ExampleRunner_RouteDeck() {
	runner := pipeline.NewRunner(nil, nil, nil)
	slides := []content.Slide{
		{Title: "Annual Report", Subtitle: "2024"},
		{Headline: "Overview", MainContent: "..."},
		{Type: content.TypeContact},
	}
	result, err := runner.RouteDeck(context.Background(), slides, pipeline.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range result.Slides {
		fmt.Printf("%d %s (%s)\n", s.Index, s.Layout, s.Rule)
	}
	// Output:
	// 0 Title White - reports and presentations (hIHS) (title)
	// 1 Content - no subtitle (main-content)
	// 2 Contact us (contact)
}
