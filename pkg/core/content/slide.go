package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// TypeContact is the slide type tag that marks a contact slide.
const TypeContact = "contact"

// Icon is one entry of an icon grid.
type Icon struct {
	Data    string `json:"data,omitempty" jsonschema:"description=Image data (data URI or path)"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Slide is the semantic description of a single slide before rendering.
//
// The zero value is a valid, empty slide.
type Slide struct {
	// Title-slide role.
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`

	// Content-slide role.
	Headline    string `json:"headline,omitempty"`
	Subheadline string `json:"subheadline,omitempty"`
	MainContent string `json:"mainContent,omitempty"`

	// Paired two-column text.
	LeftContent   string `json:"leftContent,omitempty"`
	RightContent  string `json:"rightContent,omitempty"`
	LeftSubtitle  string `json:"leftSubtitle,omitempty"`
	RightSubtitle string `json:"rightSubtitle,omitempty"`

	Icons []Icon `json:"icons,omitempty"`

	// Presence-only signals. Their contents are not interpreted.
	Chart     any `json:"chart,omitempty"`
	ChartData any `json:"chartData,omitempty"`
	Image     any `json:"image,omitempty"`
	ImagePath any `json:"imagePath,omitempty"`
	Table     any `json:"table,omitempty"`
	TableData any `json:"tableData,omitempty"`

	Type       string `json:"type,omitempty" jsonschema:"examples=contact"`
	LayoutHint string `json:"layoutHint,omitempty" jsonschema:"description=Explicit layout name that overrides inference"`

	// Extra holds fields the core does not recognize, keyed by JSON name.
	Extra map[string]json.RawMessage `json:"-"`
}

// HeadlineText returns the headline, or the title when there is no headline.
func (s Slide) HeadlineText() string {
	if s.Headline != "" {
		return s.Headline
	}
	return s.Title
}

// Present reports whether a presence-only value counts as set.
// nil, false, numeric zero and the empty string are absent; anything else,
// including empty objects and arrays, is present.
func Present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case json.Number:
		return x != "" && x != "0"
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(x, &decoded); err != nil {
			return false
		}
		return Present(decoded)
	default:
		return true
	}
}

// known lists the JSON keys decoded into typed fields.
var known = map[string]bool{
	"title": true, "subtitle": true, "headline": true, "subheadline": true,
	"mainContent": true, "leftContent": true, "rightContent": true,
	"leftSubtitle": true, "rightSubtitle": true, "icons": true,
	"chart": true, "chartData": true, "image": true, "imagePath": true,
	"table": true, "tableData": true, "type": true, "layoutHint": true,
}

// UnmarshalJSON decodes a slide leniently. Only a non-object document is an
// error; ill-typed fields are dropped.
func (s *Slide) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Slide{}
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("slide must be a JSON object: %w", err)
	}

	out := Slide{
		Title:         str(fields["title"]),
		Subtitle:      str(fields["subtitle"]),
		Headline:      str(fields["headline"]),
		Subheadline:   str(fields["subheadline"]),
		MainContent:   str(fields["mainContent"]),
		LeftContent:   str(fields["leftContent"]),
		RightContent:  str(fields["rightContent"]),
		LeftSubtitle:  str(fields["leftSubtitle"]),
		RightSubtitle: str(fields["rightSubtitle"]),
		Icons:         icons(fields["icons"]),
		Chart:         signal(fields["chart"]),
		ChartData:     signal(fields["chartData"]),
		Image:         signal(fields["image"]),
		ImagePath:     signal(fields["imagePath"]),
		Table:         signal(fields["table"]),
		TableData:     signal(fields["tableData"]),
		Type:          str(fields["type"]),
		LayoutHint:    str(fields["layoutHint"]),
	}
	for k, v := range fields {
		if known[k] {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}
	*s = out
	return nil
}

// MarshalJSON writes the typed fields merged with Extra. Keys are sorted at
// every depth, Extra values included, so equal slides encode identically.
func (s Slide) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(s.Extra)+8)
	for k, v := range s.Extra {
		m[k] = canonical(v)
	}
	typed := map[string]string{
		"title": s.Title, "subtitle": s.Subtitle,
		"headline": s.Headline, "subheadline": s.Subheadline,
		"mainContent": s.MainContent,
		"leftContent": s.LeftContent, "rightContent": s.RightContent,
		"leftSubtitle": s.LeftSubtitle, "rightSubtitle": s.RightSubtitle,
		"type": s.Type, "layoutHint": s.LayoutHint,
	}
	for k, v := range typed {
		if v != "" {
			m[k] = v
		}
	}
	if len(s.Icons) > 0 {
		m["icons"] = s.Icons
	}
	signals := map[string]any{
		"chart": s.Chart, "chartData": s.ChartData,
		"image": s.Image, "imagePath": s.ImagePath,
		"table": s.Table, "tableData": s.TableData,
	}
	for k, v := range signals {
		if v != nil {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// Clone returns a copy of s whose Extra and Icons can be modified without
// affecting s.
func (s Slide) Clone() Slide {
	out := s
	out.Extra = maps.Clone(s.Extra)
	if s.Icons != nil {
		out.Icons = append([]Icon(nil), s.Icons...)
	}
	return out
}

// canonical decodes raw so that re-encoding sorts nested object keys.
// Numbers keep their literal form. Undecodable values are passed through.
func canonical(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	return v
}

func str(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

func signal(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func icons(raw json.RawMessage) []Icon {
	if len(raw) == 0 {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return nil
	}
	out := make([]Icon, len(elems))
	for i, e := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e, &fields); err != nil {
			continue
		}
		out[i] = Icon{
			Data:    str(fields["data"]),
			Title:   str(fields["title"]),
			Content: str(fields["content"]),
		}
	}
	return out
}
