package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/slidelayout/pkg/audit"
	"github.com/matzehuels/slidelayout/pkg/core/analysis"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestSelect(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := New(nil)

	tests := []struct {
		name string
		body string
		want layout.Name
		rule selector.RuleID
	}{
		{"title", `{"title":"Annual Report","subtitle":"2024"}`, layout.TitleWhite, selector.RuleTitle},
		{"contact", `{"type":"contact","extra":{"a":1}}`, layout.ContactUs, selector.RuleContact},
		{"chart", `{"headline":"H","chart":{"kind":"bar"}}`, layout.ChartNoSubheadline, selector.RuleChart},
		{"hint", `{"layoutHint":"Statement Black"}`, "Statement Black", selector.RuleHint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/select", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var got pipeline.Explanation
			decodeBody(t, rec, &got)
			if got.Layout != tt.want || got.Rule != tt.rule {
				t.Errorf("got %q/%q, want %q/%q", got.Layout, got.Rule, tt.want, tt.rule)
			}
		})
	}
}

func TestSelectErrors(t *testing.T) {
	s := New(nil, WithMaxBodyBytes(64))

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"array", `[{"title":"T"}]`},
		{"malformed", `{"title":`},
		{"too large", `{"mainContent":"` + strings.Repeat("x", 100) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/select", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			var e errorResponse
			decodeBody(t, rec, &e)
			if e.Error != "INVALID_INPUT" {
				t.Errorf("error = %q, want INVALID_INPUT", e.Error)
			}
		})
	}
}

func TestDecks(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := New(nil)

	body := `{"slides":[{"title":"T","subtitle":"S"},{"headline":"H","mainContent":"M"},{"icons":[{},{},{}]}]}`
	rec := do(t, s, http.MethodPost, "/v1/decks?explain=true&concurrency=2", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got deckResponse
	decodeBody(t, rec, &got)

	want := []layout.Name{layout.TitleWhite, layout.ContentNoSubtitle, layout.Icons3ColumnsVertical}
	if len(got.Slides) != len(want) {
		t.Fatalf("got %d slides, want %d", len(got.Slides), len(want))
	}
	for i, w := range want {
		if got.Slides[i].Index != i || got.Slides[i].Layout != w {
			t.Errorf("slides[%d] = %+v, want %q", i, got.Slides[i], w)
		}
		if got.Slides[i].Analysis == nil {
			t.Errorf("slides[%d].analysis missing with explain=true", i)
		}
	}
	if got.Stats.Slides != 3 {
		t.Errorf("stats.slides = %d", got.Stats.Slides)
	}
}

func TestDecksErrors(t *testing.T) {
	s := New(nil)
	for _, path := range []string{"/v1/decks?concurrency=-3", "/v1/decks?concurrency=abc"} {
		rec := do(t, s, http.MethodPost, path, `[{}]`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
	rec := do(t, s, http.MethodPost, "/v1/decks", `42`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("scalar deck: status = %d, want 400", rec.Code)
	}
}

func TestRequestIDReachesAudit(t *testing.T) {
	sink := &memorySink{}
	runner := pipeline.NewRunner(nil, sink, nil)
	s := New(runner)

	req := httptest.NewRequest(http.MethodPost, "/v1/select", strings.NewReader(`{"title":"T"}`))
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want echo", got)
	}
	if len(sink.records) != 1 || sink.records[0].RequestID != "abc-123" {
		t.Errorf("audit records = %+v", sink.records)
	}

	rec = do(t, s, http.MethodGet, "/healthz", "")
	if id := rec.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated X-Request-ID = %q, want a UUID", id)
	}
}

func TestLayouts(t *testing.T) {
	s := New(nil)

	rec := do(t, s, http.MethodGet, "/v1/layouts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var all layoutsResponse
	decodeBody(t, rec, &all)
	if len(all.Layouts) != 48 || all.Default != layout.ContentNoSubtitle {
		t.Errorf("layouts = %d, default = %q", len(all.Layouts), all.Default)
	}

	rec = do(t, s, http.MethodGet, "/v1/layouts?group=charts", "")
	var charts layoutsResponse
	decodeBody(t, rec, &charts)
	if len(charts.Layouts) != 4 {
		t.Errorf("charts group has %d layouts, want 4", len(charts.Layouts))
	}
}

func TestLayoutResolve(t *testing.T) {
	s := New(nil)

	tests := []struct {
		path   string
		status int
		name   layout.Name
	}{
		{"/v1/layouts/Contact%20us", http.StatusOK, layout.ContactUs},
		{"/v1/layouts/Content%20%2B%20Chart%2FTable%201", http.StatusOK, layout.ContentChartTable},
		{"/v1/layouts/Two%20Content%20%2B%20Subtitles", http.StatusOK, "Two Content + Subtitles"},
		{"/v1/layouts/Icons%204%20Columns%20Vertical", http.StatusNotFound, ""},
		{"/v1/layouts/%20", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.path, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var got struct {
				Name string `json:"name"`
			}
			decodeBody(t, rec, &got)
			if strings.TrimSpace(got.Name) != string(tt.name) {
				t.Errorf("name = %q, want %q", got.Name, tt.name)
			}
		})
	}
}

func TestRules(t *testing.T) {
	rules, _ := selector.Preset(selector.PresetCatalog)
	runner := pipeline.NewRunner(pipeline.NewRouter(analysis.Options{TwoLineTitleThreshold: 70}, rules), nil, nil)
	s := New(runner, WithPreset(selector.PresetCatalog))

	rec := do(t, s, http.MethodGet, "/v1/rules", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got rulesResponse
	decodeBody(t, rec, &got)
	if got.Preset != selector.PresetCatalog || got.Threshold != 70 {
		t.Errorf("preset/threshold = %q/%d", got.Preset, got.Threshold)
	}
	if len(got.Chain) != len(selector.Chain()) {
		t.Errorf("chain = %v", got.Chain)
	}
	if got.Rules.ChartStrategy != selector.ChartConsolidated {
		t.Errorf("chartStrategy = %q", got.Rules.ChartStrategy)
	}
	if len(got.Missing) != 0 {
		t.Errorf("catalog preset reports missing layouts: %v", got.Missing)
	}

	rec = do(t, s, http.MethodGet, "/v1/rules?format=dot", "")
	if !strings.HasPrefix(rec.Body.String(), "digraph rules {") {
		t.Errorf("dot body = %q", rec.Body.String())
	}
	rec = do(t, s, http.MethodGet, "/v1/rules?format=svg", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("format=svg status = %d, want 400", rec.Code)
	}
}

func TestSchemaAndMeta(t *testing.T) {
	s := New(nil)

	rec := do(t, s, http.MethodGet, "/v1/schema", "")
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"layoutHint"`)) {
		t.Errorf("schema: status %d body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodGet, "/v1/schema?name=nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown schema status = %d, want 404", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/version", "")
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte(`"version"`)) {
		t.Errorf("version: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/v1/select", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/select status = %d, want 405", rec.Code)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(nil).ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}

type memorySink struct {
	records []audit.Record
}

func (m *memorySink) Write(_ context.Context, records []audit.Record) error {
	m.records = append(m.records, records...)
	return nil
}

func (m *memorySink) Name() string { return "memory" }
func (m *memorySink) Close() error { return nil }
