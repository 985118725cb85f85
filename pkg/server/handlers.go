package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/slidelayout/pkg/buildinfo"
	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/deck"
	"github.com/matzehuels/slidelayout/pkg/errors"
	"github.com/matzehuels/slidelayout/pkg/observability"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
	"github.com/matzehuels/slidelayout/pkg/registry"
	"github.com/matzehuels/slidelayout/pkg/render/rulegraph"
	"github.com/matzehuels/slidelayout/pkg/schema"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type deckResponse struct {
	Slides     []pipeline.SlideResult `json:"slides"`
	Stats      pipeline.Stats         `json:"stats"`
	AuditError string                 `json:"auditError,omitempty"`
}

type layoutsResponse struct {
	Default layout.Name       `json:"default"`
	Groups  []string          `json:"groups"`
	Layouts []registry.Layout `json:"layouts"`
}

type rulesResponse struct {
	Preset    string            `json:"preset,omitempty"`
	Threshold int               `json:"twoLineTitleThreshold"`
	Chain     []selector.RuleID `json:"chain"`
	Rules     selector.Rules    `json:"rules"`
	Missing   []layout.Name     `json:"missingFromCatalog,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var slide content.Slide
	if err := json.Unmarshal(body, &slide); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode slide"))
		return
	}

	result, err := s.runner.RouteDeck(r.Context(), []content.Slide{slide}, pipeline.Options{
		Explain:     true,
		Concurrency: 1,
		RequestID:   RequestID(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "route slide"))
		return
	}
	res := result.Slides[0]
	writeJSON(w, http.StatusOK, pipeline.Explanation{
		Layout:   res.Layout,
		Rule:     res.Rule,
		Analysis: *res.Analysis,
	})
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	slides, _, err := deck.Parse(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Explain:     queryBool(r, "explain"),
		Concurrency: s.concurrency,
		RequestID:   RequestID(r.Context()),
	}
	if v := r.URL.Query().Get("concurrency"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || pipeline.ValidateConcurrency(n) != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid concurrency %q", v))
			return
		}
		if n > 0 {
			opts.Concurrency = n
		}
	}

	result, err := s.runner.RouteDeck(r.Context(), slides, opts)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "route deck"))
		return
	}
	resp := deckResponse{Slides: result.Slides, Stats: result.Stats}
	if result.AuditErr != nil {
		resp.AuditError = result.AuditErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	all := s.registry.List()
	layouts := make([]registry.Layout, 0, len(all))
	for _, l := range all {
		if group == "" || l.Group == group {
			layouts = append(layouts, l)
		}
	}
	writeJSON(w, http.StatusOK, layoutsResponse{
		Default: s.registry.Default(),
		Groups:  s.registry.Groups(),
		Layouts: layouts,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	if err := errors.ValidateLayoutName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.registry.Resolve(layout.Name(name))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	router := s.runner.Router
	rules := router.Rules()

	switch r.URL.Query().Get("format") {
	case "", "json":
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, rulegraph.ToDOT(rules, rulegraph.Options{}))
		return
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (must be json or dot)", r.URL.Query().Get("format")))
		return
	}

	writeJSON(w, http.StatusOK, rulesResponse{
		Preset:    s.preset,
		Threshold: router.Threshold(),
		Chain:     selector.Chain(),
		Rules:     rules,
		Missing:   s.registry.Validate(rules),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	data, err := schema.JSON(r.URL.Query().Get("name"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "schema"))
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.maxBody)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}
	return data, nil
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(r.Context()))
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{Error: code, Message: errors.UserMessage(err)})
}
