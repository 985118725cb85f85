package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/slidelayout/pkg/core/analysis"
	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/errors"
	"github.com/matzehuels/slidelayout/pkg/registry"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Server defaults.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 4 << 20
	DefaultConcurrency  = 8
)

// Config is the resolved runtime configuration.
type Config struct {
	Preset   string
	Analysis analysis.Options
	Rules    selector.Rules

	// Catalog lists registry layouts in master order. Empty selects the
	// built-in catalog.
	Catalog        []layout.Name
	CatalogDefault layout.Name

	AuditURL string
	Server   Server
}

// Server holds HTTP API settings.
type Server struct {
	Addr         string
	MaxBodyBytes int64
	Concurrency  int
}

// Default returns the reference preset with default settings.
func Default() Config {
	return Config{
		Preset:   selector.PresetReference,
		Analysis: analysis.Options{TwoLineTitleThreshold: analysis.DefaultTwoLineTitleThreshold},
		Rules:    selector.DefaultRules(),
		Server: Server{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			Concurrency:  DefaultConcurrency,
		},
	}
}

// Registry builds the layout registry described by c.
func (c Config) Registry() *registry.Registry {
	if len(c.Catalog) == 0 {
		return registry.Builtin()
	}
	fallback := c.CatalogDefault
	if fallback == "" {
		fallback = c.Rules.Default
	}
	return registry.FromNames(fallback, c.Catalog...)
}

// Validate checks that c can drive a selector and server.
func (c Config) Validate() error {
	r := c.Rules
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Contact, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.ChartStrategy, validation.Required, validation.In(selector.ChartDualVariant, selector.ChartConsolidated)),
		validation.Field(&r.TwoColumn, validation.Required),
		validation.Field(&r.TwoLineTitleSubheadline, validation.Required),
		validation.Field(&r.Subheadline, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Default, validation.Required),
		validation.Field(&r.ImageFallback, validation.When(r.EnableImageFallback, validation.Required)),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "rules")
	}

	icons := r.Icons
	if err := validation.ValidateStruct(&icons,
		validation.Field(&icons.Default, validation.Required),
	); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "icons")
	}
	for n, name := range icons.ByCount {
		if n < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "icons: count %d must be positive", n)
		}
		if strings.TrimSpace(string(name)) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "icons: empty layout for count %d", n)
		}
	}

	charts := r.Charts
	if err := validation.ValidateStruct(&charts,
		validation.Field(&charts.Consolidated, validation.When(r.ChartStrategy == selector.ChartConsolidated, validation.Required)),
		validation.Field(&charts.WithSubheadline, validation.When(r.ChartStrategy == selector.ChartDualVariant, validation.Required)),
		validation.Field(&charts.WithoutSubheadline, validation.When(r.ChartStrategy == selector.ChartDualVariant, validation.Required)),
	); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "charts")
	}

	a := c.Analysis
	if err := validation.ValidateStruct(&a,
		validation.Field(&a.TwoLineTitleThreshold, validation.Required, validation.Min(1)),
	); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "analysis")
	}

	s := c.Server
	if err := validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
		validation.Field(&s.MaxBodyBytes, validation.Min(int64(1))),
		validation.Field(&s.Concurrency, validation.Min(1)),
	); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "server")
	}

	if err := errors.ValidateSinkURL(c.AuditURL); err != nil {
		return err
	}
	return nil
}

// Load reads a config file, picking the format from its extension.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FormatFromPath maps a file extension to a format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported config extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Parse decodes data in the given format and applies it over the selected
// preset.
func Parse(data []byte, format string) (Config, error) {
	var f file
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeUnsupported, "unsupported config format %q", format)
	}

	cfg, err := f.apply()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// file mirrors the on-disk layout. Pointer fields distinguish "unset" from
// zero values.
type file struct {
	Preset                string `toml:"preset" yaml:"preset"`
	TwoLineTitleThreshold *int   `toml:"two_line_title_threshold" yaml:"two_line_title_threshold"`
	ChartStrategy         string `toml:"chart_strategy" yaml:"chart_strategy"`
	EnableImageFallback   *bool  `toml:"enable_image_fallback" yaml:"enable_image_fallback"`

	Icons struct {
		Default string            `toml:"default" yaml:"default"`
		Counts  map[string]string `toml:"counts" yaml:"counts"`
	} `toml:"icons" yaml:"icons"`

	Layouts struct {
		Contact                 string `toml:"contact" yaml:"contact"`
		Title                   string `toml:"title" yaml:"title"`
		ChartWithSubheadline    string `toml:"chart_with_subheadline" yaml:"chart_with_subheadline"`
		ChartWithoutSubheadline string `toml:"chart_without_subheadline" yaml:"chart_without_subheadline"`
		ChartConsolidated       string `toml:"chart_consolidated" yaml:"chart_consolidated"`
		TwoColumn               string `toml:"two_column" yaml:"two_column"`
		TwoLineTitleSubheadline string `toml:"two_line_title_subheadline" yaml:"two_line_title_subheadline"`
		Subheadline             string `toml:"subheadline" yaml:"subheadline"`
		Content                 string `toml:"content" yaml:"content"`
		ImageFallback           string `toml:"image_fallback" yaml:"image_fallback"`
		Default                 string `toml:"default" yaml:"default"`
	} `toml:"layouts" yaml:"layouts"`

	Registry struct {
		Default string   `toml:"default" yaml:"default"`
		Layouts []string `toml:"layouts" yaml:"layouts"`
	} `toml:"registry" yaml:"registry"`

	Audit struct {
		URL string `toml:"url" yaml:"url"`
	} `toml:"audit" yaml:"audit"`

	Server struct {
		Addr         string `toml:"addr" yaml:"addr"`
		MaxBodyBytes int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`
		Concurrency  int    `toml:"concurrency" yaml:"concurrency"`
	} `toml:"server" yaml:"server"`
}

func (f file) apply() (Config, error) {
	cfg := Default()

	rules, err := selector.Preset(f.Preset)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "preset")
	}
	if f.Preset != "" {
		cfg.Preset = strings.ToLower(strings.TrimSpace(f.Preset))
	}

	if f.TwoLineTitleThreshold != nil {
		cfg.Analysis.TwoLineTitleThreshold = *f.TwoLineTitleThreshold
	}
	if f.ChartStrategy != "" {
		cs, err := selector.ParseChartStrategy(f.ChartStrategy)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "chart_strategy")
		}
		rules.ChartStrategy = cs
	}
	if f.EnableImageFallback != nil {
		rules.EnableImageFallback = *f.EnableImageFallback
	}

	setName(&rules.Icons.Default, f.Icons.Default)
	for key, name := range f.Icons.Counts {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "icons.counts key %q", key)
		}
		rules.Icons.ByCount[n] = layout.Name(name)
	}

	l := f.Layouts
	setName(&rules.Contact, l.Contact)
	setName(&rules.Title, l.Title)
	setName(&rules.Charts.WithSubheadline, l.ChartWithSubheadline)
	setName(&rules.Charts.WithoutSubheadline, l.ChartWithoutSubheadline)
	setName(&rules.Charts.Consolidated, l.ChartConsolidated)
	setName(&rules.TwoColumn, l.TwoColumn)
	setName(&rules.TwoLineTitleSubheadline, l.TwoLineTitleSubheadline)
	setName(&rules.Subheadline, l.Subheadline)
	setName(&rules.Content, l.Content)
	setName(&rules.ImageFallback, l.ImageFallback)
	setName(&rules.Default, l.Default)
	cfg.Rules = rules

	for _, n := range f.Registry.Layouts {
		cfg.Catalog = append(cfg.Catalog, layout.Name(n))
	}
	cfg.CatalogDefault = layout.Name(f.Registry.Default)

	cfg.AuditURL = f.Audit.URL
	if f.Server.Addr != "" {
		cfg.Server.Addr = f.Server.Addr
	}
	if f.Server.MaxBodyBytes != 0 {
		cfg.Server.MaxBodyBytes = f.Server.MaxBodyBytes
	}
	if f.Server.Concurrency != 0 {
		cfg.Server.Concurrency = f.Server.Concurrency
	}
	return cfg, nil
}

func setName(dst *layout.Name, v string) {
	if v != "" {
		*dst = layout.Name(v)
	}
}
