package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Rules.ChartStrategy != selector.ChartDualVariant {
		t.Errorf("ChartStrategy = %v, want %v", cfg.Rules.ChartStrategy, selector.ChartDualVariant)
	}
	if got := cfg.Registry().Len(); got != 48 {
		t.Errorf("Registry().Len() = %d, want 48", got)
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
preset = "catalog"
two_line_title_threshold = 70
enable_image_fallback = false

[icons.counts]
"6" = "Icons 2 x 3 Columns"

[layouts]
contact = "Contact Slide"

[server]
addr = ":9090"
`)
	cfg, err := Parse(data, FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Preset != selector.PresetCatalog {
		t.Errorf("Preset = %q, want %q", cfg.Preset, selector.PresetCatalog)
	}
	if cfg.Analysis.TwoLineTitleThreshold != 70 {
		t.Errorf("threshold = %d, want 70", cfg.Analysis.TwoLineTitleThreshold)
	}
	if cfg.Rules.EnableImageFallback {
		t.Error("EnableImageFallback = true, want false")
	}
	if got := cfg.Rules.Icons.Lookup(6); got != "Icons 2 x 3 Columns" {
		t.Errorf("Icons.Lookup(6) = %q", got)
	}
	if got := cfg.Rules.Icons.Lookup(4); got != layout.Icons4ColumnsContent {
		t.Errorf("Icons.Lookup(4) = %q, want preset value %q", got, layout.Icons4ColumnsContent)
	}
	if cfg.Rules.Contact != "Contact Slide" {
		t.Errorf("Contact = %q", cfg.Rules.Contact)
	}
	if cfg.Rules.Title != layout.TitleWhite {
		t.Errorf("Title = %q, want untouched preset value", cfg.Rules.Title)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.Concurrency != DefaultConcurrency {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
chart_strategy: consolidated
layouts:
  chart_consolidated: "Content + Chart/Table 1"
registry:
  default: "Blank"
  layouts: ["Blank", "~", "Content + Chart/Table 1"]
audit:
  url: "file:///tmp/audit.jsonl"
`)
	cfg, err := Parse(data, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Rules.ChartStrategy != selector.ChartConsolidated {
		t.Errorf("ChartStrategy = %v", cfg.Rules.ChartStrategy)
	}
	reg := cfg.Registry()
	if reg.Len() != 2 {
		t.Errorf("Registry().Len() = %d, want 2", reg.Len())
	}
	if reg.Default() != "Blank" {
		t.Errorf("Registry().Default() = %q, want Blank", reg.Default())
	}
	if cfg.AuditURL != "file:///tmp/audit.jsonl" {
		t.Errorf("AuditURL = %q", cfg.AuditURL)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []string{FormatTOML, FormatYAML} {
		cfg, err := Parse(nil, format)
		if err != nil {
			t.Fatalf("Parse(nil, %s) error: %v", format, err)
		}
		if cfg.Preset != selector.PresetReference {
			t.Errorf("%s: Preset = %q", format, cfg.Preset)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		code   errors.Code
	}{
		{"unknown preset", FormatTOML, `preset = "fancy"`, errors.ErrCodeInvalidConfig},
		{"unknown strategy", FormatTOML, `chart_strategy = "pie"`, errors.ErrCodeInvalidConfig},
		{"bad icon count", FormatTOML, "[icons.counts]\nfour = \"X\"", errors.ErrCodeInvalidConfig},
		{"zero icon count", FormatTOML, "[icons.counts]\n\"0\" = \"X\"", errors.ErrCodeInvalidConfig},
		{"unknown toml key", FormatTOML, `colour = "red"`, errors.ErrCodeInvalidConfig},
		{"unknown yaml key", FormatYAML, `colour: red`, errors.ErrCodeInvalidConfig},
		{"zero threshold", FormatTOML, `two_line_title_threshold = 0`, errors.ErrCodeInvalidConfig},
		{"bad sink", FormatTOML, "[audit]\nurl = \"ftp://host\"", errors.ErrCodeInvalidSink},
		{"bad format", "ini", ``, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("GetCode() = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateImageFallback(t *testing.T) {
	cfg := Default()
	cfg.Rules.ImageFallback = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error when image fallback is enabled without a layout")
	}
	cfg.Rules.EnableImageFallback = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil when image fallback is disabled", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidelayout.yml")
	if err := os.WriteFile(path, []byte("preset: catalog\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Preset != selector.PresetCatalog {
		t.Errorf("Preset = %q", cfg.Preset)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.toml", FormatTOML, false},
		{"a.YAML", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.json", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
		if tt.wantErr && !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("FormatFromPath(%q) error = %v, want UNSUPPORTED", tt.path, err)
		}
	}
}
