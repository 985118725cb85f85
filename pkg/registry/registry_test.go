package registry

import (
	"slices"
	"testing"

	"github.com/matzehuels/slidelayout/pkg/core/layout"
	"github.com/matzehuels/slidelayout/pkg/core/selector"
	"github.com/matzehuels/slidelayout/pkg/errors"
)

func TestBuiltin(t *testing.T) {
	r := Builtin()
	if r.Len() != 48 {
		t.Errorf("Len = %d, want 48", r.Len())
	}
	if r.Default() != layout.ContentNoSubtitle {
		t.Errorf("Default = %q", r.Default())
	}
	for _, l := range r.List() {
		if IsSeparator(l.Name) {
			t.Errorf("separator %q listed", l.Name)
		}
	}
	if got := r.Groups(); len(got) != 11 || got[0] != "content" || got[len(got)-1] != "closing" {
		t.Errorf("Groups = %v", got)
	}
}

func TestResolveTrailingSpace(t *testing.T) {
	r := Builtin()
	l, err := r.Resolve(layout.TwoContentSubtitles)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if l.Name != layout.TwoContentSubtitles {
		t.Errorf("Name = %q, want canonical form", l.Name)
	}
	if !r.Has("Two Content + Subtitles ") {
		t.Error("Has should match the raw master name")
	}
}

func TestResolveNotFound(t *testing.T) {
	r := Builtin()
	_, err := r.Resolve("Icons 4 Columns Vertical")
	if !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Fatalf("err = %v, want LAYOUT_NOT_FOUND", err)
	}
}

func TestResolveOrDefault(t *testing.T) {
	r := Builtin()

	l, fellBack, err := r.ResolveOrDefault("Blank")
	if err != nil || fellBack || l.Name != "Blank" {
		t.Errorf("ResolveOrDefault(Blank) = %+v, %v, %v", l, fellBack, err)
	}

	l, fellBack, err = r.ResolveOrDefault("No Such Layout")
	if err != nil || !fellBack || l.Name != layout.ContentNoSubtitle {
		t.Errorf("ResolveOrDefault(missing) = %+v, %v, %v", l, fellBack, err)
	}

	empty := New("Missing Default")
	if _, _, err := empty.ResolveOrDefault("x"); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("err = %v, want LAYOUT_NOT_FOUND", err)
	}
}

func TestRegister(t *testing.T) {
	r := New("A")
	if !r.Register(Layout{Name: "A", Group: "g1"}) {
		t.Fatal("Register(A) = false")
	}
	r.Register(Layout{Name: "B"})
	if !r.Register(Layout{Name: " A ", Group: "g2"}) {
		t.Fatal("re-Register(A) = false")
	}
	if r.Register(Layout{Name: "~   "}) {
		t.Error("separator should not register")
	}
	if r.Register(Layout{Name: "  "}) {
		t.Error("blank name should not register")
	}

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List = %v", list)
	}
	if list[0].Name != "A" || list[0].Group != "g2" || list[0].Order != 0 {
		t.Errorf("List[0] = %+v, want replaced A at order 0", list[0])
	}
}

func TestFromNames(t *testing.T) {
	r := FromNames("Blank", "Blank", "Title Only", "~ ", "Icons 2 x 3 Columns", "~", "Energy")
	want := []string{"blank", "icons", "energy"}
	if got := r.Groups(); !slices.Equal(got, want) {
		t.Errorf("Groups = %v, want %v", got, want)
	}
	l, _ := r.Resolve("Title Only")
	if l.Group != "blank" {
		t.Errorf("Title Only group = %q", l.Group)
	}
}

func TestValidate(t *testing.T) {
	r := Builtin()

	missing := r.Validate(selector.DefaultRules())
	want := []layout.Name{layout.ChartNoSubheadline, layout.ChartWithSubheadline, layout.Icons4ColumnsVertical}
	if !slices.Equal(missing, want) {
		t.Errorf("reference preset missing = %v, want %v", missing, want)
	}

	catalog, _ := selector.Preset(selector.PresetCatalog)
	if missing := r.Validate(catalog); len(missing) != 0 {
		t.Errorf("catalog preset missing = %v, want none", missing)
	}
}
