package lower

import (
	"testing"

	"github.com/nikitalita/shaderconv/action"
	"github.com/nikitalita/shaderconv/ast"
)

// TestSamplerTableDensity checks the sampler-name table rather than the
// texture-uniform list: every (filter, repeat) combination that is not itself
// "default" resolves to a distinct, non-empty name, and the table has
// exactly 12 entries.
func TestSamplerTableDensity(t *testing.T) {
	def := action.NewDefaultIdentifierActions()
	filters := []ast.Filter{
		ast.FilterNearest, ast.FilterLinear,
		ast.FilterNearestMipmap, ast.FilterLinearMipmap,
		ast.FilterNearestMipmapAniso, ast.FilterLinearMipmapAniso,
	}
	repeats := []ast.Repeat{ast.RepeatEnable, ast.RepeatDisable}

	seen := map[string]bool{}
	for _, f := range filters {
		for _, r := range repeats {
			name, err := samplerName(def, "tex", f, r)
			if err != nil {
				t.Fatalf("samplerName(%v, %v): %v", f, r, err)
			}
			if name == "" {
				t.Fatalf("samplerName(%v, %v) returned an empty name", f, r)
			}
			if seen[name] {
				t.Fatalf("duplicate sampler name %q for (%v, %v)", name, f, r)
			}
			seen[name] = true
		}
	}
	if len(seen) != 12 {
		t.Fatalf("got %d distinct sampler names, want 12", len(seen))
	}
}

func TestSamplerNameUsesCustomOverride(t *testing.T) {
	def := action.NewDefaultIdentifierActions()
	def.CustomSamplers["tex"] = "SAMPLER_CUSTOM"
	name, err := samplerName(def, "tex", ast.FilterDefault, ast.RepeatDefault)
	if err != nil {
		t.Fatalf("samplerName: %v", err)
	}
	if name != "SAMPLER_CUSTOM" {
		t.Fatalf("got %q, want SAMPLER_CUSTOM", name)
	}
}

func TestSamplerNameFailsWhenStillDefault(t *testing.T) {
	def := action.NewDefaultIdentifierActions()
	def.DefaultFilter = ast.FilterDefault
	def.DefaultRepeat = ast.RepeatDefault
	if _, err := samplerName(def, "tex", ast.FilterDefault, ast.RepeatDefault); err == nil {
		t.Fatal("expected an error when filter/repeat remain default")
	}
}

func TestSamplerNameRepeatSelectsSecondHalf(t *testing.T) {
	def := action.NewDefaultIdentifierActions()
	clamp, err := samplerName(def, "tex", ast.FilterLinear, ast.RepeatDisable)
	if err != nil {
		t.Fatalf("samplerName: %v", err)
	}
	repeat, err := samplerName(def, "tex", ast.FilterLinear, ast.RepeatEnable)
	if err != nil {
		t.Fatalf("samplerName: %v", err)
	}
	if clamp == repeat {
		t.Fatalf("clamp and repeat variants resolved to the same name %q", clamp)
	}
}
