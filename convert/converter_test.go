package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// convertOK runs the full Converter pipeline and fails the test (with the
// recorded diagnostic) if conversion does not succeed.
func convertOK(t *testing.T, source string) string {
	t.Helper()
	c := New(source)
	require.True(t, c.Convert(), "convert(%q) failed: %s (line %d)", source, c.ErrorText(), c.ErrorLine())
	return c.Emit()
}

// TestE1ParticlesVertexRenamedToProcess covers spec §8 E1: the particles
// entry point rename, and that the source is classified legacy first.
func TestE1ParticlesVertexRenamedToProcess(t *testing.T) {
	source := "shader_type particles; void vertex() { float x = 1.0; }"
	require.True(t, New(source).IsLegacy(), "E1 source should classify as legacy")

	out := convertOK(t, source)
	assert.Contains(t, out, "void process()")
	assert.NotContains(t, out, "void vertex()")
}

// TestE2FunctionRenameCollisionIsUniquified covers spec §8 E2: renaming
// `vertex` to `process` when `process` is already declared must not
// silently collide — the existing `process` is uniquified to `process_`
// and `vertex` takes the name `process`.
func TestE2FunctionRenameCollisionIsUniquified(t *testing.T) {
	source := "shader_type particles; void vertex() {}  void process() {}"
	out := convertOK(t, source)
	assert.Contains(t, out, "void process()")
	assert.Contains(t, out, "void process_()")
	assert.NotContains(t, out, "void vertex()")
}

// TestE3ClearcoatGlossPlainWriteInverted covers spec §8 E3: a plain write
// renames CLEARCOAT_GLOSS to CLEARCOAT_ROUGHNESS and inverts the assigned
// value (roughness = 1 - gloss).
func TestE3ClearcoatGlossPlainWriteInverted(t *testing.T) {
	source := "shader_type spatial; void fragment() { CLEARCOAT_GLOSS = 1.0; }"
	out := convertOK(t, source)
	assert.NotContains(t, out, "CLEARCOAT_GLOSS")
	assert.Contains(t, out, "CLEARCOAT_ROUGHNESS")
	assert.Contains(t, out, "CLEARCOAT_ROUGHNESS = (1.0 - (1.0))")
}

// TestE4ClearcoatGlossCompoundWriteInverted covers spec §8 E4: a compound
// write `*=` rewrites algebraically: roughness = 1 - ((1 - roughness) * e).
func TestE4ClearcoatGlossCompoundWriteInverted(t *testing.T) {
	source := "shader_type spatial; void fragment() { CLEARCOAT_GLOSS *= 0.5; }"
	out := convertOK(t, source)
	assert.NotContains(t, out, "CLEARCOAT_GLOSS")
	assert.Contains(t, out, "CLEARCOAT_ROUGHNESS")
	// The rewritten expression references the roughness value twice: once
	// for the LHS, once for the inverted read inside the compound operand.
	assert.Equal(t, 2, strings.Count(out, "CLEARCOAT_ROUGHNESS"))
	assert.Contains(t, out, "CLEARCOAT_ROUGHNESS = (1.0 - ((1.0 - CLEARCOAT_ROUGHNESS) * (0.5)))")
}

// TestClearcoatGlossComposedWriteIsWrappedForRead covers spec §4.4.1's
// compose case: a write whose result is itself read as a value (here,
// CLEARCOAT_GLOSS's compound write nested inside an assignment's RHS)
// gets the write rule applied, then the whole rewritten write
// sub-expression wrapped again in `(1.0 - (...))` for the outer read.
func TestClearcoatGlossComposedWriteIsWrappedForRead(t *testing.T) {
	source := "shader_type spatial; void fragment() { float y = (CLEARCOAT_GLOSS *= 0.5); }"
	out := convertOK(t, source)
	assert.Contains(t, out, "float y = ((1.0 - (CLEARCOAT_ROUGHNESS = (1.0 - ((1.0 - CLEARCOAT_ROUGHNESS) * (0.5))))));")
}

// TestClearcoatGlossStandaloneWriteIsNotWrappedForRead ensures the
// compose wrap is suppressed for an ordinary statement-level write,
// where the preceding token is `{` (spec §4.4.1's suppression rule).
func TestClearcoatGlossStandaloneWriteIsNotWrappedForRead(t *testing.T) {
	source := "shader_type spatial; void fragment() { CLEARCOAT_GLOSS *= 0.5; }"
	out := convertOK(t, source)
	assert.Contains(t, out, "{ CLEARCOAT_ROUGHNESS = (1.0 - ((1.0 - CLEARCOAT_ROUGHNESS) * (0.5)));")
}

// TestE5IndexWrappedOnceAndIdempotent covers spec §8 E5: a bare INDEX read
// is wrapped in int(...) exactly once, and re-converting the already
// converted source does not wrap it again.
func TestE5IndexWrappedOnceAndIdempotent(t *testing.T) {
	source := "shader_type particles; void vertex() { float foo = INDEX/2; }"
	out := convertOK(t, source)
	assert.Equal(t, 1, strings.Count(out, "int(INDEX)"))

	again := convertOK(t, out)
	assert.Equal(t, out, again, "re-converting already-converted source must be a no-op")
	assert.Equal(t, 1, strings.Count(again, "int(INDEX)"))
}

// TestE5IndexOnAssignmentLHSIsNotWrapped ensures a write to INDEX (legal,
// already int-typed) is left untouched.
func TestE5IndexOnAssignmentLHSIsNotWrapped(t *testing.T) {
	source := "shader_type particles; void vertex() { INDEX = 0; float foo = INDEX/2; }"
	out := convertOK(t, source)
	assert.Contains(t, out, "INDEX = 0")
	assert.Equal(t, 1, strings.Count(out, "int(INDEX)"))
}

// TestE6FloatLiteralNormalizedAndIdempotent covers spec §8 E6.
func TestE6FloatLiteralNormalizedAndIdempotent(t *testing.T) {
	source := "shader_type spatial; const float x = 1f;"
	require.True(t, New(source).IsLegacy(), "E6 source should classify as legacy")

	out := convertOK(t, source)
	assert.Contains(t, out, "1.0f")
	assert.NotContains(t, out, " 1f;")

	again := convertOK(t, out)
	assert.Equal(t, out, again, "re-converting already-normalized source must be a no-op")
}

// TestE7ScreenTextureSynthesizesHintedUniformAndIsIdempotent covers spec
// §8 E7: a removed builtin (SCREEN_TEXTURE) gets a hinted sampler2D
// uniform synthesized right after `shader_type`, under its own name, and
// re-conversion does not insert it a second time.
func TestE7ScreenTextureSynthesizesHintedUniformAndIsIdempotent(t *testing.T) {
	source := "shader_type spatial; void fragment() { vec4 c = texture(SCREEN_TEXTURE, SCREEN_UV); }"
	out := convertOK(t, source)
	assert.Contains(t, out, "uniform sampler2D SCREEN_TEXTURE")
	assert.Contains(t, out, "hint_screen_texture")
	assert.Contains(t, out, "filter_linear_mipmap")
	assert.Equal(t, 1, strings.Count(out, "uniform sampler2D SCREEN_TEXTURE"))
	// The reference itself is untouched — the synthesized uniform carries
	// the built-in's own name.
	assert.Contains(t, out, "texture(SCREEN_TEXTURE, SCREEN_UV)")

	again := convertOK(t, out)
	assert.Equal(t, out, again, "re-converting already-converted source must be a no-op")
	assert.Equal(t, 1, strings.Count(again, "uniform sampler2D SCREEN_TEXTURE"))
}

// TestClassificationExclusivity covers spec §8 property 2: current-dialect
// sources never classify as legacy, curated legacy sources always do, and
// preprocessor presence always forces "not legacy".
func TestClassificationExclusivity(t *testing.T) {
	legacy := []string{
		"shader_type particles; void vertex() {}",
		"shader_type spatial; void fragment() { CLEARCOAT_GLOSS = 1.0; }",
		"shader_type spatial; const float x = 1f;",
		"shader_type spatial; render_mode depth_draw_alpha_prepass;",
	}
	for _, s := range legacy {
		assert.True(t, New(s).IsLegacy(), "expected legacy: %q", s)
	}

	current := []string{
		"shader_type spatial; void fragment() {}",
		"shader_type spatial; global uniform float x;",
		"shader_type spatial; uniform sampler2D tex : hint_screen_texture;",
		"shader_type spatial; const float x = 1.0;",
	}
	for _, s := range current {
		assert.False(t, New(s).IsLegacy(), "expected current: %q", s)
	}

	withPreproc := "#version 450\nshader_type particles; void vertex() {}"
	assert.False(t, New(withPreproc).IsLegacy(), "preprocessor presence must force not-legacy")
}

// TestConvertEmitDeterminism covers spec §8 property 6 for the converter:
// repeated Convert()+Emit() on fresh instances of the same input produce
// byte-identical output.
func TestConvertEmitDeterminism(t *testing.T) {
	source := "shader_type spatial; void fragment() { CLEARCOAT_GLOSS *= 0.5; vec4 c = texture(SCREEN_TEXTURE, SCREEN_UV); }"
	first := convertOK(t, source)
	second := convertOK(t, source)
	assert.Equal(t, first, second)
}

func TestMalformedSourceReportsWithoutPanicking(t *testing.T) {
	c := New("vec4")
	assert.False(t, c.IsLegacy())
	assert.False(t, c.Convert())
	assert.NotEmpty(t, c.ErrorText())
	assert.Equal(t, "", c.Emit())
}

func TestModulateIsUnsupportedRemoval(t *testing.T) {
	c := New("shader_type canvas_item; void fragment() { COLOR = MODULATE; }")
	c.FailOnUnported = true
	assert.False(t, c.Convert())
	assert.Contains(t, c.ErrorText(), "MODULATE")
}
