package action

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitalita/shaderconv/ast"
)

func TestNewDefaultIdentifierActionsNeverZeroFilterOrRepeat(t *testing.T) {
	d := NewDefaultIdentifierActions()
	// Zero value of ast.Filter/ast.Repeat is the "default" sentinel; the
	// constructor must pick a concrete filter/repeat so the lowerer's
	// "still default" failure check (spec §4.1 Samplers) only fires on a
	// genuinely unresolved uniform, never on every uniform.
	assert.NotEqual(t, ast.FilterDefault, d.DefaultFilter)
	assert.NotEqual(t, ast.RepeatDefault, d.DefaultRepeat)
	assert.Equal(t, ast.FilterNearest, d.DefaultFilter)
	assert.Equal(t, ast.RepeatDisable, d.DefaultRepeat)
}

func TestNewDefaultIdentifierActionsMapsAreNonNil(t *testing.T) {
	d := NewDefaultIdentifierActions()
	require.NotNil(t, d.Renames)
	require.NotNil(t, d.RenderModeDefines)
	require.NotNil(t, d.UsageDefines)
	require.NotNil(t, d.CustomSamplers)
	// Writing into every map must not panic.
	d.Renames["TIME"] = "u_time"
	d.RenderModeDefines["skip_vertex_transform"] = "SKIP_TRANSFORM_USED"
	d.UsageDefines["SCREEN_UV"] = "USE_SCREEN_UV"
	d.CustomSamplers["tex"] = "tex_linear_repeat"
}

func TestNewIdentifierActionsMapsAreNonNilAndUniformsEmpty(t *testing.T) {
	a := NewIdentifierActions()
	require.NotNil(t, a.EntryPointStages)
	require.NotNil(t, a.RenderModeValues)
	require.NotNil(t, a.RenderModeFlags)
	require.NotNil(t, a.UsageFlags)
	require.NotNil(t, a.WriteFlags)
	assert.Empty(t, a.Uniforms)
}

func TestCollectUniformDedupsByNamePreservingFirstSeen(t *testing.T) {
	a := NewIdentifierActions()
	first := &ast.Uniform{Name: "albedo", Type: ast.Sampler2D}
	second := &ast.Uniform{Name: "albedo", Type: ast.Vec4} // same name, different decl
	other := &ast.Uniform{Name: "roughness", Type: ast.Float}

	a.CollectUniform(first)
	a.CollectUniform(second)
	a.CollectUniform(other)

	want := []*ast.Uniform{first, other}
	if diff := cmp.Diff(want, a.Uniforms); diff != "" {
		t.Fatalf("Uniforms mismatch (-want +got):\n%s", diff)
	}
}
