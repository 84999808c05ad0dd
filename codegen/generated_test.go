package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitializesAllMaps(t *testing.T) {
	g := New()
	require.NotNil(t, g.StageGlobals)
	require.NotNil(t, g.Code)
	require.NotNil(t, g.UniformOffsets)
	assert.Empty(t, g.Defines)
	assert.Empty(t, g.TextureUniforms)
}

func TestAddDefineDeduplicatesPreservingOrder(t *testing.T) {
	g := New()
	g.AddDefine("USE_SCREEN_UV")
	g.AddDefine("USE_NORMAL_MAP")
	g.AddDefine("USE_SCREEN_UV") // duplicate, must not append again

	assert.Equal(t, []string{"USE_SCREEN_UV", "USE_NORMAL_MAP"}, g.Defines)
}
