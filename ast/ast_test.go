package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataTypeIsSampler(t *testing.T) {
	for _, dt := range []DataType{Sampler2D, ISampler2D, USampler2D, Sampler2DArray,
		ISampler2DArray, USampler2DArray, Sampler3D, ISampler3D, USampler3D,
		SamplerCube, SamplerCubeArray} {
		assert.True(t, dt.IsSampler(), "%v should be a sampler", dt)
	}
	for _, dt := range []DataType{Void, Bool, Float, Vec3, Mat4} {
		assert.False(t, dt.IsSampler(), "%v should not be a sampler", dt)
	}
}

func TestDataTypeIsMatrix(t *testing.T) {
	assert.True(t, Mat2.IsMatrix())
	assert.True(t, Mat3.IsMatrix())
	assert.True(t, Mat4.IsMatrix())
	assert.False(t, Vec4.IsMatrix())
	assert.False(t, Float.IsMatrix())
}

func TestDataTypeIsIntegerExcludesFloatAndSamplers(t *testing.T) {
	for _, dt := range []DataType{Int, Ivec2, Ivec3, Ivec4, Uint, Uvec2, Uvec3, Uvec4, Bool, Bvec2, Bvec3, Bvec4} {
		assert.True(t, dt.IsInteger(), "%v should be integer-backed", dt)
	}
	for _, dt := range []DataType{Float, Vec2, Vec3, Vec4, Mat3, Sampler2D} {
		assert.False(t, dt.IsInteger(), "%v should not be integer-backed", dt)
	}
}

func TestDataTypeIsUnsignedIsStrictSubsetOfInteger(t *testing.T) {
	for _, dt := range []DataType{Uint, Uvec2, Uvec3, Uvec4} {
		assert.True(t, dt.IsUnsigned())
		assert.True(t, dt.IsInteger())
	}
	assert.False(t, Int.IsUnsigned())
	assert.False(t, Float.IsUnsigned())
}

func TestDataTypeGLSLNameRoundTripsEveryEnumerator(t *testing.T) {
	want := map[DataType]string{
		Void: "void", Bool: "bool", Float: "float", Vec3: "vec3", Mat4: "mat4",
		Sampler2D: "sampler2D", USampler3D: "usampler3D", SamplerCubeArray: "samplerCubeArray",
	}
	for dt, name := range want {
		assert.Equal(t, name, dt.GLSLName(), "DataType(%d)", dt)
	}
}

func TestDataTypeGLSLNameOutOfRangeIsUnknown(t *testing.T) {
	assert.Equal(t, "?", DataType(255).GLSLName())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", StageVertex.String())
	assert.Equal(t, "fragment", StageFragment.String())
	assert.Equal(t, "compute", StageCompute.String())
	assert.Equal(t, "?", Stage(255).String())
}
