package shaderparam

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikitalita/shaderconv/ast"
)

func TestRegistryGetGlobalTypeUnknownName(t *testing.T) {
	r := NewRegistry()
	_, err := r.GetGlobalType("not_registered")
	require.Error(t, err)
	var unknown *ErrUnknownGlobal
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "not_registered", unknown.Name)
}

func TestRegistryRegisterThenGetGlobalType(t *testing.T) {
	r := NewRegistry()
	r.Register("fog_density", ast.Float)
	got, err := r.GetGlobalType("fog_density")
	require.NoError(t, err)
	assert.Equal(t, ast.Float, got)
}

func TestRegistryRegisterOverwritesPreviousType(t *testing.T) {
	r := NewRegistry()
	r.Register("tint", ast.Vec3)
	r.Register("tint", ast.Vec4)
	got, err := r.GetGlobalType("tint")
	require.NoError(t, err)
	assert.Equal(t, ast.Vec4, got)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			r.Register("p", ast.Float)
			_, _ = r.GetGlobalType("p")
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	got, err := r.GetGlobalType("p")
	require.NoError(t, err)
	assert.Equal(t, ast.Float, got)
}
