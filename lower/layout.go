package lower

import "github.com/nikitalita/shaderconv/ast"

// alignment implements spec §4.1's alignment(T, isArray) rule.
func alignment(t ast.DataType, isArray bool) int {
	if isArray {
		return 16
	}
	switch t {
	case ast.Bool, ast.Int, ast.Uint, ast.Float:
		return 4
	case ast.Bvec2, ast.Ivec2, ast.Uvec2, ast.Vec2:
		return 8
	default:
		return 16
	}
}

// baseSize implements spec §4.1's size(T, N=0) std140 scalar/vector/matrix
// size rule.
func baseSize(t ast.DataType) int {
	switch t {
	case ast.Bool, ast.Int, ast.Uint, ast.Float:
		return 4
	case ast.Bvec2, ast.Ivec2, ast.Uvec2, ast.Vec2:
		return 8
	case ast.Bvec3, ast.Ivec3, ast.Uvec3, ast.Vec3:
		return 12
	case ast.Bvec4, ast.Ivec4, ast.Uvec4, ast.Vec4:
		return 16
	case ast.Mat2:
		return 32
	case ast.Mat3:
		return 48
	case ast.Mat4:
		return 64
	default:
		return 16
	}
}

// roundUp rounds x up to the nearest multiple of m (m > 0).
func roundUp(x, m int) int {
	if m <= 0 {
		return x
	}
	if x%m == 0 {
		return x
	}
	return x + (m - x%m)
}

// size implements spec §4.1's size(T, N) rule, covering both the scalar and
// array forms.
func size(t ast.DataType, arraySize int) int {
	base := baseSize(t)
	if arraySize <= 0 {
		return base
	}
	return roundUp(base*arraySize, 16*arraySize)
}

// uniformLayout is the result of laying out one non-sampler, non-instance
// uniform into the std140-like buffer (a global-scoped one takes a single
// uint slot).
type uniformLayout struct {
	Name   string
	Offset int
	Size   int
	Align  int
}

// layoutUniforms implements the full "Uniform layout" algorithm of spec
// §4.1: non-sampler, non-instance uniforms are sorted by declaration order
// (the caller must already hand them in that order) into a std140-like
// buffer; global-scoped uniforms contribute a single uint32 slot each,
// instance-scoped uniforms contribute nothing (resolved at reference site
// instead — see lower.go's variable-reference resolution).
func layoutUniforms(uniforms []*ast.Uniform) (layouts []uniformLayout, totalSize int, err error) {
	running := 0
	for _, u := range uniforms {
		if u.Type.IsSampler() {
			continue
		}
		switch u.Scope {
		case ast.ScopeInstance:
			continue
		case ast.ScopeGlobal:
			a := alignment(ast.Uint, false)
			s := size(ast.Uint, 0)
			offset := roundUp(running, a)
			layouts = append(layouts, uniformLayout{Name: u.Name, Offset: offset, Size: s, Align: a})
			running = offset + s
		case ast.ScopeLocal:
			if u.ArraySize < 0 {
				return nil, 0, invariant("layoutUniforms", "uniform %q has a negative array size", u.Name)
			}
			a := alignment(u.Type, u.ArraySize > 0)
			s := size(u.Type, u.ArraySize)
			offset := roundUp(running, a)
			layouts = append(layouts, uniformLayout{Name: u.Name, Offset: offset, Size: s, Align: a})
			running = offset + s
		default:
			return nil, 0, invariant("layoutUniforms", "uniform %q has unknown scope %d", u.Name, u.Scope)
		}
	}
	return layouts, roundUp(running, 16), nil
}
