package lower

import (
	"testing"

	"github.com/nikitalita/shaderconv/ast"
)

func TestAlignmentAndSize(t *testing.T) {
	cases := []struct {
		name      string
		typ       ast.DataType
		arraySize int
		wantAlign int
		wantSize  int
	}{
		{"scalar float", ast.Float, 0, 4, 4},
		{"vec2", ast.Vec2, 0, 8, 8},
		{"vec3", ast.Vec3, 0, 16, 12},
		{"vec4", ast.Vec4, 0, 16, 16},
		{"mat4", ast.Mat4, 0, 16, 64},
		{"float array of 3", ast.Float, 3, 16, 48},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := alignment(c.typ, c.arraySize > 0); got != c.wantAlign {
				t.Errorf("alignment = %d, want %d", got, c.wantAlign)
			}
			if got := size(c.typ, c.arraySize); got != c.wantSize {
				t.Errorf("size = %d, want %d", got, c.wantSize)
			}
		})
	}
}

func TestLayoutUniformsInvariant(t *testing.T) {
	uniforms := []*ast.Uniform{
		{Name: "a", Type: ast.Float, Scope: ast.ScopeLocal},
		{Name: "b", Type: ast.Vec3, Scope: ast.ScopeLocal},
		{Name: "c", Type: ast.Mat4, Scope: ast.ScopeLocal},
		{Name: "tex", Type: ast.Sampler2D, Scope: ast.ScopeLocal},
		{Name: "inst", Type: ast.Float, Scope: ast.ScopeInstance},
	}

	layouts, total, err := layoutUniforms(uniforms)
	if err != nil {
		t.Fatalf("layoutUniforms: %v", err)
	}

	// Samplers and instance-scoped uniforms contribute no layout entry.
	if len(layouts) != 3 {
		t.Fatalf("got %d layout entries, want 3: %+v", len(layouts), layouts)
	}

	// Spec §8 "Uniform layout invariant": every entry's offset is a
	// multiple of its own alignment, no two entries overlap, and the
	// total size is a multiple of 16.
	for _, l := range layouts {
		if l.Offset%l.Align != 0 {
			t.Errorf("uniform %q offset %d is not a multiple of its alignment %d", l.Name, l.Offset, l.Align)
		}
	}
	for i := 0; i < len(layouts); i++ {
		for j := i + 1; j < len(layouts); j++ {
			a, b := layouts[i], layouts[j]
			if a.Offset < b.Offset+b.Size && b.Offset < a.Offset+a.Size {
				t.Errorf("uniforms %q and %q overlap", a.Name, b.Name)
			}
		}
	}
	if total%16 != 0 {
		t.Errorf("total size %d is not a multiple of 16", total)
	}
}

func TestLayoutUniformsRejectsNegativeArraySize(t *testing.T) {
	_, _, err := layoutUniforms([]*ast.Uniform{
		{Name: "bad", Type: ast.Float, Scope: ast.ScopeLocal, ArraySize: -1},
	})
	if err == nil {
		t.Fatal("expected an error for a negative array size")
	}
	if _, ok := err.(*InvariantError); !ok {
		t.Fatalf("expected *InvariantError, got %T", err)
	}
}
