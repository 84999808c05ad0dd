package lower

import (
	"strings"
	"testing"

	"github.com/nikitalita/shaderconv/action"
	"github.com/nikitalita/shaderconv/ast"
)

// minimalFragmentShader builds a tiny fragment-only shader AST by hand:
//
//	uniform float brightness;
//	varying vec3 v_color;
//	void fragment() {
//		ALBEDO = v_color * brightness;
//	}
func minimalFragmentShader() *ast.Shader {
	fragBody := &ast.Block{
		Statements: []ast.Stmt{
			&ast.ExprStmt{
				X: &ast.Operator{
					Kind: ast.OpAssign,
					Op:   "=",
					Operands: []ast.Expr{
						&ast.Variable{Name: "ALBEDO", Type: ast.Vec3},
						&ast.Operator{
							Kind: ast.OpBinary,
							Op:   "*",
							Operands: []ast.Expr{
								&ast.Variable{Name: "v_color", Type: ast.Vec3},
								&ast.Variable{Name: "brightness", Type: ast.Float},
							},
							Type: ast.Vec3,
						},
					},
					Type: ast.Vec3,
				},
			},
		},
	}

	return &ast.Shader{
		Mode: ast.ModeSpatial,
		Uniforms: map[string]*ast.Uniform{
			"brightness": {Name: "brightness", Type: ast.Float, Scope: ast.ScopeLocal},
		},
		Varyings: map[string]*ast.Varying{
			"v_color": {Name: "v_color", Type: ast.Vec3},
		},
		Functions: []*ast.Function{
			{Name: "fragment", ReturnType: ast.Void, Body: fragBody, Calls: map[string]bool{}},
		},
	}
}

func TestCompileMinimalFragmentShader(t *testing.T) {
	shader := minimalFragmentShader()
	defs := action.NewDefaultIdentifierActions()
	acts := action.NewIdentifierActions()
	acts.EntryPointStages["fragment"] = ast.StageFragment

	gen, err := Compile(shader, Options{Mode: ast.ModeSpatial, Defaults: defs, Actions: acts})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	body, ok := gen.Code["fragment"]
	if !ok {
		t.Fatal("no code emitted for entry point \"fragment\"")
	}
	if !strings.Contains(body, "ALBEDO = v_color * _global_uniform_brightness;") {
		t.Fatalf("unexpected body: %q", body)
	}

	if len(acts.Uniforms) != 1 || acts.Uniforms[0].Name != "brightness" {
		t.Fatalf("expected \"brightness\" to be collected as a referenced uniform, got %+v", acts.Uniforms)
	}
	if off, ok := gen.UniformOffsets["brightness"]; !ok || off != 0 {
		t.Fatalf("expected \"brightness\" at offset 0, got %d (present=%v)", off, ok)
	}
}

func TestCompileRequiresDefaults(t *testing.T) {
	if _, err := Compile(minimalFragmentShader(), Options{}); err == nil {
		t.Fatal("expected an error when Options.Defaults is nil")
	}
}

func TestCompileRenameTable(t *testing.T) {
	shader := &ast.Shader{
		Functions: []*ast.Function{
			{
				Name:       "vertex",
				ReturnType: ast.Void,
				Calls:      map[string]bool{},
				Body: &ast.Block{
					Statements: []ast.Stmt{
						&ast.ExprStmt{X: &ast.Operator{
							Kind: ast.OpAssign,
							Op:   "=",
							Operands: []ast.Expr{
								&ast.Variable{Name: "VERTEX", Type: ast.Vec3},
								&ast.Variable{Name: "WORLD_MATRIX", Type: ast.Mat4},
							},
							Type: ast.Vec3,
						}},
					},
				},
			},
		},
	}
	defs := action.NewDefaultIdentifierActions()
	defs.Renames["WORLD_MATRIX"] = "MODEL_MATRIX"
	acts := action.NewIdentifierActions()
	acts.EntryPointStages["vertex"] = ast.StageVertex

	gen, err := Compile(shader, Options{Defaults: defs, Actions: acts})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(gen.Code["vertex"], "MODEL_MATRIX") {
		t.Fatalf("expected renamed identifier in output, got %q", gen.Code["vertex"])
	}
}

// TestCompileGlobalScopeUniformIndexesPackedBuffer covers the "Variable
// references" global-scope branch: a global uniform reads through
// globalUniformExpr indexed by BaseUniformPrefix+name into
// GlobalBufferArrayName, not its own declared name.
func TestCompileGlobalScopeUniformIndexesPackedBuffer(t *testing.T) {
	shader := &ast.Shader{
		Mode: ast.ModeSpatial,
		Uniforms: map[string]*ast.Uniform{
			"fog_density": {Name: "fog_density", Type: ast.Float, Scope: ast.ScopeGlobal},
		},
		Functions: []*ast.Function{
			{Name: "fragment", ReturnType: ast.Void, Calls: map[string]bool{}, Body: &ast.Block{
				Statements: []ast.Stmt{
					&ast.ExprStmt{X: &ast.Operator{
						Kind: ast.OpAssign,
						Op:   "=",
						Operands: []ast.Expr{
							&ast.Variable{Name: "ALPHA", Type: ast.Float},
							&ast.Variable{Name: "fog_density", Type: ast.Float},
						},
						Type: ast.Float,
					}},
				},
			}},
		},
	}
	defs := action.NewDefaultIdentifierActions()
	acts := action.NewIdentifierActions()
	acts.EntryPointStages["fragment"] = ast.StageFragment

	gen, err := Compile(shader, Options{Mode: ast.ModeSpatial, Defaults: defs, Actions: acts})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := "ALPHA = (global_shader_uniforms[_global_uniform_fog_density].x);"
	if !strings.Contains(gen.Code["fragment"], want) {
		t.Fatalf("expected global uniform read %q, got %q", want, gen.Code["fragment"])
	}
}

// TestCompileInstanceScopeUniformIndexesByOffset covers the instance-scope
// branch: the index is InstanceUniformIndexName offset by the uniform's
// InstanceIndex, still read out of the shared global buffer.
func TestCompileInstanceScopeUniformIndexesByOffset(t *testing.T) {
	shader := &ast.Shader{
		Mode: ast.ModeSpatial,
		Uniforms: map[string]*ast.Uniform{
			"tint": {Name: "tint", Type: ast.Vec3, Scope: ast.ScopeInstance, InstanceIndex: 2},
		},
		Functions: []*ast.Function{
			{Name: "fragment", ReturnType: ast.Void, Calls: map[string]bool{}, Body: &ast.Block{
				Statements: []ast.Stmt{
					&ast.ExprStmt{X: &ast.Operator{
						Kind: ast.OpAssign,
						Op:   "=",
						Operands: []ast.Expr{
							&ast.Variable{Name: "ALBEDO", Type: ast.Vec3},
							&ast.Variable{Name: "tint", Type: ast.Vec3},
						},
						Type: ast.Vec3,
					}},
				},
			}},
		},
	}
	defs := action.NewDefaultIdentifierActions()
	acts := action.NewIdentifierActions()
	acts.EntryPointStages["fragment"] = ast.StageFragment

	gen, err := Compile(shader, Options{Mode: ast.ModeSpatial, Defaults: defs, Actions: acts})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := "ALBEDO = (global_shader_uniforms[(instance_offset+2)].xyz);"
	if !strings.Contains(gen.Code["fragment"], want) {
		t.Fatalf("expected instance uniform read %q, got %q", want, gen.Code["fragment"])
	}
}

// TestTextureTableAssignsBindingAndLayoutSet covers the binding/layout-set
// wiring of the default texture-binding table into per-sampler descriptors.
func TestTextureTableAssignsBindingAndLayoutSet(t *testing.T) {
	l := &lowerer{opts: &Options{Defaults: action.NewDefaultIdentifierActions()}}
	shader := &ast.Shader{
		Uniforms: map[string]*ast.Uniform{
			"albedo_tex": {Name: "albedo_tex", Type: ast.Sampler2D, TextureOrderIndex: 0},
			"normal_tex": {Name: "normal_tex", Type: ast.Sampler2D, TextureOrderIndex: 1},
		},
	}
	textures := l.textureTable(shader)
	if len(textures) != 2 {
		t.Fatalf("expected 2 textures, got %d", len(textures))
	}
	for _, tex := range textures {
		if tex.LayoutSet != l.opts.Defaults.TextureLayoutSet {
			t.Fatalf("texture %s: expected LayoutSet %d, got %d", tex.Name, l.opts.Defaults.TextureLayoutSet, tex.LayoutSet)
		}
	}
	if textures[0].Binding != l.opts.Defaults.BaseTextureBinding {
		t.Fatalf("texture 0: expected Binding %d, got %d", l.opts.Defaults.BaseTextureBinding, textures[0].Binding)
	}
	if textures[1].Binding != l.opts.Defaults.BaseTextureBinding+1 {
		t.Fatalf("texture 1: expected Binding %d, got %d", l.opts.Defaults.BaseTextureBinding+1, textures[1].Binding)
	}
}
