package parse

import (
	"testing"

	"github.com/nikitalita/shaderconv/ast"
	"github.com/nikitalita/shaderconv/lex"
)

func mustParse(t *testing.T, src string) *ast.Shader {
	t.Helper()
	toks, err := lex.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	shader, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return shader
}

func TestParseMinimalSpatialShader(t *testing.T) {
	shader := mustParse(t, `
shader_type spatial;

uniform float brightness : hint_range(0.0, 1.0);
varying vec3 v_color;

void fragment() {
	ALBEDO = v_color * brightness;
}
`)
	if shader.Mode != ast.ModeSpatial {
		t.Fatalf("got mode %v, want ModeSpatial", shader.Mode)
	}
	u, ok := shader.Uniforms["brightness"]
	if !ok {
		t.Fatal("expected uniform \"brightness\"")
	}
	if u.Type != ast.Float || u.Hint != ast.HintRange {
		t.Fatalf("unexpected uniform: %+v", u)
	}
	if _, ok := shader.Varyings["v_color"]; !ok {
		t.Fatal("expected varying \"v_color\"")
	}
	if len(shader.Functions) != 1 || shader.Functions[0].Name != "fragment" {
		t.Fatalf("unexpected functions: %+v", shader.Functions)
	}
}

func TestParseRenderModesAndStruct(t *testing.T) {
	shader := mustParse(t, `
shader_type spatial;
render_mode blend_mix, cull_back, depth_draw_always;

struct Light {
	vec3 color;
	float energy;
};

void fragment() {
}
`)
	if len(shader.RenderModes) != 3 {
		t.Fatalf("got %d render modes, want 3", len(shader.RenderModes))
	}
	if len(shader.Structs) != 1 || shader.Structs[0].Name != "Light" || len(shader.Structs[0].Members) != 2 {
		t.Fatalf("unexpected structs: %+v", shader.Structs)
	}
}

func TestParseCallGraph(t *testing.T) {
	shader := mustParse(t, `
shader_type spatial;

float square(float x) {
	return x * x;
}

void fragment() {
	ALBEDO = vec3(square(2.0));
}
`)
	var fragment *ast.Function
	for _, fn := range shader.Functions {
		if fn.Name == "fragment" {
			fragment = fn
		}
	}
	if fragment == nil {
		t.Fatal("expected a \"fragment\" function")
	}
	if !fragment.Calls["square"] {
		t.Fatalf("expected fragment to call square, got %+v", fragment.Calls)
	}
}

func TestParseControlFlow(t *testing.T) {
	shader := mustParse(t, `
shader_type spatial;

void fragment() {
	float total = 0.0;
	for (int i = 0; i < 4; i++) {
		if (i == 2) {
			continue;
		}
		total += float(i);
	}
	while (total > 10.0) {
		total -= 1.0;
	}
	switch (int(total)) {
		case 0:
			discard;
		default:
			break;
	}
}
`)
	if len(shader.Functions) != 1 {
		t.Fatalf("unexpected functions: %+v", shader.Functions)
	}
}
