package convert

import "sync"

// RenamedBuiltin describes one legacy built-in identifier that the
// current dialect spells differently, or that requires bespoke rewrite
// logic beyond a plain rename (spec §4.4, grounded on the
// renamed_builtins[] table).
type RenamedBuiltin struct {
	Old             string
	New             string
	SpecialHandling bool
}

// renamedBuiltins is the fixed legacy→current built-in rename table.
// CLEARCOAT_GLOSS and INDEX carry SpecialHandling: CLEARCOAT_GLOSS needs
// its value inverted at every read/write site (spec §4.4.1), and INDEX
// keeps its name but every read needs wrapping in int() (its type
// changed from float to int between dialects).
var renamedBuiltins = []RenamedBuiltin{
	{Old: "ALPHA_SCISSOR", New: "ALPHA_SCISSOR_THRESHOLD"},
	{Old: "CAMERA_MATRIX", New: "INV_VIEW_MATRIX"},
	{Old: "INV_CAMERA_MATRIX", New: "VIEW_MATRIX"},
	{Old: "WORLD_MATRIX", New: "MODEL_MATRIX"},
	{Old: "NORMALMAP", New: "NORMAL_MAP"},
	{Old: "NORMALMAP_DEPTH", New: "NORMAL_MAP_DEPTH"},
	{Old: "TRANSMISSION", New: "BACKLIGHT"},
	{Old: "CLEARCOAT_GLOSS", New: "CLEARCOAT_ROUGHNESS", SpecialHandling: true},
	{Old: "INDEX", New: "INDEX", SpecialHandling: true},
}

// RenamedRenderMode is a legacy render-mode spelling with a current
// replacement (spec §4.4, grounded on renamed_render_modes[]).
type RenamedRenderMode struct {
	Old, New string
}

var renamedRenderModes = []RenamedRenderMode{
	{Old: "depth_draw_alpha_prepass", New: "depth_prepass_alpha"},
}

// RenamedHint is a legacy uniform-hint spelling with a current
// replacement (spec §4.4, grounded on renamed_hints[]).
type RenamedHint struct {
	Old, New string
}

var renamedHints = []RenamedHint{
	{Old: "hint_albedo", New: "source_color"},
	{Old: "hint_aniso", New: "hint_anisotropy"},
	{Old: "hint_black", New: "hint_default_black"},
	{Old: "hint_black_albedo", New: "hint_default_black"},
	{Old: "hint_color", New: "source_color"},
	{Old: "hint_transparent", New: "hint_default_transparent"},
	{Old: "hint_white", New: "hint_default_white"},
}

// RenamedFunction is a legacy entry-point function name with a current
// replacement, scoped to a specific shader mode (spec §4.4, grounded on
// renamed_functions[]).
type RenamedFunction struct {
	Old, New string
	Mode     string // shader_type this rename applies under; empty = any
}

var renamedFunctions = []RenamedFunction{
	{Old: "vertex", New: "process", Mode: "particles"},
}

// RemovedRenderMode names a legacy render mode with no current
// equivalent (spec §4.4, grounded on removed_render_modes[]).
// Removable modes are silently dropped, with no comment stamped; the
// others make the shader UnsupportedRemoval under FailOnUnported.
type RemovedRenderMode struct {
	Name      string
	Removable bool
}

var removedRenderModes = []RemovedRenderMode{
	{Name: "specular_blinn", Removable: false},
	{Name: "specular_phong", Removable: false},
	{Name: "async_visible", Removable: true},
	{Name: "async_hidden", Removable: true},
}

// RemovedBuiltin names a legacy built-in identifier the current dialect
// no longer has a direct equivalent for (spec §4.4, grounded on
// removed_builtins[]). SCREEN_TEXTURE/DEPTH_TEXTURE/NORMAL_ROUGHNESS_TEXTURE
// became ordinary hinted sampler2D uniforms declared by the shader author
// instead of implicit built-ins — Hints lists the hints of the
// replacement declaration. MODULATE has no replacement at all: any
// reference is an unconditional UnsupportedRemoval, modeled by empty
// Hints and Unconditional set true.
type RemovedBuiltin struct {
	Name          string
	Hints         []string // recorded hints, comma-separated in the synthesized declaration
	Unconditional bool
}

var removedBuiltins = []RemovedBuiltin{
	{Name: "SCREEN_TEXTURE", Hints: []string{"hint_screen_texture", "filter_linear_mipmap"}},
	{Name: "DEPTH_TEXTURE", Hints: []string{"hint_depth_texture"}},
	{Name: "NORMAL_ROUGHNESS_TEXTURE", Hints: []string{"hint_normal_roughness_texture"}},
	{Name: "MODULATE", Unconditional: true},
}

// removedTypes names legacy sampler types with no current equivalent
// (spec §4.4, grounded on removed_types[]).
var removedTypes = []string{"samplerExternalOES"}

// oldBuiltinFuncs is the fixed set of function names that existed in the
// legacy dialect's builtin surface (spec §4.3 negative indicators,
// grounded on old_builtin_funcs[]). tokenIsNewBuiltinFunc treats any
// identifier called like a function that is NOT in this set, but IS a
// plausible current-dialect builtin, as a positive indicator of the
// current dialect (rule 5): legacy source could not have called it.
var oldBuiltinFuncs = map[string]bool{
	"sin": true, "cos": true, "tan": true, "asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true, "pow": true, "exp": true, "log": true,
	"exp2": true, "log2": true, "sqrt": true, "inversesqrt": true, "abs": true,
	"sign": true, "floor": true, "ceil": true, "fract": true, "mod": true,
	"min": true, "max": true, "clamp": true, "mix": true, "step": true,
	"smoothstep": true, "length": true, "distance": true, "dot": true, "cross": true,
	"normalize": true, "reflect": true, "refract": true, "faceforward": true,
	"matrixCompMult": true, "lessThan": true, "lessThanEqual": true,
	"greaterThan": true, "greaterThanEqual": true, "equal": true, "notEqual": true,
	"any": true, "all": true, "not": true, "texture2D": true, "textureCube": true,
	"texelFetch": true, "dFdx": true, "dFdy": true, "fwidth": true,
}

// newBuiltinFuncs is the set of function names introduced by the current
// dialect (computed lazily from a fixed superset minus oldBuiltinFuncs,
// mirroring `_construct_new_builtin_funcs`'s set-difference).
var (
	newBuiltinFuncs     map[string]bool
	newBuiltinFuncsOnce sync.Once
)

// allCurrentBuiltinFuncs is the full current-dialect builtin surface this
// converter knows about; tokenIsNewBuiltinFunc is only as complete as
// this list.
var allCurrentBuiltinFuncs = []string{
	"sin", "cos", "tan", "asin", "acos", "atan", "sinh", "cosh", "tanh",
	"pow", "exp", "log", "exp2", "log2", "sqrt", "inversesqrt", "abs", "sign",
	"floor", "ceil", "fract", "mod", "min", "max", "clamp", "mix", "step",
	"smoothstep", "length", "distance", "dot", "cross", "normalize", "reflect",
	"refract", "faceforward", "matrixCompMult", "lessThan", "lessThanEqual",
	"greaterThan", "greaterThanEqual", "equal", "notEqual", "any", "all", "not",
	"texture", "textureProj", "textureLod", "textureGrad", "textureSize",
	"texelFetch", "dFdx", "dFdy", "fwidth", "packHalf2x16", "unpackHalf2x16",
	"floatBitsToInt", "floatBitsToUint", "intBitsToFloat", "uintBitsToFloat",
}

func buildNewBuiltinFuncs() {
	newBuiltinFuncs = map[string]bool{}
	for _, name := range allCurrentBuiltinFuncs {
		if !oldBuiltinFuncs[name] {
			newBuiltinFuncs[name] = true
		}
	}
}

// tokenIsNewBuiltinFunc mirrors `token_is_new_builtin_func`.
func tokenIsNewBuiltinFunc(name string) bool {
	newBuiltinFuncsOnce.Do(buildNewBuiltinFuncs)
	return newBuiltinFuncs[name]
}

func lookupRenamedBuiltin(name string) (RenamedBuiltin, bool) {
	for _, r := range renamedBuiltins {
		if r.Old == name {
			return r, true
		}
	}
	return RenamedBuiltin{}, false
}

func lookupRenamedRenderMode(name string) (string, bool) {
	for _, r := range renamedRenderModes {
		if r.Old == name {
			return r.New, true
		}
	}
	return "", false
}

func lookupRenamedHint(name string) (string, bool) {
	for _, r := range renamedHints {
		if r.Old == name {
			return r.New, true
		}
	}
	return "", false
}

func lookupRenamedFunction(name, mode string) (string, bool) {
	for _, r := range renamedFunctions {
		if r.Old == name && (r.Mode == "" || r.Mode == mode) {
			return r.New, true
		}
	}
	return "", false
}

func lookupRemovedRenderMode(name string) (RemovedRenderMode, bool) {
	for _, r := range removedRenderModes {
		if r.Name == name {
			return r, true
		}
	}
	return RemovedRenderMode{}, false
}

func lookupRemovedBuiltin(name string) (RemovedBuiltin, bool) {
	for _, r := range removedBuiltins {
		if r.Name == name {
			return r, true
		}
	}
	return RemovedBuiltin{}, false
}

func isRemovedType(name string) bool {
	for _, t := range removedTypes {
		if t == name {
			return true
		}
	}
	return false
}
