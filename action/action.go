// Package action defines the lowerer's two caller-supplied data tables
// (spec §4.1, design note "Action-bundle polymorphism"): what to do with a
// given identifier is data passed by value, never virtual dispatch.
package action

import "github.com/nikitalita/shaderconv/ast"

// DefaultIdentifierActions is static per render target (spec §4.1): one
// instance is built once for a GLSL dialect and reused across every
// compile() call targeting it.
type DefaultIdentifierActions struct {
	// Renames maps AST identifier names to their GLSL spelling.
	Renames map[string]string

	// RenderModeDefines maps a render-mode name to the preprocessor define
	// it triggers when the AST declares that mode.
	RenderModeDefines map[string]string

	// UsageDefines maps an identifier name to the preprocessor define
	// triggered the first time that identifier is referenced.
	UsageDefines map[string]string

	// CustomSamplers overrides the (filter, repeat) → sampler-name lookup
	// for specific uniform names.
	CustomSamplers map[string]string

	DefaultFilter ast.Filter
	DefaultRepeat ast.Repeat

	// BaseTextureBinding and TextureLayoutSet locate the `layout(set = ...,
	// binding = ...)` block a sampler uniform's dense order is offset from.
	BaseTextureBinding int
	TextureLayoutSet   int

	BaseUniformPrefix string

	GlobalBufferArrayName    string
	InstanceUniformIndexName string

	BaseVaryingLocation int

	ApplyLuminanceMultiplier bool
	MultiviewSamplers        bool
}

// NewDefaultIdentifierActions returns zero-value defaults with the filter
// fields set to "nearest" / "disable" so an unresolved default never
// silently becomes the zero Filter/Repeat ("default"), which would make
// the lowerer's "still default ⇒ failure" check (spec §4.1 Samplers)
// never fire.
func NewDefaultIdentifierActions() *DefaultIdentifierActions {
	return &DefaultIdentifierActions{
		Renames:                  map[string]string{},
		RenderModeDefines:        map[string]string{},
		UsageDefines:             map[string]string{},
		CustomSamplers:           map[string]string{},
		DefaultFilter:            ast.FilterNearest,
		DefaultRepeat:            ast.RepeatDisable,
		BaseTextureBinding:       0,
		TextureLayoutSet:         1,
		BaseUniformPrefix:        "_global_uniform_",
		GlobalBufferArrayName:    "global_shader_uniforms",
		InstanceUniformIndexName: "instance_offset",
		BaseVaryingLocation:      0,
	}
}

// IdentifierActions is supplied per Lowerer invocation (spec §4.1).
type IdentifierActions struct {
	// EntryPointStages maps an AST function name to the pipeline stage its
	// body becomes the entry body for.
	EntryPointStages map[string]ast.Stage

	// RenderModeValues/RenderModeFlags are set when the AST declares the
	// corresponding render mode.
	RenderModeValues map[string]string
	RenderModeFlags  map[string]*bool

	// UsageFlags is set to true on first reference of the named identifier.
	UsageFlags map[string]*bool

	// WriteFlags is set to true when the named identifier appears on an
	// assignment LHS or is passed as an out/inout argument.
	WriteFlags map[string]*bool

	// Uniforms collects every uniform referenced during this invocation's
	// walk, in the order each is first referenced. The lowerer computes the
	// uniform layout from the shader's uniform table, not from this list.
	Uniforms []*ast.Uniform
}

// NewIdentifierActions returns an invocation-scoped action bundle with all
// maps initialized (the lowerer never needs to nil-check them mid-walk).
func NewIdentifierActions() *IdentifierActions {
	return &IdentifierActions{
		EntryPointStages: map[string]ast.Stage{},
		RenderModeValues: map[string]string{},
		RenderModeFlags:  map[string]*bool{},
		UsageFlags:       map[string]*bool{},
		WriteFlags:       map[string]*bool{},
	}
}

// CollectUniform appends a uniform to the collector if it has not already
// been recorded (by name), preserving first-seen order.
func (a *IdentifierActions) CollectUniform(u *ast.Uniform) {
	for _, existing := range a.Uniforms {
		if existing.Name == u.Name {
			return
		}
	}
	a.Uniforms = append(a.Uniforms, u)
}
