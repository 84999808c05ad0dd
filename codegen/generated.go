// Package codegen defines GeneratedCode, the Lowerer's single output record
// (spec §3.4).
package codegen

import "github.com/nikitalita/shaderconv/ast"

// Texture describes one enumerated sampler uniform (spec §4.1 "Samplers").
type Texture struct {
	Name     string
	Type     ast.DataType
	Hint     ast.Hint
	IsColor  bool
	Filter   ast.Filter
	Repeat   ast.Repeat
	IsGlobal bool
	ArraySize int

	// Binding and LayoutSet are the `layout(set = ..., binding = ...)`
	// indices assigned to this sampler: Binding is the defaults'
	// BaseTextureBinding plus the uniform's TextureOrderIndex (its dense
	// position among the shader's sampler uniforms), and LayoutSet is the
	// defaults' TextureLayoutSet unchanged (spec §4.1 "Samplers").
	Binding   int
	LayoutSet int
}

// GeneratedCode is the Lowerer's structured output (spec §3.4).
type GeneratedCode struct {
	// Defines is an ordered, duplicate-free list of preprocessor defines.
	Defines []string

	// StageGlobals holds per-stage prelude text (struct decls, uniform
	// decls, varying decls, constants, transitively reachable helpers),
	// keyed by ast.Stage.
	StageGlobals map[ast.Stage]string

	// Code holds each entry point's body text (without its signature),
	// keyed by entry point name.
	Code map[string]string

	// Uniforms is the concatenated text of every non-sampler uniform
	// declaration.
	Uniforms string

	// TextureUniforms is the dense, declaration-ordered list of sampler
	// descriptors (spec §3.4, "Sampler table density").
	TextureUniforms []Texture

	// UniformOffsets maps a non-sampler uniform's name to its std140-like
	// byte offset in the uniform buffer.
	UniformOffsets map[string]int

	// UniformTotalSize is the uniform buffer's total size, a multiple of 16.
	UniformTotalSize int

	UsesGlobalTextures         bool
	UsesFragmentTime           bool
	UsesVertexTime             bool
	UsesScreenTexture          bool
	UsesScreenTextureMipmaps   bool
	UsesDepthTexture           bool
	UsesNormalRoughnessTexture bool
}

// New returns a GeneratedCode with every map initialized.
func New() *GeneratedCode {
	return &GeneratedCode{
		StageGlobals:   map[ast.Stage]string{},
		Code:           map[string]string{},
		UniformOffsets: map[string]int{},
	}
}

// AddDefine appends a define if it is not already present.
func (g *GeneratedCode) AddDefine(d string) {
	for _, existing := range g.Defines {
		if existing == d {
			return
		}
	}
	g.Defines = append(g.Defines, d)
}
