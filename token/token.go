// Package token defines the lexical token model shared by the lowerer and
// the deprecation converter: token kinds, literal-text retention rules, and
// skip classification (spec §3.1).
package token

// Kind enumerates every lexical token the shader DSL lexer can produce,
// across both dialects. A handful of kinds (Global, Instance, GroupUniforms,
// HintScreenTexture, HintNormalRoughnessTexture, HintDepthTexture, ...) only
// appear in current-dialect source; the converter uses their mere existence
// in the Kind space to recognize and reject them when scanning legacy
// source (spec §4.3).
type Kind uint16

const (
	Empty Kind = iota
	Identifier
	True
	False
	FloatConstant
	IntConstant
	UintConstant

	// Scalar/vector/matrix/sampler type keywords.
	TypeVoid
	TypeBool
	TypeBvec2
	TypeBvec3
	TypeBvec4
	TypeInt
	TypeIvec2
	TypeIvec3
	TypeIvec4
	TypeUint
	TypeUvec2
	TypeUvec3
	TypeUvec4
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat2
	TypeMat3
	TypeMat4
	TypeSampler2D
	TypeISampler2D
	TypeUSampler2D
	TypeSampler2DArray
	TypeISampler2DArray
	TypeUSampler2DArray
	TypeSampler3D
	TypeISampler3D
	TypeUSampler3D
	TypeSamplerCube
	TypeSamplerCubeArray

	InterpolationFlat
	InterpolationSmooth

	Const
	Struct

	PrecisionLow
	PrecisionMid
	PrecisionHigh

	// Operators.
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
	OpNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShiftLeft
	OpShiftRight
	OpAssign
	OpAssignAdd
	OpAssignSub
	OpAssignMul
	OpAssignDiv
	OpAssignMod
	OpAssignShiftLeft
	OpAssignShiftRight
	OpAssignBitAnd
	OpAssignBitOr
	OpAssignBitXor
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpIncrement
	OpDecrement

	// Control flow.
	CfIf
	CfElse
	CfFor
	CfWhile
	CfDo
	CfSwitch
	CfCase
	CfDefault
	CfBreak
	CfContinue
	CfReturn
	CfDiscard

	// Punctuation.
	BracketOpen
	BracketClose
	CurlyBracketOpen
	CurlyBracketClose
	ParenthesisOpen
	ParenthesisClose
	QuestionMark
	Comma
	Colon
	Semicolon
	Period

	// Declarations & qualifiers.
	Uniform
	GroupUniforms
	Instance
	Global
	Varying
	ArgIn
	ArgOut
	ArgInout
	RenderMode

	// Hints.
	HintDefaultWhiteTexture
	HintDefaultBlackTexture
	HintDefaultTransparentTexture
	HintNormalTexture
	HintRoughnessNormalTexture
	HintRoughnessR
	HintRoughnessG
	HintRoughnessB
	HintRoughnessA
	HintRoughnessGray
	HintAnisotropyTexture
	HintSourceColor
	HintRange
	HintInstanceIndex
	HintScreenTexture
	HintNormalRoughnessTexture
	HintDepthTexture

	// Sampler filter/repeat hints.
	FilterNearest
	FilterLinear
	FilterNearestMipmap
	FilterLinearMipmap
	FilterNearestMipmapAnisotropic
	FilterLinearMipmapAnisotropic
	RepeatEnable
	RepeatDisable

	ShaderType

	Cursor
	Error
	EOF

	Tab
	CR
	Space
	Newline
	BlockComment
	LineComment
	PreprocDirective

	// kindCount is a sentinel marking the end of the enumeration.
	kindCount
)

// literalSpelling holds the fixed spelling for kinds whose text never
// varies (everything except identifiers, numeric/string literals, comments,
// and preprocessor lines, whose text is taken from the source).
var literalSpelling = map[Kind]string{
	True: "true", False: "false",
	TypeVoid: "void", TypeBool: "bool", TypeBvec2: "bvec2", TypeBvec3: "bvec3", TypeBvec4: "bvec4",
	TypeInt: "int", TypeIvec2: "ivec2", TypeIvec3: "ivec3", TypeIvec4: "ivec4",
	TypeUint: "uint", TypeUvec2: "uvec2", TypeUvec3: "uvec3", TypeUvec4: "uvec4",
	TypeFloat: "float", TypeVec2: "vec2", TypeVec3: "vec3", TypeVec4: "vec4",
	TypeMat2: "mat2", TypeMat3: "mat3", TypeMat4: "mat4",
	TypeSampler2D: "sampler2D", TypeISampler2D: "isampler2D", TypeUSampler2D: "usampler2D",
	TypeSampler2DArray: "sampler2DArray", TypeISampler2DArray: "isampler2DArray", TypeUSampler2DArray: "usampler2DArray",
	TypeSampler3D: "sampler3D", TypeISampler3D: "isampler3D", TypeUSampler3D: "usampler3D",
	TypeSamplerCube: "samplerCube", TypeSamplerCubeArray: "samplerCubeArray",
	InterpolationFlat: "flat", InterpolationSmooth: "smooth",
	Const: "const", Struct: "struct",
	PrecisionLow: "lowp", PrecisionMid: "mediump", PrecisionHigh: "highp",
	OpEqual: "==", OpNotEqual: "!=", OpLess: "<", OpLessEqual: "<=", OpGreater: ">", OpGreaterEqual: ">=",
	OpAnd: "&&", OpOr: "||", OpNot: "!",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpShiftLeft: "<<", OpShiftRight: ">>",
	OpAssign: "=", OpAssignAdd: "+=", OpAssignSub: "-=", OpAssignMul: "*=", OpAssignDiv: "/=", OpAssignMod: "%=",
	OpAssignShiftLeft: "<<=", OpAssignShiftRight: ">>=",
	OpAssignBitAnd: "&=", OpAssignBitOr: "|=", OpAssignBitXor: "^=",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpBitNot: "~",
	OpIncrement: "++", OpDecrement: "--",
	CfIf: "if", CfElse: "else", CfFor: "for", CfWhile: "while", CfDo: "do",
	CfSwitch: "switch", CfCase: "case", CfDefault: "default",
	CfBreak: "break", CfContinue: "continue", CfReturn: "return", CfDiscard: "discard",
	BracketOpen: "[", BracketClose: "]",
	CurlyBracketOpen: "{", CurlyBracketClose: "}",
	ParenthesisOpen: "(", ParenthesisClose: ")",
	QuestionMark: "?", Comma: ",", Colon: ":", Semicolon: ";", Period: ".",
	Uniform: "uniform", GroupUniforms: "group_uniforms", Instance: "instance", Global: "global",
	Varying: "varying", ArgIn: "in", ArgOut: "out", ArgInout: "inout", RenderMode: "render_mode",
	HintDefaultWhiteTexture: "hint_default_white", HintDefaultBlackTexture: "hint_default_black",
	HintDefaultTransparentTexture: "hint_default_transparent",
	HintNormalTexture:             "hint_normal",
	HintRoughnessNormalTexture:    "hint_roughness_normal",
	HintRoughnessR:                "hint_roughness_r", HintRoughnessG: "hint_roughness_g",
	HintRoughnessB: "hint_roughness_b", HintRoughnessA: "hint_roughness_a", HintRoughnessGray: "hint_roughness_gray",
	HintAnisotropyTexture: "hint_anisotropy",
	HintSourceColor:       "source_color", HintRange: "hint_range", HintInstanceIndex: "instance_index",
	HintScreenTexture: "hint_screen_texture", HintNormalRoughnessTexture: "hint_normal_roughness_texture",
	HintDepthTexture: "hint_depth_texture",
	FilterNearest:    "filter_nearest", FilterLinear: "filter_linear",
	FilterNearestMipmap: "filter_nearest_mipmap", FilterLinearMipmap: "filter_linear_mipmap",
	FilterNearestMipmapAnisotropic: "filter_nearest_mipmap_anisotropic",
	FilterLinearMipmapAnisotropic:  "filter_linear_mipmap_anisotropic",
	RepeatEnable:                   "repeat_enable", RepeatDisable: "repeat_disable",
	ShaderType: "shader_type",
	Tab:        "\t", CR: "\r", Space: " ", Newline: "\n",
}

// Spelling returns the fixed textual spelling for a kind, or "" for kinds
// whose text is source-derived (identifiers, numeric literals, comments,
// preprocessor lines, EOF/ERROR/EMPTY).
func Spelling(k Kind) string {
	return literalSpelling[k]
}

// OffsetNew is the sentinel source offset meaning "synthesized, not from
// original source" (spec §3.1).
const OffsetNew = -1

// Token is a single lexical unit. Two tokens are "equal by identity" when
// they are the same node in a Stream, never by comparing fields.
type Token struct {
	Kind    Kind
	Text    string  // owned literal text, only meaningful for source-derived kinds
	Number  float64 // numeric constant, meaningful when Kind is a number literal
	Line    int
	Offset  int // byte offset into source, or OffsetNew if synthesized
	Length  int
}

// IsSkippable reports whether navigation operators should skip over this
// token while mutation/insertion still preserves it byte-for-byte.
func (t Token) IsSkippable() bool {
	switch t.Kind {
	case Tab, CR, Space, Newline, BlockComment, LineComment, PreprocDirective:
		return true
	default:
		return false
	}
}

// IsNumberLiteral reports whether the kind carries a Number field.
func (t Token) IsNumberLiteral() bool {
	switch t.Kind {
	case FloatConstant, IntConstant, UintConstant:
		return true
	default:
		return false
	}
}

var datatypeKinds = map[Kind]bool{
	TypeVoid: true, TypeBool: true, TypeBvec2: true, TypeBvec3: true, TypeBvec4: true,
	TypeInt: true, TypeIvec2: true, TypeIvec3: true, TypeIvec4: true,
	TypeUint: true, TypeUvec2: true, TypeUvec3: true, TypeUvec4: true,
	TypeFloat: true, TypeVec2: true, TypeVec3: true, TypeVec4: true,
	TypeMat2: true, TypeMat3: true, TypeMat4: true,
	TypeSampler2D: true, TypeISampler2D: true, TypeUSampler2D: true,
	TypeSampler2DArray: true, TypeISampler2DArray: true, TypeUSampler2DArray: true,
	TypeSampler3D: true, TypeISampler3D: true, TypeUSampler3D: true,
	TypeSamplerCube: true, TypeSamplerCubeArray: true,
}

// IsDatatype mirrors ShaderLanguage::is_token_datatype.
func IsDatatype(k Kind) bool { return datatypeKinds[k] }

// IsSamplerType reports whether k is any of the sampler datatype kinds.
func IsSamplerType(k Kind) bool {
	switch k {
	case TypeSampler2D, TypeISampler2D, TypeUSampler2D,
		TypeSampler2DArray, TypeISampler2DArray, TypeUSampler2DArray,
		TypeSampler3D, TypeISampler3D, TypeUSampler3D,
		TypeSamplerCube, TypeSamplerCubeArray:
		return true
	default:
		return false
	}
}

var hintKinds = map[Kind]bool{
	HintDefaultWhiteTexture: true, HintDefaultBlackTexture: true, HintDefaultTransparentTexture: true,
	HintNormalTexture: true, HintRoughnessNormalTexture: true,
	HintRoughnessR: true, HintRoughnessG: true, HintRoughnessB: true, HintRoughnessA: true, HintRoughnessGray: true,
	HintAnisotropyTexture: true, HintSourceColor: true, HintRange: true, HintInstanceIndex: true,
	HintScreenTexture: true, HintNormalRoughnessTexture: true, HintDepthTexture: true,
}

// IsHint mirrors ShaderLanguage::is_token_hint.
func IsHint(k Kind) bool { return hintKinds[k] }

// IsPrecision mirrors ShaderLanguage::is_token_precision.
func IsPrecision(k Kind) bool {
	switch k {
	case PrecisionLow, PrecisionMid, PrecisionHigh:
		return true
	default:
		return false
	}
}

// IsInterpolation mirrors ShaderLanguage::is_token_interpolation.
func IsInterpolation(k Kind) bool {
	switch k {
	case InterpolationFlat, InterpolationSmooth:
		return true
	default:
		return false
	}
}

var keywordKinds = map[Kind]bool{}

func init() {
	for k := range literalSpelling {
		switch k {
		case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual, OpAnd, OpOr, OpNot,
			OpAdd, OpSub, OpMul, OpDiv, OpMod, OpShiftLeft, OpShiftRight,
			OpAssign, OpAssignAdd, OpAssignSub, OpAssignMul, OpAssignDiv, OpAssignMod,
			OpAssignShiftLeft, OpAssignShiftRight, OpAssignBitAnd, OpAssignBitOr, OpAssignBitXor,
			OpBitAnd, OpBitOr, OpBitXor, OpBitNot, OpIncrement, OpDecrement,
			BracketOpen, BracketClose, CurlyBracketOpen, CurlyBracketClose,
			ParenthesisOpen, ParenthesisClose, QuestionMark, Comma, Colon, Semicolon, Period,
			Tab, CR, Space, Newline:
			continue
		default:
			keywordKinds[k] = true
		}
	}
}

// IsKeyword mirrors ShaderLanguage::is_token_keyword: true for any token
// with a fixed textual spelling that is not punctuation/whitespace.
func IsKeyword(k Kind) bool { return keywordKinds[k] }
