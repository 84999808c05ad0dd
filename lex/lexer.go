// Package lex tokenizes shader DSL source into a flat []token.Token stream.
//
// The lexer is a supplementary, non-core component: spec.md treats "the
// lexer" as an external collaborator and specifies only the token model it
// must produce (token.Kind, token.Token). This package is one concrete
// implementation of that contract, grounded on naga's wgsl.Lexer, extended
// to retain whitespace and comments as first-class tokens since both the
// converter's token stream (spec §4) and round-trip text emission depend on
// byte-exact skippable preservation.
package lex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nikitalita/shaderconv/token"
)

// Error reports a lexical failure with source position.
type Error struct {
	Message string
	Line    int
	Offset  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}

var keywords = map[string]token.Kind{
	"true": token.True, "false": token.False,
	"void": token.TypeVoid, "bool": token.TypeBool, "bvec2": token.TypeBvec2, "bvec3": token.TypeBvec3, "bvec4": token.TypeBvec4,
	"int": token.TypeInt, "ivec2": token.TypeIvec2, "ivec3": token.TypeIvec3, "ivec4": token.TypeIvec4,
	"uint": token.TypeUint, "uvec2": token.TypeUvec2, "uvec3": token.TypeUvec3, "uvec4": token.TypeUvec4,
	"float": token.TypeFloat, "vec2": token.TypeVec2, "vec3": token.TypeVec3, "vec4": token.TypeVec4,
	"mat2": token.TypeMat2, "mat3": token.TypeMat3, "mat4": token.TypeMat4,
	"sampler2D": token.TypeSampler2D, "isampler2D": token.TypeISampler2D, "usampler2D": token.TypeUSampler2D,
	"sampler2DArray": token.TypeSampler2DArray, "isampler2DArray": token.TypeISampler2DArray, "usampler2DArray": token.TypeUSampler2DArray,
	"sampler3D": token.TypeSampler3D, "isampler3D": token.TypeISampler3D, "usampler3D": token.TypeUSampler3D,
	"samplerCube": token.TypeSamplerCube, "samplerCubeArray": token.TypeSamplerCubeArray,
	"flat": token.InterpolationFlat, "smooth": token.InterpolationSmooth,
	"const": token.Const, "struct": token.Struct,
	"lowp": token.PrecisionLow, "mediump": token.PrecisionMid, "highp": token.PrecisionHigh,
	"if": token.CfIf, "else": token.CfElse, "for": token.CfFor, "while": token.CfWhile, "do": token.CfDo,
	"switch": token.CfSwitch, "case": token.CfCase, "default": token.CfDefault,
	"break": token.CfBreak, "continue": token.CfContinue, "return": token.CfReturn, "discard": token.CfDiscard,
	"uniform": token.Uniform, "group_uniforms": token.GroupUniforms, "instance": token.Instance, "global": token.Global,
	"varying": token.Varying, "in": token.ArgIn, "out": token.ArgOut, "inout": token.ArgInout, "render_mode": token.RenderMode,
	"hint_default_white": token.HintDefaultWhiteTexture, "hint_default_black": token.HintDefaultBlackTexture,
	"hint_default_transparent": token.HintDefaultTransparentTexture,
	"hint_normal":               token.HintNormalTexture,
	"hint_roughness_normal":     token.HintRoughnessNormalTexture,
	"hint_roughness_r":          token.HintRoughnessR, "hint_roughness_g": token.HintRoughnessG,
	"hint_roughness_b": token.HintRoughnessB, "hint_roughness_a": token.HintRoughnessA, "hint_roughness_gray": token.HintRoughnessGray,
	"hint_anisotropy": token.HintAnisotropyTexture,
	"source_color":    token.HintSourceColor, "hint_range": token.HintRange, "instance_index": token.HintInstanceIndex,
	"hint_screen_texture": token.HintScreenTexture, "hint_normal_roughness_texture": token.HintNormalRoughnessTexture,
	"hint_depth_texture": token.HintDepthTexture,
	"filter_nearest":     token.FilterNearest, "filter_linear": token.FilterLinear,
	"filter_nearest_mipmap": token.FilterNearestMipmap, "filter_linear_mipmap": token.FilterLinearMipmap,
	"filter_nearest_mipmap_anisotropic": token.FilterNearestMipmapAnisotropic,
	"filter_linear_mipmap_anisotropic":  token.FilterLinearMipmapAnisotropic,
	"repeat_enable":                     token.RepeatEnable, "repeat_disable": token.RepeatDisable,
	"shader_type": token.ShaderType,
}

// legacyHintAliases are 3.x hint spellings the lexer emits as plain
// identifiers (the converter, not the lexer, is responsible for treating
// them as hints, by name through its renamedHints table); kept out of the
// keyword table so legacy source round-trips through the lexer unchanged.
var legacyHintAliases = map[string]bool{
	"hint_albedo": true, "hint_aniso": true, "hint_black": true, "hint_black_albedo": true,
	"hint_color": true, "hint_transparent": true, "hint_white": true,
}

// Lexer tokenizes shader DSL source.
type Lexer struct {
	src    string
	pos    int
	line   int
	tokens []token.Token
}

// New creates a Lexer for src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, tokens: make([]token.Token, 0, len(src)/4+8)}
}

// Tokenize runs the lexer to completion and returns every token, including
// skippables, in source order, terminated by a single EOF token.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	return l.Run()
}

// Run scans the entire source.
func (l *Lexer) Run() ([]token.Token, error) {
	for l.pos < len(l.src) {
		if err := l.scanOne(); err != nil {
			return nil, err
		}
	}
	l.emit(token.Token{Kind: token.EOF, Line: l.line, Offset: len(l.src)})
	return l.tokens, nil
}

func (l *Lexer) emit(t token.Token) { l.tokens = append(l.tokens, t) }

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) scanOne() error {
	start := l.pos
	startLine := l.line
	c := l.peek()

	switch {
	case c == ' ':
		l.scanRun(' ', token.Space, start, startLine)
		return nil
	case c == '\t':
		l.scanRun('\t', token.Tab, start, startLine)
		return nil
	case c == '\r':
		l.scanRun('\r', token.CR, start, startLine)
		return nil
	case c == '\n':
		l.pos++
		l.emit(token.Token{Kind: token.Newline, Text: "\n", Line: startLine, Offset: start, Length: 1})
		l.line++
		return nil
	case c == '/' && l.peekAt(1) == '/':
		l.scanLineComment(start, startLine)
		return nil
	case c == '/' && l.peekAt(1) == '*':
		return l.scanBlockComment(start, startLine)
	case c == '#':
		l.scanPreprocDirective(start, startLine)
		return nil
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber(start, startLine)
	case isIdentStart(c):
		l.scanIdentOrKeyword(start, startLine)
		return nil
	default:
		return l.scanOperator(start, startLine)
	}
}

func (l *Lexer) scanRun(b byte, kind token.Kind, start, line int) {
	for l.pos < len(l.src) && l.src[l.pos] == b {
		l.pos++
	}
	l.emit(token.Token{Kind: kind, Text: l.src[start:l.pos], Line: line, Offset: start, Length: l.pos - start})
}

func (l *Lexer) scanLineComment(start, line int) {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	l.emit(token.Token{Kind: token.LineComment, Text: l.src[start:l.pos], Line: line, Offset: start, Length: l.pos - start})
}

func (l *Lexer) scanBlockComment(start, line int) error {
	l.pos += 2
	for {
		if l.pos >= len(l.src) {
			return &Error{Message: "unterminated block comment", Line: line, Offset: start}
		}
		if l.src[l.pos] == '\n' {
			l.line++
		}
		if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			break
		}
		l.pos++
	}
	l.emit(token.Token{Kind: token.BlockComment, Text: l.src[start:l.pos], Line: line, Offset: start, Length: l.pos - start})
	return nil
}

func (l *Lexer) scanPreprocDirective(start, line int) {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		if l.src[l.pos] == '\\' && l.peekAt(1) == '\n' {
			l.pos += 2
			l.line++
			continue
		}
		l.pos++
	}
	l.emit(token.Token{Kind: token.PreprocDirective, Text: l.src[start:l.pos], Line: line, Offset: start, Length: l.pos - start})
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (l *Lexer) scanIdentOrKeyword(start, line int) {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	if kind, ok := keywords[text]; ok {
		l.emit(token.Token{Kind: kind, Text: text, Line: line, Offset: start, Length: l.pos - start})
		return
	}
	l.emit(token.Token{Kind: token.Identifier, Text: text, Line: line, Offset: start, Length: l.pos - start})
}

func (l *Lexer) scanNumber(start, line int) error {
	isFloat := false
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	kind := token.IntConstant
	numText := l.src[start:l.pos]
	if l.pos < len(l.src) && (l.src[l.pos] == 'u' || l.src[l.pos] == 'U') && !isFloat {
		l.pos++
		kind = token.UintConstant
	} else if l.pos < len(l.src) && l.src[l.pos] == 'f' {
		// legacy `<digits>f` float literal (no decimal point) — spec §4.4 rule 4.
		l.pos++
		kind = token.FloatConstant
		isFloat = true
	} else if isFloat {
		kind = token.FloatConstant
		if l.pos < len(l.src) && l.src[l.pos] == 'f' {
			l.pos++
		}
	}
	lexeme := l.src[start:l.pos]
	var val float64
	var err error
	if kind == token.UintConstant {
		val, err = strconv.ParseFloat(numText, 64)
	} else {
		val, err = strconv.ParseFloat(strings.TrimSuffix(numText, "f"), 64)
	}
	if err != nil {
		return &Error{Message: "invalid numeric literal: " + lexeme, Line: line, Offset: start}
	}
	l.emit(token.Token{Kind: kind, Text: lexeme, Number: val, Line: line, Offset: start, Length: l.pos - start})
	return nil
}

// three/two/one-character operator tables, longest match first.
var multiCharOps = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.OpAssignShiftLeft}, {">>=", token.OpAssignShiftRight},
	{"==", token.OpEqual}, {"!=", token.OpNotEqual}, {"<=", token.OpLessEqual}, {">=", token.OpGreaterEqual},
	{"&&", token.OpAnd}, {"||", token.OpOr}, {"<<", token.OpShiftLeft}, {">>", token.OpShiftRight},
	{"+=", token.OpAssignAdd}, {"-=", token.OpAssignSub}, {"*=", token.OpAssignMul}, {"/=", token.OpAssignDiv}, {"%=", token.OpAssignMod},
	{"&=", token.OpAssignBitAnd}, {"|=", token.OpAssignBitOr}, {"^=", token.OpAssignBitXor},
	{"++", token.OpIncrement}, {"--", token.OpDecrement},
}

var singleCharOps = map[byte]token.Kind{
	'<': token.OpLess, '>': token.OpGreater, '!': token.OpNot,
	'+': token.OpAdd, '-': token.OpSub, '*': token.OpMul, '/': token.OpDiv, '%': token.OpMod,
	'=': token.OpAssign, '&': token.OpBitAnd, '|': token.OpBitOr, '^': token.OpBitXor, '~': token.OpBitNot,
	'[': token.BracketOpen, ']': token.BracketClose,
	'{': token.CurlyBracketOpen, '}': token.CurlyBracketClose,
	'(': token.ParenthesisOpen, ')': token.ParenthesisClose,
	'?': token.QuestionMark, ',': token.Comma, ':': token.Colon, ';': token.Semicolon, '.': token.Period,
}

func (l *Lexer) scanOperator(start, line int) error {
	rest := l.src[l.pos:]
	for _, op := range multiCharOps {
		if strings.HasPrefix(rest, op.text) {
			l.pos += len(op.text)
			l.emit(token.Token{Kind: op.kind, Line: line, Offset: start, Length: len(op.text)})
			return nil
		}
	}
	c := l.peek()
	if kind, ok := singleCharOps[c]; ok {
		l.pos++
		l.emit(token.Token{Kind: kind, Line: line, Offset: start, Length: 1})
		return nil
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	if unicode.IsControl(r) {
		return &Error{Message: fmt.Sprintf("unexpected control byte %q", c), Line: line, Offset: start}
	}
	return &Error{Message: fmt.Sprintf("unexpected character %q", r), Line: line, Offset: start}
}
