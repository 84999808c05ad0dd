// Package parse turns a token.Token stream into the typed AST package ast
// expects to walk.
//
// Like package lex, this is a supplementary, non-core component: spec.md
// treats "the parser" as an external collaborator and specifies only the
// AST shape it must hand to the lowerer (package ast). This is one
// concrete implementation of that contract, grounded on naga's
// wgsl.Parser's recursive-descent structure and error style.
package parse

import (
	"fmt"
	"strings"

	"github.com/nikitalita/shaderconv/ast"
	"github.com/nikitalita/shaderconv/token"
)

// Error reports a syntax error with source position.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Error() string { return fmt.Sprintf("%d: %s", e.Line, e.Message) }

// Parser consumes a significant (non-skippable) token stream and builds an
// *ast.Shader.
type Parser struct {
	toks []token.Token // skippables already filtered out, EOF retained
	pos  int
}

// New returns a Parser over a full (unfiltered) token stream, as produced
// by package lex.
func New(toks []token.Token) *Parser {
	sig := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.IsSkippable() {
			continue
		}
		sig = append(sig, t)
	}
	return &Parser{toks: sig}
}

// Parse parses a complete shader program.
func Parse(toks []token.Token) (*ast.Shader, error) {
	return New(toks).ParseShader()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(off int) token.Token {
	idx := p.pos + off
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Line: p.cur().Line}
}

func (p *Parser) expect(k token.Kind, what string) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, p.errorf("expected %s, got %q", what, p.cur().Text)
	}
	return p.advance(), nil
}

// ParseShader parses the `shader_type <ident>;` header, then every
// top-level declaration, until EOF.
func (p *Parser) ParseShader() (*ast.Shader, error) {
	if _, err := p.expect(token.ShaderType, "shader_type"); err != nil {
		return nil, err
	}
	ident, err := p.expect(token.Identifier, "shader type identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	mode, err := shaderMode(ident.Text)
	if err != nil {
		return nil, p.errorf("%v", err)
	}

	shader := &ast.Shader{
		Mode:      mode,
		Uniforms:  map[string]*ast.Uniform{},
		Varyings:  map[string]*ast.Varying{},
	}

	uniformOrder := 0
	instanceOrder := 0
	var structs = map[string]*ast.Struct{}

	for !p.at(token.EOF) {
		switch {
		case p.at(token.RenderMode):
			modes, err := p.parseRenderModes()
			if err != nil {
				return nil, err
			}
			shader.RenderModes = append(shader.RenderModes, modes...)
		case p.at(token.Struct):
			s, err := p.parseStruct()
			if err != nil {
				return nil, err
			}
			structs[s.Name] = s
			shader.Structs = append(shader.Structs, s)
		case p.at(token.GroupUniforms):
			if err := p.skipGroupUniforms(); err != nil {
				return nil, err
			}
		case p.atUniformStart():
			u, err := p.parseUniform(uniformOrder)
			if err != nil {
				return nil, err
			}
			if u.Type.IsSampler() {
				u.TextureBinding = uniformOrder
				uniformOrder++
			}
			if u.Scope == ast.ScopeInstance {
				u.InstanceIndex = instanceOrder
				instanceOrder++
			}
			shader.Uniforms[u.Name] = u
		case p.at(token.Varying):
			v, err := p.parseVarying()
			if err != nil {
				return nil, err
			}
			shader.Varyings[v.Name] = v
		case p.at(token.Const):
			decl, err := p.parseVarDeclStatement()
			if err != nil {
				return nil, err
			}
			shader.Constants = append(shader.Constants, decl)
		case token.IsDatatype(p.cur().Kind) || p.at(token.Identifier):
			fn, err := p.parseFunction(structs)
			if err != nil {
				return nil, err
			}
			shader.Functions = append(shader.Functions, fn)
		default:
			return nil, p.errorf("unexpected top-level token %q", p.cur().Text)
		}
	}

	resolveCallGraph(shader.Functions)
	return shader, nil
}

func shaderMode(name string) (ast.Mode, error) {
	switch name {
	case "spatial":
		return ast.ModeSpatial, nil
	case "canvas_item":
		return ast.ModeCanvasItem, nil
	case "particles":
		return ast.ModeParticles, nil
	case "sky":
		return ast.ModeSky, nil
	case "fog":
		return ast.ModeFog, nil
	default:
		return 0, fmt.Errorf("unknown shader_type %q", name)
	}
}

func (p *Parser) parseRenderModes() ([]ast.RenderMode, error) {
	p.advance() // render_mode
	var modes []ast.RenderMode
	for {
		name, err := p.expect(token.Identifier, "render mode name")
		if err != nil {
			return nil, err
		}
		rm := ast.RenderMode{Name: name.Text}
		if p.at(token.ParenthesisOpen) {
			p.advance()
			for !p.at(token.ParenthesisClose) {
				arg, err := p.expect(token.Identifier, "render mode argument")
				if err != nil {
					return nil, err
				}
				rm.Args = append(rm.Args, arg.Text)
				if p.at(token.Comma) {
					p.advance()
				}
			}
			p.advance()
		}
		modes = append(modes, rm)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return modes, nil
}

// skipGroupUniforms consumes `group_uniforms <name>;` or
// `group_uniforms;` (closing a group) — the grouping is a declarative,
// editor-facing annotation with no lowering effect (spec §3.2 GLOSSARY).
func (p *Parser) skipGroupUniforms() error {
	p.advance()
	if p.at(token.Identifier) {
		p.advance()
	}
	_, err := p.expect(token.Semicolon, "';'")
	return err
}

func (p *Parser) parseStruct() (*ast.Struct, error) {
	p.advance() // struct
	name, err := p.expect(token.Identifier, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CurlyBracketOpen, "'{'"); err != nil {
		return nil, err
	}
	s := &ast.Struct{Name: name.Text}
	for !p.at(token.CurlyBracketClose) {
		prec := p.consumePrecision()
		dt, structName, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		for {
			memberName, err := p.expect(token.Identifier, "struct member name")
			if err != nil {
				return nil, err
			}
			arr := 0
			if p.at(token.BracketOpen) {
				arr, err = p.parseArraySize()
				if err != nil {
					return nil, err
				}
			}
			s.Members = append(s.Members, ast.StructMember{Name: memberName.Text, Type: dt, Struct: structName, Precision: prec, ArraySize: arr})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.Semicolon, "';'"); err != nil {
			return nil, err
		}
	}
	p.advance() // }
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) atUniformStart() bool {
	return p.at(token.Uniform) || p.at(token.Instance) || p.at(token.Global)
}

func (p *Parser) parseUniform(order int) (*ast.Uniform, error) {
	u := &ast.Uniform{Scope: ast.ScopeLocal, Filter: ast.FilterDefault, Repeat: ast.RepeatDefault, TextureBinding: -1, InstanceIndex: -1}
	switch p.cur().Kind {
	case token.Instance:
		u.Scope = ast.ScopeInstance
		p.advance()
	case token.Global:
		u.Scope = ast.ScopeGlobal
		p.advance()
	}
	if _, err := p.expect(token.Uniform, "'uniform'"); err != nil {
		return nil, err
	}
	u.Precision = p.consumePrecision()
	dt, _, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	u.Type = dt
	name, err := p.expect(token.Identifier, "uniform name")
	if err != nil {
		return nil, err
	}
	u.Name = name.Text
	u.TextureOrderIndex = order

	if p.at(token.BracketOpen) {
		arr, err := p.parseArraySize()
		if err != nil {
			return nil, err
		}
		u.ArraySize = arr
	}

	if p.at(token.Colon) {
		p.advance()
		for {
			if err := p.parseUniformHint(u); err != nil {
				return nil, err
			}
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	if p.at(token.OpAssign) {
		p.advance()
		if _, err := p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return u, nil
}

func (p *Parser) parseUniformHint(u *ast.Uniform) error {
	switch p.cur().Kind {
	case token.HintSourceColor:
		u.Hint = ast.HintSourceColor
	case token.HintNormalTexture:
		u.Hint = ast.HintNormalMap
	case token.HintDepthTexture:
		u.Hint = ast.HintDepthTexture
	case token.HintScreenTexture:
		u.Hint = ast.HintScreenTexture
	case token.HintNormalRoughnessTexture:
		u.Hint = ast.HintNormalRoughnessTexture
	case token.HintDefaultWhiteTexture:
		u.Hint = ast.HintDefaultWhite
	case token.HintDefaultBlackTexture:
		u.Hint = ast.HintDefaultBlack
	case token.HintDefaultTransparentTexture:
		u.Hint = ast.HintDefaultTransparent
	case token.HintAnisotropyTexture:
		u.Hint = ast.HintAnisotropy
	case token.HintRoughnessNormalTexture:
		u.Hint = ast.HintRoughnessNormal
	case token.HintRoughnessR:
		u.Hint = ast.HintRoughnessR
	case token.HintRoughnessG:
		u.Hint = ast.HintRoughnessG
	case token.HintRoughnessB:
		u.Hint = ast.HintRoughnessB
	case token.HintRoughnessA:
		u.Hint = ast.HintRoughnessA
	case token.HintRoughnessGray:
		u.Hint = ast.HintRoughnessGray
	case token.HintRange:
		p.advance()
		if _, err := p.expect(token.ParenthesisOpen, "'('"); err != nil {
			return err
		}
		if _, err := p.parseExpr(); err != nil {
			return err
		}
		if _, err := p.expect(token.Comma, "','"); err != nil {
			return err
		}
		if _, err := p.parseExpr(); err != nil {
			return err
		}
		if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
			return err
		}
		u.Hint = ast.HintRange
		return nil
	case token.HintInstanceIndex:
		u.Hint = ast.HintInstanceIndex
	case token.FilterNearest:
		u.Filter = ast.FilterNearest
	case token.FilterLinear:
		u.Filter = ast.FilterLinear
	case token.FilterNearestMipmap:
		u.Filter = ast.FilterNearestMipmap
	case token.FilterLinearMipmap:
		u.Filter = ast.FilterLinearMipmap
	case token.FilterNearestMipmapAnisotropic:
		u.Filter = ast.FilterNearestMipmapAniso
	case token.FilterLinearMipmapAnisotropic:
		u.Filter = ast.FilterLinearMipmapAniso
	case token.RepeatEnable:
		u.Repeat = ast.RepeatEnable
	case token.RepeatDisable:
		u.Repeat = ast.RepeatDisable
	default:
		return p.errorf("expected a uniform hint, got %q", p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *Parser) parseVarying() (*ast.Varying, error) {
	p.advance() // varying
	v := &ast.Varying{}
	if token.IsInterpolation(p.cur().Kind) {
		if p.cur().Kind == token.InterpolationFlat {
			v.Interp = ast.InterpFlat
		}
		p.advance()
	}
	dt, _, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	v.Type = dt
	name, err := p.expect(token.Identifier, "varying name")
	if err != nil {
		return nil, err
	}
	v.Name = name.Text
	if strings.HasPrefix(v.Name, "frag_to_light_") || strings.Contains(v.Name, "frag_to_light") {
		v.FragToLight = true
	}
	if p.at(token.BracketOpen) {
		arr, err := p.parseArraySize()
		if err != nil {
			return nil, err
		}
		v.ArraySize = arr
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Parser) consumePrecision() ast.Precision {
	switch p.cur().Kind {
	case token.PrecisionLow:
		p.advance()
		return ast.PrecisionLow
	case token.PrecisionMid:
		p.advance()
		return ast.PrecisionMedium
	case token.PrecisionHigh:
		p.advance()
		return ast.PrecisionHigh
	default:
		return ast.PrecisionDefault
	}
}

var typeKindToDataType = map[token.Kind]ast.DataType{
	token.TypeVoid: ast.Void, token.TypeBool: ast.Bool, token.TypeBvec2: ast.Bvec2, token.TypeBvec3: ast.Bvec3, token.TypeBvec4: ast.Bvec4,
	token.TypeInt: ast.Int, token.TypeIvec2: ast.Ivec2, token.TypeIvec3: ast.Ivec3, token.TypeIvec4: ast.Ivec4,
	token.TypeUint: ast.Uint, token.TypeUvec2: ast.Uvec2, token.TypeUvec3: ast.Uvec3, token.TypeUvec4: ast.Uvec4,
	token.TypeFloat: ast.Float, token.TypeVec2: ast.Vec2, token.TypeVec3: ast.Vec3, token.TypeVec4: ast.Vec4,
	token.TypeMat2: ast.Mat2, token.TypeMat3: ast.Mat3, token.TypeMat4: ast.Mat4,
	token.TypeSampler2D: ast.Sampler2D, token.TypeISampler2D: ast.ISampler2D, token.TypeUSampler2D: ast.USampler2D,
	token.TypeSampler2DArray: ast.Sampler2DArray, token.TypeISampler2DArray: ast.ISampler2DArray, token.TypeUSampler2DArray: ast.USampler2DArray,
	token.TypeSampler3D: ast.Sampler3D, token.TypeISampler3D: ast.ISampler3D, token.TypeUSampler3D: ast.USampler3D,
	token.TypeSamplerCube: ast.SamplerCube, token.TypeSamplerCubeArray: ast.SamplerCubeArray,
}

// parseTypeName parses either a builtin datatype keyword or a
// previously-declared struct name used as a type.
func (p *Parser) parseTypeName() (ast.DataType, string, error) {
	if dt, ok := typeKindToDataType[p.cur().Kind]; ok {
		p.advance()
		return dt, "", nil
	}
	if p.at(token.Identifier) {
		name := p.advance().Text
		return ast.Void, name, nil
	}
	return 0, "", p.errorf("expected a type name, got %q", p.cur().Text)
}

func (p *Parser) parseArraySize() (int, error) {
	p.advance() // [
	if p.at(token.BracketClose) {
		p.advance()
		return 0, nil
	}
	n, err := p.expect(token.IntConstant, "array size")
	if err != nil {
		return 0, err
	}
	if _, err := p.expect(token.BracketClose, "']'"); err != nil {
		return 0, err
	}
	return int(n.Number), nil
}

func (p *Parser) parseFunction(structs map[string]*ast.Struct) (*ast.Function, error) {
	retType, retStruct, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Identifier, "function name")
	if err != nil {
		return nil, err
	}
	fn := &ast.Function{Name: name.Text, ReturnType: retType, ReturnStruct: retStruct, Calls: map[string]bool{}}
	if _, err := p.expect(token.ParenthesisOpen, "'('"); err != nil {
		return nil, err
	}
	for !p.at(token.ParenthesisClose) {
		param := ast.Param{}
		switch p.cur().Kind {
		case token.ArgOut:
			param.Qualifier = ast.QualOut
			p.advance()
		case token.ArgInout:
			param.Qualifier = ast.QualInout
			p.advance()
		case token.ArgIn:
			p.advance()
		}
		param.Precision = p.consumePrecision()
		dt, structName, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		param.Type = dt
		param.Struct = structName
		pname, err := p.expect(token.Identifier, "parameter name")
		if err != nil {
			return nil, err
		}
		param.Name = pname.Text
		if p.at(token.BracketOpen) {
			arr, err := p.parseArraySize()
			if err != nil {
				return nil, err
			}
			param.ArraySize = arr
		}
		fn.Args = append(fn.Args, param)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
	}
	if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(token.CurlyBracketOpen, "'{'"); err != nil {
		return nil, err
	}
	b := &ast.Block{}
	for !p.at(token.CurlyBracketClose) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		b.Statements = append(b.Statements, s)
	}
	p.advance() // }
	return b, nil
}

// parseStatementOrSingle parses either a braced block or a single
// statement used as a bodiless control-flow arm (spec GLOSSARY).
func (p *Parser) parseStatementOrSingle() (*ast.Block, error) {
	if p.at(token.CurlyBracketOpen) {
		return p.parseBlock()
	}
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.Block{Statements: []ast.Stmt{s}, SingleStatement: true}, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case token.Const:
		return p.parseVarDeclStatement()
	case token.CfIf:
		return p.parseIf()
	case token.CfFor:
		return p.parseFor()
	case token.CfWhile:
		return p.parseWhile()
	case token.CfDo:
		return p.parseDoWhile()
	case token.CfSwitch:
		return p.parseSwitch()
	case token.CfReturn:
		return p.parseReturn()
	case token.CfDiscard:
		p.advance()
		if _, err := p.expect(token.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return &ast.ControlFlow{Kind: ast.CFDiscard}, nil
	case token.CfBreak:
		p.advance()
		if _, err := p.expect(token.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return &ast.ControlFlow{Kind: ast.CFBreak}, nil
	case token.CfContinue:
		p.advance()
		if _, err := p.expect(token.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return &ast.ControlFlow{Kind: ast.CFContinue}, nil
	case token.CurlyBracketOpen:
		return p.parseBlock()
	default:
		if p.looksLikeDeclaration() {
			return p.parseVarDeclStatement()
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon, "';'"); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: e}, nil
	}
}

// looksLikeDeclaration reports whether the upcoming tokens begin a local
// variable declaration: any type keyword, or an identifier followed
// directly by another identifier (the first is taken as a struct type
// name without consulting the declared structs).
func (p *Parser) looksLikeDeclaration() bool {
	if token.IsDatatype(p.cur().Kind) {
		return true
	}
	if p.at(token.Identifier) && p.peekAt(1).Kind == token.Identifier {
		return true
	}
	return false
}

func (p *Parser) parseVarDeclStatement() (*ast.VariableDeclaration, error) {
	decl := &ast.VariableDeclaration{}
	if p.at(token.Const) {
		decl.IsConst = true
		p.advance()
	}
	decl.Precision = p.consumePrecision()
	dt, structName, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	decl.Type = dt
	decl.Struct = structName

	for {
		name, err := p.expect(token.Identifier, "variable name")
		if err != nil {
			return nil, err
		}
		decl.Names = append(decl.Names, name.Text)
		arr := 0
		if p.at(token.BracketOpen) {
			arr, err = p.parseArraySize()
			if err != nil {
				return nil, err
			}
		}
		decl.ArraySize = append(decl.ArraySize, arr)
		var init ast.Expr
		if p.at(token.OpAssign) {
			p.advance()
			init, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		decl.Inits = append(decl.Inits, init)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	p.advance()
	if _, err := p.expect(token.ParenthesisOpen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatementOrSingle()
	if err != nil {
		return nil, err
	}
	cf := &ast.ControlFlow{Kind: ast.CFIf, Condition: cond, Body: body}
	if p.at(token.CfElse) {
		p.advance()
		elseBody, err := p.parseStatementOrSingle()
		if err != nil {
			return nil, err
		}
		cf.ElseBody = elseBody
	}
	return cf, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	p.advance()
	if _, err := p.expect(token.ParenthesisOpen, "'('"); err != nil {
		return nil, err
	}
	var initStmt ast.Stmt
	if !p.at(token.Semicolon) {
		if p.looksLikeDeclaration() {
			decl, err := p.parseVarDeclStatement()
			if err != nil {
				return nil, err
			}
			initStmt = decl
		} else {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Semicolon, "';'"); err != nil {
				return nil, err
			}
			initStmt = &ast.ExprStmt{X: e}
		}
	} else {
		p.advance()
	}
	var cond ast.Expr
	if !p.at(token.Semicolon) {
		var err error
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	var inc ast.Expr
	if !p.at(token.ParenthesisClose) {
		var err error
		inc, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatementOrSingle()
	if err != nil {
		return nil, err
	}
	return &ast.ControlFlow{Kind: ast.CFFor, Init: initStmt, Condition: cond, Increment: inc, Body: body}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	p.advance()
	if _, err := p.expect(token.ParenthesisOpen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatementOrSingle()
	if err != nil {
		return nil, err
	}
	return &ast.ControlFlow{Kind: ast.CFWhile, Condition: cond, Body: body}, nil
}

func (p *Parser) parseDoWhile() (ast.Stmt, error) {
	p.advance()
	body, err := p.parseStatementOrSingle()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CfWhile, "'while'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenthesisOpen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return &ast.ControlFlow{Kind: ast.CFDo, Condition: cond, Body: body}, nil
}

func (p *Parser) parseSwitch() (ast.Stmt, error) {
	p.advance()
	if _, err := p.expect(token.ParenthesisOpen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.CurlyBracketOpen, "'{'"); err != nil {
		return nil, err
	}
	body := &ast.Block{}
	for !p.at(token.CurlyBracketClose) {
		switch p.cur().Kind {
		case token.CfCase:
			p.advance()
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Colon, "':'"); err != nil {
				return nil, err
			}
			caseBody := &ast.Block{}
			for !p.at(token.CfCase) && !p.at(token.CfDefault) && !p.at(token.CurlyBracketClose) {
				s, err := p.parseStatement()
				if err != nil {
					return nil, err
				}
				caseBody.Statements = append(caseBody.Statements, s)
			}
			body.Statements = append(body.Statements, &ast.ControlFlow{Kind: ast.CFCase, CaseValue: val, Body: caseBody})
		case token.CfDefault:
			p.advance()
			if _, err := p.expect(token.Colon, "':'"); err != nil {
				return nil, err
			}
			defBody := &ast.Block{}
			for !p.at(token.CfCase) && !p.at(token.CfDefault) && !p.at(token.CurlyBracketClose) {
				s, err := p.parseStatement()
				if err != nil {
					return nil, err
				}
				defBody.Statements = append(defBody.Statements, s)
			}
			body.Statements = append(body.Statements, &ast.ControlFlow{Kind: ast.CFDefault, Body: defBody})
		default:
			return nil, p.errorf("expected 'case' or 'default', got %q", p.cur().Text)
		}
	}
	p.advance() // }
	return &ast.ControlFlow{Kind: ast.CFSwitch, Condition: cond, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	p.advance()
	if p.at(token.Semicolon) {
		p.advance()
		return &ast.ControlFlow{Kind: ast.CFReturn}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "';'"); err != nil {
		return nil, err
	}
	return &ast.ControlFlow{Kind: ast.CFReturn, ReturnVal: e}, nil
}
