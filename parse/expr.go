package parse

import (
	"github.com/nikitalita/shaderconv/ast"
	"github.com/nikitalita/shaderconv/token"
)

// parseExpr parses a full expression, starting at assignment precedence —
// the lowest level in the shader DSL's expression grammar.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

var assignOps = map[token.Kind]string{
	token.OpAssign: "=", token.OpAssignAdd: "+=", token.OpAssignSub: "-=",
	token.OpAssignMul: "*=", token.OpAssignDiv: "/=", token.OpAssignMod: "%=",
	token.OpAssignShiftLeft: "<<=", token.OpAssignShiftRight: ">>=",
	token.OpAssignBitAnd: "&=", token.OpAssignBitOr: "|=", token.OpAssignBitXor: "^=",
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	lhs, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if op, ok := assignOps[p.cur().Kind]; ok {
		p.advance()
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Operator{Kind: ast.OpAssign, Op: op, Operands: []ast.Expr{lhs, rhs}, Type: lhs.ResultType()}, nil
	}
	return lhs, nil
}

func (p *Parser) parseTernary() (ast.Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.at(token.QuestionMark) {
		p.advance()
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "':'"); err != nil {
			return nil, err
		}
		b, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Operator{Kind: ast.OpTernary, Op: "?:", Operands: []ast.Expr{cond, a, b}, Type: a.ResultType()}, nil
	}
	return cond, nil
}

// binaryLevel parses one precedence level: next() parses the level below,
// ops maps token kinds at this level to their GLSL spelling.
func (p *Parser) binaryLevel(ops map[token.Kind]string, next func() (ast.Expr, error)) (ast.Expr, error) {
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			return lhs, nil
		}
		p.advance()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Operator{Kind: ast.OpBinary, Op: op, Operands: []ast.Expr{lhs, rhs}, Type: lhs.ResultType()}
	}
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpOr: "||"}, p.parseLogicalAnd)
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpAnd: "&&"}, p.parseBitOr)
}

func (p *Parser) parseBitOr() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpBitOr: "|"}, p.parseBitXor)
}

func (p *Parser) parseBitXor() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpBitXor: "^"}, p.parseBitAnd)
}

func (p *Parser) parseBitAnd() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpBitAnd: "&"}, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpEqual: "==", token.OpNotEqual: "!="}, p.parseRelational)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{
		token.OpLess: "<", token.OpLessEqual: "<=", token.OpGreater: ">", token.OpGreaterEqual: ">=",
	}, p.parseShift)
}

func (p *Parser) parseShift() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpShiftLeft: "<<", token.OpShiftRight: ">>"}, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpAdd: "+", token.OpSub: "-"}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryLevel(map[token.Kind]string{token.OpMul: "*", token.OpDiv: "/", token.OpMod: "%"}, p.parseUnary)
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.OpSub, token.OpNot, token.OpBitNot, token.OpIncrement, token.OpDecrement:
		op := token.Spelling(p.cur().Kind)
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Operator{Kind: ast.OpUnary, Op: op, Operands: []ast.Expr{x}, Type: x.ResultType()}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.Period:
			p.advance()
			field, err := p.expect(token.Identifier, "member name")
			if err != nil {
				return nil, err
			}
			x, err = p.parseMemberTail(x, field.Text)
			if err != nil {
				return nil, err
			}
		case token.BracketOpen:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.BracketClose, "']'"); err != nil {
				return nil, err
			}
			x = &ast.Array{Base: x, Index: idx, Type: x.ResultType()}
		case token.OpIncrement, token.OpDecrement:
			op := token.Spelling(p.cur().Kind)
			p.advance()
			x = &ast.Operator{Kind: ast.OpUnary, Op: "post" + op, Operands: []ast.Expr{x}, Type: x.ResultType()}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parseMemberTail(base ast.Expr, field string) (ast.Expr, error) {
	switch p.cur().Kind {
	case token.ParenthesisOpen:
		p.advance()
		args, err := p.parseArgList(token.ParenthesisClose)
		if err != nil {
			return nil, err
		}
		return &ast.Member{Base: base, Field: field, Tail: ast.MemberCall, CallArgs: args, Type: base.ResultType()}, nil
	case token.BracketOpen:
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.BracketClose, "']'"); err != nil {
			return nil, err
		}
		return &ast.Member{Base: base, Field: field, Tail: ast.MemberIndexed, Index: idx, Type: base.ResultType()}, nil
	case token.OpAssign:
		p.advance()
		v, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Member{Base: base, Field: field, Tail: ast.MemberAssigned, Assign: v, Type: base.ResultType()}, nil
	default:
		return &ast.Member{Base: base, Field: field, Tail: ast.MemberPlain, Type: base.ResultType()}, nil
	}
}

func (p *Parser) parseArgList(end token.Kind) ([]ast.Expr, error) {
	var args []ast.Expr
	for !p.at(end) {
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(end, "closing delimiter"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.ParenthesisOpen:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.ParenthesisClose, "')'"); err != nil {
			return nil, err
		}
		return x, nil
	case token.True:
		p.advance()
		return &ast.Constant{Type: ast.Bool, Values: []float64{1}}, nil
	case token.False:
		p.advance()
		return &ast.Constant{Type: ast.Bool, Values: []float64{0}}, nil
	case token.FloatConstant:
		t := p.advance()
		return &ast.Constant{Type: ast.Float, Values: []float64{t.Number}}, nil
	case token.IntConstant:
		t := p.advance()
		return &ast.Constant{Type: ast.Int, Values: []float64{t.Number}}, nil
	case token.UintConstant:
		t := p.advance()
		return &ast.Constant{Type: ast.Uint, Values: []float64{t.Number}}, nil
	case token.Identifier:
		return p.parseIdentifierExpr()
	default:
		if dt, ok := typeKindToDataType[p.cur().Kind]; ok {
			p.advance()
			if !p.at(token.ParenthesisOpen) {
				return nil, p.errorf("expected '(' after type constructor %q", dt.GLSLName())
			}
			p.advance()
			args, err := p.parseArgList(token.ParenthesisClose)
			if err != nil {
				return nil, err
			}
			return &ast.Operator{Kind: ast.OpConstruct, Op: dt.GLSLName(), Operands: args, Type: dt}, nil
		}
		return nil, p.errorf("unexpected token %q in expression", p.cur().Text)
	}
}

// parseIdentifierExpr resolves `NAME(...)` as a call, `NAME[N](...)` as an
// array constructor, and bare `NAME` as a variable reference.
func (p *Parser) parseIdentifierExpr() (ast.Expr, error) {
	name := p.advance().Text

	if p.at(token.BracketOpen) && p.peekAt(1).Kind == token.IntConstant && p.peekAt(2).Kind == token.BracketClose {
		save := p.pos
		size, err := p.parseArraySize()
		if err == nil && p.at(token.ParenthesisOpen) {
			p.advance()
			args, err := p.parseArgList(token.ParenthesisClose)
			if err != nil {
				return nil, err
			}
			return &ast.ArrayConstruct{ElementType: ast.Void, Size: size, Args: args}, nil
		}
		p.pos = save
	}

	if p.at(token.ParenthesisOpen) {
		p.advance()
		args, err := p.parseArgList(token.ParenthesisClose)
		if err != nil {
			return nil, err
		}
		return &ast.Operator{Kind: ast.OpCall, Op: name, Operands: args, Type: ast.Void}, nil
	}
	return &ast.Variable{Name: name, Type: ast.Void}, nil
}
