package convert

import (
	"fmt"

	"github.com/nikitalita/shaderconv/token"
)

// UniformDecl records one `uniform` declaration encountered by the
// analyzer, keyed by name (spec §4.2, component F's "declaration
// tables").
type UniformDecl struct {
	Name string
	At   *node
}

// FunctionDecl records one function declaration.
type FunctionDecl struct {
	Name string
	At   *node
}

// VarDecl records one local/global variable declaration and the lexical
// scope depth it was declared at.
type VarDecl struct {
	Name  string
	Depth int
}

// Declarations is the three-pass analyzer's output: uniforms, functions,
// and a depth-tagged variable table (spec §4.2).
type Declarations struct {
	Uniforms  map[string]UniformDecl
	Functions map[string]FunctionDecl
	Vars      []VarDecl
}

// analyzer implements the declarative three-pass scan over a Stream
// (spec §4.2 "Declaration analyzer"): pass 1 collects uniforms, pass 2
// collects function signatures, pass 3 walks function bodies collecting
// block-scoped local variables, tracking `{`/`}` depth so scope_has_decl
// can answer "is NAME visible right here" without a symbol-table stack
// per call site.
type analyzer struct {
	s       *Stream
	lenient bool
	decls   Declarations
}

func newAnalyzer(s *Stream, lenient bool) *analyzer {
	return &analyzer{
		s:       s,
		lenient: lenient,
		decls: Declarations{
			Uniforms:  map[string]UniformDecl{},
			Functions: map[string]FunctionDecl{},
		},
	}
}

// analyze runs all three passes and returns the resulting declaration
// tables, or an error if the shader is too malformed to scan at all (spec
// §7 MalformedSource) — unless lenient mode was requested, in which case
// analysis best-efforts past any single failure (spec §7 LenientAnalysis).
func (a *analyzer) analyze() (Declarations, error) {
	if err := a.passUniforms(); err != nil && !a.lenient {
		return Declarations{}, err
	}
	if err := a.passFunctions(); err != nil && !a.lenient {
		return Declarations{}, err
	}
	if err := a.passVariables(); err != nil && !a.lenient {
		return Declarations{}, err
	}
	return a.decls, nil
}

// passUniforms scans for `[instance|global] uniform <type> <name>` at
// top level, skipping any hint argument list or initializer via
// EndOfClosure so a parenthesized hint (e.g. hint_range(0.0, 1.0)) never
// confuses the scan into treating its contents as new declarations.
func (a *analyzer) passUniforms() error {
	n := a.s.Front()
	for !a.s.AtEnd(n) {
		if n.tok.Kind == token.Uniform {
			name, next, err := a.scanUniformDecl(n)
			if err != nil {
				if a.lenient {
					n = a.s.NextSignificant(n)
					continue
				}
				return err
			}
			if name != "" {
				a.decls.Uniforms[name] = UniformDecl{Name: name, At: n}
			}
			n = next
			continue
		}
		n = a.s.NextSignificant(n)
	}
	return nil
}

// scanUniformDecl walks forward from the `uniform` token itself to the
// declaration's terminating semicolon, returning the declared name and
// the node to resume scanning from.
func (a *analyzer) scanUniformDecl(uniformTok *node) (string, *node, error) {
	n := a.s.NextSignificant(uniformTok)
	if n.tok.Kind == token.PrecisionLow || n.tok.Kind == token.PrecisionMid || n.tok.Kind == token.PrecisionHigh {
		n = a.s.NextSignificant(n)
	}
	if !token.IsDatatype(n.tok.Kind) {
		return "", a.s.NextSignificant(uniformTok), errMalformed("expected a type after 'uniform'")
	}
	n = a.s.NextSignificant(n)
	if n.tok.Kind != token.Identifier {
		return "", a.s.NextSignificant(uniformTok), errMalformed("expected a name after uniform type")
	}
	name := n.tok.Text
	n = a.s.NextSignificant(n)

	if n.tok.Kind == token.BracketOpen {
		end, ok := a.s.EndOfClosure(token.BracketOpen, a.s.NextSignificant(n))
		if !ok {
			return "", a.s.Back(), errMalformed("unterminated array size after uniform %q", name)
		}
		n = a.s.NextSignificant(end)
	}
	if n.tok.Kind == token.Colon {
		for n.tok.Kind != token.Semicolon {
			if n.tok.Kind == token.ParenthesisOpen {
				end, ok := a.s.EndOfClosure(token.ParenthesisOpen, a.s.NextSignificant(n))
				if !ok {
					return "", a.s.Back(), errMalformed("unterminated hint argument list on uniform %q", name)
				}
				n = end
			}
			if a.s.AtEnd(n) {
				return "", a.s.Back(), errMalformed("unterminated uniform declaration %q", name)
			}
			n = a.s.NextSignificant(n)
		}
	}
	if n.tok.Kind == token.OpAssign {
		for n.tok.Kind != token.Semicolon && !a.s.AtEnd(n) {
			n = a.s.NextSignificant(n)
		}
	}
	return name, a.s.NextSignificant(n), nil
}

// passFunctions scans for `<type> <name> (` at top level (a function
// signature) and records it, then skips the body entirely via
// EndOfClosure on the opening brace.
func (a *analyzer) passFunctions() error {
	n := a.s.Front()
	for !a.s.AtEnd(n) {
		if token.IsDatatype(n.tok.Kind) || n.tok.Kind == token.Identifier {
			nameNode := a.s.NextSignificant(n)
			if nameNode.tok.Kind == token.Identifier {
				paren := a.s.NextSignificant(nameNode)
				if paren.tok.Kind == token.ParenthesisOpen {
					a.decls.Functions[nameNode.tok.Text] = FunctionDecl{Name: nameNode.tok.Text, At: n}
					end, ok := a.s.EndOfClosure(token.ParenthesisOpen, a.s.NextSignificant(paren))
					if !ok {
						if a.lenient {
							n = a.s.NextSignificant(n)
							continue
						}
						return errMalformed("unterminated parameter list for function %q", nameNode.tok.Text)
					}
					brace := a.s.NextSignificant(end)
					if brace.tok.Kind == token.CurlyBracketOpen {
						bodyEnd, ok := a.s.EndOfClosure(token.CurlyBracketOpen, a.s.NextSignificant(brace))
						if !ok {
							if a.lenient {
								n = a.s.NextSignificant(n)
								continue
							}
							return errMalformed("unterminated body for function %q", nameNode.tok.Text)
						}
						n = a.s.NextSignificant(bodyEnd)
						continue
					}
					n = a.s.NextSignificant(brace)
					continue
				}
			}
		}
		n = a.s.NextSignificant(n)
	}
	return nil
}

// passVariables walks the whole stream tracking brace depth, recording
// every `<type> <name>` declaration seen inside a function body
// (`_skip_struct`'s sibling pass: skip the struct body itself but record
// a trailing inline variable, if any).
func (a *analyzer) passVariables() error {
	depth := 0
	n := a.s.Front()
	for !a.s.AtEnd(n) {
		switch n.tok.Kind {
		case token.CurlyBracketOpen:
			depth++
		case token.CurlyBracketClose:
			if depth > 0 {
				depth--
			}
		case token.Struct:
			n = a.skipStruct(n, depth)
			continue
		case token.Const:
			next := a.s.NextSignificant(n)
			if token.IsDatatype(next.tok.Kind) {
				a.recordVarDecl(next, depth)
			}
		}
		if depth > 0 && (token.IsDatatype(n.tok.Kind)) {
			a.recordVarDecl(n, depth)
		}
		n = a.s.NextSignificant(n)
	}
	return nil
}

// skipStruct walks past `struct NAME { ... }` and, if the declaration is
// immediately followed by an inline variable name before the semicolon,
// records that variable too (mirrors `_skip_struct`).
func (a *analyzer) skipStruct(structTok *node, depth int) *node {
	n := a.s.NextSignificant(structTok) // struct name
	n = a.s.NextSignificant(n)          // {
	if n.tok.Kind != token.CurlyBracketOpen {
		return a.s.NextSignificant(structTok)
	}
	end, ok := a.s.EndOfClosure(token.CurlyBracketOpen, a.s.NextSignificant(n))
	if !ok {
		return a.s.Back()
	}
	after := a.s.NextSignificant(end)
	if after.tok.Kind == token.Identifier {
		a.decls.Vars = append(a.decls.Vars, VarDecl{Name: after.tok.Text, Depth: depth})
		after = a.s.NextSignificant(after)
	}
	return after
}

func (a *analyzer) recordVarDecl(typeNode *node, depth int) {
	n := a.s.NextSignificant(typeNode)
	for n.tok.Kind == token.Identifier || n.tok.Kind == token.Comma {
		if n.tok.Kind == token.Identifier {
			a.decls.Vars = append(a.decls.Vars, VarDecl{Name: n.tok.Text, Depth: depth})
		}
		n = a.s.NextSignificant(n)
		if n.tok.Kind == token.OpAssign {
			for n.tok.Kind != token.Comma && n.tok.Kind != token.Semicolon && !a.s.AtEnd(n) {
				n = a.s.NextSignificant(n)
			}
		}
	}
}

// ScopeHasDecl reports whether name was declared as a local/global
// variable at or below the given depth (`scope_has_decl`).
func (d Declarations) ScopeHasDecl(name string, depth int) bool {
	for _, v := range d.Vars {
		if v.Name == name && v.Depth <= depth {
			return true
		}
	}
	return false
}

type malformedError struct{ msg string }

func (e *malformedError) Error() string { return e.msg }

func errMalformed(format string, args ...any) error {
	return &malformedError{msg: fmt.Sprintf(format, args...)}
}
