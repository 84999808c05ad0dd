package convert

import (
	"strings"

	"github.com/nikitalita/shaderconv/token"
)

// legacyOnlyIdentifiers are spellings that exist only in the legacy
// dialect's builtin surface — either a renamed builtin's old spelling, a
// legacy hint alias (lexed as a plain identifier per package lex), or a
// removed sampler type (spec §4.3 negative indicators).
var legacyOnlyIdentifiers = buildLegacyOnlyIdentifiers()

func buildLegacyOnlyIdentifiers() map[string]bool {
	set := map[string]bool{}
	for _, r := range renamedBuiltins {
		if r.Old != r.New {
			set[r.Old] = true
		}
	}
	for _, h := range renamedHints {
		set[h.Old] = true
	}
	for _, t := range removedTypes {
		set[t] = true
	}
	return set
}

var legacyOnlyRenderModes = buildLegacyOnlyRenderModes()

func buildLegacyOnlyRenderModes() map[string]bool {
	set := map[string]bool{}
	for _, r := range renamedRenderModes {
		set[r.Old] = true
	}
	return set
}

// currentOnlyKinds are token kinds that the legacy lexer's keyword table
// never produces at all — their mere appearance is conclusive (spec §4.3
// positive indicators 1-4: group_uniforms qualifiers, global/instance
// uniform scopes, and the screen/depth/normal-roughness hints).
var currentOnlyKinds = map[token.Kind]bool{
	token.GroupUniforms:              true,
	token.Global:                     true,
	token.Instance:                   true,
	token.HintScreenTexture:          true,
	token.HintNormalRoughnessTexture: true,
	token.HintDepthTexture:           true,
}

// isLegacyFloatLiteral reports whether t is a float literal of the form
// `<digits>f` (no decimal point, no exponent) — legal only in the legacy
// dialect (spec §4.3 positive indicator, §4.4 rule 4).
func isLegacyFloatLiteral(t token.Token) bool {
	return t.Kind == token.FloatConstant && !strings.ContainsAny(t.Text, ".eE")
}

// IsLegacy implements the Dialect classifier (spec §4.3): a best-effort,
// non-raising scan of the token stream for positive indicators of the
// current dialect and negative indicators that are exclusively legacy.
// Ambiguous or malformed streams are classified as current (false) —
// silence is never treated as evidence of the legacy dialect, since a
// shader with no distinguishing identifiers at all is just as likely to
// be a small current-dialect shader as a legacy one. A preprocessor
// directive anywhere in the stream shortcuts straight to "not legacy"
// (spec §4.3: "Preprocessor presence shortcuts to 'not legacy' before
// anything else"). mode is the shader's declared `shader_type`, needed to
// recognize a renamed entry-point function used under its legacy name
// (spec §4.3 positive indicator "A function renamed between dialects
// using its legacy signature").
func IsLegacy(s *Stream, mode string) bool {
	for n := s.front.next; n != s.back; n = n.next {
		if n.tok.Kind == token.PreprocDirective {
			return false
		}
	}

	legacyHit := false
	n := s.Front()
	for !s.AtEnd(n) {
		if currentOnlyKinds[n.tok.Kind] {
			return false
		}
		if n.tok.Kind == token.Uniform && uniformDeclIsArray(s, n) {
			return false
		}
		switch n.tok.Kind {
		case token.Identifier:
			if legacyOnlyIdentifiers[n.tok.Text] {
				legacyHit = true
			}
			if _, renamed := lookupRenamedFunction(n.tok.Text, mode); renamed && isFunctionDeclAt(s, n) {
				legacyHit = true
			}
			if tokenIsNewBuiltinFunc(n.tok.Text) {
				if after := s.NextSignificant(n); after.tok.Kind == token.ParenthesisOpen {
					return false
				}
			}
		case token.RenderMode:
			for m := s.NextSignificant(n); m.tok.Kind != token.Semicolon && !s.AtEnd(m); m = s.NextSignificant(m) {
				if m.tok.Kind == token.Identifier && legacyOnlyRenderModes[m.tok.Text] {
					legacyHit = true
				}
			}
		default:
			if isLegacyFloatLiteral(n.tok) {
				legacyHit = true
			}
		}
		n = s.NextSignificant(n)
	}
	return legacyHit
}

// uniformDeclIsArray reports whether the `uniform` at uniformTok declares
// an array (`uniform <type> name[N];`) — legal only in the current
// dialect (spec §4.3 negative indicator "A uniform declared as an
// array"). A malformed or non-matching declaration is treated as "not an
// array uniform" rather than raised, matching the classifier's
// non-raising contract (spec §7).
func uniformDeclIsArray(s *Stream, uniformTok *node) bool {
	n := s.NextSignificant(uniformTok)
	if n.tok.Kind == token.PrecisionLow || n.tok.Kind == token.PrecisionMid || n.tok.Kind == token.PrecisionHigh {
		n = s.NextSignificant(n)
	}
	if !token.IsDatatype(n.tok.Kind) {
		return false
	}
	n = s.NextSignificant(n)
	if n.tok.Kind != token.Identifier {
		return false
	}
	return s.NextSignificant(n).tok.Kind == token.BracketOpen
}

// isFunctionDeclAt reports whether the identifier at n is being used as a
// function's declared name — `<type> NAME (` — rather than merely
// appearing as a call or a read.
func isFunctionDeclAt(s *Stream, n *node) bool {
	if s.NextSignificant(n).tok.Kind != token.ParenthesisOpen {
		return false
	}
	prev := s.PrevSignificant(n)
	return token.IsDatatype(prev.tok.Kind) || prev.tok.Kind == token.Identifier
}
