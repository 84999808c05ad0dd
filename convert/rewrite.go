package convert

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/nikitalita/shaderconv/token"
)

// Options configures a single Convert() invocation (spec §6: `new()`
// three options).
type Options struct {
	AddComments    bool // stamp a `/* !convert: ... */` comment at unsupported/ambiguous sites
	FailOnUnported bool // treat an unconditionally-unsupported removal as a hard error
	AssumeCorrect  bool // false makes Converter.Convert run the declaration analysis leniently; the rewriter itself does not read it
}

// UnsupportedRemoval reports a legacy construct with no safe current-
// dialect equivalent, surfaced when Options.FailOnUnported is set (spec
// §7).
type UnsupportedRemoval struct {
	What string
	Line int
}

func (e *UnsupportedRemoval) Error() string {
	return fmt.Sprintf("%d: no current-dialect equivalent for %s", e.Line, e.What)
}

// rewriter applies the rewrite passes listed in run to a Stream in place,
// in a fixed order chosen so no later pass needs to re-discover a rename
// an earlier pass already performed. It does not rename identifiers that
// collide with current-dialect keywords, and it does not report uses of
// the types in removedTypes.
type rewriter struct {
	s       *Stream
	decls   Declarations
	opts    Options
	mode    string
	errs    *multierror.Error
	firstErr *UnsupportedRemoval
}

func newRewriter(s *Stream, decls Declarations, mode string, opts Options) *rewriter {
	return &rewriter{s: s, decls: decls, mode: mode, opts: opts}
}

func (r *rewriter) run() error {
	r.rewriteFloatLiterals()
	r.rewriteRenderModes()
	r.rewriteHints()
	r.rewriteFunctionNames()
	r.rewriteBuiltinRenames()
	r.rewriteClearcoatGloss()
	r.rewriteRemovedBuiltins()
	return r.errs.ErrorOrNil()
}

// rewriteFloatLiterals implements spec §4.4 rule 4: a legacy float literal
// of the form `<digits>f` (no decimal point, no exponent) becomes
// `<digits>.0f`. Already-normalized literals (any text containing `.` or an
// exponent) are left untouched, which is what makes this rule idempotent.
func (r *rewriter) rewriteFloatLiterals() {
	n := r.s.Front()
	for !r.s.AtEnd(n) {
		if n.tok.Kind == token.FloatConstant && strings.HasSuffix(n.tok.Text, "f") && !strings.ContainsAny(n.tok.Text, ".eE") {
			digits := strings.TrimSuffix(n.tok.Text, "f")
			r.s.ReplaceCurrent(n, token.Token{Kind: token.FloatConstant, Text: digits + ".0f", Number: n.tok.Number, Offset: token.OffsetNew})
		}
		n = r.s.NextSignificant(n)
	}
}

func (r *rewriter) fail(what string, line int) {
	err := &UnsupportedRemoval{What: what, Line: line}
	if r.firstErr == nil {
		r.firstErr = err
	}
	if r.opts.FailOnUnported {
		r.errs = multierror.Append(r.errs, err)
	} else {
		r.annotate(nil, "unsupported: "+what)
	}
}

// annotate stamps a `/* !convert: msg */` comment immediately before n
// (or at the current end of stream if n is nil), deduplicating against an
// immediately-preceding sibling block comment with the same text only —
// matching `_add_comment_before`'s narrow dedup window (spec §4.4,
// original's asymmetric dedup is kept intentionally, not "fixed").
func (r *rewriter) annotate(n *node, msg string) {
	if !r.opts.AddComments {
		return
	}
	target := n
	if target == nil {
		target = r.s.Back()
	}
	text := "/* !convert: " + msg + " */"
	// Block comments are skippable, so walk raw links over whitespace only.
	prev := target.prev
	for prev != r.s.front && (prev.tok.Kind == token.Space || prev.tok.Kind == token.Tab || prev.tok.Kind == token.Newline || prev.tok.Kind == token.CR) {
		prev = prev.prev
	}
	if prev.tok.Kind == token.BlockComment && prev.tok.Text == text {
		return
	}
	r.s.InsertBefore(target, token.Token{Kind: token.BlockComment, Text: text})
	r.s.InsertBefore(target, token.Token{Kind: token.Space, Text: " "})
}

// rewriteRenderModes renames renamed render modes in place and removes
// (or flags) removed ones, editing the comma-separated list so a
// leading/trailing/sole-entry removal never leaves a dangling comma (spec
// §4.4 "Render mode elision edge cases").
func (r *rewriter) rewriteRenderModes() {
	n := r.s.Front()
	for !r.s.AtEnd(n) {
		if n.tok.Kind != token.RenderMode {
			n = r.s.NextSignificant(n)
			continue
		}
		r.rewriteOneRenderModeList(n)
		n = r.s.NextSignificant(n)
	}
}

func (r *rewriter) rewriteOneRenderModeList(renderModeTok *node) {
	m := r.s.NextSignificant(renderModeTok)
	for m.tok.Kind == token.Identifier {
		name := m.tok.Text
		if replacement, ok := lookupRenamedRenderMode(name); ok {
			r.s.ReplaceCurrent(m, token.Token{Kind: token.Identifier, Text: replacement, Offset: token.OffsetNew})
		} else if removed, ok := lookupRemovedRenderMode(name); ok {
			if removed.Removable {
				m = r.elideRenderModeEntry(m)
				continue
			}
			r.fail("render_mode "+name, m.tok.Line)
		}
		next := r.s.NextSignificant(m)
		if next.tok.Kind == token.Comma {
			m = r.s.NextSignificant(next)
			continue
		}
		break
	}
}

// elideRenderModeEntry removes one render-mode list entry, along with
// exactly one adjacent comma (preferring the trailing comma, falling back
// to the leading one for the list's last entry), or the whole
// `render_mode X;` statement when X was the list's sole entry.
func (r *rewriter) elideRenderModeEntry(entry *node) *node {
	prevSep := r.s.PrevSignificant(entry)
	nextSep := r.s.NextSignificant(entry)

	if prevSep.tok.Kind != token.Comma && nextSep.tok.Kind != token.Comma {
		// sole entry: drop the entire `render_mode NAME;` statement.
		renderModeTok := r.s.PrevSignificant(entry)
		for renderModeTok.tok.Kind != token.RenderMode && !r.s.AtEnd(renderModeTok) {
			renderModeTok = r.s.PrevSignificant(renderModeTok)
		}
		semi := nextSep
		for semi.tok.Kind != token.Semicolon && !r.s.AtEnd(semi) {
			semi = r.s.NextSignificant(semi)
		}
		after := r.s.NextSignificant(semi)
		r.s.RemoveRange(renderModeTok, after)
		return after
	}
	if nextSep.tok.Kind == token.Comma {
		r.s.Remove(nextSep)
		r.s.Remove(entry)
		return r.s.NextSignificant(r.s.PrevSignificant(entry))
	}
	r.s.Remove(prevSep)
	r.s.Remove(entry)
	return r.s.NextSignificant(prevSep)
}

// rewriteHints renames legacy hint spellings wherever they appear as a
// plain identifier in a hint position (after a uniform declaration's
// `:`).
func (r *rewriter) rewriteHints() {
	inUniform, inHints := false, false
	n := r.s.Front()
	for !r.s.AtEnd(n) {
		switch n.tok.Kind {
		case token.Uniform:
			inUniform = true
		case token.Colon:
			inHints = inUniform
		case token.Semicolon:
			inUniform, inHints = false, false
		case token.Identifier:
			if replacement, ok := lookupRenamedHint(n.tok.Text); ok && inHints {
				r.s.ReplaceCurrent(n, token.Token{Kind: token.Identifier, Text: replacement, Offset: token.OffsetNew})
			}
		}
		n = r.s.NextSignificant(n)
	}
}

// rewriteFunctionNames renames entry-point function names scoped to the
// shader's declared mode (e.g. particles `vertex` → `process`). If the
// current dialect's name is already taken by another function the shader
// declares, that PRE-EXISTING function is bumped out of the way with a
// trailing underscore so the rename itself can land clean (spec §4.4 rule
// 3, end-to-end scenario E2: `vertex`/`process` → `process`/`process_`,
// not `process`/`process`).
func (r *rewriter) rewriteFunctionNames() {
	renames := map[string]string{}
	for name := range r.decls.Functions {
		if target, ok := lookupRenamedFunction(name, r.mode); ok {
			renames[name] = target
		}
	}
	for original, target := range renames {
		if blocker, exists := r.decls.Functions[target]; exists {
			bumped := r.freeFunctionName(target)
			r.renameFunctionDecl(blocker, bumped)
		}
		r.renameFunctionDecl(r.decls.Functions[original], target)
	}
}

// freeFunctionName appends trailing underscores to candidate until it no
// longer collides with any declared function name.
func (r *rewriter) freeFunctionName(candidate string) string {
	for {
		candidate += "_"
		if _, taken := r.decls.Functions[candidate]; !taken {
			return candidate
		}
	}
}

// renameFunctionDecl renames decl's declared identifier in the stream and
// updates the declaration table so a later rename in the same pass sees
// the new name.
func (r *rewriter) renameFunctionDecl(decl FunctionDecl, newName string) {
	nameNode := r.s.NextSignificant(decl.At)
	r.s.ReplaceCurrent(nameNode, token.Token{Kind: token.Identifier, Text: newName, Offset: token.OffsetNew})
	delete(r.decls.Functions, decl.Name)
	decl.Name = newName
	r.decls.Functions[newName] = decl
}

// rewriteBuiltinRenames performs every plain 1:1 builtin rename (every
// entry in renamedBuiltins without SpecialHandling).
func (r *rewriter) rewriteBuiltinRenames() {
	n := r.s.Front()
	for !r.s.AtEnd(n) {
		if n.tok.Kind == token.Identifier {
			if rb, ok := lookupRenamedBuiltin(n.tok.Text); ok && !rb.SpecialHandling {
				r.s.ReplaceCurrent(n, token.Token{Kind: token.Identifier, Text: rb.New, Offset: token.OffsetNew})
			} else if n.tok.Text == "INDEX" {
				r.wrapIndexRead(n)
			}
		}
		n = r.s.NextSignificant(n)
	}
}

// wrapIndexRead wraps a bare INDEX read in int(...), since INDEX changed
// type from float to int between dialects; an INDEX on an assignment LHS
// is left untouched (assigning to it is already an int-typed write). A
// read already wrapped in int(/uint(/float( is left alone, so re-running
// the converter on already-converted source never double-wraps it (spec
// §4.4 rule 6, end-to-end scenario E5).
func (r *rewriter) wrapIndexRead(indexTok *node) {
	next := r.s.NextSignificant(indexTok)
	if isAssignKind(next.tok.Kind) {
		return
	}
	if prev := r.s.PrevSignificant(indexTok); prev.tok.Kind == token.ParenthesisOpen {
		callee := r.s.PrevSignificant(prev)
		k := callee.tok.Kind
		if k == token.TypeInt || k == token.TypeUint || k == token.TypeFloat ||
			(k == token.Identifier && (callee.tok.Text == "int" || callee.tok.Text == "uint" || callee.tok.Text == "float")) {
			if after := r.s.NextSignificant(indexTok); after.tok.Kind == token.ParenthesisClose {
				return
			}
		}
	}
	r.s.InsertBefore(indexTok, token.Token{Kind: token.Identifier, Text: "int", Offset: token.OffsetNew})
	r.s.InsertBefore(indexTok, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertAfter(indexTok, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
}

func isAssignKind(k token.Kind) bool {
	switch k {
	case token.OpAssign, token.OpAssignAdd, token.OpAssignSub, token.OpAssignMul, token.OpAssignDiv,
		token.OpAssignMod, token.OpAssignShiftLeft, token.OpAssignShiftRight,
		token.OpAssignBitAnd, token.OpAssignBitOr, token.OpAssignBitXor:
		return true
	default:
		return false
	}
}

// rewriteClearcoatGloss implements spec §4.4.1: CLEARCOAT_GLOSS is
// renamed to CLEARCOAT_ROUGHNESS with its value inverted at every site,
// since "gloss" and "roughness" are complements (roughness = 1 - gloss).
// A bare read becomes `(1.0 - CLEARCOAT_ROUGHNESS)`. A plain write
// `CLEARCOAT_GLOSS = e;` becomes `CLEARCOAT_ROUGHNESS = (1.0 - (e));`. A
// compound write `CLEARCOAT_GLOSS <op>= e;` becomes
// `CLEARCOAT_ROUGHNESS = (1.0 - ((1.0 - CLEARCOAT_ROUGHNESS) <op> (e)));`
// — algebraically correct for every compound operator, not just +=/-=.
// A write whose result is itself read as a value (e.g. `y = (old *= e)`)
// composes: the write rule applies first, then the whole rewritten write
// sub-expression is wrapped again in `(1.0 - (...))` for the read,
// unless the token immediately preceding the write is `;`, `{`, or `}`
// (or the write opens the stream), in which case it is a standalone
// statement and the extra wrap is suppressed.
func (r *rewriter) rewriteClearcoatGloss() {
	n := r.s.Front()
	for !r.s.AtEnd(n) {
		if n.tok.Kind != token.Identifier || n.tok.Text != "CLEARCOAT_GLOSS" {
			n = r.s.NextSignificant(n)
			continue
		}
		next := r.s.NextSignificant(n)
		switch {
		case next.tok.Kind == token.OpAssign:
			r.rewriteClearcoatPlainWrite(n, next)
		case isCompoundAssignKind(next.tok.Kind):
			r.rewriteClearcoatCompoundWrite(n, next)
		default:
			r.rewriteClearcoatRead(n)
		}
		n = r.s.NextSignificant(n)
	}
}

func isCompoundAssignKind(k token.Kind) bool {
	switch k {
	case token.OpAssignAdd, token.OpAssignSub, token.OpAssignMul, token.OpAssignDiv, token.OpAssignMod,
		token.OpAssignShiftLeft, token.OpAssignShiftRight, token.OpAssignBitAnd, token.OpAssignBitOr, token.OpAssignBitXor:
		return true
	default:
		return false
	}
}

func (r *rewriter) renameGlossToken(n *node) {
	r.s.ReplaceCurrent(n, token.Token{Kind: token.Identifier, Text: "CLEARCOAT_ROUGHNESS", Offset: token.OffsetNew})
}

// isClearcoatComposeRead reports whether the write to CLEARCOAT_GLOSS
// starting at n is itself consumed as a value, per spec §4.4.1: "tokens
// immediately preceding a write whose kind is `;`, `{`, or `}` suppress
// the read-wrap", and so does the start of the stream. Anything else
// preceding it (another operator, an opening paren) means the write's
// result feeds a larger expression and must be wrapped for the read too.
func (r *rewriter) isClearcoatComposeRead(n *node) bool {
	switch r.s.PrevSignificant(n).tok.Kind {
	case token.Semicolon, token.CurlyBracketOpen, token.CurlyBracketClose, token.EOF:
		return false
	default:
		return true
	}
}

// wrapClearcoatWriteForRead wraps the just-rewritten write expression,
// from its first token n through end (the statement terminator), in the
// same `(1.0 - (...))` form a bare read gets — the compose case of spec
// §4.4.1.
func (r *rewriter) wrapClearcoatWriteForRead(n, end *node) {
	r.s.InsertBefore(n, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(n, floatLit(1))
	r.s.InsertBefore(n, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(n, token.Token{Kind: token.OpSub, Offset: token.OffsetNew})
	r.s.InsertBefore(n, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(n, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(end, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
	r.s.InsertBefore(end, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
}

func (r *rewriter) rewriteClearcoatRead(n *node) {
	r.renameGlossToken(n)
	r.s.InsertBefore(n, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(n, floatLit(1))
	r.s.InsertBefore(n, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(n, token.Token{Kind: token.OpSub, Offset: token.OffsetNew})
	r.s.InsertBefore(n, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertAfter(n, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
}

// statementEnd finds the comma or semicolon that terminates the
// expression starting at afterOp, tracking paren/bracket/brace nesting so
// one inside a nested call or index isn't mistaken for the statement's
// own terminator. Reuses EndOfClosure's non-delimiter branch by passing
// an openKind that is never itself a delimiter.
func (r *rewriter) statementEnd(afterOp *node) *node {
	end, ok := r.s.EndOfClosure(token.OpAssign, afterOp)
	if !ok {
		return r.s.Back()
	}
	return end
}

func (r *rewriter) rewriteClearcoatPlainWrite(n, eq *node) {
	composeRead := r.isClearcoatComposeRead(n)
	r.renameGlossToken(n)
	afterEq := r.s.NextSignificant(eq)
	end := r.statementEnd(afterEq)

	r.s.InsertBefore(afterEq, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(afterEq, floatLit(1))
	r.s.InsertBefore(afterEq, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterEq, token.Token{Kind: token.OpSub, Offset: token.OffsetNew})
	r.s.InsertBefore(afterEq, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterEq, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(end, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
	r.s.InsertBefore(end, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})

	if composeRead {
		r.wrapClearcoatWriteForRead(n, end)
	}
}

func (r *rewriter) rewriteClearcoatCompoundWrite(n, op *node) {
	composeRead := r.isClearcoatComposeRead(n)
	baseOp := compoundBaseOp(op.tok.Kind)

	r.renameGlossToken(n)
	r.s.ReplaceCurrent(op, token.Token{Kind: token.OpAssign, Offset: token.OffsetNew})

	afterOp := r.s.NextSignificant(op)
	end := r.statementEnd(afterOp)

	r.s.InsertBefore(afterOp, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(afterOp, floatLit(1))
	r.s.InsertBefore(afterOp, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.OpSub, Offset: token.OffsetNew})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})
	r.s.InsertBefore(afterOp, floatLit(1))
	r.s.InsertBefore(afterOp, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.OpSub, Offset: token.OffsetNew})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.Identifier, Text: "CLEARCOAT_ROUGHNESS", Offset: token.OffsetNew})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterOp, baseOp)
	r.s.InsertBefore(afterOp, token.Token{Kind: token.Space, Text: " "})
	r.s.InsertBefore(afterOp, token.Token{Kind: token.ParenthesisOpen, Offset: token.OffsetNew})

	r.s.InsertBefore(end, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
	r.s.InsertBefore(end, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})
	r.s.InsertBefore(end, token.Token{Kind: token.ParenthesisClose, Offset: token.OffsetNew})

	if composeRead {
		r.wrapClearcoatWriteForRead(n, end)
	}
}

func compoundBaseOp(k token.Kind) token.Token {
	switch k {
	case token.OpAssignAdd:
		return token.Token{Kind: token.OpAdd, Offset: token.OffsetNew}
	case token.OpAssignSub:
		return token.Token{Kind: token.OpSub, Offset: token.OffsetNew}
	case token.OpAssignMul:
		return token.Token{Kind: token.OpMul, Offset: token.OffsetNew}
	case token.OpAssignDiv:
		return token.Token{Kind: token.OpDiv, Offset: token.OffsetNew}
	case token.OpAssignMod:
		return token.Token{Kind: token.OpMod, Offset: token.OffsetNew}
	case token.OpAssignShiftLeft:
		return token.Token{Kind: token.OpShiftLeft, Offset: token.OffsetNew}
	case token.OpAssignShiftRight:
		return token.Token{Kind: token.OpShiftRight, Offset: token.OffsetNew}
	case token.OpAssignBitAnd:
		return token.Token{Kind: token.OpBitAnd, Offset: token.OffsetNew}
	case token.OpAssignBitOr:
		return token.Token{Kind: token.OpBitOr, Offset: token.OffsetNew}
	case token.OpAssignBitXor:
		return token.Token{Kind: token.OpBitXor, Offset: token.OffsetNew}
	default:
		return token.Token{Kind: token.OpAdd, Offset: token.OffsetNew}
	}
}

func floatLit(v float64) token.Token {
	text := "1.0"
	if v != 1 {
		text = fmt.Sprintf("%g.0", v)
	}
	return token.Token{Kind: token.FloatConstant, Text: text, Number: v, Offset: token.OffsetNew}
}

// rewriteRemovedBuiltins handles SCREEN_TEXTURE/DEPTH_TEXTURE/
// NORMAL_ROUGHNESS_TEXTURE (synthesize a replacement hinted sampler2D
// uniform, of the same name, the first time each is seen) and MODULATE
// (always UnsupportedRemoval — no replacement exists). References are left
// unchanged: the synthesized uniform now carries the built-in's own name,
// so the existing token already resolves correctly (spec §4.4 rule 6).
func (r *rewriter) rewriteRemovedBuiltins() {
	synthesized := map[string]bool{}
	n := r.s.Front()
	for !r.s.AtEnd(n) {
		if n.tok.Kind == token.Identifier {
			if rb, ok := lookupRemovedBuiltin(n.tok.Text); ok {
				if rb.Unconditional {
					r.fail("builtin "+rb.Name, n.tok.Line)
				} else if _, exists := r.decls.Uniforms[rb.Name]; !exists && !synthesized[rb.Name] {
					r.insertReplacementUniform(rb.Name, rb.Hints)
					synthesized[rb.Name] = true
					r.decls.Uniforms[rb.Name] = UniformDecl{Name: rb.Name}
				}
			}
		}
		n = r.s.NextSignificant(n)
	}
}

// insertReplacementUniform synthesizes
// `uniform sampler2D <name> : <hint1>, <hint2>, ...;` right after the
// `shader_type NAME;` line, mirroring `_insert_uniform_declaration`.
func (r *rewriter) insertReplacementUniform(name string, hints []string) {
	shaderTypeTok := r.s.Front()
	for !r.s.AtEnd(shaderTypeTok) && shaderTypeTok.tok.Kind != token.ShaderType {
		shaderTypeTok = r.s.NextSignificant(shaderTypeTok)
	}
	semi := shaderTypeTok
	for !r.s.AtEnd(semi) && semi.tok.Kind != token.Semicolon {
		semi = r.s.NextSignificant(semi)
	}

	toks := []token.Token{
		{Kind: token.Newline, Offset: token.OffsetNew},
		{Kind: token.Uniform, Offset: token.OffsetNew},
		{Kind: token.Space, Offset: token.OffsetNew},
		{Kind: token.TypeSampler2D, Offset: token.OffsetNew},
		{Kind: token.Space, Offset: token.OffsetNew},
		{Kind: token.Identifier, Text: name, Offset: token.OffsetNew},
	}
	if len(hints) > 0 {
		toks = append(toks, token.Token{Kind: token.Colon, Offset: token.OffsetNew}, token.Token{Kind: token.Space, Offset: token.OffsetNew})
		for i, h := range hints {
			if i > 0 {
				toks = append(toks, token.Token{Kind: token.Comma, Offset: token.OffsetNew}, token.Token{Kind: token.Space, Offset: token.OffsetNew})
			}
			hintKind, ok := hintIdentifierKind(h)
			if !ok {
				hintKind = token.Identifier
			}
			hintTok := token.Token{Kind: hintKind, Offset: token.OffsetNew}
			if hintKind == token.Identifier {
				hintTok.Text = h
			}
			toks = append(toks, hintTok)
		}
	}
	toks = append(toks, token.Token{Kind: token.Semicolon, Offset: token.OffsetNew})
	r.s.InsertManyAfter(semi, toks)
}

func hintIdentifierKind(hint string) (token.Kind, bool) {
	switch hint {
	case "hint_screen_texture":
		return token.HintScreenTexture, true
	case "hint_depth_texture":
		return token.HintDepthTexture, true
	case "hint_normal_roughness_texture":
		return token.HintNormalRoughnessTexture, true
	case "filter_linear_mipmap":
		return token.FilterLinearMipmap, true
	default:
		return 0, false
	}
}
