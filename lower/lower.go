// Package lower implements the Lowerer (spec §4.1, component E): a
// recursive AST walk that emits GLSL text into a codegen.GeneratedCode
// record, driven by two caller-supplied action bundles.
package lower

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nikitalita/shaderconv/action"
	"github.com/nikitalita/shaderconv/ast"
	"github.com/nikitalita/shaderconv/codegen"
)

// Options bundles everything a single compile() invocation needs beyond the
// AST itself (spec §6 `compile(mode, source, identifier_actions, path)`).
// Compile does not read Path, and its errors do not name the file. The
// lowerer itself never re-lexes; it is handed an already-parsed tree.
type Options struct {
	Mode       ast.Mode
	Path       string
	Defaults   *action.DefaultIdentifierActions
	Actions    *action.IdentifierActions
	LowEndMode bool // when true, sampler references emit the texture identifier directly (spec §4.1 "Samplers")

	// GlobalType resolves a global-scoped uniform's declared type, per
	// spec §6's "global shader-parameter interface". Compile does not call
	// it: a global-scoped uniform is read using the type recorded on its
	// ast.Uniform.
	GlobalType func(name string) (ast.DataType, error)
}

// varyingSlotFactor returns how many varying "slots" a type consumes
// (spec §4.1 "Varying layout").
func varyingSlotFactor(t ast.DataType) int {
	switch t {
	case ast.Mat2:
		return 2
	case ast.Mat3:
		return 3
	case ast.Mat4:
		return 4
	default:
		return 1
	}
}

// lowerer holds the mutable state of a single Compile invocation. Per
// spec §5 it owns its AST, its output container, and no shared mutable
// state — safe to run many of these concurrently from the same process.
type lowerer struct {
	opts   *Options
	gen    *codegen.GeneratedCode
	shader *ast.Shader

	funcText      map[string]string     // per-function lowered body text, keyed by function name
	funcs         map[string]*ast.Function
	varyingLoc    map[string]int // global varying name -> assigned location
	fragToLight   map[string]*ast.Varying
	nextVaryingLoc int
}

// Compile is the Lowerer's external entry point (spec §6).
func Compile(shader *ast.Shader, opts Options) (*codegen.GeneratedCode, error) {
	if opts.Defaults == nil {
		return nil, invariant("Compile", "Options.Defaults must be set before first use")
	}
	if opts.Actions == nil {
		opts.Actions = action.NewIdentifierActions()
	}
	l := &lowerer{
		opts:        &opts,
		gen:         codegen.New(),
		funcText:    map[string]string{},
		funcs:       map[string]*ast.Function{},
		varyingLoc:  map[string]int{},
		fragToLight: map[string]*ast.Varying{},
	}
	if err := l.run(shader); err != nil {
		return nil, err
	}
	return l.gen, nil
}

func (l *lowerer) run(shader *ast.Shader) error {
	l.shader = shader
	l.applyRenderModes(shader.RenderModes)

	for _, v := range shader.Varyings {
		if v.FragToLight {
			l.fragToLight[v.Name] = v
			continue
		}
		slots := varyingSlotFactor(v.Type)
		if v.ArraySize > 0 {
			slots *= v.ArraySize
		}
		l.varyingLoc[v.Name] = l.opts.Defaults.BaseVaryingLocation + l.nextVaryingLoc
		l.nextVaryingLoc += slots
	}

	for _, fn := range shader.Functions {
		l.funcs[fn.Name] = fn
	}
	for _, fn := range shader.Functions {
		text, err := l.lowerFunctionBody(fn)
		if err != nil {
			return err
		}
		l.funcText[fn.Name] = text
	}

	if err := l.emitStages(shader); err != nil {
		return err
	}

	l.gen.Uniforms = l.renderUniformDecls(shader)

	layouts, total, err := layoutUniforms(l.collectedUniforms(shader))
	if err != nil {
		return err
	}
	for _, ul := range layouts {
		l.gen.UniformOffsets[ul.Name] = ul.Offset
	}
	l.gen.UniformTotalSize = total

	l.gen.TextureUniforms = l.textureTable(shader)

	if len(l.fragToLight) > 0 {
		l.gen.StageGlobals[ast.StageFragment] += l.renderFragToLightStruct()
	}

	return nil
}

func (l *lowerer) applyRenderModes(modes []ast.RenderMode) {
	for _, m := range modes {
		if v, ok := l.opts.Actions.RenderModeValues[m.Name]; ok {
			_ = v // render-mode values are surfaced to callers via Actions; nothing further to do here.
		}
		if flag, ok := l.opts.Actions.RenderModeFlags[m.Name]; ok {
			*flag = true
		}
		if def, ok := l.opts.Defaults.RenderModeDefines[m.Name]; ok {
			l.gen.AddDefine(def)
		}
	}
}

// collectedUniforms returns the shader's uniforms sorted by
// TextureOrderIndex, with ties broken by name so layoutUniforms stays
// reproducible. ast.Shader.Uniforms is a map and carries no source
// declaration order, so uniforms that share a TextureOrderIndex (the
// non-samplers declared between the same two samplers) come out in name
// order, not in source order.
func (l *lowerer) collectedUniforms(shader *ast.Shader) []*ast.Uniform {
	out := make([]*ast.Uniform, 0, len(shader.Uniforms))
	for _, u := range shader.Uniforms {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TextureOrderIndex != out[j].TextureOrderIndex {
			return out[i].TextureOrderIndex < out[j].TextureOrderIndex
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (l *lowerer) textureTable(shader *ast.Shader) []codegen.Texture {
	uniforms := l.collectedUniforms(shader)
	out := make([]codegen.Texture, 0, len(uniforms))
	for _, u := range uniforms {
		if !u.Type.IsSampler() {
			continue
		}
		if u.Hint == ast.HintScreenTexture || u.Hint == ast.HintNormalRoughnessTexture || u.Hint == ast.HintDepthTexture {
			continue
		}
		out = append(out, codegen.Texture{
			Name:      u.Name,
			Type:      u.Type,
			Hint:      u.Hint,
			IsColor:   u.Hint == ast.HintSourceColor,
			Filter:    u.Filter,
			Repeat:    u.Repeat,
			IsGlobal:  u.Scope == ast.ScopeGlobal,
			ArraySize: u.ArraySize,
			Binding:   l.opts.Defaults.BaseTextureBinding + u.TextureOrderIndex,
			LayoutSet: l.opts.Defaults.TextureLayoutSet,
		})
	}
	return out
}

func (l *lowerer) renderUniformDecls(shader *ast.Shader) string {
	var sb strings.Builder
	for _, u := range l.collectedUniforms(shader) {
		if u.Type.IsSampler() {
			continue
		}
		fmt.Fprintf(&sb, "uniform %s %s;\n", u.Type.GLSLName(), u.Name)
	}
	return sb.String()
}

func (l *lowerer) renderFragToLightStruct() string {
	var sb strings.Builder
	sb.WriteString("struct FragToLight {\n")
	names := make([]string, 0, len(l.fragToLight))
	for n := range l.fragToLight {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		v := l.fragToLight[n]
		fmt.Fprintf(&sb, "\t%s %s;\n", v.Type.GLSLName(), n)
	}
	sb.WriteString("};\nFragToLight frag_to_light;\n")
	return sb.String()
}

// emitStages implements spec §4.1 "Stage function emission": for every
// declared entry point, the transitive call graph is computed and the call
// closures are emitted into stage_globals, sorted alphabetically by
// function name at each dependency-expansion step (design note "Cyclic
// graphs" / `_dump_function_deps`).
func (l *lowerer) emitStages(shader *ast.Shader) error {
	for name, stage := range l.opts.Actions.EntryPointStages {
		fn := l.funcs[name]
		if fn == nil {
			return invariant("emitStages", "entry point %q has no matching function in the AST", name)
		}
		body, ok := l.funcText[name]
		if !ok {
			return invariant("emitStages", "entry point %q was not lowered", name)
		}
		l.gen.Code[name] = body

		added := map[string]bool{}
		var deps strings.Builder
		l.dumpFunctionDeps(shader, name, added, &deps)
		l.gen.StageGlobals[stage] += deps.String()
	}
	return nil
}

// dumpFunctionDeps mirrors ShaderCompiler::_dump_function_deps: a
// post-order walk of the call graph that appends each transitively-called
// function's text exactly once, visiting a function's own dependencies in
// alphabetical order before the function itself — the "design contract"
// that guarantees byte-stable output (design note "Cyclic graphs").
func (l *lowerer) dumpFunctionDeps(shader *ast.Shader, forFunc string, added map[string]bool, out *strings.Builder) {
	fn := l.funcs[forFunc]
	if fn == nil {
		return
	}
	callees := make([]string, 0, len(fn.Calls))
	for callee := range fn.Calls {
		callees = append(callees, callee)
	}
	sort.Strings(callees)

	for _, callee := range callees {
		if added[callee] {
			continue
		}
		l.dumpFunctionDeps(shader, callee, added, out)
		if added[callee] {
			continue
		}
		added[callee] = true
		calleeFn := l.funcs[callee]
		if calleeFn == nil {
			continue
		}
		out.WriteString("\n")
		out.WriteString(l.renderFunctionSignature(calleeFn))
		out.WriteString(" {\n")
		out.WriteString(l.funcText[callee])
		out.WriteString("}\n")
	}
}

func (l *lowerer) renderFunctionSignature(fn *ast.Function) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s(", fn.ReturnType.GLSLName(), fn.Name)
	for i, p := range fn.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch p.Qualifier {
		case ast.QualOut:
			sb.WriteString("out ")
		case ast.QualInout:
			sb.WriteString("inout ")
		}
		fmt.Fprintf(&sb, "%s %s", p.Type.GLSLName(), p.Name)
	}
	sb.WriteString(")")
	return sb.String()
}

// lowerFunctionBody lowers one function body to text, without its
// signature, exactly once per function (spec §4.1 "Stage function
// emission").
func (l *lowerer) lowerFunctionBody(fn *ast.Function) (string, error) {
	var sb strings.Builder
	ctx := &fnContext{lowerer: l, fn: fn}
	for _, stmt := range fn.Body.Statements {
		text, err := ctx.lowerStmt(stmt, 1)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// fnContext tracks the function currently being lowered, since variable
// reference resolution depends on which entry-point stage (if any)
// contains it (spec §4.1 "Variable references", step 3; "Time-identifier
// uses").
type fnContext struct {
	lowerer *lowerer
	fn      *ast.Function
}

func (c *fnContext) stage() (ast.Stage, bool) {
	s, ok := c.lowerer.opts.Actions.EntryPointStages[c.fn.Name]
	return s, ok
}

func indent(n int) string { return strings.Repeat("\t", n) }

func (c *fnContext) lowerStmt(s ast.Stmt, depth int) (string, error) {
	switch st := s.(type) {
	case *ast.VariableDeclaration:
		return c.lowerVarDecl(st, depth)
	case *ast.ExprStmt:
		e, err := c.lowerExpr(st.X)
		if err != nil {
			return "", err
		}
		return indent(depth) + e + ";\n", nil
	case *ast.ControlFlow:
		return c.lowerControlFlow(st, depth)
	default:
		return "", invariant("lowerStmt", "unhandled statement type %T", s)
	}
}

func (c *fnContext) lowerVarDecl(v *ast.VariableDeclaration, depth int) (string, error) {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	if v.IsConst {
		sb.WriteString("const ")
	}
	typeName := v.Type.GLSLName()
	if v.Struct != "" {
		typeName = v.Struct
	}
	sb.WriteString(typeName)
	sb.WriteString(" ")
	for i, name := range v.Names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		if i < len(v.ArraySize) && v.ArraySize[i] > 0 {
			fmt.Fprintf(&sb, "[%d]", v.ArraySize[i])
		}
		if i < len(v.Inits) && v.Inits[i] != nil {
			e, err := c.lowerExpr(v.Inits[i])
			if err != nil {
				return "", err
			}
			sb.WriteString(" = ")
			sb.WriteString(e)
		}
	}
	sb.WriteString(";\n")
	return sb.String(), nil
}

func (c *fnContext) lowerControlFlow(cf *ast.ControlFlow, depth int) (string, error) {
	switch cf.Kind {
	case ast.CFIf:
		cond, err := c.lowerExpr(cf.Condition)
		if err != nil {
			return "", err
		}
		body, err := c.lowerBlock(cf.Body, depth)
		if err != nil {
			return "", err
		}
		s := fmt.Sprintf("%sif (%s) {\n%s%s}\n", indent(depth), cond, body, indent(depth))
		if cf.ElseBody != nil {
			elseBody, err := c.lowerBlock(cf.ElseBody, depth)
			if err != nil {
				return "", err
			}
			s += fmt.Sprintf("%selse {\n%s%s}\n", indent(depth), elseBody, indent(depth))
		}
		return s, nil
	case ast.CFWhile:
		cond, err := c.lowerExpr(cf.Condition)
		if err != nil {
			return "", err
		}
		body, err := c.lowerBlock(cf.Body, depth)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%swhile (%s) {\n%s%s}\n", indent(depth), cond, body, indent(depth)), nil
	case ast.CFDo:
		cond, err := c.lowerExpr(cf.Condition)
		if err != nil {
			return "", err
		}
		body, err := c.lowerBlock(cf.Body, depth)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sdo {\n%s%s} while (%s);\n", indent(depth), body, indent(depth), cond), nil
	case ast.CFFor:
		var initText, condText, incText string
		if cf.Init != nil {
			t, err := c.lowerStmt(cf.Init, 0)
			if err != nil {
				return "", err
			}
			initText = strings.TrimSuffix(strings.TrimSpace(t), ";")
		}
		if cf.Condition != nil {
			t, err := c.lowerExpr(cf.Condition)
			if err != nil {
				return "", err
			}
			condText = t
		}
		if cf.Increment != nil {
			t, err := c.lowerExpr(cf.Increment)
			if err != nil {
				return "", err
			}
			incText = t
		}
		body, err := c.lowerBlock(cf.Body, depth)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sfor (%s; %s; %s) {\n%s%s}\n", indent(depth), initText, condText, incText, body, indent(depth)), nil
	case ast.CFReturn:
		if cf.ReturnVal == nil {
			return indent(depth) + "return;\n", nil
		}
		e, err := c.lowerExpr(cf.ReturnVal)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sreturn %s;\n", indent(depth), e), nil
	case ast.CFDiscard:
		return indent(depth) + "discard;\n", nil
	case ast.CFBreak:
		return indent(depth) + "break;\n", nil
	case ast.CFContinue:
		return indent(depth) + "continue;\n", nil
	case ast.CFSwitch:
		cond, err := c.lowerExpr(cf.Condition)
		if err != nil {
			return "", err
		}
		var body strings.Builder
		if cf.Body != nil {
			for _, s := range cf.Body.Statements {
				t, err := c.lowerStmt(s, depth+1)
				if err != nil {
					return "", err
				}
				body.WriteString(t)
			}
		}
		return fmt.Sprintf("%sswitch (%s) {\n%s%s}\n", indent(depth), cond, body.String(), indent(depth)), nil
	case ast.CFCase:
		val, err := c.lowerExpr(cf.CaseValue)
		if err != nil {
			return "", err
		}
		body, err := c.lowerBlock(cf.Body, depth)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%scase %s:\n%s", indent(depth), val, body), nil
	case ast.CFDefault:
		body, err := c.lowerBlock(cf.Body, depth)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sdefault:\n%s", indent(depth), body), nil
	default:
		return "", invariant("lowerControlFlow", "unhandled control-flow kind %d", cf.Kind)
	}
}

func (c *fnContext) lowerBlock(b *ast.Block, depth int) (string, error) {
	if b == nil {
		return "", nil
	}
	var sb strings.Builder
	for _, s := range b.Statements {
		t, err := c.lowerStmt(s, depth+1)
		if err != nil {
			return "", err
		}
		sb.WriteString(t)
	}
	return sb.String(), nil
}

func (c *fnContext) lowerExpr(e ast.Expr) (string, error) {
	switch x := e.(type) {
	case *ast.Variable:
		return c.lowerVariableRef(x, false)
	case *ast.Constant:
		return renderConstant(x), nil
	case *ast.Array:
		base, err := c.lowerExpr(x.Base)
		if err != nil {
			return "", err
		}
		idx, err := c.lowerExpr(x.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", base, idx), nil
	case *ast.ArrayConstruct:
		args, err := c.lowerExprList(x.Args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%d](%s)", x.ElementType.GLSLName(), x.Size, strings.Join(args, ", ")), nil
	case *ast.Member:
		return c.lowerMember(x)
	case *ast.Operator:
		return c.lowerOperator(x)
	default:
		return "", invariant("lowerExpr", "unhandled expression type %T", e)
	}
}

func (c *fnContext) lowerExprList(exprs []ast.Expr) ([]string, error) {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := c.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func renderConstant(c *ast.Constant) string {
	if len(c.Values) == 1 && !c.Type.IsMatrix() {
		switch c.Type {
		case ast.Int, ast.Uint, ast.Bool:
			return strconv.FormatFloat(c.Values[0], 'f', 0, 64)
		default:
			return formatFloatLiteral(c.Values[0])
		}
	}
	parts := make([]string, len(c.Values))
	for i, v := range c.Values {
		parts[i] = formatFloatLiteral(v)
	}
	return fmt.Sprintf("%s(%s)", c.Type.GLSLName(), strings.Join(parts, ", "))
}

func formatFloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (c *fnContext) lowerOperator(o *ast.Operator) (string, error) {
	switch o.Kind {
	case ast.OpUnary:
		operand, err := c.lowerExpr(o.Operands[0])
		if err != nil {
			return "", err
		}
		return o.Op + operand, nil
	case ast.OpBinary:
		lhs, err := c.lowerExpr(o.Operands[0])
		if err != nil {
			return "", err
		}
		rhs, err := c.lowerExpr(o.Operands[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", lhs, o.Op, rhs), nil
	case ast.OpTernary:
		cond, err := c.lowerExpr(o.Operands[0])
		if err != nil {
			return "", err
		}
		a, err := c.lowerExpr(o.Operands[1])
		if err != nil {
			return "", err
		}
		b, err := c.lowerExpr(o.Operands[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s ? %s : %s)", cond, a, b), nil
	case ast.OpAssign:
		lhs, err := c.lowerExpr(o.Operands[0])
		if err != nil {
			return "", err
		}
		rhs, err := c.lowerExpr(o.Operands[1])
		if err != nil {
			return "", err
		}
		if v, ok := o.Operands[0].(*ast.Variable); ok {
			c.markWrite(v.Name)
		}
		return fmt.Sprintf("%s %s %s", lhs, o.Op, rhs), nil
	case ast.OpCall:
		return c.lowerCall(o)
	case ast.OpConstruct:
		args, err := c.lowerExprList(o.Operands)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", o.Op, strings.Join(args, ", ")), nil
	case ast.OpIndex:
		base, err := c.lowerExpr(o.Operands[0])
		if err != nil {
			return "", err
		}
		idx, err := c.lowerExpr(o.Operands[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", base, idx), nil
	default:
		return "", invariant("lowerOperator", "unhandled operator kind %d", o.Kind)
	}
}

func (c *fnContext) markWrite(name string) {
	if flag, ok := c.lowerer.opts.Actions.WriteFlags[name]; ok {
		*flag = true
	}
}

func (c *fnContext) markUsage(name string) {
	if flag, ok := c.lowerer.opts.Actions.UsageFlags[name]; ok {
		*flag = true
	}
	if def, ok := c.lowerer.opts.Defaults.UsageDefines[name]; ok {
		c.lowerer.gen.AddDefine(def)
	}
}

// lowerVariableRef implements spec §4.1 "Variable references": a bare
// identifier is resolved, in order, against the uniform table, the TIME
// built-in, the varying table, the static rename table, and finally
// passed through unchanged as a local/parameter/builtin name.
func (c *fnContext) lowerVariableRef(v *ast.Variable, asLValue bool) (string, error) {
	l := c.lowerer
	name := v.Name

	if u, ok := l.shader.Uniforms[name]; ok {
		return l.emitUniformRef(c, u)
	}

	if name == "TIME" {
		if stage, ok := c.stage(); ok {
			switch stage {
			case ast.StageFragment:
				l.gen.UsesFragmentTime = true
			case ast.StageVertex:
				l.gen.UsesVertexTime = true
			}
		}
		c.markUsage(name)
		if rn, ok := l.opts.Defaults.Renames[name]; ok {
			return rn, nil
		}
		return name, nil
	}

	if vr, ok := l.shader.Varyings[name]; ok {
		return l.emitVaryingRef(c, vr)
	}

	if rn, ok := l.opts.Defaults.Renames[name]; ok {
		c.markUsage(name)
		return rn, nil
	}

	if asLValue {
		c.markWrite(name)
	}
	c.markUsage(name)
	return name, nil
}

// emitUniformRef implements the uniform branch of "Variable references":
// sampler uniforms substitute their virtual-texture name when hinted as
// screen/depth/normal-roughness; scalar/vector/matrix uniforms branch on
// scope. A local (regular UBO) uniform reads its prefixed declared name
// directly; a global or instance uniform instead reads an index into the
// packed global buffer, reconstructed through globalUniformExpr.
func (l *lowerer) emitUniformRef(c *fnContext, u *ast.Uniform) (string, error) {
	l.opts.Actions.CollectUniform(u)
	c.markUsage(u.Name)

	if u.Type.IsSampler() {
		switch u.Hint {
		case ast.HintScreenTexture:
			l.gen.UsesScreenTexture = true
			return "color_buffer", nil
		case ast.HintDepthTexture:
			l.gen.UsesDepthTexture = true
			return "depth_buffer", nil
		case ast.HintNormalRoughnessTexture:
			l.gen.UsesNormalRoughnessTexture = true
			return "normal_roughness_buffer", nil
		default:
			if u.Scope == ast.ScopeGlobal {
				l.gen.UsesGlobalTextures = true
			}
			return u.Name, nil
		}
	}

	switch u.Scope {
	case ast.ScopeGlobal:
		index := l.opts.Defaults.BaseUniformPrefix + u.Name
		return globalUniformExpr(l.opts.Defaults.GlobalBufferArrayName, index, u.Type), nil
	case ast.ScopeInstance:
		index := fmt.Sprintf("(%s+%d)", l.opts.Defaults.InstanceUniformIndexName, u.InstanceIndex)
		return globalUniformExpr(l.opts.Defaults.GlobalBufferArrayName, index, u.Type), nil
	default:
		return l.opts.Defaults.BaseUniformPrefix + u.Name, nil
	}
}

// globalUniformExpr reconstructs a scalar/vector/matrix value out of the
// packed vec4 global uniform buffer at the given index expression,
// reinterpreting bits for bool/int/uint types and chaining consecutive
// vec4 rows for matrices (spec §4.1 "Variable references").
func globalUniformExpr(buffer, index string, t ast.DataType) string {
	row := func(offset string) string {
		if offset == "" {
			return fmt.Sprintf("%s[%s]", buffer, index)
		}
		return fmt.Sprintf("%s[%s+%s]", buffer, index, offset)
	}
	switch t {
	case ast.Bool:
		return fmt.Sprintf("bool(floatBitsToUint(%s.x))", row(""))
	case ast.Bvec2:
		return fmt.Sprintf("bvec2(floatBitsToUint(%s.xy))", row(""))
	case ast.Bvec3:
		return fmt.Sprintf("bvec3(floatBitsToUint(%s.xyz))", row(""))
	case ast.Bvec4:
		return fmt.Sprintf("bvec4(floatBitsToUint(%s.xyzw))", row(""))
	case ast.Int:
		return fmt.Sprintf("floatBitsToInt(%s.x)", row(""))
	case ast.Ivec2:
		return fmt.Sprintf("floatBitsToInt(%s.xy)", row(""))
	case ast.Ivec3:
		return fmt.Sprintf("floatBitsToInt(%s.xyz)", row(""))
	case ast.Ivec4:
		return fmt.Sprintf("floatBitsToInt(%s.xyzw)", row(""))
	case ast.Uint:
		return fmt.Sprintf("floatBitsToUint(%s.x)", row(""))
	case ast.Uvec2:
		return fmt.Sprintf("floatBitsToUint(%s.xy)", row(""))
	case ast.Uvec3:
		return fmt.Sprintf("floatBitsToUint(%s.xyz)", row(""))
	case ast.Uvec4:
		return fmt.Sprintf("floatBitsToUint(%s.xyzw)", row(""))
	case ast.Vec2:
		return fmt.Sprintf("(%s.xy)", row(""))
	case ast.Vec3:
		return fmt.Sprintf("(%s.xyz)", row(""))
	case ast.Vec4:
		return fmt.Sprintf("(%s.xyzw)", row(""))
	case ast.Mat2:
		return fmt.Sprintf("mat2(%s.xy,%s.xy)", row(""), row("1u"))
	case ast.Mat3:
		return fmt.Sprintf("mat3(%s.xyz,%s.xyz,%s.xyz)", row(""), row("1u"), row("2u"))
	case ast.Mat4:
		return fmt.Sprintf("mat4(%s.xyzw,%s.xyzw,%s.xyzw,%s.xyzw)", row(""), row("1u"), row("2u"), row("3u"))
	default:
		return fmt.Sprintf("(%s.x)", row(""))
	}
}

// emitVaryingRef implements the varying branch: fragment-to-light
// varyings read from the fragment stage gain the `frag_to_light.` prefix
// (spec §4.1 "Varying layout"); every other varying passes through as its
// declared name.
func (l *lowerer) emitVaryingRef(c *fnContext, v *ast.Varying) (string, error) {
	c.markUsage(v.Name)
	if v.FragToLight {
		if stage, ok := c.stage(); ok && stage == ast.StageFragment {
			return "frag_to_light." + v.Name, nil
		}
	}
	return v.Name, nil
}

// lowerCall lowers a function/constructor call, intercepting texture
// sample calls whose first argument resolves to a virtual screen/depth/
// normal-roughness sampler (spec §4.1 "Screen, depth, normal-roughness
// handling"): these substitute the real buffer name, optionally wrap the
// UV argument for multiview, and wrap the result for luminance
// compensation or normal-roughness compatibility translation.
func (c *fnContext) lowerCall(o *ast.Operator) (string, error) {
	if len(o.Operands) >= 2 {
		if v, ok := o.Operands[0].(*ast.Variable); ok {
			if u, ok2 := c.lowerer.shader.Uniforms[v.Name]; ok2 && u.Type.IsSampler() {
				switch u.Hint {
				case ast.HintScreenTexture:
					return c.lowerScreenTextureCall(o)
				case ast.HintDepthTexture:
					return c.lowerVirtualTextureCall(o, "depth_buffer")
				case ast.HintNormalRoughnessTexture:
					return c.lowerNormalRoughnessTextureCall(o)
				default:
					return c.lowerSamplerCall(o, u)
				}
			}
		}
	}
	args, err := c.lowerExprList(o.Operands)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", o.Op, strings.Join(args, ", ")), nil
}

func (c *fnContext) lowerUVArg(e ast.Expr) (string, error) {
	uv, err := c.lowerExpr(e)
	if err != nil {
		return "", err
	}
	if c.lowerer.opts.Defaults.MultiviewSamplers {
		return fmt.Sprintf("multiview_uv(%s)", uv), nil
	}
	return uv, nil
}

func (c *fnContext) lowerScreenTextureCall(o *ast.Operator) (string, error) {
	l := c.lowerer
	l.gen.UsesScreenTexture = true
	uv, err := c.lowerUVArg(o.Operands[1])
	if err != nil {
		return "", err
	}
	var call string
	if len(o.Operands) > 2 {
		lod, err := c.lowerExpr(o.Operands[2])
		if err != nil {
			return "", err
		}
		call = fmt.Sprintf("%s(color_buffer, %s, %s)", o.Op, uv, lod)
		l.gen.UsesScreenTextureMipmaps = true
	} else {
		call = fmt.Sprintf("%s(color_buffer, %s)", o.Op, uv)
	}
	if l.opts.Defaults.ApplyLuminanceMultiplier {
		return fmt.Sprintf("(%s * luminance_multiplier)", call), nil
	}
	return call, nil
}

func (c *fnContext) lowerVirtualTextureCall(o *ast.Operator, bufferName string) (string, error) {
	c.lowerer.gen.UsesDepthTexture = c.lowerer.gen.UsesDepthTexture || bufferName == "depth_buffer"
	uv, err := c.lowerUVArg(o.Operands[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s, %s)", o.Op, bufferName, uv), nil
}

// lowerSamplerCall handles a texture-sample call against a regular
// (non-virtual) sampler uniform: the bound sampler object is resolved by
// (filter, repeat) and combined with the declared texture name (spec
// §4.1 "Samplers"), unless LowEndMode requests the bare texture name.
func (c *fnContext) lowerSamplerCall(o *ast.Operator, u *ast.Uniform) (string, error) {
	l := c.lowerer
	l.opts.Actions.CollectUniform(u)
	c.markUsage(u.Name)

	uv, err := c.lowerUVArg(o.Operands[1])
	if err != nil {
		return "", err
	}
	texExpr := u.Name
	if !l.opts.LowEndMode {
		sName, err := samplerName(l.opts.Defaults, u.Name, u.Filter, u.Repeat)
		if err != nil {
			return "", err
		}
		texExpr = fmt.Sprintf("%s(%s, %s)", u.Type.GLSLName(), u.Name, sName)
	}
	rest, err := c.lowerExprList(o.Operands[2:])
	if err != nil {
		return "", err
	}
	parts := append([]string{texExpr, uv}, rest...)
	return fmt.Sprintf("%s(%s)", o.Op, strings.Join(parts, ", ")), nil
}

func (c *fnContext) lowerNormalRoughnessTextureCall(o *ast.Operator) (string, error) {
	c.lowerer.gen.UsesNormalRoughnessTexture = true
	uv, err := c.lowerUVArg(o.Operands[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("normal_roughness_compatibility(%s(normal_roughness_buffer, %s))", o.Op, uv), nil
}

func (c *fnContext) lowerMember(m *ast.Member) (string, error) {
	base, err := c.lowerExpr(m.Base)
	if err != nil {
		return "", err
	}
	switch m.Tail {
	case ast.MemberPlain:
		return fmt.Sprintf("%s.%s", base, m.Field), nil
	case ast.MemberIndexed:
		idx, err := c.lowerExpr(m.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.%s[%s]", base, m.Field, idx), nil
	case ast.MemberAssigned:
		v, err := c.lowerExpr(m.Assign)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.%s = %s", base, m.Field, v), nil
	case ast.MemberCall:
		args, err := c.lowerExprList(m.CallArgs)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.%s(%s)", base, m.Field, strings.Join(args, ", ")), nil
	default:
		return "", invariant("lowerMember", "unhandled member tail kind %d", m.Tail)
	}
}
