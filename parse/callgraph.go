package parse

import "github.com/nikitalita/shaderconv/ast"

// resolveCallGraph fills in each function's Calls set by walking its body
// for OpCall operators whose name matches another declared function (spec
// §4.1 "Stage function emission" depends on this for its transitive
// dependency walk).
func resolveCallGraph(fns []*ast.Function) {
	names := map[string]bool{}
	for _, fn := range fns {
		names[fn.Name] = true
	}
	for _, fn := range fns {
		if fn.Calls == nil {
			fn.Calls = map[string]bool{}
		}
		walkBlock(fn.Body, func(e ast.Expr) {
			if op, ok := e.(*ast.Operator); ok && op.Kind == ast.OpCall && names[op.Op] && op.Op != fn.Name {
				fn.Calls[op.Op] = true
			}
		})
	}
}

func walkBlock(b *ast.Block, visit func(ast.Expr)) {
	if b == nil {
		return
	}
	for _, s := range b.Statements {
		walkStmt(s, visit)
	}
}

func walkStmt(s ast.Stmt, visit func(ast.Expr)) {
	switch st := s.(type) {
	case *ast.VariableDeclaration:
		for _, init := range st.Inits {
			if init != nil {
				walkExpr(init, visit)
			}
		}
	case *ast.ExprStmt:
		walkExpr(st.X, visit)
	case *ast.ControlFlow:
		if st.Init != nil {
			walkStmt(st.Init, visit)
		}
		if st.Condition != nil {
			walkExpr(st.Condition, visit)
		}
		if st.Increment != nil {
			walkExpr(st.Increment, visit)
		}
		if st.ReturnVal != nil {
			walkExpr(st.ReturnVal, visit)
		}
		if st.CaseValue != nil {
			walkExpr(st.CaseValue, visit)
		}
		walkBlock(st.Body, visit)
		walkBlock(st.ElseBody, visit)
	}
}

func walkExpr(e ast.Expr, visit func(ast.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch x := e.(type) {
	case *ast.Array:
		walkExpr(x.Base, visit)
		walkExpr(x.Index, visit)
	case *ast.ArrayConstruct:
		for _, a := range x.Args {
			walkExpr(a, visit)
		}
	case *ast.Operator:
		for _, o := range x.Operands {
			walkExpr(o, visit)
		}
	case *ast.Member:
		walkExpr(x.Base, visit)
		if x.Index != nil {
			walkExpr(x.Index, visit)
		}
		if x.Assign != nil {
			walkExpr(x.Assign, visit)
		}
		for _, a := range x.CallArgs {
			walkExpr(a, visit)
		}
	}
}
