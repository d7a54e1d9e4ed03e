package expander

import "github.com/rulelang/rulec/ast"

// substituteParam rebuilds stmts with every bare reference to param
// replaced by arg, which is how a one-parameter alias expands with the
// cell-expression substituted for its parameter. A nested block that
// redeclares param as one of its own parameters shadows it and is left
// untouched.
func substituteParam(stmts []ast.Statement, param string, arg ast.Expression) []ast.Statement {
	out := make([]ast.Statement, len(stmts))
	for i, s := range stmts {
		switch st := s.(type) {
		case *ast.ExprStatement:
			out[i] = &ast.ExprStatement{Expr: substituteExpr(st.Expr, param, arg)}
		case *ast.LetStatement:
			out[i] = &ast.LetStatement{Name: st.Name, Value: substituteExpr(st.Value, param, arg)}
		default:
			out[i] = s
		}
	}
	return out
}

func substituteExpr(e ast.Expression, param string, arg ast.Expression) ast.Expression {
	switch v := e.(type) {
	case *ast.Identifier:
		if !v.IsGlobal() && !v.IsAlias() && v.Name == param {
			return arg
		}
		return v
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{Left: substituteExpr(v.Left, param, arg), Op: v.Op, Right: substituteExpr(v.Right, param, arg)}
	case *ast.Assignment:
		return &ast.Assignment{Target: substituteExpr(v.Target, param, arg), Value: substituteExpr(v.Value, param, arg)}
	case *ast.Navigation:
		return &ast.Navigation{Receiver: substituteExpr(v.Receiver, param, arg), Names: v.Names}
	case *ast.UnaryMessage:
		return &ast.UnaryMessage{Receiver: substituteExpr(v.Receiver, param, arg), Selector: v.Selector}
	case *ast.KeywordMessage:
		parts := make([]ast.KeywordPart, len(v.Parts))
		for i, p := range v.Parts {
			parts[i] = ast.KeywordPart{Keyword: p.Keyword, Argument: substituteExpr(p.Argument, param, arg)}
		}
		return &ast.KeywordMessage{Receiver: substituteExpr(v.Receiver, param, arg), Parts: parts}
	case *ast.DefaultMessage:
		return &ast.DefaultMessage{Receiver: substituteExpr(v.Receiver, param, arg)}
	case *ast.ListLiteral:
		elems := make([]ast.Expression, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = substituteExpr(el, param, arg)
		}
		return &ast.ListLiteral{Elements: elems}
	case *ast.SetLiteral:
		elems := make([]ast.RangeElement, len(v.Elements))
		for i, el := range v.Elements {
			re := ast.RangeElement{Start: substituteExpr(el.Start, param, arg)}
			if el.End != nil {
				re.End = substituteExpr(el.End, param, arg)
			}
			elems[i] = re
		}
		return &ast.SetLiteral{Elements: elems}
	case *ast.MapLiteral:
		entries := make([]ast.MapEntry, len(v.Entries))
		for i, en := range v.Entries {
			entries[i] = ast.MapEntry{Key: substituteExpr(en.Key, param, arg), Value: substituteExpr(en.Value, param, arg)}
		}
		return &ast.MapLiteral{Entries: entries}
	case *ast.Block:
		for _, p := range v.Params {
			if p == param {
				return v
			}
		}
		return &ast.Block{Params: v.Params, Body: substituteParam(v.Body, param, arg), ImplicitParam: v.ImplicitParam}
	default:
		return e
	}
}
