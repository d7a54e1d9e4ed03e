package analyzer

import (
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/diag"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/typeinfer"
	"github.com/rulelang/rulec/types"
)

// checkWhenClauseShape: after removing let-statements (and the permitted
// assignments to let-locals, which are side effects rather than part of
// the condition), a when-clause's tail must be a single boolean-typed
// expression. An empty when-clause is the unconditional-rule shape and is
// always legal. Typing the tail needs the resolver; when type inference
// is disabled the tail infers as Unknown and only the single-expression
// shape is enforced.
func checkWhenClauseShape(module *ast.RuleModule, r *resolver.Resolver, d *diag.List) {
	ctx := typeinfer.NewContext(module, r)
	v := typeinfer.NewVisitor(r)
	for _, rule := range module.Rules {
		switch rl := rule.(type) {
		case *ast.SimpleRule:
			checkWhenShape(rl.ID, rl.When, ctx.NewChild(), v, d)
		case *ast.TemplateRule:
			rowCtx := ctx.NewChild()
			if rl.Table != nil {
				for _, col := range rl.Table.Columns {
					rowCtx.DeclareLocal(col, &types.Unknown{Hint: "template column " + col})
				}
			}
			checkWhenShape(rl.ID, rl.When, rowCtx, v, d)
		case *ast.DecisionTableRule:
			for _, row := range rl.Rows {
				checkWhenShape(row.ID, row.When, ctx.NewChild(), v, d)
			}
		}
	}
}

func checkWhenShape(ruleID string, when []ast.Statement, ctx *typeinfer.Context, v *typeinfer.Visitor, d *diag.List) {
	var tail []ast.Expression
	for _, s := range when {
		switch st := s.(type) {
		case *ast.LetStatement:
			ctx.DeclareLocal(st.Name, v.Infer(ctx, st.Value))
		case *ast.ExprStatement:
			if _, ok := st.Expr.(*ast.Assignment); ok {
				continue
			}
			tail = append(tail, st.Expr)
		}
	}

	if len(tail) > 1 {
		d.Errorf(diag.KindMalformedWhenClause, ruleID, "when-clause must reduce to a single expression after let-statements; found %d", len(tail))
		return
	}
	if len(tail) == 0 {
		return
	}

	t := v.Infer(ctx, tail[0])
	if provablyNonBoolean(t) {
		d.Errorf(diag.KindMalformedWhenClause, ruleID, "when-clause condition must be boolean, found %s", t.SimpleName())
	}
}

// provablyNonBoolean reports whether t can never hold a boolean condition.
// Unknown (and plain reference types the resolver could not narrow) pass:
// a failed resolution must degrade to naive emission, never to a spurious
// rejection.
func provablyNonBoolean(t types.Type) bool {
	if types.IsBoolean(t) {
		return false
	}
	switch t.(type) {
	case *types.Primitive, *types.Array:
		return true
	case *types.Class:
		return types.IsNumeric(t) || types.IsString(t) || types.IsCollection(t) || types.IsMap(t)
	default:
		return false
	}
}
