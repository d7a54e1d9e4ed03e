package analyzer

import (
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/diag"
)

// checkWarnings emits the advisory findings that never fail a compile: an
// output no rule ever assigns, and an else-clause on an unconditional rule
// (an empty when-clause means the then-branch always runs).
func checkWarnings(module *ast.RuleModule, d *diag.List) {
	assigned := map[string]bool{}
	for _, rule := range module.Rules {
		switch r := rule.(type) {
		case *ast.SimpleRule:
			collectAssignedOutputs(r.Then, assigned)
			collectAssignedOutputs(r.Else, assigned)
			if len(r.Else) > 0 && countExprStatements(r.When) == 0 {
				d.Warnf(diag.KindUnreachableElse, r.ID, "rule %q has no when-clause condition; its else-clause can never run", r.ID)
			}
		case *ast.TemplateRule:
			collectAssignedOutputs(r.Then, assigned)
		case *ast.DecisionTableRule:
			for _, row := range r.Rows {
				collectAssignedOutputs(row.Then, assigned)
			}
			for _, b := range r.Where {
				collectAssignedOutputs(b.Body, assigned)
			}
		}
	}

	for _, o := range module.Outputs {
		if !assigned[o.Name] {
			d.Warnf(diag.KindUnusedOutput, "", "output %q is never assigned by any rule", o.Name)
		}
	}
}

func countExprStatements(stmts []ast.Statement) int {
	n := 0
	for _, s := range stmts {
		if _, ok := s.(*ast.ExprStatement); ok {
			n++
		}
	}
	return n
}

// collectAssignedOutputs records every name assigned at the top level of
// stmts or inside nested blocks, whether directly or as a navigation root.
func collectAssignedOutputs(stmts []ast.Statement, assigned map[string]bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.ExprStatement:
			collectAssignedInExpr(st.Expr, assigned)
		case *ast.LetStatement:
			collectAssignedInExpr(st.Value, assigned)
		}
	}
}

func collectAssignedInExpr(expr ast.Expression, assigned map[string]bool) {
	switch v := expr.(type) {
	case *ast.Assignment:
		switch t := v.Target.(type) {
		case *ast.Identifier:
			assigned[t.Name] = true
		case *ast.Navigation:
			if root, ok := rootIdentifier(t.Receiver); ok {
				assigned[root] = true
			}
		}
		collectAssignedInExpr(v.Value, assigned)
	case *ast.BinaryExpr:
		collectAssignedInExpr(v.Left, assigned)
		collectAssignedInExpr(v.Right, assigned)
	case *ast.UnaryMessage:
		collectAssignedInExpr(v.Receiver, assigned)
	case *ast.KeywordMessage:
		collectAssignedInExpr(v.Receiver, assigned)
		for _, p := range v.Parts {
			collectAssignedInExpr(p.Argument, assigned)
		}
	case *ast.DefaultMessage:
		collectAssignedInExpr(v.Receiver, assigned)
	case *ast.Navigation:
		collectAssignedInExpr(v.Receiver, assigned)
	case *ast.Block:
		collectAssignedOutputs(v.Body, assigned)
	}
}
