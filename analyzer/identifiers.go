package analyzer

import (
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/diag"
)

// checkIdentifierResolution requires every non-"@" Identifier to resolve
// to exactly one partition (local, fact, output, or data-table) and every
// "@name" to resolve to a global.
func checkIdentifierResolution(module *ast.RuleModule, names *moduleNames, d *diag.List) {
	for _, rule := range module.Rules {
		switch r := rule.(type) {
		case *ast.SimpleRule:
			s := newScope(nil)
			resolveStatements(r.When, s, names, d)
			resolveStatements(r.Then, s, names, d)
			if r.Else != nil {
				resolveStatements(r.Else, s, names, d)
			}
		case *ast.TemplateRule:
			s := newScope(nil)
			if r.Table != nil {
				for _, col := range r.Table.Columns {
					s.declare(col)
				}
			}
			resolveStatements(r.When, s, names, d)
			resolveStatements(r.Then, s, names, d)
		case *ast.DecisionTableRule:
			for _, b := range r.Where {
				child := newScope(nil)
				for _, p := range b.Params {
					child.declare(p)
				}
				resolveStatements(b.Body, child, names, d)
			}
			for _, row := range r.Rows {
				s := newScope(nil)
				for alias := range r.Where {
					s.declare(alias)
				}
				resolveStatements(row.When, s, names, d)
				resolveStatements(row.Then, s, names, d)
			}
		}
	}
}

func resolveStatements(stmts []ast.Statement, s *scope, names *moduleNames, d *diag.List) {
	for _, stmt := range stmts {
		switch st := stmt.(type) {
		case *ast.LetStatement:
			resolveExpr(st.Value, s, names, d)
			s.declare(st.Name)
		case *ast.ExprStatement:
			resolveExpr(st.Expr, s, names, d)
		}
	}
}

func resolveExpr(expr ast.Expression, s *scope, names *moduleNames, d *diag.List) {
	switch v := expr.(type) {
	case *ast.Identifier:
		if v.IsGlobal() {
			if !names.globals[v.BareName()] {
				d.Errorf(diag.KindUnresolvedIdentifier, "", "unresolved global @%s", v.BareName())
			}
			return
		}
		if v.IsAlias() {
			// Alias names are declared into the row scope from the owning
			// table's where-map; anywhere else a "#name" cannot resolve.
			if !s.has(v.AliasName()) {
				d.Errorf(diag.KindMissingAliasOrColumn, "", "alias #%s is not declared in this table's where-map", v.AliasName())
			}
			return
		}
		if !s.has(v.Name) && !names.resolves(v.Name) {
			d.Errorf(diag.KindUnresolvedIdentifier, "", "unresolved identifier %q", v.Name)
		}
	case *ast.BinaryExpr:
		resolveExpr(v.Left, s, names, d)
		resolveExpr(v.Right, s, names, d)
	case *ast.Assignment:
		resolveExpr(v.Target, s, names, d)
		resolveExpr(v.Value, s, names, d)
	case *ast.Navigation:
		resolveExpr(v.Receiver, s, names, d)
	case *ast.UnaryMessage:
		resolveExpr(v.Receiver, s, names, d)
	case *ast.KeywordMessage:
		resolveExpr(v.Receiver, s, names, d)
		for _, p := range v.Parts {
			resolveExpr(p.Argument, s, names, d)
		}
	case *ast.DefaultMessage:
		resolveExpr(v.Receiver, s, names, d)
	case *ast.ListLiteral:
		for _, el := range v.Elements {
			resolveExpr(el, s, names, d)
		}
	case *ast.SetLiteral:
		for _, el := range v.Elements {
			resolveExpr(el.Start, s, names, d)
			if el.IsRange() {
				resolveExpr(el.End, s, names, d)
			}
		}
	case *ast.MapLiteral:
		for _, en := range v.Entries {
			resolveExpr(en.Key, s, names, d)
			resolveExpr(en.Value, s, names, d)
		}
	case *ast.Block:
		child := s.child()
		for _, p := range v.Params {
			child.declare(p)
		}
		resolveStatements(v.Body, child, names, d)
	}
}

type section int

const (
	sectionWhen section = iota
	sectionThenElse
)

// checkAssignmentLegality: in a then/else section, an assignment target
// must be an output or a navigation chain rooted in a fact/output; in a
// when-section, the target must be a let-local already in scope, and
// assigning to an output, fact, or global there is rejected.
func checkAssignmentLegality(module *ast.RuleModule, names *moduleNames, d *diag.List) {
	for _, rule := range module.Rules {
		switch r := rule.(type) {
		case *ast.SimpleRule:
			s := newScope(nil)
			walkAssignments(r.When, s, sectionWhen, names, d)
			walkAssignments(r.Then, s, sectionThenElse, names, d)
			if r.Else != nil {
				walkAssignments(r.Else, s, sectionThenElse, names, d)
			}
		case *ast.TemplateRule:
			s := newScope(nil)
			walkAssignments(r.When, s, sectionWhen, names, d)
			walkAssignments(r.Then, s, sectionThenElse, names, d)
		case *ast.DecisionTableRule:
			for _, row := range r.Rows {
				s := newScope(nil)
				walkAssignments(row.When, s, sectionWhen, names, d)
				walkAssignments(row.Then, s, sectionThenElse, names, d)
			}
		}
	}
}

func walkAssignments(stmts []ast.Statement, s *scope, sec section, names *moduleNames, d *diag.List) {
	for _, stmt := range stmts {
		switch st := stmt.(type) {
		case *ast.LetStatement:
			walkAssignmentsInExpr(st.Value, s, sec, names, d)
			s.declare(st.Name)
		case *ast.ExprStatement:
			walkAssignmentsInExpr(st.Expr, s, sec, names, d)
		}
	}
}

func walkAssignmentsInExpr(expr ast.Expression, s *scope, sec section, names *moduleNames, d *diag.List) {
	switch v := expr.(type) {
	case *ast.Assignment:
		checkAssignmentTarget(v.Target, s, sec, names, d)
		walkAssignmentsInExpr(v.Value, s, sec, names, d)
	case *ast.BinaryExpr:
		walkAssignmentsInExpr(v.Left, s, sec, names, d)
		walkAssignmentsInExpr(v.Right, s, sec, names, d)
	case *ast.Navigation:
		walkAssignmentsInExpr(v.Receiver, s, sec, names, d)
	case *ast.UnaryMessage:
		walkAssignmentsInExpr(v.Receiver, s, sec, names, d)
	case *ast.KeywordMessage:
		walkAssignmentsInExpr(v.Receiver, s, sec, names, d)
		for _, p := range v.Parts {
			walkAssignmentsInExpr(p.Argument, s, sec, names, d)
		}
	case *ast.DefaultMessage:
		walkAssignmentsInExpr(v.Receiver, s, sec, names, d)
	case *ast.ListLiteral:
		for _, el := range v.Elements {
			walkAssignmentsInExpr(el, s, sec, names, d)
		}
	case *ast.SetLiteral:
		for _, el := range v.Elements {
			walkAssignmentsInExpr(el.Start, s, sec, names, d)
			if el.IsRange() {
				walkAssignmentsInExpr(el.End, s, sec, names, d)
			}
		}
	case *ast.MapLiteral:
		for _, en := range v.Entries {
			walkAssignmentsInExpr(en.Key, s, sec, names, d)
			walkAssignmentsInExpr(en.Value, s, sec, names, d)
		}
	case *ast.Block:
		child := s.child()
		for _, p := range v.Params {
			child.declare(p)
		}
		walkAssignments(v.Body, child, sec, names, d)
	}
}

func checkAssignmentTarget(target ast.Expression, s *scope, sec section, names *moduleNames, d *diag.List) {
	switch sec {
	case sectionWhen:
		id, ok := target.(*ast.Identifier)
		if !ok {
			d.Errorf(diag.KindIllegalAssignment, "", "when-clause assignment target must be a local name")
			return
		}
		if id.IsGlobal() || names.globals[id.BareName()] || names.isFactOrOutput(id.Name) {
			d.Errorf(diag.KindIllegalAssignment, "", "cannot assign to fact, output, or global %q in a when-clause", id.Name)
			return
		}
		if !s.has(id.Name) {
			d.Errorf(diag.KindIllegalAssignment, "", "assignment target %q is not a let-local in scope", id.Name)
		}
	case sectionThenElse:
		switch t := target.(type) {
		case *ast.Identifier:
			if !names.outputs[t.Name] {
				d.Errorf(diag.KindIllegalAssignment, "", "then/else assignment target %q must be an output", t.Name)
			}
		case *ast.Navigation:
			root, ok := rootIdentifier(t.Receiver)
			if !ok || !names.isFactOrOutput(root) {
				d.Errorf(diag.KindIllegalAssignment, "", "navigation assignment must be rooted in a fact or output")
				return
			}
			if navigationDepth(t) > 1 {
				d.Warnf(diag.KindNullSafeAssignment, "", "assignment navigates through intermediate properties of %q that may be null at runtime", root)
			}
		default:
			d.Errorf(diag.KindIllegalAssignment, "", "illegal assignment target shape")
		}
	}
}

// navigationDepth counts every property hop of nav, including hops made
// by a nested Navigation receiver. A depth above one means the setter is
// reached through intermediate getters whose results are not null-checked.
func navigationDepth(nav *ast.Navigation) int {
	depth := len(nav.Names)
	if inner, ok := nav.Receiver.(*ast.Navigation); ok {
		depth += navigationDepth(inner)
	}
	return depth
}

func rootIdentifier(expr ast.Expression) (string, bool) {
	switch v := expr.(type) {
	case *ast.Identifier:
		return v.Name, true
	case *ast.Navigation:
		return rootIdentifier(v.Receiver)
	}
	return "", false
}
