// Package expander converts TemplateRule and DecisionTableRule, the
// table-oriented rule shapes, into plain SimpleRules the code generator
// can emit one method per.
//
// Data-table structure inference (one- vs two-header-row tables) is a
// front-end parsing concern: by the time a DataTable reaches this package
// its Columns/Rows are already flat and index-aligned.
package expander

import (
	"fmt"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/diag"
)

// Expand returns a new RuleModule where every TemplateRule and
// DecisionTableRule has been replaced by the SimpleRules it expands to.
// SimpleRules pass through unchanged.
func Expand(module *ast.RuleModule) (*ast.RuleModule, *diag.List) {
	d := diag.NewList()
	var rules []ast.Rule
	for _, r := range module.Rules {
		switch v := r.(type) {
		case *ast.SimpleRule:
			rules = append(rules, v)
		case *ast.TemplateRule:
			rules = append(rules, expandTemplateRule(v, d)...)
		case *ast.DecisionTableRule:
			rules = append(rules, expandDecisionTableRule(v, d)...)
		}
	}
	return &ast.RuleModule{
		Imports:    module.Imports,
		Facts:      module.Facts,
		Globals:    module.Globals,
		Outputs:    module.Outputs,
		DataTables: module.DataTables,
		Rules:      rules,
	}, d
}

// expandTemplateRule emits one simple-rule per backing-table row, its
// when/then lists prefixed with let-statements binding each column header
// to that row's cell.
func expandTemplateRule(tr *ast.TemplateRule, d *diag.List) []ast.Rule {
	if tr.Table == nil {
		d.Errorf(diag.KindMissingAliasOrColumn, tr.ID, "template rule %q has no backing data table", tr.ID)
		return nil
	}

	var out []ast.Rule
	for i, row := range tr.Table.Rows {
		if len(row.Cells) != len(tr.Table.Columns) {
			d.Errorf(diag.KindMissingAliasOrColumn, tr.ID, "row %d skipped: %d cells, want %d columns", i, len(row.Cells), len(tr.Table.Columns))
			continue
		}

		lets := make([]ast.Statement, len(tr.Table.Columns))
		for ci, col := range tr.Table.Columns {
			lets[ci] = &ast.LetStatement{Name: col, Value: row.Cells[ci]}
		}

		out = append(out, &ast.SimpleRule{
			ID:          fmt.Sprintf("%s#%d", tr.ID, i),
			Description: tr.Description,
			When:        prepend(lets, tr.When),
			Then:        prepend(lets, tr.Then),
		})
	}
	return out
}

func prepend(lets, stmts []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(lets)+len(stmts))
	out = append(out, lets...)
	out = append(out, stmts...)
	return out
}

// expandDecisionTableRule emits one simple-rule per row, with every alias
// reference in the row's when/then cells inlined from the table's Where
// map. A row whose cells reference a missing or wrong-arity alias is
// reported and skipped entirely.
func expandDecisionTableRule(dt *ast.DecisionTableRule, d *diag.List) []ast.Rule {
	var out []ast.Rule
	for _, row := range dt.Rows {
		before := d.ErrorCount()
		when := inlineAliases(row.When, dt.Where, d, dt.ID)
		then := inlineAliases(row.Then, dt.Where, d, dt.ID)
		if d.ErrorCount() > before {
			continue
		}
		out = append(out, &ast.SimpleRule{
			ID:          dt.ID + "#" + row.ID,
			Description: dt.Description,
			When:        when,
			Then:        then,
		})
	}
	return out
}

// inlineAliases rewrites a row's statement list, replacing any top-level
// alias-invocation statement with the (possibly parameter-substituted)
// statements of the aliased block. Non-invocation statements pass through.
func inlineAliases(stmts []ast.Statement, where map[string]*ast.Block, d *diag.List, ruleID string) []ast.Statement {
	var out []ast.Statement
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.LetStatement:
			out = append(out, st)
		case *ast.ExprStatement:
			if inlined, ok := tryInlineAlias(st.Expr, where, d, ruleID); ok {
				out = append(out, inlined...)
			} else {
				out = append(out, st)
			}
		}
	}
	return out
}

// tryInlineAlias recognizes three alias-invocation shapes: a bare "#name"
// reference and a unary send on a "#name" receiver (both parameterless;
// the unary selector is not used), and a single-keyword send on a "#name"
// receiver (one-parameter, the keyword's argument substituted for the
// alias block's sole parameter).
func tryInlineAlias(expr ast.Expression, where map[string]*ast.Block, d *diag.List, ruleID string) ([]ast.Statement, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if !e.IsAlias() {
			return nil, false
		}
		block, ok := where[e.AliasName()]
		if !ok {
			d.Errorf(diag.KindMissingAliasOrColumn, ruleID, "alias %q is not declared in this table's where-map", e.AliasName())
			return nil, false
		}
		if len(block.Params) != 0 {
			d.Errorf(diag.KindMissingAliasOrColumn, ruleID, "alias %q requires an argument", e.AliasName())
			return nil, false
		}
		return block.Body, true

	case *ast.UnaryMessage:
		id, ok := e.Receiver.(*ast.Identifier)
		if !ok || !id.IsAlias() {
			return nil, false
		}
		block, ok := where[id.AliasName()]
		if !ok {
			d.Errorf(diag.KindMissingAliasOrColumn, ruleID, "alias %q is not declared in this table's where-map", id.AliasName())
			return nil, false
		}
		if len(block.Params) != 0 {
			d.Errorf(diag.KindMissingAliasOrColumn, ruleID, "alias %q requires an argument", id.AliasName())
			return nil, false
		}
		return block.Body, true

	case *ast.KeywordMessage:
		id, ok := e.Receiver.(*ast.Identifier)
		if !ok || !id.IsAlias() || len(e.Parts) != 1 {
			return nil, false
		}
		block, ok := where[id.AliasName()]
		if !ok {
			d.Errorf(diag.KindMissingAliasOrColumn, ruleID, "alias %q is not declared in this table's where-map", id.AliasName())
			return nil, false
		}
		if len(block.Params) != 1 {
			d.Errorf(diag.KindMissingAliasOrColumn, ruleID, "alias %q does not take exactly one parameter", id.AliasName())
			return nil, false
		}
		return substituteParam(block.Body, block.Params[0], e.Parts[0].Argument), true
	}
	return nil, false
}
