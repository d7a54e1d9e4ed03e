package analyzer

import (
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/diag"
)

// checkDecisionTableAliasHygiene validates a decision table's Where map.
// Alias references from row cells are checked against the same map by
// checkIdentifierResolution (and again by the expander), so the invariant
// enforced here is arity: expansion only ever inlines a parameterless
// alias or a one-parameter alias.
func checkDecisionTableAliasHygiene(module *ast.RuleModule, d *diag.List) {
	for _, rule := range module.Rules {
		dt, ok := rule.(*ast.DecisionTableRule)
		if !ok {
			continue
		}
		for name, block := range dt.Where {
			if len(block.Params) > 1 {
				d.Errorf(diag.KindMissingAliasOrColumn, dt.ID, "alias %q must take zero or one parameter, found %d", name, len(block.Params))
			}
		}
	}
}

// checkTemplateColumnHygiene: every row of a template rule's backing
// table must declare exactly the table's column set (same cell count,
// aligned by index).
func checkTemplateColumnHygiene(module *ast.RuleModule, d *diag.List) {
	for _, rule := range module.Rules {
		tr, ok := rule.(*ast.TemplateRule)
		if !ok {
			continue
		}
		if tr.Table == nil {
			d.Errorf(diag.KindMissingAliasOrColumn, tr.ID, "template rule has no backing data table")
			continue
		}
		want := len(tr.Table.Columns)
		for i, row := range tr.Table.Rows {
			if len(row.Cells) != want {
				d.Errorf(diag.KindMissingAliasOrColumn, tr.ID, "data table %q row %d has %d cells, want %d columns", tr.Table.ID, i, len(row.Cells), want)
			}
		}
	}
}
