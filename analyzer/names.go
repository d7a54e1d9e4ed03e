package analyzer

import (
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/diag"
)

// moduleNames is the set of every declared name, partitioned the way
// typeinfer.Context partitions them, used by the identifier-resolution and
// assignment-legality checks.
type moduleNames struct {
	imports    map[string]bool
	facts      map[string]bool
	globals    map[string]bool
	outputs    map[string]bool
	dataTables map[string]bool
}

func collectNames(module *ast.RuleModule) *moduleNames {
	n := &moduleNames{
		imports:    map[string]bool{},
		facts:      map[string]bool{},
		globals:    map[string]bool{},
		outputs:    map[string]bool{},
		dataTables: map[string]bool{},
	}
	for _, i := range module.Imports {
		n.imports[i.Alias] = true
	}
	for _, f := range module.Facts {
		n.facts[f.Name] = true
	}
	for _, g := range module.Globals {
		n.globals[g.Name] = true
	}
	for _, o := range module.Outputs {
		n.outputs[o.Name] = true
	}
	for _, t := range module.DataTables {
		n.dataTables[t.ID] = true
	}
	return n
}

func (n *moduleNames) isFactOrOutput(name string) bool {
	return n.facts[name] || n.outputs[name]
}

func (n *moduleNames) resolves(name string) bool {
	return n.facts[name] || n.outputs[name] || n.dataTables[name]
}

// checkDuplicateNames detects duplicate names across imports, facts,
// globals, outputs, data-tables, rules, and duplicate row-ids across
// decision-table rows. Declarations share one namespace: a name belonging
// to more than one category (a fact and an output both called "discount")
// is a name-collision error, not two independent declarations.
func checkDuplicateNames(module *ast.RuleModule, n *moduleNames, d *diag.List) {
	seen := map[string]string{}
	for _, i := range module.Imports {
		declarationCheck(seen, i.Alias, "import", d)
	}
	for _, f := range module.Facts {
		declarationCheck(seen, f.Name, "fact", d)
	}
	for _, g := range module.Globals {
		declarationCheck(seen, g.Name, "global", d)
	}
	for _, o := range module.Outputs {
		declarationCheck(seen, o.Name, "output", d)
	}
	for _, t := range module.DataTables {
		declarationCheck(seen, t.ID, "data table", d)
	}

	seenRules := map[string]string{}
	for _, r := range module.Rules {
		declarationCheck(seenRules, r.RuleID(), "rule", d)
		if dt, ok := r.(*ast.DecisionTableRule); ok {
			seenRows := map[string]string{}
			for _, row := range dt.Rows {
				declarationCheck(seenRows, row.ID, "decision-table row (rule "+dt.ID+")", d)
			}
		}
	}
}

func declarationCheck(seen map[string]string, name, kind string, d *diag.List) {
	if name == "" {
		return
	}
	if prev, ok := seen[name]; ok {
		if prev == kind {
			d.Errorf(diag.KindDuplicateDeclaration, name, "duplicate %s name %q", kind, name)
		} else {
			d.Errorf(diag.KindDuplicateDeclaration, name, "%s name %q collides with a %s of the same name", kind, name, prev)
		}
		return
	}
	seen[name] = kind
}
