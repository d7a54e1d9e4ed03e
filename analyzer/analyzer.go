// Package analyzer enforces a RuleModule's static invariants: six ordered
// checks producing a diag.List that decides whether compilation may
// proceed to code generation.
package analyzer

import (
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/diag"
	"github.com/rulelang/rulec/resolver"
)

// Result is the analyzer's output: ok if no error-severity diagnostic was
// produced, alongside every diagnostic (errors and warnings) collected.
type Result struct {
	Diagnostics *diag.List
}

// OK reports whether the module may proceed to code generation.
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Analyze runs the six checks in order. Each check continues past its
// first diagnostic within a given rule so it can surface every defect in
// one pass, rather than stopping at the first. The resolver types
// when-clause conditions; a nil resolver is legal and leaves every
// condition's type Unknown, so only the structural checks apply.
func Analyze(module *ast.RuleModule, r *resolver.Resolver) *Result {
	d := diag.NewList()
	names := collectNames(module)
	if r == nil {
		r = resolver.New(nil)
	}

	checkDuplicateNames(module, names, d)
	checkIdentifierResolution(module, names, d)
	checkAssignmentLegality(module, names, d)
	checkWhenClauseShape(module, r, d)
	checkDecisionTableAliasHygiene(module, d)
	checkTemplateColumnHygiene(module, d)
	checkWarnings(module, d)

	return &Result{Diagnostics: d}
}
