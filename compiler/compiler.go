// Package compiler is the external entry point: the orchestration that
// runs a RuleModule through analyzer, resolver, typeinfer, expander and
// codegen and reports either generated source files or the accumulated
// diagnostics.
package compiler

import (
	"fmt"

	"github.com/rulelang/rulec/analyzer"
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/codegen"
	"github.com/rulelang/rulec/expander"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/typeinfer"
)

// Options is the closed set of knobs a compilation recognizes.
type Options struct {
	ClassName            string
	PackageName          string
	FilePath             string
	TypeInferenceEnabled bool
	TypeClassLoader      resolver.ClassLoader
	GenerateNullChecks   bool
}

// Result is a tagged sum: exactly one of Files or Errors is set.
type Result struct {
	Files  map[string]string
	Errors []string
}

// OK reports whether Compile produced source files rather than errors.
func (r *Result) OK() bool {
	return r.Errors == nil
}

// Compile runs module through the full pipeline. Any error-severity
// diagnostic from the analyzer aborts before codegen ever runs, and
// Compile returns a Failure-shaped Result carrying every diagnostic's
// textual form in source order.
func Compile(module *ast.RuleModule, opts Options) *Result {
	if module == nil {
		return &Result{Errors: []string{"compiler: module must not be nil"}}
	}

	var loader resolver.ClassLoader
	if opts.TypeInferenceEnabled {
		loader = opts.TypeClassLoader
	}
	r := resolver.New(loader)

	analysis := analyzer.Analyze(module, r)
	if !analysis.OK() {
		return &Result{Errors: analysis.Diagnostics.Strings()}
	}

	expanded, expandDiags := expander.Expand(module)
	if expandDiags.HasErrors() {
		return &Result{Errors: expandDiags.Strings()}
	}

	ctx := typeinfer.NewContext(expanded, r)
	visitor := typeinfer.NewVisitor(r)
	expanded = typeinfer.RewriteModule(expanded)
	inferAllStatements(visitor, ctx, expanded)

	genOpts := codegen.Options{
		ClassName:          opts.ClassName,
		PackageName:        opts.PackageName,
		GenerateNullChecks: opts.GenerateNullChecks,
	}
	source := codegen.Generate(expanded, r, genOpts)

	filePath := opts.FilePath
	if filePath == "" {
		filePath = fmt.Sprintf("%s.java", defaultString(opts.ClassName, "GeneratedRules"))
	}
	return &Result{Files: map[string]string{filePath: source}}
}

// inferAllStatements runs type inference over every rule's When/Then/Else
// before codegen runs. codegen does not read this Visitor's cache: it
// infers each expression again on demand with its own Visitor.
func inferAllStatements(v *typeinfer.Visitor, ctx *typeinfer.Context, module *ast.RuleModule) {
	for _, rule := range module.Rules {
		sr, ok := rule.(*ast.SimpleRule)
		if !ok {
			continue
		}
		ruleCtx := ctx.NewChild()
		v.InferAll(ruleCtx, sr.When)
		v.InferAll(ruleCtx.NewChild(), sr.Then)
		v.InferAll(ruleCtx.NewChild(), sr.Else)
	}
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
