// Package codegen lowers a fully analyzed, type-inferred, table-expanded
// ast.RuleModule into Java source. By the time a module reaches this
// package every TemplateRule and DecisionTableRule has already been
// replaced by plain SimpleRules (see the expander package),
// so codegen only ever emits one method per SimpleRule, and every block's
// implicit-parameter form has already been rewritten to an explicit "it"
// parameter by typeinfer.RewriteModule.
package codegen

import (
	"fmt"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/typeinfer"
)

// Options are the code-generator's knobs, a subset of compiler.Options.
type Options struct {
	ClassName          string
	PackageName        string
	GenerateNullChecks bool
}

// Generator lowers one RuleModule to Java source text. It carries its own
// resolver and visitor and infers the type of each expression it lowers on
// demand, including the expressions introduced by table expansion.
type Generator struct {
	resolver *resolver.Resolver
	visitor  *typeinfer.Visitor
	ctx      *typeinfer.Context
	opts     Options
	module   *ast.RuleModule
	p        *printer
}

// Generate lowers module to a single Java compilation unit.
func Generate(module *ast.RuleModule, r *resolver.Resolver, opts Options) string {
	ctx := typeinfer.NewContext(module, r)
	g := &Generator{
		resolver: r,
		visitor:  typeinfer.NewVisitor(r),
		ctx:      ctx,
		opts:     opts,
		module:   module,
		p:        newPrinter(),
	}
	g.emitModule(module)
	return g.p.String()
}

func (g *Generator) emitModule(module *ast.RuleModule) {
	if g.opts.PackageName != "" {
		g.p.line(fmt.Sprintf("package %s;", g.opts.PackageName))
		g.p.writeln()
	}
	g.p.line("import java.util.*;")
	g.p.line("import java.math.BigDecimal;")
	g.p.line("import java.math.BigInteger;")
	g.p.line("import java.util.stream.*;")
	g.p.writeln()

	className := g.opts.ClassName
	if className == "" {
		className = "GeneratedRules"
	}
	g.p.line(fmt.Sprintf("public class %s {", className))
	g.p.indent()

	for _, f := range module.Facts {
		g.p.line(fmt.Sprintf("private final %s %s;", simpleHostType(f.QualifiedName), sanitizeIdentifier(f.Name)))
	}
	for _, gl := range module.Globals {
		g.p.line(fmt.Sprintf("private final %s %s;", simpleHostType(gl.QualifiedName), sanitizeIdentifier(gl.Name)))
	}
	for _, o := range module.Outputs {
		init := ""
		if o.Initial != nil {
			init = " = " + coerceForOutput(simpleHostType(o.QualifiedName), g.lowerExpr(g.ctx, o.Initial))
		}
		g.p.line(fmt.Sprintf("private %s %s%s;", simpleHostType(o.QualifiedName), sanitizeIdentifier(o.Name), init))
	}
	for _, dt := range module.DataTables {
		g.p.line(fmt.Sprintf("private final %s %s = %s;", dataTableHostType(dt), sanitizeIdentifier(dt.ID), g.lowerDataTable(dt)))
	}
	g.p.writeln()

	g.emitConstructor(module)

	for _, r := range module.Rules {
		if sr, ok := r.(*ast.SimpleRule); ok {
			g.emitRule(sr)
		}
	}

	g.emitEvaluate(module)

	for _, o := range module.Outputs {
		g.emitGetter(o)
	}

	g.p.dedent()
	g.p.line("}")
}

func (g *Generator) emitConstructor(module *ast.RuleModule) {
	className := g.opts.ClassName
	if className == "" {
		className = "GeneratedRules"
	}

	params := make([]string, 0, len(module.Facts)+len(module.Globals))
	for _, f := range module.Facts {
		params = append(params, fmt.Sprintf("%s %s", simpleHostType(f.QualifiedName), sanitizeIdentifier(f.Name)))
	}
	for _, gl := range module.Globals {
		params = append(params, fmt.Sprintf("%s %s", simpleHostType(gl.QualifiedName), sanitizeIdentifier(gl.Name)))
	}

	g.p.write(fmt.Sprintf("public %s(", className))
	for i, p := range params {
		if i > 0 {
			g.p.write(", ")
		}
		g.p.write(p)
	}
	g.p.write(") {")
	g.p.writeln()
	g.p.indent()
	for _, f := range module.Facts {
		name := sanitizeIdentifier(f.Name)
		g.p.line(fmt.Sprintf("this.%s = %s;", name, name))
	}
	for _, gl := range module.Globals {
		name := sanitizeIdentifier(gl.Name)
		g.p.line(fmt.Sprintf("this.%s = %s;", name, name))
	}
	g.p.dedent()
	g.p.line("}")
	g.p.writeln()
}

// ruleMethodName names a SimpleRule's generated method. Table-expanded
// rules carry a synthetic ID like "dt1#ADULT" or "tr1#0" (see expander),
// which sanitizeIdentifier turns into a stable camelCase suffix.
func (g *Generator) ruleMethodName(r *ast.SimpleRule) string {
	return "rule" + capitalize(sanitizeIdentifier(r.ID))
}

func (g *Generator) emitRule(r *ast.SimpleRule) {
	g.p.line(fmt.Sprintf("private void %s() {", g.ruleMethodName(r)))
	g.p.indent()

	ruleCtx := g.ctx.NewChild()
	whenLets := map[string]bool{}
	var cond string
	for _, s := range r.When {
		switch st := s.(type) {
		case *ast.LetStatement:
			g.emitLet(ruleCtx, st)
			whenLets[st.Name] = true
		case *ast.ExprStatement:
			cond = g.lowerExpr(ruleCtx, st.Expr)
		}
	}

	switch {
	case cond != "":
		g.p.line(fmt.Sprintf("if (%s) {", cond))
		g.p.indent()
		g.emitStatementsSkipping(ruleCtx.NewChild(), r.Then, whenLets)
		g.p.dedent()
		if len(r.Else) > 0 {
			g.p.line("} else {")
			g.p.indent()
			g.emitStatementsSkipping(ruleCtx.NewChild(), r.Else, whenLets)
			g.p.dedent()
		}
		g.p.line("}")
	default:
		g.emitStatementsSkipping(ruleCtx, r.Then, whenLets)
	}

	g.p.dedent()
	g.p.line("}")
	g.p.writeln()
}

func (g *Generator) emitEvaluate(module *ast.RuleModule) {
	g.p.line("public void evaluate() {")
	g.p.indent()
	for _, r := range module.Rules {
		if sr, ok := r.(*ast.SimpleRule); ok {
			g.p.line(g.ruleMethodName(sr) + "();")
		}
	}
	g.p.dedent()
	g.p.line("}")
	g.p.writeln()
}

func (g *Generator) emitGetter(o *ast.Output) {
	g.p.line(fmt.Sprintf("public %s get%s() {", simpleHostType(o.QualifiedName), capitalize(sanitizeIdentifier(o.Name))))
	g.p.indent()
	g.p.line(fmt.Sprintf("return %s;", sanitizeIdentifier(o.Name)))
	g.p.dedent()
	g.p.line("}")
	g.p.writeln()
}

func (g *Generator) emitStatements(ctx *typeinfer.Context, stmts []ast.Statement) {
	g.emitStatementsSkipping(ctx, stmts, nil)
}

// emitStatementsSkipping emits stmts, but silently drops any LetStatement
// whose name is in skip. The expander prepends a template rule's column
// lets to both its When and Then lists (when/then/else share one scope,
// they are not two separate declarations), so Then/Else must not
// redeclare a local the When-clause already bound in the enclosing method
// scope; Java forbids shadowing it in a nested block.
func (g *Generator) emitStatementsSkipping(ctx *typeinfer.Context, stmts []ast.Statement, skip map[string]bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.LetStatement:
			if skip[st.Name] {
				continue
			}
			g.emitLet(ctx, st)
		case *ast.ExprStatement:
			g.emitExprStatement(ctx, st)
		}
	}
}

func (g *Generator) emitLet(ctx *typeinfer.Context, st *ast.LetStatement) {
	value := g.lowerExpr(ctx, st.Value)
	t := g.visitor.Infer(ctx, st.Value)
	ctx.DeclareLocal(st.Name, t)
	g.p.line(fmt.Sprintf("var %s = %s;", sanitizeIdentifier(st.Name), value))
}

// emitExprStatement special-cases the ifTrue:/ifFalse: selectors, lowered
// to a Java if-statement rather than an expression (their argument
// block's side effects have no meaningful expression-level result;
// typeinfer types them void).
func (g *Generator) emitExprStatement(ctx *typeinfer.Context, st *ast.ExprStatement) {
	if k, ok := st.Expr.(*ast.KeywordMessage); ok && len(k.Parts) == 1 {
		if block, ok := k.Parts[0].Argument.(*ast.Block); ok {
			switch k.Parts[0].Keyword {
			case "ifTrue":
				g.emitIfBlock(ctx, k.Receiver, block, false)
				return
			case "ifFalse":
				g.emitIfBlock(ctx, k.Receiver, block, true)
				return
			}
		}
	}
	g.p.line(g.lowerExpr(ctx, st.Expr) + ";")
}

func (g *Generator) emitIfBlock(ctx *typeinfer.Context, condExpr ast.Expression, block *ast.Block, negate bool) {
	cond := g.lowerExpr(ctx, condExpr)
	if negate {
		cond = "!(" + cond + ")"
	}
	g.p.line(fmt.Sprintf("if (%s) {", cond))
	g.p.indent()
	g.emitStatements(ctx.NewChild(), block.Body)
	g.p.dedent()
	g.p.line("}")
}

func (g *Generator) outputByName(name string) *ast.Output {
	for _, o := range g.module.Outputs {
		if o.Name == name {
			return o
		}
	}
	return nil
}
