package codegen

import (
	"fmt"
	"strings"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/typeinfer"
	"github.com/rulelang/rulec/types"
)

func (g *Generator) lowerExpr(ctx *typeinfer.Context, e ast.Expression) string {
	switch v := e.(type) {
	case *ast.StringLiteral:
		return escapeJavaString(v.Value)
	case *ast.NumberLiteral:
		return fmt.Sprintf("new BigDecimal(%q)", v.Text)
	case *ast.BoolLiteral:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		return "null"
	case *ast.ListLiteral:
		return g.lowerListLiteral(ctx, v)
	case *ast.SetLiteral:
		return g.lowerSetLiteral(ctx, v)
	case *ast.MapLiteral:
		return g.lowerMapLiteral(ctx, v)
	case *ast.Identifier:
		return g.lowerIdentifier(v)
	case *ast.Navigation:
		return g.lowerNavigation(ctx, v)
	case *ast.BinaryExpr:
		return g.lowerBinary(ctx, v)
	case *ast.Assignment:
		return g.lowerAssignment(ctx, v)
	case *ast.UnaryMessage:
		return g.lowerUnary(ctx, v)
	case *ast.KeywordMessage:
		return g.lowerKeyword(ctx, v)
	case *ast.DefaultMessage:
		return g.lowerDefault(ctx, v)
	case *ast.Block:
		return g.lowerBlock(ctx, v)
	}
	return unreachable(e)
}

func unreachable(v any) string {
	return fmt.Sprintf("/* unreachable: %T */", v)
}

func escapeJavaString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (g *Generator) lowerListLiteral(ctx *typeinfer.Context, l *ast.ListLiteral) string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = g.lowerExpr(ctx, el)
	}
	return fmt.Sprintf("List.of(%s)", strings.Join(parts, ", "))
}

// lowerSetLiteral partitions a set literal into ranges and singletons:
// ranges lower to the runtime range() helper and union with the
// plain-element set via unionSets.
func (g *Generator) lowerSetLiteral(ctx *typeinfer.Context, s *ast.SetLiteral) string {
	var singles, ranges []string
	for _, el := range s.Elements {
		if el.IsRange() {
			ranges = append(ranges, fmt.Sprintf("Runtime.range(%s, %s)", g.lowerExpr(ctx, el.Start), g.lowerExpr(ctx, el.End)))
		} else {
			singles = append(singles, g.lowerExpr(ctx, el.Start))
		}
	}
	out := fmt.Sprintf("Set.of(%s)", strings.Join(singles, ", "))
	for _, r := range ranges {
		out = fmt.Sprintf("Runtime.unionSets(%s, %s)", out, r)
	}
	return out
}

func (g *Generator) lowerMapLiteral(ctx *typeinfer.Context, m *ast.MapLiteral) string {
	return g.lowerMapEntries(len(m.Entries), func(i int) (string, string) {
		e := m.Entries[i]
		return g.lowerExpr(ctx, e.Key), g.lowerExpr(ctx, e.Value)
	})
}

// lowerIdentifier: "@foo" references the global field, an output name
// references its field, anything else is a sanitized local/fact/
// data-table reference.
func (g *Generator) lowerIdentifier(id *ast.Identifier) string {
	if id.IsGlobal() {
		return sanitizeIdentifier(id.BareName())
	}
	return sanitizeIdentifier(id.Name)
}

// isStringy walks a PLUS tree structurally (not via the cached BinaryExpr
// type, which always reports BigNumeric for arithmetic ops) so that a
// String operand anywhere in a nested PLUS tree turns the whole tree into
// string concatenation.
func (g *Generator) isStringy(ctx *typeinfer.Context, e ast.Expression) bool {
	if b, ok := e.(*ast.BinaryExpr); ok && b.Op == ast.OpAdd {
		return g.isStringy(ctx, b.Left) || g.isStringy(ctx, b.Right)
	}
	return types.IsString(g.visitor.Infer(ctx, e))
}

func (g *Generator) lowerBinary(ctx *typeinfer.Context, b *ast.BinaryExpr) string {
	left := g.lowerExpr(ctx, b.Left)
	right := g.lowerExpr(ctx, b.Right)

	if b.Op == ast.OpAdd && (g.isStringy(ctx, b.Left) || g.isStringy(ctx, b.Right)) {
		return fmt.Sprintf("(%s + %s)", left, right)
	}

	switch b.Op {
	case ast.OpAdd:
		return fmt.Sprintf("Runtime.addNumeric(%s, %s)", left, right)
	case ast.OpSub:
		return fmt.Sprintf("Runtime.subtractNumeric(%s, %s)", left, right)
	case ast.OpMul:
		return fmt.Sprintf("Runtime.multiplyNumeric(%s, %s)", left, right)
	case ast.OpDiv:
		return fmt.Sprintf("Runtime.divideNumeric(%s, %s)", left, right)
	case ast.OpEq:
		return fmt.Sprintf("Runtime.equalsNumericAware(%s, %s)", left, right)
	case ast.OpNotEq:
		return fmt.Sprintf("!Runtime.equalsNumericAware(%s, %s)", left, right)
	case ast.OpGreater:
		return fmt.Sprintf("(Runtime.compareNumeric(%s, %s) > 0)", left, right)
	case ast.OpGreaterEq:
		return fmt.Sprintf("(Runtime.compareNumeric(%s, %s) >= 0)", left, right)
	case ast.OpLess:
		return fmt.Sprintf("(Runtime.compareNumeric(%s, %s) < 0)", left, right)
	case ast.OpLessEq:
		return fmt.Sprintf("(Runtime.compareNumeric(%s, %s) <= 0)", left, right)
	}
	return unreachable(b.Op)
}

func (g *Generator) lowerAssignment(ctx *typeinfer.Context, a *ast.Assignment) string {
	value := g.lowerExpr(ctx, a.Value)

	switch target := a.Target.(type) {
	case *ast.Identifier:
		if out := g.outputByName(target.Name); out != nil {
			value = coerceForOutput(simpleHostType(out.QualifiedName), value)
		}
		return fmt.Sprintf("%s = %s", sanitizeIdentifier(target.Name), value)
	case *ast.Navigation:
		return g.lowerNavigationAssignment(ctx, target, value)
	}
	return unreachable(a.Target)
}

func (g *Generator) lowerUnary(ctx *typeinfer.Context, u *ast.UnaryMessage) string {
	recv := g.lowerExpr(ctx, u.Receiver)
	recvType := g.visitor.Infer(ctx, u.Receiver)
	isColl := types.IsCollection(recvType)

	switch u.Selector {
	case "exists", "notEmpty":
		if isColl {
			return fmt.Sprintf("!%s.isEmpty()", recv)
		}
		return fmt.Sprintf("%s.%s()", recv, u.Selector)
	case "empty", "doesNotExist":
		if isColl {
			return fmt.Sprintf("%s.isEmpty()", recv)
		}
		return fmt.Sprintf("%s.%s()", recv, u.Selector)
	case "sum":
		if isColl {
			return fmt.Sprintf("%s.stream().reduce(BigDecimal.ZERO, (a, b) -> Runtime.addNumeric(a, Runtime.toBigDecimal(b)), Runtime::addNumeric)", recv)
		}
		return fmt.Sprintf("%s.sum()", recv)
	default:
		return fmt.Sprintf("%s.%s()", recv, sanitizeIdentifier(u.Selector))
	}
}

func (g *Generator) lowerKeyword(ctx *typeinfer.Context, k *ast.KeywordMessage) string {
	recv := g.lowerExpr(ctx, k.Receiver)
	recvType := g.visitor.Infer(ctx, k.Receiver)

	if len(k.Parts) >= 2 {
		args := make([]string, len(k.Parts))
		for i, p := range k.Parts {
			args[i] = g.lowerExpr(ctx, p.Argument)
		}
		return fmt.Sprintf("%s.%s(%s)", recv, sanitizeIdentifier(k.MethodName()), strings.Join(args, ", "))
	}

	selector := k.Parts[0].Keyword
	isColl := types.IsCollection(recvType)
	isMap := types.IsMap(recvType)

	// all:/each:/where: on a collection invoke their argument block once
	// per element, so the block's parameter takes the collection's element
	// type (record vs. bean accessor dispatch inside the block body
	// depends on it) rather than the unknown-param default.
	collArg := func() string {
		return g.lowerBlockArg(ctx, k.Parts[0].Argument, types.ElementType(recvType))
	}
	arg := func() string { return g.lowerExpr(ctx, k.Parts[0].Argument) }

	switch selector {
	case "all":
		if isColl {
			return fmt.Sprintf("%s.stream().allMatch(%s)", recv, collArg())
		}
		return fmt.Sprintf("%s.all(%s)", recv, arg())
	case "each":
		if isColl {
			return fmt.Sprintf("%s.forEach(%s)", recv, collArg())
		}
		return fmt.Sprintf("%s.each(%s)", recv, arg())
	case "where":
		if isColl {
			return fmt.Sprintf("%s.stream().filter(%s).toList()", recv, collArg())
		}
		return fmt.Sprintf("%s.where(%s)", recv, arg())
	case "at":
		switch {
		case isColl:
			return fmt.Sprintf("%s.get(%s.intValue())", recv, arg())
		case isMap:
			return fmt.Sprintf("%s.get(%s)", recv, arg())
		default:
			return fmt.Sprintf("Runtime.at(%s, %s)", recv, arg())
		}
	case "contains":
		if isMap {
			return fmt.Sprintf("%s.containsKey(%s)", recv, arg())
		}
		return fmt.Sprintf("%s.contains(%s)", recv, arg())
	case "and":
		return fmt.Sprintf("(%s && %s)", recv, arg())
	case "or":
		return fmt.Sprintf("(%s || %s)", recv, arg())
	case "to":
		return fmt.Sprintf("Runtime.range(%s, %s)", recv, arg())
	case "ifTrue":
		return fmt.Sprintf("(%s ? %s : null)", recv, g.lowerImmediateBlockCall(ctx, k.Parts[0].Argument))
	case "ifFalse":
		return fmt.Sprintf("(!%s ? %s : null)", recv, g.lowerImmediateBlockCall(ctx, k.Parts[0].Argument))
	default:
		return fmt.Sprintf("%s.%s(%s)", recv, sanitizeIdentifier(selector), arg())
	}
}

// lowerBlockArg lowers a keyword-message argument that is expected to be a
// block invoked once per collection element, binding its sole parameter to
// paramType instead of the unknown-param default so navigation inside the
// block picks the right accessor style. Non-block arguments lower
// normally.
func (g *Generator) lowerBlockArg(ctx *typeinfer.Context, arg ast.Expression, paramType types.Type) string {
	block, ok := arg.(*ast.Block)
	if !ok || len(block.Params) == 0 {
		return g.lowerExpr(ctx, arg)
	}
	return g.lowerBlockWithParamTypes(ctx, block, []types.Type{paramType})
}

// lowerImmediateBlockCall lowers a block argument used in an expression
// (not statement) position to an immediately-invoked lambda. Statement-
// position ifTrue:/ifFalse: sends are handled specially by
// Generator.emitExprStatement instead, which emits a plain Java if rather
// than this fallback.
func (g *Generator) lowerImmediateBlockCall(ctx *typeinfer.Context, arg ast.Expression) string {
	return fmt.Sprintf("((java.util.function.Supplier<Object>) %s).get()", g.lowerExpr(ctx, arg))
}

func (g *Generator) lowerDefault(ctx *typeinfer.Context, d *ast.DefaultMessage) string {
	recv := g.lowerExpr(ctx, d.Receiver)
	recvType := g.visitor.Infer(ctx, d.Receiver)
	if class, ok := recvType.(*types.Class); ok {
		switch simpleHostType(class.QualifiedName) {
		case "Runnable":
			return fmt.Sprintf("%s.run()", recv)
		case "Callable":
			return fmt.Sprintf("%s.call()", recv)
		}
	}
	return fmt.Sprintf("%s.get()", recv)
}

// lowerBlock lowers an explicit-parameter block to a Java lambda, with
// every parameter defaulting to Object's type. Every implicit-parameter
// block has already been rewritten to this explicit form by
// typeinfer.RewriteModule before this package ever sees it.
func (g *Generator) lowerBlock(ctx *typeinfer.Context, b *ast.Block) string {
	return g.lowerBlockWithParamTypes(ctx, b, nil)
}

// lowerBlockWithParamTypes lowers a block the same way as lowerBlock but
// binds the first len(paramTypes) parameters to those types instead of the
// unknown-param default; any remaining parameters still default to Object.
func (g *Generator) lowerBlockWithParamTypes(ctx *typeinfer.Context, b *ast.Block, paramTypes []types.Type) string {
	child := ctx.NewChild()
	for i, p := range b.Params {
		if i < len(paramTypes) {
			child.DeclareLocal(p, paramTypes[i])
		} else {
			child.DeclareLocal(p, types.Object())
		}
	}
	params := make([]string, len(b.Params))
	for i, p := range b.Params {
		params[i] = sanitizeIdentifier(p)
	}
	header := fmt.Sprintf("(%s)", strings.Join(params, ", "))

	if len(b.Body) == 1 {
		if es, ok := b.Body[0].(*ast.ExprStatement); ok {
			return fmt.Sprintf("%s -> %s", header, g.lowerExpr(child, es.Expr))
		}
	}

	var body strings.Builder
	for i, stmt := range b.Body {
		switch st := stmt.(type) {
		case *ast.LetStatement:
			value := g.lowerExpr(child, st.Value)
			child.DeclareLocal(st.Name, g.visitor.Infer(child, st.Value))
			body.WriteString(fmt.Sprintf("var %s = %s; ", sanitizeIdentifier(st.Name), value))
		case *ast.ExprStatement:
			rendered := g.lowerExpr(child, st.Expr)
			if i == len(b.Body)-1 {
				body.WriteString(fmt.Sprintf("return %s; ", rendered))
			} else {
				body.WriteString(fmt.Sprintf("%s; ", rendered))
			}
		}
	}
	return fmt.Sprintf("%s -> { %s}", header, body.String())
}
