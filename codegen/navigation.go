package codegen

import (
	"fmt"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/typeinfer"
	"github.com/rulelang/rulec/types"
)

// accessorCall returns the call text ("name()" or "getName()") for
// reading property name off a value of type owner: record-style when the
// host considers owner a record, bean-style otherwise.
func (g *Generator) accessorCall(owner types.Type, name string) string {
	if types.IsRecord(owner) {
		return sanitizeIdentifier(name) + "()"
	}
	return "get" + capitalize(sanitizeIdentifier(name)) + "()"
}

func (g *Generator) lowerNavigation(ctx *typeinfer.Context, n *ast.Navigation) string {
	recvType := g.visitor.Infer(ctx, n.Receiver)
	recv := g.lowerExpr(ctx, n.Receiver)

	if types.IsCollection(recvType) {
		return g.lowerCollectionNavigation(recv, recvType, n.Names)
	}
	if g.opts.GenerateNullChecks && len(n.Names) > 1 {
		return g.lowerNullSafeNavigation(recv, recvType, n.Names)
	}
	return g.lowerPlainNavigation(recv, recvType, n.Names)
}

func (g *Generator) lowerPlainNavigation(recv string, recvType types.Type, names []string) string {
	out := recv
	cur := recvType
	for _, name := range names {
		out = fmt.Sprintf("%s.%s", out, g.accessorCall(cur, name))
		cur = g.resolver.ResolveProperty(cur, name)
	}
	return out
}

// lowerCollectionNavigation lowers navigation off a collection receiver:
// .stream(), then .map for a scalar intermediate property or .flatMap for
// a collection-typed intermediate property, finishing with .toList().
func (g *Generator) lowerCollectionNavigation(recv string, recvType types.Type, names []string) string {
	cur := types.ElementType(recvType)
	out := recv + ".stream()"
	for _, name := range names {
		next := g.resolver.ResolveProperty(cur, name)
		accessor := g.accessorCall(cur, name)
		if types.IsCollection(next) {
			out += fmt.Sprintf(".flatMap(v -> v.%s.stream())", accessor)
			cur = types.ElementType(next)
		} else {
			out += fmt.Sprintf(".map(v -> v.%s)", accessor)
			cur = next
		}
	}
	return out + ".toList()"
}

// lowerNullSafeNavigation lowers a scalar chain of length >1 to an
// Optional.ofNullable(...).map(...)... chain, switching to the collection
// lowering for the remaining suffix the moment an intermediate property is
// itself a Collection.
func (g *Generator) lowerNullSafeNavigation(recv string, recvType types.Type, names []string) string {
	out := fmt.Sprintf("Optional.ofNullable(%s)", recv)
	cur := recvType
	for i, name := range names {
		next := g.resolver.ResolveProperty(cur, name)
		accessor := g.accessorCall(cur, name)
		if types.IsCollection(next) {
			// The inner collection-navigation lambdas are always named "v";
			// this wrapping lambda must use a distinct parameter name or it
			// would illegally shadow them in Java.
			inner := g.lowerCollectionNavigation("root."+accessor, next, names[i+1:])
			return out + fmt.Sprintf(".map(root -> %s).orElse(null)", inner)
		}
		out += fmt.Sprintf(".map(v -> v.%s)", accessor)
		cur = next
	}
	return out + ".orElse(null)"
}

// lowerNavigationAssignment emits a getter chain for every name but the
// last, then a setter call for the last.
func (g *Generator) lowerNavigationAssignment(ctx *typeinfer.Context, nav *ast.Navigation, value string) string {
	recvType := g.visitor.Infer(ctx, nav.Receiver)
	chain := g.lowerExpr(ctx, nav.Receiver)
	cur := recvType
	for i, name := range nav.Names {
		if i == len(nav.Names)-1 {
			setter := "set" + capitalize(sanitizeIdentifier(name))
			return fmt.Sprintf("%s.%s(%s)", chain, setter, value)
		}
		chain = fmt.Sprintf("%s.%s", chain, g.accessorCall(cur, name))
		cur = g.resolver.ResolveProperty(cur, name)
	}
	return chain
}
