package typeinfer

import (
	"strings"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/types"
)

// Visitor computes types.Type for ast.Expression nodes, memoized by
// expression identity (pointer), never by deep comparison. A Visitor must
// outlive every Context it is used with so that re-inferring an
// expression the generator already visited returns the exact cached
// value.
type Visitor struct {
	resolver *resolver.Resolver
	cache    map[ast.Expression]types.Type
}

// NewVisitor constructs a Visitor backed by r.
func NewVisitor(r *resolver.Resolver) *Visitor {
	return &Visitor{resolver: r, cache: map[ast.Expression]types.Type{}}
}

// Infer returns expr's type, computing and caching it on first visit.
func (v *Visitor) Infer(ctx *Context, expr ast.Expression) types.Type {
	if cached, ok := v.cache[expr]; ok {
		return cached
	}
	t := v.inferUncached(ctx, expr)
	v.cache[expr] = t
	return t
}

// InferAll walks stmts in order against ctx, declaring locals as it goes.
// The when, then, and else sections of one rule share a single Context so
// when-clause lets leak into then/else.
func (v *Visitor) InferAll(ctx *Context, stmts []ast.Statement) {
	for _, s := range stmts {
		v.inferStatement(ctx, s)
	}
}

func (v *Visitor) inferStatement(ctx *Context, stmt ast.Statement) types.Type {
	switch s := stmt.(type) {
	case *ast.ExprStatement:
		return v.Infer(ctx, s.Expr)
	case *ast.LetStatement:
		t := v.Infer(ctx, s.Value)
		ctx.DeclareLocal(s.Name, t)
		return t
	}
	return &types.Primitive{Kind: types.Void}
}

func (v *Visitor) inferUncached(ctx *Context, expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return types.NewString()
	case *ast.NumberLiteral:
		return types.NewBigDecimal()
	case *ast.BoolLiteral:
		return &types.Primitive{Kind: types.Boolean}
	case *ast.NullLiteral:
		return types.Object()
	case *ast.ListLiteral:
		return v.inferSequenceLiteral(ctx, "java.util.List", e.Elements)
	case *ast.SetLiteral:
		elems := make([]ast.Expression, 0, len(e.Elements))
		for _, re := range e.Elements {
			elems = append(elems, re.Start)
		}
		return v.inferSequenceLiteral(ctx, "java.util.Set", elems)
	case *ast.MapLiteral:
		return v.inferMapLiteral(ctx, e)
	case *ast.Identifier:
		if e.IsGlobal() {
			return ctx.LookupGlobal(e.BareName())
		}
		return ctx.Lookup(e.Name)
	case *ast.Navigation:
		return v.inferNavigation(ctx, e)
	case *ast.BinaryExpr:
		if e.Op.IsArithmetic() {
			return types.NewBigDecimal()
		}
		return &types.Primitive{Kind: types.Boolean}
	case *ast.Assignment:
		return v.Infer(ctx, e.Value)
	case *ast.UnaryMessage:
		return v.inferUnary(ctx, e)
	case *ast.KeywordMessage:
		return v.inferKeyword(ctx, e)
	case *ast.DefaultMessage:
		return v.inferDefault(ctx, e)
	case *ast.Block:
		return v.inferBlock(ctx, e)
	}
	return &types.Unknown{Hint: "unhandled expression form"}
}

func (v *Visitor) inferSequenceLiteral(ctx *Context, qualifiedName string, elements []ast.Expression) types.Type {
	if len(elements) == 0 {
		return types.NewCollection(qualifiedName, &types.Unknown{Hint: "empty collection literal"})
	}
	return types.NewCollection(qualifiedName, v.Infer(ctx, elements[0]))
}

func (v *Visitor) inferMapLiteral(ctx *Context, e *ast.MapLiteral) types.Type {
	if len(e.Entries) == 0 {
		return types.NewMap("java.util.Map", &types.Unknown{Hint: "empty map key"}, &types.Unknown{Hint: "empty map value"})
	}
	kt := v.Infer(ctx, e.Entries[0].Key)
	vt := v.Infer(ctx, e.Entries[0].Value)
	return types.NewMap("java.util.Map", kt, vt)
}

// inferNavigation folds resolveProperty across the name chain starting
// from the receiver's type. An intermediate Collection form stays a
// Collection: "cart.items.name" has type Collection-of-String, matching
// the flatMap-unwrapping the generator emits for chained collection
// navigation.
func (v *Visitor) inferNavigation(ctx *Context, e *ast.Navigation) types.Type {
	t := v.Infer(ctx, e.Receiver)
	for _, name := range e.Names {
		if types.IsCollection(t) {
			prop := v.resolver.ResolveProperty(types.ElementType(t), name)
			t = collectionOf(prop)
		} else {
			t = v.resolver.ResolveProperty(t, name)
		}
	}
	return t
}

func collectionOf(elementOrCollection types.Type) types.Type {
	if types.IsCollection(elementOrCollection) {
		return types.NewCollection("java.util.List", types.ElementType(elementOrCollection))
	}
	return types.NewCollection("java.util.List", elementOrCollection)
}

func (v *Visitor) inferUnary(ctx *Context, e *ast.UnaryMessage) types.Type {
	recv := v.Infer(ctx, e.Receiver)
	switch e.Selector {
	case "exists", "notEmpty", "empty", "doesNotExist":
		return &types.Primitive{Kind: types.Boolean}
	case "sum":
		return types.NewBigDecimal()
	case "size":
		return &types.Primitive{Kind: types.Int}
	default:
		return v.resolver.ResolveProperty(recv, e.Selector)
	}
}

func (v *Visitor) inferKeyword(ctx *Context, e *ast.KeywordMessage) types.Type {
	recv := v.Infer(ctx, e.Receiver)
	if len(e.Parts) != 1 {
		// Multi-keyword selectors have no special-cased mapping; resolve
		// as an ordinary method on the receiver's type.
		return v.resolver.ResolveProperty(recv, e.MethodName())
	}

	selector := e.Parts[0].Keyword
	switch selector {
	case "all", "contains":
		return &types.Primitive{Kind: types.Boolean}
	case "each", "ifTrue", "ifFalse":
		return &types.Primitive{Kind: types.Void}
	case "where":
		if types.IsCollection(recv) {
			return recv
		}
		return v.resolver.ResolveProperty(recv, selector)
	case "at":
		switch {
		case types.IsCollection(recv):
			return types.ElementType(recv)
		case types.IsMap(recv):
			return types.ValueType(recv)
		default:
			return types.Object()
		}
	case "and", "or":
		return &types.Primitive{Kind: types.Boolean}
	case "to":
		return types.NewCollection("java.util.List", types.NewBigDecimal())
	default:
		return v.resolver.ResolveProperty(recv, selector)
	}
}

func (v *Visitor) inferDefault(ctx *Context, e *ast.DefaultMessage) types.Type {
	recv := v.Infer(ctx, e.Receiver)
	class, ok := recv.(*types.Class)
	if !ok {
		return types.Object()
	}
	switch simpleClassName(class.QualifiedName) {
	case "Supplier", "Callable":
		if len(class.TypeArgs) > 0 {
			return class.TypeArgs[0]
		}
		return types.Object()
	case "Runnable":
		return &types.Primitive{Kind: types.Void}
	default:
		return types.Object()
	}
}

func simpleClassName(qualifiedName string) string {
	if i := strings.LastIndexByte(qualifiedName, '.'); i >= 0 {
		return qualifiedName[i+1:]
	}
	return qualifiedName
}

// inferBlock treats a block's type as the type of its final statement (an
// empty block is void) and pre-walks the body in a fresh child scope so
// the generator can later query any sub-expression's cached type.
func (v *Visitor) inferBlock(ctx *Context, b *ast.Block) types.Type {
	child := ctx.NewChild()
	for _, p := range b.Params {
		child.DeclareLocal(p, types.Object())
	}
	var last types.Type = &types.Primitive{Kind: types.Void}
	for _, stmt := range b.Body {
		last = v.inferStatement(child, stmt)
	}
	return last
}
