// Package resolver turns qualified type names and host-runtime class
// descriptions into types.Type values, and resolves property access along
// a type. All lookups are memoized; a Resolver is safe for concurrent
// read-only use by multiple goroutines once warmed up, guarded by an
// internal mutex.
package resolver

import (
	"strings"
	"sync"

	"github.com/rulelang/rulec/types"
)

var bigNumericNames = map[string]bool{
	"BigDecimal": true,
	"BigInteger": true,
}

var boxedPrimitiveNames = map[string]bool{
	"Integer":   true,
	"Long":      true,
	"Double":    true,
	"Float":     true,
	"Boolean":   true,
	"Character": true,
	"Byte":      true,
	"Short":     true,
}

var primitiveNames = map[string]types.PrimitiveKind{
	"int":     types.Int,
	"long":    types.Long,
	"double":  types.Double,
	"float":   types.Float,
	"boolean": types.Boolean,
	"char":    types.Char,
	"byte":    types.Byte,
	"short":   types.Short,
	"void":    types.Void,
}

// Resolver memoizes type-name and property lookups against a ClassLoader.
// Construct one per compilation pipeline; do not share across pipelines
// configured with different ClassLoaders.
type Resolver struct {
	loader ClassLoader

	mu        sync.Mutex
	typeCache map[string]types.Type
	propCache map[string]types.Type
}

// New constructs a Resolver backed by loader. A nil loader is legal:
// every lookup then falls back to Unknown, which is how the compiler runs
// with type inference disabled.
func New(loader ClassLoader) *Resolver {
	return &Resolver{
		loader:    loader,
		typeCache: map[string]types.Type{},
		propCache: map[string]types.Type{},
	}
}

// Resolve turns a qualified type name into a Type. Primitive names
// produce Primitive variants. Names ending in "[]" recursively resolve
// the component and wrap in Array. Names with a shallow "<Arg,...>"
// generic suffix resolve each argument recursively. Anything else that
// cannot be loaded yields an Unknown-with-hint.
func (r *Resolver) Resolve(name string) types.Type {
	name = strings.TrimSpace(name)

	r.mu.Lock()
	if cached, ok := r.typeCache[name]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	t := r.resolveUncached(name)

	r.mu.Lock()
	r.typeCache[name] = t
	r.mu.Unlock()
	return t
}

func (r *Resolver) resolveUncached(name string) types.Type {
	if strings.HasSuffix(name, "[]") {
		component := r.Resolve(name[:len(name)-2])
		return &types.Array{Component: component}
	}

	if kind, ok := primitiveNames[name]; ok {
		return &types.Primitive{Kind: kind}
	}

	base, argNames := splitGenericArgs(name)

	if r.loader == nil {
		return &types.Unknown{Hint: "no class loader configured for " + base}
	}

	ref, ok := r.loader.LoadClass(base)
	if !ok {
		return &types.Unknown{Hint: "unknown class " + base}
	}

	// Insert a placeholder before recursing through type arguments so a
	// self-referential generic (Node<Node<T>>-shaped fixtures) cannot
	// cycle back through Resolve for the same cache key.
	placeholder := &types.Class{QualifiedName: base, Kind: classKindOf(base, ref)}
	r.mu.Lock()
	r.typeCache[name] = placeholder
	r.mu.Unlock()

	var args []types.Type
	for _, a := range argNames {
		args = append(args, r.Resolve(a))
	}
	placeholder.TypeArgs = args
	placeholder.IsRecordType = ref.IsRecordType()
	return placeholder
}

// classKindOf classifies a class in order: String name match, then
// big-numeric/boxed-primitive set membership, then Map/Collection
// assignability, else Regular.
func classKindOf(qualifiedName string, ref ClassRef) types.ClassKind {
	simple := simpleName(qualifiedName)
	switch {
	case simple == "String":
		return types.StringKind
	case bigNumericNames[simple]:
		return types.BigNumeric
	case boxedPrimitiveNames[simple]:
		return types.BoxedPrimitive
	case ref.IsMapType():
		return types.Map
	case ref.IsCollectionType():
		return types.Collection
	default:
		return types.Regular
	}
}

func simpleName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// splitGenericArgs splits "pkg.Outer<A,B>" into ("pkg.Outer", ["A","B"]).
// Only the outermost angle-bracket pair is parsed (the type model's
// generics are shallow); nested commas inside a further generic argument
// are respected by bracket-depth tracking.
func splitGenericArgs(name string) (base string, args []string) {
	open := strings.IndexByte(name, '<')
	if open < 0 || !strings.HasSuffix(name, ">") {
		return name, nil
	}
	base = name[:open]
	inner := name[open+1 : len(name)-1]

	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return base, args
}

// FromClass converts an already-loaded ClassRef directly into a Type, for
// callers that hold a host-runtime class reference rather than a name.
func (r *Resolver) FromClass(ref ClassRef) types.Type {
	return r.Resolve(ref.QualifiedName())
}
