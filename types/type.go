// Package types models a conservative view of the host (Java) runtime's
// type system: a closed sum of Primitive, Class, Array, and Unknown, plus
// the operations the rest of the compiler needs to reason about them
// (collection/map/record shape, numeric/boolean/string classification).
package types

// Type is the sealed sum every other package (resolver, typeinfer,
// codegen) narrows via a type switch.
type Type interface {
	typeNode()
	// SimpleName returns the unqualified, display-friendly name of the
	// type, e.g. "String", "List<Item>", "int[]".
	SimpleName() string
}

// PrimitiveKind enumerates the host's primitive types.
type PrimitiveKind int

const (
	Int PrimitiveKind = iota
	Long
	Double
	Float
	Boolean
	Char
	Byte
	Short
	Void
)

func (k PrimitiveKind) String() string {
	switch k {
	case Int:
		return "int"
	case Long:
		return "long"
	case Double:
		return "double"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Void:
		return "void"
	default:
		return "unknown-primitive"
	}
}

// Primitive is one of the host's primitive types.
type Primitive struct {
	Kind PrimitiveKind
}

func (*Primitive) typeNode() {}

func (p *Primitive) SimpleName() string { return p.Kind.String() }

// IsNumeric reports whether the primitive is a numeric kind.
func (p *Primitive) IsNumeric() bool {
	switch p.Kind {
	case Int, Long, Double, Float, Byte, Short:
		return true
	default:
		return false
	}
}

// IsBoolean reports whether the primitive is boolean.
func (p *Primitive) IsBoolean() bool { return p.Kind == Boolean }

// ClassKind classifies how a Class type behaves for navigation/codegen
// purposes. The resolver determines it in order: String name match first,
// then big-number / boxed-primitive set membership, then Map/Collection
// assignability, else Regular.
type ClassKind int

const (
	Regular ClassKind = iota
	Collection
	Map
	BoxedPrimitive
	BigNumeric
	StringKind
)

// Class is a reference type: a qualified name, shallow generic type
// arguments, a behavioral kind, and whether the host considers it a record
// (accessor methods named exactly after the property, no "get" prefix).
type Class struct {
	QualifiedName string
	TypeArgs      []Type
	Kind          ClassKind
	IsRecordType  bool
}

func (*Class) typeNode() {}

func (c *Class) SimpleName() string {
	name := simpleNameOf(c.QualifiedName)
	if len(c.TypeArgs) == 0 {
		return name
	}
	out := name + "<"
	for i, a := range c.TypeArgs {
		if i > 0 {
			out += ", "
		}
		out += a.SimpleName()
	}
	return out + ">"
}

func simpleNameOf(qualified string) string {
	last := 0
	for i := 0; i < len(qualified); i++ {
		if qualified[i] == '.' {
			last = i + 1
		}
	}
	return qualified[last:]
}

// Array is a fixed-dimension array of Component.
type Array struct {
	Component Type
}

func (*Array) typeNode() {}

func (a *Array) SimpleName() string { return a.Component.SimpleName() + "[]" }

// Unknown stands in for anything the resolver or type-inference visitor
// could not pin down: an unresolved class, an unresolved property, or the
// result of inference over ill-typed IR the analyzer already rejected.
// Unknown is never fatal: every consumer must treat it as a fallback to
// naive/untyped emission rather than a hard error.
type Unknown struct {
	Hint string
}

func (*Unknown) typeNode() {}

func (u *Unknown) SimpleName() string {
	if u.Hint != "" {
		return "?(" + u.Hint + ")"
	}
	return "?"
}

// Object is the host's universal reference supertype, used as the
// inferred type of a literal null and as the fallback return type for an
// unrecognized functional-interface default-message send.
func Object() Type {
	return &Class{QualifiedName: "java.lang.Object", Kind: Regular}
}
