package types

// IsCollection reports whether t is a Collection-kind Class.
func IsCollection(t Type) bool {
	c, ok := t.(*Class)
	return ok && c.Kind == Collection
}

// IsMap reports whether t is a Map-kind Class.
func IsMap(t Type) bool {
	c, ok := t.(*Class)
	return ok && c.Kind == Map
}

// IsRecord reports whether t is a Class the host considers a record type.
func IsRecord(t Type) bool {
	c, ok := t.(*Class)
	return ok && c.IsRecordType
}

// IsString reports whether t is the String class.
func IsString(t Type) bool {
	c, ok := t.(*Class)
	return ok && c.Kind == StringKind
}

// IsNumeric reports whether t is a numeric primitive, a boxed-primitive
// numeric class, or a big-numeric class (BigDecimal/BigInteger).
func IsNumeric(t Type) bool {
	switch v := t.(type) {
	case *Primitive:
		return v.IsNumeric()
	case *Class:
		return v.Kind == BigNumeric || v.Kind == BoxedPrimitive
	default:
		return false
	}
}

// IsBoolean reports whether t is boolean, primitive or boxed.
func IsBoolean(t Type) bool {
	switch v := t.(type) {
	case *Primitive:
		return v.IsBoolean()
	case *Class:
		return v.Kind == BoxedPrimitive && simpleNameOf(v.QualifiedName) == "Boolean"
	default:
		return false
	}
}

// ElementType returns a Collection's or Array's element type. For any
// other shape (including Unknown) it returns the receiver itself.
func ElementType(t Type) Type {
	switch v := t.(type) {
	case *Class:
		if v.Kind == Collection && len(v.TypeArgs) > 0 {
			return v.TypeArgs[0]
		}
		if v.Kind == Collection {
			return &Unknown{Hint: "collection element"}
		}
	case *Array:
		return v.Component
	}
	return t
}

// KeyType returns a Map's key type, or Unknown if t is not a Map.
func KeyType(t Type) Type {
	c, ok := t.(*Class)
	if !ok || c.Kind != Map || len(c.TypeArgs) < 1 {
		return &Unknown{Hint: "map key"}
	}
	return c.TypeArgs[0]
}

// ValueType returns a Map's value type, or Unknown if t is not a Map.
func ValueType(t Type) Type {
	c, ok := t.(*Class)
	if !ok || c.Kind != Map || len(c.TypeArgs) < 2 {
		return &Unknown{Hint: "map value"}
	}
	return c.TypeArgs[1]
}

// NewCollection builds a Collection-kind Class over element.
func NewCollection(qualifiedName string, element Type) *Class {
	return &Class{QualifiedName: qualifiedName, Kind: Collection, TypeArgs: []Type{element}}
}

// NewMap builds a Map-kind Class over (key, value).
func NewMap(qualifiedName string, key, value Type) *Class {
	return &Class{QualifiedName: qualifiedName, Kind: Map, TypeArgs: []Type{key, value}}
}

// NewString builds the String class.
func NewString() *Class {
	return &Class{QualifiedName: "java.lang.String", Kind: StringKind}
}

// NewBigDecimal builds the BigDecimal big-numeric class, the canonical
// type of a decimal number literal.
func NewBigDecimal() *Class {
	return &Class{QualifiedName: "java.math.BigDecimal", Kind: BigNumeric}
}
