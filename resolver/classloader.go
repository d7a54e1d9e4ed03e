package resolver

// ClassLoader is the opaque host-runtime hook behind the compiler's
// TypeClassLoader option: a stand-in for Java reflection that the
// Resolver consults to turn a qualified class name into a description of
// its shape (record-ness, Collection/Map assignability, zero-arg member
// return types).
//
// Production wiring is expected to adapt an actual JVM classpath scanner
// behind this interface; this repo ships only the in-memory
// resolver/testclassloader fixture used by tests and by the CLI when no
// real classpath is configured.
type ClassLoader interface {
	// LoadClass returns a description of qualifiedName's shape, or
	// ok=false if the class cannot be found. A ClassLoader must never
	// return an error for "not found"; that is a normal, non-fatal
	// resolution failure the Resolver turns into Unknown.
	LoadClass(qualifiedName string) (ClassRef, bool)
}

// ClassRef describes one host class's shape as the resolver needs it.
type ClassRef interface {
	QualifiedName() string

	// IsRecordType reports whether the host considers this class a
	// record (accessors named exactly after the property, no "get"/"is"
	// prefix).
	IsRecordType() bool

	// IsCollectionType reports whether this class is assignable to the
	// host's Collection supertype.
	IsCollectionType() bool

	// IsMapType reports whether this class is assignable to the host's
	// Map supertype.
	IsMapType() bool

	// ZeroArgMember returns the declared return-type name (resolver
	// syntax: a qualified name, optionally with shallow "<Arg,...>"
	// generics or a "[]" array suffix) of a zero-argument member named
	// exactly memberName, or ok=false if no such member exists.
	ZeroArgMember(memberName string) (typeName string, ok bool)
}
