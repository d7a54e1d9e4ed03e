// Package testclassloader is an in-memory resolver.ClassLoader fixture
// standing in for Java reflection in tests and in the CLI's "no classpath
// configured" fallback. It is not a runtime-helpers implementation; it
// only answers the shape questions resolver.ClassLoader asks.
package testclassloader

import "github.com/rulelang/rulec/resolver"

// Member describes one zero-arg member (record component or bean-style
// accessor) of a registered class.
type Member struct {
	Name     string
	TypeName string
}

// ClassDef is one class's registered shape.
type ClassDef struct {
	QualifiedName string
	IsRecord      bool
	IsCollection  bool
	IsMap         bool
	Members       []Member
}

// Loader is a small registry of ClassDef values keyed by qualified name.
type Loader struct {
	classes map[string]*classRef
}

// New builds a Loader pre-populated with classes.
func New(classes ...ClassDef) *Loader {
	l := &Loader{classes: map[string]*classRef{}}
	for _, c := range classes {
		l.Register(c)
	}
	return l
}

// Register adds or replaces a class definition.
func (l *Loader) Register(c ClassDef) {
	members := map[string]string{}
	for _, m := range c.Members {
		members[m.Name] = m.TypeName
	}
	l.classes[c.QualifiedName] = &classRef{def: c, members: members}
}

// LoadClass implements resolver.ClassLoader.
func (l *Loader) LoadClass(qualifiedName string) (resolver.ClassRef, bool) {
	ref, ok := l.classes[qualifiedName]
	return ref, ok
}

type classRef struct {
	def     ClassDef
	members map[string]string
}

func (c *classRef) QualifiedName() string  { return c.def.QualifiedName }
func (c *classRef) IsRecordType() bool     { return c.def.IsRecord }
func (c *classRef) IsCollectionType() bool { return c.def.IsCollection }
func (c *classRef) IsMapType() bool        { return c.def.IsMap }

func (c *classRef) ZeroArgMember(name string) (string, bool) {
	t, ok := c.members[name]
	return t, ok
}

// BuiltinRegistry returns a Loader covering the host types small rule
// modules commonly reference: String, BigDecimal, the common JDK
// collection interfaces, and a few sample fact/record shapes (Item,
// Customer, ShoppingCart).
func BuiltinRegistry() *Loader {
	return New(
		ClassDef{QualifiedName: "java.lang.String"},
		ClassDef{QualifiedName: "java.math.BigDecimal"},
		ClassDef{QualifiedName: "java.lang.Boolean"},
		ClassDef{QualifiedName: "java.util.List", IsCollection: true},
		ClassDef{QualifiedName: "java.util.Set", IsCollection: true},
		ClassDef{QualifiedName: "java.util.Map", IsMap: true},
		ClassDef{
			QualifiedName: "com.acme.Item",
			IsRecord:      true,
			Members: []Member{
				{Name: "type", TypeName: "java.lang.String"},
				{Name: "active", TypeName: "boolean"},
				{Name: "name", TypeName: "java.lang.String"},
			},
		},
		ClassDef{
			QualifiedName: "com.acme.Customer",
			IsRecord:      true,
			Members: []Member{
				{Name: "age", TypeName: "java.math.BigDecimal"},
			},
		},
		ClassDef{
			QualifiedName: "com.acme.ShoppingCart",
			IsRecord:      true,
			Members: []Member{
				{Name: "items", TypeName: "java.util.List<com.acme.Item>"},
			},
		},
	)
}
