// Package ast defines the sealed intermediate representation every later
// compiler stage (analyzer, resolver, typeinfer, expander, codegen) walks.
// Nodes are immutable values: no back-references, no cycles, no mutation
// after construction. Transformations (expansion, rewriting) rebuild trees
// rather than patch them in place.
package ast

// RuleModule is the root of the IR: one parsed rule module.
type RuleModule struct {
	Imports    []*Import
	Facts      []*Fact
	Globals    []*Global
	Outputs    []*Output
	DataTables []*DataTable
	Rules      []Rule
}

// Import binds a short alias to a fully-qualified host type name.
// Aliases are unique within a module.
type Import struct {
	Alias         string
	QualifiedName string
}

// Fact is a read-only input object visible to rules by name.
type Fact struct {
	Name          string
	QualifiedName string
	Description   string
}

// Global is an ambient read-only input referenced in source as "@Name".
type Global struct {
	Name          string
	QualifiedName string
	Description   string
}

// Output is a named mutable slot, optionally initialized, exposed via a
// getter in generated code.
type Output struct {
	Name          string
	QualifiedName string
	Initial       Expression // nil if no initial-value expression was given
	Description   string
}

// DataTable is an ordered, named table of expression-valued rows. Column
// headers and their order are given by Columns; each row holds one
// expression per column, aligned by index.
type DataTable struct {
	ID      string
	Columns []string
	Rows    []DataRow
}

// DataRow is one row of a DataTable: one expression per column, aligned by
// index with the owning table's Columns.
type DataRow struct {
	Cells []Expression
}
