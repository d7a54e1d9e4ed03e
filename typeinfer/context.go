// Package typeinfer implements the type-inference context and visitor: a
// four-partition symbol table (facts, globals, outputs, data-tables) plus
// a chained local-variable scope, and a visitor that computes and
// memoizes a types.Type for every ast.Expression.
package typeinfer

import (
	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/types"
)

// Context is the symbol table a Visitor consults while inferring. Facts,
// globals, outputs, and data-tables are shared by every scope derived from
// the same module; only the local partition narrows per child scope.
type Context struct {
	facts      map[string]types.Type
	globals    map[string]types.Type
	outputs    map[string]types.Type
	dataTables map[string]types.Type
	locals     map[string]types.Type
	parent     *Context
}

// NewContext builds the root Context for module, resolving every
// fact/global/output's declared type through r. A data table with exactly
// two columns resolves to a Map; any other column count resolves to a
// List of row-maps.
func NewContext(module *ast.RuleModule, r *resolver.Resolver) *Context {
	facts := make(map[string]types.Type, len(module.Facts))
	for _, f := range module.Facts {
		facts[f.Name] = r.Resolve(f.QualifiedName)
	}
	globals := make(map[string]types.Type, len(module.Globals))
	for _, g := range module.Globals {
		globals[g.Name] = r.Resolve(g.QualifiedName)
	}
	outputs := make(map[string]types.Type, len(module.Outputs))
	for _, o := range module.Outputs {
		outputs[o.Name] = r.Resolve(o.QualifiedName)
	}
	dataTables := make(map[string]types.Type, len(module.DataTables))
	for _, dt := range module.DataTables {
		row := types.NewMap("java.util.Map", types.NewString(), types.Object())
		if len(dt.Columns) == 2 {
			dataTables[dt.ID] = row
		} else {
			dataTables[dt.ID] = types.NewCollection("java.util.List", row)
		}
	}
	return &Context{
		facts:      facts,
		globals:    globals,
		outputs:    outputs,
		dataTables: dataTables,
		locals:     map[string]types.Type{},
	}
}

// NewChild returns a scope inheriting the receiver's shared partitions but
// starting with an empty local partition; mutations to the child's locals
// are never visible to the parent.
func (c *Context) NewChild() *Context {
	return &Context{
		facts:      c.facts,
		globals:    c.globals,
		outputs:    c.outputs,
		dataTables: c.dataTables,
		locals:     map[string]types.Type{},
		parent:     c,
	}
}

// DeclareLocal binds name to t in the receiver's local partition. Calling
// this on the same Context used across a rule's when/then/else statements
// is how a when-clause let leaks into the then- and else-clauses: they
// share one scope rather than each getting a child.
func (c *Context) DeclareLocal(name string, t types.Type) {
	c.locals[name] = t
}

func (c *Context) lookupLocal(name string) (types.Type, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if t, ok := cur.locals[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Lookup resolves a bare (non-"@") identifier using the partition
// precedence order: local, then fact, then output, then data-table.
func (c *Context) Lookup(name string) types.Type {
	if t, ok := c.lookupLocal(name); ok {
		return t
	}
	if t, ok := c.facts[name]; ok {
		return t
	}
	if t, ok := c.outputs[name]; ok {
		return t
	}
	if t, ok := c.dataTables[name]; ok {
		return t
	}
	return &types.Unknown{Hint: "unresolved identifier " + name}
}

// LookupGlobal resolves a "@name" identifier's bare name against the
// global partition only.
func (c *Context) LookupGlobal(name string) types.Type {
	if t, ok := c.globals[name]; ok {
		return t
	}
	return &types.Unknown{Hint: "unresolved global " + name}
}
