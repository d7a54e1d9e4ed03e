package ast

import "fmt"

// MergeConflictError reports that two modules being merged declare the
// same name in the same partition in a way Merge cannot union (see Merge).
type MergeConflictError struct {
	Partition string
	Name      string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict: %s %q declared with different shape in multiple modules", e.Partition, e.Name)
}

// Merge combines partial modules into one by a by-name union per
// partition. Imports, facts, globals and outputs sharing a name collapse
// into the first declaration when their qualified names match (no other
// field, such as the description, is compared); differing qualified names
// are a MergeConflictError. A data-table id or rule id that appears more
// than once is always a MergeConflictError. Source order is preserved: a module's
// declarations are appended in the order the modules are given, skipping
// duplicates already carried over.
func Merge(modules ...*RuleModule) (*RuleModule, error) {
	out := &RuleModule{}

	imports := map[string]*Import{}
	facts := map[string]*Fact{}
	globals := map[string]*Global{}
	outputs := map[string]*Output{}
	tables := map[string]*DataTable{}
	rules := map[string]Rule{}

	for _, m := range modules {
		if m == nil {
			continue
		}
		for _, im := range m.Imports {
			if existing, ok := imports[im.Alias]; ok {
				if existing.QualifiedName != im.QualifiedName {
					return nil, &MergeConflictError{Partition: "import", Name: im.Alias}
				}
				continue
			}
			imports[im.Alias] = im
			out.Imports = append(out.Imports, im)
		}
		for _, f := range m.Facts {
			if existing, ok := facts[f.Name]; ok {
				if existing.QualifiedName != f.QualifiedName {
					return nil, &MergeConflictError{Partition: "fact", Name: f.Name}
				}
				continue
			}
			facts[f.Name] = f
			out.Facts = append(out.Facts, f)
		}
		for _, g := range m.Globals {
			if existing, ok := globals[g.Name]; ok {
				if existing.QualifiedName != g.QualifiedName {
					return nil, &MergeConflictError{Partition: "global", Name: g.Name}
				}
				continue
			}
			globals[g.Name] = g
			out.Globals = append(out.Globals, g)
		}
		for _, o := range m.Outputs {
			if existing, ok := outputs[o.Name]; ok {
				if existing.QualifiedName != o.QualifiedName {
					return nil, &MergeConflictError{Partition: "output", Name: o.Name}
				}
				continue
			}
			outputs[o.Name] = o
			out.Outputs = append(out.Outputs, o)
		}
		for _, t := range m.DataTables {
			if _, ok := tables[t.ID]; ok {
				return nil, &MergeConflictError{Partition: "data-table", Name: t.ID}
			}
			tables[t.ID] = t
			out.DataTables = append(out.DataTables, t)
		}
		for _, r := range m.Rules {
			if _, ok := rules[r.RuleID()]; ok {
				return nil, &MergeConflictError{Partition: "rule", Name: r.RuleID()}
			}
			rules[r.RuleID()] = r
			out.Rules = append(out.Rules, r)
		}
	}

	return out, nil
}
