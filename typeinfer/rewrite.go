package typeinfer

import "github.com/rulelang/rulec/ast"

// RewriteModule applies the implicit-parameter block rewrite to every
// block in module, returning a new module tree. This is a pure,
// one-shot tree-to-tree transform; run it once, before type inference, so
// inferred types and generated code stay consistent; a block rewritten
// after inference would carry stale cached types for its old body.
func RewriteModule(module *ast.RuleModule) *ast.RuleModule {
	outputs := make([]*ast.Output, len(module.Outputs))
	for i, o := range module.Outputs {
		outputs[i] = &ast.Output{Name: o.Name, QualifiedName: o.QualifiedName, Description: o.Description}
		if o.Initial != nil {
			outputs[i].Initial = walkExpr(o.Initial)
		}
	}

	dataTables := make([]*ast.DataTable, len(module.DataTables))
	for i, dt := range module.DataTables {
		dataTables[i] = rewriteDataTable(dt)
	}

	rules := make([]ast.Rule, len(module.Rules))
	for i, r := range module.Rules {
		rules[i] = rewriteRule(r)
	}

	return &ast.RuleModule{
		Imports:    module.Imports,
		Facts:      module.Facts,
		Globals:    module.Globals,
		Outputs:    outputs,
		DataTables: dataTables,
		Rules:      rules,
	}
}

func rewriteRule(r ast.Rule) ast.Rule {
	switch v := r.(type) {
	case *ast.SimpleRule:
		out := &ast.SimpleRule{
			ID:          v.ID,
			Description: v.Description,
			When:        walkStatements(v.When),
			Then:        walkStatements(v.Then),
		}
		if v.Else != nil {
			out.Else = walkStatements(v.Else)
		}
		return out
	case *ast.TemplateRule:
		return &ast.TemplateRule{
			ID:          v.ID,
			Description: v.Description,
			Table:       rewriteDataTable(v.Table),
			When:        walkStatements(v.When),
			Then:        walkStatements(v.Then),
		}
	case *ast.DecisionTableRule:
		rows := make([]ast.DecisionRow, len(v.Rows))
		for i, row := range v.Rows {
			rows[i] = ast.DecisionRow{ID: row.ID, When: walkStatements(row.When), Then: walkStatements(row.Then)}
		}
		where := make(map[string]*ast.Block, len(v.Where))
		for name, b := range v.Where {
			where[name] = walkBlock(b)
		}
		return &ast.DecisionTableRule{ID: v.ID, Description: v.Description, Rows: rows, Where: where}
	}
	return r
}

func rewriteDataTable(dt *ast.DataTable) *ast.DataTable {
	if dt == nil {
		return nil
	}
	rows := make([]ast.DataRow, len(dt.Rows))
	for i, row := range dt.Rows {
		cells := make([]ast.Expression, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = walkExpr(c)
		}
		rows[i] = ast.DataRow{Cells: cells}
	}
	return &ast.DataTable{ID: dt.ID, Columns: dt.Columns, Rows: rows}
}

func walkStatements(stmts []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = walkStatement(s)
	}
	return out
}

func walkStatement(s ast.Statement) ast.Statement {
	switch st := s.(type) {
	case *ast.ExprStatement:
		return &ast.ExprStatement{Expr: walkExpr(st.Expr)}
	case *ast.LetStatement:
		return &ast.LetStatement{Name: st.Name, Value: walkExpr(st.Value)}
	}
	return s
}

// walkExpr rebuilds e, descending into every child expression position so
// an implicit-parameter block anywhere in the tree gets normalized.
func walkExpr(e ast.Expression) ast.Expression {
	switch v := e.(type) {
	case nil:
		return nil
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{Left: walkExpr(v.Left), Op: v.Op, Right: walkExpr(v.Right)}
	case *ast.Assignment:
		return &ast.Assignment{Target: walkExpr(v.Target), Value: walkExpr(v.Value)}
	case *ast.Navigation:
		return &ast.Navigation{Receiver: walkExpr(v.Receiver), Names: v.Names}
	case *ast.UnaryMessage:
		return &ast.UnaryMessage{Receiver: walkExpr(v.Receiver), Selector: v.Selector}
	case *ast.KeywordMessage:
		parts := make([]ast.KeywordPart, len(v.Parts))
		for i, p := range v.Parts {
			parts[i] = ast.KeywordPart{Keyword: p.Keyword, Argument: walkExpr(p.Argument)}
		}
		return &ast.KeywordMessage{Receiver: walkExpr(v.Receiver), Parts: parts}
	case *ast.DefaultMessage:
		return &ast.DefaultMessage{Receiver: walkExpr(v.Receiver)}
	case *ast.ListLiteral:
		elems := make([]ast.Expression, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = walkExpr(el)
		}
		return &ast.ListLiteral{Elements: elems}
	case *ast.SetLiteral:
		elems := make([]ast.RangeElement, len(v.Elements))
		for i, el := range v.Elements {
			re := ast.RangeElement{Start: walkExpr(el.Start)}
			if el.End != nil {
				re.End = walkExpr(el.End)
			}
			elems[i] = re
		}
		return &ast.SetLiteral{Elements: elems}
	case *ast.MapLiteral:
		entries := make([]ast.MapEntry, len(v.Entries))
		for i, en := range v.Entries {
			entries[i] = ast.MapEntry{Key: walkExpr(en.Key), Value: walkExpr(en.Value)}
		}
		return &ast.MapLiteral{Entries: entries}
	case *ast.Block:
		return walkBlock(v)
	default:
		return e
	}
}

func walkBlock(b *ast.Block) *ast.Block {
	if !b.ImplicitParam {
		return &ast.Block{Params: b.Params, Body: walkStatements(b.Body)}
	}

	body := make([]ast.Statement, len(b.Body))
	for i, s := range b.Body {
		switch st := s.(type) {
		case *ast.ExprStatement:
			body[i] = &ast.ExprStatement{Expr: walkExpr(substituteImplicitParam(st.Expr))}
		case *ast.LetStatement:
			body[i] = &ast.LetStatement{Name: st.Name, Value: walkExpr(substituteImplicitParam(st.Value))}
		default:
			body[i] = s
		}
	}
	return &ast.Block{Params: []string{"it"}, Body: body}
}

// substituteImplicitParam replaces every bare Identifier(x) with
// Navigation(Identifier("it"), [x]); BinaryExpr, Navigation, and
// UnaryMessage propagate the substitution through their receiver/left
// position only, a compromise matching the surface semantics of shorthand
// blocks. Every other expression form is left untouched here; walkExpr
// (called by the caller) still descends into it to find any further
// nested implicit blocks.
func substituteImplicitParam(e ast.Expression) ast.Expression {
	switch v := e.(type) {
	case *ast.Identifier:
		return &ast.Navigation{Receiver: &ast.Identifier{Name: "it"}, Names: []string{v.Name}}
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{Left: substituteImplicitParam(v.Left), Op: v.Op, Right: v.Right}
	case *ast.Navigation:
		return &ast.Navigation{Receiver: substituteImplicitParam(v.Receiver), Names: v.Names}
	case *ast.UnaryMessage:
		return &ast.UnaryMessage{Receiver: substituteImplicitParam(v.Receiver), Selector: v.Selector}
	default:
		return e
	}
}
