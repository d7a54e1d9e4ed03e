// Package irjson decodes the JSON IR fixture format the CLI's compile and
// check commands read in place of a front-end parser. The concrete
// grammar/lexer front-end lives outside this repo; irjson is the boundary
// a hand-written or tooling-generated fixture crosses to become an
// *ast.RuleModule before the rest of the pipeline ever sees it.
//
// The format mirrors ast's sealed sums with an explicit "kind" field per
// polymorphic node, decoded through an exhaustive switch exactly like the
// sealed-sum dispatch the rest of this repo uses.
package irjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rulelang/rulec/ast"
)

// DecodeFile reads and decodes a JSON IR fixture from path.
func DecodeFile(path string) (*ast.RuleModule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("irjson: open %s: %w", path, err)
	}
	defer f.Close()

	module, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("irjson: decode %s: %w", path, err)
	}
	return module, nil
}

// Decode reads a JSON IR fixture from r and builds the ast.RuleModule it
// describes.
func Decode(r io.Reader) (*ast.RuleModule, error) {
	var doc moduleDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toModule()
}

type moduleDoc struct {
	Imports    []importDoc       `json:"imports"`
	Facts      []factDoc         `json:"facts"`
	Globals    []factDoc         `json:"globals"`
	Outputs    []outputDoc       `json:"outputs"`
	DataTables []dataTableDoc    `json:"data_tables"`
	Rules      []json.RawMessage `json:"rules"`
}

type importDoc struct {
	Alias         string `json:"alias"`
	QualifiedName string `json:"qualified_name"`
}

type factDoc struct {
	Name          string `json:"name"`
	QualifiedName string `json:"qualified_name"`
	Description   string `json:"description"`
}

type outputDoc struct {
	Name          string          `json:"name"`
	QualifiedName string          `json:"qualified_name"`
	Description   string          `json:"description"`
	Initial       json.RawMessage `json:"initial"`
}

type dataTableDoc struct {
	ID      string              `json:"id"`
	Columns []string            `json:"columns"`
	Rows    [][]json.RawMessage `json:"rows"`
}

func (d *moduleDoc) toModule() (*ast.RuleModule, error) {
	m := &ast.RuleModule{}

	for _, imp := range d.Imports {
		m.Imports = append(m.Imports, &ast.Import{Alias: imp.Alias, QualifiedName: imp.QualifiedName})
	}
	for _, f := range d.Facts {
		m.Facts = append(m.Facts, &ast.Fact{Name: f.Name, QualifiedName: f.QualifiedName, Description: f.Description})
	}
	for _, g := range d.Globals {
		m.Globals = append(m.Globals, &ast.Global{Name: g.Name, QualifiedName: g.QualifiedName, Description: g.Description})
	}
	for _, o := range d.Outputs {
		out := &ast.Output{Name: o.Name, QualifiedName: o.QualifiedName, Description: o.Description}
		if len(o.Initial) > 0 {
			expr, err := decodeExpr(o.Initial)
			if err != nil {
				return nil, fmt.Errorf("output %q initial: %w", o.Name, err)
			}
			out.Initial = expr
		}
		m.Outputs = append(m.Outputs, out)
	}
	for _, dt := range d.DataTables {
		table, err := dt.toDataTable()
		if err != nil {
			return nil, err
		}
		m.DataTables = append(m.DataTables, table)
	}
	for i, raw := range d.Rules {
		rule, err := decodeRule(raw)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		m.Rules = append(m.Rules, rule)
	}

	return m, nil
}

func (dt dataTableDoc) toDataTable() (*ast.DataTable, error) {
	table := &ast.DataTable{ID: dt.ID, Columns: dt.Columns}
	for ri, row := range dt.Rows {
		var cells []ast.Expression
		for ci, raw := range row {
			expr, err := decodeExpr(raw)
			if err != nil {
				return nil, fmt.Errorf("data_table %q row %d col %d: %w", dt.ID, ri, ci, err)
			}
			cells = append(cells, expr)
		}
		table.Rows = append(table.Rows, ast.DataRow{Cells: cells})
	}
	return table, nil
}

// --- statements ---

type stmtEnvelope struct {
	Kind string `json:"kind"`
}

type exprStmtDoc struct {
	Expr json.RawMessage `json:"expr"`
}

type letStmtDoc struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

func decodeStmts(raws []json.RawMessage) ([]ast.Statement, error) {
	var out []ast.Statement
	for i, raw := range raws {
		stmt, err := decodeStmt(raw)
		if err != nil {
			return nil, fmt.Errorf("statement[%d]: %w", i, err)
		}
		out = append(out, stmt)
	}
	return out, nil
}

func decodeStmt(raw json.RawMessage) (ast.Statement, error) {
	var env stmtEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case "expr":
		var d exprStmtDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(d.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStatement{Expr: expr}, nil
	case "let":
		var d letStmtDoc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		value, err := decodeExpr(d.Value)
		if err != nil {
			return nil, err
		}
		return &ast.LetStatement{Name: d.Name, Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown statement kind %q", env.Kind)
	}
}

// --- expressions ---

type exprEnvelope struct {
	Kind string `json:"kind"`
}

func decodeExpr(raw json.RawMessage) (ast.Expression, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	var env exprEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case "identifier":
		var d struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.Identifier{Name: d.Name}, nil
	case "string":
		var d struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Value: d.Value}, nil
	case "number":
		var d struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.NumberLiteral{Text: d.Text}, nil
	case "bool":
		var d struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: d.Value}, nil
	case "null":
		return &ast.NullLiteral{}, nil
	case "list":
		var d struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		elems, err := decodeExprs(d.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Elements: elems}, nil
	case "set":
		var d struct {
			Elements []struct {
				Start json.RawMessage `json:"start"`
				End   json.RawMessage `json:"end,omitempty"`
			} `json:"elements"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		var elems []ast.RangeElement
		for i, e := range d.Elements {
			start, err := decodeExpr(e.Start)
			if err != nil {
				return nil, fmt.Errorf("set element[%d] start: %w", i, err)
			}
			re := ast.RangeElement{Start: start}
			if len(e.End) > 0 {
				end, err := decodeExpr(e.End)
				if err != nil {
					return nil, fmt.Errorf("set element[%d] end: %w", i, err)
				}
				re.End = end
			}
			elems = append(elems, re)
		}
		return &ast.SetLiteral{Elements: elems}, nil
	case "map":
		var d struct {
			Entries []struct {
				Key   json.RawMessage `json:"key"`
				Value json.RawMessage `json:"value"`
			} `json:"entries"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		var entries []ast.MapEntry
		for i, e := range d.Entries {
			key, err := decodeExpr(e.Key)
			if err != nil {
				return nil, fmt.Errorf("map entry[%d] key: %w", i, err)
			}
			value, err := decodeExpr(e.Value)
			if err != nil {
				return nil, fmt.Errorf("map entry[%d] value: %w", i, err)
			}
			entries = append(entries, ast.MapEntry{Key: key, Value: value})
		}
		return &ast.MapLiteral{Entries: entries}, nil
	case "binary":
		var d struct {
			Left  json.RawMessage `json:"left"`
			Op    string          `json:"op"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		left, err := decodeExpr(d.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(d.Right)
		if err != nil {
			return nil, err
		}
		op, err := decodeOp(d.Op)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Left: left, Op: op, Right: right}, nil
	case "assignment":
		var d struct {
			Target json.RawMessage `json:"target"`
			Value  json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target, err := decodeExpr(d.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(d.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Target: target, Value: value}, nil
	case "navigation":
		var d struct {
			Receiver json.RawMessage `json:"receiver"`
			Names    []string        `json:"names"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		receiver, err := decodeExpr(d.Receiver)
		if err != nil {
			return nil, err
		}
		return &ast.Navigation{Receiver: receiver, Names: d.Names}, nil
	case "unary":
		var d struct {
			Receiver json.RawMessage `json:"receiver"`
			Selector string          `json:"selector"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		receiver, err := decodeExpr(d.Receiver)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryMessage{Receiver: receiver, Selector: d.Selector}, nil
	case "keyword":
		var d struct {
			Receiver json.RawMessage `json:"receiver"`
			Parts    []struct {
				Keyword  string          `json:"keyword"`
				Argument json.RawMessage `json:"argument"`
			} `json:"parts"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		receiver, err := decodeExpr(d.Receiver)
		if err != nil {
			return nil, err
		}
		var parts []ast.KeywordPart
		for i, p := range d.Parts {
			arg, err := decodeExpr(p.Argument)
			if err != nil {
				return nil, fmt.Errorf("keyword part[%d] argument: %w", i, err)
			}
			parts = append(parts, ast.KeywordPart{Keyword: p.Keyword, Argument: arg})
		}
		return &ast.KeywordMessage{Receiver: receiver, Parts: parts}, nil
	case "default":
		var d struct {
			Receiver json.RawMessage `json:"receiver"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		receiver, err := decodeExpr(d.Receiver)
		if err != nil {
			return nil, err
		}
		return &ast.DefaultMessage{Receiver: receiver}, nil
	case "block":
		var d struct {
			Params        []string          `json:"params"`
			Body          []json.RawMessage `json:"body"`
			ImplicitParam bool              `json:"implicit_param"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		body, err := decodeStmts(d.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Params: d.Params, Body: body, ImplicitParam: d.ImplicitParam}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", env.Kind)
	}
}

func decodeExprs(raws []json.RawMessage) ([]ast.Expression, error) {
	var out []ast.Expression
	for i, raw := range raws {
		expr, err := decodeExpr(raw)
		if err != nil {
			return nil, fmt.Errorf("expression[%d]: %w", i, err)
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeOp(op string) (ast.BinaryOp, error) {
	switch op {
	case "+":
		return ast.OpAdd, nil
	case "-":
		return ast.OpSub, nil
	case "*":
		return ast.OpMul, nil
	case "/":
		return ast.OpDiv, nil
	case "=":
		return ast.OpEq, nil
	case "~=":
		return ast.OpNotEq, nil
	case ">":
		return ast.OpGreater, nil
	case ">=":
		return ast.OpGreaterEq, nil
	case "<":
		return ast.OpLess, nil
	case "<=":
		return ast.OpLessEq, nil
	default:
		return 0, fmt.Errorf("unknown binary operator %q", op)
	}
}

// --- rules ---

type ruleEnvelope struct {
	Kind string `json:"kind"`
}

func decodeRule(raw json.RawMessage) (ast.Rule, error) {
	var env ruleEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case "simple":
		var d struct {
			ID          string            `json:"id"`
			Description string            `json:"description"`
			When        []json.RawMessage `json:"when"`
			Then        []json.RawMessage `json:"then"`
			Else        []json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		when, err := decodeStmts(d.When)
		if err != nil {
			return nil, fmt.Errorf("rule %q when: %w", d.ID, err)
		}
		then, err := decodeStmts(d.Then)
		if err != nil {
			return nil, fmt.Errorf("rule %q then: %w", d.ID, err)
		}
		els, err := decodeStmts(d.Else)
		if err != nil {
			return nil, fmt.Errorf("rule %q else: %w", d.ID, err)
		}
		return &ast.SimpleRule{ID: d.ID, Description: d.Description, When: when, Then: then, Else: els}, nil
	case "template":
		var d struct {
			ID          string            `json:"id"`
			Description string            `json:"description"`
			Table       dataTableDoc      `json:"table"`
			When        []json.RawMessage `json:"when"`
			Then        []json.RawMessage `json:"then"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		table, err := d.Table.toDataTable()
		if err != nil {
			return nil, fmt.Errorf("rule %q table: %w", d.ID, err)
		}
		when, err := decodeStmts(d.When)
		if err != nil {
			return nil, fmt.Errorf("rule %q when: %w", d.ID, err)
		}
		then, err := decodeStmts(d.Then)
		if err != nil {
			return nil, fmt.Errorf("rule %q then: %w", d.ID, err)
		}
		return &ast.TemplateRule{ID: d.ID, Description: d.Description, Table: table, When: when, Then: then}, nil
	case "decision_table":
		var d struct {
			ID          string `json:"id"`
			Description string `json:"description"`
			Rows        []struct {
				ID   string            `json:"id"`
				When []json.RawMessage `json:"when"`
				Then []json.RawMessage `json:"then"`
			} `json:"rows"`
			Where map[string]json.RawMessage `json:"where"`
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		rule := &ast.DecisionTableRule{ID: d.ID, Description: d.Description, Where: map[string]*ast.Block{}}
		for _, row := range d.Rows {
			when, err := decodeStmts(row.When)
			if err != nil {
				return nil, fmt.Errorf("rule %q row %q when: %w", d.ID, row.ID, err)
			}
			then, err := decodeStmts(row.Then)
			if err != nil {
				return nil, fmt.Errorf("rule %q row %q then: %w", d.ID, row.ID, err)
			}
			rule.Rows = append(rule.Rows, ast.DecisionRow{ID: row.ID, When: when, Then: then})
		}
		for name, raw := range d.Where {
			expr, err := decodeExpr(raw)
			if err != nil {
				return nil, fmt.Errorf("rule %q alias %q: %w", d.ID, name, err)
			}
			block, ok := expr.(*ast.Block)
			if !ok {
				return nil, fmt.Errorf("rule %q alias %q: where entries must be block expressions", d.ID, name)
			}
			rule.Where[name] = block
		}
		return rule, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", env.Kind)
	}
}
