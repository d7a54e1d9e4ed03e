package expander_test

import (
	"testing"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/expander"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_SimpleRulePassesThrough(t *testing.T) {
	module := &ast.RuleModule{Rules: []ast.Rule{&ast.SimpleRule{ID: "r1"}}}
	out, d := expander.Expand(module)
	require.Empty(t, d.Items())
	require.Len(t, out.Rules, 1)
	assert.Equal(t, "r1", out.Rules[0].RuleID())
}

// A template rule over a two-row table expands to two simple rules
// whose clauses are prefixed with per-column lets.
func TestExpand_TemplateRuleTwoRowTable(t *testing.T) {
	table := &ast.DataTable{
		ID:      "rates",
		Columns: []string{"itemType", "discountAmount"},
		Rows: []ast.DataRow{
			{Cells: []ast.Expression{&ast.StringLiteral{Value: "TypeA"}, &ast.NumberLiteral{Text: "10"}}},
			{Cells: []ast.Expression{&ast.StringLiteral{Value: "TypeB"}, &ast.NumberLiteral{Text: "20"}}},
		},
	}
	module := &ast.RuleModule{
		Rules: []ast.Rule{
			&ast.TemplateRule{
				ID:    "tr1",
				Table: table,
				When: []ast.Statement{&ast.ExprStatement{Expr: &ast.BinaryExpr{
					Left:  &ast.Navigation{Receiver: &ast.Identifier{Name: "item"}, Names: []string{"type"}},
					Op:    ast.OpEq,
					Right: &ast.Identifier{Name: "itemType"},
				}}},
				Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "discount"},
					Value:  &ast.Identifier{Name: "discountAmount"},
				}}},
			},
		},
	}

	out, d := expander.Expand(module)
	require.Empty(t, d.Items())
	require.Len(t, out.Rules, 2)

	row0 := out.Rules[0].(*ast.SimpleRule)
	require.Len(t, row0.When, 3, "2 column lets + 1 when expression")
	let0 := row0.When[0].(*ast.LetStatement)
	assert.Equal(t, "itemType", let0.Name)
	assert.Equal(t, "TypeA", let0.Value.(*ast.StringLiteral).Value)
}

func TestExpand_TemplateRule_NoRowsEmitsZeroMethods(t *testing.T) {
	module := &ast.RuleModule{
		Rules: []ast.Rule{
			&ast.TemplateRule{ID: "tr1", Table: &ast.DataTable{ID: "empty", Columns: []string{"a"}}},
		},
	}
	out, d := expander.Expand(module)
	require.Empty(t, d.Items())
	assert.Empty(t, out.Rules)
}

// A decision table with a one-parameter alias expands each row with the
// cell expression substituted into the alias body.
func TestExpand_DecisionTableParameterizedAlias(t *testing.T) {
	greeting := &ast.Block{
		Params: []string{"t"},
		Body: []ast.Statement{
			&ast.ExprStatement{Expr: &ast.Assignment{Target: &ast.Identifier{Name: "title"}, Value: &ast.Identifier{Name: "t"}}},
		},
	}
	module := &ast.RuleModule{
		Rules: []ast.Rule{
			&ast.DecisionTableRule{
				ID:    "dt1",
				Where: map[string]*ast.Block{"greeting": greeting},
				Rows: []ast.DecisionRow{
					{
						ID: "ADULT",
						When: []ast.Statement{&ast.ExprStatement{Expr: &ast.BinaryExpr{
							Left: &ast.Navigation{Receiver: &ast.Identifier{Name: "customer"}, Names: []string{"age"}}, Op: ast.OpGreaterEq, Right: &ast.NumberLiteral{Text: "18"},
						}}},
						Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.KeywordMessage{
							Receiver: &ast.Identifier{Name: "#greeting"},
							Parts:    []ast.KeywordPart{{Keyword: "", Argument: &ast.StringLiteral{Value: "Sir"}}},
						}}},
					},
				},
			},
		},
	}

	out, d := expander.Expand(module)
	require.Empty(t, d.Items())
	require.Len(t, out.Rules, 1)

	rule := out.Rules[0].(*ast.SimpleRule)
	assert.Equal(t, "dt1#ADULT", rule.ID)
	require.Len(t, rule.Then, 1)
	assign := rule.Then[0].(*ast.ExprStatement).Expr.(*ast.Assignment)
	assert.Equal(t, "title", assign.Target.(*ast.Identifier).Name)
	assert.Equal(t, "Sir", assign.Value.(*ast.StringLiteral).Value)
}

func TestExpand_DecisionTableParameterlessAlias(t *testing.T) {
	reset := &ast.Block{
		Body: []ast.Statement{
			&ast.ExprStatement{Expr: &ast.Assignment{Target: &ast.Identifier{Name: "discount"}, Value: &ast.NumberLiteral{Text: "0"}}},
		},
	}
	module := &ast.RuleModule{
		Rules: []ast.Rule{
			&ast.DecisionTableRule{
				ID:    "dt1",
				Where: map[string]*ast.Block{"reset": reset},
				Rows: []ast.DecisionRow{
					{ID: "R1", Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Identifier{Name: "#reset"}}}},
				},
			},
		},
	}
	out, d := expander.Expand(module)
	require.Empty(t, d.Items())
	rule := out.Rules[0].(*ast.SimpleRule)
	require.Len(t, rule.Then, 1)
	assign := rule.Then[0].(*ast.ExprStatement).Expr.(*ast.Assignment)
	assert.Equal(t, "0", assign.Value.(*ast.NumberLiteral).Text)
}

func TestExpand_UndeclaredAliasReported(t *testing.T) {
	module := &ast.RuleModule{
		Rules: []ast.Rule{
			&ast.DecisionTableRule{
				ID:    "dt1",
				Where: map[string]*ast.Block{},
				Rows: []ast.DecisionRow{
					{ID: "R1", Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Identifier{Name: "#missing"}}}},
				},
			},
		},
	}
	out, d := expander.Expand(module)
	assert.True(t, d.HasErrors())
	assert.Empty(t, out.Rules, "the offending row is skipped, not emitted half-expanded")
}
