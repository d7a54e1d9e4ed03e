package typeinfer_test

import (
	"testing"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/resolver/testclassloader"
	"github.com/rulelang/rulec/typeinfer"
	"github.com/rulelang/rulec/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture() (*typeinfer.Context, *typeinfer.Visitor) {
	module := &ast.RuleModule{
		Facts: []*ast.Fact{
			{Name: "item", QualifiedName: "com.acme.Item"},
			{Name: "cart", QualifiedName: "com.acme.ShoppingCart"},
		},
		Globals: []*ast.Global{
			{Name: "threshold", QualifiedName: "java.math.BigDecimal"},
		},
		Outputs: []*ast.Output{
			{Name: "discount", QualifiedName: "java.math.BigDecimal"},
		},
		DataTables: []*ast.DataTable{
			{ID: "rates", Columns: []string{"type", "rate"}},
			{ID: "wide", Columns: []string{"a", "b", "c"}},
		},
	}
	r := resolver.New(testclassloader.BuiltinRegistry())
	return typeinfer.NewContext(module, r), typeinfer.NewVisitor(r)
}

func TestInfer_Literals(t *testing.T) {
	ctx, v := newFixture()
	assert.True(t, types.IsString(v.Infer(ctx, &ast.StringLiteral{Value: "x"})))
	assert.True(t, types.IsNumeric(v.Infer(ctx, &ast.NumberLiteral{Text: "1.5"})))
	assert.True(t, types.IsBoolean(v.Infer(ctx, &ast.BoolLiteral{Value: true})))
}

func TestInfer_Identifier_PartitionPrecedence(t *testing.T) {
	ctx, v := newFixture()
	item := v.Infer(ctx, &ast.Identifier{Name: "item"})
	assert.Equal(t, "com.acme.Item", item.(*types.Class).QualifiedName)

	discount := v.Infer(ctx, &ast.Identifier{Name: "discount"})
	assert.True(t, types.IsNumeric(discount))

	global := v.Infer(ctx, &ast.Identifier{Name: "@threshold"})
	assert.True(t, types.IsNumeric(global))
}

func TestInfer_Identifier_LocalShadowsFact(t *testing.T) {
	ctx, v := newFixture()
	ctx.DeclareLocal("item", types.NewString())
	got := v.Infer(ctx, &ast.Identifier{Name: "item"})
	assert.True(t, types.IsString(got))
}

func TestInfer_DataTableIdentifier(t *testing.T) {
	ctx, v := newFixture()
	twoCol := v.Infer(ctx, &ast.Identifier{Name: "rates"})
	assert.True(t, types.IsMap(twoCol))

	wide := v.Infer(ctx, &ast.Identifier{Name: "wide"})
	assert.True(t, types.IsCollection(wide))
}

func TestInfer_Navigation_CollectionStaysCollection(t *testing.T) {
	ctx, v := newFixture()
	nav := &ast.Navigation{Receiver: &ast.Identifier{Name: "cart"}, Names: []string{"items", "name"}}
	got := v.Infer(ctx, nav)
	require.True(t, types.IsCollection(got))
	assert.True(t, types.IsString(types.ElementType(got)))
}

func TestInfer_BinaryArithmeticAndComparison(t *testing.T) {
	ctx, v := newFixture()
	add := &ast.BinaryExpr{Left: &ast.NumberLiteral{Text: "1"}, Op: ast.OpAdd, Right: &ast.NumberLiteral{Text: "2"}}
	assert.True(t, types.IsNumeric(v.Infer(ctx, add)))

	cmp := &ast.BinaryExpr{Left: &ast.NumberLiteral{Text: "1"}, Op: ast.OpGreaterEq, Right: &ast.NumberLiteral{Text: "2"}}
	assert.True(t, types.IsBoolean(v.Infer(ctx, cmp)))
}

func TestInfer_UnarySpecialSelectors(t *testing.T) {
	ctx, v := newFixture()
	nav := &ast.Navigation{Receiver: &ast.Identifier{Name: "cart"}, Names: []string{"items"}}
	assert.True(t, types.IsBoolean(v.Infer(ctx, &ast.UnaryMessage{Receiver: nav, Selector: "exists"})))
	assert.True(t, types.IsNumeric(v.Infer(ctx, &ast.UnaryMessage{Receiver: nav, Selector: "sum"})))
	size := v.Infer(ctx, &ast.UnaryMessage{Receiver: nav, Selector: "size"})
	assert.Equal(t, types.Int, size.(*types.Primitive).Kind)
}

func TestInfer_KeywordWhereOnCollectionPreservesType(t *testing.T) {
	ctx, v := newFixture()
	nav := &ast.Navigation{Receiver: &ast.Identifier{Name: "cart"}, Names: []string{"items"}}
	where := &ast.KeywordMessage{Receiver: nav, Parts: []ast.KeywordPart{{Keyword: "where", Argument: &ast.BoolLiteral{Value: true}}}}
	got := v.Infer(ctx, where)
	assert.True(t, types.IsCollection(got))
}

func TestInfer_Memoized(t *testing.T) {
	ctx, v := newFixture()
	lit := &ast.StringLiteral{Value: "x"}
	a := v.Infer(ctx, lit)
	b := v.Infer(ctx, lit)
	assert.Same(t, a, b)
}

func TestInfer_Assignment_TypeOfValue(t *testing.T) {
	ctx, v := newFixture()
	assign := &ast.Assignment{Target: &ast.Identifier{Name: "discount"}, Value: &ast.NumberLiteral{Text: "0"}}
	assert.True(t, types.IsNumeric(v.Infer(ctx, assign)))
}

func TestInfer_BlockTypeIsFinalStatement(t *testing.T) {
	ctx, v := newFixture()
	block := &ast.Block{
		Params: []string{"x"},
		Body: []ast.Statement{
			&ast.ExprStatement{Expr: &ast.BoolLiteral{Value: true}},
			&ast.ExprStatement{Expr: &ast.StringLiteral{Value: "last"}},
		},
	}
	assert.True(t, types.IsString(v.Infer(ctx, block)))
}

func TestInfer_EmptyBlockIsVoid(t *testing.T) {
	ctx, v := newFixture()
	got := v.Infer(ctx, &ast.Block{})
	assert.Equal(t, types.Void, got.(*types.Primitive).Kind)
}

func TestInfer_LetLeaksFromWhenToThen(t *testing.T) {
	ctx, v := newFixture()
	when := []ast.Statement{
		&ast.LetStatement{Name: "doubled", Value: &ast.NumberLiteral{Text: "2"}},
	}
	then := []ast.Statement{
		&ast.ExprStatement{Expr: &ast.Identifier{Name: "doubled"}},
	}
	v.InferAll(ctx, when)
	v.InferAll(ctx, then)
	got := v.Infer(ctx, &ast.Identifier{Name: "doubled"})
	assert.True(t, types.IsNumeric(got))
}

func TestRewriteModule_ImplicitParamBlock(t *testing.T) {
	module := &ast.RuleModule{
		Facts: []*ast.Fact{{Name: "item", QualifiedName: "com.acme.Item"}},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "r1",
				Then: []ast.Statement{
					&ast.ExprStatement{Expr: &ast.KeywordMessage{
						Receiver: &ast.Identifier{Name: "item"},
						Parts: []ast.KeywordPart{{
							Keyword: "where",
							Argument: &ast.Block{
								ImplicitParam: true,
								Body:          []ast.Statement{&ast.ExprStatement{Expr: &ast.Identifier{Name: "active"}}},
							},
						}},
					}},
				},
			},
		},
	}

	rewritten := typeinfer.RewriteModule(module)
	rule := rewritten.Rules[0].(*ast.SimpleRule)
	msg := rule.Then[0].(*ast.ExprStatement).Expr.(*ast.KeywordMessage)
	block := msg.Parts[0].Argument.(*ast.Block)

	require.False(t, block.ImplicitParam)
	require.Equal(t, []string{"it"}, block.Params)
	nav := block.Body[0].(*ast.ExprStatement).Expr.(*ast.Navigation)
	assert.Equal(t, "it", nav.Receiver.(*ast.Identifier).Name)
	assert.Equal(t, []string{"active"}, nav.Names)
}
