package codegen_test

import (
	"strings"
	"testing"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/codegen"
	"github.com/rulelang/rulec/resolver"
	"github.com/rulelang/rulec/resolver/testclassloader"
	"github.com/stretchr/testify/assert"
)

func newResolver() *resolver.Resolver {
	return resolver.New(testclassloader.BuiltinRegistry())
}

// One fact, one initialized output, one equality-guarded rule.
func TestGenerate_WigglyDollDiscount(t *testing.T) {
	module := &ast.RuleModule{
		Facts: []*ast.Fact{{Name: "item", QualifiedName: "com.acme.Item"}},
		Outputs: []*ast.Output{
			{Name: "discount", QualifiedName: "java.math.BigDecimal", Initial: &ast.NumberLiteral{Text: "100"}},
		},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "R1",
				When: []ast.Statement{&ast.ExprStatement{Expr: &ast.BinaryExpr{
					Left:  &ast.Navigation{Receiver: &ast.Identifier{Name: "item"}, Names: []string{"type"}},
					Op:    ast.OpEq,
					Right: &ast.StringLiteral{Value: "WigglyDoll"},
				}}},
				Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "discount"},
					Value:  &ast.NumberLiteral{Text: "0"},
				}}},
			},
		},
	}

	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "WigglyDollRules"})

	assert.Contains(t, out, "public class WigglyDollRules {")
	assert.Contains(t, out, `private BigDecimal discount = Runtime.toBigDecimal(new BigDecimal("100"));`)
	assert.Contains(t, out, `private void ruleR1() {`)
	assert.Contains(t, out, `if (Runtime.equalsNumericAware(item.type(), "WigglyDoll")) {`)
	assert.Contains(t, out, `discount = Runtime.toBigDecimal(new BigDecimal("0"));`)
	assert.Contains(t, out, "public void evaluate() {")
	assert.Contains(t, out, "ruleR1();")
	assert.Contains(t, out, "public BigDecimal getDiscount() {")
}

// A comparison when-clause with both then and else branches.
func TestGenerate_AgeCategoryWithElse(t *testing.T) {
	module := &ast.RuleModule{
		Facts: []*ast.Fact{{Name: "customer", QualifiedName: "com.acme.Customer"}},
		Outputs: []*ast.Output{
			{Name: "category", QualifiedName: "java.lang.String", Initial: &ast.StringLiteral{Value: "unknown"}},
		},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "R1",
				When: []ast.Statement{&ast.ExprStatement{Expr: &ast.BinaryExpr{
					Left:  &ast.Navigation{Receiver: &ast.Identifier{Name: "customer"}, Names: []string{"age"}},
					Op:    ast.OpGreaterEq,
					Right: &ast.NumberLiteral{Text: "18"},
				}}},
				Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "category"},
					Value:  &ast.StringLiteral{Value: "adult"},
				}}},
				Else: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "category"},
					Value:  &ast.StringLiteral{Value: "minor"},
				}}},
			},
		},
	}

	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "AgeRules"})

	assert.Contains(t, out, `if ((Runtime.compareNumeric(customer.age(), new BigDecimal("18")) >= 0)) {`)
	assert.Contains(t, out, `category = "adult";`)
	assert.Contains(t, out, "} else {")
	assert.Contains(t, out, `category = "minor";`)
}

// Filtering a collection with where: and an explicit-parameter block.
func TestGenerate_CollectionFilteringWithWhereBlock(t *testing.T) {
	module := &ast.RuleModule{
		Facts:   []*ast.Fact{{Name: "cart", QualifiedName: "com.acme.ShoppingCart"}},
		Outputs: []*ast.Output{{Name: "result", QualifiedName: "java.util.List"}},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "R1",
				Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "result"},
					Value: &ast.KeywordMessage{
						Receiver: &ast.Navigation{Receiver: &ast.Identifier{Name: "cart"}, Names: []string{"items"}},
						Parts: []ast.KeywordPart{{Keyword: "where", Argument: &ast.Block{
							Params: []string{"item"},
							Body: []ast.Statement{&ast.ExprStatement{Expr: &ast.Navigation{
								Receiver: &ast.Identifier{Name: "item"}, Names: []string{"active"},
							}}},
						}}},
					},
				}}},
			},
		},
	}

	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "CartRules"})

	assert.Contains(t, out, "cart.items().stream().filter((item) -> item.active()).toList()")
}

// A decision-table row already expanded by the expander (parameterized
// alias inlined) feeding into codegen.
func TestGenerate_DecisionTableParameterizedAlias(t *testing.T) {
	module := &ast.RuleModule{
		Facts:   []*ast.Fact{{Name: "customer", QualifiedName: "com.acme.Customer"}},
		Outputs: []*ast.Output{{Name: "title", QualifiedName: "java.lang.String"}},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "dt1#ADULT",
				When: []ast.Statement{&ast.ExprStatement{Expr: &ast.BinaryExpr{
					Left:  &ast.Navigation{Receiver: &ast.Identifier{Name: "customer"}, Names: []string{"age"}},
					Op:    ast.OpGreaterEq,
					Right: &ast.NumberLiteral{Text: "18"},
				}}},
				Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "title"},
					Value:  &ast.StringLiteral{Value: "Sir"},
				}}},
			},
		},
	}

	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "GreetingRules"})

	assert.Contains(t, out, "private void ruleDt1ADULT() {")
	assert.Contains(t, out, `title = "Sir";`)
}

// Template-rule rows already expanded into per-row let-bindings feeding
// into codegen.
func TestGenerate_TemplateRuleOverTwoRowTable(t *testing.T) {
	module := &ast.RuleModule{
		Facts:   []*ast.Fact{{Name: "item", QualifiedName: "com.acme.Item"}},
		Outputs: []*ast.Output{{Name: "discount", QualifiedName: "java.math.BigDecimal"}},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "tr1#0",
				When: []ast.Statement{
					&ast.LetStatement{Name: "itemType", Value: &ast.StringLiteral{Value: "TypeA"}},
					&ast.LetStatement{Name: "discountAmount", Value: &ast.NumberLiteral{Text: "10"}},
					&ast.ExprStatement{Expr: &ast.BinaryExpr{
						Left:  &ast.Navigation{Receiver: &ast.Identifier{Name: "item"}, Names: []string{"type"}},
						Op:    ast.OpEq,
						Right: &ast.Identifier{Name: "itemType"},
					}},
				},
				Then: []ast.Statement{
					&ast.LetStatement{Name: "itemType", Value: &ast.StringLiteral{Value: "TypeA"}},
					&ast.LetStatement{Name: "discountAmount", Value: &ast.NumberLiteral{Text: "10"}},
					&ast.ExprStatement{Expr: &ast.Assignment{
						Target: &ast.Identifier{Name: "discount"},
						Value:  &ast.Identifier{Name: "discountAmount"},
					}},
				},
			},
		},
	}

	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "TemplateRules"})

	assert.Contains(t, out, `var itemType = "TypeA";`)
	assert.Contains(t, out, `var discountAmount = new BigDecimal("10");`)
	assert.Contains(t, out, "if (Runtime.equalsNumericAware(item.type(), itemType)) {")
	assert.Contains(t, out, "discount = Runtime.toBigDecimal(discountAmount);")

	// The expander prepends the same column lets to both When and Then, so
	// the Then-side copies must not redeclare them inside the nested if
	// block (illegal shadowing of an enclosing-scope local in Java).
	assert.Equal(t, 1, strings.Count(out, `var itemType = "TypeA";`))
	assert.Equal(t, 1, strings.Count(out, `var discountAmount = new BigDecimal("10");`))
}

// A map literal with more than ten entries must use the ofEntries form;
// Map.of's varargs overloads stop at ten pairs.
func TestGenerate_MapManyEntries(t *testing.T) {
	entries := make([]ast.MapEntry, 12)
	for i := range entries {
		n := &ast.NumberLiteral{Text: itoa(i + 1)}
		entries[i] = ast.MapEntry{Key: n, Value: n}
	}
	module := &ast.RuleModule{
		Outputs: []*ast.Output{{Name: "result", QualifiedName: "java.util.Map"}},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "R1",
				Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "result"},
					Value:  &ast.MapLiteral{Entries: entries},
				}}},
			},
		},
	}

	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "MapRules"})

	assert.Contains(t, out, "Map.ofEntries(")
	assert.NotContains(t, out, "Map.of(new BigDecimal")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func TestGenerate_TemplateRuleNoBackingRowsEmitsNoMethods(t *testing.T) {
	// The expander turns a template rule with no backing rows into zero
	// SimpleRules, so the module codegen receives has no rules left.
	module := &ast.RuleModule{Rules: nil}
	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "EmptyRules"})
	assert.Contains(t, out, "public void evaluate() {")
	assert.Contains(t, out, "public class EmptyRules {")
	assert.NotContains(t, out, "private void ")
}

func TestGenerate_NullSafeNavigation(t *testing.T) {
	module := &ast.RuleModule{
		Facts:   []*ast.Fact{{Name: "cart", QualifiedName: "com.acme.ShoppingCart"}},
		Outputs: []*ast.Output{{Name: "result", QualifiedName: "java.lang.String"}},
		Rules: []ast.Rule{
			&ast.SimpleRule{
				ID: "R1",
				Then: []ast.Statement{&ast.ExprStatement{Expr: &ast.Assignment{
					Target: &ast.Identifier{Name: "result"},
					Value: &ast.Navigation{
						Receiver: &ast.Identifier{Name: "cart"},
						Names:    []string{"items", "name"},
					},
				}}},
			},
		},
	}

	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "NullSafeRules", GenerateNullChecks: true})

	// cart.items is a Collection, so the generator switches to collection
	// navigation for the remaining suffix even with null checks enabled.
	assert.Contains(t, out, "Optional.ofNullable(cart)")
	assert.Contains(t, out, "root.items().stream()")
}

func TestGenerate_GetterNamesMatchOutputs(t *testing.T) {
	module := &ast.RuleModule{
		Outputs: []*ast.Output{{Name: "discount", QualifiedName: "java.math.BigDecimal"}},
	}
	out := codegen.Generate(module, newResolver(), codegen.Options{ClassName: "GetterRules"})
	assert.Contains(t, out, "public BigDecimal getDiscount() {")
	assert.Contains(t, out, "return discount;")
}
