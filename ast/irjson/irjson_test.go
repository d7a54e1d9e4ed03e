package irjson_test

import (
	"strings"
	"testing"

	"github.com/rulelang/rulec/ast"
	"github.com/rulelang/rulec/ast/irjson"
	"github.com/stretchr/testify/require"
)

// wigglyDollFixture is the wiggly-doll discount module expressed as
// a JSON IR fixture.
const wigglyDollFixture = `{
  "facts": [{"name": "item", "qualified_name": "com.acme.Item"}],
  "outputs": [{"name": "discount", "qualified_name": "java.math.BigDecimal",
    "initial": {"kind": "number", "text": "100"}}],
  "rules": [{
    "kind": "simple",
    "id": "wiggly-doll-discount",
    "when": [{"kind": "expr", "expr": {"kind": "binary",
      "left": {"kind": "navigation", "receiver": {"kind": "identifier", "name": "item"}, "names": ["type"]},
      "op": "=",
      "right": {"kind": "string", "value": "WigglyDoll"}}}],
    "then": [{"kind": "expr", "expr": {"kind": "assignment",
      "target": {"kind": "identifier", "name": "discount"},
      "value": {"kind": "number", "text": "0"}}}]
  }]
}`

func TestDecode_WigglyDollFixture(t *testing.T) {
	module, err := irjson.Decode(strings.NewReader(wigglyDollFixture))
	require.NoError(t, err)

	require.Len(t, module.Facts, 1)
	require.Equal(t, "item", module.Facts[0].Name)
	require.Equal(t, "com.acme.Item", module.Facts[0].QualifiedName)

	require.Len(t, module.Outputs, 1)
	out := module.Outputs[0]
	require.Equal(t, "discount", out.Name)
	require.IsType(t, &ast.NumberLiteral{}, out.Initial)
	require.Equal(t, "100", out.Initial.(*ast.NumberLiteral).Text)

	require.Len(t, module.Rules, 1)
	rule, ok := module.Rules[0].(*ast.SimpleRule)
	require.True(t, ok)
	require.Equal(t, "wiggly-doll-discount", rule.ID)
	require.Len(t, rule.When, 1)
	require.Len(t, rule.Then, 1)

	whenExpr := rule.When[0].(*ast.ExprStatement).Expr.(*ast.BinaryExpr)
	require.Equal(t, ast.OpEq, whenExpr.Op)
	nav := whenExpr.Left.(*ast.Navigation)
	require.Equal(t, []string{"type"}, nav.Names)
	require.Equal(t, "item", nav.Receiver.(*ast.Identifier).Name)

	thenAssign := rule.Then[0].(*ast.ExprStatement).Expr.(*ast.Assignment)
	require.Equal(t, "discount", thenAssign.Target.(*ast.Identifier).Name)
	require.Equal(t, "0", thenAssign.Value.(*ast.NumberLiteral).Text)
}

func TestDecode_DecisionTableAlias(t *testing.T) {
	const fixture = `{
	  "rules": [{
	    "kind": "decision_table",
	    "id": "greeting-table",
	    "rows": [
	      {"id": "ADULT", "when": [], "then": []}
	    ],
	    "where": {
	      "greeting": {"kind": "block", "params": ["t"], "implicit_param": false,
	        "body": [{"kind": "expr", "expr": {"kind": "identifier", "name": "t"}}]}
	    }
	  }]
	}`

	module, err := irjson.Decode(strings.NewReader(fixture))
	require.NoError(t, err)

	rule, ok := module.Rules[0].(*ast.DecisionTableRule)
	require.True(t, ok)
	require.Len(t, rule.Rows, 1)
	require.Equal(t, "ADULT", rule.Rows[0].ID)

	alias, ok := rule.Where["greeting"]
	require.True(t, ok)
	require.Equal(t, []string{"t"}, alias.Params)
}

func TestDecode_UnknownExpressionKindErrors(t *testing.T) {
	const fixture = `{"outputs": [{"name": "x", "qualified_name": "int",
	  "initial": {"kind": "wat"}}]}`

	_, err := irjson.Decode(strings.NewReader(fixture))
	require.Error(t, err)
}

func TestDecode_WhereEntryMustBeBlock(t *testing.T) {
	const fixture = `{
	  "rules": [{"kind": "decision_table", "id": "t", "rows": [],
	    "where": {"bad": {"kind": "string", "value": "nope"}}}]
	}`

	_, err := irjson.Decode(strings.NewReader(fixture))
	require.Error(t, err)
}
