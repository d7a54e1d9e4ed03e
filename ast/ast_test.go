package ast_test

import (
	"testing"

	"github.com/rulelang/rulec/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier_GlobalDetection(t *testing.T) {
	tests := []struct {
		name     string
		ident    *ast.Identifier
		isGlobal bool
		bare     string
	}{
		{"local", &ast.Identifier{Name: "discount"}, false, "discount"},
		{"global", &ast.Identifier{Name: "@region"}, true, "region"},
		{"empty", &ast.Identifier{Name: ""}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isGlobal, tt.ident.IsGlobal())
			assert.Equal(t, tt.bare, tt.ident.BareName())
		})
	}
}

func TestIdentifier_AliasDetection(t *testing.T) {
	tests := []struct {
		name    string
		ident   *ast.Identifier
		isAlias bool
		bare    string
	}{
		{"local", &ast.Identifier{Name: "discount"}, false, "discount"},
		{"alias", &ast.Identifier{Name: "#greeting"}, true, "greeting"},
		{"empty", &ast.Identifier{Name: ""}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isAlias, tt.ident.IsAlias())
			assert.Equal(t, tt.bare, tt.ident.AliasName())
		})
	}
}

func TestKeywordMessage_MethodName(t *testing.T) {
	tests := []struct {
		name  string
		parts []ast.KeywordPart
		want  string
	}{
		{"single", []ast.KeywordPart{{Keyword: "at"}}, "at"},
		{"two-part", []ast.KeywordPart{{Keyword: "scaleBy"}, {Keyword: "thenAdd"}}, "scaleByThenAdd"},
		{"three-part", []ast.KeywordPart{{Keyword: "k1"}, {Keyword: "k2"}, {Keyword: "k3"}}, "k1K2K3"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &ast.KeywordMessage{Parts: tt.parts}
			assert.Equal(t, tt.want, m.MethodName())
		})
	}
}

func TestBinaryOp_Classification(t *testing.T) {
	assert.True(t, ast.OpAdd.IsArithmetic())
	assert.True(t, ast.OpDiv.IsArithmetic())
	assert.False(t, ast.OpEq.IsArithmetic())
	assert.True(t, ast.OpGreaterEq.IsComparison())
}

func TestMerge_UnionByName(t *testing.T) {
	m1 := &ast.RuleModule{
		Facts: []*ast.Fact{{Name: "item", QualifiedName: "com.acme.Item"}},
		Rules: []ast.Rule{&ast.SimpleRule{ID: "R1"}},
	}
	m2 := &ast.RuleModule{
		Facts: []*ast.Fact{{Name: "item", QualifiedName: "com.acme.Item"}},
		Rules: []ast.Rule{&ast.SimpleRule{ID: "R2"}},
	}

	merged, err := ast.Merge(m1, m2)
	require.NoError(t, err)
	assert.Len(t, merged.Facts, 1, "same-shape duplicate fact across modules should not double up")
	assert.Len(t, merged.Rules, 2)
}

func TestMerge_ConflictOnDifferentShape(t *testing.T) {
	m1 := &ast.RuleModule{Facts: []*ast.Fact{{Name: "item", QualifiedName: "com.acme.Item"}}}
	m2 := &ast.RuleModule{Facts: []*ast.Fact{{Name: "item", QualifiedName: "com.acme.v2.Item"}}}

	_, err := ast.Merge(m1, m2)
	require.Error(t, err)
	var conflict *ast.MergeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "fact", conflict.Partition)
	assert.Equal(t, "item", conflict.Name)
}

func TestMerge_DuplicateRuleIDConflicts(t *testing.T) {
	m1 := &ast.RuleModule{Rules: []ast.Rule{&ast.SimpleRule{ID: "R1"}}}
	m2 := &ast.RuleModule{Rules: []ast.Rule{&ast.SimpleRule{ID: "R1"}}}

	_, err := ast.Merge(m1, m2)
	require.Error(t, err)
}
