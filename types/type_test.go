package types_test

import (
	"testing"

	"github.com/rulelang/rulec/types"
	"github.com/stretchr/testify/assert"
)

func TestElementType_CollectionAndArrayAndSelf(t *testing.T) {
	str := types.NewString()
	coll := types.NewCollection("java.util.List", str)
	assert.Same(t, str, types.ElementType(coll))

	arr := &types.Array{Component: str}
	assert.Same(t, str, types.ElementType(arr))

	assert.Same(t, str, types.ElementType(str), "non-collection/array returns itself")
}

func TestElementType_EmptyCollectionIsUnknown(t *testing.T) {
	coll := &types.Class{QualifiedName: "java.util.List", Kind: types.Collection}
	elem := types.ElementType(coll)
	_, ok := elem.(*types.Unknown)
	assert.True(t, ok)
}

func TestKeyValueType_OnNonMapIsUnknown(t *testing.T) {
	str := types.NewString()
	_, ok := types.KeyType(str).(*types.Unknown)
	assert.True(t, ok)
	_, ok = types.ValueType(str).(*types.Unknown)
	assert.True(t, ok)
}

func TestPredicates(t *testing.T) {
	assert.True(t, types.IsNumeric(&types.Primitive{Kind: types.Int}))
	assert.True(t, types.IsNumeric(types.NewBigDecimal()))
	assert.False(t, types.IsNumeric(types.NewString()))
	assert.True(t, types.IsBoolean(&types.Primitive{Kind: types.Boolean}))
	assert.True(t, types.IsString(types.NewString()))

	coll := types.NewCollection("java.util.List", types.NewString())
	assert.True(t, types.IsCollection(coll))
	assert.False(t, types.IsMap(coll))

	record := &types.Class{QualifiedName: "com.acme.Item", Kind: types.Regular, IsRecordType: true}
	assert.True(t, types.IsRecord(record))
}

func TestClass_SimpleName(t *testing.T) {
	list := types.NewCollection("java.util.List", types.NewString())
	assert.Equal(t, "List<String>", list.SimpleName())

	arr := &types.Array{Component: &types.Primitive{Kind: types.Int}}
	assert.Equal(t, "int[]", arr.SimpleName())
}

func TestUnknown_SimpleName(t *testing.T) {
	u := &types.Unknown{}
	assert.Equal(t, "?", u.SimpleName())
	u2 := &types.Unknown{Hint: "no such class Foo"}
	assert.Equal(t, "?(no such class Foo)", u2.SimpleName())
}
