package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "bigint", LongType.Name())
	assert.Equal(t, "map<text, int>", MapType{Keys: TextType, Values: IntType}.Name())
	assert.Equal(t, "set<text>", SetType{Elements: TextType}.Name())
	assert.Equal(t, "list<double>", ListType{Elements: DoubleType}.Name())
	assert.Equal(t, "tuple<text, int>", TupleType{Elements: []DataType{TextType, IntType}}.Name())
}

func TestIsCollection(t *testing.T) {
	assert.False(t, TextType.IsCollection())
	assert.False(t, TupleType{Elements: []DataType{TextType}}.IsCollection())
	assert.True(t, MapType{Keys: TextType, Values: IntType}.IsCollection())
	assert.True(t, SetType{Elements: TextType}.IsCollection())
	assert.True(t, ListType{Elements: TextType}.IsCollection())
}

func TestCollectionKeysType(t *testing.T) {
	m := MapType{Keys: TextType, Values: IntType}

	keys, err := CollectionKeysType(m)
	require.NoError(t, err)
	assert.Equal(t, TextType, keys)

	keys, err = CollectionKeysType(SetType{Elements: DoubleType})
	require.NoError(t, err)
	assert.Equal(t, DoubleType, keys)

	keys, err = CollectionKeysType(ListType{Elements: TextType})
	require.NoError(t, err)
	assert.Equal(t, TimeUUIDType, keys)

	_, err = CollectionKeysType(TextType)
	assert.Error(t, err)
}

func TestCollectionValuesType(t *testing.T) {
	values, err := CollectionValuesType(MapType{Keys: TextType, Values: IntType})
	require.NoError(t, err)
	assert.Equal(t, IntType, values)

	values, err = CollectionValuesType(SetType{Elements: TextType})
	require.NoError(t, err)
	assert.Equal(t, TextType, values)

	values, err = CollectionValuesType(ListType{Elements: DoubleType})
	require.NoError(t, err)
	assert.Equal(t, DoubleType, values)

	_, err = CollectionValuesType(IntType)
	assert.Error(t, err)
}

func TestCollectionEntriesType(t *testing.T) {
	entries, err := CollectionEntriesType(MapType{Keys: TextType, Values: IntType})
	require.NoError(t, err)
	assert.Equal(t, TupleType{Elements: []DataType{TextType, IntType}}, entries)

	_, err = CollectionEntriesType(SetType{Elements: TextType})
	assert.Error(t, err)
	_, err = CollectionEntriesType(ListType{Elements: TextType})
	assert.Error(t, err)
}

func TestTypeJSONRoundTrip(t *testing.T) {
	cases := []DataType{
		TextType,
		LongType,
		BlobType,
		TimeUUIDType,
		MapType{Keys: TextType, Values: IntType},
		SetType{Elements: TimestampType},
		ListType{Elements: UUIDType},
		TupleType{Elements: []DataType{TextType, IntType}},
		MapType{Keys: TextType, Values: ListType{Elements: DoubleType}},
	}
	for _, in := range cases {
		raw, err := MarshalType(in)
		require.NoError(t, err, "type %s", in.Name())
		out, err := UnmarshalType(raw)
		require.NoError(t, err, "type %s", in.Name())
		assert.Equal(t, in, out, "type %s", in.Name())
	}
}

func TestUnmarshalType_Unknown(t *testing.T) {
	_, err := UnmarshalType([]byte(`{"kind":"native","name":"quaternion"}`))
	assert.Error(t, err)

	_, err = UnmarshalType([]byte(`{"kind":"hypercube"}`))
	assert.Error(t, err)
}
