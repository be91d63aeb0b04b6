package types

import "fmt"

// Projection types declare what a computed collection column holds. A
// projected index stores one view row per collection element, so the declared
// type is the element type, not another collection.

// CollectionKeysType returns the declared type of a keys() projection.
// Collections are physically encoded as maps: a set's keys are its elements
// and a list's keys are its timeuuid cell keys.
func CollectionKeysType(t DataType) (DataType, error) {
	switch c := t.(type) {
	case MapType:
		return c.Keys, nil
	case SetType:
		return c.Elements, nil
	case ListType:
		return TimeUUIDType, nil
	default:
		return nil, fmt.Errorf("types: keys projection requires a collection, got %s", t.Name())
	}
}

// CollectionValuesType returns the declared type of a values() projection.
func CollectionValuesType(t DataType) (DataType, error) {
	switch c := t.(type) {
	case MapType:
		return c.Values, nil
	case SetType:
		return c.Elements, nil
	case ListType:
		return c.Elements, nil
	default:
		return nil, fmt.Errorf("types: values projection requires a collection, got %s", t.Name())
	}
}

// CollectionEntriesType returns the declared type of an entries() projection.
// Only maps have entries; each entry is a (key, value) tuple.
func CollectionEntriesType(t DataType) (DataType, error) {
	m, ok := t.(MapType)
	if !ok {
		return nil, fmt.Errorf("types: entries projection requires a map, got %s", t.Name())
	}
	return TupleType{Elements: []DataType{m.Keys, m.Values}}, nil
}
