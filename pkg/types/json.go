package types

import (
	"encoding/json"
	"fmt"
)

// typeJSON is the serialized form of a DataType, used by the system catalog
// when persisting schemas.
type typeJSON struct {
	Kind     string     `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Keys     *typeJSON  `json:"keys,omitempty"`
	Values   *typeJSON  `json:"values,omitempty"`
	Elements []typeJSON `json:"elements,omitempty"`
}

const (
	kindNative = "native"
	kindMap    = "map"
	kindSet    = "set"
	kindList   = "list"
	kindTuple  = "tuple"
)

func toTypeJSON(t DataType) (*typeJSON, error) {
	switch c := t.(type) {
	case NativeType:
		return &typeJSON{Kind: kindNative, Name: c.name}, nil
	case MapType:
		k, err := toTypeJSON(c.Keys)
		if err != nil {
			return nil, err
		}
		v, err := toTypeJSON(c.Values)
		if err != nil {
			return nil, err
		}
		return &typeJSON{Kind: kindMap, Keys: k, Values: v}, nil
	case SetType:
		e, err := toTypeJSON(c.Elements)
		if err != nil {
			return nil, err
		}
		return &typeJSON{Kind: kindSet, Elements: []typeJSON{*e}}, nil
	case ListType:
		e, err := toTypeJSON(c.Elements)
		if err != nil {
			return nil, err
		}
		return &typeJSON{Kind: kindList, Elements: []typeJSON{*e}}, nil
	case TupleType:
		elems := make([]typeJSON, 0, len(c.Elements))
		for _, e := range c.Elements {
			ej, err := toTypeJSON(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, *ej)
		}
		return &typeJSON{Kind: kindTuple, Elements: elems}, nil
	default:
		return nil, fmt.Errorf("types: cannot serialize type %T", t)
	}
}

func fromTypeJSON(j *typeJSON) (DataType, error) {
	switch j.Kind {
	case kindNative:
		t, ok := nativeByName[j.Name]
		if !ok {
			return nil, fmt.Errorf("types: unknown native type %q", j.Name)
		}
		return t, nil
	case kindMap:
		if j.Keys == nil || j.Values == nil {
			return nil, fmt.Errorf("types: map type missing keys or values")
		}
		k, err := fromTypeJSON(j.Keys)
		if err != nil {
			return nil, err
		}
		v, err := fromTypeJSON(j.Values)
		if err != nil {
			return nil, err
		}
		return MapType{Keys: k, Values: v}, nil
	case kindSet, kindList:
		if len(j.Elements) != 1 {
			return nil, fmt.Errorf("types: %s type requires exactly one element type", j.Kind)
		}
		e, err := fromTypeJSON(&j.Elements[0])
		if err != nil {
			return nil, err
		}
		if j.Kind == kindSet {
			return SetType{Elements: e}, nil
		}
		return ListType{Elements: e}, nil
	case kindTuple:
		elems := make([]DataType, 0, len(j.Elements))
		for i := range j.Elements {
			e, err := fromTypeJSON(&j.Elements[i])
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return TupleType{Elements: elems}, nil
	default:
		return nil, fmt.Errorf("types: unknown type kind %q", j.Kind)
	}
}

// MarshalType serializes a DataType to JSON.
func MarshalType(t DataType) (json.RawMessage, error) {
	j, err := toTypeJSON(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(j)
}

// UnmarshalType reconstructs a DataType from its JSON form.
func UnmarshalType(raw json.RawMessage) (DataType, error) {
	var j typeJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("types: failed to decode type: %w", err)
	}
	return fromTypeJSON(&j)
}
