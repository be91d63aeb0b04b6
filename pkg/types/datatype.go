// Package types provides the column type system shared across Tessera components.
package types

import "fmt"

// DataType describes the declared type of a column.
type DataType interface {
	// Name returns the CQL-style name of the type, e.g. "bigint" or "map<text, int>".
	Name() string

	// IsCollection reports whether the type is a multi-cell collection.
	IsCollection() bool
}

// NativeType is a scalar, single-cell type.
type NativeType struct {
	name string
}

func (t NativeType) Name() string       { return t.name }
func (t NativeType) IsCollection() bool { return false }

// The native types used by the index core. LongType is the declared type of
// the token clustering column; BlobType is the legacy token encoding.
var (
	TextType      = NativeType{"text"}
	IntType       = NativeType{"int"}
	LongType      = NativeType{"bigint"}
	BlobType      = NativeType{"blob"}
	BooleanType   = NativeType{"boolean"}
	DoubleType    = NativeType{"double"}
	TimestampType = NativeType{"timestamp"}
	UUIDType      = NativeType{"uuid"}
	TimeUUIDType  = NativeType{"timeuuid"}
)

// nativeByName maps type names back to native type values for deserialization.
var nativeByName = map[string]NativeType{
	TextType.name:      TextType,
	IntType.name:       IntType,
	LongType.name:      LongType,
	BlobType.name:      BlobType,
	BooleanType.name:   BooleanType,
	DoubleType.name:    DoubleType,
	TimestampType.name: TimestampType,
	UUIDType.name:      UUIDType,
	TimeUUIDType.name:  TimeUUIDType,
}

// MapType is a map<k, v> collection.
type MapType struct {
	Keys   DataType
	Values DataType
}

func (t MapType) Name() string       { return fmt.Sprintf("map<%s, %s>", t.Keys.Name(), t.Values.Name()) }
func (t MapType) IsCollection() bool { return true }

// SetType is a set<e> collection.
type SetType struct {
	Elements DataType
}

func (t SetType) Name() string       { return fmt.Sprintf("set<%s>", t.Elements.Name()) }
func (t SetType) IsCollection() bool { return true }

// ListType is a list<e> collection.
type ListType struct {
	Elements DataType
}

func (t ListType) Name() string       { return fmt.Sprintf("list<%s>", t.Elements.Name()) }
func (t ListType) IsCollection() bool { return true }

// TupleType is a fixed-arity tuple. Entry projections of a map are declared as
// tuple<key_type, value_type>: one view row per map entry.
type TupleType struct {
	Elements []DataType
}

func (t TupleType) Name() string {
	s := "tuple<"
	for i, e := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.Name()
	}
	return s + ">"
}

func (t TupleType) IsCollection() bool { return false }
