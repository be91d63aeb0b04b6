package index

import (
	"github.com/tesseradb/tessera/internal/schema"
)

// Operator is a query predicate operator an index may serve.
type Operator int

const (
	OpEQ Operator = iota
	OpNEQ
	OpLT
	OpLTE
	OpGT
	OpGTE
	OpContains
	OpContainsKey
	OpLike
)

func (o Operator) String() string {
	switch o {
	case OpEQ:
		return "="
	case OpNEQ:
		return "!="
	case OpLT:
		return "<"
	case OpLTE:
		return "<="
	case OpGT:
		return ">"
	case OpGTE:
		return ">="
	case OpContains:
		return "CONTAINS"
	case OpContainsKey:
		return "CONTAINS KEY"
	case OpLike:
		return "LIKE"
	}
	return "unknown"
}

// Index is a parsed, queryable descriptor over one IndexMetadata. The target
// type and column are derived once at construction.
type Index struct {
	metadata     schema.IndexMetadata
	targetType   TargetType
	targetColumn string
}

// NewIndex parses the metadata's raw target string and wraps the metadata.
func NewIndex(im schema.IndexMetadata) (Index, error) {
	raw, err := im.Target()
	if err != nil {
		return Index{}, err
	}
	tt, err := TargetTypeFromString(raw)
	if err != nil {
		return Index{}, err
	}
	return Index{
		metadata:     im,
		targetType:   tt,
		targetColumn: ColumnNameFromTargetString(raw),
	}, nil
}

// Metadata returns the index's published metadata.
func (i Index) Metadata() schema.IndexMetadata { return i.metadata }

// TargetType returns the parsed target type.
func (i Index) TargetType() TargetType { return i.targetType }

// TargetColumn returns the parsed target column name.
func (i Index) TargetColumn() string { return i.targetColumn }

// DependsOn reports whether writes to the given column invalidate this index.
// Matching is exact: no case folding or whitespace normalization.
func (i Index) DependsOn(col schema.Column) bool {
	return col.Name == i.targetColumn
}

// SupportsExpression reports whether the index can serve a predicate of the
// given operator on the given column.
func (i Index) SupportsExpression(col schema.Column, op Operator) bool {
	if col.Name != i.targetColumn {
		return false
	}
	switch op {
	case OpEQ:
		return i.targetType == TargetRegularValues
	case OpContains:
		return i.targetType == TargetCollectionValues
	case OpContainsKey:
		return i.targetType == TargetCollectionKeys
	default:
		return false
	}
}
