// Package schema provides immutable table schema snapshots, the builder that
// assembles them, and the computed-column model used by index views.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/tesseradb/tessera/pkg/types"
)

// ColumnKind places a column within a table's layout.
type ColumnKind int

const (
	// PartitionKey columns determine the partition a row lives in.
	PartitionKey ColumnKind = iota
	// ClusteringKey columns order rows within a partition.
	ClusteringKey
	// Regular columns carry row payload.
	Regular
)

var columnKindNames = map[ColumnKind]string{
	PartitionKey:  "partition_key",
	ClusteringKey: "clustering_key",
	Regular:       "regular",
}

var columnKindByName = map[string]ColumnKind{
	"partition_key":  PartitionKey,
	"clustering_key": ClusteringKey,
	"regular":        Regular,
}

func (k ColumnKind) String() string {
	if s, ok := columnKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("column_kind(%d)", int(k))
}

// MarshalJSON serializes the kind as its string name.
func (k ColumnKind) MarshalJSON() ([]byte, error) {
	s, ok := columnKindNames[k]
	if !ok {
		return nil, fmt.Errorf("schema: unknown column kind %d", int(k))
	}
	return json.Marshal(s)
}

// UnmarshalJSON parses the kind from its string name.
func (k *ColumnKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, ok := columnKindByName[s]
	if !ok {
		return fmt.Errorf("schema: unknown column kind %q", s)
	}
	*k = kind
	return nil
}

// Column is a single column of a schema. Columns are value types; a schema
// never exposes mutable column references.
type Column struct {
	Name string
	Type types.DataType
	Kind ColumnKind

	// Computation is non-nil for computed columns, whose value is derived
	// by the view-maintenance engine rather than stored directly.
	Computation ColumnComputation

	// Virtual marks a read-through copy of a base-table column carried by
	// an index view so reads can project it without touching the base row.
	Virtual bool
}

// IsComputed reports whether the column's value is derived by a computation.
func (c Column) IsComputed() bool { return c.Computation != nil }

// IsPartitionKey reports whether the column is part of the partition key.
func (c Column) IsPartitionKey() bool { return c.Kind == PartitionKey }

// IsClusteringKey reports whether the column is part of the clustering key.
func (c Column) IsClusteringKey() bool { return c.Kind == ClusteringKey }

// IsPrimaryKey reports whether the column is part of the primary key.
func (c Column) IsPrimaryKey() bool { return c.Kind == PartitionKey || c.Kind == ClusteringKey }

// IsRegular reports whether the column carries row payload.
func (c Column) IsRegular() bool { return c.Kind == Regular }
