package schema

import (
	"github.com/google/uuid"

	"github.com/tesseradb/tessera/pkg/types"
)

// ViewInfo marks a schema as a materialized view over a base table.
type ViewInfo struct {
	// BaseTable is the physical name of the base table.
	BaseTable string

	// BaseID is the base table's id.
	BaseID uuid.UUID

	// IncludeAllColumns indicates the view carries every base column.
	IncludeAllColumns bool

	// WhereClause filters which base rows populate the view.
	WhereClause string
}

// Schema is an immutable snapshot of a table's layout. Published schemas are
// never mutated after construction; schema evolution replaces the whole value.
type Schema struct {
	id       uuid.UUID
	keyspace string
	table    string

	partitionKey  []Column
	clusteringKey []Column
	regular       []Column
	byName        map[string]Column

	indexes map[string]IndexMetadata
	view    *ViewInfo
}

// ID returns the table's unique id.
func (s *Schema) ID() uuid.UUID { return s.id }

// Keyspace returns the keyspace the table belongs to.
func (s *Schema) Keyspace() string { return s.keyspace }

// Table returns the table's physical name.
func (s *Schema) Table() string { return s.table }

// PartitionKeyColumns returns the partition-key columns in declaration order.
// The returned slice must not be modified.
func (s *Schema) PartitionKeyColumns() []Column { return s.partitionKey }

// ClusteringKeyColumns returns the clustering-key columns in declaration order.
// The returned slice must not be modified.
func (s *Schema) ClusteringKeyColumns() []Column { return s.clusteringKey }

// RegularColumns returns the regular columns in declaration order.
// The returned slice must not be modified.
func (s *Schema) RegularColumns() []Column { return s.regular }

// AllColumns returns every column in layout order: partition key, clustering
// key, then regular.
func (s *Schema) AllColumns() []Column {
	all := make([]Column, 0, len(s.partitionKey)+len(s.clusteringKey)+len(s.regular))
	all = append(all, s.partitionKey...)
	all = append(all, s.clusteringKey...)
	all = append(all, s.regular...)
	return all
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// HasColumn reports whether a column with the given name exists.
func (s *Schema) HasColumn(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Indexes returns the index metadata published with this table, keyed by
// index name. The returned map must not be modified.
func (s *Schema) Indexes() map[string]IndexMetadata { return s.indexes }

// IsView reports whether the schema describes a materialized view.
func (s *Schema) IsView() bool { return s.view != nil }

// View returns the view marker, or nil for a base table.
func (s *Schema) View() *ViewInfo { return s.view }

// PrimaryKeyType returns the types of the primary-key columns in order,
// partition key first.
func (s *Schema) PrimaryKeyType() []types.DataType {
	out := make([]types.DataType, 0, len(s.partitionKey)+len(s.clusteringKey))
	for _, c := range s.partitionKey {
		out = append(out, c.Type)
	}
	for _, c := range s.clusteringKey {
		out = append(out, c.Type)
	}
	return out
}
