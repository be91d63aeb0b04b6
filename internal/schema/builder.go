package schema

import (
	"github.com/google/uuid"

	"github.com/tesseradb/tessera/internal/errors"
	"github.com/tesseradb/tessera/pkg/types"
)

// Builder accumulates column definitions and freezes them into an immutable
// Schema. Column order within each kind is declaration order.
type Builder struct {
	id       uuid.UUID
	keyspace string
	table    string
	columns  []Column
	indexes  []IndexMetadata
	view     *ViewInfo
}

// NewBuilder starts a schema for the given keyspace and table, assigning a
// fresh table id.
func NewBuilder(keyspace, table string) *Builder {
	return &Builder{
		id:       uuid.New(),
		keyspace: keyspace,
		table:    table,
	}
}

// WithID overrides the generated table id. Used when rehydrating a persisted
// schema.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithColumn appends a stored column of the given kind.
func (b *Builder) WithColumn(name string, t types.DataType, kind ColumnKind) *Builder {
	b.columns = append(b.columns, Column{Name: name, Type: t, Kind: kind})
	return b
}

// WithComputedColumn appends a computed column of the given kind.
func (b *Builder) WithComputedColumn(name string, t types.DataType, kind ColumnKind, comp ColumnComputation) *Builder {
	b.columns = append(b.columns, Column{Name: name, Type: t, Kind: kind, Computation: comp})
	return b
}

// WithVirtualColumn appends a virtual regular column: a read-through copy of
// a base-table column carried by a view.
func (b *Builder) WithVirtualColumn(name string, t types.DataType) *Builder {
	b.columns = append(b.columns, Column{Name: name, Type: t, Kind: Regular, Virtual: true})
	return b
}

// WithIndex publishes index metadata with the schema.
func (b *Builder) WithIndex(im IndexMetadata) *Builder {
	b.indexes = append(b.indexes, im)
	return b
}

// WithViewInfo marks the schema as a view over the given base table with the
// given row filter.
func (b *Builder) WithViewInfo(base *Schema, includeAllColumns bool, whereClause string) *Builder {
	b.view = &ViewInfo{
		BaseTable:         base.Table(),
		BaseID:            base.ID(),
		IncludeAllColumns: includeAllColumns,
		WhereClause:       whereClause,
	}
	return b
}

// Build validates the accumulated definitions and freezes them into a Schema.
func (b *Builder) Build() (*Schema, error) {
	if b.table == "" {
		return nil, errors.NewSchemaError(errors.CodeInvalidSchema, "schema requires a table name")
	}

	s := &Schema{
		id:       b.id,
		keyspace: b.keyspace,
		table:    b.table,
		byName:   make(map[string]Column, len(b.columns)),
		indexes:  make(map[string]IndexMetadata, len(b.indexes)),
		view:     b.view,
	}

	for _, col := range b.columns {
		if _, dup := s.byName[col.Name]; dup {
			return nil, errors.Newf(errors.ErrCategorySchema, errors.CodeDuplicateColumn,
				"duplicate column %q in table %q", col.Name, b.table)
		}
		if col.Virtual && col.Kind != Regular {
			return nil, errors.Newf(errors.ErrCategorySchema, errors.CodeInvalidSchema,
				"virtual column %q must be regular", col.Name)
		}
		s.byName[col.Name] = col
		switch col.Kind {
		case PartitionKey:
			s.partitionKey = append(s.partitionKey, col)
		case ClusteringKey:
			s.clusteringKey = append(s.clusteringKey, col)
		case Regular:
			s.regular = append(s.regular, col)
		default:
			return nil, errors.Newf(errors.ErrCategorySchema, errors.CodeInvalidSchema,
				"column %q has unknown kind %d", col.Name, int(col.Kind))
		}
	}

	if len(s.partitionKey) == 0 {
		return nil, errors.Newf(errors.ErrCategorySchema, errors.CodeInvalidSchema,
			"table %q has no partition key", b.table)
	}

	for _, im := range b.indexes {
		if _, dup := s.indexes[im.Name]; dup {
			return nil, errors.Newf(errors.ErrCategorySchema, errors.CodeInvalidSchema,
				"duplicate index %q on table %q", im.Name, b.table)
		}
		s.indexes[im.Name] = im
	}

	return s, nil
}
