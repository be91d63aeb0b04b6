package index

import (
	"fmt"

	"github.com/tesseradb/tessera/internal/errors"
	"github.com/tesseradb/tessera/internal/schema"
	"github.com/tesseradb/tessera/pkg/types"
)

// collectionComputationFor selects the projection computation for a
// collection-targeted index. Only the three collection projections are legal
// here; anything else is an upstream dispatch bug.
func collectionComputationFor(tt TargetType, column string) (schema.ColumnComputation, error) {
	switch tt {
	case TargetCollectionKeys:
		return schema.CollectionKeysComputation{Column: column}, nil
	case TargetCollectionValues:
		return schema.CollectionValuesComputation{Column: column}, nil
	case TargetKeysAndValues:
		return schema.CollectionEntriesComputation{Column: column}, nil
	case TargetRegularValues:
		return nil, errors.Newf(errors.ErrCategoryInternal, errors.CodeUnexpected,
			"regular values target reached the collection projection path")
	}
	return nil, errors.Newf(errors.ErrCategoryInternal, errors.CodeUnexpected,
		"invalid target type %d on the collection projection path", int(tt))
}

// typeForComputedColumn returns the declared type of a collection projection
// over the given collection type.
func typeForComputedColumn(tt TargetType, collectionType types.DataType) (types.DataType, error) {
	var (
		t   types.DataType
		err error
	)
	switch tt {
	case TargetCollectionKeys:
		t, err = types.CollectionKeysType(collectionType)
	case TargetCollectionValues:
		t, err = types.CollectionValuesType(collectionType)
	case TargetKeysAndValues:
		t, err = types.CollectionEntriesType(collectionType)
	default:
		return nil, errors.Newf(errors.ErrCategoryInternal, errors.CodeUnexpected,
			"reached regular values when only collection index target types were expected")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCategoryValidation, errors.CodeInvalidTarget,
			"cannot derive projected type", err)
	}
	return t, nil
}

// CreateViewForIndex synthesizes the derived schema that physically backs an
// index on this manager's table. The layout makes the indexed value the view's
// partition dimension (global) or an extra clustering dimension (local) while
// preserving base row identity in the remaining key columns.
//
// newTokenComputation selects the token-column generation. The legacy
// computation stores the token in its serialized-bytes encoding and is kept
// so a cluster can finish a rolling upgrade; once every node understands the
// bigint encoding the flag should always be true.
func (m *Manager) CreateViewForIndex(im schema.IndexMetadata, newTokenComputation bool) (*schema.Schema, error) {
	base := m.table.Schema()
	builder := schema.NewBuilder(base.Keyspace(), IndexTableName(im.Name))

	info, err := ParseTarget(base, im)
	if err != nil {
		return nil, err
	}
	var target schema.Column
	if im.Local {
		target = info.CKColumns[0]
	} else {
		target = info.PKColumns[0]
	}

	if im.Local {
		// A local index keyed by a partition-key column is redundant: queries
		// must supply the whole base partition key anyway.
		if target.IsPartitionKey() {
			return nil, errors.New(errors.ErrCategoryValidation, errors.CodeInvalidRequest,
				"local indexing based on partition key column is not allowed, "+
					"since whole base partition key must be used in queries anyway; use global indexing instead")
		}
		for _, col := range base.PartitionKeyColumns() {
			builder.WithColumn(col.Name, col.Type, schema.PartitionKey)
		}
		builder.WithColumn(target.Name, target.Type, schema.ClusteringKey)
	} else {
		if info.Type == TargetRegularValues {
			builder.WithColumn(target.Name, target.Type, schema.PartitionKey)
		} else {
			keyColumnName := availableCollectionColumnName(base)
			comp, err := collectionComputationFor(info.Type, target.Name)
			if err != nil {
				return nil, err
			}
			t, err := typeForComputedColumn(info.Type, target.Type)
			if err != nil {
				return nil, err
			}
			builder.WithComputedColumn(keyColumnName, t, schema.PartitionKey, comp)
		}

		// The token column keeps index scans in token order.
		tokenColumnName := availableTokenColumnName(base)
		if newTokenComputation {
			builder.WithComputedColumn(tokenColumnName, types.LongType, schema.ClusteringKey, schema.TokenComputation{})
		} else {
			builder.WithComputedColumn(tokenColumnName, types.BlobType, schema.ClusteringKey, schema.LegacyTokenComputation{})
		}

		for _, col := range base.PartitionKeyColumns() {
			if col.Name == target.Name {
				continue
			}
			builder.WithColumn(col.Name, col.Type, schema.ClusteringKey)
		}

		// If two cells within the same collection share the same value but not
		// liveness information, the rows generated for a values index would
		// share the same primary key and thus the liveness information as
		// well. Distinguish them by their collection keys in the clustering key.
		if info.Type == TargetCollectionValues {
			t, err := typeForComputedColumn(TargetCollectionKeys, target.Type)
			if err != nil {
				return nil, err
			}
			columnName := availableColumnName(base, collectionKeysForValues)
			builder.WithComputedColumn(columnName, t, schema.ClusteringKey,
				schema.CollectionKeysComputation{Column: target.Name})
		}
	}

	for _, col := range base.ClusteringKeyColumns() {
		if col.Name == target.Name {
			continue
		}
		builder.WithColumn(col.Name, col.Type, schema.ClusteringKey)
	}

	// An index on a primary-key column must still be able to project the base
	// row's regular columns on read.
	if target.IsPrimaryKey() {
		for _, col := range base.RegularColumns() {
			builder.WithVirtualColumn(col.Name, col.Type)
		}
	}

	whereClause := fmt.Sprintf("%s IS NOT NULL", target.Name)
	builder.WithViewInfo(base, false, whereClause)
	return builder.Build()
}
