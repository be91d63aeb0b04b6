package index

import (
	"strconv"
	"strings"

	"github.com/tesseradb/tessera/internal/errors"
	"github.com/tesseradb/tessera/internal/schema"
)

const indexTableSuffix = "_index"

// Column-name roots for the synthesizer's derived columns.
const (
	tokenColumnRoot         = "idx_token"
	collectionColumnRoot    = "coll_value"
	collectionKeysForValues = "coll_keys_for_values_index"
)

// IndexTableName derives the physical backing-table name of an index.
func IndexTableName(indexName string) string {
	return indexName + indexTableSuffix
}

// IndexNameFromTableName inverts IndexTableName. It fails for any name
// shorter than 7 characters or lacking the "_index" suffix; such a name is a
// data-integrity problem, not user input.
func IndexNameFromTableName(tableName string) (string, error) {
	if len(tableName) < len(indexTableSuffix)+1 || !strings.HasSuffix(tableName, indexTableSuffix) {
		return "", errors.Newf(errors.ErrCategorySchema, errors.CodeInvalidTableName,
			"table %q does not have %s suffix", tableName, indexTableSuffix)
	}
	return tableName[:len(tableName)-len(indexTableSuffix)], nil
}

// availableColumnName returns root if the schema has no column of that name,
// otherwise the first of root_1, root_2, ... that is unused.
func availableColumnName(s *schema.Schema, root string) string {
	accepted := root
	for i := 1; s.HasColumn(accepted); i++ {
		accepted = root + "_" + strconv.Itoa(i)
	}
	return accepted
}

func availableTokenColumnName(s *schema.Schema) string {
	return availableColumnName(s, tokenColumnRoot)
}

func availableCollectionColumnName(s *schema.Schema) string {
	return availableColumnName(s, collectionColumnRoot)
}
