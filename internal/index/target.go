// Package index implements the per-table secondary index registry and the
// synthesis of the derived schemas that physically back each index.
package index

import (
	"regexp"

	"github.com/tesseradb/tessera/internal/errors"
	"github.com/tesseradb/tessera/internal/schema"
)

// TargetType determines which aspect of a column an index covers.
type TargetType int

const (
	// TargetRegularValues indexes the whole column value.
	TargetRegularValues TargetType = iota
	// TargetCollectionKeys indexes a map column's keys.
	TargetCollectionKeys
	// TargetCollectionValues indexes a collection column's values.
	TargetCollectionValues
	// TargetKeysAndValues indexes a map column's (key, value) entries.
	TargetKeysAndValues
)

func (t TargetType) String() string {
	switch t {
	case TargetRegularValues:
		return "regular_values"
	case TargetCollectionKeys:
		return "keys"
	case TargetCollectionValues:
		return "collection_values"
	case TargetKeysAndValues:
		return "keys_and_values"
	}
	return "unknown"
}

// IsCollectionProjection reports whether the target type extracts a
// collection projection rather than the whole value.
func (t TargetType) IsCollectionProjection() bool {
	return t == TargetCollectionKeys || t == TargetCollectionValues || t == TargetKeysAndValues
}

// targetRegex matches wrapped target forms: keys(c), values(c), entries(c),
// full(c). A bare column name indexes regular values.
var targetRegex = regexp.MustCompile(`^(keys|entries|values|full)\((.+)\)$`)

// TargetTypeFromString parses the target type from a raw target string,
// e.g. "keys(tags)" yields TargetCollectionKeys. full() targets are not
// supported and are rejected.
func TargetTypeFromString(s string) (TargetType, error) {
	m := targetRegex.FindStringSubmatch(s)
	if m == nil {
		return TargetRegularValues, nil
	}
	switch m[1] {
	case "keys":
		return TargetCollectionKeys, nil
	case "values":
		return TargetCollectionValues, nil
	case "entries":
		return TargetKeysAndValues, nil
	case "full":
		return 0, errors.Newf(errors.ErrCategoryValidation, errors.CodeInvalidTarget,
			"full() index targets are not supported: %q", s)
	}
	return 0, errors.Newf(errors.ErrCategoryValidation, errors.CodeInvalidTarget,
		"malformed index target %q", s)
}

// ColumnNameFromTargetString extracts the column name from a raw target
// string, e.g. "keys(tags)" yields "tags".
func ColumnNameFromTargetString(s string) string {
	if m := targetRegex.FindStringSubmatch(s); m != nil {
		return m[2]
	}
	return s
}

// TargetInfo is the parsed form of an index target against a base schema.
// PKColumns holds the partition-key candidate columns for a global index;
// CKColumns the clustering-key candidates for a local one. For single-column
// targets both hold the same column.
type TargetInfo struct {
	Type      TargetType
	PKColumns []schema.Column
	CKColumns []schema.Column
}

// ParseTarget resolves an index's raw target specification against the base
// schema it applies to.
func ParseTarget(base *schema.Schema, im schema.IndexMetadata) (*TargetInfo, error) {
	raw, err := im.Target()
	if err != nil {
		return nil, err
	}
	tt, err := TargetTypeFromString(raw)
	if err != nil {
		return nil, err
	}
	name := ColumnNameFromTargetString(raw)
	col, ok := base.Column(name)
	if !ok {
		return nil, errors.Newf(errors.ErrCategoryValidation, errors.CodeInvalidTarget,
			"index %q targets unknown column %q", im.Name, name)
	}
	if tt.IsCollectionProjection() && !col.Type.IsCollection() {
		return nil, errors.Newf(errors.ErrCategoryValidation, errors.CodeInvalidTarget,
			"index %q applies a collection target to non-collection column %q", im.Name, name)
	}
	return &TargetInfo{
		Type:      tt,
		PKColumns: []schema.Column{col},
		CKColumns: []schema.Column{col},
	}, nil
}
