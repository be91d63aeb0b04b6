package schema

import (
	"github.com/tesseradb/tessera/internal/errors"
)

// TargetOption is the options key under which an index stores its raw target
// specification, e.g. "keys(tags)" or a bare column name.
const TargetOption = "target"

// IndexMetadata is the immutable published definition of a secondary index.
// Metadata is replaced wholesale on schema change, never mutated in place.
type IndexMetadata struct {
	// Name is unique within the base table and derives the backing-table name.
	Name string `json:"name"`

	// Local marks an index scoped to a single base partition.
	Local bool `json:"local"`

	// Options carries the raw target specification and any custom options.
	Options map[string]string `json:"options"`
}

// NewIndexMetadata builds metadata for an index over the given raw target.
func NewIndexMetadata(name string, local bool, target string) IndexMetadata {
	return IndexMetadata{
		Name:    name,
		Local:   local,
		Options: map[string]string{TargetOption: target},
	}
}

// Target returns the raw target specification from the options map.
func (im IndexMetadata) Target() (string, error) {
	t, ok := im.Options[TargetOption]
	if !ok {
		return "", errors.Newf(errors.ErrCategoryValidation, errors.CodeInvalidTarget,
			"index %q has no %q option", im.Name, TargetOption)
	}
	return t, nil
}
