package schema

import (
	"encoding/json"
	"fmt"

	"github.com/tesseradb/tessera/internal/dht"
)

// ComputationKind tags a computed-column computation variant.
type ComputationKind string

const (
	ComputationCollectionKeys    ComputationKind = "collection_keys"
	ComputationCollectionValues  ComputationKind = "collection_values"
	ComputationCollectionEntries ComputationKind = "collection_entries"
	ComputationToken             ComputationKind = "token"
	ComputationLegacyToken       ComputationKind = "legacy_token"
)

// ColumnComputation names the derivation of a computed column. The index core
// only selects and persists the variant; the view-maintenance engine resolves
// it to an executable projection at write time.
type ColumnComputation interface {
	Kind() ComputationKind
}

// CollectionKeysComputation projects the keys of a map column.
type CollectionKeysComputation struct {
	Column string
}

func (CollectionKeysComputation) Kind() ComputationKind { return ComputationCollectionKeys }

// CollectionValuesComputation projects the values of a collection column.
type CollectionValuesComputation struct {
	Column string
}

func (CollectionValuesComputation) Kind() ComputationKind { return ComputationCollectionValues }

// CollectionEntriesComputation projects the (key, value) entries of a map column.
type CollectionEntriesComputation struct {
	Column string
}

func (CollectionEntriesComputation) Kind() ComputationKind { return ComputationCollectionEntries }

// TokenComputation computes the partitioner token of the view's partition key,
// declared as bigint.
type TokenComputation struct{}

func (TokenComputation) Kind() ComputationKind { return ComputationToken }

// Compute returns the token of a serialized partition key as a signed 64-bit
// integer in big-endian form.
func (TokenComputation) Compute(partitionKey []byte) []byte {
	return dht.MurmurToken(partitionKey).Bytes()
}

// LegacyTokenComputation is the pre-correction token computation, declared as
// blob. New indexes should not use it once every node understands the bigint
// encoding.
type LegacyTokenComputation struct{}

func (LegacyTokenComputation) Kind() ComputationKind { return ComputationLegacyToken }

// Compute returns the legacy serialized-bytes token encoding.
func (LegacyTokenComputation) Compute(partitionKey []byte) []byte {
	return dht.LegacyTokenBytes(partitionKey)
}

// computationJSON is the persisted form of a computation.
type computationJSON struct {
	Kind   ComputationKind `json:"kind"`
	Column string          `json:"column,omitempty"`
}

// MarshalComputation serializes a computation for catalog persistence.
func MarshalComputation(c ColumnComputation) (json.RawMessage, error) {
	j := computationJSON{Kind: c.Kind()}
	switch v := c.(type) {
	case CollectionKeysComputation:
		j.Column = v.Column
	case CollectionValuesComputation:
		j.Column = v.Column
	case CollectionEntriesComputation:
		j.Column = v.Column
	case TokenComputation, LegacyTokenComputation:
	default:
		return nil, fmt.Errorf("schema: cannot serialize computation %T", c)
	}
	return json.Marshal(j)
}

// UnmarshalComputation reconstructs a computation from its persisted form.
func UnmarshalComputation(raw json.RawMessage) (ColumnComputation, error) {
	var j computationJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("schema: failed to decode computation: %w", err)
	}
	switch j.Kind {
	case ComputationCollectionKeys:
		return CollectionKeysComputation{Column: j.Column}, nil
	case ComputationCollectionValues:
		return CollectionValuesComputation{Column: j.Column}, nil
	case ComputationCollectionEntries:
		return CollectionEntriesComputation{Column: j.Column}, nil
	case ComputationToken:
		return TokenComputation{}, nil
	case ComputationLegacyToken:
		return LegacyTokenComputation{}, nil
	default:
		return nil, fmt.Errorf("schema: unknown computation kind %q", j.Kind)
	}
}
