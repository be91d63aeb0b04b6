package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tesseradb/tessera/pkg/types"
)

// The JSON codec is what the system catalog persists. It must round-trip
// every column property the synthesizer produces: name, type, kind,
// computation, virtual flag, and order.

type columnJSON struct {
	Name        string          `json:"name"`
	Type        json.RawMessage `json:"type"`
	Kind        ColumnKind      `json:"kind"`
	Computation json.RawMessage `json:"computation,omitempty"`
	Virtual     bool            `json:"virtual,omitempty"`
}

type viewJSON struct {
	BaseTable         string `json:"base_table"`
	BaseID            string `json:"base_id"`
	IncludeAllColumns bool   `json:"include_all_columns"`
	WhereClause       string `json:"where_clause"`
}

type schemaJSON struct {
	ID       string          `json:"id"`
	Keyspace string          `json:"keyspace"`
	Table    string          `json:"table"`
	Columns  []columnJSON    `json:"columns"`
	Indexes  []IndexMetadata `json:"indexes,omitempty"`
	View     *viewJSON       `json:"view,omitempty"`
}

// WithView sets a rehydrated view marker directly. The synthesizer uses
// WithViewInfo instead, which derives the marker from a live base schema.
func (b *Builder) WithView(v ViewInfo) *Builder {
	info := v
	b.view = &info
	return b
}

// MarshalJSON serializes the schema with deterministic column and index order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	out := schemaJSON{
		ID:       s.id.String(),
		Keyspace: s.keyspace,
		Table:    s.table,
	}

	for _, col := range s.AllColumns() {
		rawType, err := types.MarshalType(col.Type)
		if err != nil {
			return nil, fmt.Errorf("schema: column %q: %w", col.Name, err)
		}
		cj := columnJSON{
			Name:    col.Name,
			Type:    rawType,
			Kind:    col.Kind,
			Virtual: col.Virtual,
		}
		if col.Computation != nil {
			rawComp, err := MarshalComputation(col.Computation)
			if err != nil {
				return nil, fmt.Errorf("schema: column %q: %w", col.Name, err)
			}
			cj.Computation = rawComp
		}
		out.Columns = append(out.Columns, cj)
	}

	names := make([]string, 0, len(s.indexes))
	for name := range s.indexes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.Indexes = append(out.Indexes, s.indexes[name])
	}

	if s.view != nil {
		out.View = &viewJSON{
			BaseTable:         s.view.BaseTable,
			BaseID:            s.view.BaseID.String(),
			IncludeAllColumns: s.view.IncludeAllColumns,
			WhereClause:       s.view.WhereClause,
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON rehydrates a schema through the builder so the same
// validation applies to persisted and freshly built schemas.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var in schemaJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("schema: failed to decode schema: %w", err)
	}

	id, err := uuid.Parse(in.ID)
	if err != nil {
		return fmt.Errorf("schema: invalid table id %q: %w", in.ID, err)
	}

	b := NewBuilder(in.Keyspace, in.Table).WithID(id)
	for _, cj := range in.Columns {
		t, err := types.UnmarshalType(cj.Type)
		if err != nil {
			return fmt.Errorf("schema: column %q: %w", cj.Name, err)
		}
		switch {
		case cj.Computation != nil:
			comp, err := UnmarshalComputation(cj.Computation)
			if err != nil {
				return fmt.Errorf("schema: column %q: %w", cj.Name, err)
			}
			b.WithComputedColumn(cj.Name, t, cj.Kind, comp)
		case cj.Virtual:
			b.WithVirtualColumn(cj.Name, t)
		default:
			b.WithColumn(cj.Name, t, cj.Kind)
		}
	}
	for _, im := range in.Indexes {
		b.WithIndex(im)
	}
	if in.View != nil {
		baseID, err := uuid.Parse(in.View.BaseID)
		if err != nil {
			return fmt.Errorf("schema: invalid base table id %q: %w", in.View.BaseID, err)
		}
		b.WithView(ViewInfo{
			BaseTable:         in.View.BaseTable,
			BaseID:            baseID,
			IncludeAllColumns: in.View.IncludeAllColumns,
			WhereClause:       in.View.WhereClause,
		})
	}

	built, err := b.Build()
	if err != nil {
		return err
	}
	*s = *built
	return nil
}
