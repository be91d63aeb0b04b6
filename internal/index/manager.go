package index

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/tesseradb/tessera/internal/schema"
)

// Table is the manager's non-owning back-reference to its base table. The
// table publishes a fresh immutable schema snapshot on every schema change.
type Table interface {
	Schema() *schema.Schema
}

// staticTable wraps a fixed schema snapshot as a Table.
type staticTable struct {
	s *schema.Schema
}

func (t staticTable) Schema() *schema.Schema { return t.s }

// StaticTable adapts a single schema snapshot to the Table interface. Useful
// for tooling and tests that operate on one published schema version.
func StaticTable(s *schema.Schema) Table {
	return staticTable{s: s}
}

// Manager is the per-table secondary index registry. Reload and AddIndex must
// be serialized by the caller alongside schema publication; the read-only
// queries are safe once a snapshot is fixed.
type Manager struct {
	table   Table
	indexes map[string]Index
	log     zerolog.Logger
}

// NewManager creates a registry for the given table. Call Reload to populate
// it from the table's current schema.
func NewManager(table Table, log zerolog.Logger) *Manager {
	return &Manager{
		table:   table,
		indexes: make(map[string]Index),
		log:     log.With().Str("component", "index_manager").Logger(),
	}
}

// Diff is the reconciliation between the registry and the schema's published
// index set, expressed over index names.
type Diff struct {
	Added   []string
	Removed []string
	Kept    []string
}

// diffIndexes computes the reconciliation between an existing registry and
// the desired metadata set. Pure function; names are sorted for determinism.
func diffIndexes(existing map[string]Index, desired map[string]schema.IndexMetadata) Diff {
	var d Diff
	for name := range existing {
		if _, ok := desired[name]; !ok {
			d.Removed = append(d.Removed, name)
		} else {
			d.Kept = append(d.Kept, name)
		}
	}
	for name := range desired {
		if _, ok := existing[name]; !ok {
			d.Added = append(d.Added, name)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Kept)
	return d
}

// Reload reconciles the registry against the table's current schema. Stale
// entries are dropped and every published index is re-parsed, so calling it
// after every schema change is safe and idempotent.
func (m *Manager) Reload() error {
	desired := m.table.Schema().Indexes()
	d := diffIndexes(m.indexes, desired)

	for _, name := range d.Removed {
		delete(m.indexes, name)
	}
	for _, im := range desired {
		if err := m.AddIndex(im); err != nil {
			return err
		}
	}

	if len(d.Added) > 0 || len(d.Removed) > 0 {
		m.log.Debug().
			Str("table", m.table.Schema().Table()).
			Strs("added", d.Added).
			Strs("removed", d.Removed).
			Int("total", len(m.indexes)).
			Msg("index registry reloaded")
	}
	return nil
}

// AddIndex parses the metadata's target and upserts the resulting Index under
// the metadata's name.
func (m *Manager) AddIndex(im schema.IndexMetadata) error {
	idx, err := NewIndex(im)
	if err != nil {
		return err
	}
	m.indexes[im.Name] = idx
	return nil
}

// ListIndexes returns all registered indexes. Order is not significant.
func (m *Manager) ListIndexes() []Index {
	out := make([]Index, 0, len(m.indexes))
	for _, idx := range m.indexes {
		out = append(out, idx)
	}
	return out
}

// DependentIndexes returns the metadata of every index that depends on the
// given column.
func (m *Manager) DependentIndexes(col schema.Column) []schema.IndexMetadata {
	var out []schema.IndexMetadata
	for _, idx := range m.indexes {
		if idx.DependsOn(col) {
			out = append(out, idx.Metadata())
		}
	}
	return out
}

// IsIndex reports whether the given schema is the backing table of some
// registered index.
func (m *Manager) IsIndex(s *schema.Schema) bool {
	for _, idx := range m.indexes {
		if s.Table() == IndexTableName(idx.Metadata().Name) {
			return true
		}
	}
	return false
}

// IsGlobalIndex reports whether the given schema is the backing table of some
// registered non-local index.
func (m *Manager) IsGlobalIndex(s *schema.Schema) bool {
	for _, idx := range m.indexes {
		if !idx.Metadata().Local && s.Table() == IndexTableName(idx.Metadata().Name) {
			return true
		}
	}
	return false
}
