package index

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseradb/tessera/internal/schema"
	"github.com/tesseradb/tessera/pkg/types"
)

// mutableTable simulates a table whose published schema is replaced on
// schema change.
type mutableTable struct {
	current *schema.Schema
}

func (t *mutableTable) Schema() *schema.Schema { return t.current }

func TestManager_ReloadPopulatesRegistry(t *testing.T) {
	base := baseSchema(t,
		schema.NewIndexMetadata("by_v1", false, "v1"),
		schema.NewIndexMetadata("by_tag_keys", false, "keys(tags)"),
	)
	m := NewManager(StaticTable(base), zerolog.Nop())
	require.NoError(t, m.Reload())

	indexes := m.ListIndexes()
	require.Len(t, indexes, 2)

	names := make(map[string]Index, len(indexes))
	for _, idx := range indexes {
		names[idx.Metadata().Name] = idx
	}
	require.Contains(t, names, "by_v1")
	require.Contains(t, names, "by_tag_keys")
	assert.Equal(t, TargetRegularValues, names["by_v1"].TargetType())
	assert.Equal(t, "v1", names["by_v1"].TargetColumn())
	assert.Equal(t, TargetCollectionKeys, names["by_tag_keys"].TargetType())
	assert.Equal(t, "tags", names["by_tag_keys"].TargetColumn())
}

func TestManager_ReloadIdempotent(t *testing.T) {
	base := baseSchema(t,
		schema.NewIndexMetadata("by_v1", false, "v1"),
		schema.NewIndexMetadata("by_ck1", true, "ck1"),
	)
	m := NewManager(StaticTable(base), zerolog.Nop())
	require.NoError(t, m.Reload())
	first := m.indexes

	require.NoError(t, m.Reload())
	second := m.indexes

	require.Equal(t, len(first), len(second))
	for name, idx := range first {
		again, ok := second[name]
		require.True(t, ok)
		assert.Equal(t, idx, again)
	}
}

func TestManager_ReloadDropsStaleEntries(t *testing.T) {
	table := &mutableTable{current: baseSchema(t,
		schema.NewIndexMetadata("by_v1", false, "v1"),
		schema.NewIndexMetadata("by_ck1", true, "ck1"),
	)}
	m := NewManager(table, zerolog.Nop())
	require.NoError(t, m.Reload())
	require.Len(t, m.ListIndexes(), 2)

	// Schema change drops by_ck1 and adds by_tags.
	table.current = baseSchema(t,
		schema.NewIndexMetadata("by_v1", false, "v1"),
		schema.NewIndexMetadata("by_tags", false, "values(tags)"),
	)
	require.NoError(t, m.Reload())

	names := make([]string, 0)
	for _, idx := range m.ListIndexes() {
		names = append(names, idx.Metadata().Name)
	}
	assert.ElementsMatch(t, []string{"by_v1", "by_tags"}, names)
}

func TestDiffIndexes(t *testing.T) {
	existing := map[string]Index{
		"a": {},
		"b": {},
	}
	desired := map[string]schema.IndexMetadata{
		"b": schema.NewIndexMetadata("b", false, "v1"),
		"c": schema.NewIndexMetadata("c", false, "v1"),
	}

	d := diffIndexes(existing, desired)
	assert.Equal(t, []string{"c"}, d.Added)
	assert.Equal(t, []string{"a"}, d.Removed)
	assert.Equal(t, []string{"b"}, d.Kept)
}

func TestManager_DependentIndexes(t *testing.T) {
	base := baseSchema(t,
		schema.NewIndexMetadata("by_v1", false, "v1"),
		schema.NewIndexMetadata("by_tag_keys", false, "keys(tags)"),
		schema.NewIndexMetadata("by_tag_values", false, "values(tags)"),
	)
	m := NewManager(StaticTable(base), zerolog.Nop())
	require.NoError(t, m.Reload())

	tags, _ := base.Column("tags")
	dependent := m.DependentIndexes(tags)
	names := make([]string, 0, len(dependent))
	for _, im := range dependent {
		names = append(names, im.Name)
	}
	assert.ElementsMatch(t, []string{"by_tag_keys", "by_tag_values"}, names)

	ck2, _ := base.Column("ck2")
	assert.Empty(t, m.DependentIndexes(ck2))
}

func TestManager_IsIndex(t *testing.T) {
	base := baseSchema(t,
		schema.NewIndexMetadata("by_v1", false, "v1"),
		schema.NewIndexMetadata("by_ck1", true, "ck1"),
	)
	m := NewManager(StaticTable(base), zerolog.Nop())
	require.NoError(t, m.Reload())

	globalView, err := m.CreateViewForIndex(base.Indexes()["by_v1"], true)
	require.NoError(t, err)
	localView, err := m.CreateViewForIndex(base.Indexes()["by_ck1"], true)
	require.NoError(t, err)

	assert.True(t, m.IsIndex(globalView))
	assert.True(t, m.IsIndex(localView))
	assert.False(t, m.IsIndex(base))

	assert.True(t, m.IsGlobalIndex(globalView))
	// Local index backing tables are not global indexes.
	assert.False(t, m.IsGlobalIndex(localView))
	assert.False(t, m.IsGlobalIndex(base))

	// A table that merely ends in _index is not an index backing table.
	stranger, err := schema.NewBuilder("app", "unrelated_index").
		WithColumn("k", types.TextType, schema.PartitionKey).
		Build()
	require.NoError(t, err)
	assert.False(t, m.IsIndex(stranger))
	assert.False(t, m.IsGlobalIndex(stranger))
}

func TestManager_AddIndexUpserts(t *testing.T) {
	base := baseSchema(t)
	m := NewManager(StaticTable(base), zerolog.Nop())

	require.NoError(t, m.AddIndex(schema.NewIndexMetadata("by_x", false, "v1")))
	require.NoError(t, m.AddIndex(schema.NewIndexMetadata("by_x", false, "values(tags)")))

	indexes := m.ListIndexes()
	require.Len(t, indexes, 1)
	assert.Equal(t, TargetCollectionValues, indexes[0].TargetType())
	assert.Equal(t, "tags", indexes[0].TargetColumn())
}
