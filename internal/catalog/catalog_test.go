package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tesserrors "github.com/tesseradb/tessera/internal/errors"
	"github.com/tesseradb/tessera/internal/schema"
	"github.com/tesseradb/tessera/pkg/types"
)

func setupCatalogTest(t *testing.T) *SQLiteCatalog {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "system.db")
	cat, err := NewCatalog(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func baseSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.NewBuilder("app", "events").
		WithColumn("pk", types.TextType, schema.PartitionKey).
		WithColumn("ck", types.TimestampType, schema.ClusteringKey).
		WithColumn("v", types.IntType, schema.Regular).
		Build()
	require.NoError(t, err)
	return s
}

func TestCatalog_SaveAndListIndexes(t *testing.T) {
	cat := setupCatalogTest(t)
	ctx := context.Background()

	require.NoError(t, cat.SaveIndex(ctx, "events", schema.NewIndexMetadata("by_v", false, "v")))
	require.NoError(t, cat.SaveIndex(ctx, "events", schema.NewIndexMetadata("by_ck", true, "ck")))
	require.NoError(t, cat.SaveIndex(ctx, "other", schema.NewIndexMetadata("by_x", false, "x")))

	got, err := cat.ListIndexes(ctx, "events")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "by_ck", got[0].Name)
	assert.True(t, got[0].Local)
	target, err := got[0].Target()
	require.NoError(t, err)
	assert.Equal(t, "ck", target)

	assert.Equal(t, "by_v", got[1].Name)
	assert.False(t, got[1].Local)
}

func TestCatalog_SaveIndexUpserts(t *testing.T) {
	cat := setupCatalogTest(t)
	ctx := context.Background()

	require.NoError(t, cat.SaveIndex(ctx, "events", schema.NewIndexMetadata("by_v", false, "v")))
	require.NoError(t, cat.SaveIndex(ctx, "events", schema.NewIndexMetadata("by_v", true, "ck")))

	got, err := cat.ListIndexes(ctx, "events")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Local)
	target, err := got[0].Target()
	require.NoError(t, err)
	assert.Equal(t, "ck", target)
}

func TestCatalog_DeleteIndex(t *testing.T) {
	cat := setupCatalogTest(t)
	ctx := context.Background()

	require.NoError(t, cat.SaveIndex(ctx, "events", schema.NewIndexMetadata("by_v", false, "v")))
	require.NoError(t, cat.DeleteIndex(ctx, "events", "by_v"))

	got, err := cat.ListIndexes(ctx, "events")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalog_SaveAndGetView(t *testing.T) {
	cat := setupCatalogTest(t)
	ctx := context.Background()
	base := baseSchema(t)

	view, err := schema.NewBuilder("app", "by_v_index").
		WithColumn("v", types.IntType, schema.PartitionKey).
		WithComputedColumn("idx_token", types.LongType, schema.ClusteringKey, schema.TokenComputation{}).
		WithColumn("pk", types.TextType, schema.ClusteringKey).
		WithColumn("ck", types.TimestampType, schema.ClusteringKey).
		WithViewInfo(base, false, "v IS NOT NULL").
		Build()
	require.NoError(t, err)

	require.NoError(t, cat.SaveView(ctx, view))

	back, err := cat.GetView(ctx, "by_v_index")
	require.NoError(t, err)

	assert.Equal(t, view.ID(), back.ID())
	assert.Equal(t, view.Table(), back.Table())
	require.Equal(t, len(view.AllColumns()), len(back.AllColumns()))
	for i, want := range view.AllColumns() {
		got := back.AllColumns()[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Kind, got.Kind)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Computation, got.Computation)
	}
	require.True(t, back.IsView())
	assert.Equal(t, "events", back.View().BaseTable)
	assert.Equal(t, "v IS NOT NULL", back.View().WhereClause)
}

func TestCatalog_GetViewNotFound(t *testing.T) {
	cat := setupCatalogTest(t)

	_, err := cat.GetView(context.Background(), "missing_index")
	require.Error(t, err)
	assert.True(t, errors.Is(err,
		tesserrors.New(tesserrors.ErrCategoryCatalog, tesserrors.CodeNotFound, "")))
}

func TestCatalog_SaveViewRejectsNonView(t *testing.T) {
	cat := setupCatalogTest(t)

	err := cat.SaveView(context.Background(), baseSchema(t))
	require.Error(t, err)
	assert.Equal(t, tesserrors.CodeSaveFailed, tesserrors.GetCode(err))
}

func TestCatalog_ListViews(t *testing.T) {
	cat := setupCatalogTest(t)
	ctx := context.Background()
	base := baseSchema(t)

	for _, name := range []string{"b_index", "a_index"} {
		view, err := schema.NewBuilder("app", name).
			WithColumn("v", types.IntType, schema.PartitionKey).
			WithViewInfo(base, false, "v IS NOT NULL").
			Build()
		require.NoError(t, err)
		require.NoError(t, cat.SaveView(ctx, view))
	}

	views, err := cat.ListViews(ctx, "events")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "a_index", views[0].Table())
	assert.Equal(t, "b_index", views[1].Table())

	none, err := cat.ListViews(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, none)
}
