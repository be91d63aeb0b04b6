package index

import (
	"testing"

	"github.com/tesseradb/tessera/internal/schema"
	"github.com/tesseradb/tessera/pkg/types"
)

// baseSchema builds the events table used across tests:
//
//	PRIMARY KEY ((pk1, pk2), ck1, ck2)
//	regular: v1 text, tags map<text, int>, labels set<text>, notes list<text>
func baseSchema(t *testing.T, indexes ...schema.IndexMetadata) *schema.Schema {
	t.Helper()
	b := schema.NewBuilder("app", "events").
		WithColumn("pk1", types.TextType, schema.PartitionKey).
		WithColumn("pk2", types.LongType, schema.PartitionKey).
		WithColumn("ck1", types.TimestampType, schema.ClusteringKey).
		WithColumn("ck2", types.TextType, schema.ClusteringKey).
		WithColumn("v1", types.TextType, schema.Regular).
		WithColumn("tags", types.MapType{Keys: types.TextType, Values: types.IntType}, schema.Regular).
		WithColumn("labels", types.SetType{Elements: types.TextType}, schema.Regular).
		WithColumn("notes", types.ListType{Elements: types.TextType}, schema.Regular)
	for _, im := range indexes {
		b.WithIndex(im)
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build base schema: %v", err)
	}
	return s
}

// columnNames projects a column slice to its names.
func columnNames(cols []schema.Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.Name)
	}
	return out
}
