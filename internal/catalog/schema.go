// Package catalog persists index and view metadata in the system catalog
// (system.db), a SQLite database that serves as the durable source of truth
// for index definitions and their synthesized backing schemas.
package catalog

// CreateIndexMetadataTableSQL creates the index metadata table. One row per
// index, keyed by base table and index name; options are stored as JSON.
const CreateIndexMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS index_metadata (
    table_name   TEXT NOT NULL,
    index_name   TEXT NOT NULL,
    local        INTEGER NOT NULL,
    options_json TEXT NOT NULL,
    created_at   INTEGER NOT NULL,
    PRIMARY KEY (table_name, index_name)
)`

// CreateViewSchemasTableSQL creates the view schemas table. The schema_blob
// column holds the snappy-compressed JSON encoding of a synthesized schema.
const CreateViewSchemasTableSQL = `
CREATE TABLE IF NOT EXISTS view_schemas (
    view_name   TEXT PRIMARY KEY,
    base_table  TEXT NOT NULL,
    schema_blob BLOB NOT NULL,
    created_at  INTEGER NOT NULL
)`

// CreateViewSchemasIndexSQL indexes views by their base table so a table's
// views can be enumerated on schema change.
const CreateViewSchemasIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_views_base ON view_schemas(base_table)`

// AllSchemaSQL returns all SQL statements needed to initialize the system catalog.
func AllSchemaSQL() []string {
	return []string{
		CreateIndexMetadataTableSQL,
		CreateViewSchemasTableSQL,
		CreateViewSchemasIndexSQL,
	}
}
