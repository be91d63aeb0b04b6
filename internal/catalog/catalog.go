package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tesseradb/tessera/internal/errors"
	"github.com/tesseradb/tessera/internal/schema"
)

// Catalog manages index and view metadata in system.db.
type Catalog interface {
	// SaveIndex upserts index metadata for a base table.
	SaveIndex(ctx context.Context, tableName string, im schema.IndexMetadata) error

	// ListIndexes returns all index metadata registered for a base table.
	ListIndexes(ctx context.Context, tableName string) ([]schema.IndexMetadata, error)

	// DeleteIndex removes one index's metadata.
	DeleteIndex(ctx context.Context, tableName, indexName string) error

	// SaveView persists a synthesized view schema.
	SaveView(ctx context.Context, view *schema.Schema) error

	// GetView retrieves a view schema by its physical name.
	GetView(ctx context.Context, viewName string) (*schema.Schema, error)

	// ListViews returns all view schemas whose base is the given table.
	ListViews(ctx context.Context, baseTable string) ([]*schema.Schema, error)

	// Close closes the catalog database connection.
	Close() error
}

// SQLiteCatalog implements Catalog using SQLite.
type SQLiteCatalog struct {
	db     *sql.DB
	dbPath string
}

// NewCatalog opens (and initializes if needed) a SQLite-based system catalog.
func NewCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range AllSchemaSQL() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("catalog: failed to initialize schema: %w", err)
		}
	}

	return &SQLiteCatalog{db: db, dbPath: dbPath}, nil
}

// Close closes the catalog database connection.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

// SaveIndex upserts index metadata for a base table.
func (c *SQLiteCatalog) SaveIndex(ctx context.Context, tableName string, im schema.IndexMetadata) error {
	optionsJSON, err := json.Marshal(im.Options)
	if err != nil {
		return errors.NewCatalogError(errors.CodeSaveFailed,
			fmt.Sprintf("failed to marshal options for index %q", im.Name), err)
	}

	local := 0
	if im.Local {
		local = 1
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO index_metadata (table_name, index_name, local, options_json, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(table_name, index_name) DO UPDATE SET
		   local = excluded.local,
		   options_json = excluded.options_json`,
		tableName, im.Name, local, string(optionsJSON), time.Now().Unix(),
	)
	if err != nil {
		return errors.NewCatalogError(errors.CodeSaveFailed,
			fmt.Sprintf("failed to save index %q on table %q", im.Name, tableName), err)
	}
	return nil
}

// ListIndexes returns all index metadata registered for a base table.
func (c *SQLiteCatalog) ListIndexes(ctx context.Context, tableName string) ([]schema.IndexMetadata, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT index_name, local, options_json FROM index_metadata WHERE table_name = ? ORDER BY index_name",
		tableName,
	)
	if err != nil {
		return nil, errors.NewCatalogError(errors.CodeLoadFailed,
			fmt.Sprintf("failed to list indexes for table %q", tableName), err)
	}
	defer rows.Close()

	var out []schema.IndexMetadata
	for rows.Next() {
		var (
			name        string
			local       int
			optionsJSON string
		)
		if err := rows.Scan(&name, &local, &optionsJSON); err != nil {
			return nil, errors.NewCatalogError(errors.CodeLoadFailed, "failed to scan index row", err)
		}
		var options map[string]string
		if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
			return nil, errors.NewCatalogError(errors.CodeLoadFailed,
				fmt.Sprintf("failed to unmarshal options for index %q", name), err)
		}
		out = append(out, schema.IndexMetadata{Name: name, Local: local != 0, Options: options})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogError(errors.CodeLoadFailed, "error iterating index rows", err)
	}
	return out, nil
}

// DeleteIndex removes one index's metadata.
func (c *SQLiteCatalog) DeleteIndex(ctx context.Context, tableName, indexName string) error {
	_, err := c.db.ExecContext(ctx,
		"DELETE FROM index_metadata WHERE table_name = ? AND index_name = ?",
		tableName, indexName,
	)
	if err != nil {
		return errors.NewCatalogError(errors.CodeSaveFailed,
			fmt.Sprintf("failed to delete index %q on table %q", indexName, tableName), err)
	}
	return nil
}

// SaveView persists a synthesized view schema as a snappy-compressed JSON blob.
func (c *SQLiteCatalog) SaveView(ctx context.Context, view *schema.Schema) error {
	if view.View() == nil {
		return errors.New(errors.ErrCategoryCatalog, errors.CodeSaveFailed,
			fmt.Sprintf("schema %q is not a view", view.Table()))
	}

	schemaJSON, err := json.Marshal(view)
	if err != nil {
		return errors.NewCatalogError(errors.CodeSaveFailed,
			fmt.Sprintf("failed to marshal view schema %q", view.Table()), err)
	}
	blob := snappy.Encode(nil, schemaJSON)

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO view_schemas (view_name, base_table, schema_blob, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(view_name) DO UPDATE SET
		   base_table = excluded.base_table,
		   schema_blob = excluded.schema_blob`,
		view.Table(), view.View().BaseTable, blob, time.Now().Unix(),
	)
	if err != nil {
		return errors.NewCatalogError(errors.CodeSaveFailed,
			fmt.Sprintf("failed to save view schema %q", view.Table()), err)
	}
	return nil
}

// GetView retrieves a view schema by its physical name.
func (c *SQLiteCatalog) GetView(ctx context.Context, viewName string) (*schema.Schema, error) {
	var blob []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT schema_blob FROM view_schemas WHERE view_name = ?",
		viewName,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCategoryCatalog, errors.CodeNotFound,
			fmt.Sprintf("view %q not found", viewName))
	}
	if err != nil {
		return nil, errors.NewCatalogError(errors.CodeLoadFailed,
			fmt.Sprintf("failed to load view %q", viewName), err)
	}
	return decodeViewBlob(viewName, blob)
}

// ListViews returns all view schemas whose base is the given table.
func (c *SQLiteCatalog) ListViews(ctx context.Context, baseTable string) ([]*schema.Schema, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT view_name, schema_blob FROM view_schemas WHERE base_table = ? ORDER BY view_name",
		baseTable,
	)
	if err != nil {
		return nil, errors.NewCatalogError(errors.CodeLoadFailed,
			fmt.Sprintf("failed to list views for table %q", baseTable), err)
	}
	defer rows.Close()

	var out []*schema.Schema
	for rows.Next() {
		var (
			name string
			blob []byte
		)
		if err := rows.Scan(&name, &blob); err != nil {
			return nil, errors.NewCatalogError(errors.CodeLoadFailed, "failed to scan view row", err)
		}
		s, err := decodeViewBlob(name, blob)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogError(errors.CodeLoadFailed, "error iterating view rows", err)
	}
	return out, nil
}

func decodeViewBlob(viewName string, blob []byte) (*schema.Schema, error) {
	schemaJSON, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, errors.NewCatalogError(errors.CodeLoadFailed,
			fmt.Sprintf("failed to decompress view %q", viewName), err)
	}
	var s schema.Schema
	if err := json.Unmarshal(schemaJSON, &s); err != nil {
		return nil, errors.NewCatalogError(errors.CodeLoadFailed,
			fmt.Sprintf("failed to unmarshal view %q", viewName), err)
	}
	return &s, nil
}
