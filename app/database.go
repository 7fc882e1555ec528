package main

import (
	"context"
	"time"
)

// DatabaseImpl is the logical database: it owns the raw file reader and
// caches the schema, tables, and indexes it derives from it.
type DatabaseImpl struct {
	dbRaw        DatabaseRaw
	tables       map[string]*TableImpl
	indexSchemas []SchemaRecord
	schemas      []SchemaRecord
	schemaLoaded bool
}

// NewDatabase opens filePath as a physical SQLite file and wraps it with
// the logical layer.
func NewDatabase(filePath string, options ...DatabaseOption) (*DatabaseImpl, error) {
	dbRaw, err := NewDatabaseRaw(filePath, options...)
	if err != nil {
		return nil, err
	}
	return &DatabaseImpl{dbRaw: dbRaw, tables: make(map[string]*TableImpl)}, nil
}

func (db *DatabaseImpl) loadSchema(ctx context.Context) error {
	if db.schemaLoaded {
		return nil
	}

	rows, err := readSchema(ctx, db.dbRaw)
	if err != nil {
		return err
	}

	tables := make(map[string]*TableImpl)
	var indexSchemas []SchemaRecord
	for _, row := range rows {
		switch row.Type {
		case "table":
			tableRaw := NewTableRaw(db.dbRaw, row.Name, row.RootPage)
			tables[row.Name] = NewTable(tableRaw, row)
		case "index":
			indexSchemas = append(indexSchemas, row)
		}
	}

	db.schemas = rows
	db.tables = tables
	db.indexSchemas = indexSchemas
	db.schemaLoaded = true
	return nil
}

// GetSchema returns every sqlite_schema row (tables, indexes, views,
// triggers) in the database.
func (db *DatabaseImpl) GetSchema(ctx context.Context) ([]SchemaRecord, error) {
	if err := db.loadSchema(ctx); err != nil {
		return nil, err
	}
	return db.schemas, nil
}

// GetTables returns the name of every user table, sqlite_schema itself
// excluded, in storage order (the order their rows appear in
// sqlite_schema, not map iteration order).
func (db *DatabaseImpl) GetTables(ctx context.Context) ([]string, error) {
	if err := db.loadSchema(ctx); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(db.tables))
	for _, row := range db.schemas {
		if row.Type == "table" {
			names = append(names, row.Name)
		}
	}
	return names, nil
}

// GetTable returns the named logical table, or KindTableNotFound.
func (db *DatabaseImpl) GetTable(ctx context.Context, name string) (Table, error) {
	if err := db.loadSchema(ctx); err != nil {
		return nil, err
	}
	if t, ok := db.tables[name]; ok {
		return t, nil
	}
	return nil, wrapf(KindTableNotFound, "get_table", "table", name)
}

// GetIndexFor returns an index on tableName whose first key column is
// column, or (nil, nil)
// if no such index exists — callers fall back to a full scan rather than
// treat a missing index as an error.
func (db *DatabaseImpl) GetIndexFor(ctx context.Context, tableName, column string) (Index, error) {
	if err := db.loadSchema(ctx); err != nil {
		return nil, err
	}
	for _, row := range db.indexSchemas {
		if row.TblName != tableName {
			continue
		}
		if pos, ok := columnIndexFromIndexDDL(row.SQL, column); ok && pos == 0 {
			return NewIndex(NewIndexRaw(db.dbRaw, row.Name, row.RootPage), row), nil
		}
	}
	return nil, nil
}

// GetPageSize returns the database's page size in bytes.
func (db *DatabaseImpl) GetPageSize() int {
	return db.dbRaw.GetPageSize()
}

// GetReadTimeout returns the configured per-command deadline, derived from
// --read-timeout-ms.
func (db *DatabaseImpl) GetReadTimeout() time.Duration {
	return db.dbRaw.GetReadTimeout()
}

// Close releases the underlying file.
func (db *DatabaseImpl) Close() error {
	return db.dbRaw.Close()
}
