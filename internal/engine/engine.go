// Package engine is the top-level Database: it owns the catalog, a
// row store per table, and the query pipeline (lex -> parse ->
// resolve -> execute). It is the library's single entry point.
package engine

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"kronkdb/internal/dblog"
	"kronkdb/internal/query/parse"
	"kronkdb/internal/query/resolve"
	"kronkdb/internal/schema"
	"kronkdb/internal/storage"
	"kronkdb/internal/storage/filestore"
	"kronkdb/internal/storage/memstore"
)

// Backend selects which row store variant new tables are backed by.
type Backend int

const (
	// BackendMemory backs every table with an in-memory byte vector;
	// no durability.
	BackendMemory Backend = iota
	// BackendFile backs every table with a file under Config.DataDir.
	BackendFile
)

// Config configures a Database. Use DefaultConfig or build one
// directly; the zero value is also usable, since New fills in the
// zero-valued fields as documented below.
type Config struct {
	// DataDir is the root directory file-backed tables live under.
	// Defaults to filestore.DefaultRootDir when empty.
	DataDir string
	// Backend selects the row store variant for tables added after
	// construction. Defaults to BackendMemory.
	Backend Backend
	// Logger receives lifecycle events. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns the zero-friendly default: in-memory tables,
// no logging.
func DefaultConfig() Config {
	return Config{
		DataDir: filestore.DefaultRootDir,
		Backend: BackendMemory,
		Logger:  dblog.NewNop(),
	}
}

// Database is a named catalog of tables, each backed by its own row
// store. The concurrency model is single-threaded: callers must not
// interleave inserts to the same table from multiple goroutines.
type Database struct {
	catalog *schema.DatabaseDescriptor
	stores  map[string]storage.Store
	cfg     Config
}

// New returns an empty Database named name.
func New(name string, cfg Config) *Database {
	if cfg.DataDir == "" {
		cfg.DataDir = filestore.DefaultRootDir
	}
	if cfg.Logger == nil {
		cfg.Logger = dblog.NewNop()
	}
	return &Database{
		catalog: schema.NewDatabaseDescriptor(name),
		stores:  make(map[string]storage.Store),
		cfg:     cfg,
	}
}

// AddTable registers table in the catalog and opens its row store.
// It fails with a *schema.DuplicateTableError if the name is already
// registered.
func (db *Database) AddTable(table *schema.TableDescriptor) error {
	if err := db.catalog.AddTable(table); err != nil {
		return err
	}

	store, err := db.openStore(table)
	if err != nil {
		return err
	}
	db.stores[table.Name] = store

	db.cfg.Logger.Infow("table added", "database", db.catalog.Name, "table", table.Name, "row_size", table.RowSize)
	return nil
}

func (db *Database) openStore(table *schema.TableDescriptor) (storage.Store, error) {
	switch db.cfg.Backend {
	case BackendFile:
		dir := filepath.Join(db.cfg.DataDir, "tables")
		return filestore.Open(dir, table.Name)
	default:
		return memstore.New(table), nil
	}
}

// InsertColumns inserts one row into tableName, assigning it the next
// sequential id.
func (db *Database) InsertColumns(tableName string, columns []schema.ColumnValue) (uint64, error) {
	table, err := db.catalog.TableWithName(tableName)
	if err != nil {
		return 0, err
	}
	store, ok := db.stores[tableName]
	if !ok {
		return 0, fmt.Errorf("engine: table %q has no open store", tableName)
	}

	id, err := store.Insert(table, columns)
	if err != nil {
		db.cfg.Logger.Warnw("insert failed", "table", tableName, "error", err)
		return 0, err
	}

	db.cfg.Logger.Infow("row inserted", "table", tableName, "id", id)
	return id, nil
}

// ParseQuery lexes, parses, and resolves text against this
// Database's catalog, composing package lex (via package parse) and
// package resolve.
func (db *Database) ParseQuery(text string) (*resolve.SelectQuery, error) {
	raw, err := parse.Parse(text)
	if err != nil {
		db.cfg.Logger.Warnw("query parse failed", "error", err)
		return nil, err
	}
	query, err := resolve.Resolve(raw, db.catalog)
	if err != nil {
		db.cfg.Logger.Warnw("query resolve failed", "error", err)
		return nil, err
	}
	return query, nil
}

// Query parses text against the catalog and executes it.
func (db *Database) Query(text string) ([]ResultRow, error) {
	query, err := db.ParseQuery(text)
	if err != nil {
		return nil, err
	}
	return db.Execute(query)
}

// AddTableSpecs is a convenience that builds and registers a table
// descriptor from a name and column spec list in one call.
func (db *Database) AddTableSpecs(name string, specs []schema.ColumnSpec) (*schema.TableDescriptor, error) {
	table, err := schema.NewTableDescriptor(name, specs)
	if err != nil {
		return nil, err
	}
	if err := db.AddTable(table); err != nil {
		return nil, err
	}
	return table, nil
}
