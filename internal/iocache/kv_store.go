// Package iocache persists annotation positions behind a string-keyed store.
package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// positionsTable is the name of the table for annotation positions.
const positionsTable = "annotation_positions"

// KVStoreImpl handles durable key-value operations using various database backends.
type KVStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
	now       func() time.Time
}

var _ contract.KVStore = &KVStoreImpl{} // Compile-time check

// NewKVStore initializes and returns a new KVStore based on the backend type.
// The none backend yields a process-local MemoryStore.
func NewKVStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.KVStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	if backend == schema.NoneBackend {
		return NewMemoryStore(), nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	query, err := getCreateTableQuery(tableName)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &KVStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
		now:       time.Now,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE statement of the first migration
// with the table name substituted. All backends share the same portable DDL.
func getCreateTableQuery(tableName string) (string, error) {
	data, err := migrationsFS.ReadFile("migrations/000001_create_annotation_positions.up.sql")
	if err != nil {
		return "", fmt.Errorf("failed to read schema migration: %w", err)
	}
	return strings.Replace(string(data), positionsTable, tableName, 1), nil
}

// GetItem retrieves a value by key from the store.
func (ks *KVStoreImpl) GetItem(key string) (string, bool, error) {
	if ks.db == nil {
		return "", false, nil
	}

	quotedTableName := quoteTableName(ks.tableName, ks.backend)
	query := fmt.Sprintf(`SELECT store_value FROM %s WHERE store_key = %s`, quotedTableName, ks.getPlaceholder(1))

	var value string
	err := ks.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem inserts or replaces a key/value pair in the store.
func (ks *KVStoreImpl) SetItem(key, value string) error {
	if ks.db == nil {
		return nil
	}

	// Use backend-specific UPSERT
	_, err := ks.db.Exec(ks.getUpsertQuery(), key, value, ks.now().Unix())
	return err
}

// DeleteItem removes a key from the store.
func (ks *KVStoreImpl) DeleteItem(key string) error {
	if ks.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(ks.tableName, ks.backend)
	query := fmt.Sprintf(`DELETE FROM %s WHERE store_key = %s`, quotedTableName, ks.getPlaceholder(1))
	_, err := ks.db.Exec(query, key)
	return err
}

// Keys lists the keys starting with prefix, sorted.
// Filtering happens in Go since '_' is a LIKE wildcard.
func (ks *KVStoreImpl) Keys(prefix string) ([]string, error) {
	if ks.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(ks.tableName, ks.backend)
	rows, err := ks.db.Query(fmt.Sprintf(`SELECT store_key FROM %s`, quotedTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// getPlaceholder returns the n-th parameter placeholder for the backend.
func (ks *KVStoreImpl) getPlaceholder(n int) string {
	switch ks.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ks *KVStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(ks.tableName, ks.backend)
	switch ks.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (store_key, store_value, updated_at) VALUES (?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE store_value = new.store_value, updated_at = new.updated_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (store_key, store_value, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (store_key) DO UPDATE SET store_value = EXCLUDED.store_value, updated_at = EXCLUDED.updated_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (store_key, store_value, updated_at) VALUES (?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ks *KVStoreImpl) Close() error {
	if ks.db != nil {
		return ks.db.Close()
	}
	return nil
}

// GetStatus returns status information about the store.
func (ks *KVStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ks.backend),
		Connected: ks.db != nil,
	}

	if ks.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ks.tableName, ks.backend)

	// Get total entries
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ks.db.QueryRow(countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	// Get last and oldest entry time
	var lastTs, oldestTs int64
	rangeQuery := fmt.Sprintf("SELECT MAX(updated_at), MIN(updated_at) FROM %s", quotedTableName)
	if err := ks.db.QueryRow(rangeQuery).Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	status.TableSizeBytes = ks.tableSize(status.TotalEntries)
	return status, nil
}

// tableSize estimates the on-disk size of the table, falling back to a rough
// per-row estimate when the backend cannot report it.
func (ks *KVStoreImpl) tableSize(entries int) int64 {
	estimate := int64(entries) * 256
	var size int64

	switch ks.backend {
	case schema.SQLiteBackend:
		row := ks.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ks.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		row := ks.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, ks.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	case schema.PostgreSQLBackend:
		row := ks.db.QueryRow("SELECT pg_total_relation_size($1)", ks.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	default:
		return estimate
	}
	return size
}
