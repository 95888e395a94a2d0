package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DatabaseFileName is the SQLiteStore file name inside the data directory.
const DatabaseFileName = "state.db"

// SQLiteStore keeps keys in a single SQLite table.
type SQLiteStore struct {
	DB *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and ensures the schema.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping state database: %w", err)
	}

	store := &SQLiteStore{DB: db}
	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (store *SQLiteStore) createTables() error {
	_, err := store.DB.Exec(`CREATE TABLE IF NOT EXISTS timer_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("create timer_state table: %w", err)
	}
	return nil
}

func (store *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := store.DB.QueryRow("SELECT value FROM timer_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapOpErr("get", key, err)
	}
	return value, true, nil
}

func (store *SQLiteStore) Set(key, value string) error {
	_, err := store.DB.Exec(
		"INSERT INTO timer_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return wrapOpErr("set", key, err)
}

func (store *SQLiteStore) Delete(key string) error {
	_, err := store.DB.Exec("DELETE FROM timer_state WHERE key = ?", key)
	return wrapOpErr("delete", key, err)
}

// Close closes the database.
func (store *SQLiteStore) Close() error {
	if store == nil || store.DB == nil {
		return nil
	}
	return store.DB.Close()
}
