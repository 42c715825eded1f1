package db

import (
	"fmt"
	"log/slog"
	"sort"
)

// SetStates upserts every entry in values inside one transaction. Keys with
// an empty value are deleted rather than stored.
func (d *DB) SetStates(values map[string]string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		if value == "" {
			if _, err := tx.Exec(deleteStateSQL, key); err != nil {
				return fmt.Errorf("delete state %q: %w", key, err)
			}
			continue
		}
		if _, err := tx.Exec(upsertStateSQL, key, value); err != nil {
			return fmt.Errorf("set state %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state: %w", err)
	}

	slog.Debug("state batch updated", "keys", keys)
	return nil
}

// ClearState removes every key and returns how many rows were deleted.
func (d *DB) ClearState() (int64, error) {
	res, err := d.conn.Exec("DELETE FROM session_state")
	if err != nil {
		return 0, fmt.Errorf("clear state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear state rows affected: %w", err)
	}
	slog.Info("session state cleared", "removed", n)
	return n, nil
}

// AllState returns every stored key/value pair.
func (d *DB) AllState() (map[string]string, error) {
	rows, err := d.conn.Query("SELECT key, value FROM session_state")
	if err != nil {
		return nil, fmt.Errorf("query state: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan state row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state rows: %w", err)
	}
	return result, nil
}

const deleteStateSQL = `DELETE FROM session_state WHERE key = ?`

const upsertStateSQL = `INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, datetime('now'))
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
