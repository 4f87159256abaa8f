package db

import (
	"encoding/json"
	"fmt"

	"fabswap/internal/swap"
)

// SaveHistory replaces the persisted swap records with the given stack,
// oldest first. Called from the history change callback so the on-disk
// window always mirrors the in-memory one.
func (db *DB) SaveHistory(records []swap.CompletedSwap) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM swap_history"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %s: %w", rec.OriginalID, err)
		}
		if _, err := tx.Exec("INSERT INTO swap_history (record) VALUES (?)", string(data)); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.OriginalID, err)
		}
	}

	return tx.Commit()
}

// LoadHistory returns the persisted swap records, oldest first, capped to
// the newest limit entries.
func (db *DB) LoadHistory(limit int) ([]swap.CompletedSwap, error) {
	rows, err := db.conn.Query(`
		SELECT record FROM (
			SELECT id, record FROM swap_history ORDER BY id DESC LIMIT ?
		) ORDER BY id`, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var records []swap.CompletedSwap
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		var rec swap.CompletedSwap
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("parse history record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
