package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RecordSearch appends a history entry for the user. Failures indicate the
// storage layer is unavailable and must be surfaced, not swallowed.
func (s *Store) RecordSearch(ctx context.Context, userID int64, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("query cannot be empty")
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO search_history (user_id, query, created_at) VALUES (?, ?, ?)`,
		userID, query, timestamp,
	); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// History returns the user's most recent searches, newest first, bounded by
// limit.
func (s *Store) History(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, query, created_at
         FROM search_history
         WHERE user_id = ?
         ORDER BY created_at DESC, id DESC
         LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			entry     HistoryEntry
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Query, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
