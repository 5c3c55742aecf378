package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebot/internal/media"
)

// RecordView upserts the view counter for (userID, movie). The increment is
// a single atomic statement so concurrent writers never lose counts.
func (s *Store) RecordView(ctx context.Context, userID int64, movie media.Movie) error {
	key := movie.Key()
	if key == "title:" {
		return errors.New("movie has no usable key")
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO view_stats (user_id, movie_key, title, year, count, last_viewed)
         VALUES (?, ?, ?, ?, 1, ?)
         ON CONFLICT (user_id, movie_key) DO UPDATE SET
             count = count + 1,
             title = excluded.title,
             year = excluded.year,
             last_viewed = excluded.last_viewed`,
		userID, key, movie.Title, movie.Year, timestamp,
	); err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// Stats returns the user's view statistics ordered by count descending,
// ties broken by most recent view.
func (s *Store) Stats(ctx context.Context, userID int64, limit int) ([]ViewStat, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, movie_key, title, year, count, last_viewed
         FROM view_stats
         WHERE user_id = ?
         ORDER BY count DESC, last_viewed DESC
         LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []ViewStat
	for rows.Next() {
		var (
			stat       ViewStat
			lastViewed string
		)
		if err := rows.Scan(&stat.UserID, &stat.MovieKey, &stat.Title, &stat.Year, &stat.Count, &lastViewed); err != nil {
			return nil, fmt.Errorf("scan view stat: %w", err)
		}
		stat.LastViewed, err = time.Parse(time.RFC3339Nano, lastViewed)
		if err != nil {
			return nil, fmt.Errorf("parse view timestamp: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}
