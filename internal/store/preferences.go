package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Preferences returns the user's search toggles, creating the default row
// (both sources enabled) on first access.
func (s *Store) Preferences(ctx context.Context, userID int64) (Preferences, error) {
	ctx = ensureContext(ctx)
	if err := s.ensurePreferences(ctx, userID); err != nil {
		return Preferences{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, use_metadata, use_links, updated_at
         FROM user_preferences WHERE user_id = ?`,
		userID,
	)

	var (
		prefs                 Preferences
		useMetadata, useLinks int
		updatedAt             string
	)
	if err := row.Scan(&prefs.UserID, &useMetadata, &useLinks, &updatedAt); err != nil {
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	prefs.UseMetadata = useMetadata != 0
	prefs.UseLinks = useLinks != 0

	parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return Preferences{}, fmt.Errorf("parse preferences timestamp: %w", err)
	}
	prefs.UpdatedAt = parsed
	return prefs, nil
}

// SetPreference writes one toggle. The write is idempotent: setting a toggle
// to its current value is a no-op apart from the updated_at refresh.
func (s *Store) SetPreference(ctx context.Context, userID int64, field PreferenceField, value bool) error {
	if !field.valid() {
		return fmt.Errorf("unknown preference field %q", field)
	}
	ctx = ensureContext(ctx)
	if err := s.ensurePreferences(ctx, userID); err != nil {
		return err
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	query := fmt.Sprintf(
		`UPDATE user_preferences SET %s = ?, updated_at = ? WHERE user_id = ?`,
		string(field),
	)
	if _, err := s.execWithRetry(ctx, query, boolToInt(value), timestamp, userID); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// TogglePreference flips one toggle atomically and returns the new value.
func (s *Store) TogglePreference(ctx context.Context, userID int64, field PreferenceField) (bool, error) {
	if !field.valid() {
		return false, fmt.Errorf("unknown preference field %q", field)
	}
	ctx = ensureContext(ctx)
	if err := s.ensurePreferences(ctx, userID); err != nil {
		return false, err
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	var newValue bool
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin toggle tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		update := fmt.Sprintf(
			`UPDATE user_preferences SET %s = 1 - %s, updated_at = ? WHERE user_id = ?`,
			string(field), string(field),
		)
		if _, err := tx.ExecContext(ctx, update, timestamp, userID); err != nil {
			return fmt.Errorf("toggle preference: %w", err)
		}

		var value int
		selectQuery := fmt.Sprintf(
			`SELECT %s FROM user_preferences WHERE user_id = ?`, string(field),
		)
		if err := tx.QueryRowContext(ctx, selectQuery, userID).Scan(&value); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.New("preference row vanished during toggle")
			}
			return fmt.Errorf("read toggled preference: %w", err)
		}
		newValue = value != 0
		return tx.Commit()
	})
	if err != nil {
		return false, err
	}
	return newValue, nil
}

func (s *Store) ensurePreferences(ctx context.Context, userID int64) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO user_preferences (user_id, use_metadata, use_links, updated_at)
         VALUES (?, 1, 1, ?)
         ON CONFLICT (user_id) DO NOTHING`,
		userID, timestamp,
	); err != nil {
		return fmt.Errorf("ensure preferences row: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
