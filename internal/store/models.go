package store

import "time"

// HistoryEntry is one recorded search query. Append-only, never mutated.
type HistoryEntry struct {
	ID        int64
	UserID    int64
	Query     string
	CreatedAt time.Time
}

// ViewStat counts how often a user's searches resolved to one title.
type ViewStat struct {
	UserID     int64
	MovieKey   string
	Title      string
	Year       string
	Count      int64
	LastViewed time.Time
}

// Preferences holds a user's per-source search toggles.
type Preferences struct {
	UserID      int64
	UseMetadata bool
	UseLinks    bool
	UpdatedAt   time.Time
}

// PreferenceField names a toggle column in user_preferences.
type PreferenceField string

const (
	// PreferenceMetadata toggles the movie metadata source.
	PreferenceMetadata PreferenceField = "use_metadata"
	// PreferenceLinks toggles the streaming link source.
	PreferenceLinks PreferenceField = "use_links"
)

func (f PreferenceField) valid() bool {
	return f == PreferenceMetadata || f == PreferenceLinks
}
