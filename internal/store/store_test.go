package store_test

import (
	"context"
	"fmt"
	"testing"

	"cinebot/internal/media"
	"cinebot/internal/store"
	"cinebot/internal/testsupport"
)

func TestRecordSearchAndHistoryOrdering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := s.RecordSearch(ctx, 42, fmt.Sprintf("movie %d", i)); err != nil {
			t.Fatalf("RecordSearch: %v", err)
		}
	}

	entries, err := s.History(ctx, 42, 3)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit applied, got %d entries", len(entries))
	}
	if entries[0].Query != "movie 5" || entries[2].Query != "movie 3" {
		t.Fatalf("expected newest first, got %q .. %q", entries[0].Query, entries[2].Query)
	}
}

func TestHistoryIsPerUser(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := s.RecordSearch(ctx, 1, "alpha"); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	if err := s.RecordSearch(ctx, 2, "beta"); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}

	entries, err := s.History(ctx, 1, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 || entries[0].Query != "alpha" {
		t.Fatalf("user 1 history polluted: %#v", entries)
	}
}

func TestRecordSearchRejectsEmptyQuery(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	if err := s.RecordSearch(context.Background(), 1, "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestRecordViewMonotonicCount(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	movie := media.Movie{ID: 301, Title: "The Matrix", Year: "1999"}
	for i := 0; i < 3; i++ {
		if err := s.RecordView(ctx, 7, movie); err != nil {
			t.Fatalf("RecordView: %v", err)
		}
	}

	stats, err := s.Stats(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one stat row, got %d", len(stats))
	}
	if stats[0].Count != 3 {
		t.Fatalf("count = %d, want 3", stats[0].Count)
	}
	if stats[0].MovieKey != "kp:301" {
		t.Fatalf("movie key = %q", stats[0].MovieKey)
	}
}

func TestStatsOrderedByCountThenRecency(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	a := media.Movie{ID: 1, Title: "A"}
	b := media.Movie{ID: 2, Title: "B"}
	if err := s.RecordView(ctx, 9, a); err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if err := s.RecordView(ctx, 9, a); err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if err := s.RecordView(ctx, 9, b); err != nil {
		t.Fatalf("RecordView: %v", err)
	}

	stats, err := s.Stats(ctx, 9, 10)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}
	if stats[0].Title != "A" || stats[0].Count != 2 {
		t.Fatalf("first row should be A with 2 views: %#v", stats[0])
	}
	if stats[1].Title != "B" || stats[1].Count != 1 {
		t.Fatalf("second row should be B with 1 view: %#v", stats[1])
	}
}

func TestPreferencesLazyDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	prefs, err := s.Preferences(context.Background(), 5)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if !prefs.UseMetadata || !prefs.UseLinks {
		t.Fatalf("defaults should enable both sources: %#v", prefs)
	}
}

func TestSetPreferenceIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.SetPreference(ctx, 5, store.PreferenceLinks, false); err != nil {
			t.Fatalf("SetPreference: %v", err)
		}
	}
	prefs, err := s.Preferences(ctx, 5)
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs.UseLinks {
		t.Fatal("use_links should be off")
	}
	if !prefs.UseMetadata {
		t.Fatal("use_metadata must be untouched")
	}
}

func TestSetPreferenceUnknownField(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	if err := s.SetPreference(context.Background(), 5, store.PreferenceField("use_admin"), true); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestTogglePreference(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	v, err := s.TogglePreference(ctx, 5, store.PreferenceMetadata)
	if err != nil {
		t.Fatalf("TogglePreference: %v", err)
	}
	if v {
		t.Fatal("first toggle should turn metadata off")
	}
	v, err = s.TogglePreference(ctx, 5, store.PreferenceMetadata)
	if err != nil {
		t.Fatalf("TogglePreference: %v", err)
	}
	if !v {
		t.Fatal("second toggle should turn metadata back on")
	}
}
