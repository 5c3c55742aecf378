package kinopoisk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinebot/internal/services"
)

func TestSearchMapsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-KEY"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		if got := r.URL.Query().Get("keyword"); got != "inception" {
			t.Errorf("keyword = %q", got)
		}
		if got := r.URL.Query().Get("order"); got != "RATING" {
			t.Errorf("order = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{
					"kinopoiskId": 447301,
					"nameRu": "Начало",
					"nameEn": "Inception",
					"year": 2010,
					"description": "A thief who steals secrets.",
					"ratingKinopoisk": 8.7,
					"posterUrl": "https://img.example/447301.jpg",
					"genres": [{"genre": "фантастика"}, {"genre": "боевик"}],
					"countries": [{"country": "США"}]
				},
				{"kinopoiskId": 1, "nameRu": "Другой"}
			]
		}`))
	}))
	defer srv.Close()

	client, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	movies, err := client.Search(context.Background(), "inception")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	first := movies[0]
	if first.ID != 447301 || first.Title != "Начало" || first.Year != "2010" {
		t.Fatalf("unexpected first movie: %#v", first)
	}
	if first.Rating != 8.7 || len(first.Genres) != 2 || first.PosterURL == "" {
		t.Fatalf("mapping lost fields: %#v", first)
	}
}

func TestSearchEmptyItemsIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	client, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.Search(context.Background(), "nothing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.Search(context.Background(), "anything")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestFetchPoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	client, err := New(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := client.FetchPoster(context.Background(), srv.URL+"/poster.jpg")
	if err != nil {
		t.Fatalf("FetchPoster: %v", err)
	}
	if len(data) != 3 {
		t.Fatalf("expected 3 bytes, got %d", len(data))
	}
}
