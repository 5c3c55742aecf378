package rutube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinebot/internal/services"
)

func TestSearchAppendsSuffixAndCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "матрица фильм" {
			t.Errorf("query = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"results": [
				{"id": "a1", "title": "Матрица", "video_url": "https://rutube.ru/video/a1/"},
				{"id": "a2", "title": "Матрица 2"},
				{"id": "a3", "title": "Матрица 3", "video_url": "rutube.ru/video/a3/"},
				{"id": "a4", "title": "Матрица 4", "video_url": "https://rutube.ru/video/a4/"}
			]
		}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL, SearchSuffix: "фильм", MaxLinks: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	links, err := client.Search(context.Background(), "матрица")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 links (capped), got %d", len(links))
	}
	if links[0].URL != "https://rutube.ru/video/a1/" || links[0].Label != "Матрица" {
		t.Fatalf("unexpected first link: %#v", links[0])
	}
	if !strings.Contains(links[1].URL, "/video/a2/") {
		t.Fatalf("expected URL built from id, got %q", links[1].URL)
	}
	if !strings.HasPrefix(links[2].URL, "https://") {
		t.Fatalf("expected scheme added, got %q", links[2].URL)
	}
}

func TestSearchEmptyResultsIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	links, err := client.Search(context.Background(), "обскурный фильм")
	if err != nil {
		t.Fatalf("empty results must not error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected no links, got %d", len(links))
	}
}

func TestSearchServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.Search(context.Background(), "anything")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
