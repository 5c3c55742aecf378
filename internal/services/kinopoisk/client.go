package kinopoisk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinebot/internal/media"
	"cinebot/internal/services"
)

const (
	defaultBaseURL     = "https://kinopoiskapiunofficial.tech/api/v2.2"
	defaultHTTPTimeout = 30 * time.Second
	maxPosterBytes     = 8 << 20
)

// Config describes the Kinopoisk client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client wraps the Kinopoisk unofficial REST API.
type Client struct {
	apiKey  string
	baseURL *url.URL
	http    *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("kinopoisk: api key is required")
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("kinopoisk: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{apiKey: apiKey, baseURL: baseURL, http: client}, nil
}

// Search queries Kinopoisk by keyword, preserving provider ranking.
// It returns services.ErrNotFound when the provider has no match and
// services.ErrUnavailable for transport or server failures.
func (c *Client) Search(ctx context.Context, query string) ([]media.Movie, error) {
	if c == nil {
		return nil, errors.New("kinopoisk: client is nil")
	}
	endpoint := c.baseURL.JoinPath("films")
	params := url.Values{}
	params.Set("keyword", query)
	params.Set("order", "RATING")
	params.Set("type", "ALL")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("kinopoisk: build search request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "kinopoisk", "search", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, services.Wrap(services.ErrUnavailable, "kinopoisk", "search",
			fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "kinopoisk", "decode search response", err)
	}

	if len(payload.Items) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "kinopoisk", "search", nil)
	}

	movies := make([]media.Movie, 0, len(payload.Items))
	for _, film := range payload.Items {
		movie := film.toMovie()
		if movie.Title == "" {
			continue
		}
		movies = append(movies, movie)
	}
	if len(movies) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "kinopoisk", "search", nil)
	}
	return movies, nil
}

// FetchPoster downloads the poster image at posterURL.
func (c *Client) FetchPoster(ctx context.Context, posterURL string) ([]byte, error) {
	if c == nil {
		return nil, errors.New("kinopoisk: client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, posterURL, nil)
	if err != nil {
		return nil, fmt.Errorf("kinopoisk: build poster request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "kinopoisk", "fetch poster", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, services.Wrap(services.ErrUnavailable, "kinopoisk", "fetch poster",
			errors.New(resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPosterBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "kinopoisk", "read poster", err)
	}
	return data, nil
}

type searchResponse struct {
	Items []filmDTO `json:"items"`
}

type filmDTO struct {
	KinopoiskID      int64       `json:"kinopoiskId"`
	NameRu           string      `json:"nameRu"`
	NameEn           string      `json:"nameEn"`
	NameOriginal     string      `json:"nameOriginal"`
	Year             json.Number `json:"year"`
	Description      string      `json:"description"`
	RatingKinopoisk  float64     `json:"ratingKinopoisk"`
	PosterURL        string      `json:"posterUrl"`
	PosterURLPreview string      `json:"posterUrlPreview"`
	Genres           []struct {
		Genre string `json:"genre"`
	} `json:"genres"`
	Countries []struct {
		Country string `json:"country"`
	} `json:"countries"`
}

func (f filmDTO) toMovie() media.Movie {
	title := f.NameRu
	if title == "" {
		title = f.NameEn
	}
	if title == "" {
		title = f.NameOriginal
	}

	poster := f.PosterURL
	if poster == "" {
		poster = f.PosterURLPreview
	}

	genres := make([]string, 0, len(f.Genres))
	for _, g := range f.Genres {
		if g.Genre != "" {
			genres = append(genres, g.Genre)
		}
	}
	countries := make([]string, 0, len(f.Countries))
	for _, co := range f.Countries {
		if co.Country != "" {
			countries = append(countries, co.Country)
		}
	}

	return media.Movie{
		ID:          f.KinopoiskID,
		Title:       title,
		Year:        yearString(f.Year),
		Rating:      f.RatingKinopoisk,
		Genres:      genres,
		Countries:   countries,
		Description: f.Description,
		PosterURL:   poster,
	}
}

// yearString tolerates both numeric and string year fields; the provider has
// shipped both over time.
func yearString(n json.Number) string {
	s := strings.TrimSpace(n.String())
	if s == "" || s == "0" || s == "null" {
		return ""
	}
	if _, err := strconv.Atoi(s); err != nil {
		return ""
	}
	return s
}
