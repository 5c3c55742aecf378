package rutube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinebot/internal/media"
	"cinebot/internal/services"
)

const (
	defaultBaseURL     = "https://rutube.ru"
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxLinks    = 3
)

// Config describes the Rutube client configuration.
type Config struct {
	BaseURL      string
	SearchSuffix string
	MaxLinks     int
	HTTPClient   *http.Client
}

// Client wraps the Rutube video search API.
type Client struct {
	baseURL      *url.URL
	searchSuffix string
	maxLinks     int
	http         *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("rutube: parse base url: %w", err)
	}
	maxLinks := cfg.MaxLinks
	if maxLinks <= 0 {
		maxLinks = defaultMaxLinks
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:      baseURL,
		searchSuffix: strings.TrimSpace(cfg.SearchSuffix),
		maxLinks:     maxLinks,
		http:         client,
	}, nil
}

// Search looks up watchable links for a title. An empty result is a valid
// response, not an error; only transport and server failures fail the call.
func (c *Client) Search(ctx context.Context, title string) ([]media.StreamLink, error) {
	if c == nil {
		return nil, errors.New("rutube: client is nil")
	}
	query := title
	if c.searchSuffix != "" {
		query = title + " " + c.searchSuffix
	}

	endpoint := c.baseURL.JoinPath("api", "search", "video")
	params := url.Values{}
	params.Set("query", query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("rutube: build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "rutube", "search", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, services.Wrap(services.ErrUnavailable, "rutube", "search",
			fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "rutube", "decode search response", err)
	}

	links := make([]media.StreamLink, 0, c.maxLinks)
	for _, result := range payload.Results {
		if len(links) >= c.maxLinks {
			break
		}
		linkURL := result.VideoURL
		if linkURL == "" && result.ID != "" {
			linkURL = c.baseURL.JoinPath("video", result.ID).String() + "/"
		}
		if linkURL == "" {
			continue
		}
		if !strings.HasPrefix(linkURL, "http") {
			linkURL = "https://" + linkURL
		}
		links = append(links, media.StreamLink{URL: linkURL, Label: result.Title})
	}
	return links, nil
}

type searchResponse struct {
	Results []videoDTO `json:"results"`
}

type videoDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
}
