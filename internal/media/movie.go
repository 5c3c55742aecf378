package media

import (
	"fmt"
	"strings"
)

// Movie is the merged metadata record for a single title.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Year        string   `json:"year,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Countries   []string `json:"countries,omitempty"`
	Description string   `json:"description,omitempty"`
	PosterURL   string   `json:"poster_url,omitempty"`
}

// StreamLink is a single watchable link for a title.
type StreamLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Key returns the stable identifier used for view statistics. The provider
// ID is preferred; titles are the fallback for records that predate IDs.
func (m Movie) Key() string {
	if m.ID > 0 {
		return fmt.Sprintf("kp:%d", m.ID)
	}
	return "title:" + strings.ToLower(strings.Join(strings.Fields(m.Title), " "))
}

// DisplayTitle renders the title with its year when known.
func (m Movie) DisplayTitle() string {
	if m.Year == "" {
		return m.Title
	}
	return fmt.Sprintf("%s (%s)", m.Title, m.Year)
}
