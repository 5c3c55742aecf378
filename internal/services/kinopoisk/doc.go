// Package kinopoisk implements the movie metadata provider client backed by
// the Kinopoisk unofficial API.
package kinopoisk
