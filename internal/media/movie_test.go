package media

import "testing"

func TestKeyPrefersProviderID(t *testing.T) {
	m := Movie{ID: 301, Title: "The Matrix"}
	if got := m.Key(); got != "kp:301" {
		t.Fatalf("Key() = %q", got)
	}
}

func TestKeyFallsBackToTitle(t *testing.T) {
	m := Movie{Title: "  The   Matrix "}
	if got := m.Key(); got != "title:the matrix" {
		t.Fatalf("Key() = %q", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := (Movie{Title: "Inception", Year: "2010"}).DisplayTitle(); got != "Inception (2010)" {
		t.Fatalf("DisplayTitle() = %q", got)
	}
	if got := (Movie{Title: "Inception"}).DisplayTitle(); got != "Inception" {
		t.Fatalf("DisplayTitle() = %q", got)
	}
}
