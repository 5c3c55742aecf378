package testsupport

import (
	"context"
	"sync/atomic"

	"cinebot/internal/media"
)

// FakeMetadataProvider is a scriptable metadata provider for tests.
type FakeMetadataProvider struct {
	Movies []media.Movie
	Err    error
	calls  atomic.Int64
}

func (f *FakeMetadataProvider) Search(_ context.Context, _ string) ([]media.Movie, error) {
	f.calls.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Movies, nil
}

// Calls reports how many times Search was invoked.
func (f *FakeMetadataProvider) Calls() int64 { return f.calls.Load() }

// FakeLinkProvider is a scriptable link provider for tests.
type FakeLinkProvider struct {
	Links   []media.StreamLink
	Err     error
	calls   atomic.Int64
	queries []string
}

func (f *FakeLinkProvider) Search(_ context.Context, title string) ([]media.StreamLink, error) {
	f.calls.Add(1)
	f.queries = append(f.queries, title)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Links, nil
}

// Calls reports how many times Search was invoked.
func (f *FakeLinkProvider) Calls() int64 { return f.calls.Load() }

// Queries returns the titles the provider was asked for, in order.
func (f *FakeLinkProvider) Queries() []string { return f.queries }

// FakePosterFetcher serves a fixed payload for any poster URL.
type FakePosterFetcher struct {
	Data  []byte
	Err   error
	calls atomic.Int64
}

func (f *FakePosterFetcher) FetchPoster(_ context.Context, _ string) ([]byte, error) {
	f.calls.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Data, nil
}

// Calls reports how many times FetchPoster was invoked.
func (f *FakePosterFetcher) Calls() int64 { return f.calls.Load() }
