package services

import (
	"context"
	"errors"
	"testing"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/panjf2000/ants/v2"
)

func newTestPool(t *testing.T) *ants.Pool {
	t.Helper()
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)
	return workerPool
}

var errDispatcherDown = errors.New("pool is closed")

type failingDispatcher struct{}

func (failingDispatcher) Submit(_ func()) error {
	return errDispatcherDown
}

type fakeSpeechSynthesizer struct {
	synthesize func(req outbound.SynthesizeSpeechRequest) (*outbound.SpeechClip, error)
}

func (f *fakeSpeechSynthesizer) Synthesize(_ context.Context, req outbound.SynthesizeSpeechRequest) (*outbound.SpeechClip, error) {
	return f.synthesize(req)
}

type fakeStockProvider struct {
	name     domain.Provider
	assets   []domain.MediaAsset
	err      error
	searches int
}

func (f *fakeStockProvider) Name() domain.Provider {
	return f.name
}

func (f *fakeStockProvider) Search(_ context.Context, _ string) ([]domain.MediaAsset, error) {
	f.searches++
	if f.err != nil {
		return nil, f.err
	}
	return f.assets, nil
}

type fakeSearchCache struct {
	entries map[string][]domain.MediaAsset
	puts    int
}

func newFakeSearchCache() *fakeSearchCache {
	return &fakeSearchCache{entries: make(map[string][]domain.MediaAsset)}
}

func (f *fakeSearchCache) Get(_ context.Context, provider domain.Provider, query string) ([]domain.MediaAsset, error) {
	return f.entries[string(provider)+":"+query], nil
}

func (f *fakeSearchCache) Put(_ context.Context, provider domain.Provider, query string, assets []domain.MediaAsset) error {
	f.puts++
	f.entries[string(provider)+":"+query] = assets
	return nil
}

func testAsset(provider domain.Provider, id string, duration float64) domain.MediaAsset {
	return domain.MediaAsset{
		ID:       id,
		Provider: provider,
		URL:      "https://example.com/" + id + ".mp4",
		Width:    1080,
		Height:   1920,
		Duration: duration,
	}
}
