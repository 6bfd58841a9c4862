package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

const pexelsSearchPayload = `{
  "videos": [
    {
      "id": 857195,
      "duration": 13,
      "video_files": [
        {"id": 1, "width": 1920, "height": 1080, "link": "https://cdn.example.com/landscape.mp4"},
        {"id": 2, "width": 720, "height": 1280, "link": "https://cdn.example.com/portrait-small.mp4"},
        {"id": 3, "width": 1080, "height": 1920, "link": "https://cdn.example.com/portrait-large.mp4"}
      ]
    },
    {
      "id": 42,
      "duration": 8,
      "video_files": [
        {"id": 4, "width": 1920, "height": 1080, "link": ""}
      ]
    }
  ]
}`

func TestPexelsProvider_Search(t *testing.T) {
	var gotRequest *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pexelsSearchPayload))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	provider := NewPexelsProvider(NewContentFetcher(logger), &config.PexelsConfig{
		ApiUrl:  server.URL,
		ApiKey:  "test-key",
		PerPage: 10,
	}, logger)

	if provider.Name() != domain.PexelsProvider {
		t.Errorf("Provider name %s", provider.Name())
	}

	assets, err := provider.Search(context.Background(), "ocean life")
	if err != nil {
		t.Fatal("Search failed:", err)
	}

	if gotRequest.Header.Get("Authorization") != "test-key" {
		t.Errorf("Authorization header %q", gotRequest.Header.Get("Authorization"))
	}
	query := gotRequest.URL.Query()
	if query.Get("query") != "ocean life" {
		t.Errorf("query param %q", query.Get("query"))
	}
	if query.Get("orientation") != "portrait" {
		t.Errorf("orientation param %q", query.Get("orientation"))
	}
	if query.Get("per_page") != "10" {
		t.Errorf("per_page param %q", query.Get("per_page"))
	}

	// The second video has no downloadable file and must be skipped.
	if len(assets) != 1 {
		t.Fatalf("Expected 1 asset, got %d", len(assets))
	}
	asset := assets[0]
	if asset.ID != "857195" || asset.Provider != domain.PexelsProvider {
		t.Errorf("Unexpected asset identity %+v", asset)
	}
	if asset.URL != "https://cdn.example.com/portrait-large.mp4" {
		t.Errorf("Expected the tallest portrait file, got %s", asset.URL)
	}
	if asset.Duration != 13 {
		t.Errorf("Asset duration %f", asset.Duration)
	}
	if !asset.Portrait() {
		t.Error("Selected file should be portrait")
	}
}

func TestPexelsProvider_Search_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	provider := NewPexelsProvider(NewContentFetcher(logger), &config.PexelsConfig{
		ApiUrl:  server.URL,
		ApiKey:  "test-key",
		PerPage: 10,
	}, logger)

	if _, err := provider.Search(context.Background(), "ocean"); err == nil {
		t.Fatal("Expected an error for a non-OK response")
	}
}
