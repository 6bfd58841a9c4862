package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/domain"
)

type pixabayVideoVariant struct {
	Url    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type pixabayHit struct {
	ID       int                            `json:"id"`
	Duration float64                        `json:"duration"`
	Videos   map[string]pixabayVideoVariant `json:"videos"`
}

type pixabaySearchResponse struct {
	Hits []pixabayHit `json:"hits"`
}

// Variant preference order, largest first.
var pixabayVariantOrder = []string{"large", "medium", "small", "tiny"}

type pixabayProvider struct {
	ContentFetcher
	logger        outbound.LoggerPort
	pixabayConfig *config.PixabayConfig
}

func NewPixabayProvider(contentFetcher ContentFetcher, pixabayConfig *config.PixabayConfig, logger outbound.LoggerPort) outbound.StockMediaProviderPort {
	return &pixabayProvider{
		ContentFetcher: contentFetcher,
		logger:         logger,
		pixabayConfig:  pixabayConfig,
	}
}

func (p *pixabayProvider) Name() domain.Provider {
	return domain.PixabayProvider
}

func (p *pixabayProvider) Search(ctx context.Context, query string) ([]domain.MediaAsset, error) {
	req, err := p.getRequest(ctx, query)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to construct the Pixabay search request", map[string]interface{}{
			"query": query,
		})
		return nil, err
	}

	payload, err := p.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var searchResponse pixabaySearchResponse
	if err := json.Unmarshal(payload, &searchResponse); err != nil {
		p.logger.Error(err, "Failed to unmarshal the Pixabay search response")
		return nil, err
	}

	return p.toAssets(searchResponse), nil
}

func (p *pixabayProvider) getRequest(ctx context.Context, query string) (*http.Request, error) {
	params := url.Values{}
	params.Set("key", p.pixabayConfig.ApiKey)
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(p.pixabayConfig.PerPage))

	return http.NewRequestWithContext(ctx, "GET", p.pixabayConfig.ApiUrl+"?"+params.Encode(), nil)
}

func (p *pixabayProvider) toAssets(res pixabaySearchResponse) []domain.MediaAsset {
	assets := make([]domain.MediaAsset, 0, len(res.Hits))
	for _, hit := range res.Hits {
		for _, variant := range pixabayVariantOrder {
			v, ok := hit.Videos[variant]
			if !ok || v.Url == "" {
				continue
			}
			assets = append(assets, domain.MediaAsset{
				ID:       strconv.Itoa(hit.ID),
				Provider: domain.PixabayProvider,
				URL:      v.Url,
				Width:    v.Width,
				Height:   v.Height,
				Duration: hit.Duration,
			})
			break
		}
	}
	return assets
}
