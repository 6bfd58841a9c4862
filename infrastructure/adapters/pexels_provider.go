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

type pexelsVideoFile struct {
	ID     int    `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Link   string `json:"link"`
}

type pexelsVideo struct {
	ID         int               `json:"id"`
	Duration   float64           `json:"duration"`
	VideoFiles []pexelsVideoFile `json:"video_files"`
}

type pexelsSearchResponse struct {
	Videos []pexelsVideo `json:"videos"`
}

type pexelsProvider struct {
	ContentFetcher
	logger       outbound.LoggerPort
	pexelsConfig *config.PexelsConfig
}

func NewPexelsProvider(contentFetcher ContentFetcher, pexelsConfig *config.PexelsConfig, logger outbound.LoggerPort) outbound.StockMediaProviderPort {
	return &pexelsProvider{
		ContentFetcher: contentFetcher,
		logger:         logger,
		pexelsConfig:   pexelsConfig,
	}
}

func (p *pexelsProvider) Name() domain.Provider {
	return domain.PexelsProvider
}

func (p *pexelsProvider) Search(ctx context.Context, query string) ([]domain.MediaAsset, error) {
	req, err := p.getRequest(ctx, query)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to construct the Pexels search request", map[string]interface{}{
			"query": query,
		})
		return nil, err
	}

	payload, err := p.FetchContent(req)
	if err != nil {
		return nil, err
	}

	var searchResponse pexelsSearchResponse
	if err := json.Unmarshal(payload, &searchResponse); err != nil {
		p.logger.Error(err, "Failed to unmarshal the Pexels search response")
		return nil, err
	}

	return p.toAssets(searchResponse), nil
}

func (p *pexelsProvider) getRequest(ctx context.Context, query string) (*http.Request, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(p.pexelsConfig.PerPage))
	params.Set("orientation", "portrait")

	req, err := http.NewRequestWithContext(ctx, "GET", p.pexelsConfig.ApiUrl+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Authorization", p.pexelsConfig.ApiKey)

	return req, nil
}

// toAssets keeps one file per video, preferring the tallest portrait file
// and falling back to any downloadable one.
func (p *pexelsProvider) toAssets(res pexelsSearchResponse) []domain.MediaAsset {
	assets := make([]domain.MediaAsset, 0, len(res.Videos))
	for _, video := range res.Videos {
		var best *pexelsVideoFile
		for i := range video.VideoFiles {
			file := &video.VideoFiles[i]
			if file.Link == "" {
				continue
			}
			if best == nil {
				best = file
				continue
			}
			bestPortrait := best.Width <= best.Height
			filePortrait := file.Width <= file.Height
			if (filePortrait && !bestPortrait) || (filePortrait == bestPortrait && file.Height > best.Height) {
				best = file
			}
		}
		if best == nil {
			continue
		}
		assets = append(assets, domain.MediaAsset{
			ID:       strconv.Itoa(video.ID),
			Provider: domain.PexelsProvider,
			URL:      best.Link,
			Width:    best.Width,
			Height:   best.Height,
			Duration: video.Duration,
		})
	}
	return assets
}
